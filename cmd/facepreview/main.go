// Command facepreview renders the watch face without running the OS.
//
// Usage:
//
//	facepreview render --at 2024-12-31T23:59:00Z -o face.png
//	facepreview strings --at 2024-12-31T23:59:00Z --24h
package main

import (
	"fmt"
	"io"
	"os"
	"time"
	_ "time/tzdata"

	"fredsistance/hal"
	"fredsistance/internal/buildinfo"
	"fredsistance/internal/config"
	"fredsistance/sparkos/timefmt"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &faceOptions{}
	root := &cobra.Command{
		Use:           "facepreview",
		Short:         "Render the watch face for a given time",
		Version:       buildinfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a TOML config file")
	root.PersistentFlags().StringVar(&opts.at, "at", "", "Instant to render, RFC 3339 (default: now)")
	root.PersistentFlags().BoolVar(&opts.clock24h, "24h", false, "Use the 24-hour clock")
	root.PersistentFlags().StringVar(&opts.tz, "tz", "", "Time zone, e.g. Europe/Berlin")
	root.PersistentFlags().StringVar(&opts.locale, "locale", "", "Date locale: en, de or fr")

	root.AddCommand(
		renderCmd(opts),
		stringsCmd(opts),
	)
	return root
}

// faceOptions are the flags shared by every subcommand.
type faceOptions struct {
	configPath string
	at         string
	clock24h   bool
	tz         string
	locale     string
}

// preview is everything needed to draw one frame.
type preview struct {
	cfg      *config.Config
	at       time.Time
	settings *hal.SettingsStore
	format   timefmt.Formatter
}

func (o *faceOptions) resolve(cmd *cobra.Command) (*preview, error) {
	cfg, err := config.LoadFrom(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("24h") {
		on := o.clock24h
		cfg.Clock24h = &on
	}
	if o.tz != "" {
		cfg.Timezone = o.tz
	}
	if o.locale != "" {
		cfg.Locale = o.locale
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	at := time.Now()
	if o.at != "" {
		at, err = time.Parse(time.RFC3339, o.at)
		if err != nil {
			return nil, fmt.Errorf("--at: %w", err)
		}
	}
	if !timefmt.Valid(at) {
		return nil, fmt.Errorf("--at: %s cannot be displayed", o.at)
	}

	settings := hal.NewSettingsStore()
	cfg.ApplySettings(settings)

	return &preview{
		cfg:      cfg,
		at:       at.In(loc),
		settings: settings,
		format:   cfg.Formatter(),
	}, nil
}

func (p *preview) style() timefmt.Style {
	return timefmt.StyleFromSetting(p.settings.Clock24h())
}

// fixedClock always reports the same instant.
type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }
