//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"fredsistance/app"
	"fredsistance/hal"
	"fredsistance/internal/buildinfo"
	"fredsistance/internal/config"
	"fredsistance/sparkos/tasks/watchface"
)

func main() {
	var hcfg hal.HeadlessConfig
	var cfgPath, tz, locale string
	var clock24h bool
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&cfgPath, "config", config.DefaultPath(), "Path to the TOML config file.")
	flag.BoolVar(&clock24h, "24h", false, "Use the 24-hour clock (overrides the config file).")
	flag.StringVar(&tz, "tz", "", "Time zone, e.g. Europe/Berlin (overrides the config file).")
	flag.StringVar(&locale, "locale", "", "Date locale: en, de or fr (overrides the config file).")
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := config.LoadFrom(cfgPath)
	if err != nil {
		fatal(err)
	}
	override := func(c *config.Config) error {
		if set["24h"] {
			c.Clock24h = &clock24h
		}
		if tz != "" {
			c.Timezone = tz
		}
		if locale != "" {
			c.Locale = locale
		}
		return c.Validate()
	}
	if err := override(cfg); err != nil {
		fatal(err)
	}

	loc, err := cfg.Location()
	if err != nil {
		fatal(err)
	}
	bg, err := cfg.LoadBackground()
	if err != nil {
		fatal(err)
	}

	settings := hal.NewSettingsStore()
	cfg.ApplySettings(settings)

	hostCfg := hal.HostConfig{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Scale:    cfg.Scale,
		Location: loc,
		Settings: settings,
	}
	appCfg := app.Config{
		Face: watchface.Config{
			Formatter: cfg.Formatter(),
			Resources: watchface.Resources{Background: bg},
		},
		ExitOnPanic: hcfg.Enabled,
	}

	fmt.Fprintln(os.Stderr, "fredsistance", buildinfo.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if w, err := config.NewWatcher(cfgPath); err != nil {
		fmt.Fprintln(os.Stderr, "config: hot reload disabled:", err)
	} else {
		defer w.Close()
		go w.Run(ctx, func(c *config.Config) {
			if err := override(c); err != nil {
				fmt.Fprintln(os.Stderr, "config: reload:", err)
				return
			}
			c.ApplySettings(settings)
			fmt.Fprintln(os.Stderr, "config: reloaded", cfgPath)
		}, func(err error) {
			fmt.Fprintln(os.Stderr, "config: reload:", err)
		})
	}

	newApp := func(h hal.HAL) (func() error, func()) {
		return app.New(h, appCfg)
	}

	if hcfg.Enabled {
		hcfg.Host = hostCfg
		if err := hal.RunHeadless(ctx, newApp, hcfg); err != nil && !errors.Is(err, context.Canceled) {
			fatal(err)
		}
		return
	}

	if err := hal.RunWindow(hostCfg, newApp); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
