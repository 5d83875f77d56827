package main

import (
	"fmt"
	"image/png"
	"os"

	"fredsistance/hal"
	"fredsistance/sparkos/tasks/watchface"
	"fredsistance/sparkos/ui"

	"github.com/spf13/cobra"
)

// renderCmd draws one frame of the face into a PNG file.
func renderCmd(opts *faceOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the face to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			bg, err := p.cfg.LoadBackground()
			if err != nil {
				return err
			}

			h := hal.NewHost(hal.HostConfig{
				Width:    p.cfg.Width,
				Height:   p.cfg.Height,
				Location: p.at.Location(),
				Settings: p.settings,
			})
			fb := h.Display().Framebuffer()

			face := watchface.NewFace(fixedClock(p.at), h.Settings(), watchface.Config{
				Formatter: p.format,
				Resources: watchface.Resources{Background: bg},
			})
			win := ui.NewWindow(fb)
			if err := face.OnShow(win); err != nil {
				return err
			}
			defer face.OnHide(win)

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := png.Encode(f, hal.Snapshot(fb)); err != nil {
				f.Close()
				return fmt.Errorf("encoding %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %q %q (%dx%d)\n", output, face.TimeText(), face.DateText(), fb.Width(), fb.Height())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "face.png", "Output PNG path")
	return cmd
}
