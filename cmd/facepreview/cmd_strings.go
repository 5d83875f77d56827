package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// stringsCmd prints the two lines the face would show.
func stringsCmd(opts *faceOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "strings",
		Short: "Print the time and date lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			timeLine, dateLine := p.format.Format(p.at, p.style())
			fmt.Fprintln(cmd.OutOrStdout(), timeLine)
			fmt.Fprintln(cmd.OutOrStdout(), dateLine)
			return nil
		},
	}
}
