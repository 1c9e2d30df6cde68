package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/els0r/gostream/pkg/compression"
	"github.com/spf13/cobra"
)

func newSchemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List the supported compression schemes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCHEME\tSUFFIX\tREAD\tWRITE")

			registry := compression.Default()
			for _, t := range registry.Schemes() {
				codec, err := registry.Get(t)
				if err != nil {
					return err
				}

				canWrite := "yes"
				if wc, err := codec.NewWriter(io.Discard); err != nil {
					canWrite = "no"
				} else {
					_ = wc.Close()
				}
				suffix := t.Extension()
				if suffix == "" {
					suffix = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\tyes\t%s\n", t, suffix, canWrite)
			}
			return tw.Flush()
		},
	}
}
