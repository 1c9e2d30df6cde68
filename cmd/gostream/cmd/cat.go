package cmd

import (
	"context"

	"github.com/els0r/gostream/cmd/gostream/config"
	"github.com/els0r/gostream/pkg/file"
	"github.com/spf13/cobra"
)

func newCatCmd(cfg *config.Config) *cobra.Command {
	var checksum bool

	cmd := &cobra.Command{
		Use:   "cat FILE...",
		Short: "Decompress files and write their contents to stdout",
		Long: `Decompress files and write their contents to stdout. Use "-" to read from stdin.
The compression scheme of each file is derived from its suffix.`,
		Args: cobra.MinimumNArgs(1),
		RunE: wrapCancellationContext(cfg, func(ctx context.Context, cmd *cobra.Command, args []string) error {
			res, err := transfer(ctx, cfg, args, file.StdStream, []file.Option{file.WithScheme("none")}, checksum)
			if err != nil {
				return err
			}
			if checksum {
				return res.print(cmd.ErrOrStderr(), cfg.Format)
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&checksum, "checksum", false, "print the xxh3 checksum of the decompressed data to stderr")

	return cmd
}
