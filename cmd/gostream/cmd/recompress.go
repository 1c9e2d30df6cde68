package cmd

import (
	"context"

	"github.com/els0r/gostream/cmd/gostream/config"
	"github.com/els0r/gostream/pkg/file"
	"github.com/spf13/cobra"
)

func newRecompressCmd(cfg *config.Config) *cobra.Command {
	var (
		checksum bool
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "recompress INPUT... OUTPUT",
		Short: "Decompress the inputs and write them, concatenated, to a (re-)compressed output",
		Long: `Decompress the inputs and write them, concatenated, to a (re-)compressed output.
The scheme of the output is derived from its suffix unless --compression.scheme is set.`,
		Args: cobra.MinimumNArgs(2),
		RunE: wrapCancellationContext(cfg, func(ctx context.Context, cmd *cobra.Command, args []string) error {
			inputs, output := args[:len(args)-1], args[len(args)-1]

			var outOpts []file.Option
			if cfg.Compression.Scheme != "" {
				outOpts = append(outOpts, file.WithScheme(cfg.Compression.Scheme))
			}

			res, err := transfer(ctx, cfg, inputs, output, outOpts, checksum)
			if err != nil {
				return err
			}
			if quiet {
				return nil
			}
			return res.print(cmd.ErrOrStderr(), cfg.Format)
		}),
	}
	cmd.Flags().BoolVar(&checksum, "checksum", false, "compute the xxh3 checksum of the decompressed data")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print a summary")

	return cmd
}
