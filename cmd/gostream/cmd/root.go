// Package cmd contains the gostream command line interface implementation
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/els0r/gostream/cmd/gostream/config"
	"github.com/els0r/gostream/pkg/conf"
	"github.com/els0r/gostream/pkg/version"
	"github.com/els0r/telemetry/logging"
	"github.com/els0r/telemetry/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute is the main entrypoint and runs the CLI tool
func Execute() error {
	rootCmd, err := newRootCmd()
	if err != nil {
		return err
	}
	return rootCmd.Execute()
}

func newRootCmd() (*cobra.Command, error) {
	cfg := config.New()

	rootCmd := &cobra.Command{
		Use:   "gostream",
		Short: "gostream moves (compressed) byte streams through background pipelines",
		Long: `gostream reads and writes compressed files through background pipelines.
The compression scheme of a file is derived from its suffix (.gz, .bz2, .lz4, .zst, .s2).`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// the version command works without any configuration
			if cmd.Name() == "version" {
				return nil
			}

			err := initConfig(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return initLogging()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	if err := conf.RegisterFlags(rootCmd); err != nil {
		return nil, fmt.Errorf("failed to register flags: %w", err)
	}

	rootCmd.AddCommand(
		newCatCmd(cfg),
		newRecompressCmd(cfg),
		newSchemesCmd(),
		newConfigCmd(cfg),
		newVersionCmd(),
	)

	return rootCmd, nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration must not be nil")
	}

	path := viper.GetString(conf.ConfigFile)
	if path != "" {
		viper.SetConfigFile(path)

		err := viper.ReadInConfig()
		if err != nil {
			return fmt.Errorf("failed to read configuration file: %w", err)
		}
	}

	viper.SetEnvPrefix("gostream")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "__"))
	viper.AutomaticEnv()

	// Unmarshal the entire config from viper (includes config file, flags, and env vars)
	err := viper.Unmarshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	// the level is only applied if it was asked for, since zero is a valid level for some schemes
	if viper.IsSet(conf.CompressionLevel) {
		level := viper.GetInt(conf.CompressionLevel)
		cfg.Compression.Level = &level
	}

	return nil
}

func initLogging() error {
	loggerOpts := []logging.Option{
		logging.WithVersion(version.Short()),
		logging.WithOutput(os.Stderr),
	}

	dst := viper.GetString(conf.LogDestination)
	if dst != "" {
		loggerOpts = append(loggerOpts, logging.WithFileOutput(dst))
	}

	err := logging.Init(
		logging.LevelFromString(viper.GetString(conf.LogLevel)),
		logging.Encoding(viper.GetString(conf.LogEncoding)),
		loggerOpts...,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

type entrypointE func(ctx context.Context, cmd *cobra.Command, args []string) error
type runE func(cmd *cobra.Command, args []string) error

// wrapCancellationContext runs f with a context that is cancelled on SIGINT / SIGTERM and sets
// up tracing for the duration of the command. If configured, metrics are written once f returns
func wrapCancellationContext(cfg *config.Config, f entrypointE) runE {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
		defer stop()

		shutdownTracing, err := tracing.InitFromFlags(ctx)
		if err != nil {
			logging.FromContext(ctx).With("error", err).Error("failed to set up tracing")
		} else {
			defer func() {
				_ = shutdownTracing(context.Background())
			}()
		}

		err = f(ctx, cmd, args)

		if cfg.Metrics.Textfile != "" {
			if merr := prometheus.WriteToTextfile(cfg.Metrics.Textfile, prometheus.DefaultGatherer); merr != nil {
				logging.FromContext(ctx).With("error", merr, "path", cfg.Metrics.Textfile).Error("failed to write metrics")
			}
		}

		return err
	}
}
