package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrsinham/blockforge/internal/config"
	"github.com/mrsinham/blockforge/internal/logging"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string
	root := &cobra.Command{
		Use:   "blockforge",
		Short: "Procedural 16x16 block textures",
		Long: "blockforge generates deterministic 16x16 block textures (ores, sediment bands,\n" +
			"mossy rubble, plant sprites), packs them into atlases and drives a remote\n" +
			"image-generation endpoint in batch.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file (yaml, toml or json)")
	root.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn, error, none")
	root.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")
	root.PersistentFlags().Bool("log-json", false, "structured JSON logs even on a terminal")

	root.AddCommand(
		generateCmd(&configFile),
		listCmd(),
		atlasCmd(&configFile),
		batchCmd(&configFile),
		wizardCmd(&configFile),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the blockforge version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blockforge %s\n", version)
		},
	}
}

// setup loads the configuration for cmd and installs the logger. The
// returned func releases the log file.
func setup(cmd *cobra.Command, configFile string) (config.Config, zerolog.Logger, func(), error) {
	dotEnv, err := config.LoadDotEnv()
	if err != nil {
		return config.Config{}, zerolog.Nop(), nil, err
	}
	conf, meta, err := config.GetConfig(cmd, configFile)
	if err != nil {
		return config.Config{}, zerolog.Nop(), nil, err
	}
	logger, cleanup, err := logging.Setup(conf.Log)
	if err != nil {
		return config.Config{}, zerolog.Nop(), nil, err
	}
	if meta.FileNotFound {
		logger.Warn().Str("path", configFile).Msg("config file not found, using defaults")
	}
	logger.Debug().Bool("dotenv", dotEnv).Str("command", cmd.Name()).Msg("configuration loaded")
	return conf, logger, cleanup, nil
}
