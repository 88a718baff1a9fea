package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrsinham/blockforge/cmd/blockforge/wizard"
)

func wizardCmd(configFile *string) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Configure and generate a texture pack interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, cleanup, err := setup(cmd, *configFile)
			if err != nil {
				return err
			}
			defer cleanup()

			// Console logs would draw over the full-screen interface
			if conf.Log.File == "" {
				logger = zerolog.Nop()
			}
			return wizard.Run(cmd.Context(), wizard.Options{
				FromPack:  from,
				OutputDir: conf.Output.Dir,
				Logger:    logger,
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "start from a saved pack file")
	return cmd
}
