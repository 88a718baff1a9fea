package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrsinham/blockforge/internal/atlas"
)

func atlasCmd(configFile *string) *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "atlas",
		Short: "Pack a directory of 16x16 PNG tiles into an atlas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, cleanup, err := setup(cmd, *configFile)
			if err != nil {
				return err
			}
			defer cleanup()

			if input == "" {
				return errors.New("--input is required")
			}
			if output == "" {
				output = input
			}

			tiles, err := atlas.LoadDir(input)
			if err != nil {
				return err
			}
			// A previous run may have left its atlas in the input directory
			delete(tiles, strings.TrimSuffix(atlas.ImageFile, ".png"))
			a, err := atlas.Build(tiles)
			if err != nil {
				return err
			}
			pngPath, mappingPath, err := a.Write(output)
			if err != nil {
				return err
			}
			logger.Debug().Int("tiles", len(tiles)).Str("input", input).Msg("atlas built")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Packed %d tiles\n", len(tiles))
			fmt.Fprintf(out, "  Atlas:   %s\n", pngPath)
			fmt.Fprintf(out, "  Mapping: %s\n", mappingPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "directory of PNG tiles")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: the input directory)")
	return cmd
}
