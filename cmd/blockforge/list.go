package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrsinham/blockforge/internal/pack"
	"github.com/mrsinham/blockforge/internal/texture"
)

func listCmd() *cobra.Command {
	var packPath string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the texture catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := texture.DefaultCatalog()
			if packPath != "" {
				pf, err := pack.LoadPackFile(packPath)
				if err != nil {
					return err
				}
				if catalog, err = pf.Catalog(); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-16s %-7s %6s  %s\n", "NAME", "FAMILY", "SEED", "LAYERS")
			for _, r := range catalog.Recipes() {
				fmt.Fprintf(out, "%-16s %-7s %6d  %s\n", r.Name, r.Family, r.Seed, r.Describe())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&packPath, "pack", "", "include the custom recipes of a pack file")
	return cmd
}
