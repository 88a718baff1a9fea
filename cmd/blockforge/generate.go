package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/mrsinham/blockforge/internal/config"
	"github.com/mrsinham/blockforge/internal/pack"
)

const _progressRedraw = 100 * time.Millisecond

func generateCmd(configFile *string) *cobra.Command {
	var (
		only     []string
		packPath string
		savePack string
	)
	cmd := &cobra.Command{
		Use:   "generate [names...]",
		Short: "Generate block textures",
		Long: "Generate textures from the built-in catalog, or from a pack file with --pack.\n" +
			"Names and --only patterns select textures; without them the whole catalog is generated.",
		Example: "  blockforge generate\n" +
			"  blockforge generate coal_vein gold_vein --preview-scale 8\n" +
			"  blockforge generate --only '*_vein' --format png,dicom --atlas\n" +
			"  blockforge generate --pack my-pack.yaml --seed 42",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, cleanup, err := setup(cmd, *configFile)
			if err != nil {
				return err
			}
			defer cleanup()

			pf, err := resolvePackFile(cmd, conf, packPath, append(args, only...))
			if err != nil {
				return err
			}
			if err := pf.Validate(); err != nil {
				return err
			}
			if savePack != "" {
				if err := pack.SavePackFile(savePack, pf); err != nil {
					return err
				}
				logger.Info().Str("path", savePack).Msg("pack file saved")
			}

			opts, err := pf.Options("")
			if err != nil {
				return err
			}
			opts.Logger = logger

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "blockforge")
			fmt.Fprintln(out, "==========")
			if packPath != "" {
				fmt.Fprintf(out, "Loading pack from %s\n", packPath)
			}
			fmt.Fprintf(out, "Generating %d textures into %s\n\n", len(opts.Recipes), opts.OutputDir)
			if isTerminal(out) {
				opts.ProgressCallback = progressPrinter(out, _progressRedraw)
			}

			start := time.Now()
			files, err := pack.Generate(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("generating textures: %w", err)
			}

			written := 0
			for _, f := range files {
				written += len(f.Files)
			}
			fmt.Fprintln(out, "\n✓ Generation complete!")
			fmt.Fprintf(out, "  Textures: %d (%d files) in %.2fs\n", len(files), written, time.Since(start).Seconds())
			fmt.Fprintf(out, "  Output directory: %s\n", opts.OutputDir)
			if savePack != "" {
				fmt.Fprintf(out, "  Pack file saved to %s\n", savePack)
			}
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "textures", "output directory")
	cmd.Flags().Int64("seed", 0, "pack seed; 0 keeps each recipe's own seed")
	cmd.Flags().Int("workers", 0, "parallel workers (0 = CPU cores)")
	cmd.Flags().String("format", "png", "comma-separated output formats: png, dicom (or 'all')")
	cmd.Flags().Int("preview-scale", 0, "also write nearest-neighbor previews at this scale (0 or 1 = off)")
	cmd.Flags().Bool("contact-sheet", false, "write a labelled contact sheet of the pack")
	cmd.Flags().Bool("atlas", false, "pack the textures into a 512x512 atlas")
	cmd.Flags().StringSliceVar(&only, "only", nil, "glob patterns selecting textures, e.g. '*_vein' (repeatable)")
	cmd.Flags().StringVar(&packPath, "pack", "", "load textures and settings from a pack file")
	cmd.Flags().StringVar(&savePack, "save-pack", "", "save the effective pack file to this path")
	return cmd
}

// resolvePackFile merges the sources of a generate run. A pack file wins
// over the configuration, explicitly set flags win over the pack file, and
// a non-empty selection replaces the pack's texture list.
func resolvePackFile(cmd *cobra.Command, conf config.Config, packPath string, selection []string) (*pack.PackFile, error) {
	pf := &pack.PackFile{
		OutputDir:    conf.Output.Dir,
		Seed:         conf.Output.Seed,
		Workers:      conf.Output.Workers,
		Formats:      splitList(conf.Output.Formats),
		PreviewScale: conf.Output.PreviewScale,
		ContactSheet: conf.Output.ContactSheet,
		Atlas:        conf.Output.Atlas,
	}
	if packPath != "" {
		loaded, err := pack.LoadPackFile(packPath)
		if err != nil {
			return nil, err
		}
		pf = loaded
		flags := cmd.Flags()
		if flags.Changed("output") || pf.OutputDir == "" {
			pf.OutputDir = conf.Output.Dir
		}
		if flags.Changed("seed") {
			pf.Seed = conf.Output.Seed
		}
		if flags.Changed("workers") {
			pf.Workers = conf.Output.Workers
		}
		if flags.Changed("format") || len(pf.Formats) == 0 {
			pf.Formats = splitList(conf.Output.Formats)
		}
		if flags.Changed("preview-scale") {
			pf.PreviewScale = conf.Output.PreviewScale
		}
		if flags.Changed("contact-sheet") {
			pf.ContactSheet = conf.Output.ContactSheet
		}
		if flags.Changed("atlas") {
			pf.Atlas = conf.Output.Atlas
		}
	}
	if len(selection) > 0 {
		pf.Textures = selection
	}
	return pf, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// progressPrinter redraws an "i/n" counter at most once per interval. The
// final count is always printed.
func progressPrinter(w io.Writer, interval time.Duration) func(current, total int) {
	redraw := &rate.Sometimes{Interval: interval}
	return func(current, total int) {
		if current == total {
			fmt.Fprintf(w, "\r  %d/%d\n", current, total)
			return
		}
		redraw.Do(func() { fmt.Fprintf(w, "\r  %d/%d", current, total) })
	}
}
