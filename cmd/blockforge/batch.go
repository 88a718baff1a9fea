package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrsinham/blockforge/internal/forge"
)

func batchCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate textures from prompts with a remote image model",
		Long: "Send every prompt of a TOML prompts file to the image-generation endpoint, one\n" +
			"request at a time, and save each returned image as <name>.png. Existing files\n" +
			"are skipped; failed items are reported and do not stop the batch.",
		Example: "  blockforge batch --prompts prompts.toml --output textures\n" +
			"  BLOCKFORGE_FORGE_API_KEY=secret blockforge batch --delay 2s",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, cleanup, err := setup(cmd, *configFile)
			if err != nil {
				return err
			}
			defer cleanup()

			prompts, err := forge.LoadPrompts(conf.Forge.Prompts)
			if err != nil {
				return err
			}
			items, err := prompts.Items()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			client, err := forge.NewClient(forge.Config{
				Endpoint:  conf.Forge.Endpoint,
				Model:     conf.Forge.Model,
				MaxTokens: conf.Forge.MaxTokens,
				APIKey:    conf.Forge.APIKey,
				Timeout:   conf.Forge.Timeout,
				Delay:     conf.Forge.Delay,
			},
				forge.WithLogger(logger),
				forge.WithProgress(func(res forge.ItemResult) {
					line := fmt.Sprintf("[%d/%d] %s: %s", res.Index, res.Total, res.Name, res.Status)
					if res.Err != nil {
						line += " (" + res.Err.Error() + ")"
					}
					fmt.Fprintln(out, line)
				}),
			)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "blockforge batch")
			fmt.Fprintln(out, "================")
			fmt.Fprintf(out, "Endpoint: %s\n", conf.Forge.Endpoint)
			fmt.Fprintf(out, "Model:    %s\n", conf.Forge.Model)
			fmt.Fprintf(out, "Prompts:  %d from %s\n\n", len(items), conf.Forge.Prompts)

			summary, err := client.Run(cmd.Context(), conf.Output.Dir, items)
			fmt.Fprintf(out, "\nTotal: %d  Succeeded: %d  Skipped: %d  Failed: %d\n",
				summary.Total, summary.Succeeded, summary.Skipped, summary.Failed)
			if err != nil {
				return err
			}
			for _, f := range summary.Failures {
				fmt.Fprintf(out, "  ✗ %v\n", f)
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d textures failed", summary.Failed, summary.Total)
			}
			fmt.Fprintf(out, "\n✓ Batch complete! Output directory: %s\n", conf.Output.Dir)
			return nil
		},
	}

	cmd.Flags().String("prompts", "prompts.toml", "TOML prompts file")
	cmd.Flags().StringP("output", "o", "textures", "output directory")
	cmd.Flags().String("endpoint", "http://localhost:8080/v1/messages", "image-generation endpoint URL")
	cmd.Flags().String("model", "gemini-3-pro-image", "model name sent with each request")
	cmd.Flags().Int("max-tokens", 8096, "max_tokens sent with each request")
	cmd.Flags().String("api-key", "test", "API key sent as x-api-key (prefer BLOCKFORGE_FORGE_API_KEY)")
	cmd.Flags().Duration("timeout", 120*time.Second, "per-request timeout")
	cmd.Flags().Duration("delay", time.Second, "pause after each sent request")
	return cmd
}
