package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cardforge/internal/batch"
	"cardforge/internal/config"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var (
		inputDir   string
		outputDir  string
		cardNames  []string
		skipImages bool
	)

	cmd := &cobra.Command{
		Use:   "render <decklist.csv>",
		Short: "Render every card in a decklist and write the order manifest",
		Long: `Render drives the remote card editor once per physical copy in the decklist,
downloads each card image, and writes the print-vendor order manifest next to
the output directory. Cards the editor cannot produce are logged and dropped
from the order; the run continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			decklistPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			artworkDir, err := config.ExpandPath(inputDir)
			if err != nil {
				return err
			}
			resolvedOutput, err := config.ExpandPath(outputDir)
			if err != nil {
				return err
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			runner, err := batch.NewRunner(cfg, store, logger)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary, err := runner.Run(runCtx, batch.Request{
				DecklistPath: decklistPath,
				ArtworkDir:   artworkDir,
				OutputDir:    resolvedOutput,
				CardNames:    cardNames,
				SkipImages:   skipImages,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if skipImages {
				fmt.Fprintf(out, "Predicted %d card(s); no images rendered\n", summary.Jobs)
			} else {
				fmt.Fprintf(out, "Rendered %d of %d card(s)", summary.Completed, summary.Jobs)
				if summary.Failed > 0 {
					fmt.Fprintf(out, " (%d dropped)", summary.Failed)
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "Order: %d card(s) in bracket %d\n", summary.Quantity, summary.Bracket)
			fmt.Fprintf(out, "Manifest: %s\n", summary.ManifestPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "input", "Directory holding replacement artwork files")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "output", "Directory for rendered card images")
	cmd.Flags().StringSliceVar(&cardNames, "cards", nil, "Only process decklist rows whose card name matches exactly")
	cmd.Flags().BoolVar(&skipImages, "skip-images", false, "Build the order manifest without driving the editor")

	return cmd
}
