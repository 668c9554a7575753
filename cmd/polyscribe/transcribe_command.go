package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"polyscribe/internal/config"
	"polyscribe/internal/queue"
	"polyscribe/internal/workflow"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var (
		models        []string
		playlistStart int
		noConsensus   bool
		outputDir     string
		formats       []string
	)

	cmd := &cobra.Command{
		Use:   "transcribe <file-or-url>",
		Short: "Transcribe a media file, URL, or playlist",
		Long: `Transcribe runs every enabled model against the input and merges the
results into a consensus transcript. Local files are converted to WAV first;
YouTube URLs are downloaded, and playlists are processed entry by entry.`,
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

			opts := workflow.Options{
				Models:        models,
				SkipConsensus: noConsensus,
				Formats:       formats,
			}
			if outputDir != "" {
				expanded, err := config.ExpandPath(outputDir)
				if err != nil {
					return err
				}
				opts.OutputDir = expanded
			}

			lock, err := queue.AcquireRunLock(cfg.Paths.WorkDir)
			if err != nil {
				return err
			}
			defer lock.Release()

			store, err := queue.Open(cfg.Paths.WorkDir)
			if err != nil {
				return err
			}
			defer store.Close()

			processor, err := workflow.NewProcessor(cfg, store, logger, opts)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			input := args[0]
			out := cmd.OutOrStdout()
			if workflow.IsURL(input) {
				summary, err := workflow.NewPlaylistRunner(processor, logger).Run(runCtx, input, playlistStart)
				if summary != nil {
					fmt.Fprintf(out, "Entries: %d  processed: %d  skipped: %d  failed: %d\n",
						summary.Total, summary.Processed, summary.Skipped, summary.Failed)
				}
				if err != nil {
					return err
				}
				if summary != nil && summary.Failed > 0 {
					return fmt.Errorf("%d playlist entries failed", summary.Failed)
				}
				return nil
			}

			item, err := processor.Process(runCtx, input, 0)
			if err != nil {
				return err
			}
			if item.ConsensusPath != "" {
				fmt.Fprintf(out, "Consensus transcript: %s\n", item.ConsensusPath)
			}
			for _, path := range item.TranscriptPaths {
				fmt.Fprintf(out, "Model transcript: %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&models, "models", "m", nil, "Models to run (default: configured enabled list)")
	cmd.Flags().IntVar(&playlistStart, "playlist-start", 1, "1-based playlist entry to start from")
	cmd.Flags().BoolVar(&noConsensus, "no-consensus", false, "Write per-model transcripts without consensus merging")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Override the configured output directory")
	cmd.Flags().StringSliceVar(&formats, "formats", nil, "Output formats (json, srt, txt)")

	return cmd
}
