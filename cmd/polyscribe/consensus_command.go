package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"polyscribe/internal/config"
	"polyscribe/internal/consensus"
	"polyscribe/internal/language"
	"polyscribe/internal/output"
	"polyscribe/internal/transcript"
)

func newConsensusCommand(ctx *commandContext) *cobra.Command {
	var (
		outputDir   string
		base        string
		formats     []string
		minCoverage float64
	)

	cmd := &cobra.Command{
		Use:   "consensus <transcript.json>...",
		Short: "Build a consensus transcript from existing model outputs",
		Long: `Consensus merges previously generated whisper-style transcript JSON
files. Model identity is taken from each file's "model" field, falling back
to the -<model> suffix of its filename.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			transcripts := make([]*transcript.Transcript, 0, len(args))
			for _, arg := range args {
				path, err := config.ExpandPath(arg)
				if err != nil {
					return err
				}
				tr, err := transcript.LoadFile(path, modelIDFromFilename(path))
				if err != nil {
					return fmt.Errorf("load %s: %w", arg, err)
				}
				transcripts = append(transcripts, tr)
			}

			threshold := cfg.Consensus.MinMajorityCoverage
			if cmd.Flags().Changed("min-coverage") {
				threshold = minCoverage
			}
			builder := consensus.NewBuilder(
				consensus.WithMinMajorityCoverage(threshold),
				consensus.WithLogger(logger),
			)
			result, err := builder.Build(transcripts)
			if err != nil {
				return err
			}

			dir := outputDir
			if dir == "" {
				dir = filepath.Dir(args[0])
			}
			dir, err = config.ExpandPath(dir)
			if err != nil {
				return err
			}
			if base == "" {
				base = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				if id := modelIDFromFilename(args[0]); id != "" {
					base = strings.TrimSuffix(base, "-"+id)
				}
			}
			if len(formats) == 0 {
				formats = cfg.Output.Formats
			}

			paths, err := output.WriteResult(dir, base, formats, result)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Method: %s\n", result.Method)
			if result.Language != "" {
				fmt.Fprintf(out, "Language: %s\n", language.DisplayName(result.Language))
			}
			fmt.Fprintf(out, "Words: %d  majority coverage: %.2f\n", len(result.Words), result.MajorityCoverage)
			for _, path := range paths {
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for consensus outputs (default: alongside the first input)")
	cmd.Flags().StringVar(&base, "base", "", "Base name for output files")
	cmd.Flags().StringSliceVar(&formats, "formats", nil, "Output formats (json, srt, txt)")
	cmd.Flags().Float64Var(&minCoverage, "min-coverage", 0, "Majority-coverage threshold below which the best single transcript is used")

	return cmd
}

// modelIDFromFilename extracts the model suffix from a <base>-<model>.json
// transcript filename.
func modelIDFromFilename(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if idx := strings.LastIndex(name, "-"); idx >= 0 && idx < len(name)-1 {
		return name[idx+1:]
	}
	return name
}
