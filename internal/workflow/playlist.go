package workflow

import (
	"context"
	"log/slog"

	"polyscribe/internal/logging"
)

// Summary reports the outcome of a playlist run.
type Summary struct {
	Total     int
	Processed int
	Skipped   int
	Failed    int
}

// PlaylistRunner processes playlist URLs entry by entry. A failing entry is
// recorded and the run continues with the next one.
type PlaylistRunner struct {
	processor *Processor
	logger    *slog.Logger
}

// NewPlaylistRunner wraps a Processor for playlist handling.
func NewPlaylistRunner(processor *Processor, logger *slog.Logger) *PlaylistRunner {
	return &PlaylistRunner{
		processor: processor,
		logger:    logging.WithComponent(logger, "playlist"),
	}
}

// Run probes the URL and processes each playlist entry, starting at the
// 1-based startIndex. A URL that resolves to a single video is processed
// directly.
func (r *PlaylistRunner) Run(ctx context.Context, url string, startIndex int) (*Summary, error) {
	info, err := r.processor.downloader.Probe(ctx, url)
	if err != nil {
		return nil, err
	}

	if !info.IsPlaylist() {
		summary := &Summary{Total: 1}
		if _, err := r.processor.Process(ctx, url, 0); err != nil {
			summary.Failed = 1
			return summary, err
		}
		summary.Processed = 1
		return summary, nil
	}

	entries := info.PlaylistEntries()
	if startIndex < 1 {
		startIndex = 1
	}
	summary := &Summary{Total: len(entries)}
	if startIndex > len(entries) {
		r.logger.Warn("start index beyond playlist end",
			slog.Int("start", startIndex),
			slog.Int("entries", len(entries)))
		summary.Skipped = len(entries)
		return summary, nil
	}
	summary.Skipped = startIndex - 1

	r.logger.Info("processing playlist",
		slog.String("title", info.Metadata.Title),
		slog.Int("entries", len(entries)),
		slog.Int("start", startIndex))

	for i := startIndex - 1; i < len(entries); i++ {
		entry := entries[i]
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if _, err := r.processor.Process(ctx, entry.URL, i+1); err != nil {
			summary.Failed++
			r.logger.Error("playlist entry failed",
				slog.Int("index", i+1),
				slog.String("title", entry.Title),
				logging.Error(err))
			continue
		}
		summary.Processed++
	}
	return summary, nil
}
