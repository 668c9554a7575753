package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"polyscribe/internal/config"
	"polyscribe/internal/consensus"
	"polyscribe/internal/download"
	"polyscribe/internal/logging"
	"polyscribe/internal/media"
	"polyscribe/internal/output"
	"polyscribe/internal/queue"
	"polyscribe/internal/services"
	"polyscribe/internal/textutil"
	"polyscribe/internal/transcript"
)

// Options adjust a single processing run.
type Options struct {
	// Models overrides the configured enabled model list.
	Models []string
	// SkipConsensus writes only the per-model transcripts.
	SkipConsensus bool
	// OutputDir overrides the configured output directory.
	OutputDir string
	// Formats overrides the configured output formats.
	Formats []string
}

// Processor runs the transcription pipeline for one input at a time.
type Processor struct {
	cfg          *config.Config
	store        *queue.Store
	logger       *slog.Logger
	downloader   *download.Client
	extractor    *media.Extractor
	builder      *consensus.Builder
	transcribers []services.Transcriber
	opts         Options
}

// NewProcessor wires a Processor from configuration. The transcriber list
// comes from opts.Models when set, otherwise from the config's enabled list.
func NewProcessor(cfg *config.Config, store *queue.Store, logger *slog.Logger, opts Options) (*Processor, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	registry := NewRegistry(cfg)
	transcribers, err := ResolveTranscribers(cfg, registry, opts.Models)
	if err != nil {
		return nil, err
	}

	builder := consensus.NewBuilder(
		consensus.WithMinMajorityCoverage(cfg.Consensus.MinMajorityCoverage),
		consensus.WithLogger(logger),
	)

	return &Processor{
		cfg:        cfg,
		store:      store,
		logger:     logging.WithComponent(logger, "workflow"),
		downloader: download.NewClient(cfg.Download.Binary, cfg.Download.Format),
		extractor: media.NewExtractor(media.ExtractSettings{
			FFmpegBinary: cfg.Audio.FFmpegBinary,
			Codec:        cfg.Audio.Codec,
			SampleRate:   cfg.Audio.SampleRate,
			Channels:     cfg.Audio.Channels,
		}),
		builder:      builder,
		transcribers: transcribers,
		opts:         opts,
	}, nil
}

// WithDownloader replaces the yt-dlp client (for testing).
func (p *Processor) WithDownloader(client *download.Client) { p.downloader = client }

// WithExtractor replaces the ffmpeg extractor (for testing).
func (p *Processor) WithExtractor(extractor *media.Extractor) { p.extractor = extractor }

// WithTranscribers replaces the resolved transcriber list (for testing).
func (p *Processor) WithTranscribers(transcribers []services.Transcriber) {
	p.transcribers = transcribers
}

// ModelIDs returns the identifiers of the transcribers this processor runs.
func (p *Processor) ModelIDs() []string {
	ids := make([]string, len(p.transcribers))
	for i, t := range p.transcribers {
		ids[i] = t.ID()
	}
	return ids
}

// Process runs the full pipeline for one input. playlistIndex is the 1-based
// playlist position, 0 for standalone inputs. Completed jobs for the same
// source are skipped so interrupted playlist runs resume cleanly.
func (p *Processor) Process(ctx context.Context, source string, playlistIndex int) (*queue.Item, error) {
	if existing, err := p.store.FindBySource(ctx, source); err != nil {
		return nil, err
	} else if existing != nil && existing.Status == queue.StatusCompleted {
		p.logger.Info("source already completed, skipping",
			slog.String("source", source),
			slog.Int64(logging.FieldItemID, existing.ID))
		return existing, nil
	}

	item, err := p.store.NewItem(ctx, source, "", playlistIndex)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithItemID(ctx, item.ID)

	if err := p.run(ctx, item); err != nil {
		logging.WithContext(ctx, p.logger).Error("job failed",
			slog.String("failure_kind", services.Classify(err)),
			logging.Error(err))
		item.Status = queue.StatusFailed
		item.ErrorMessage = err.Error()
		if updateErr := p.store.Update(ctx, item); updateErr != nil {
			p.logger.Error("record job failure",
				slog.Int64(logging.FieldItemID, item.ID),
				logging.Error(updateErr))
		}
		return item, err
	}

	item.Status = queue.StatusCompleted
	if err := p.store.Update(ctx, item); err != nil {
		return item, err
	}
	return item, nil
}

func (p *Processor) run(ctx context.Context, item *queue.Item) error {
	mediaPath, err := p.prepareMedia(ctx, item)
	if err != nil {
		return err
	}

	audioPath, jobDir, err := p.prepareAudio(ctx, item, mediaPath)
	if err != nil {
		return err
	}

	transcripts, err := p.transcribe(ctx, item, audioPath, jobDir)
	if err != nil {
		return err
	}

	return p.finalize(ctx, item, transcripts, jobDir)
}

// prepareMedia resolves the input to a local media file, downloading remote
// sources into the job's output directory.
func (p *Processor) prepareMedia(ctx context.Context, item *queue.Item) (string, error) {
	if !IsURL(item.Source) {
		path, err := config.ExpandPath(item.Source)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(path); err != nil {
			return "", services.Wrap(services.ErrValidation, "prepare", "input", fmt.Sprintf("input file %q not readable", item.Source), err)
		}
		if item.Title == "" {
			item.Title = baseName(path)
		}
		return path, nil
	}

	if err := p.setStatus(ctx, item, queue.StatusDownloading); err != nil {
		return "", err
	}
	logger := logging.WithContext(logging.WithStage(ctx, "download"), p.logger)
	downloadDir := filepath.Join(p.outputDir(), "downloads")
	if err := os.MkdirAll(downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	logger.Info("downloading", slog.String("url", item.Source))
	path, meta, err := p.downloader.Download(ctx, item.Source, downloadDir)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "prepare", "download", "yt-dlp failed", err)
	}
	if meta.Title != "" {
		item.Title = meta.Title
	} else {
		item.Title = baseName(path)
	}
	return path, nil
}

// prepareAudio converts the media file into the WAV the models consume. The
// conversion is skipped when the target already exists from a prior run.
func (p *Processor) prepareAudio(ctx context.Context, item *queue.Item, mediaPath string) (string, string, error) {
	logger := logging.WithContext(logging.WithStage(ctx, "extract"), p.logger)

	base := textutil.SanitizeFileName(item.Title)
	if base == "" {
		base = baseName(mediaPath)
	}
	jobDir := filepath.Join(p.outputDir(), base)
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create job dir: %w", err)
	}

	audioPath := filepath.Join(jobDir, base+".wav")
	if _, err := os.Stat(audioPath); err == nil {
		logger.Info("audio already extracted, skipping", slog.String("path", audioPath))
		item.AudioPath = audioPath
		return audioPath, jobDir, nil
	}

	if err := p.setStatus(ctx, item, queue.StatusExtracting); err != nil {
		return "", "", err
	}
	logger.Info("extracting audio", slog.String("source", mediaPath))
	if err := p.extractor.Extract(ctx, mediaPath, audioPath); err != nil {
		return "", "", services.Wrap(services.ErrExternalTool, "prepare", "extract", "audio extraction failed", err)
	}
	if seconds, err := media.Duration(ctx, "", audioPath); err == nil {
		logger.Info("audio ready", slog.Float64("duration_seconds", seconds))
	}
	item.AudioPath = audioPath
	return audioPath, jobDir, nil
}

// transcribe runs every enabled model. A failing or unavailable model is
// logged and skipped; the run only fails when no model produced a usable
// transcript.
func (p *Processor) transcribe(ctx context.Context, item *queue.Item, audioPath, jobDir string) ([]*transcript.Transcript, error) {
	if err := p.setStatus(ctx, item, queue.StatusTranscribing); err != nil {
		return nil, err
	}
	logger := logging.WithContext(logging.WithStage(ctx, "transcribe"), p.logger)

	base := baseName(audioPath)
	var transcripts []*transcript.Transcript
	for _, t := range p.transcribers {
		if err := t.Available(); err != nil {
			logger.Warn("model unavailable, skipping",
				slog.String(logging.FieldModel, t.ID()),
				logging.Error(err))
			continue
		}
		logger.Info("transcribing", slog.String(logging.FieldModel, t.ID()))

		result, err := t.Transcribe(ctx, audioPath, jobDir)
		if err != nil {
			logger.Warn("model failed, continuing with remaining models",
				slog.String(logging.FieldModel, t.ID()),
				logging.Error(err))
			continue
		}
		if result.IsEmpty() {
			logger.Warn("model produced an empty transcript",
				slog.String(logging.FieldModel, t.ID()))
			continue
		}

		modelPath := filepath.Join(jobDir, fmt.Sprintf("%s-%s.json", base, t.ID()))
		if err := transcript.SaveFile(modelPath, result); err != nil {
			return nil, err
		}
		item.TranscriptPaths = append(item.TranscriptPaths, modelPath)
		transcripts = append(transcripts, result)
	}

	if len(transcripts) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "models", "every model failed", nil)
	}
	if err := p.store.Update(ctx, item); err != nil {
		return nil, err
	}
	return transcripts, nil
}

// finalize builds the consensus transcript and writes the output formats.
func (p *Processor) finalize(ctx context.Context, item *queue.Item, transcripts []*transcript.Transcript, jobDir string) error {
	logger := logging.WithContext(logging.WithStage(ctx, "consensus"), p.logger)

	if p.opts.SkipConsensus || !p.cfg.Consensus.Enabled {
		logger.Info("consensus disabled, per-model transcripts only")
		return nil
	}
	if len(transcripts) < p.cfg.Consensus.MinModels {
		logger.Warn("too few transcripts for consensus, per-model transcripts only",
			slog.Int("transcripts", len(transcripts)),
			slog.Int("min_models", p.cfg.Consensus.MinModels))
		return nil
	}

	if err := p.setStatus(ctx, item, queue.StatusConsensus); err != nil {
		return err
	}
	result, err := p.builder.Build(transcripts)
	if err != nil {
		return err
	}
	logger.Info("consensus built",
		slog.String("method", string(result.Method)),
		slog.Int("words", len(result.Words)),
		slog.Float64("majority_coverage", result.MajorityCoverage))

	base := filepath.Base(jobDir)
	paths, err := output.WriteResult(jobDir, base, p.formats(), result)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if filepath.Ext(path) == ".json" {
			item.ConsensusPath = path
			break
		}
	}
	return nil
}

func (p *Processor) setStatus(ctx context.Context, item *queue.Item, status queue.Status) error {
	item.Status = status
	return p.store.Update(ctx, item)
}

func (p *Processor) outputDir() string {
	if p.opts.OutputDir != "" {
		return p.opts.OutputDir
	}
	return p.cfg.Paths.OutputDir
}

func (p *Processor) formats() []string {
	if len(p.opts.Formats) > 0 {
		return p.opts.Formats
	}
	return p.cfg.Output.Formats
}
