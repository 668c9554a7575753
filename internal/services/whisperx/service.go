package whisperx

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"polyscribe/internal/services"
	"polyscribe/internal/transcript"
)

// Service provides WhisperX transcription.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// ID returns the model identifier.
func (s *Service) ID() string { return ModelID }

// Available reports whether uvx is installed.
func (s *Service) Available() error {
	if _, err := exec.LookPath(UVXCommand); err != nil {
		return services.Wrap(services.ErrConfiguration, "transcribe", ModelID,
			fmt.Sprintf("%s not found in PATH", UVXCommand), err)
	}
	return nil
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Transcribe runs WhisperX against an audio file. WhisperX writes
// <base>.json into outputDir; the result is parsed into the shared
// transcript model.
func (s *Service) Transcribe(ctx context.Context, audioPath, outputDir string) (*transcript.Transcript, error) {
	if audioPath == "" {
		return nil, services.Wrap(services.ErrValidation, "transcribe", ModelID, "audio path required", nil)
	}
	if outputDir == "" {
		outputDir = filepath.Dir(audioPath)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrTransient, "transcribe", ModelID, "ensure output dir", err)
	}

	args := s.buildArgs(audioPath, outputDir)
	if err := s.run(ctx, UVXCommand, args...); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", ModelID, "whisperx invocation failed", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(outputDir, baseName+".json")
	result, err := loadOutput(jsonPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", ModelID, "parse whisperx output", err)
	}
	return result, nil
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(audioPath, outputDir string) []string {
	args := make([]string, 0, 24)

	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		audioPath,
		"--model", s.Model(),
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--segment_resolution", SegmentResolution,
	)

	vadMethod := s.cfg.VADMethod
	if vadMethod == "" {
		vadMethod = VADMethodSilero
	}
	args = append(args, "--vad_method", vadMethod)
	if vadMethod == VADMethodPyannote && s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}

	if s.cfg.Language != "" {
		args = append(args, "--language", s.cfg.Language)
	}

	if s.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}

	return args
}

// outputPayload is the JSON structure WhisperX emits.
type outputPayload struct {
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
		Words []struct {
			Word  string   `json:"word"`
			Start *float64 `json:"start"`
			End   *float64 `json:"end"`
		} `json:"words"`
	} `json:"segments"`
}

func loadOutput(jsonPath string) (*transcript.Transcript, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var payload outputPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse whisperx json: %w", err)
	}

	segments := make([]transcript.Segment, 0, len(payload.Segments))
	var texts []string
	for _, seg := range payload.Segments {
		words := make([]transcript.Word, 0, len(seg.Words))
		for _, word := range seg.Words {
			words = append(words, transcript.Word{Text: word.Word, Start: word.Start, End: word.End})
		}
		text := strings.TrimSpace(seg.Text)
		if text != "" {
			texts = append(texts, text)
		}
		segments = append(segments, transcript.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  text,
			Words: words,
		})
	}

	return &transcript.Transcript{
		ModelID:  ModelID,
		Language: payload.Language,
		Segments: segments,
		FullText: strings.Join(texts, " "),
	}, nil
}
