package media

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ExtractSettings controls the audio conversion ffmpeg performs.
type ExtractSettings struct {
	FFmpegBinary string
	Codec        string
	SampleRate   int
	Channels     int
}

func (s ExtractSettings) withDefaults() ExtractSettings {
	if strings.TrimSpace(s.FFmpegBinary) == "" {
		s.FFmpegBinary = "ffmpeg"
	}
	if s.Codec == "" {
		s.Codec = "pcm_s16le"
	}
	if s.SampleRate <= 0 {
		s.SampleRate = 16000
	}
	if s.Channels <= 0 {
		s.Channels = 1
	}
	return s
}

// Extractor converts media files into transcription-ready audio.
type Extractor struct {
	settings      ExtractSettings
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewExtractor creates an Extractor with the given settings.
func NewExtractor(settings ExtractSettings) *Extractor {
	return &Extractor{settings: settings.withDefaults()}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *Extractor) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	e.commandRunner = runner
}

// Extract converts source into a WAV file at dest suitable for the
// transcription models.
func (e *Extractor) Extract(ctx context.Context, source, dest string) error {
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("extract audio: empty source path")
	}
	if strings.TrimSpace(dest) == "" {
		return fmt.Errorf("extract audio: empty destination path")
	}
	args := e.buildArgs(source, dest)
	if e.commandRunner != nil {
		return e.commandRunner(ctx, e.settings.FFmpegBinary, args...)
	}
	cmd := exec.CommandContext(ctx, e.settings.FFmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg extract: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (e *Extractor) buildArgs(source, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", strconv.Itoa(e.settings.Channels),
		"-ar", strconv.Itoa(e.settings.SampleRate),
		"-c:a", e.settings.Codec,
		dest,
	}
}
