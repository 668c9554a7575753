// Package scriptmodel runs external transcription scripts that follow the
// polyscribe model-script convention:
//
//	<python> <script> --input_file <audio> --output_file <json> --config <json>
//
// The script writes a whisper-style transcript JSON to the output file. The
// faster_whisper, parakeet, and canary models all use this shape.
package scriptmodel

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

// Model is a script-backed transcriber.
type Model struct {
	id            string
	script        string
	python        string
	settings      map[string]any
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// New creates a script-backed model. python defaults to "python3".
func New(id, script, python string, settings map[string]any) *Model {
	if python == "" {
		python = "python3"
	}
	return &Model{id: id, script: script, python: python, settings: settings}
}

// WithCommandRunner sets a custom command runner (for testing).
func (m *Model) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	m.commandRunner = runner
}

// ID returns the model identifier.
func (m *Model) ID() string { return m.id }

// Available reports whether the model script and its interpreter exist.
func (m *Model) Available() error {
	if m.script == "" {
		return services.Wrap(services.ErrConfiguration, "transcribe", m.id, "no script configured", nil)
	}
	if _, err := os.Stat(m.script); err != nil {
		return services.Wrap(services.ErrConfiguration, "transcribe", m.id,
			fmt.Sprintf("model script %q not found", m.script), err)
	}
	if _, err := exec.LookPath(m.python); err != nil {
		return services.Wrap(services.ErrConfiguration, "transcribe", m.id,
			fmt.Sprintf("interpreter %q not found in PATH", m.python), err)
	}
	return nil
}

// Transcribe invokes the model script and parses the transcript it writes.
// The output file is named <audio base>-<model id>.json inside outputDir.
func (m *Model) Transcribe(ctx context.Context, audioPath, outputDir string) (*transcript.Transcript, error) {
	if audioPath == "" {
		return nil, services.Wrap(services.ErrValidation, "transcribe", m.id, "audio path required", nil)
	}
	if m.script == "" {
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", m.id, "no script configured", nil)
	}
	if _, err := os.Stat(m.script); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", m.id,
			fmt.Sprintf("model script %q not found", m.script), err)
	}
	if outputDir == "" {
		outputDir = filepath.Dir(audioPath)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrTransient, "transcribe", m.id, "ensure output dir", err)
	}

	settingsJSON, err := json.Marshal(m.settings)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", m.id, "marshal settings", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	outputFile := filepath.Join(outputDir, fmt.Sprintf("%s-%s.json", baseName, m.id))

	args := []string{
		m.script,
		"--input_file", audioPath,
		"--output_file", outputFile,
		"--config", string(settingsJSON),
	}
	if err := m.run(ctx, m.python, args...); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", m.id, "model script failed", err)
	}

	result, err := transcript.LoadFile(outputFile, m.id)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", m.id, "parse model output", err)
	}
	result.ModelID = m.id
	return result, nil
}

func (m *Model) run(ctx context.Context, name string, args ...string) error {
	if m.commandRunner != nil {
		return m.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
