package scriptmodel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"polyscribe/internal/services"
)

func writeScript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model_test.py")
	if err := os.WriteFile(path, []byte("# stub"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTranscribeInvokesScript(t *testing.T) {
	script := writeScript(t)
	outputDir := t.TempDir()

	model := New("canary", script, "python3", map[string]any{"model_name": "nvidia/canary-1b"})
	var gotName string
	var gotArgs []string
	model.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		// The script writes a whisper-style JSON to --output_file.
		for i, arg := range args {
			if arg == "--output_file" {
				return os.WriteFile(args[i+1], []byte(`{"text": "hello from canary", "segments": []}`), 0o644)
			}
		}
		t.Fatal("no --output_file argument")
		return nil
	})

	result, err := model.Transcribe(context.Background(), "/tmp/clip.wav", outputDir)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if gotName != "python3" {
		t.Errorf("command = %q, want python3", gotName)
	}
	if gotArgs[0] != script {
		t.Errorf("args[0] = %q, want script path", gotArgs[0])
	}
	joined := strings.Join(gotArgs, " ")
	if !strings.Contains(joined, "--input_file /tmp/clip.wav") {
		t.Errorf("missing input file arg: %v", gotArgs)
	}
	if !strings.Contains(joined, "model_name") {
		t.Errorf("settings not forwarded as --config JSON: %v", gotArgs)
	}
	if !strings.Contains(joined, filepath.Join(outputDir, "clip-canary.json")) {
		t.Errorf("output file not named <base>-<model>.json: %v", gotArgs)
	}

	if result.ModelID != "canary" {
		t.Errorf("ModelID = %q", result.ModelID)
	}
	if result.Text() != "hello from canary" {
		t.Errorf("Text() = %q", result.Text())
	}
}

func TestTranscribeMissingScript(t *testing.T) {
	model := New("parakeet", "/nonexistent/model_parakeet.py", "", nil)
	_, err := model.Transcribe(context.Background(), "/tmp/clip.wav", t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing script")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}
}

func TestTranscribeScriptFailure(t *testing.T) {
	model := New("canary", writeScript(t), "", nil)
	model.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return errors.New("CUDA out of memory")
	})
	_, err := model.Transcribe(context.Background(), "/tmp/clip.wav", t.TempDir())
	if !errors.Is(err, services.ErrExternalTool) {
		t.Errorf("err = %v, want ErrExternalTool", err)
	}
}

func TestPythonDefault(t *testing.T) {
	model := New("canary", "x.py", "", nil)
	if model.python != "python3" {
		t.Errorf("python = %q, want python3", model.python)
	}
}
