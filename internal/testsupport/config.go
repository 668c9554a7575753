package testsupport

import (
	"path/filepath"
	"testing"

	"polyscribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithModels sets the enabled model list on the test config.
func WithModels(models ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Models.Enabled = models
	}
}

// WithFormats sets the output formats on the test config.
func WithFormats(formats ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Output.Formats = formats
	}
}

// WithConsensusDisabled turns consensus building off.
func WithConsensusDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Consensus.Enabled = false
	}
}
