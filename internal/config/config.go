package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// OutputDir is where per-input result directories are created.
	OutputDir string `toml:"output_dir"`
	// WorkDir holds the job database and the run lock file.
	WorkDir string `toml:"work_dir"`
	// LogDir receives polyscribe.log.
	LogDir string `toml:"log_dir"`
}

// WhisperX contains settings for the WhisperX transcription service.
type WhisperX struct {
	Model       string `toml:"model"`
	CUDAEnabled bool   `toml:"cuda_enabled"`
	VADMethod   string `toml:"vad_method"`
	HFToken     string `toml:"hf_token"`
}

// ScriptModel describes an external-script transcription model. The script is
// invoked as `<python> <script> --input_file ... --output_file ... --config
// <settings as JSON>`.
type ScriptModel struct {
	Script   string         `toml:"script"`
	Python   string         `toml:"python"`
	Settings map[string]any `toml:"settings"`
}

// Models selects and configures the transcription models.
type Models struct {
	// Enabled lists the models run for each input, in order.
	Enabled  []string               `toml:"enabled"`
	WhisperX WhisperX               `toml:"whisperx"`
	Scripts  map[string]ScriptModel `toml:"scripts"`
}

// Consensus configures the consensus builder.
type Consensus struct {
	Enabled bool `toml:"enabled"`
	// MinModels is how many usable transcripts a job needs before a
	// consensus output is produced; below it only per-model transcripts
	// are written.
	MinModels int `toml:"min_models"`
	// MinMajorityCoverage is the fraction of aligned positions that must
	// reach a strict majority before a voted result is trusted.
	MinMajorityCoverage float64 `toml:"min_majority_coverage"`
}

// Download contains yt-dlp settings.
type Download struct {
	Binary string `toml:"binary"`
	// Format is the yt-dlp format selector for video downloads.
	Format string `toml:"format"`
}

// Audio contains ffmpeg audio-extraction settings.
type Audio struct {
	FFmpegBinary string `toml:"ffmpeg_binary"`
	Codec        string `toml:"codec"`
	SampleRate   int    `toml:"sample_rate"`
	Channels     int    `toml:"channels"`
}

// Output selects the serialization formats written per job.
type Output struct {
	Formats []string `toml:"formats"`
}

// Logging contains log output configuration.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for polyscribe.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Models    Models    `toml:"models"`
	Consensus Consensus `toml:"consensus"`
	Download  Download  `toml:"download"`
	Audio     Audio     `toml:"audio"`
	Output    Output    `toml:"output"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/polyscribe/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second and third
// return values report the resolved path and whether a file existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("polyscribe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the directories polyscribe writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.WorkDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ScriptModelFor returns the script-model settings for a model ID.
func (c *Config) ScriptModelFor(modelID string) (ScriptModel, bool) {
	model, ok := c.Models.Scripts[modelID]
	return model, ok
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
