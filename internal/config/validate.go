package config

import (
	"fmt"
	"strings"
)

var validFormats = map[string]struct{}{
	"json": {},
	"srt":  {},
	"txt":  {},
}

var validVADMethods = map[string]struct{}{
	"silero":   {},
	"pyannote": {},
}

// Validate checks the configuration for values that would break a run.
// Model selection is intentionally not required here; the transcribe
// command enforces it so consensus-only invocations still work.
func (c *Config) Validate() error {
	var problems []string

	for _, model := range c.Models.Enabled {
		if model == "whisperx" {
			continue
		}
		if _, ok := c.Models.Scripts[model]; !ok {
			problems = append(problems, fmt.Sprintf("models.enabled: unknown model %q (no [models.scripts.%s] table)", model, model))
		}
	}

	if c.Models.WhisperX.VADMethod != "" {
		if _, ok := validVADMethods[c.Models.WhisperX.VADMethod]; !ok {
			problems = append(problems, fmt.Sprintf("models.whisperx.vad_method: unsupported value %q", c.Models.WhisperX.VADMethod))
		}
	}

	if c.Consensus.MinModels < 1 {
		problems = append(problems, fmt.Sprintf("consensus.min_models: %d must be at least 1", c.Consensus.MinModels))
	}
	if c.Consensus.MinMajorityCoverage < 0 || c.Consensus.MinMajorityCoverage > 1 {
		problems = append(problems, fmt.Sprintf("consensus.min_majority_coverage: %v outside [0,1]", c.Consensus.MinMajorityCoverage))
	}

	if c.Audio.SampleRate <= 0 {
		problems = append(problems, fmt.Sprintf("audio.sample_rate: %d must be positive", c.Audio.SampleRate))
	}
	if c.Audio.Channels != 1 && c.Audio.Channels != 2 {
		problems = append(problems, fmt.Sprintf("audio.channels: %d must be 1 or 2", c.Audio.Channels))
	}

	if len(c.Output.Formats) == 0 {
		problems = append(problems, "output.formats: at least one format required")
	}
	for _, format := range c.Output.Formats {
		if _, ok := validFormats[format]; !ok {
			problems = append(problems, fmt.Sprintf("output.formats: unsupported format %q", format))
		}
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format: unsupported value %q", c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
