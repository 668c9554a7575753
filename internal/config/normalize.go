package config

import "strings"

// normalize expands path fields and cleans up user-supplied values before
// validation.
func (c *Config) normalize() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return err
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}

	enabled := make([]string, 0, len(c.Models.Enabled))
	seen := make(map[string]struct{}, len(c.Models.Enabled))
	for _, model := range c.Models.Enabled {
		model = strings.ToLower(strings.TrimSpace(model))
		if model == "" {
			continue
		}
		if _, ok := seen[model]; ok {
			continue
		}
		seen[model] = struct{}{}
		enabled = append(enabled, model)
	}
	c.Models.Enabled = enabled

	c.Models.WhisperX.Model = strings.TrimSpace(c.Models.WhisperX.Model)
	c.Models.WhisperX.VADMethod = strings.ToLower(strings.TrimSpace(c.Models.WhisperX.VADMethod))

	for id, model := range c.Models.Scripts {
		if model.Python == "" {
			model.Python = defaultPython
		}
		if model.Script, err = expandPath(strings.TrimSpace(model.Script)); err != nil {
			return err
		}
		c.Models.Scripts[id] = model
	}

	if c.Consensus.MinMajorityCoverage == 0 {
		c.Consensus.MinMajorityCoverage = defaultMinMajorityCoverage
	}
	if c.Consensus.MinModels == 0 {
		c.Consensus.MinModels = defaultMinModels
	}

	formats := make([]string, 0, len(c.Output.Formats))
	for _, format := range c.Output.Formats {
		format = strings.ToLower(strings.TrimSpace(format))
		if format != "" {
			formats = append(formats, format)
		}
	}
	c.Output.Formats = formats

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
