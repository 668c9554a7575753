// Package deps checks the external binaries the transcription pipeline
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"polyscribe/internal/config"
)

// Requirement defines an external dependency polyscribe relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ForConfig derives the requirement list from the active configuration.
// yt-dlp is optional because purely local workflows never download.
func ForConfig(cfg *config.Config) []Requirement {
	requirements := []Requirement{
		{Name: "ffmpeg", Command: cfg.Audio.FFmpegBinary, Description: "audio extraction"},
		{Name: "yt-dlp", Command: cfg.Download.Binary, Description: "video and playlist downloads", Optional: true},
		{Name: "uvx", Command: "uvx", Description: "runs the WhisperX model", Optional: true},
	}

	pythons := make(map[string]bool)
	for id, script := range cfg.Models.Scripts {
		python := script.Python
		if python == "" {
			python = "python3"
		}
		if pythons[python] {
			continue
		}
		pythons[python] = true
		requirements = append(requirements, Requirement{
			Name:        python,
			Command:     python,
			Description: fmt.Sprintf("runs script models (e.g. %s)", id),
			Optional:    true,
		})
	}
	return requirements
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of required dependencies that are not
// available.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
