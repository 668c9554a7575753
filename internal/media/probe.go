package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Duration returns the container duration of a media file in seconds.
func Duration(ctx context.Context, ffprobeBinary, path string) (float64, error) {
	ffprobeBinary = strings.TrimSpace(ffprobeBinary)
	if ffprobeBinary == "" {
		ffprobeBinary = "ffprobe"
	}
	if strings.TrimSpace(path) == "" {
		return 0, fmt.Errorf("probe duration: empty path")
	}

	cmd := exec.CommandContext(ctx, ffprobeBinary, //nolint:gosec
		"-v", "error",
		"-hide_banner",
		"-show_format",
		"-of", "json",
		"--", path)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("probe duration: %w", err)
	}
	return parseDuration(output)
}

func parseDuration(output []byte) (float64, error) {
	var payload struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(output, &payload); err != nil {
		return 0, fmt.Errorf("probe duration: parse: %w", err)
	}
	value := strings.TrimSpace(payload.Format.Duration)
	if value == "" {
		return 0, fmt.Errorf("probe duration: no duration in ffprobe output")
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("probe duration: parse %q: %w", value, err)
	}
	return seconds, nil
}
