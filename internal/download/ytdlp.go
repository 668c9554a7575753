package download

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// Metadata carries the video fields injected into transcript outputs.
type Metadata struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Uploader    string `json:"uploader"`
	// UploadDate is in yt-dlp's YYYYMMDD format.
	UploadDate string `json:"upload_date"`
}

// Entry is one item of a probed playlist.
type Entry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Uploader    string `json:"uploader"`
	UploadDate  string `json:"upload_date"`
	Description string `json:"description"`
}

// Info is the result of probing a URL without downloading.
type Info struct {
	Type     string  `json:"_type"`
	Metadata Metadata
	Entries  []Entry `json:"entries"`
}

// IsPlaylist reports whether the probed URL resolved to a playlist.
func (i *Info) IsPlaylist() bool {
	return i != nil && i.Type == "playlist" && len(i.Entries) > 0
}

// PlaylistEntries returns the playlist's entries with watch URLs filled in
// for entries that only carry a video ID.
func (i *Info) PlaylistEntries() []Entry {
	if i == nil {
		return nil
	}
	entries := make([]Entry, 0, len(i.Entries))
	for _, entry := range i.Entries {
		if entry.URL == "" && entry.ID != "" {
			entry.URL = "https://www.youtube.com/watch?v=" + entry.ID
		}
		if entry.URL == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// IsYouTubeURL reports whether input points at YouTube.
func IsYouTubeURL(input string) bool {
	return strings.Contains(input, "youtube.com") || strings.Contains(input, "youtu.be")
}

// Client invokes yt-dlp.
type Client struct {
	binary        string
	format        string
	commandOutput func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewClient creates a yt-dlp client. binary defaults to "yt-dlp".
func NewClient(binary, format string) *Client {
	if strings.TrimSpace(binary) == "" {
		binary = "yt-dlp"
	}
	return &Client{binary: binary, format: format}
}

// WithCommandOutput sets a custom command runner (for testing).
func (c *Client) WithCommandOutput(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	c.commandOutput = runner
}

// Download fetches a video into outputDir and returns the downloaded file
// path plus its metadata.
func (c *Client) Download(ctx context.Context, url, outputDir string) (string, Metadata, error) {
	args := []string{
		"--no-warnings",
		"--print-json",
		"-o", outputDir + "/%(title)s.%(ext)s",
	}
	if c.format != "" {
		args = append(args, "-f", c.format)
	}
	args = append(args, url)

	output, err := c.run(ctx, args...)
	if err != nil {
		return "", Metadata{}, fmt.Errorf("yt-dlp download: %w", err)
	}

	var payload struct {
		Metadata
		Filename string `json:"_filename"`
	}
	if err := json.Unmarshal(lastJSONLine(output), &payload); err != nil {
		return "", Metadata{}, fmt.Errorf("yt-dlp download: parse info json: %w", err)
	}
	if payload.Filename == "" {
		return "", Metadata{}, fmt.Errorf("yt-dlp download: no filename in info json")
	}
	return payload.Filename, payload.Metadata, nil
}

// Probe inspects a URL without downloading. Playlists are enumerated flat.
func (c *Client) Probe(ctx context.Context, url string) (*Info, error) {
	output, err := c.run(ctx,
		"--no-warnings",
		"--skip-download",
		"--flat-playlist",
		"-J",
		url)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp probe: %w", err)
	}

	var info Info
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("yt-dlp probe: parse info json: %w", err)
	}
	if err := json.Unmarshal(output, &info.Metadata); err != nil {
		return nil, fmt.Errorf("yt-dlp probe: parse metadata: %w", err)
	}
	return &info, nil
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	if c.commandOutput != nil {
		return c.commandOutput(ctx, c.binary, args...)
	}
	cmd := exec.CommandContext(ctx, c.binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", c.binary, err, strings.TrimSpace(stderr.String()))
	}
	return output, nil
}

// lastJSONLine returns the final non-empty line of yt-dlp output; with
// --print-json the info dict is printed after any progress noise.
func lastJSONLine(output []byte) []byte {
	lines := bytes.Split(bytes.TrimSpace(output), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		line := bytes.TrimSpace(lines[i])
		if len(line) > 0 {
			return line
		}
	}
	return output
}
