package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// filePayload is the whisper-style JSON structure the model scripts emit.
// Metadata keys injected upstream (title, uploader, ...) are ignored here.
type filePayload struct {
	Model    string    `json:"model"`
	Language string    `json:"language"`
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

// LoadFile parses a whisper-style transcript JSON file. When the payload does
// not carry a model identifier, fallbackModelID is used.
func LoadFile(path, fallbackModelID string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	return Parse(data, fallbackModelID)
}

// SaveFile writes a transcript in the same whisper-style JSON shape that
// LoadFile reads, so per-model outputs round-trip through the consensus
// command.
func SaveFile(path string, t *Transcript) error {
	payload := filePayload{
		Model:    t.ModelID,
		Language: t.Language,
		Text:     t.Text(),
		Segments: t.Segments,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transcript json: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// Parse decodes a whisper-style transcript payload.
func Parse(data []byte, fallbackModelID string) (*Transcript, error) {
	var payload filePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse transcript json: %w", err)
	}
	modelID := strings.TrimSpace(payload.Model)
	if modelID == "" {
		modelID = fallbackModelID
	}
	return &Transcript{
		ModelID:  modelID,
		Language: strings.TrimSpace(payload.Language),
		Segments: payload.Segments,
		FullText: strings.TrimSpace(payload.Text),
	}, nil
}
