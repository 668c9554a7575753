package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"polyscribe/internal/transcript"
)

// WriteFile creates the target path with the given contents, making parent
// directories as needed.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteTranscript writes a whisper-style transcript JSON built from text.
func WriteTranscript(t testing.TB, path, modelID, text string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := transcript.SaveFile(path, TranscriptFromText(modelID, text)); err != nil {
		t.Fatalf("write transcript %s: %v", path, err)
	}
}

// TranscriptFromText builds an in-memory transcript whose words carry
// sequential one-second timestamps.
func TranscriptFromText(modelID, text string) *transcript.Transcript {
	fields := strings.Fields(text)
	words := make([]transcript.Word, 0, len(fields))
	for i, field := range fields {
		start := float64(i)
		end := start + 0.9
		words = append(words, transcript.Word{Text: field, Start: &start, End: &end})
	}
	segmentEnd := 0.0
	if len(words) > 0 {
		segmentEnd = *words[len(words)-1].End
	}
	return &transcript.Transcript{
		ModelID:  modelID,
		Language: "en",
		Segments: []transcript.Segment{{Start: 0, End: segmentEnd, Text: text, Words: words}},
		FullText: text,
	}
}
