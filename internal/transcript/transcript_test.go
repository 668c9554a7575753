package transcript

import (
	"os"
	"path/filepath"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestWordsFromSegmentsWithDetail(t *testing.T) {
	tr := &Transcript{
		ModelID: "whisperx",
		Segments: []Segment{
			{
				Start: 0, End: 1.5, Text: "Hello world",
				Words: []Word{
					{Text: "Hello", Start: ptr(0), End: ptr(0.7)},
					{Text: "world", Start: ptr(0.8), End: ptr(1.5)},
				},
			},
			{
				Start: 1.6, End: 2.2, Text: "again",
				Words: []Word{{Text: "again", Start: ptr(1.6), End: ptr(2.2)}},
			},
		},
	}

	words := tr.Words()
	if len(words) != 3 {
		t.Fatalf("Words() len = %d, want 3", len(words))
	}
	if words[2].Text != "again" {
		t.Errorf("words[2] = %q, want %q", words[2].Text, "again")
	}
	if words[0].Start == nil || *words[0].Start != 0 {
		t.Errorf("words[0].Start = %v, want 0", words[0].Start)
	}
}

func TestWordsFallsBackToSegmentText(t *testing.T) {
	tr := &Transcript{
		ModelID:  "canary",
		Segments: []Segment{{Start: 0, End: 2, Text: "no word timings here"}},
	}
	words := tr.Words()
	if len(words) != 4 {
		t.Fatalf("Words() len = %d, want 4", len(words))
	}
	if words[0].Start != nil {
		t.Errorf("expected nil start for text-derived word, got %v", *words[0].Start)
	}
}

func TestWordsFallsBackToFullText(t *testing.T) {
	tr := &Transcript{ModelID: "parakeet", FullText: "only full text"}
	if got := len(tr.Words()); got != 3 {
		t.Fatalf("Words() len = %d, want 3", got)
	}
}

func TestTextDerivedFromSegments(t *testing.T) {
	tr := &Transcript{
		Segments: []Segment{
			{Text: " first part "},
			{Text: ""},
			{Text: "second part"},
		},
	}
	if got := tr.Text(); got != "first part second part" {
		t.Errorf("Text() = %q", got)
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		tr   *Transcript
		want bool
	}{
		{"nil", nil, true},
		{"zero value", &Transcript{}, true},
		{"whitespace only", &Transcript{FullText: "   "}, true},
		{"has text", &Transcript{FullText: "hello"}, false},
		{"has segments", &Transcript{Segments: []Segment{{Text: "hi"}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	payload := `{
		"title": "Some Video",
		"model": "whisperx",
		"language": "en",
		"text": "Hello world.",
		"segments": [
			{"start": 0.0, "end": 1.2, "text": "Hello world.",
			 "words": [
				{"word": "Hello", "start": 0.0, "end": 0.6},
				{"word": "world.", "start": 0.7, "end": 1.2}
			 ]}
		]
	}`
	path := filepath.Join(t.TempDir(), "audio-whisperx.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	tr, err := LoadFile(path, "fallback")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if tr.ModelID != "whisperx" {
		t.Errorf("ModelID = %q, want whisperx", tr.ModelID)
	}
	if tr.Language != "en" {
		t.Errorf("Language = %q, want en", tr.Language)
	}
	if len(tr.Segments) != 1 || len(tr.Segments[0].Words) != 2 {
		t.Fatalf("unexpected segment shape: %+v", tr.Segments)
	}
	if tr.Text() != "Hello world." {
		t.Errorf("Text() = %q", tr.Text())
	}
}

func TestLoadFileFallbackModelID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio-canary.json")
	if err := os.WriteFile(path, []byte(`{"text": "hi there"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	tr, err := LoadFile(path, "canary")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if tr.ModelID != "canary" {
		t.Errorf("ModelID = %q, want canary", tr.ModelID)
	}
}

func TestLoadFileInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path, "x"); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
