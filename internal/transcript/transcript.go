// Package transcript defines the timestamped transcript model shared by the
// transcription services, the consensus builder, and the output writers.
package transcript

import "strings"

// Word is a single timestamped word produced by a model. Start and End are
// seconds from the beginning of the audio; either may be nil when the source
// model does not report word timings.
type Word struct {
	Text  string   `json:"word"`
	Start *float64 `json:"start,omitempty"`
	End   *float64 `json:"end,omitempty"`
}

// Segment is an ordered run of words with segment-level timing and text.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Transcript is one model's complete output for a single audio input.
// Consumers treat it as read-only once constructed.
type Transcript struct {
	ModelID  string    `json:"model"`
	Language string    `json:"language,omitempty"`
	Segments []Segment `json:"segments"`
	FullText string    `json:"text"`
}

// Words flattens the transcript into its ordered word sequence. Segments
// without word-level detail are split on whitespace and contribute words
// without timestamps.
func (t *Transcript) Words() []Word {
	if t == nil {
		return nil
	}
	var words []Word
	for _, seg := range t.Segments {
		if len(seg.Words) > 0 {
			words = append(words, seg.Words...)
			continue
		}
		for _, field := range strings.Fields(seg.Text) {
			words = append(words, Word{Text: field})
		}
	}
	if len(words) == 0 && strings.TrimSpace(t.FullText) != "" {
		for _, field := range strings.Fields(t.FullText) {
			words = append(words, Word{Text: field})
		}
	}
	return words
}

// Text returns the transcript's full text, deriving it from segments when the
// model did not populate the top-level field.
func (t *Transcript) Text() string {
	if t == nil {
		return ""
	}
	if text := strings.TrimSpace(t.FullText); text != "" {
		return text
	}
	parts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// IsEmpty reports whether the transcript carries no words at all.
func (t *Transcript) IsEmpty() bool {
	if t == nil {
		return true
	}
	return len(t.Words()) == 0 && strings.TrimSpace(t.Text()) == ""
}

// Duration returns the end timestamp of the final segment, or 0 when the
// transcript has no segments.
func (t *Transcript) Duration() float64 {
	if t == nil || len(t.Segments) == 0 {
		return 0
	}
	return t.Segments[len(t.Segments)-1].End
}
