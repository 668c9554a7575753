package output

import (
	"fmt"
	"os"
	"strings"

	"polyscribe/internal/consensus"
	"polyscribe/internal/transcript"
)

const (
	// maxCueWords caps how many words a single subtitle cue may carry.
	maxCueWords = 12
	// cueGapSeconds starts a new cue when speech pauses this long.
	cueGapSeconds = 1.0
	// fallbackCueSeconds paces cues for words without timestamps.
	fallbackCueSeconds = 4.0
)

type cue struct {
	start float64
	end   float64
	text  string
}

// WriteSRT renders the consensus words as SubRip subtitles, grouping words
// into cues at pauses and word-count limits.
func WriteSRT(path string, result *consensus.Result) error {
	return writeCues(path, buildCues(result.Words))
}

// WriteTranscriptSRT renders a transcript's segments as SubRip subtitles,
// one cue per segment.
func WriteTranscriptSRT(path string, t *transcript.Transcript) error {
	cues := make([]cue, 0, len(t.Segments))
	for _, segment := range t.Segments {
		text := strings.TrimSpace(segment.Text)
		if text == "" {
			continue
		}
		cues = append(cues, cue{start: segment.Start, end: segment.End, text: text})
	}
	return writeCues(path, cues)
}

func buildCues(words []consensus.Word) []cue {
	var (
		cues    []cue
		current []consensus.Word
		// clock paces untimed words so cues still progress.
		clock float64
	)

	flush := func() {
		if len(current) == 0 {
			return
		}
		c := cue{start: clock, end: clock + fallbackCueSeconds}
		if first := current[0].Start; first != nil {
			c.start = *first
		}
		if last := current[len(current)-1].End; last != nil {
			c.end = *last
		} else if c.end <= c.start {
			c.end = c.start + fallbackCueSeconds
		}
		texts := make([]string, len(current))
		for i, word := range current {
			texts[i] = word.Text
		}
		c.text = strings.Join(texts, " ")
		cues = append(cues, c)
		clock = c.end
		current = current[:0]
	}

	var prevEnd *float64
	for _, word := range words {
		if len(current) > 0 {
			if len(current) >= maxCueWords {
				flush()
				prevEnd = nil
			} else if word.Start != nil && prevEnd != nil && *word.Start-*prevEnd > cueGapSeconds {
				flush()
			}
		}
		current = append(current, word)
		prevEnd = word.End
	}
	flush()
	return cues
}

func writeCues(path string, cues []cue) error {
	var sb strings.Builder
	for i, c := range cues {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", formatTimestamp(c.start), formatTimestamp(c.end)))
		sb.WriteString(c.text)
		sb.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

// formatTimestamp renders seconds as the SubRip HH:MM:SS,mmm form.
func formatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	msTotal := int(seconds*1000 + 0.5)
	hours := msTotal / 3_600_000
	msTotal %= 3_600_000
	minutes := msTotal / 60_000
	msTotal %= 60_000
	secs := msTotal / 1_000
	millis := msTotal % 1_000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
