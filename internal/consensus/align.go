package consensus

import (
	"strings"

	"polyscribe/internal/textutil"
	"polyscribe/internal/transcript"
)

// sequence is one transcript prepared for voting: the original-case words
// kept for output reconstruction and the normalized forms used for
// comparison. Indices of the two slices correspond one to one.
type sequence struct {
	modelID    string
	language   string
	source     *transcript.Transcript
	original   []transcript.Word
	normalized []string
	text       string
}

// buildSequences normalizes each non-empty transcript into a comparable word
// sequence. Words that normalize to nothing (pure punctuation) are dropped
// from both the original and normalized views so positions stay aligned.
func buildSequences(transcripts []*transcript.Transcript) []sequence {
	sequences := make([]sequence, 0, len(transcripts))
	for _, t := range transcripts {
		if t == nil || t.IsEmpty() {
			continue
		}
		words := t.Words()
		seq := sequence{
			modelID:    t.ModelID,
			language:   t.Language,
			source:     t,
			original:   make([]transcript.Word, 0, len(words)),
			normalized: make([]string, 0, len(words)),
		}
		for _, word := range words {
			normalized := textutil.NormalizeWord(word.Text)
			if normalized == "" {
				continue
			}
			seq.original = append(seq.original, word)
			seq.normalized = append(seq.normalized, normalized)
		}
		if len(seq.normalized) == 0 {
			continue
		}
		seq.text = strings.Join(seq.normalized, " ")
		sequences = append(sequences, seq)
	}
	return sequences
}

// alignedLength returns the number of positions voted on: the shortest
// sequence length across all inputs.
func alignedLength(sequences []sequence) int {
	if len(sequences) == 0 {
		return 0
	}
	shortest := len(sequences[0].normalized)
	for _, seq := range sequences[1:] {
		if len(seq.normalized) < shortest {
			shortest = len(seq.normalized)
		}
	}
	return shortest
}

// aggregateSimilarities scores each sequence by its mean similarity against
// every other sequence. Higher scores mark transcripts that agree more with
// the rest of the field.
func aggregateSimilarities(sequences []sequence) []float64 {
	scores := make([]float64, len(sequences))
	if len(sequences) < 2 {
		return scores
	}
	for i := range sequences {
		var sum float64
		for j := range sequences {
			if i == j {
				continue
			}
			sum += textutil.SimilarityRatio(sequences[i].text, sequences[j].text)
		}
		scores[i] = sum / float64(len(sequences)-1)
	}
	return scores
}
