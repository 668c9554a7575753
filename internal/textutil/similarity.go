package textutil

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// SimilarityRatio computes a similarity score between two strings in [0,1].
// The score is 2*M/T where M is the number of characters in matching runs
// and T is the combined length of both inputs. Identical strings score 1.0,
// strings with no common characters score 0.0, and the score is symmetric.
func SimilarityRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dmp := diffmatchpatch.New()
	// Unbounded diff keeps the result deterministic regardless of input size.
	dmp.DiffTimeout = 0

	var matched int
	for _, diff := range dmp.DiffMain(a, b, false) {
		if diff.Type == diffmatchpatch.DiffEqual {
			matched += utf8.RuneCountInString(diff.Text)
		}
	}
	if matched == 0 {
		return 0.0
	}
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	return 2 * float64(matched) / float64(total)
}
