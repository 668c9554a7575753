package textutil

import (
	"math"
	"testing"
)

func TestSimilarityRatioIdentical(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	if got := SimilarityRatio(text, text); got != 1.0 {
		t.Errorf("SimilarityRatio(identical) = %v, want 1.0", got)
	}
}

func TestSimilarityRatioEmpty(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"both empty", "", "", 1.0},
		{"a empty", "", "hello", 0.0},
		{"b empty", "hello", "", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SimilarityRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("SimilarityRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityRatioDisjoint(t *testing.T) {
	got := SimilarityRatio("aaaa", "bbbb")
	if got != 0.0 {
		t.Errorf("SimilarityRatio(disjoint) = %v, want 0.0", got)
	}
}

func TestSimilarityRatioPartial(t *testing.T) {
	got := SimilarityRatio("the quick brown fox", "the slow brown cat")
	if got <= 0 || got >= 1 {
		t.Errorf("SimilarityRatio(partial) = %v, want between 0 and 1", got)
	}
}

func TestSimilarityRatioSymmetric(t *testing.T) {
	a := "hello world this is a test"
	b := "hello there this was a test"
	ab := SimilarityRatio(a, b)
	ba := SimilarityRatio(b, a)
	if math.Abs(ab-ba) > 1e-12 {
		t.Errorf("SimilarityRatio not symmetric: %v vs %v", ab, ba)
	}
}

func TestSimilarityRatioOrdering(t *testing.T) {
	base := "the meeting starts at nine tomorrow morning"
	close := "the meeting starts at nine tomorrow evening"
	far := "completely unrelated words about gardening tools"

	closeScore := SimilarityRatio(base, close)
	farScore := SimilarityRatio(base, far)
	if closeScore <= farScore {
		t.Errorf("expected close score %v > far score %v", closeScore, farScore)
	}
}

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Hello", "hello"},
		{"trailing punctuation", "world!", "world"},
		{"surrounding punctuation", "\"quoted,\"", "quoted"},
		{"contraction", "Don't", "don't"},
		{"hyphenated", "twenty-one", "twenty-one"},
		{"only punctuation", "...", ""},
		{"empty", "", ""},
		{"digits", "2024.", "2024"},
		{"leading apostrophe stripped", "'tis'", "tis"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeWord(tt.input); got != tt.want {
				t.Errorf("NormalizeWord(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeText(t *testing.T) {
	got := NormalizeText("Hello, World!  This is... a TEST.")
	want := "hello world this is a test"
	if got != want {
		t.Errorf("NormalizeText() = %q, want %q", got, want)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "My Video", "My Video"},
		{"path separators", "a/b\\c:d", "a-b-c-d"},
		{"dropped characters", "what? \"why\" <how>", "what why how"},
		{"collapsed whitespace", "too   many   spaces", "too many spaces"},
		{"trimmed edges", " .Title. ", "Title"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
