package textutil

import (
	"strings"
	"unicode"
)

// NormalizeWord lowercases a word and strips punctuation for comparison.
// Apostrophes and hyphens inside the word are kept so contractions and
// compounds ("don't", "twenty-one") survive normalization. Returns "" when
// nothing remains.
func NormalizeWord(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == '\'' || r == '-':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "'-")
}

// SplitWords splits text into whitespace-separated word tokens.
func SplitWords(text string) []string {
	return strings.Fields(text)
}

// NormalizeText lowercases text and collapses each word to its normalized
// form, joined by single spaces. Words that normalize to "" are dropped.
func NormalizeText(text string) string {
	fields := strings.Fields(text)
	normalized := make([]string, 0, len(fields))
	for _, field := range fields {
		if word := NormalizeWord(field); word != "" {
			normalized = append(normalized, word)
		}
	}
	return strings.Join(normalized, " ")
}
