package consensus

import (
	"reflect"
	"strings"
	"testing"

	"polyscribe/internal/transcript"
)

// makeTranscript builds a word-timestamped transcript from space-separated
// text. Word i spans [i, i+0.9] seconds.
func makeTranscript(modelID, text string) *transcript.Transcript {
	fields := strings.Fields(text)
	words := make([]transcript.Word, len(fields))
	for i, field := range fields {
		start := float64(i)
		end := float64(i) + 0.9
		words[i] = transcript.Word{Text: field, Start: &start, End: &end}
	}
	var segEnd float64
	if len(fields) > 0 {
		segEnd = float64(len(fields)-1) + 0.9
	}
	return &transcript.Transcript{
		ModelID:  modelID,
		Language: "en",
		Segments: []transcript.Segment{{Start: 0, End: segEnd, Text: text, Words: words}},
		FullText: text,
	}
}

func resultText(t *testing.T, result *Result) string {
	t.Helper()
	return result.Text()
}

func TestSingleInputPassThrough(t *testing.T) {
	input := makeTranscript("whisperx", "Hello there, General Kenobi.")
	result, err := NewBuilder().Build([]*transcript.Transcript{input})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if result.Method != MethodPassThrough {
		t.Errorf("Method = %q, want %q", result.Method, MethodPassThrough)
	}
	if got, want := resultText(t, result), "Hello there, General Kenobi."; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(result.SourceModels, []string{"whisperx"}) {
		t.Errorf("SourceModels = %v, want [whisperx]", result.SourceModels)
	}
	for i, word := range result.Words {
		if word.Confidence != 1.0 {
			t.Errorf("word %d confidence = %v, want 1.0", i, word.Confidence)
		}
		if word.Start == nil || *word.Start != float64(i) {
			t.Errorf("word %d start = %v, want %d", i, word.Start, i)
		}
	}
}

func TestUnanimousMajority(t *testing.T) {
	inputs := []*transcript.Transcript{
		makeTranscript("canary", "the rain in spain"),
		makeTranscript("parakeet", "The rain, in Spain!"),
		makeTranscript("whisperx", "THE RAIN IN SPAIN"),
	}
	result, err := NewBuilder().Build(inputs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if result.Method != MethodVoting {
		t.Fatalf("Method = %q, want %q", result.Method, MethodVoting)
	}
	if len(result.Words) != 4 {
		t.Fatalf("word count = %d, want 4", len(result.Words))
	}
	for i, word := range result.Words {
		if word.VoteCount != 3 || word.TotalVoters != 3 {
			t.Errorf("word %d votes = %d/%d, want 3/3", i, word.VoteCount, word.TotalVoters)
		}
		if word.Confidence != 1.0 {
			t.Errorf("word %d confidence = %v, want 1.0", i, word.Confidence)
		}
		if len(word.Models) != 3 {
			t.Errorf("word %d contributing models = %v, want all three", i, word.Models)
		}
	}
	if result.MajorityCoverage != 1.0 {
		t.Errorf("MajorityCoverage = %v, want 1.0", result.MajorityCoverage)
	}
	// Casing comes from the tie-break winner: identical normalized texts mean
	// equal similarity, so the lexicographically earliest model supplies it.
	if got := resultText(t, result); got != "the rain in spain" {
		t.Errorf("text = %q, want casing from model canary", got)
	}
}

func TestDeterministicTieBreak(t *testing.T) {
	build := func() *Result {
		inputs := []*transcript.Transcript{
			makeTranscript("beta", "apple"),
			makeTranscript("alpha", "zebra"),
		}
		result, err := NewBuilder().Build(inputs)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		return result
	}

	first := build()
	second := build()

	// Equal similarity scores leave lexicographic model order as the only
	// discriminator, so alpha's word must win on every run.
	if got := resultText(t, first); got != "zebra" {
		t.Errorf("text = %q, want zebra (from model alpha)", got)
	}
	if !reflect.DeepEqual(first.SourceModels, second.SourceModels) ||
		resultText(t, first) != resultText(t, second) ||
		first.Method != second.Method {
		t.Error("identical inputs produced different results across runs")
	}
}

func TestTieBreakWithinVoting(t *testing.T) {
	// Three unanimous positions keep coverage at 0.75 so voting stays
	// trusted; the final position splits 2-2 and resolves by model ID.
	inputs := []*transcript.Transcript{
		makeTranscript("delta", "we will meet cat"),
		makeTranscript("echo", "we will meet cat"),
		makeTranscript("alpha", "we will meet dog"),
		makeTranscript("bravo", "we will meet dog"),
	}
	result, err := NewBuilder().Build(inputs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if result.Method != MethodVoting {
		t.Fatalf("Method = %q, want %q", result.Method, MethodVoting)
	}
	last := result.Words[len(result.Words)-1]
	if last.Text != "dog" {
		t.Errorf("tied position winner = %q, want %q (earliest model ID)", last.Text, "dog")
	}
	if last.VoteCount != 2 || last.TotalVoters != 4 {
		t.Errorf("tied position votes = %d/%d, want 2/4", last.VoteCount, last.TotalVoters)
	}
	if last.Confidence != 0.5 {
		t.Errorf("tied position confidence = %v, want 0.5", last.Confidence)
	}
	if !reflect.DeepEqual(last.Models, []string{"alpha", "bravo"}) {
		t.Errorf("tied position models = %v, want [alpha bravo]", last.Models)
	}
}

func TestFallbackTrigger(t *testing.T) {
	// No position reaches a majority, so voting is abandoned. The middle
	// transcript shares half its characters with each of the others while
	// they share little with each other, making it the most central. Its
	// model ID sorts last to prove similarity, not ID order, decides.
	middle := makeTranscript("zeta", "abcdef ghijkl")
	left := makeTranscript("alpha", "abcdzz ghijzz")
	right := makeTranscript("mike", "zzcdef zzijkl")

	result, err := NewBuilder().Build([]*transcript.Transcript{left, middle, right})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if result.Method != MethodFallbackBest {
		t.Fatalf("Method = %q, want %q", result.Method, MethodFallbackBest)
	}
	if got := resultText(t, result); got != "abcdef ghijkl" {
		t.Errorf("fallback text = %q, want the central transcript verbatim", got)
	}
	if !reflect.DeepEqual(result.SourceModels, []string{"zeta"}) {
		t.Errorf("SourceModels = %v, want [zeta]", result.SourceModels)
	}
	if result.Similarity["zeta"] <= result.Similarity["alpha"] {
		t.Errorf("expected zeta similarity %v > alpha similarity %v",
			result.Similarity["zeta"], result.Similarity["alpha"])
	}
	for i, word := range result.Words {
		if word.Confidence != 1.0 {
			t.Errorf("fallback word %d confidence = %v, want 1.0", i, word.Confidence)
		}
	}
}

func TestFallbackThresholdConfigurable(t *testing.T) {
	// Two of four positions reach a majority (coverage 0.5). The default
	// threshold accepts that; a stricter threshold forces the fallback.
	inputs := []*transcript.Transcript{
		makeTranscript("alpha", "same same left one"),
		makeTranscript("bravo", "same same right two"),
		makeTranscript("charlie", "same same wrong six"),
	}

	voted, err := NewBuilder().Build(inputs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if voted.Method != MethodVoting {
		t.Errorf("default threshold Method = %q, want %q", voted.Method, MethodVoting)
	}
	if voted.MajorityCoverage != 0.5 {
		t.Errorf("MajorityCoverage = %v, want 0.5", voted.MajorityCoverage)
	}

	strict, err := NewBuilder(WithMinMajorityCoverage(0.75)).Build(inputs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if strict.Method != MethodFallbackBest {
		t.Errorf("strict threshold Method = %q, want %q", strict.Method, MethodFallbackBest)
	}
}

func TestTruncationToShortest(t *testing.T) {
	inputs := []*transcript.Transcript{
		makeTranscript("alpha", "one two three four five"),
		makeTranscript("bravo", "one two three"),
		makeTranscript("charlie", "one two three four"),
	}
	result, err := NewBuilder().Build(inputs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if result.Method != MethodVoting {
		t.Fatalf("Method = %q, want %q", result.Method, MethodVoting)
	}
	if len(result.Words) != 3 {
		t.Fatalf("word count = %d, want 3 (shortest input)", len(result.Words))
	}
	for _, word := range result.Words {
		if word.Text == "four" || word.Text == "five" {
			t.Errorf("position beyond shortest sequence leaked into output: %q", word.Text)
		}
	}
}

func TestFatalPrecondition(t *testing.T) {
	tests := []struct {
		name   string
		inputs []*transcript.Transcript
	}{
		{"empty list", nil},
		{"all empty", []*transcript.Transcript{
			{ModelID: "alpha"},
			{ModelID: "bravo", FullText: "   "},
		}},
		{"punctuation only", []*transcript.Transcript{
			makeTranscript("alpha", "... --- ..."),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewBuilder().Build(tt.inputs)
			if err != ErrNoTranscripts {
				t.Errorf("err = %v, want ErrNoTranscripts", err)
			}
			if result != nil {
				t.Errorf("expected nil result, got %+v", result)
			}
		})
	}
}

func TestEmptyTranscriptsIgnoredNotFatal(t *testing.T) {
	inputs := []*transcript.Transcript{
		{ModelID: "broken"},
		makeTranscript("whisperx", "still works fine"),
	}
	result, err := NewBuilder().Build(inputs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.Method != MethodPassThrough {
		t.Errorf("Method = %q, want %q", result.Method, MethodPassThrough)
	}
}

func TestWinnerCarriesSourceTimestamps(t *testing.T) {
	// bravo is outvoted at the last position, so the winner's timestamps
	// must come from a transcript that supplied the winning token.
	inputs := []*transcript.Transcript{
		makeTranscript("alpha", "good morning everyone"),
		makeTranscript("bravo", "good morning everybody"),
		makeTranscript("charlie", "good morning everyone"),
	}
	result, err := NewBuilder().Build(inputs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	last := result.Words[2]
	if last.Text != "everyone" {
		t.Fatalf("winner = %q, want everyone", last.Text)
	}
	if last.Start == nil || *last.Start != 2.0 {
		t.Errorf("winner start = %v, want 2.0", last.Start)
	}
	if !reflect.DeepEqual(last.Models, []string{"alpha", "charlie"}) {
		t.Errorf("winner models = %v, want [alpha charlie]", last.Models)
	}
}
