package consensus

import (
	"errors"
	"io"
	"log/slog"

	"polyscribe/internal/transcript"
)

// Method identifies how a consensus result was produced.
type Method string

const (
	// MethodVoting marks a result assembled by position-wise majority voting.
	MethodVoting Method = "voting"
	// MethodFallbackBest marks a result where voting was judged unreliable
	// and the most representative single transcript was returned verbatim.
	MethodFallbackBest Method = "fallback_best"
	// MethodPassThrough marks a single-input result returned unchanged.
	MethodPassThrough Method = "pass_through"
)

// DefaultMinMajorityCoverage is the fraction of aligned positions that must
// reach a strict majority before a voted result is trusted.
const DefaultMinMajorityCoverage = 0.5

// ErrNoTranscripts is returned when no transcript with any words was
// supplied. The builder never errors for any other reason.
var ErrNoTranscripts = errors.New("consensus: no usable transcripts")

// Word is one chosen word in the consensus output.
type Word struct {
	// Text is the original-case form from the transcript that supplied the
	// winning token.
	Text  string
	Start *float64
	End   *float64
	// Confidence is vote_count/total_voters for voted words and 1.0 for
	// pass-through and fallback words.
	Confidence  float64
	VoteCount   int
	TotalVoters int
	// Models lists the model IDs whose word at this position matched the
	// winner, in input order.
	Models []string
}

// Result is the consensus transcript plus provenance metadata. It is newly
// allocated per Build call and immutable afterwards by convention.
type Result struct {
	Method   Method
	Words    []Word
	Language string
	// SourceModels lists models that contributed at least one winning word,
	// or the single source model for pass-through and fallback results.
	SourceModels []string
	// MajorityCoverage is the fraction of voted positions that reached a
	// strict majority. 1.0 for pass-through and fallback results.
	MajorityCoverage float64
	// Similarity maps each participating model to its aggregate similarity
	// against the other transcripts.
	Similarity map[string]float64
}

// Text joins the consensus words into a single string.
func (r *Result) Text() string {
	if r == nil || len(r.Words) == 0 {
		return ""
	}
	size := 0
	for _, word := range r.Words {
		size += len(word.Text) + 1
	}
	buf := make([]byte, 0, size)
	for i, word := range r.Words {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, word.Text...)
	}
	return string(buf)
}

// Builder synthesizes a consensus transcript from multiple model outputs.
// It performs no I/O and holds no state between Build calls.
type Builder struct {
	minMajorityCoverage float64
	logger              *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithMinMajorityCoverage sets the majority-coverage threshold below which
// voting is abandoned in favor of the best single transcript.
func WithMinMajorityCoverage(threshold float64) Option {
	return func(b *Builder) {
		if threshold > 0 {
			b.minMajorityCoverage = threshold
		}
	}
}

// WithLogger sets the logger used to report degraded results.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder constructs a Builder with the default coverage threshold.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		minMajorityCoverage: DefaultMinMajorityCoverage,
		logger:              slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build produces one consensus transcript from the supplied model outputs.
// Empty transcripts are ignored; if none remain, ErrNoTranscripts is
// returned. Voting irregularities never error: a single usable input passes
// through unchanged and low majority coverage degrades to the transcript
// with the highest aggregate similarity.
func (b *Builder) Build(transcripts []*transcript.Transcript) (*Result, error) {
	sequences := buildSequences(transcripts)
	if len(sequences) == 0 {
		return nil, ErrNoTranscripts
	}

	if len(sequences) == 1 {
		b.logger.Debug("single transcript, passing through",
			slog.String("component", "consensus"),
			slog.String("model", sequences[0].modelID))
		return passThrough(sequences[0]), nil
	}

	scores := aggregateSimilarities(sequences)
	votes := votePositions(sequences, scores)
	coverage := majorityCoverage(votes)

	if coverage < b.minMajorityCoverage {
		best := bestSequence(sequences, scores)
		b.logger.Warn("majority coverage below threshold, falling back to best transcript",
			slog.String("component", "consensus"),
			slog.Float64("coverage", coverage),
			slog.Float64("threshold", b.minMajorityCoverage),
			slog.String("model", sequences[best].modelID))
		result := verbatim(sequences[best], MethodFallbackBest)
		result.MajorityCoverage = coverage
		result.Similarity = similarityMap(sequences, scores)
		return result, nil
	}

	return assembleVoted(sequences, scores, votes, coverage), nil
}

// bestSequence returns the index of the sequence with the highest aggregate
// similarity, breaking ties by lexicographic model ID.
func bestSequence(sequences []sequence, scores []float64) int {
	best := 0
	for i := 1; i < len(sequences); i++ {
		if scores[i] > scores[best] {
			best = i
			continue
		}
		if scores[i] == scores[best] && sequences[i].modelID < sequences[best].modelID {
			best = i
		}
	}
	return best
}

func similarityMap(sequences []sequence, scores []float64) map[string]float64 {
	m := make(map[string]float64, len(sequences))
	for i, seq := range sequences {
		m[seq.modelID] = scores[i]
	}
	return m
}
