package consensus

// passThrough returns a single transcript's words unchanged.
func passThrough(seq sequence) *Result {
	result := verbatim(seq, MethodPassThrough)
	result.MajorityCoverage = 1.0
	result.Similarity = map[string]float64{seq.modelID: 1.0}
	return result
}

// verbatim copies one sequence into a Result with full confidence per word.
func verbatim(seq sequence, method Method) *Result {
	words := make([]Word, len(seq.original))
	for i, word := range seq.original {
		words[i] = Word{
			Text:        word.Text,
			Start:       word.Start,
			End:         word.End,
			Confidence:  1.0,
			VoteCount:   1,
			TotalVoters: 1,
			Models:      []string{seq.modelID},
		}
	}
	return &Result{
		Method:           method,
		Words:            words,
		Language:         seq.language,
		SourceModels:     []string{seq.modelID},
		MajorityCoverage: 1.0,
	}
}

// assembleVoted builds the voted consensus result from per-position votes.
func assembleVoted(sequences []sequence, scores []float64, votes []positionVote, coverage float64) *Result {
	words := make([]Word, 0, len(votes))
	contributed := make(map[string]bool, len(sequences))

	for pos, vote := range votes {
		source := sequences[vote.sourceIdx]
		original := source.original[pos]

		models := make([]string, 0, len(vote.contributors))
		for _, idx := range vote.contributors {
			models = append(models, sequences[idx].modelID)
		}
		contributed[source.modelID] = true

		words = append(words, Word{
			Text:        original.Text,
			Start:       original.Start,
			End:         original.End,
			Confidence:  float64(vote.voteCount) / float64(vote.totalVoters),
			VoteCount:   vote.voteCount,
			TotalVoters: vote.totalVoters,
			Models:      models,
		})
	}

	sourceModels := make([]string, 0, len(contributed))
	for _, seq := range sequences {
		if contributed[seq.modelID] {
			sourceModels = append(sourceModels, seq.modelID)
		}
	}

	return &Result{
		Method:           MethodVoting,
		Words:            words,
		Language:         dominantLanguage(sequences, scores),
		SourceModels:     sourceModels,
		MajorityCoverage: coverage,
		Similarity:       similarityMap(sequences, scores),
	}
}

// dominantLanguage picks the language reported by the most representative
// transcript, skipping models that did not report one.
func dominantLanguage(sequences []sequence, scores []float64) string {
	best := -1
	for i, seq := range sequences {
		if seq.language == "" {
			continue
		}
		if best < 0 || scores[i] > scores[best] ||
			(scores[i] == scores[best] && seq.modelID < sequences[best].modelID) {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return sequences[best].language
}
