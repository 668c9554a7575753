package consensus

// positionVote is the outcome of voting at one aligned position.
type positionVote struct {
	winner      string
	voteCount   int
	totalVoters int
	// contributors indexes the sequences whose normalized word matched the
	// winner, in input order.
	contributors []int
	// sourceIdx is the sequence supplying the winner's original casing and
	// timestamps.
	sourceIdx int
}

// hasStrictMajority reports whether more than half of the position's voters
// agreed on the winner.
func (v positionVote) hasStrictMajority() bool {
	return v.voteCount*2 > v.totalVoters
}

// votePositions runs position-wise majority voting across all sequences.
// scores are the per-sequence aggregate similarities used for tie-breaking.
func votePositions(sequences []sequence, scores []float64) []positionVote {
	length := alignedLength(sequences)
	votes := make([]positionVote, 0, length)

	for pos := 0; pos < length; pos++ {
		counts := make(map[string]int, len(sequences))
		for _, seq := range sequences {
			counts[seq.normalized[pos]]++
		}

		winnerIdx := pickWinner(sequences, scores, counts, pos)
		winner := sequences[winnerIdx].normalized[pos]

		vote := positionVote{
			winner:      winner,
			voteCount:   counts[winner],
			totalVoters: len(sequences),
			sourceIdx:   winnerIdx,
		}
		for i, seq := range sequences {
			if seq.normalized[pos] == winner {
				vote.contributors = append(vote.contributors, i)
			}
		}
		votes = append(votes, vote)
	}
	return votes
}

// pickWinner selects the sequence whose word wins position pos. The word with
// the strictly highest vote count wins outright; tied words fall back to the
// contributor with the highest aggregate similarity, then to the
// lexicographically earliest model ID. The returned index doubles as the
// casing/timestamp source for the winning word: a single resolution order
// (similarity before model ID) decides both, deliberately, so casing and
// timings always come from the same transcript.
func pickWinner(sequences []sequence, scores []float64, counts map[string]int, pos int) int {
	winner := 0
	for i := 1; i < len(sequences); i++ {
		if preferCandidate(sequences, scores, counts, i, winner, pos) {
			winner = i
		}
	}
	return winner
}

// preferCandidate reports whether sequence candidate beats sequence current
// at position pos under the voting order: vote count, aggregate similarity,
// model ID.
func preferCandidate(sequences []sequence, scores []float64, counts map[string]int, candidate, current, pos int) bool {
	candWord := sequences[candidate].normalized[pos]
	currWord := sequences[current].normalized[pos]
	candCount := counts[candWord]
	currCount := counts[currWord]
	if candCount != currCount {
		return candCount > currCount
	}
	if scores[candidate] != scores[current] {
		return scores[candidate] > scores[current]
	}
	return sequences[candidate].modelID < sequences[current].modelID
}

// majorityCoverage is the fraction of voted positions that reached a strict
// majority.
func majorityCoverage(votes []positionVote) float64 {
	if len(votes) == 0 {
		return 0
	}
	reached := 0
	for _, vote := range votes {
		if vote.hasStrictMajority() {
			reached++
		}
	}
	return float64(reached) / float64(len(votes))
}
