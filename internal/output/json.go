package output

import (
	"encoding/json"
	"fmt"
	"os"

	"polyscribe/internal/consensus"
)

type jsonWord struct {
	Word        string   `json:"word"`
	Start       *float64 `json:"start,omitempty"`
	End         *float64 `json:"end,omitempty"`
	Confidence  float64  `json:"confidence"`
	VoteCount   int      `json:"vote_count"`
	TotalVoters int      `json:"total_voters"`
	Models      []string `json:"models,omitempty"`
}

type consensusInfo struct {
	Method           string             `json:"method"`
	SourceCount      int                `json:"source_count"`
	SourceModels     []string           `json:"source_models"`
	MajorityCoverage float64            `json:"majority_coverage"`
	Similarity       map[string]float64 `json:"similarity,omitempty"`
}

type jsonPayload struct {
	Text          string        `json:"text"`
	Language      string        `json:"language,omitempty"`
	Words         []jsonWord    `json:"words"`
	ConsensusInfo consensusInfo `json:"consensus_info"`
}

// WriteJSON writes the consensus result with full provenance metadata.
func WriteJSON(path string, result *consensus.Result) error {
	payload := jsonPayload{
		Text:     result.Text(),
		Language: result.Language,
		Words:    make([]jsonWord, len(result.Words)),
		ConsensusInfo: consensusInfo{
			Method:           string(result.Method),
			SourceCount:      len(result.Similarity),
			SourceModels:     result.SourceModels,
			MajorityCoverage: result.MajorityCoverage,
			Similarity:       result.Similarity,
		},
	}
	if payload.ConsensusInfo.SourceCount == 0 {
		payload.ConsensusInfo.SourceCount = len(result.SourceModels)
	}
	for i, word := range result.Words {
		payload.Words[i] = jsonWord{
			Word:        word.Text,
			Start:       word.Start,
			End:         word.End,
			Confidence:  word.Confidence,
			VoteCount:   word.VoteCount,
			TotalVoters: word.TotalVoters,
			Models:      word.Models,
		}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode consensus json: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write consensus json: %w", err)
	}
	return nil
}
