package queue

import "time"

// Status represents the lifecycle of a job.
type Status string

const (
	StatusPending      Status = "pending"
	StatusDownloading  Status = "downloading"
	StatusExtracting   Status = "extracting"
	StatusTranscribing Status = "transcribing"
	StatusConsensus    Status = "consensus"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusDownloading,
	StatusExtracting,
	StatusTranscribing,
	StatusConsensus,
	StatusCompleted,
	StatusFailed,
}

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	for _, status := range allStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Terminal reports whether a job in this status is done, one way or another.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Item is one transcription job.
type Item struct {
	ID    int64
	RunID string
	// Source is the input path or URL.
	Source string
	Title  string
	// PlaylistIndex is the 1-based position within a playlist run, 0 for
	// standalone inputs.
	PlaylistIndex int
	Status        Status
	AudioPath     string
	// TranscriptPaths are the per-model transcript JSON files.
	TranscriptPaths []string
	ConsensusPath   string
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
