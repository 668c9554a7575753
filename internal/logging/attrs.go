package logging

import (
	"io"
	"log/slog"
)

// Standardized structured logging keys.
const (
	// FieldComponent identifies the emitting subsystem; the console handler
	// folds it into the message prefix.
	FieldComponent = "component"
	// FieldModel is the transcription model identifier.
	FieldModel = "model"
	// FieldItemID is the queue item identifier.
	FieldItemID = "item_id"
	// FieldStage is the workflow stage name.
	FieldStage = "stage"
)

// Error wraps an error as a standard "error" attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// WithComponent returns a logger tagged with a component attribute.
// A nil base logger yields a no-op logger.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
