package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"polyscribe/internal/transcript"
)

// Transcriber is the contract every transcription model implements. Adding a
// model means implementing this interface and registering a factory under its
// model ID.
type Transcriber interface {
	// ID returns the stable model identifier used in configuration, output
	// filenames, and consensus provenance.
	ID() string
	// Available reports whether the model's external tooling is in place,
	// returning a descriptive error when it is not.
	Available() error
	// Transcribe runs the model against an audio file and writes its raw
	// output under outputDir, returning the parsed transcript.
	Transcribe(ctx context.Context, audioPath, outputDir string) (*transcript.Transcript, error)
}

// Registry maps model IDs to transcriber constructors.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]func() (Transcriber, error)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]func() (Transcriber, error))}
}

// Register adds a model factory. Registering an already-known ID replaces
// the previous factory.
func (r *Registry) Register(modelID string, factory func() (Transcriber, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[modelID] = factory
}

// Get constructs the transcriber for a model ID.
func (r *Registry) Get(modelID string) (Transcriber, error) {
	r.mu.RLock()
	factory, ok := r.factories[modelID]
	r.mu.RUnlock()
	if !ok {
		return nil, Wrap(ErrNotFound, "models", "lookup", fmt.Sprintf("no transcriber registered for %q", modelID), nil)
	}
	return factory()
}

// IDs returns the registered model IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
