package testsupport

import (
	"context"
	"testing"

	"polyscribe/internal/config"
	"polyscribe/internal/queue"
)

// MustOpenStore opens a queue.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg.Paths.WorkDir)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewJob creates a pending job for tests using the provided store.
func NewJob(t testing.TB, store *queue.Store, source, title string) *queue.Item {
	t.Helper()

	item, err := store.NewItem(context.Background(), source, title, 0)
	if err != nil {
		t.Fatalf("store.NewItem: %v", err)
	}
	return item
}
