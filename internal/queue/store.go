package queue

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"polyscribe/internal/services"
)

//go:embed schema.sql
var schemaSQL string

const schemaVersion = 1

// ErrItemNotFound marks lookups for jobs that do not exist.
var ErrItemNotFound = errors.New("queue item not found")

// Store is the SQLite-backed job store. One store serves one workspace.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the job database under workDir.
func Open(workDir string) (*Store, error) {
	if strings.TrimSpace(workDir) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "queue", "open", "work directory not configured", nil)
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "queue", "open", "create work directory", err)
	}

	path := filepath.Join(workDir, "jobs.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open job database: %w", err)
	}
	// modernc.org/sqlite serializes at the connection level; a single
	// connection avoids SQLITE_BUSY between the CLI and the worker.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) init() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}

	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return s.createSchema()
	case err != nil:
		return fmt.Errorf("inspect schema: %w", err)
	}

	var version int
	if err := s.db.QueryRow("SELECT version FROM schema_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("job database schema version %d, expected %d (delete %s to reset)", version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// NewItem inserts a pending job and returns it with its assigned ID.
func (s *Store) NewItem(ctx context.Context, source, title string, playlistIndex int) (*Item, error) {
	now := time.Now().UTC()
	item := &Item{
		RunID:         uuid.NewString(),
		Source:        source,
		Title:         title,
		PlaylistIndex: playlistIndex,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (run_id, source, title, playlist_index, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.RunID, item.Source, item.Title, item.PlaylistIndex, string(item.Status),
		item.CreatedAt.Format(time.RFC3339Nano), item.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	item.ID, err = result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read job id: %w", err)
	}
	return item, nil
}

// Update persists the item's mutable fields and refreshes UpdatedAt.
func (s *Store) Update(ctx context.Context, item *Item) error {
	if !item.Status.Valid() {
		return fmt.Errorf("update job %d: invalid status %q", item.ID, item.Status)
	}
	paths, err := json.Marshal(item.TranscriptPaths)
	if err != nil {
		return fmt.Errorf("update job %d: encode transcript paths: %w", item.ID, err)
	}
	item.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE jobs
		SET title = ?, status = ?, audio_path = ?, transcript_paths = ?,
		    consensus_path = ?, error_message = ?, updated_at = ?
		WHERE id = ?`,
		item.Title, string(item.Status), item.AudioPath, string(paths),
		item.ConsensusPath, item.ErrorMessage,
		item.UpdatedAt.Format(time.RFC3339Nano), item.ID)
	if err != nil {
		return fmt.Errorf("update job %d: %w", item.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update job %d: %w", item.ID, err)
	}
	if rows == 0 {
		return fmt.Errorf("update job %d: %w", item.ID, ErrItemNotFound)
	}
	return nil
}

// GetByID fetches one job.
func (s *Store) GetByID(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job %d: %w", id, ErrItemNotFound)
	}
	return item, err
}

// FindBySource returns the most recent job for a source, or nil when the
// source has never been processed.
func (s *Store) FindBySource(ctx context.Context, source string) (*Item, error) {
	row := s.db.QueryRowContext(ctx,
		selectColumns+" WHERE source = ? ORDER BY id DESC LIMIT 1", source)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return item, err
}

// List returns jobs newest first, optionally filtered by status.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Item, error) {
	query := selectColumns
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = "?"
			args = append(args, string(status))
		}
		query += " WHERE status IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += " ORDER BY id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Clear deletes terminal jobs and returns how many were removed. With
// includeAll it empties the table regardless of status.
func (s *Store) Clear(ctx context.Context, includeAll bool) (int64, error) {
	query := "DELETE FROM jobs WHERE status IN (?, ?)"
	args := []any{string(StatusCompleted), string(StatusFailed)}
	if includeAll {
		query = "DELETE FROM jobs"
		args = nil
	}
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear jobs: %w", err)
	}
	return result.RowsAffected()
}

const selectColumns = `
	SELECT id, run_id, source, title, playlist_index, status, audio_path,
	       transcript_paths, consensus_path, error_message, created_at, updated_at
	FROM jobs`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	var (
		item      Item
		status    string
		paths     string
		createdAt string
		updatedAt string
	)
	err := row.Scan(&item.ID, &item.RunID, &item.Source, &item.Title,
		&item.PlaylistIndex, &status, &item.AudioPath, &paths,
		&item.ConsensusPath, &item.ErrorMessage, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	item.Status = Status(status)
	if paths != "" {
		if err := json.Unmarshal([]byte(paths), &item.TranscriptPaths); err != nil {
			return nil, fmt.Errorf("job %d: decode transcript paths: %w", item.ID, err)
		}
	}
	if item.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("job %d: parse created_at: %w", item.ID, err)
	}
	if item.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("job %d: parse updated_at: %w", item.ID, err)
	}
	return &item, nil
}
