// Package queue persists transcription jobs in SQLite.
//
// Every input (a single file or one playlist entry) becomes one job row that
// tracks its lifecycle from pending through download, extraction,
// transcription, and consensus to completed or failed. Completed rows let
// playlist runs resume without redoing finished entries, and the CLI lists
// them as job history.
package queue
