// Package whisperx runs WhisperX transcription through uvx and parses its
// JSON output into the shared transcript model.
package whisperx
