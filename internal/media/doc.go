// Package media wraps ffmpeg and ffprobe for audio preparation.
//
// Transcription models expect mono 16kHz PCM WAV input; Extract produces it
// from arbitrary video or audio sources. Duration supports output validation
// (SRT cues past the end of the audio indicate a broken transcript).
package media
