// Package services defines the transcription model contract, the model
// registry, and shared error classification for external collaborators
// (model processes, ffmpeg, yt-dlp).
package services
