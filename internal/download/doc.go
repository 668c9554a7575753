// Package download wraps yt-dlp for video download and playlist probing.
//
// Downloads request the info JSON alongside the media so title, uploader, and
// upload date flow into transcript metadata without a second invocation.
// Probing uses flat playlist extraction so large playlists enumerate quickly.
package download
