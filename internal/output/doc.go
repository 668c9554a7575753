// Package output renders consensus results and transcripts to their final
// file formats: JSON with provenance metadata, SubRip subtitles, and plain
// text.
package output
