// Package workflow drives the transcription pipeline: prepare audio from a
// local file or URL, run each enabled model, build the consensus transcript,
// and write the output formats. Job state is persisted through the queue
// store so playlist runs can resume.
package workflow
