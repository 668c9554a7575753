// Package language resolves the language codes transcription models emit
// into canonical BCP 47 codes and human-readable names.
package language
