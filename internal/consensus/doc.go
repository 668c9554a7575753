// Package consensus synthesizes a single transcript from multiple model
// outputs for the same audio.
//
// The builder aligns the models' word sequences by position, votes on each
// position by normalized word, and reconstructs the winning words with the
// original casing and timestamps of the transcript that supplied them. When
// too few positions reach a strict majority the builder degrades to returning
// the single most representative transcript (highest average pairwise
// similarity) verbatim instead of a voted result.
//
// Alignment is position-based: sequences are compared index by index up to
// the shortest sequence. Positions past the shortest sequence are never
// voted on.
package consensus
