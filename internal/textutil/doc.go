// Package textutil provides text processing utilities for transcript
// normalization, similarity scoring, and filename sanitization.
//
// The primary use cases are:
//   - Normalizing transcript words for position-wise comparison
//   - Computing a [0,1] similarity ratio between two texts
//   - Sanitizing titles and path segments for safe filesystem use
//
// Normalization lowercases words and strips punctuation while callers retain
// the original-case forms for output reconstruction.
package textutil
