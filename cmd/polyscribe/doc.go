// Command polyscribe transcribes audio and video through multiple
// speech-to-text models and merges their outputs into a consensus
// transcript.
package main
