// Package logging builds the application's slog loggers.
//
// Two output formats are supported: a human-oriented console format with the
// component name folded into the message prefix, and line-delimited JSON for
// machine consumption. Loggers write to stdout and, when a log directory is
// configured, to a polyscribe.log file inside it.
package logging
