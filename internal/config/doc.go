// Package config loads, validates, and normalizes polyscribe configuration.
//
// Configuration lives in a TOML file (default ~/.config/polyscribe/config.toml,
// falling back to ./polyscribe.toml). Loading merges file values over
// repository defaults, expands ~ in path fields, and validates the result
// before anything else runs.
package config
