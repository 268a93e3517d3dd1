// Package config loads, normalizes, and validates organizer configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads an optional TOML file whose main purpose is extending
// the extension-to-category table. A missing file is not an error; flags
// always take precedence over file values.
package config
