// Package logging assembles the structured slog loggers used across the
// organizer.
//
// It owns the console and JSON handlers, centralizes level parsing, and
// exposes context-aware helpers so stage code automatically tags log lines
// with the run identifier and stage name. A no-op logger is provided for
// tests and wiring code that cannot fail.
package logging
