// Package logging assembles the slog loggers used by ufid.
//
// It owns the console and JSON handlers, maps the [logging] config section
// onto them, and provides a no-op logger for tests and library callers that
// pass no logger. Output defaults to stderr because the CLI streams the
// rewritten document on stdout.
package logging
