// Package main hosts the ufid CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration lazily, layers command-line
// flags over it, and hands record documents to the assignment engine. The
// rewritten document goes to stdout or a file; summaries, diagnostics, and
// logs go to stderr.
//
// Keep this package lean: behaviour belongs in the internal packages and is
// surfaced here through commands and flags.
package main
