// Package config loads, normalizes, and validates ufid configuration.
//
// It supplies defaults that mirror the reference tool (4-byte ids, NFKC,
// case folding, trimming, strict policy, warn verification), reads TOML
// files from an explicit path, the user config directory, or a project
// local ufid.toml, and honours the UFID_NAMESPACE environment fallback.
// Command-line flags are layered on top by the CLI after Load returns.
package config
