// Package ufid derives short, deterministic identifiers from file names.
//
// An identifier is a BLAKE2b digest of a domain-separated payload that
// combines a fixed algorithm tag, an optional namespace, the normalized
// name, and a disambiguator k. The digest is truncated to 4, 8, or 16 bytes
// and encoded as unpadded base64url, giving 6, 11, or 22 characters.
//
// Derivation is pure: equal inputs always produce the same identifier, so
// identifiers written by earlier runs can be verified by recomputing them.
// Collision policy lives in the assign package; this package only maps
// inputs to identifiers.
package ufid
