// Package journal keeps a SQLite history of successful assignment runs.
//
// Each entry records where a document came from and went to, the
// parameters it was assigned under, how many ids changed, and BLAKE3
// digests of the input and output bytes so a later run can tell whether a
// file was edited since ufid last wrote it. Schema changes bump
// schemaVersion in schema.go; users delete the database to adopt them.
package journal
