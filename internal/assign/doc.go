// Package assign applies identifier derivation across a record collection.
//
// Run fills or recomputes ids under one of two policies. Strict derives
// every id at disambiguator 0 and refuses any collision. Auto-resolve walks
// pending records in normalized-name order and bumps the disambiguator
// until it finds an unused id. Both policies finish with a whole-collection
// duplicate scan, and Strict optionally verifies that ids present before
// the run still match the current parameters.
//
// A run is all or nothing: ids are staged and only written to the records
// when every check passes, so a failed run leaves the collection exactly as
// it was supplied. No state survives between calls.
package assign
