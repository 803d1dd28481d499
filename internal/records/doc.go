// Package records models the collection fed to the assignment engine.
//
// A Record exposes the three fields the engine cares about (name, id, and
// an optional human readable label) as explicit optional strings, and keeps
// every other field verbatim and in its original order so a round trip
// through Decode and Encode only touches the id slot.
package records
