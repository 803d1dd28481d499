package assign

import (
	"fmt"

	"ufid/internal/logging"
	"ufid/internal/records"
	"ufid/internal/ufid"
)

// Audit is the read-only view produced by Check.
type Audit struct {
	Total    int
	Eligible int
	// Missing counts eligible records without an id.
	Missing int
	// Malformed lists positions whose id does not have the shape of an
	// identifier of the configured length.
	Malformed  []int
	Collisions []CollisionGroup
	Mismatches []Mismatch
}

// Clean reports whether the collection has no collisions and no
// mismatches.
func (a Audit) Clean() bool {
	return len(a.Collisions) == 0 && len(a.Mismatches) == 0
}

// Check inspects recs without assigning anything: it runs the duplicate
// scan over the ids as stored and, unless verification is off, compares
// every existing id with its k=0 derivation.
func Check(recs []*records.Record, opts Options) (Audit, error) {
	if err := opts.validate(); err != nil {
		return Audit{}, fmt.Errorf("check options: %w", err)
	}
	r := newRun(recs, opts)

	audit := Audit{Total: len(recs)}
	for i, id := range r.before {
		if r.eligible(i) {
			audit.Eligible++
			if !id.Valid {
				audit.Missing++
			}
		}
		if id.Valid && !ufid.IsWellFormed(id.Value, opts.Params.Length) {
			audit.Malformed = append(audit.Malformed, i)
		}
	}
	audit.Collisions = duplicates(recs, r.before)

	if opts.verifyMode() != VerifyOff {
		mismatches, err := r.verify()
		if err != nil {
			return Audit{}, err
		}
		audit.Mismatches = mismatches
	}

	r.logger.Debug("check complete",
		logging.Int("records", audit.Total),
		logging.Int("missing", audit.Missing),
		logging.Int("collisions", len(audit.Collisions)),
		logging.Int("mismatches", len(audit.Mismatches)))
	return audit, nil
}
