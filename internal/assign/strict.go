package assign

import (
	"sync"

	"ufid/internal/logging"
	"ufid/internal/records"
)

// parallelThreshold is the smallest pending batch worth fanning out.
const parallelThreshold = 256

const strictCollisionHint = "use a longer --bytes, a --namespace, or --auto-resolve"

func (r *run) strict() (Result, error) {
	var pending []int
	for i := range r.records {
		if !r.eligible(i) {
			continue
		}
		if r.opts.Force || !r.before[i].Valid {
			pending = append(pending, i)
		}
	}

	derived, err := r.deriveAll(pending)
	if err != nil {
		return Result{}, err
	}
	for n, i := range pending {
		r.staged[i] = records.Some(derived[n])
	}

	if groups := duplicates(r.records, r.staged); len(groups) > 0 {
		return Result{}, &CollisionError{Groups: groups, Hint: strictCollisionHint}
	}

	var result Result
	if r.opts.verifyMode() == VerifyOff {
		return result, nil
	}
	mismatches, err := r.verify()
	if err != nil {
		return Result{}, err
	}
	if len(mismatches) == 0 {
		return result, nil
	}
	if r.opts.verifyMode() == VerifyFail {
		return Result{}, &VerificationMismatchError{Mismatches: mismatches}
	}
	result.Mismatches = mismatches
	result.Notes = []string{mismatchReport(mismatches)}
	logging.WarnWithContext(r.logger, "existing ids differ from current parameters", "verification_mismatch",
		logging.Int("mismatches", len(mismatches)),
		logging.String(logging.FieldErrorHint, mismatchHint),
		logging.String(logging.FieldImpact, "stored ids kept; output written"))
	return result, nil
}

// deriveAll computes k=0 ids for the pending positions. Each worker owns a
// disjoint set of output slots, so results merge without locking.
func (r *run) deriveAll(pending []int) ([]string, error) {
	out := make([]string, len(pending))
	workers := r.opts.workers()
	if workers <= 1 || len(pending) < parallelThreshold {
		for n, i := range pending {
			id, err := r.opts.Params.Derive(r.records[i].Name.Value, 0)
			if err != nil {
				return nil, err
			}
			out[n] = id
		}
		return out, nil
	}

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range jobs {
				id, err := r.opts.Params.Derive(r.records[pending[n]].Name.Value, 0)
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					continue
				}
				out[n] = id
			}
		}()
	}
	for n := range pending {
		jobs <- n
	}
	close(jobs)
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// verify checks records that carried an id before this run against their
// k=0 derivation, comparing the value the run is about to keep.
func (r *run) verify() ([]Mismatch, error) {
	var mismatches []Mismatch
	for i, before := range r.before {
		if !before.Valid || !r.eligible(i) {
			continue
		}
		name := r.records[i].Name.Value
		expected, err := r.opts.Params.Derive(name, 0)
		if err != nil {
			return nil, err
		}
		if stored := r.staged[i].Value; stored != expected {
			mismatches = append(mismatches, Mismatch{Index: i, Name: name, Stored: stored, Expected: expected})
		}
	}
	return mismatches, nil
}
