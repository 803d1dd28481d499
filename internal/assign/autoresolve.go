package assign

import (
	"sort"

	"ufid/internal/records"
)

func (r *run) autoResolve() (Result, error) {
	used := make(map[string]struct{})
	kept := make([]records.Optional, len(r.records))
	var pending []int
	for i := range r.records {
		subject := r.eligible(i) && (r.opts.Force || !r.before[i].Valid)
		if subject {
			pending = append(pending, i)
			continue
		}
		// Kept ids, including those on records without a usable name,
		// are claimed before any candidate is tried.
		if id := r.before[i]; id.Valid {
			used[id.Value] = struct{}{}
			kept[i] = id
		}
	}
	if groups := duplicates(r.records, kept); len(groups) > 0 {
		return Result{}, &CollisionError{Groups: groups, Hint: "existing ids already collide; rerun with --force to reassign them"}
	}

	keys := make(map[int]string, len(pending))
	for _, i := range pending {
		keys[i] = r.opts.Params.Normalization.Apply(r.records[i].Name.Value)
	}
	sort.SliceStable(pending, func(a, b int) bool {
		return keys[pending[a]] < keys[pending[b]]
	})

	for _, i := range pending {
		name := r.records[i].Name.Value
		for k := 0; ; k++ {
			candidate, err := r.opts.Params.Derive(name, k)
			if err != nil {
				return Result{}, err
			}
			if _, taken := used[candidate]; taken {
				continue
			}
			used[candidate] = struct{}{}
			r.staged[i] = records.Some(candidate)
			break
		}
	}

	if groups := duplicates(r.records, r.staged); len(groups) > 0 {
		return Result{}, &CollisionError{Groups: groups, Internal: true}
	}
	return Result{}, nil
}
