package assign

import (
	"fmt"
	"log/slog"

	"ufid/internal/logging"
	"ufid/internal/records"
)

// Result describes a successful run. Records is the same slice passed to
// Run with ids committed in place.
type Result struct {
	Records    []*records.Record
	Changed    int
	Mismatches []Mismatch
	// Notes holds human readable diagnostics (mismatches in warn mode).
	Notes []string
}

// run is the state of one invocation. Nothing here outlives Run.
type run struct {
	opts    Options
	logger  *slog.Logger
	records []*records.Record
	// before is the id of every record as supplied; staged is what the run
	// intends to write.
	before []records.Optional
	staged []records.Optional
}

// Run assigns ids to recs according to opts. On error no record is
// modified.
func Run(recs []*records.Record, opts Options) (Result, error) {
	if err := opts.validate(); err != nil {
		return Result{}, fmt.Errorf("assign options: %w", err)
	}
	r := newRun(recs, opts)

	var (
		result Result
		err    error
	)
	switch opts.policy() {
	case PolicyAutoResolve:
		result, err = r.autoResolve()
	default:
		result, err = r.strict()
	}
	if err != nil {
		r.logger.Debug("assignment aborted",
			logging.String("policy", string(opts.policy())),
			logging.Error(err))
		return Result{}, err
	}

	result.Records = recs
	result.Changed = r.commit()
	r.logger.Debug("assignment complete",
		logging.String("policy", string(opts.policy())),
		logging.Bool("force", opts.Force),
		logging.Int("records", len(recs)),
		logging.Int("changed", result.Changed),
		logging.Int("mismatches", len(result.Mismatches)))
	return result, nil
}

func newRun(recs []*records.Record, opts Options) *run {
	r := &run{
		opts:    opts,
		logger:  logging.NewComponentLogger(opts.Logger, "assign"),
		records: recs,
		before:  make([]records.Optional, len(recs)),
		staged:  make([]records.Optional, len(recs)),
	}
	for i, rec := range recs {
		if rec == nil {
			continue
		}
		r.before[i] = rec.ID
		r.staged[i] = rec.ID
	}
	return r
}

func (r *run) eligible(i int) bool {
	return r.records[i] != nil && r.records[i].Eligible()
}

// commit writes staged ids that differ from the supplied ones and returns
// how many changed.
func (r *run) commit() int {
	changed := 0
	for i, id := range r.staged {
		if !id.Valid || id == r.before[i] {
			continue
		}
		r.records[i].SetID(id.Value)
		changed++
	}
	return changed
}

// duplicates groups positions by staged id, in order of first occurrence.
func duplicates(recs []*records.Record, ids []records.Optional) []CollisionGroup {
	positions := make(map[string][]int)
	var order []string
	for i, id := range ids {
		if !id.Valid {
			continue
		}
		if _, seen := positions[id.Value]; !seen {
			order = append(order, id.Value)
		}
		positions[id.Value] = append(positions[id.Value], i)
	}

	var groups []CollisionGroup
	for _, id := range order {
		idxs := positions[id]
		if len(idxs) < 2 {
			continue
		}
		group := CollisionGroup{ID: id, Members: make([]Member, 0, len(idxs))}
		for _, i := range idxs {
			group.Members = append(group.Members, memberOf(recs, i))
		}
		groups = append(groups, group)
	}
	return groups
}

func memberOf(recs []*records.Record, i int) Member {
	m := Member{Index: i}
	if rec := recs[i]; rec != nil {
		m.Name = rec.Name.Value
		m.Label = rec.Label.Value
	}
	return m
}
