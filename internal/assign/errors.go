package assign

import (
	"fmt"
	"strconv"
	"strings"
)

// Member is one record taking part in a collision.
type Member struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// CollisionGroup is an id shared by more than one record.
type CollisionGroup struct {
	ID      string   `json:"id"`
	Members []Member `json:"members"`
}

// Positions returns the record indexes in the group.
func (g CollisionGroup) Positions() []int {
	out := make([]int, len(g.Members))
	for i, m := range g.Members {
		out[i] = m.Index
	}
	return out
}

// CollisionError reports ids shared by multiple records. Internal is set
// when auto-resolve produced the duplicate itself, which means its used-set
// bookkeeping was violated.
type CollisionError struct {
	Groups   []CollisionGroup
	Internal bool
	Hint     string
}

func (e *CollisionError) Error() string {
	parts := make([]string, 0, len(e.Groups))
	for _, g := range e.Groups {
		positions := make([]string, len(g.Members))
		for i, m := range g.Members {
			positions[i] = strconv.Itoa(m.Index)
		}
		parts = append(parts, fmt.Sprintf("id=%s shared by records %s", g.ID, strings.Join(positions, ", ")))
	}
	prefix := "collision detected"
	if e.Internal {
		prefix = "unexpected duplicates after auto-resolve"
	}
	msg := fmt.Sprintf("%s: %s", prefix, strings.Join(parts, "; "))
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

// ErrorKind classifies the error for exit handling.
func (e *CollisionError) ErrorKind() string {
	if e.Internal {
		return "internal"
	}
	return "collision"
}

// Report renders the collision in the multi-line layout operators expect.
func (e *CollisionError) Report() string {
	var b strings.Builder
	if e.Internal {
		b.WriteString("Unexpected duplicates after auto-resolve:\n")
	}
	b.WriteString("Collision(s) detected:\n")
	for _, g := range e.Groups {
		fmt.Fprintf(&b, "  id=%s -> %d records\n", g.ID, len(g.Members))
		for _, m := range g.Members {
			fmt.Fprintf(&b, "    - index %d: file=%q, title=%q\n", m.Index, m.Name, m.Label)
		}
	}
	if e.Hint != "" {
		fmt.Fprintf(&b, "Hint: %s.\n", e.Hint)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Mismatch is an existing id that differs from its k=0 derivation under
// the current parameters.
type Mismatch struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Stored   string `json:"stored"`
	Expected string `json:"expected"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("Index %d has existing id=%s but expected=%s for file=%q", m.Index, m.Stored, m.Expected, m.Name)
}

const mismatchHint = "use --force (or --auto-resolve --force) to recompute ids"

// VerificationMismatchError is returned in fail verification mode when any
// existing id disagrees with the current parameters.
type VerificationMismatchError struct {
	Mismatches []Mismatch
}

func (e *VerificationMismatchError) Error() string {
	return fmt.Sprintf("existing id mismatch: %d record(s) differ from the current parameters; %s", len(e.Mismatches), mismatchHint)
}

// ErrorKind classifies the error for exit handling.
func (e *VerificationMismatchError) ErrorKind() string {
	return "verification"
}

// Report lists every mismatch followed by the repair hint.
func (e *VerificationMismatchError) Report() string {
	return mismatchReport(e.Mismatches) + "\nHint: " + mismatchHint + "."
}

func mismatchReport(mismatches []Mismatch) string {
	lines := make([]string, 0, len(mismatches)+1)
	lines = append(lines, "Existing ID mismatches detected:")
	for _, m := range mismatches {
		lines = append(lines, "  - "+m.String())
	}
	return strings.Join(lines, "\n")
}
