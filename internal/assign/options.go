package assign

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"ufid/internal/ufid"
)

// Policy selects how ids are assigned.
type Policy string

const (
	PolicyStrict      Policy = "strict"
	PolicyAutoResolve Policy = "auto-resolve"
)

// ParsePolicy accepts "strict" and "auto-resolve" (or "auto").
func ParsePolicy(value string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(PolicyStrict):
		return PolicyStrict, nil
	case string(PolicyAutoResolve), "auto", "auto_resolve":
		return PolicyAutoResolve, nil
	default:
		return "", fmt.Errorf("unsupported policy %q (want strict or auto-resolve)", value)
	}
}

// VerifyMode controls how ids that existed before a strict run are checked.
type VerifyMode string

const (
	VerifyOff  VerifyMode = "off"
	VerifyWarn VerifyMode = "warn"
	VerifyFail VerifyMode = "fail"
)

// ParseVerifyMode accepts off, warn, and fail.
func ParseVerifyMode(value string) (VerifyMode, error) {
	switch VerifyMode(strings.ToLower(strings.TrimSpace(value))) {
	case VerifyOff:
		return VerifyOff, nil
	case "", VerifyWarn:
		return VerifyWarn, nil
	case VerifyFail:
		return VerifyFail, nil
	default:
		return "", fmt.Errorf("unsupported verification mode %q (want off, warn, or fail)", value)
	}
}

// Options configures a single run.
type Options struct {
	Params ufid.Params
	Policy Policy
	Force  bool
	Verify VerifyMode

	// Workers bounds parallel derivation in strict mode. Zero uses
	// GOMAXPROCS.
	Workers int

	Logger *slog.Logger
}

// DefaultOptions returns strict, no force, warn verification.
func DefaultOptions() Options {
	return Options{
		Params: ufid.DefaultParams(),
		Policy: PolicyStrict,
		Verify: VerifyWarn,
	}
}

func (o Options) validate() error {
	if err := o.Params.Validate(); err != nil {
		return err
	}
	if _, err := ParsePolicy(string(o.Policy)); err != nil {
		return err
	}
	if _, err := ParseVerifyMode(string(o.Verify)); err != nil {
		return err
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", o.Workers)
	}
	return nil
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) policy() Policy {
	if o.Policy == "" {
		return PolicyStrict
	}
	return o.Policy
}

func (o Options) verifyMode() VerifyMode {
	if o.Verify == "" {
		return VerifyWarn
	}
	return o.Verify
}
