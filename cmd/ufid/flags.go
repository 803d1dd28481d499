package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ufid/internal/config"
	"ufid/internal/ufid"
)

// enumValue is a string flag restricted to a fixed set of choices.
type enumValue struct {
	value   *string
	allowed []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(target *string, allowed ...string) *enumValue {
	return &enumValue{value: target, allowed: allowed}
}

func (e *enumValue) String() string {
	if e.value == nil {
		return ""
	}
	return *e.value
}

func (e *enumValue) Set(raw string) error {
	candidate := strings.ToLower(strings.TrimSpace(raw))
	for _, allowed := range e.allowed {
		if candidate == allowed {
			*e.value = candidate
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
}

func (e *enumValue) Type() string {
	return strings.Join(e.allowed, "|")
}

// idFlags override the [ids] section.
type idFlags struct {
	namespace  string
	bytes      string
	normalize  string
	casefold   bool
	noCasefold bool
	strip      bool
	noStrip    bool
}

func byteChoices() []string {
	out := make([]string, len(ufid.Lengths))
	for i, l := range ufid.Lengths {
		out[i] = strconv.Itoa(int(l))
	}
	return out
}

func formChoices() []string {
	out := make([]string, len(ufid.Forms))
	for i, f := range ufid.Forms {
		out[i] = string(f)
	}
	return out
}

func (f *idFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.namespace, "namespace", "", "Namespace for domain separation (default from config or UFID_NAMESPACE)")
	flags.Var(newEnumValue(&f.bytes, byteChoices()...), "bytes", "Identifier digest size in bytes")
	flags.Var(newEnumValue(&f.normalize, formChoices()...), "normalize", "Unicode normalization applied to names")
	flags.BoolVar(&f.casefold, "casefold", false, "Apply Unicode case folding to names")
	flags.BoolVar(&f.noCasefold, "no-casefold", false, "Disable case folding")
	flags.BoolVar(&f.strip, "strip", false, "Trim surrounding whitespace from names")
	flags.BoolVar(&f.noStrip, "no-strip", false, "Disable whitespace trimming")
	cmd.MarkFlagsMutuallyExclusive("casefold", "no-casefold")
	cmd.MarkFlagsMutuallyExclusive("strip", "no-strip")
}

func (f *idFlags) apply(flags *pflag.FlagSet, cfg *config.Config) error {
	if flags.Changed("namespace") {
		cfg.IDs.Namespace = f.namespace
	}
	if flags.Changed("bytes") {
		length, err := ufid.ParseLength(f.bytes)
		if err != nil {
			return err
		}
		cfg.IDs.Bytes = int(length)
	}
	if flags.Changed("normalize") {
		cfg.IDs.Normalize = f.normalize
	}
	switch {
	case flags.Changed("casefold"):
		cfg.IDs.CaseFold = f.casefold
	case flags.Changed("no-casefold"):
		cfg.IDs.CaseFold = !f.noCasefold
	}
	switch {
	case flags.Changed("strip"):
		cfg.IDs.Strip = f.strip
	case flags.Changed("no-strip"):
		cfg.IDs.Strip = !f.noStrip
	}
	return nil
}

// policyFlags override the [assign] section.
type policyFlags struct {
	force            bool
	autoResolve      bool
	verify           string
	verifyExisting   bool
	failOnMismatch   bool
	noVerifyExisting bool
	workers          int
}

func (f *policyFlags) register(cmd *cobra.Command, withPolicy bool) {
	flags := cmd.Flags()
	if withPolicy {
		flags.BoolVar(&f.force, "force", false, "Recompute ids for records that already have one")
		flags.BoolVar(&f.autoResolve, "auto-resolve", false, "Resolve collisions by bumping the disambiguator")
		flags.IntVar(&f.workers, "workers", 0, "Parallel derivation workers (0 uses the CPU count)")
	}
	flags.Var(newEnumValue(&f.verify, "off", "warn", "fail"), "verify", "Existing id verification mode")
	flags.BoolVar(&f.verifyExisting, "verify-existing", false, "Warn when existing ids differ from expected (same as --verify warn)")
	flags.BoolVar(&f.failOnMismatch, "fail-on-mismatch", false, "Fail when existing ids differ from expected (same as --verify fail)")
	flags.BoolVar(&f.noVerifyExisting, "no-verify-existing", false, "Skip verification of existing ids (same as --verify off)")
	cmd.MarkFlagsMutuallyExclusive("verify", "verify-existing", "fail-on-mismatch", "no-verify-existing")
}

func (f *policyFlags) apply(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("force") {
		cfg.Assign.Force = f.force
	}
	if flags.Changed("auto-resolve") {
		if f.autoResolve {
			cfg.Assign.Policy = "auto-resolve"
		} else {
			cfg.Assign.Policy = "strict"
		}
	}
	if flags.Changed("workers") {
		cfg.Assign.Workers = f.workers
	}
	switch {
	case flags.Changed("verify"):
		cfg.Assign.Verify = f.verify
	case flags.Changed("verify-existing") && f.verifyExisting:
		cfg.Assign.Verify = "warn"
	case flags.Changed("fail-on-mismatch") && f.failOnMismatch:
		cfg.Assign.Verify = "fail"
	case flags.Changed("no-verify-existing") && f.noVerifyExisting:
		cfg.Assign.Verify = "off"
	}
}
