package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"ufid/internal/assign"
	"ufid/internal/records"
)

type checkReport struct {
	Records    int                     `json:"records"`
	Eligible   int                     `json:"eligible"`
	Missing    int                     `json:"missing"`
	Malformed  []int                   `json:"malformed"`
	Collisions []assign.CollisionGroup `json:"collisions"`
	Mismatches []assign.Mismatch       `json:"mismatches"`
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut  bool
		ids      idFlags
		policies policyFlags
	)

	cmd := &cobra.Command{
		Use:   "check <input.json>",
		Short: "Audit stored identifiers without modifying the document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			if err := ids.apply(cmd.Flags(), cfg); err != nil {
				return err
			}
			policies.apply(cmd.Flags(), cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts, err := assignOptions(cfg, logger)
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer file.Close()
			doc, err := records.Decode(file, recordSchema(cfg))
			if err != nil {
				return err
			}

			audit, err := assign.Check(doc.Records, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				if err := writeJSON(out, newCheckReport(audit)); err != nil {
					return err
				}
			} else {
				printAudit(cmd, audit)
			}
			return auditFailure(audit, opts.Verify)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the audit as JSON")
	ids.register(cmd)
	policies.register(cmd, false)
	return cmd
}

func newCheckReport(audit assign.Audit) checkReport {
	report := checkReport{
		Records:    audit.Total,
		Eligible:   audit.Eligible,
		Missing:    audit.Missing,
		Malformed:  audit.Malformed,
		Collisions: audit.Collisions,
		Mismatches: audit.Mismatches,
	}
	if report.Malformed == nil {
		report.Malformed = []int{}
	}
	if report.Collisions == nil {
		report.Collisions = []assign.CollisionGroup{}
	}
	if report.Mismatches == nil {
		report.Mismatches = []assign.Mismatch{}
	}
	return report
}

func printAudit(cmd *cobra.Command, audit assign.Audit) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	fmt.Fprintln(out, renderTable(tableLayout{
		Headers: []string{"Check", "Count"},
		Rows: [][]string{
			{"Records", strconv.Itoa(audit.Total)},
			{"Eligible", strconv.Itoa(audit.Eligible)},
			{"Missing id", strconv.Itoa(audit.Missing)},
			{"Malformed id", strconv.Itoa(len(audit.Malformed))},
			{"Collisions", strconv.Itoa(len(audit.Collisions))},
			{"Mismatches", strconv.Itoa(len(audit.Mismatches))},
		},
		Aligns:   []columnAlignment{alignLeft, alignRight},
		Colorize: colorize,
	}))
	if len(audit.Collisions) > 0 {
		fmt.Fprintln(out, collisionTable(audit.Collisions, colorize))
	}
	if len(audit.Mismatches) > 0 {
		fmt.Fprintln(out, mismatchTable(audit.Mismatches, colorize))
	}
	if audit.Clean() {
		fmt.Fprintln(out, "No collisions or mismatches found")
	}
}

// auditFailure turns the audit into the error the check command exits with:
// collisions always fail, mismatches only in fail mode.
func auditFailure(audit assign.Audit, verify assign.VerifyMode) error {
	if len(audit.Collisions) > 0 {
		return &assign.CollisionError{Groups: audit.Collisions}
	}
	if len(audit.Mismatches) > 0 && verify == assign.VerifyFail {
		return &assign.VerificationMismatchError{Mismatches: audit.Mismatches}
	}
	return nil
}
