package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"ufid/internal/assign"
	"ufid/internal/config"
	"ufid/internal/fileutil"
	"ufid/internal/journal"
	"ufid/internal/logging"
	"ufid/internal/records"
	"ufid/internal/ufid"
)

// collisionWarnThreshold is the birthday-bound probability above which a
// run warns that the id length is too short for the collection.
const collisionWarnThreshold = 0.01

type assignSummary struct {
	Changed    int      `json:"changed"`
	Records    int      `json:"records"`
	Policy     string   `json:"policy"`
	Force      bool     `json:"force"`
	Namespace  string   `json:"namespace"`
	Bytes      int      `json:"bytes"`
	Normalize  string   `json:"normalize"`
	CaseFold   bool     `json:"casefold"`
	Strip      bool     `json:"strip"`
	Verify     string   `json:"verify"`
	Mismatches int      `json:"mismatches"`
	Notes      []string `json:"notes"`
	Output     string   `json:"output"`
	Backup     string   `json:"backup,omitempty"`
	RunID      string   `json:"run_id,omitempty"`
}

func newAssignCommand(ctx *commandContext) *cobra.Command {
	var (
		output   string
		inPlace  bool
		backup   bool
		jsonOut  bool
		ids      idFlags
		policies policyFlags
	)

	cmd := &cobra.Command{
		Use:   "assign <input.json>",
		Short: "Assign identifiers to every record in a JSON document",
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
			if cmd.Flags().Changed("backup") {
				cfg.Output.Backup = backup
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			input, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}
			target := strings.TrimSpace(output)
			if target == "" && inPlace {
				target = input
			}
			if target != "" {
				if target, err = filepath.Abs(target); err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
			}

			stderr := cmd.ErrOrStderr()
			logger, err := newLogger(cfg, stderr)
			if err != nil {
				return err
			}

			job := assignJob{
				cfg:    cfg,
				input:  input,
				target: target,
				logger: logger,
				stdout: cmd.OutOrStdout(),
				stderr: stderr,
			}
			summary, err := job.run(cmd)
			if err != nil {
				reportFailure(stderr, err)
				return err
			}

			if jsonOut {
				return writeJSON(stderr, summary)
			}
			writeNotes(stderr, summary.Notes)
			fmt.Fprintf(stderr, "IDs added/updated: %d\n%s\n", summary.Changed, modeSummary(cfg))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: stdout)")
	cmd.Flags().BoolVar(&inPlace, "inplace", false, "Write back to the input file")
	cmd.Flags().BoolVar(&backup, "backup", false, "Keep the previous file as <name>-old.json before writing")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the run summary as JSON on stderr")
	ids.register(cmd)
	policies.register(cmd, true)
	return cmd
}

type assignJob struct {
	cfg    *config.Config
	input  string
	target string
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func (j assignJob) run(cmd *cobra.Command) (assignSummary, error) {
	var lock *flock.Flock
	if j.target != "" {
		var err error
		if lock, err = fileutil.Lock(j.target); err != nil {
			return assignSummary{}, err
		}
		defer func() {
			if err := fileutil.Unlock(lock); err != nil {
				j.logger.Warn("release document lock", logging.Error(err))
			}
		}()
	}

	data, err := os.ReadFile(j.input)
	if err != nil {
		return assignSummary{}, fmt.Errorf("read input: %w", err)
	}
	doc, err := records.Decode(bytes.NewReader(data), recordSchema(j.cfg))
	if err != nil {
		return assignSummary{}, err
	}

	opts, err := assignOptions(j.cfg, j.logger)
	if err != nil {
		return assignSummary{}, err
	}
	if p := ufid.CollisionProbability(len(doc.Records), opts.Params.Length); p > collisionWarnThreshold {
		logging.WarnWithContext(j.logger, "id length is short for this collection", "collision_risk",
			logging.Int("records", len(doc.Records)),
			logging.String("probability", fmt.Sprintf("%.4f", p)),
			logging.String(logging.FieldErrorHint, "use --bytes 8 or --bytes 16"),
			logging.String(logging.FieldImpact, "strict runs may abort on collisions"))
	}

	store := j.openJournal()
	if store != nil {
		defer store.Close()
		j.noteExternalEdits(cmd, store, data)
	}

	result, err := assign.Run(doc.Records, opts)
	if err != nil {
		return assignSummary{}, err
	}

	encoded, err := doc.Encoded()
	if err != nil {
		return assignSummary{}, fmt.Errorf("encode output: %w", err)
	}

	summary := assignSummary{
		Changed:    result.Changed,
		Records:    len(doc.Records),
		Policy:     string(opts.Policy),
		Force:      opts.Force,
		Namespace:  opts.Params.Namespace,
		Bytes:      int(opts.Params.Length),
		Normalize:  string(opts.Params.Normalization.Form),
		CaseFold:   opts.Params.Normalization.CaseFold,
		Strip:      opts.Params.Normalization.Trim,
		Verify:     string(opts.Verify),
		Mismatches: len(result.Mismatches),
		Notes:      result.Notes,
		Output:     journal.Stdout,
	}
	if summary.Notes == nil {
		summary.Notes = []string{}
	}

	if j.target == "" {
		if _, err := io.WriteString(j.stdout, encoded); err != nil {
			return assignSummary{}, fmt.Errorf("write output: %w", err)
		}
	} else {
		summary.Output = j.target
		if j.cfg.Output.Backup {
			backupPath, err := j.backup()
			if err != nil {
				return assignSummary{}, err
			}
			summary.Backup = backupPath
		}
		if err := fileutil.WriteAtomic(j.target, []byte(encoded)); err != nil {
			return assignSummary{}, fmt.Errorf("write output: %w", err)
		}
	}

	if store != nil {
		entry, err := store.Record(cmd.Context(), journal.Entry{
			Source:       j.input,
			Target:       summary.Output,
			Policy:       summary.Policy,
			Namespace:    summary.Namespace,
			Bytes:        summary.Bytes,
			Force:        summary.Force,
			Records:      summary.Records,
			Changed:      summary.Changed,
			Notes:        len(summary.Notes),
			InputDigest:  journal.Digest(data),
			OutputDigest: journal.Digest([]byte(encoded)),
		})
		if err != nil {
			logging.WarnWithContext(j.logger, "journal write failed", "journal_write",
				logging.Error(err),
				logging.String(logging.FieldImpact, "run succeeded but is missing from history"))
		} else {
			summary.RunID = entry.ID
			j.logger.Debug("run recorded", logging.String(logging.FieldRunID, entry.ID))
		}
	}
	return summary, nil
}

func (j assignJob) backup() (string, error) {
	if _, err := os.Stat(j.target); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	path, err := fileutil.Backup(j.target, j.cfg.Output.BackupSuffix)
	if err != nil {
		return "", err
	}
	j.logger.Info("previous document kept", logging.String(logging.FieldPath, path))
	return path, nil
}

// openJournal returns nil when the journal is disabled or unavailable; a
// broken journal never blocks an assignment.
func (j assignJob) openJournal() *journal.Store {
	if !j.cfg.Journal.Enabled {
		return nil
	}
	store, err := journal.Open(j.cfg.Journal.Path)
	if err != nil {
		logging.WarnWithContext(j.logger, "journal unavailable", "journal_open",
			logging.Error(err),
			logging.String(logging.FieldPath, j.cfg.Journal.Path),
			logging.String(logging.FieldImpact, "this run will not be recorded"))
		return nil
	}
	return store
}

// noteExternalEdits logs when an in-place target no longer matches what the
// last recorded run wrote to it.
func (j assignJob) noteExternalEdits(cmd *cobra.Command, store *journal.Store, data []byte) {
	if j.target == "" || j.target != j.input {
		return
	}
	last, ok, err := store.LastForTarget(cmd.Context(), j.target)
	if err != nil || !ok {
		return
	}
	if last.OutputDigest != journal.Digest(data) {
		j.logger.Info("document changed since last recorded run",
			logging.String(logging.FieldPath, j.target),
			logging.String(logging.FieldRunID, last.ID))
	}
}
