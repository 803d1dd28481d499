package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ufid/internal/journal"
)

type historyEntry struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	Source       string    `json:"source"`
	Target       string    `json:"target"`
	Policy       string    `json:"policy"`
	Namespace    string    `json:"namespace"`
	Bytes        int       `json:"bytes"`
	Force        bool      `json:"force"`
	Records      int       `json:"records"`
	Changed      int       `json:"changed"`
	Notes        int       `json:"notes"`
	OutputDigest string    `json:"output_digest"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded assignment runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := journal.Open(cfg.Journal.Path)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				views := make([]historyEntry, 0, len(entries))
				for _, e := range entries {
					views = append(views, historyEntry{
						ID:           e.ID,
						StartedAt:    e.StartedAt,
						Source:       e.Source,
						Target:       e.Target,
						Policy:       e.Policy,
						Namespace:    e.Namespace,
						Bytes:        e.Bytes,
						Force:        e.Force,
						Records:      e.Records,
						Changed:      e.Changed,
						Notes:        e.Notes,
						OutputDigest: e.OutputDigest,
					})
				}
				return writeJSON(out, views)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.StartedAt.Local().Format("2006-01-02 15:04:05"),
					e.Target,
					e.Policy,
					strconv.Itoa(e.Bytes),
					yesNo(e.Force),
					strconv.Itoa(e.Records),
					strconv.Itoa(e.Changed),
					shortDigest(e.OutputDigest),
				})
			}
			fmt.Fprintln(out, renderTable(tableLayout{
				Headers:  []string{"Started", "Target", "Policy", "Bytes", "Force", "Records", "Changed", "Output"},
				Rows:     rows,
				Aligns:   []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignLeft},
				Colorize: shouldColorize(out),
			}))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print runs as JSON")
	return cmd
}

func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
