package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"ufid/internal/assign"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// reportFailure writes the detail behind an engine error to w. Terminals get
// tables; pipes and files get the plain line layout scripts already parse.
func reportFailure(w io.Writer, err error) {
	var collision *assign.CollisionError
	var mismatch *assign.VerificationMismatchError
	switch {
	case errors.As(err, &collision):
		if shouldColorize(w) {
			fmt.Fprintln(w, collisionTable(collision.Groups, true))
			if collision.Hint != "" {
				fmt.Fprintf(w, "Hint: %s.\n", collision.Hint)
			}
			return
		}
		fmt.Fprintln(w, collision.Report())
	case errors.As(err, &mismatch):
		if shouldColorize(w) {
			fmt.Fprintln(w, mismatchTable(mismatch.Mismatches, true))
			return
		}
		fmt.Fprintln(w, mismatch.Report())
	}
}

func collisionTable(groups []assign.CollisionGroup, colorize bool) string {
	var rows [][]string
	for _, g := range groups {
		for _, m := range g.Members {
			rows = append(rows, []string{g.ID, strconv.Itoa(m.Index), m.Name, m.Label})
		}
	}
	return renderTable(tableLayout{
		Title:    fmt.Sprintf("Collision(s) detected: %d", len(groups)),
		Headers:  []string{"ID", "Index", "File", "Title"},
		Rows:     rows,
		Aligns:   []columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
		Colorize: colorize,
	})
}

func mismatchTable(mismatches []assign.Mismatch, colorize bool) string {
	rows := make([][]string, 0, len(mismatches))
	for _, m := range mismatches {
		rows = append(rows, []string{strconv.Itoa(m.Index), m.Name, m.Stored, m.Expected})
	}
	return renderTable(tableLayout{
		Title:    fmt.Sprintf("Existing ids differ from expected: %d", len(mismatches)),
		Headers:  []string{"Index", "File", "Stored", "Expected"},
		Rows:     rows,
		Aligns:   []columnAlignment{alignRight},
		Colorize: colorize,
	})
}

func writeNotes(w io.Writer, notes []string) {
	for _, note := range notes {
		note = strings.TrimRight(note, "\n")
		if note != "" {
			fmt.Fprintln(w, note)
		}
	}
}
