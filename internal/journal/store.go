package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// timeLayout keeps fixed-width timestamps so they sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Stdout is the Target recorded when the document was written to stdout.
const Stdout = "-"

// Entry describes one successful assignment run.
type Entry struct {
	ID           string
	StartedAt    time.Time
	Source       string
	Target       string
	Policy       string
	Namespace    string
	Bytes        int
	Force        bool
	Records      int
	Changed      int
	Notes        int
	InputDigest  string
	OutputDigest string
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("journal path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts entry, filling ID and StartedAt when they are unset, and
// returns the stored entry.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.StartedAt.IsZero() {
		entry.StartedAt = time.Now()
	}
	entry.StartedAt = entry.StartedAt.UTC()
	if entry.Target == "" {
		entry.Target = Stdout
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (
            id, started_at, source, target, policy, namespace, bytes,
            forced, records, changed, notes, input_digest, output_digest
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.StartedAt.Format(timeLayout),
		entry.Source,
		entry.Target,
		entry.Policy,
		entry.Namespace,
		entry.Bytes,
		boolToInt(entry.Force),
		entry.Records,
		entry.Changed,
		entry.Notes,
		entry.InputDigest,
		entry.OutputDigest,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert run: %w", err)
	}
	return entry, nil
}

// List returns up to limit entries, newest first. A non-positive limit
// returns every entry.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, started_at, source, target, policy, namespace, bytes,
            forced, records, changed, notes, input_digest, output_digest
        FROM runs ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return entries, nil
}

// LastForTarget returns the newest entry written to target. The boolean is
// false when the target has no history.
func (s *Store) LastForTarget(ctx context.Context, target string) (Entry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, source, target, policy, namespace, bytes,
            forced, records, changed, notes, input_digest, output_digest
        FROM runs WHERE target = ? ORDER BY started_at DESC, rowid DESC LIMIT 1`,
		target,
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return entry, true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		entry     Entry
		startedAt string
		forced    int
	)
	if err := row.Scan(
		&entry.ID,
		&startedAt,
		&entry.Source,
		&entry.Target,
		&entry.Policy,
		&entry.Namespace,
		&entry.Bytes,
		&forced,
		&entry.Records,
		&entry.Changed,
		&entry.Notes,
		&entry.InputDigest,
		&entry.OutputDigest,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scan run: %w", err)
	}
	parsed, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parse started_at %q: %w", startedAt, err)
	}
	entry.StartedAt = parsed
	entry.Force = forced != 0
	return entry, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
