// Package history persists one row per simulation run so past predictions
// can be reviewed from the CLI.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // cgo-free SQLite driver

	"pcrsim/core/sim"
)

// Run is one recorded simulation.
type Run struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Forward    string    `json:"forward"`
	Reverse    string    `json:"reverse"`
	TemplateID string    `json:"template_id"`
	Circular   bool      `json:"circular"`
	Amplicons  int       `json:"amplicons"`
	Specific   bool      `json:"specific"`
}

// NewRun snapshots a simulation into a Run with a fresh id.
func NewRun(in sim.Input, res *sim.Result) Run {
	return Run{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Forward:    in.Forward,
		Reverse:    in.Reverse,
		TemplateID: in.TemplateID,
		Circular:   in.Circular,
		Amplicons:  len(res.Amplicons),
		Specific:   res.IsSpecific,
	}
}

// Store is a SQLite-backed run log.
type Store struct {
	db *sql.DB
}

// created_at holds Unix nanoseconds so ORDER BY compares numerically.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	created_at  INTEGER NOT NULL,
	forward     TEXT NOT NULL,
	reverse     TEXT NOT NULL,
	template_id TEXT NOT NULL,
	circular    INTEGER NOT NULL,
	amplicons   INTEGER NOT NULL,
	specific    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Open opens (creating if needed) the run log at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// SQLite does not benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Record inserts one run.
func (s *Store) Record(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, forward, reverse, template_id, circular, amplicons, specific)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UnixNano(), r.Forward, r.Reverse,
		r.TemplateID, boolInt(r.Circular), r.Amplicons, boolInt(r.Specific))
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, forward, reverse, template_id, circular, amplicons, specific
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		var (
			r                  Run
			created            int64
			circular, specific int
		)
		if err := rows.Scan(&r.ID, &created, &r.Forward, &r.Reverse,
			&r.TemplateID, &circular, &r.Amplicons, &specific); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt = time.Unix(0, created).UTC()
		r.Circular = circular != 0
		r.Specific = specific != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
