// Package store persists analysis runs to SQLite so duplicate statistics can
// be queried across datasets.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/arffkit/internal/analysis"
	"github.com/KaramelBytes/arffkit/internal/reduce"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	input       TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	identifiers INTEGER NOT NULL,
	positive    INTEGER NOT NULL,
	negative    INTEGER NOT NULL,
	dropped     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS analysis (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	identifier TEXT NOT NULL,
	total_freq INTEGER NOT NULL,
	pos_freq   INTEGER NOT NULL,
	neg_freq   INTEGER NOT NULL,
	PRIMARY KEY (run_id, identifier)
);
CREATE TABLE IF NOT EXISTS attribute_occurrences (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	identifier TEXT NOT NULL,
	attribute  TEXT NOT NULL,
	missing    INTEGER NOT NULL,
	present    INTEGER NOT NULL,
	value      TEXT NOT NULL,
	PRIMARY KEY (run_id, identifier, attribute)
);
`

// Store wraps a SQLite database holding analysis runs.
type Store struct {
	db *sql.DB
}

// Run is one analysis to persist. ID is generated when empty.
type Run struct {
	ID        string
	Input     string
	CreatedAt time.Time
	Tally     reduce.Tally
	Table     *analysis.Table
}

// RunInfo is a stored run without its per-identifier rows.
type RunInfo struct {
	ID          string
	Input       string
	CreatedAt   time.Time
	Identifiers int
	Tally       reduce.Tally
}

// Row is one stored per-identifier analysis.
type Row struct {
	Identifier string
	TotalFreq  int
	PosFreq    int
	NegFreq    int
	Attrs      map[string]analysis.ValueOccurrences
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one connection so the pragma applies to every statement
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SaveRun writes the run and every identifier's analysis in one transaction
// and returns the run id.
func (s *Store) SaveRun(ctx context.Context, run Run) (string, error) {
	if run.Table == nil {
		return "", fmt.Errorf("save run: nil analysis table")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs(id, input, created_at, identifiers, positive, negative, dropped) VALUES(?,?,?,?,?,?,?)`,
		run.ID, run.Input, run.CreatedAt.UTC().Format(time.RFC3339), run.Table.Len(),
		run.Tally.Positive, run.Tally.Negative, run.Tally.Dropped,
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	anStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO analysis(run_id, identifier, total_freq, pos_freq, neg_freq) VALUES(?,?,?,?,?)`)
	if err != nil {
		return "", fmt.Errorf("prepare analysis insert: %w", err)
	}
	defer anStmt.Close()
	occStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO attribute_occurrences(run_id, identifier, attribute, missing, present, value) VALUES(?,?,?,?,?,?)`)
	if err != nil {
		return "", fmt.Errorf("prepare occurrence insert: %w", err)
	}
	defer occStmt.Close()

	for _, id := range run.Table.IDs() {
		a, _ := run.Table.Get(id)
		if _, err := anStmt.ExecContext(ctx, run.ID, id, a.TotalFreq, a.PosFreq, a.NegFreq); err != nil {
			return "", fmt.Errorf("insert analysis %s: %w", id, err)
		}
		for _, ta := range run.Table.Tracked {
			occ := a.Attrs[ta.Name]
			if _, err := occStmt.ExecContext(ctx, run.ID, id, ta.Raw, occ.Missing, occ.Present, occ.Value); err != nil {
				return "", fmt.Errorf("insert occurrences %s/%s: %w", id, ta.Raw, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return run.ID, nil
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, created_at, identifiers, positive, negative, dropped FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	var out []RunInfo
	for rows.Next() {
		var ri RunInfo
		var created string
		if err := rows.Scan(&ri.ID, &ri.Input, &created, &ri.Identifiers,
			&ri.Tally.Positive, &ri.Tally.Negative, &ri.Tally.Dropped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		ri.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, ri)
	}
	return out, rows.Err()
}

// Analysis returns the stored per-identifier rows of a run, ordered by identifier.
func (s *Store) Analysis(ctx context.Context, runID string) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT identifier, total_freq, pos_freq, neg_freq FROM analysis WHERE run_id = ? ORDER BY identifier`, runID)
	if err != nil {
		return nil, fmt.Errorf("query analysis: %w", err)
	}
	var out []Row
	index := map[string]int{}
	for rows.Next() {
		r := Row{Attrs: map[string]analysis.ValueOccurrences{}}
		if err := rows.Scan(&r.Identifier, &r.TotalFreq, &r.PosFreq, &r.NegFreq); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		index[r.Identifier] = len(out)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	occ, err := s.db.QueryContext(ctx,
		`SELECT identifier, attribute, missing, present, value FROM attribute_occurrences WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("query occurrences: %w", err)
	}
	defer occ.Close()
	for occ.Next() {
		var id, attr string
		var v analysis.ValueOccurrences
		if err := occ.Scan(&id, &attr, &v.Missing, &v.Present, &v.Value); err != nil {
			return nil, fmt.Errorf("scan occurrences: %w", err)
		}
		if i, ok := index[id]; ok {
			out[i].Attrs[attr] = v
		}
	}
	return out, occ.Err()
}
