// Package history records run summaries to a local SQLite database.
// Recording is opt-in and advisory: a failure to record is a warning for the
// operator, never a run failure.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/caserun/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// RunRecord is one harness invocation as stored in the history database.
type RunRecord struct {
	ID       string
	Started  time.Time
	Duration time.Duration
	Total    int
	Passed   int
	Skipped  int
}

// Store manages the SQLite run-history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the history database at dbPath and
// ensures the schema exists.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// busy_timeout first so subsequent statements wait on locks instead of
	// failing when another invocation is writing.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("configure history database: %w", err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun stores one run summary and its per-case outcomes atomically.
func (s *Store) RecordRun(ctx context.Context, summary models.Summary, outcomes []models.Outcome) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, duration_ms, total, passed, skipped)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		summary.RunID, summary.Started.UTC(), summary.Duration.Milliseconds(),
		summary.Total, summary.Passed, summary.Skipped)
	if err != nil {
		return fmt.Errorf("insert run record: %w", err)
	}

	for _, o := range outcomes {
		var errText sql.NullString
		if o.Err != nil {
			errText = sql.NullString{String: o.Err.Error(), Valid: true}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO case_outcomes (run_id, case_id, status, exit_code, error)
			 VALUES (?, ?, ?, ?, ?)`,
			summary.RunID, o.Case.ID, o.Status, o.ExitCode, errText)
		if err != nil {
			return fmt.Errorf("insert outcome for case %s: %w", o.Case.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history transaction: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit run records, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, total, passed, skipped
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var durationMS int64
		if err := rows.Scan(&r.ID, &r.Started, &durationMS, &r.Total, &r.Passed, &r.Skipped); err != nil {
			return nil, fmt.Errorf("scan run record: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run records: %w", err)
	}
	return records, nil
}

// CaseOutcomes returns the recorded outcomes for a run, in stored order.
func (s *Store) CaseOutcomes(ctx context.Context, runID string) ([]models.Outcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT case_id, status, exit_code, error
		 FROM case_outcomes WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []models.Outcome
	for rows.Next() {
		var o models.Outcome
		var errText sql.NullString
		if err := rows.Scan(&o.Case.ID, &o.Status, &o.ExitCode, &errText); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		if errText.Valid {
			o.Err = fmt.Errorf("%s", errText.String)
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return outcomes, nil
}
