// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps an optional SQLite history of patch runs and the
// per-file outcome of each.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/a11y-patcher/pkg/types"
)

const (
	// defaultLimit bounds Runs when the caller passes a non-positive limit.
	defaultLimit = 20
	// timeLayout is fixed width so that timestamps sort lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Journal manages the run history database.
type Journal struct {
	db *sql.DB
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID         string    `json:"id" yaml:"id"`
	RootDir    string    `json:"root_dir" yaml:"root_dir"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Total      int       `json:"total" yaml:"total"`
	Patched    int       `json:"patched" yaml:"patched"`
	Unchanged  int       `json:"unchanged" yaml:"unchanged"`
	Failed     int       `json:"failed" yaml:"failed"`
}

// Open opens or creates the journal database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	j := &Journal{db: db}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			root_dir TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			total INTEGER NOT NULL,
			patched INTEGER NOT NULL,
			unchanged INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			path TEXT NOT NULL,
			status TEXT NOT NULL,
			menu_buttons INTEGER NOT NULL,
			copy_buttons INTEGER NOT NULL,
			headings INTEGER NOT NULL,
			images INTEGER NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_run_id ON files(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}

	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a run and all of its file results in one transaction.
// Recording the same run ID twice replaces the earlier entry.
func (j *Journal) Record(ctx context.Context, report types.RunReport) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM files WHERE run_id = ?`, report.RunID); err != nil {
		return fmt.Errorf("clearing previous files: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (id, root_dir, started_at, finished_at, total, patched, unchanged, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID, report.RootDir,
		report.StartedAt.UTC().Format(timeLayout),
		report.FinishedAt.UTC().Format(timeLayout),
		report.Total(), report.Patched(), report.Unchanged(), report.Failed(),
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", report.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO files (run_id, path, status, menu_buttons, copy_buttons, headings, images, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing file insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range report.Files {
		_, err := stmt.ExecContext(ctx,
			report.RunID, f.Path, string(f.Status),
			f.Fixes.MenuButtons, f.Fixes.CopyButtons, f.Fixes.Headings, f.Fixes.Images,
			nullString(f.Error),
		)
		if err != nil {
			return fmt.Errorf("inserting file %s: %w", f.Path, err)
		}
	}

	return tx.Commit()
}

// Runs returns the most recent runs, newest first.
func (j *Journal) Runs(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT id, root_dir, started_at, finished_at, total, patched, unchanged, failed
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			r                 RunSummary
			started, finished string
		)
		if err := rows.Scan(&r.ID, &r.RootDir, &started, &finished,
			&r.Total, &r.Patched, &r.Unchanged, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(timeLayout, started)
		r.FinishedAt, _ = time.Parse(timeLayout, finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Files returns the file results of one run in the order they were
// processed.
func (j *Journal) Files(ctx context.Context, runID string) ([]types.FileResult, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT path, status, menu_buttons, copy_buttons, headings, images, error
		FROM files WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying files for run %s: %w", runID, err)
	}
	defer rows.Close()

	var files []types.FileResult
	for rows.Next() {
		var (
			f      types.FileResult
			status string
			errMsg sql.NullString
		)
		if err := rows.Scan(&f.Path, &status,
			&f.Fixes.MenuButtons, &f.Fixes.CopyButtons, &f.Fixes.Headings, &f.Fixes.Images,
			&errMsg); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		f.Status = types.FileStatus(status)
		f.Error = errMsg.String
		files = append(files, f)
	}
	return files, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
