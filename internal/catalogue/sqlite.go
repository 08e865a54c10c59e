// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalogue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/ads-parser/pkg/types"
)

// SQLiteStore holds exported artifacts in a SQLite database for ad-hoc
// SQL. Each artifact is one row in runs; papers, authors, and not_found
// rows are keyed by run_id.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			source_file TEXT,
			column_name TEXT,
			download_date TEXT,
			completed_date TEXT,
			total_bibcodes INTEGER,
			batch_size INTEGER,
			include_abstracts INTEGER,
			papers_retrieved INTEGER,
			duplicates_removed INTEGER,
			skipped_records INTEGER,
			requests_issued INTEGER,
			failed_batches INTEGER,
			rl_observed INTEGER,
			rl_limit INTEGER,
			rl_remaining INTEGER,
			rl_reset TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
			bibcode TEXT NOT NULL,
			title TEXT,
			abstract TEXT,
			journal TEXT,
			year INTEGER,
			citation_count INTEGER,
			PRIMARY KEY (run_id, bibcode)
		)`,
		`CREATE TABLE IF NOT EXISTS authors (
			run_id TEXT NOT NULL,
			bibcode TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			PRIMARY KEY (run_id, bibcode, position),
			FOREIGN KEY (run_id, bibcode) REFERENCES papers(run_id, bibcode) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS not_found (
			run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			bibcode TEXT NOT NULL,
			PRIMARY KEY (run_id, bibcode)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(year)`,
		`CREATE INDEX IF NOT EXISTS idx_authors_name ON authors(name)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save writes the artifact in one transaction. Saving the same run id
// again replaces the earlier rows.
func (s *SQLiteStore) Save(ctx context.Context, a *Artifact) error {
	if a.Metadata.RunID == "" {
		return fmt.Errorf("artifact has no run id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	runID := a.Metadata.RunID
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("clearing run %s: %w", runID, err)
	}

	m, sum := a.Metadata, a.Summary
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, source_file, column_name, download_date, completed_date,
			total_bibcodes, batch_size, include_abstracts, papers_retrieved, duplicates_removed,
			skipped_records, requests_issued, failed_batches, rl_observed, rl_limit, rl_remaining, rl_reset)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, m.SourceFile, m.Column, formatTime(m.DownloadDate), formatTime(m.CompletedDate),
		m.TotalBibcodes, m.BatchSize, m.IncludeAbstracts, m.PapersRetrieved, sum.DuplicatesRemoved,
		sum.SkippedRecords, sum.RequestsIssued, sum.FailedBatches,
		sum.RateLimit.Observed, sum.RateLimit.Limit, sum.RateLimit.Remaining, formatTime(sum.RateLimit.Reset),
	); err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	paperStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (run_id, bibcode, title, abstract, journal, year, citation_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing paper insert: %w", err)
	}
	defer paperStmt.Close()

	authorStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO authors (run_id, bibcode, position, name) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing author insert: %w", err)
	}
	defer authorStmt.Close()

	for _, r := range a.Records() {
		if _, err := paperStmt.ExecContext(ctx, runID, r.Bibcode, r.Title, r.Abstract, r.Journal, r.Year, r.CitationCount); err != nil {
			return fmt.Errorf("inserting paper %s: %w", r.Bibcode, err)
		}
		for i, name := range r.Authors {
			if _, err := authorStmt.ExecContext(ctx, runID, r.Bibcode, i, name); err != nil {
				return fmt.Errorf("inserting author of %s: %w", r.Bibcode, err)
			}
		}
	}

	for i, b := range a.NotFound {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO not_found (run_id, position, bibcode) VALUES (?, ?, ?)`, runID, i, b,
		); err != nil {
			return fmt.Errorf("inserting not-found %s: %w", b, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run %s: %w", runID, err)
	}
	return nil
}

// Runs lists stored run ids, most recently completed first.
func (s *SQLiteStore) Runs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT run_id FROM runs ORDER BY completed_date DESC, run_id`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Load rebuilds the artifact stored under runID. An empty runID loads the
// most recently completed run.
func (s *SQLiteStore) Load(ctx context.Context, runID string) (*Artifact, error) {
	if runID == "" {
		ids, err := s.Runs(ctx)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("database holds no runs")
		}
		runID = ids[0]
	}

	a := &Artifact{Papers: map[string]types.PaperRecord{}, NotFound: []string{}}
	var (
		download, completed, reset string
		m                          = &a.Metadata
		sum                        = &a.Summary
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, source_file, column_name, download_date, completed_date,
			total_bibcodes, batch_size, include_abstracts, papers_retrieved, duplicates_removed,
			skipped_records, requests_issued, failed_batches, rl_observed, rl_limit, rl_remaining, rl_reset
		FROM runs WHERE run_id = ?`, runID,
	).Scan(&m.RunID, &m.SourceFile, &m.Column, &download, &completed,
		&m.TotalBibcodes, &m.BatchSize, &m.IncludeAbstracts, &m.PapersRetrieved, &sum.DuplicatesRemoved,
		&sum.SkippedRecords, &sum.RequestsIssued, &sum.FailedBatches,
		&sum.RateLimit.Observed, &sum.RateLimit.Limit, &sum.RateLimit.Remaining, &reset)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", runID, err)
	}
	if m.DownloadDate, err = parseTime(download); err != nil {
		return nil, err
	}
	if m.CompletedDate, err = parseTime(completed); err != nil {
		return nil, err
	}
	if sum.RateLimit.Reset, err = parseTime(reset); err != nil {
		return nil, err
	}

	if err := s.loadPapers(ctx, a); err != nil {
		return nil, err
	}
	if err := s.loadNotFound(ctx, a); err != nil {
		return nil, err
	}

	sum.TotalRequested = len(a.Papers) + len(a.NotFound)
	sum.Found = len(a.Papers)
	sum.NotFound = len(a.NotFound)
	return a, nil
}

func (s *SQLiteStore) loadPapers(ctx context.Context, a *Artifact) error {
	runID := a.Metadata.RunID
	rows, err := s.db.QueryContext(ctx,
		`SELECT bibcode, title, abstract, journal, year, citation_count
		FROM papers WHERE run_id = ? ORDER BY bibcode`, runID)
	if err != nil {
		return fmt.Errorf("loading papers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r types.PaperRecord
		if err := rows.Scan(&r.Bibcode, &r.Title, &r.Abstract, &r.Journal, &r.Year, &r.CitationCount); err != nil {
			return fmt.Errorf("scanning paper: %w", err)
		}
		a.Papers[r.Bibcode] = r
	}
	if err := rows.Err(); err != nil {
		return err
	}

	arows, err := s.db.QueryContext(ctx,
		`SELECT bibcode, name FROM authors WHERE run_id = ? ORDER BY bibcode, position`, runID)
	if err != nil {
		return fmt.Errorf("loading authors: %w", err)
	}
	defer arows.Close()
	for arows.Next() {
		var bibcode, name string
		if err := arows.Scan(&bibcode, &name); err != nil {
			return fmt.Errorf("scanning author: %w", err)
		}
		r := a.Papers[bibcode]
		r.Authors = append(r.Authors, name)
		a.Papers[bibcode] = r
	}
	return arows.Err()
}

func (s *SQLiteStore) loadNotFound(ctx context.Context, a *Artifact) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT bibcode FROM not_found WHERE run_id = ? ORDER BY position`, a.Metadata.RunID)
	if err != nil {
		return fmt.Errorf("loading not-found: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return fmt.Errorf("scanning not-found: %w", err)
		}
		a.NotFound = append(a.NotFound, b)
	}
	return rows.Err()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored time %q: %w", s, err)
	}
	return t, nil
}
