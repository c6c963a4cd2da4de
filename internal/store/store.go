// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists completed run records to SQLite so run history
// survives server restarts. The live run registry stays in memory; this is
// an append-only audit trail.
package store

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rotisserie/eris"

	"github.com/pdiddy/litreview/internal/registry"
)

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, eris.Wrapf(err, "store: open %s", path)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	const schema = `CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		topic TEXT NOT NULL,
		paper_limit INTEGER NOT NULL,
		status TEXT NOT NULL,
		report_path TEXT,
		error_message TEXT,
		created_at TEXT NOT NULL,
		completed_at TEXT
	)`
	if _, err := s.db.Exec(schema); err != nil {
		return eris.Wrap(err, "store: create schema")
	}
	return nil
}

// RecordRun upserts a terminal run record.
func (s *Store) RecordRun(run *registry.Run) error {
	var completed sql.NullString
	if run.CompletedAt != nil {
		completed = sql.NullString{String: run.CompletedAt.Format(time.RFC3339), Valid: true}
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, topic, paper_limit, status, report_path, error_message, created_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			report_path = excluded.report_path,
			error_message = excluded.error_message,
			completed_at = excluded.completed_at`,
		run.ID, run.Topic, run.PaperLimit, run.Status, run.ReportPath,
		run.ErrorMessage, run.CreatedAt.Format(time.RFC3339), completed,
	)
	if err != nil {
		return eris.Wrapf(err, "store: record run %s", run.ID)
	}
	return nil
}

// ListRuns returns up to limit recorded runs, newest first. limit <= 0
// means no limit.
func (s *Store) ListRuns(limit int) ([]*registry.Run, error) {
	query := `SELECT id, topic, paper_limit, status, report_path, error_message, created_at, completed_at
		FROM runs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "store: list runs")
	}
	defer rows.Close()

	var runs []*registry.Run
	for rows.Next() {
		var run registry.Run
		var reportPath, errorMessage, completedAt sql.NullString
		var createdAt string
		if err := rows.Scan(&run.ID, &run.Topic, &run.PaperLimit, &run.Status,
			&reportPath, &errorMessage, &createdAt, &completedAt); err != nil {
			return nil, eris.Wrap(err, "store: scan run row")
		}
		run.ReportPath = reportPath.String
		run.ErrorMessage = errorMessage.String
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = t
		}
		if completedAt.Valid {
			if t, err := time.Parse(time.RFC3339, completedAt.String); err == nil {
				run.CompletedAt = &t
			}
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}
