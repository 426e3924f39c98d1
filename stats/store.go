// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package stats persists per-frame replay metrics in SQLite.
// It uses the pure-Go modernc.org/sqlite driver, so no cgo is required.
package stats

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// ErrNoRun is returned when a run id is unknown.
var ErrNoRun = errors.New("stats: no such run")

// Store is a SQLite database of replay runs and their frames.
type Store struct {
	db *sql.DB
}

// Run is one replay of a trace.
type Run struct {
	ID        int64
	Trace     string
	Device    string
	CreatedAt time.Time

	Frames    int64
	Batches   int64
	Vertices  int64
	DrawCalls int64
	Dropped   int64
}

// Frame is the metrics of one presented frame.
type Frame struct {
	Index     int64
	Batches   int
	Vertices  int
	DrawCalls int
	Dropped   int
	FrameTime time.Duration
	GameState string
}

// Open creates or opens the database at path, creating parent directories
// and the schema as needed. A leading ~ expands to the home directory.
func Open(path string) (*Store, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("stats: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("stats: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("stats: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("stats: cannot connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("stats: migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			trace TEXT NOT NULL,
			device TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS frames (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			frame INTEGER NOT NULL,
			batches INTEGER NOT NULL,
			vertices INTEGER NOT NULL,
			draw_calls INTEGER NOT NULL,
			dropped INTEGER NOT NULL,
			frame_time_ns INTEGER NOT NULL,
			game_state TEXT NOT NULL,
			PRIMARY KEY (run_id, frame)
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginRun registers a new replay of trace on device and returns its id.
func (s *Store) BeginRun(trace, device string) (int64, error) {
	res, err := s.db.Exec("INSERT INTO runs (trace, device) VALUES (?, ?)", trace, device)
	if err != nil {
		return 0, fmt.Errorf("stats: cannot create run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("stats: cannot get run id: %w", err)
	}
	return id, nil
}

// Record stores the metrics of frames for run in one transaction.
func (s *Store) Record(run int64, frames []Frame) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("stats: cannot begin: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow("SELECT COUNT(*) FROM runs WHERE id = ?", run).Scan(&exists); err != nil {
		return fmt.Errorf("stats: cannot look up run: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: %d", ErrNoRun, run)
	}

	stmt, err := tx.Prepare(`INSERT INTO frames
		(run_id, frame, batches, vertices, draw_calls, dropped, frame_time_ns, game_state)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("stats: cannot prepare: %w", err)
	}
	defer stmt.Close()

	for _, f := range frames {
		if _, err := stmt.Exec(run, f.Index, f.Batches, f.Vertices, f.DrawCalls, f.Dropped,
			f.FrameTime.Nanoseconds(), f.GameState); err != nil {
			return fmt.Errorf("stats: cannot save frame %d: %w", f.Index, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("stats: cannot commit: %w", err)
	}
	return nil
}

// Runs returns up to limit runs with their frame totals, newest first.
// limit <= 0 means 20.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT r.id, r.trace, r.device, r.created_at,
		       COUNT(f.frame),
		       COALESCE(SUM(f.batches), 0),
		       COALESCE(SUM(f.vertices), 0),
		       COALESCE(SUM(f.draw_calls), 0),
		       COALESCE(SUM(f.dropped), 0)
		FROM runs r
		LEFT JOIN frames f ON f.run_id = r.id
		GROUP BY r.id
		ORDER BY r.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("stats: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Trace, &r.Device, &createdAt,
			&r.Frames, &r.Batches, &r.Vertices, &r.DrawCalls, &r.Dropped); err != nil {
			return nil, fmt.Errorf("stats: cannot scan run: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats: row iteration error: %w", err)
	}
	return runs, nil
}

// Frames returns the frames recorded for run in presentation order.
func (s *Store) Frames(run int64) ([]Frame, error) {
	rows, err := s.db.Query(`
		SELECT frame, batches, vertices, draw_calls, dropped, frame_time_ns, game_state
		FROM frames WHERE run_id = ? ORDER BY frame`, run)
	if err != nil {
		return nil, fmt.Errorf("stats: cannot query frames: %w", err)
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		var ns int64
		if err := rows.Scan(&f.Index, &f.Batches, &f.Vertices, &f.DrawCalls, &f.Dropped, &ns, &f.GameState); err != nil {
			return nil, fmt.Errorf("stats: cannot scan frame: %w", err)
		}
		f.FrameTime = time.Duration(ns)
		frames = append(frames, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats: row iteration error: %w", err)
	}
	return frames, nil
}

// parseTime handles both time.Time and the SQLite text form.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return t
		}
	}
	return time.Time{}
}
