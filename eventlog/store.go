package eventlog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"balltracker/types"
)

// Run describes one processed video
type Run struct {
	RunID     string
	Input     string
	FPS       float64
	Width     int
	Height    int
	Frames    int
	StartedAt time.Time
}

// Store persists runs and their events in SQLite
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the SQLite database at path
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open event store: %w", err)
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			input TEXT NOT NULL,
			fps DOUBLE NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			started_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS events (
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			timestamp DOUBLE NOT NULL,
			quadrant INTEGER NOT NULL,
			color TEXT NOT NULL,
			action TEXT NOT NULL,
			PRIMARY KEY (run_id, seq),
			FOREIGN KEY(run_id) REFERENCES runs(run_id)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create event store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores a run and its events in one transaction.
// If run.RunID is empty, a new UUID is generated and assigned.
func (s *Store) SaveRun(run *Run, events []types.Event) (err error) {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save run: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.Exec(`
		INSERT INTO runs (run_id, input, fps, width, height, frames, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.RunID, run.Input, run.FPS, run.Width, run.Height, run.Frames, run.StartedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO events (run_id, seq, timestamp, quadrant, color, action)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert event: %w", err)
	}
	defer stmt.Close()

	for i, e := range events {
		if _, err = stmt.Exec(run.RunID, i, e.Timestamp, e.Quadrant, e.Color, string(e.Action)); err != nil {
			return fmt.Errorf("insert event %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save run: %w", err)
	}
	return nil
}

// Events returns the events of a run in their original order
func (s *Store) Events(runID string) ([]types.Event, error) {
	rows, err := s.db.Query(`
		SELECT timestamp, quadrant, color, action
		FROM events
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []types.Event
	for rows.Next() {
		var e types.Event
		var action string
		if err := rows.Scan(&e.Timestamp, &e.Quadrant, &e.Color, &action); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Action = types.Action(action)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Runs returns every stored run, oldest first
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT run_id, input, fps, width, height, frames, started_at
		FROM runs
		ORDER BY started_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt int64
		if err := rows.Scan(&r.RunID, &r.Input, &r.FPS, &r.Width, &r.Height, &r.Frames, &startedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = time.Unix(0, startedAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
