// Package telemetry provides SQLite-based persistence for run statistics.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package telemetry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/pixelhost/internal/platform"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunRecord is one completed hosting session.
type RunRecord struct {
	ID               int64
	SimID            string
	Display          string // "window", "terminal", "none"
	Frames           int
	SimSeconds       float64
	MaxFrameMillis   float64
	UnderrunWarnings int
	Reloads          int
	CreatedAt        time.Time
}

// SimSummary aggregates all recorded runs of one simulation.
type SimSummary struct {
	SimID            string
	Runs             int
	TotalFrames      int
	TotalSimSeconds  float64
	WorstFrameMillis float64
	UnderrunWarnings int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("telemetry: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("telemetry: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sim_id TEXT NOT NULL,
			display TEXT NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			sim_seconds REAL NOT NULL DEFAULT 0,
			max_frame_ms REAL NOT NULL DEFAULT 0,
			underrun_warnings INTEGER NOT NULL DEFAULT 0,
			reloads INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_sim_id ON runs(sim_id);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a completed session from the loop's final stats.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(simID, display string, stats platform.Stats) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (sim_id, display, frames, sim_seconds, max_frame_ms, underrun_warnings, reloads)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		simID, display, stats.Frames, stats.SimSeconds,
		stats.MaxFrameSeconds*1000, stats.UnderrunWarnings, stats.Reloads,
	)
	if err != nil {
		return 0, fmt.Errorf("telemetry: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("telemetry: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the latest N runs across all simulations.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, sim_id, display, frames, sim_seconds, max_frame_ms, underrun_warnings, reloads, created_at
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SimID, &r.Display, &r.Frames, &r.SimSeconds,
			&r.MaxFrameMillis, &r.UnderrunWarnings, &r.Reloads, &createdAt); err != nil {
			return nil, fmt.Errorf("telemetry: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("telemetry: row iteration error: %w", err)
	}

	return records, nil
}

// Summaries aggregates runs per simulation, worst offenders first.
func (s *Store) Summaries() ([]SimSummary, error) {
	rows, err := s.db.Query(
		`SELECT sim_id, COUNT(*), SUM(frames), SUM(sim_seconds), MAX(max_frame_ms), SUM(underrun_warnings)
		 FROM runs
		 GROUP BY sim_id
		 ORDER BY SUM(underrun_warnings) DESC, sim_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: cannot query summaries: %w", err)
	}
	defer rows.Close()

	var summaries []SimSummary
	for rows.Next() {
		var sum SimSummary
		if err := rows.Scan(&sum.SimID, &sum.Runs, &sum.TotalFrames,
			&sum.TotalSimSeconds, &sum.WorstFrameMillis, &sum.UnderrunWarnings); err != nil {
			return nil, fmt.Errorf("telemetry: cannot scan row: %w", err)
		}
		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("telemetry: row iteration error: %w", err)
	}

	return summaries, nil
}

// ClearRuns deletes all runs for the given simulation.
func (s *Store) ClearRuns(simID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE sim_id = ?", simID)
	if err != nil {
		return fmt.Errorf("telemetry: cannot clear runs: %w", err)
	}
	return nil
}
