// Package storage provides SQLite-based persistence for level attempts.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome is how an attempt ended.
type Outcome string

const (
	OutcomeVictory  Outcome = "victory"
	OutcomeGameOver Outcome = "game_over"
)

// Run is one finished attempt at a level.
type Run struct {
	ID         string
	Player     string
	Level      int
	Outcome    Outcome
	Collected  int
	Target     int
	Stars      int
	Percentage float64
	Duration   time.Duration
	CreatedAt  time.Time
}

// LevelStats aggregates a player's attempts at one level.
type LevelStats struct {
	Level      int
	Attempts   int
	Victories  int
	BestStars  int
	BestPct    float64
	LastPlayed time.Time
}

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			level INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			collected INTEGER NOT NULL DEFAULT 0,
			target INTEGER NOT NULL DEFAULT 0,
			stars INTEGER NOT NULL DEFAULT 0,
			percentage REAL NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player_level ON runs(player, level);
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

// SaveRun records a finished attempt and returns its ID. A new UUID is
// generated when run.ID is empty.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Outcome != OutcomeVictory && run.Outcome != OutcomeGameOver {
		return "", fmt.Errorf("storage: unknown outcome %q", run.Outcome)
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, player, level, outcome, collected, target, stars, percentage, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Player,
		run.Level,
		string(run.Outcome),
		run.Collected,
		run.Target,
		run.Stars,
		run.Percentage,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.ID, nil
}

// RunByID returns a single run, or nil when no run has that ID.
func (s *Store) RunByID(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, player, level, outcome, collected, target, stars, percentage, duration_ms, created_at
		 FROM runs WHERE id = ?`,
		id,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &run, nil
}

// RecentRuns returns the player's latest runs, newest first.
func (s *Store) RecentRuns(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, player, level, outcome, collected, target, stars, percentage, duration_ms, created_at
		 FROM runs
		 WHERE player = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return collectRuns(rows)
}

// LevelRuns returns the player's latest runs of one level, newest first.
func (s *Store) LevelRuns(player string, level, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, player, level, outcome, collected, target, stars, percentage, duration_ms, created_at
		 FROM runs
		 WHERE player = ? AND level = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		player, level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level runs: %w", err)
	}
	return collectRuns(rows)
}

// LevelStats returns per-level aggregates for the player, ordered by level.
// Levels never attempted are absent.
func (s *Store) LevelStats(player string) ([]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level,
		        COUNT(*),
		        SUM(CASE WHEN outcome = 'victory' THEN 1 ELSE 0 END),
		        COALESCE(MAX(CASE WHEN outcome = 'victory' THEN stars END), 0),
		        COALESCE(MAX(CASE WHEN outcome = 'victory' THEN percentage END), 0),
		        MAX(created_at)
		 FROM runs
		 WHERE player = ?
		 GROUP BY level
		 ORDER BY level`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	var stats []LevelStats
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.Level, &st.Attempts, &st.Victories, &st.BestStars, &st.BestPct, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearRuns deletes all of the player's runs.
func (s *Store) ClearRuns(player string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE player = ?", player)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var outcome string
	var durationMS int64
	var createdAt any
	err := sc.Scan(
		&r.ID,
		&r.Player,
		&r.Level,
		&outcome,
		&r.Collected,
		&r.Target,
		&r.Stars,
		&r.Percentage,
		&durationMS,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}
	r.Outcome = Outcome(outcome)
	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

func collectRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both time.Time and the string form SQLite may return.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
