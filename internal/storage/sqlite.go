// Package storage provides SQLite-based persistence for finished runs,
// high scores and registered usernames.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrUsernameTaken is returned when another owner already registered a username.
var ErrUsernameTaken = errors.New("storage: username taken")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one finished run.
type Run struct {
	ID         int64
	GameID     string
	Mode       string // "casual" or "leaderboard"
	Username   string // Empty for anonymous casual runs
	Score      int
	Tier       int
	DurationMs int64
	CreatedAt  time.Time
}

// RunFilter selects runs for TopRuns.
type RunFilter struct {
	GameID string
	Mode   string // Empty means every mode
	Limit  int    // <= 0 means 10
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			username TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			tier INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(game_id, mode, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_username ON runs(username);

		CREATE TABLE IF NOT EXISTS players (
			username TEXT PRIMARY KEY COLLATE NOCASE,
			owner TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (game_id, mode, username, score, tier, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Mode, r.Username, r.Score, r.Tier, r.DurationMs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns returns the best runs matching the filter, highest score first.
// Ties go to the earlier run.
func (s *Store) TopRuns(f RunFilter) ([]Run, error) {
	if f.Limit <= 0 {
		f.Limit = 10
	}

	query := `SELECT id, game_id, mode, username, score, tier, duration_ms, created_at
		 FROM runs
		 WHERE game_id = ?`
	args := []any{f.GameID}
	if f.Mode != "" {
		query += " AND mode = ?"
		args = append(args, f.Mode)
	}
	query += " ORDER BY score DESC, id ASC LIMIT ?"
	args = append(args, f.Limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Mode, &r.Username, &r.Score, &r.Tier, &r.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = scanTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// HighScore returns the highest score for the given game across modes.
// Returns 0 if no runs exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs WHERE game_id = ?", gameID).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the given game.
func (s *Store) ClearRuns(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RegisterPlayer claims a username for owner (an SSH or OS user name).
// Usernames are case-insensitive. Claiming a name the same owner already
// holds succeeds; a name held by someone else fails with ErrUsernameTaken.
func (s *Store) RegisterPlayer(username, owner string) error {
	res, err := s.db.Exec(
		`INSERT INTO players (username, owner) VALUES (?, ?)
		 ON CONFLICT(username) DO NOTHING`,
		username, owner,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot register player: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 1 {
		return nil
	}

	holder, err := s.PlayerOwner(username)
	if err != nil {
		return err
	}
	if holder == "" {
		return fmt.Errorf("storage: player %s vanished during registration", username)
	}
	if !strings.EqualFold(holder, owner) {
		return fmt.Errorf("%w: %s", ErrUsernameTaken, username)
	}
	return nil
}

// PlayerOwner returns who registered username, or "" if nobody did.
func (s *Store) PlayerOwner(username string) (string, error) {
	var owner string
	err := s.db.QueryRow("SELECT owner FROM players WHERE username = ?", username).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot look up player: %w", err)
	}
	return owner, nil
}

// RunStats contains aggregated statistics for a game.
type RunStats struct {
	GameID     string
	Runs       int
	HighScore  int
	AvgScore   float64
	BestTier   int
	LongestMs  int64
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a game.
func (s *Store) Stats(gameID string) (*RunStats, error) {
	stats := &RunStats{GameID: gameID}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MAX(tier), 0), COALESCE(MAX(duration_ms), 0), MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.BestTier, &stats.LongestMs, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = scanTime(lastPlayed)
	return stats, nil
}

// scanTime handles both time.Time and string datetimes from the driver.
func scanTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
