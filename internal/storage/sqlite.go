// Package storage keeps the history of finished games in SQLite.
// Uses the pure-Go modernc.org/sqlite driver, so no CGO is needed.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome is how a game ended.
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
	OutcomeQuit Outcome = "quit"
)

// ErrInvalidRecord is returned by SaveGame for records that cannot be stored.
var ErrInvalidRecord = errors.New("invalid game record")

const sqliteTime = "2006-01-02 15:04:05"

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// GameRecord is one finished game.
type GameRecord struct {
	ID             int64
	GameID         string
	Level          int
	Speed          string
	Seed           int64
	Outcome        Outcome
	VirusesTotal   int
	VirusesCleared int
	Capsules       int
	Duration       time.Duration
	CreatedAt      time.Time
}

// Totals aggregates the whole history.
type Totals struct {
	Games          int
	Wins           int
	Losses         int
	VirusesCleared int
	PlayTime       time.Duration
}

// Open creates or opens the database at path, creating parent directories
// and the schema as needed. A leading ~ expands to the home directory.
func Open(path string) (*Store, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			speed TEXT NOT NULL,
			seed INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			viruses_total INTEGER NOT NULL DEFAULT 0,
			viruses_cleared INTEGER NOT NULL DEFAULT 0,
			capsules INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_created ON games(created_at DESC);
	`)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame stores r and returns its row ID. A zero CreatedAt means now.
func (s *Store) SaveGame(r GameRecord) (int64, error) {
	switch r.Outcome {
	case OutcomeWon, OutcomeLost, OutcomeQuit:
	default:
		return 0, fmt.Errorf("storage: %w: outcome %q", ErrInvalidRecord, r.Outcome)
	}
	if r.GameID == "" {
		return 0, fmt.Errorf("storage: %w: empty game id", ErrInvalidRecord)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	res, err := s.db.Exec(
		`INSERT INTO games
		 (game_id, level, speed, seed, outcome, viruses_total, viruses_cleared, capsules, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Level, r.Speed, r.Seed, string(r.Outcome),
		r.VirusesTotal, r.VirusesCleared, r.Capsules, r.Duration.Milliseconds(),
		r.CreatedAt.UTC().Format(sqliteTime),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentGames returns up to limit records, newest first. A non-positive
// limit means 10.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, level, speed, seed, outcome, viruses_total,
		        viruses_cleared, capsules, duration_ms, created_at
		 FROM games
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var out []GameRecord
	for rows.Next() {
		var (
			r          GameRecord
			outcome    string
			durationMs int64
			createdAt  any
		)
		if err := rows.Scan(&r.ID, &r.GameID, &r.Level, &r.Speed, &r.Seed, &outcome,
			&r.VirusesTotal, &r.VirusesCleared, &r.Capsules, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Totals summarizes every stored game.
func (s *Store) Totals() (Totals, error) {
	var (
		t          Totals
		durationMs int64
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'lost' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(viruses_cleared), 0),
		        COALESCE(SUM(duration_ms), 0)
		 FROM games`,
	).Scan(&t.Games, &t.Wins, &t.Losses, &t.VirusesCleared, &durationMs)
	if err != nil {
		return Totals{}, fmt.Errorf("storage: cannot query totals: %w", err)
	}
	t.PlayTime = time.Duration(durationMs) * time.Millisecond
	return t, nil
}

// ClearHistory deletes every record and returns how many were removed.
func (s *Store) ClearHistory() (int64, error) {
	res, err := s.db.Exec("DELETE FROM games")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	return n, nil
}

// parseTime accepts what the driver hands back for a DATETIME column.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(sqliteTime, v); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
