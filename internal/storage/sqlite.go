// Package storage provides SQLite-based persistence for match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/striker-ball/internal/roster"
	"github.com/vovakirdan/striker-ball/internal/session"
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// Match is one finished round.
type Match struct {
	ID       int64
	ScoreA   int
	ScoreB   int
	Winner   string // "A", "B" or empty when the round ended undecided
	Ticks    uint64
	Mode     string // roster mode, e.g. "single/double"
	Decision string // match done choice, empty if none was made
	// CreatedAt is stored in UTC.
	CreatedAt time.Time
}

// TeamWins holds the number of won matches per team.
type TeamWins struct {
	A     int
	B     int
	Total int
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
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score_a INTEGER NOT NULL DEFAULT 0,
			score_b INTEGER NOT NULL DEFAULT 0,
			winner TEXT,
			ticks INTEGER NOT NULL DEFAULT 0,
			mode TEXT NOT NULL,
			decision TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_matches_winner ON matches(winner);
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

// SaveMatch records a finished round.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(m Match) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO matches (score_a, score_b, winner, ticks, mode, decision)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.ScoreA, m.ScoreB, nullString(m.Winner), int64(m.Ticks), m.Mode, nullString(m.Decision),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SaveResult implements session.ResultSaver.
func (s *Store) SaveResult(res session.Result) error {
	m := Match{
		ScoreA: int(res.Score.A),
		ScoreB: int(res.Score.B),
		Ticks:  res.Ticks,
		Mode:   res.Mode,
	}
	if res.HasWinner {
		m.Winner = res.Winner.String()
	}
	if res.Decided {
		m.Decision = res.Decision.String()
	}
	_, err := s.SaveMatch(m)
	return err
}

var _ session.ResultSaver = (*Store)(nil)

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, score_a, score_b, winner, ticks, mode, decision, created_at
		 FROM matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		var winner, decision sql.NullString
		var ticks int64
		var createdAt any
		if err := rows.Scan(&m.ID, &m.ScoreA, &m.ScoreB, &winner, &ticks, &m.Mode, &decision, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.Winner = winner.String
		m.Decision = decision.String
		m.Ticks = uint64(ticks)
		m.CreatedAt = parseTime(createdAt)
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return matches, nil
}

// TeamWins counts won matches per team. Undecided rounds only count towards
// the total.
func (s *Store) TeamWins() (TeamWins, error) {
	var w TeamWins
	err := s.db.QueryRow(
		`SELECT
			COALESCE(SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END), 0),
			COUNT(*)
		 FROM matches`,
		roster.TeamA.String(), roster.TeamB.String(),
	).Scan(&w.A, &w.B, &w.Total)
	if err != nil {
		return TeamWins{}, fmt.Errorf("storage: cannot count wins: %w", err)
	}
	return w, nil
}

// ClearMatches deletes the whole history.
func (s *Store) ClearMatches() error {
	if _, err := s.db.Exec("DELETE FROM matches"); err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
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
