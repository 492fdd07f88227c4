// internal/history/history.go
//
// Best-effort SQLite audit log of lobby activity.
// Responsibilities:
//   - Opening the SQLite database with safe defaults (WAL, busy timeout,
//     foreign keys) and applying the idempotent schema.
//   - Recording lobby creations and game starts.
//   - Serving aggregate counts for the /api/stats endpoint.
//
// Live lobby state never lives here — the registry is authoritative and
// in-memory only. History rows are purely observational: the secret word
// and the impostor id are never written to disk.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS lobbies (
    code        TEXT PRIMARY KEY,
    difficulty  TEXT NOT NULL,
    max_players INTEGER NOT NULL,
    created_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS games (
    code         TEXT PRIMARY KEY REFERENCES lobbies(code),
    player_count INTEGER NOT NULL,
    started_at   TEXT NOT NULL
);`

// Store wraps the audit database handle.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if missing) the SQLite database at dsn.
//
//   - Ensures the parent directory exists for relative DSNs (e.g. ./data/impostor.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Enforces foreign keys.
//   - Applies the schema (idempotent).
func Open(dsn string) (*Store, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// LobbyCreated records a freshly created lobby.
func (s *Store) LobbyCreated(ctx context.Context, code, difficulty string, maxPlayers int, createdAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO lobbies (code, difficulty, max_players, created_at)
        VALUES (?, ?, ?, ?)`,
		code, difficulty, maxPlayers, createdAt.UTC().Format(time.RFC3339),
	)
	return err
}

// GameStarted records a lobby reaching its started state.
func (s *Store) GameStarted(ctx context.Context, code string, playerCount int, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO games (code, player_count, started_at)
        VALUES (?, ?, ?)`,
		code, playerCount, startedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Stats holds aggregate counters for diagnostics.
type Stats struct {
	Lobbies int `json:"lobbies"`
	Games   int `json:"games"`
}

// Counts returns how many lobbies and started games have been recorded.
func (s *Store) Counts(ctx context.Context) (Stats, error) {
	var st Stats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM lobbies`).Scan(&st.Lobbies); err != nil {
		return Stats{}, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM games`).Scan(&st.Games); err != nil {
		return Stats{}, err
	}
	return st, nil
}
