// Package store exports scan results to SQLite so downstream tools can
// query hands and standings without re-parsing the logs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/coder/quartz"
	_ "modernc.org/sqlite"
)

// TimeFormat is the fixed-width timestamp format used in the database.
// Fixed width keeps lexicographic ordering chronological.
const TimeFormat = "2006-01-02T15:04:05Z"

// Store wraps a SQLite database connection.
type Store struct {
	db    *sql.DB
	clock quartz.Clock
}

// Open opens (creating if needed) a SQLite database with WAL mode and a
// busy timeout, and runs migrations. A nil clock means wall-clock time.
func Open(path string, clock quartz.Clock) (*Store, error) {
	if clock == nil {
		clock = quartz.NewReal()
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
		url.PathEscape(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db, clock: clock}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS games (
		id           TEXT PRIMARY KEY,
		hands        INTEGER NOT NULL,
		rejected     INTEGER NOT NULL,
		unrecognized INTEGER NOT NULL,
		exported_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS hands (
		game_id     TEXT NOT NULL,
		num         INTEGER NOT NULL,
		final_pot   INTEGER NOT NULL,
		total_chips INTEGER NOT NULL,
		gini        REAL NOT NULL,
		board       TEXT,
		winners     TEXT,
		start_ts    TEXT NOT NULL,
		end_ts      TEXT NOT NULL,
		PRIMARY KEY (game_id, num)
	);

	CREATE TABLE IF NOT EXISTS events (
		game_id     TEXT NOT NULL,
		hand_num    INTEGER NOT NULL,
		idx         INTEGER NOT NULL,
		kind        TEXT NOT NULL,
		player_id   TEXT,
		player_name TEXT,
		amount      INTEGER,
		all_in      INTEGER NOT NULL,
		cards       TEXT,
		position    TEXT NOT NULL,
		pot_after   INTEGER NOT NULL,
		ts          TEXT NOT NULL,
		PRIMARY KEY (game_id, hand_num, idx)
	);

	CREATE TABLE IF NOT EXISTS standings (
		label       TEXT PRIMARY KEY,
		ids         TEXT NOT NULL,
		names       TEXT NOT NULL,
		games       INTEGER NOT NULL,
		hands       INTEGER NOT NULL,
		wins        INTEGER NOT NULL,
		buy_in      INTEGER NOT NULL,
		leave_total INTEGER NOT NULL,
		profit      INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rejected_hands (
		game_id     TEXT NOT NULL,
		hand_num    INTEGER NOT NULL,
		line        TEXT,
		error_msg   TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_player ON events(player_id);
	CREATE INDEX IF NOT EXISTS idx_hands_game ON hands(game_id);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
