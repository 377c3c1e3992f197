package storage

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate runs database migrations
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS skins (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			weapon TEXT NOT NULL,
			rarity TEXT NOT NULL,
			wear TEXT NOT NULL DEFAULT '',
			price INTEGER NOT NULL DEFAULT 0,
			image_url TEXT NOT NULL DEFAULT '',
			float_value REAL NOT NULL DEFAULT 0,
			owner_name TEXT NOT NULL DEFAULT '',
			is_available INTEGER NOT NULL DEFAULT 1,
			stickers TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_skins_available_price ON skins(is_available, price DESC)`,
		`CREATE TABLE IF NOT EXISTS trade_offers (
			id TEXT PRIMARY KEY,
			from_user TEXT NOT NULL,
			to_user TEXT NOT NULL,
			offered_skin_id TEXT NOT NULL REFERENCES skins(id),
			requested_skin_id TEXT NOT NULL REFERENCES skins(id),
			message TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_status ON trade_offers(status, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS servers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			ip TEXT NOT NULL,
			port TEXT NOT NULL,
			map TEXT NOT NULL DEFAULT '',
			players INTEGER NOT NULL DEFAULT 0,
			max_players INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'offline',
			rating REAL NOT NULL DEFAULT 0,
			reviews INTEGER NOT NULL DEFAULT 0,
			ping INTEGER NOT NULL DEFAULT 0,
			game_mode TEXT NOT NULL DEFAULT '',
			region TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return errors.Wrap(err, "migration failed")
		}
	}

	return nil
}
