// db.go
//
// Database helpers for the Cordle console.
// Responsibilities:
//   - Opening the SQLite statistics database with safe defaults (WAL, busy timeout).
//   - Choosing the statistics backend from configuration.
//
// Schema migrations are embedded in assets/sql and applied by stats.NewSQLiteStore.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/Lcyanstars/Cordle/internal/config"
	"github.com/Lcyanstars/Cordle/internal/stats"
)

// openDB opens (and creates if missing) a SQLite database file.
// The parent directory of a relative path such as ./data/cordle.db is created first.
func openDB(dsn string) (*sql.DB, error) {
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
	// One writer; the console never needs more.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// openStats returns the configured statistics store.
func openStats(ctx context.Context, cfg *config.Config) (stats.Store, error) {
	if cfg.StatsBackend == config.BackendMemory {
		log.Info().Msg("statistics kept in memory")
		return stats.NewMemoryStore(), nil
	}
	db, err := openDB(cfg.StatsDSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.StatsDSN, err)
	}
	st, err := stats.NewSQLiteStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info().Str("dsn", cfg.StatsDSN).Msg("statistics database ready")
	return st, nil
}
