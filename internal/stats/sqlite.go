// internal/stats/sqlite.go
//
// SQLite implementation of the Store interface.
// Responsibilities:
//   - Applying the bundled migrations (idempotent, recorded in _migrations).
//   - Appending history rows and bumping per-mode totals in one transaction.
//   - Reading the aggregate summary and newest-first history.
//
// Point totals are stored as decimal strings so repeated additions do not drift.

package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Lcyanstars/Cordle/assets"
)

const tsLayout = time.RFC3339Nano

// SQLiteStore persists records in the history and totals tables.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore wraps db and applies pending migrations.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if err := migrate(ctx, db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// migrate applies the bundled SQL migrations in lexical order, each in its
// own transaction, skipping those already listed in _migrations.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	migrations, err := assets.Migrations()
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	for _, m := range migrations {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, m.Name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", m.Name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.Name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.Name, err)
		}
		log.Info().Str("migration", m.Name).Msg("applied")
	}
	return nil
}

// Record inserts the history row and bumps the totals for r.Mode.
func (s *SQLiteStore) Record(ctx context.Context, r Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	won := 0
	if r.Won {
		won = 1
	}
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO history (id, played_at, mode, mode_label, snippet_id, summary, outcome, won)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Time.UTC().Format(tsLayout), string(r.Mode), r.Mode.Label(), r.SnippetID, r.Summary, r.Outcome, won,
	); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO totals (mode) VALUES (?) ON CONFLICT(mode) DO NOTHING`, string(r.Mode)); err != nil {
		return fmt.Errorf("ensure totals: %w", err)
	}
	var games, wins int
	var points string
	if err := tx.QueryRowContext(ctx,
		`SELECT games, wins, points FROM totals WHERE mode=?`, string(r.Mode),
	).Scan(&games, &wins, &points); err != nil {
		return fmt.Errorf("read totals: %w", err)
	}
	total, err := decimal.NewFromString(points)
	if err != nil {
		return fmt.Errorf("parse totals.points %q: %w", points, err)
	}

	games++
	if r.Mode == Point {
		total = total.Add(decimal.NewFromFloat(r.Outcome))
	} else if r.Won {
		wins++
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE totals SET games=?, wins=?, points=? WHERE mode=?`,
		games, wins, total.String(), string(r.Mode),
	); err != nil {
		return fmt.Errorf("update totals: %w", err)
	}
	return tx.Commit()
}

// Summary folds the per-mode totals into one Summary.
func (s *SQLiteStore) Summary(ctx context.Context) (Summary, error) {
	var out Summary
	rows, err := s.db.QueryContext(ctx, `SELECT mode, games, wins, points FROM totals`)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		var mode, points string
		var games, wins int
		if err := rows.Scan(&mode, &games, &wins, &points); err != nil {
			return out, err
		}
		out.TotalGames += games
		switch Mode(mode) {
		case GuessLimited:
			out.GuessLimitedGames, out.GuessLimitedWins = games, wins
		case TimeAttack:
			out.TimeAttackGames, out.TimeAttackWins = games, wins
		case Point:
			out.PointGames = games
			p, err := decimal.NewFromString(points)
			if err != nil {
				return out, fmt.Errorf("parse totals.points %q: %w", points, err)
			}
			out.TotalPoints = p
		}
	}
	return out, rows.Err()
}

// History returns records newest first; limit <= 0 returns all of them.
func (s *SQLiteStore) History(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, played_at, mode, snippet_id, summary, outcome, won
        FROM history
        ORDER BY rowid DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var playedAt, mode string
		var won int
		if err := rows.Scan(&r.ID, &playedAt, &mode, &r.SnippetID, &r.Summary, &r.Outcome, &won); err != nil {
			return nil, err
		}
		t, err := time.Parse(tsLayout, playedAt)
		if err != nil {
			return nil, fmt.Errorf("parse played_at %q: %w", playedAt, err)
		}
		r.Time = t
		r.Mode = Mode(mode)
		r.Won = won == 1
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
