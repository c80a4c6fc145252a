// Package storage is the durable dedup store: a single SQLite table keyed by
// deal title, with insertion order carried by the auto-incrementing id.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/tiags/rfd-radar/internal/models"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the deals database at the given path and runs
// migrations. Use ":memory:" for an in-memory database (useful for testing).
func Open(path string) (*Store, error) {
	dsn := path
	if path == ":memory:" {
		dsn = ":memory:?_pragma=foreign_keys(ON)"
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite wants a single writer.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	store := &Store{db: sqlDB}
	if err := store.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("reading user_version: %w", err)
	}
	if version >= currentVersion {
		return nil
	}

	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS deals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL UNIQUE,
		upvotes INTEGER NOT NULL DEFAULT 0,
		replies INTEGER NOT NULL DEFAULT 0,
		ratio REAL NOT NULL DEFAULT 0,
		url TEXT NOT NULL DEFAULT ''
	)`)
	if err != nil {
		return fmt.Errorf("creating deals table: %w", err)
	}

	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion)); err != nil {
		return fmt.Errorf("setting user_version: %w", err)
	}
	return nil
}

// SeenTitles loads every stored title into a membership set. Callers use
// this as a fast pre-filter only; InsertIfAbsent remains the authoritative
// dedup gate.
func (s *Store) SeenTitles(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT title FROM deals")
	if err != nil {
		return nil, fmt.Errorf("loading seen titles: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scanning title: %w", err)
		}
		seen[title] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating titles: %w", err)
	}
	return seen, nil
}

// InsertIfAbsent atomically inserts the deal unless its title is already
// present. A duplicate title is a no-op, not an error.
func (s *Store) InsertIfAbsent(ctx context.Context, deal models.Deal) (inserted bool, err error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO deals (title, upvotes, replies, ratio, url) VALUES (?, ?, ?, ?, ?)",
		deal.Title, deal.Upvotes, deal.Replies, deal.Ratio, deal.URL)
	if err != nil {
		return false, fmt.Errorf("inserting deal %q: %w", deal.Title, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking insert outcome for %q: %w", deal.Title, err)
	}
	return affected == 1, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM deals").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting deals: %w", err)
	}
	return count, nil
}

// EvictOldest removes the n lowest-insertion-order rows and reports how many
// were deleted.
func (s *Store) EvictOldest(ctx context.Context, n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM deals WHERE id IN (SELECT id FROM deals ORDER BY id LIMIT ?)", n)
	if err != nil {
		return 0, fmt.Errorf("evicting oldest deals: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking eviction outcome: %w", err)
	}
	return int(affected), nil
}

// DealsByRatio returns the full table ordered by descending ratio, for the
// end-of-run summary and the deals subcommand. Unbounded ratios sort first.
func (s *Store) DealsByRatio(ctx context.Context) ([]models.Deal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, upvotes, replies, ratio, url FROM deals ORDER BY ratio DESC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing deals: %w", err)
	}
	defer rows.Close()

	var deals []models.Deal
	for rows.Next() {
		var d models.Deal
		if err := rows.Scan(&d.ID, &d.Title, &d.Upvotes, &d.Replies, &d.Ratio, &d.URL); err != nil {
			return nil, fmt.Errorf("scanning deal: %w", err)
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deals: %w", err)
	}
	return deals, nil
}
