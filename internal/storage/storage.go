// Package storage persists news records to a SQLite database.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"uninews/internal/news"
)

// schema for the news_info table. The unique constraint on title is the
// dedup mechanism: a constraint violation on insert is an expected outcome,
// not an error.
const schema = `
CREATE TABLE IF NOT EXISTS news_info (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	university_name TEXT NOT NULL,
	title TEXT UNIQUE NOT NULL,
	date TEXT NOT NULL,
	link TEXT NOT NULL,
	category TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InsertOutcome reports what happened to a single insert attempt.
type InsertOutcome int

const (
	Inserted InsertOutcome = iota
	Duplicate
)

// StoredLink pairs a record id with its link for the cleanup scan.
type StoredLink struct {
	ID   int64  `db:"id"`
	Link string `db:"link"`
}

// Store wraps the news database.
type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at path and verifies the connection.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite allows a single writer; one connection avoids busy errors
	// when site batches insert concurrently.
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the news_info table if needed and backfills the
// category column on tables created before categorization existed.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating news_info table: %w", err)
	}

	hasCategory, err := s.hasColumn(ctx, "category")
	if err != nil {
		return err
	}
	if !hasCategory {
		if _, err := s.db.ExecContext(ctx, `ALTER TABLE news_info ADD COLUMN category TEXT`); err != nil {
			return fmt.Errorf("adding category column: %w", err)
		}
	}
	return nil
}

func (s *Store) hasColumn(ctx context.Context, column string) (bool, error) {
	rows, err := s.db.QueryContext(ctx, `PRAGMA table_info(news_info)`)
	if err != nil {
		return false, fmt.Errorf("inspecting news_info columns: %w", err)
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, ctype      string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("scanning column info: %w", err)
		}
		if name == column {
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("inspecting news_info columns: %w", err)
	}
	return found, nil
}

// Insert attempts a unique-keyed insert of rec. A uniqueness violation on
// title reports Duplicate with a nil error; any other failure is returned
// as an error.
func (s *Store) Insert(ctx context.Context, rec news.Record) (InsertOutcome, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO news_info (university_name, title, date, link, category)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.University, rec.Title, rec.Date.Format("2006-01-02"), rec.Link, string(rec.Category))
	if err != nil {
		var se *sqlite.Error
		if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return Duplicate, nil
		}
		return 0, fmt.Errorf("inserting record: %w", err)
	}
	return Inserted, nil
}

// ListLinks returns the id and link of every stored record, in id order.
func (s *Store) ListLinks(ctx context.Context) ([]StoredLink, error) {
	var links []StoredLink
	if err := s.db.SelectContext(ctx, &links, `SELECT id, link FROM news_info ORDER BY id`); err != nil {
		return nil, fmt.Errorf("listing stored links: %w", err)
	}
	return links, nil
}

// DeleteRecords removes the given ids in a single transaction, so a crash
// mid-cleanup leaves the table untouched.
func (s *Store) DeleteRecords(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `DELETE FROM news_info WHERE id = ?`, id); err != nil {
			tx.Rollback()
			return fmt.Errorf("deleting record %d: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing deletions: %w", err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM news_info`); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}
