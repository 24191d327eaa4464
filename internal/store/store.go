// Package store handles the SQLite word-list database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/passw0rds/internal/model"
	"github.com/verte-zerg/passw0rds/internal/wordlist"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for categorized word lists.
type Store struct {
	db *sql.DB
}

var _ wordlist.Source = (*Store)(nil)

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS words (
			id INTEGER PRIMARY KEY,
			category TEXT NOT NULL,
			word TEXT NOT NULL,
			length INTEGER NOT NULL,
			UNIQUE (category, word)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_words_category_length ON words(category, length);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ImportWords stores words under category, skipping duplicates, and returns
// the number of rows inserted.
func (s *Store) ImportWords(ctx context.Context, category model.Category, words []string) (inserted int, err error) {
	name := category.ListName()
	if name == "" {
		return 0, fmt.Errorf("unknown category %d", int(category))
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO words (category, word, length) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, name, word, len([]rune(word)))
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// Load implements wordlist.Source. A category with no stored words yields an
// empty list rather than an error.
func (s *Store) Load(ctx context.Context, category model.Category, minLength, maxLength int) ([]string, error) {
	name := category.ListName()
	if name == "" {
		return nil, &wordlist.SourceError{Category: category, Err: fmt.Errorf("unknown category")}
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT word FROM words
		WHERE category = ? AND length BETWEEN ? AND ?
		ORDER BY id ASC`, name, minLength, maxLength)
	if err != nil {
		return nil, &wordlist.SourceError{Category: category, Err: err}
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, &wordlist.SourceError{Category: category, Err: err}
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, &wordlist.SourceError{Category: category, Err: err}
	}
	return words, nil
}

// Counts returns the number of stored words per category.
func (s *Store) Counts(ctx context.Context) (map[model.Category]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM words GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	result := make(map[model.Category]int, len(model.Categories))
	for _, c := range model.Categories {
		result[c] = 0
	}
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		c, err := model.ParseCategory(name)
		if err != nil {
			continue
		}
		result[c] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
