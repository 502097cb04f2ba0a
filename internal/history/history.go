// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists successful resolutions in a SQLite database
// so past lookups can be listed and searched without touching the
// network again.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

// Entry is one recorded resolution.
type Entry struct {
	ID         int64
	Query      string
	ResolvedAt time.Time
	Ref        types.PaperRef
}

// Store manages the resolution history database.
type Store struct {
	db  *sql.DB
	fts bool
}

// Open opens or creates the history database at path and creates the
// schema if it does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS resolutions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			title TEXT NOT NULL,
			authors TEXT,
			year INTEGER,
			venue TEXT,
			pages TEXT,
			pages_source TEXT,
			source TEXT,
			doi TEXT,
			url TEXT,
			resolved_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_resolutions_query ON resolutions(query)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync. The fts5 module is only
	// compiled in when go-sqlite3 is built with -tags sqlite_fts5; without
	// it Search falls back to substring matching.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='resolutions_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		s.fts = true
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE resolutions_fts USING fts5(title, query, content=resolutions, content_rowid=rowid)`,
		`CREATE TRIGGER resolutions_ai AFTER INSERT ON resolutions BEGIN
			INSERT INTO resolutions_fts(rowid, title, query) VALUES (new.rowid, new.title, new.query);
		END`,
		`CREATE TRIGGER resolutions_ad AFTER DELETE ON resolutions BEGIN
			INSERT INTO resolutions_fts(resolutions_fts, rowid, title, query) VALUES('delete', old.rowid, old.title, old.query);
		END`,
	}
	for _, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "fts5") {
				s.fts = false
				return nil
			}
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	s.fts = true
	return nil
}

// Record appends a resolution to the history.
func (s *Store) Record(ctx context.Context, query string, ref *types.PaperRef) error {
	authors, err := json.Marshal(ref.Authors)
	if err != nil {
		return fmt.Errorf("encoding authors: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO resolutions
			(query, title, authors, year, venue, pages, pages_source, source, doi, url, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		query, ref.Title, string(authors), ref.Year, ref.Venue, ref.Pages,
		ref.PagesSource, ref.Source, ref.DOI, ref.BestURL(),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting resolution: %w", err)
	}
	return nil
}

// Recent returns the latest resolutions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT rowid, query, title, authors, year, venue, pages, pages_source, source, doi, url, resolved_at
		FROM resolutions ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Search full-text searches past resolutions by title and query. When the
// database was built without the fts5 module it matches substrings instead.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	if !s.fts {
		pattern := "%" + query + "%"
		rows, err := s.db.QueryContext(ctx,
			`SELECT rowid, query, title, authors, year, venue, pages, pages_source, source, doi, url, resolved_at
			FROM resolutions WHERE title LIKE ? OR query LIKE ?
			ORDER BY rowid DESC LIMIT ?`, pattern, pattern, limit)
		if err != nil {
			return nil, fmt.Errorf("searching history: %w", err)
		}
		defer rows.Close()
		return scanEntries(rows)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.rowid, r.query, r.title, r.authors, r.year, r.venue, r.pages, r.pages_source, r.source, r.doi, r.url, r.resolved_at
		FROM resolutions_fts
		JOIN resolutions r ON r.rowid = resolutions_fts.rowid
		WHERE resolutions_fts MATCH ?
		ORDER BY resolutions_fts.rank LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching history: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			authors    string
			resolvedAt string
		)
		if err := rows.Scan(&e.ID, &e.Query, &e.Ref.Title, &authors, &e.Ref.Year,
			&e.Ref.Venue, &e.Ref.Pages, &e.Ref.PagesSource, &e.Ref.Source,
			&e.Ref.DOI, &e.Ref.URL, &resolvedAt); err != nil {
			return nil, fmt.Errorf("scanning resolution: %w", err)
		}
		if authors != "" {
			if err := json.Unmarshal([]byte(authors), &e.Ref.Authors); err != nil {
				return nil, fmt.Errorf("decoding authors: %w", err)
			}
		}
		if t, err := time.Parse(time.RFC3339, resolvedAt); err == nil {
			e.ResolvedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
