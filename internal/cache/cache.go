// Package cache keeps the local working copy of the document, the name of the
// file it came from and the last filter, in a small SQLite database.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/storage"
)

const currentVersion = 1

const (
	keyDocument = "document"
	keyFileName = "filename"
	keyFilter   = "filter"
)

// DefaultFileName names documents that were never loaded from or saved to a file.
const DefaultFileName = "time-tracker-data.json"

type Cache struct {
	db *sql.DB
}

// New opens (or creates) the cache database at path and runs migrations.
func New(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return c, nil
}

// NewMemory creates an in-memory cache for testing.
func NewMemory() (*Cache, error) {
	return New(":memory:")
}

func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) migrate() error {
	var version int
	if err := c.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= currentVersion {
		return nil
	}
	if version < 1 {
		const ddl = `
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		);`
		if _, err := c.db.Exec(ddl); err != nil {
			return err
		}
	}
	_, err := c.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (c *Cache) get(key string) (string, bool, error) {
	var value string
	err := c.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get %q: %w", key, err)
	}
	return value, true, nil
}

func (c *Cache) set(key, value string) error {
	_, err := c.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

// HasDocument reports whether a working copy is cached.
func (c *Cache) HasDocument() (bool, error) {
	_, ok, err := c.get(keyDocument)
	return ok, err
}

// Document returns the cached working copy. Without one it returns an empty
// document holding only the off-day system type.
func (c *Cache) Document() (model.Document, error) {
	raw, ok, err := c.get(keyDocument)
	if err != nil {
		return model.Document{}, err
	}
	if !ok {
		doc := model.Document{Types: []model.Type{}, Entries: []model.Entry{}}
		storage.EnsureSystemTypes(&doc)
		return doc, nil
	}
	doc, err := storage.Decode([]byte(raw))
	if err != nil {
		return model.Document{}, fmt.Errorf("cached document: %w", err)
	}
	return doc, nil
}

// SaveDocument replaces the working copy.
func (c *Cache) SaveDocument(doc model.Document) error {
	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}
	return c.set(keyDocument, string(data))
}

// SavedAt returns when the working copy was last written.
func (c *Cache) SavedAt() (time.Time, bool, error) {
	var ts string
	err := c.db.QueryRow(`SELECT updated_at FROM kv WHERE key = ?`, keyDocument).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("cache saved at: %w", err)
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("cache saved at: %w", err)
	}
	return t, true, nil
}

// FileName returns the name of the file the working copy belongs to.
func (c *Cache) FileName() (string, error) {
	name, ok, err := c.get(keyFileName)
	if err != nil || !ok || name == "" {
		return DefaultFileName, err
	}
	return name, nil
}

func (c *Cache) SetFileName(name string) error {
	return c.set(keyFileName, name)
}

// Filter returns the persisted filter, or the empty filter.
func (c *Cache) Filter() (model.Filter, error) {
	raw, ok, err := c.get(keyFilter)
	if err != nil || !ok {
		return model.Filter{}, err
	}
	var f model.Filter
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return model.Filter{}, fmt.Errorf("cached filter: %w", err)
	}
	return f, nil
}

func (c *Cache) SaveFilter(f model.Filter) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal filter: %w", err)
	}
	return c.set(keyFilter, string(data))
}

// Clear drops the working copy, file name and filter.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM kv`); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}
