package itunes

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Cache persists raw upstream response bodies keyed by request URL so
// repeated runs stay under the external rate ceiling. Only HTTP bodies are
// stored; computed analyses are never persisted.
type Cache struct {
	db *sql.DB
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS responses (
    key        TEXT PRIMARY KEY,
    body       BLOB NOT NULL,
    fetched_at TIMESTAMP NOT NULL
);`

// NewCache opens (or creates) a response cache at path. Use ":memory:"
// for tests.
func NewCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	// SQLite only allows one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Get returns the cached body for key if it is younger than maxAge.
func (c *Cache) Get(key string, maxAge time.Duration) ([]byte, bool) {
	var body []byte
	var fetchedAt time.Time

	row := c.db.QueryRow("SELECT body, fetched_at FROM responses WHERE key = ?", key)
	if err := row.Scan(&body, &fetchedAt); err != nil {
		return nil, false
	}
	if time.Since(fetchedAt) > maxAge {
		return nil, false
	}
	return body, true
}

// Put stores (or refreshes) the body for key.
func (c *Cache) Put(key string, body []byte) error {
	_, err := c.db.Exec(
		`INSERT INTO responses (key, body, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		key, body, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to store response: %w", err)
	}
	return nil
}
