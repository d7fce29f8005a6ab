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
)

type Cache struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

var _ Store = (*Cache)(nil)

func Open(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	c := &Cache{readDB: readDB, writeDB: writeDB}
	if err := c.init(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) init() error {
	_, err := c.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			key       TEXT PRIMARY KEY,
			value     TEXT NOT NULL,
			timestamp INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_entries_timestamp ON entries(timestamp);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	var errs []error
	if c.readDB != nil {
		errs = append(errs, c.readDB.Close())
	}
	if c.writeDB != nil {
		errs = append(errs, c.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Get returns the entry stored under key. A missing key is (Entry{}, false, nil).
// A value that does not decode to a valid series is reported as ErrMalformedEntry.
func (c *Cache) Get(key string) (Entry, bool, error) {
	var value string
	err := c.readDB.QueryRow("SELECT value FROM entries WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("reading %s: %w", key, err)
	}

	var e Entry
	if err := json.Unmarshal([]byte(value), &e); err != nil {
		return Entry{}, false, fmt.Errorf("%w %s: %v", ErrMalformedEntry, key, err)
	}
	if err := e.Data.Validate(); err != nil {
		return Entry{}, false, fmt.Errorf("%w %s: %v", ErrMalformedEntry, key, err)
	}
	return e, true, nil
}

// Put overwrites whatever is stored under key.
func (c *Cache) Put(key string, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return c.putRaw(key, string(data), e.Timestamp)
}

func (c *Cache) putRaw(key, value string, timestamp int64) error {
	_, err := c.writeDB.Exec(`
		INSERT INTO entries (key, value, timestamp) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			timestamp = excluded.timestamp
	`, key, value, timestamp)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (c *Cache) Keys() ([]string, error) {
	rows, err := c.readDB.Query("SELECT key FROM entries ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Prune deletes entries written more than olderThan ago.
func (c *Cache) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UnixMilli()
	res, err := c.writeDB.Exec("DELETE FROM entries WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		c.writeDB.Exec("VACUUM")
	}
	return n, nil
}

func (c *Cache) Stats(dbPath string) (int, int64, error) {
	var count int
	if err := c.readDB.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("counting entries: %w", err)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, fmt.Errorf("stat %s: %w", dbPath, err)
	}
	return count, info.Size(), nil
}
