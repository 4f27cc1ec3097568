package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Snapshots provides key/value access to the snapshots table.
// It satisfies the store.Backend interface.
type Snapshots struct {
	db *sql.DB
}

// NewSnapshots wraps a database handle for snapshot access.
func NewSnapshots(db *sql.DB) *Snapshots {
	return &Snapshots{db: db}
}

// Get returns the blob stored under key. The second return value reports
// whether the key was present.
func (s *Snapshots) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM snapshots WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("snapshot get %q: %w", key, err)
	}
	return value, true, nil
}

// Put writes the blob under key, replacing any previous value.
func (s *Snapshots) Put(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("snapshot put %q: %w", key, err)
	}
	return nil
}

// Keys returns all snapshot keys in sorted order.
func (s *Snapshots) Keys() ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM snapshots ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("snapshot keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("snapshot keys: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
