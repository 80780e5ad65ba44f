// Package storage persists serialized documents: a SQLite-backed store for
// autosave slots and a plain file store for explicit save/open.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps named documents in a single SQLite database. Each slot
// holds the serialized document payload and its last-write time.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	name       TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// OpenSQLite opens (creating if needed) the document database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize document db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save writes a document slot, replacing any previous content.
func (s *SQLiteStore) Save(name string, data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO documents (name, payload, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(name) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		name, data)
	if err != nil {
		return fmt.Errorf("failed to save document %q: %w", name, err)
	}
	return nil
}

// Load reads a document slot. A missing slot returns nil data and no
// error.
func (s *SQLiteStore) Load(name string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM documents WHERE name = ?`, name).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document %q: %w", name, err)
	}
	return payload, nil
}

// List returns the stored slot names, most recently written first.
func (s *SQLiteStore) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM documents ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a document slot.
func (s *SQLiteStore) Delete(name string) error {
	_, err := s.db.Exec(`DELETE FROM documents WHERE name = ?`, name)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
