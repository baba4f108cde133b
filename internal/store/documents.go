package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
)

// SQLDocuments keeps documents in the sqlite documents table.
type SQLDocuments struct {
	DB *sql.DB
}

func NewSQLDocuments(db *sql.DB) *SQLDocuments {
	return &SQLDocuments{DB: db}
}

func (d *SQLDocuments) Get(key string) ([]byte, bool, error) {
	var value string
	err := d.DB.QueryRow(`SELECT value FROM documents WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get document %q: %w", key, err)
	}
	return []byte(value), true, nil
}

func (d *SQLDocuments) PutMany(docs map[string][]byte) error {
	if len(docs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(docs))
	for k := range docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin document tx: %w", err)
	}
	for _, k := range keys {
		if _, err := tx.Exec(`
INSERT INTO documents(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, k, string(docs[k])); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("put document %q: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit document tx: %w", err)
	}
	return nil
}
