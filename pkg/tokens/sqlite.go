package tokens

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cbodonnell/seafarer/pkg/log"
	_ "github.com/mattn/go-sqlite3"
)

var _ Store = &SQLiteStore{}

// SQLiteStore persists values in a key/value table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	q := `
	CREATE TABLE IF NOT EXISTS tokens (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(q); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tokens table: %v", err)
	}

	return &SQLiteStore{
		db: db,
	}, nil
}

func (s *SQLiteStore) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRowContext(context.Background(), "SELECT value FROM tokens WHERE key = ?;", key).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Error("Failed to read token %s: %v", key, err)
		}
		return "", false
	}
	return value, true
}

func (s *SQLiteStore) Set(key string, value string) error {
	q := `
	INSERT OR REPLACE INTO tokens (key, value)
	VALUES (?, ?);
	`
	if _, err := s.db.ExecContext(context.Background(), q, key, value); err != nil {
		return fmt.Errorf("failed to store token: %v", err)
	}
	return nil
}

func (s *SQLiteStore) Remove(key string) error {
	if _, err := s.db.ExecContext(context.Background(), "DELETE FROM tokens WHERE key = ?;", key); err != nil {
		return fmt.Errorf("failed to remove token: %v", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
