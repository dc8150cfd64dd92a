package kv

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const sqlSchema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQL is a Store backed by a database/sql handle. The driver is supplied by
// the caller; the demo binary opens an embedded sqlite database, tests use
// sqlmock. Values are stored whole, one row per key.
type SQL struct {
	db      *sql.DB
	timeout time.Duration
}

// NewSQL ensures the backing table exists and returns a store over db.
func NewSQL(db *sql.DB) (*SQL, error) {
	s := &SQL{db: db, timeout: 5 * time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := db.ExecContext(ctx, sqlSchema); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQL) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQL) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}
