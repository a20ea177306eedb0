package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const timeLayout = "2006-01-02T15:04:05.000Z"

// SQLite stores items in the session_items table.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Get(ctx context.Context, scope, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM session_items WHERE session_id = ? AND key = ?
	`, scope, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SQLite) Set(ctx context.Context, scope, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_items (session_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, scope, key, value, nowUTC())
	return err
}

func (s *SQLite) Remove(ctx context.Context, scope, key string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM session_items WHERE session_id = ? AND key = ?
	`, scope, key)
	return err
}

func (s *SQLite) Clear(ctx context.Context, scope string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_items WHERE session_id = ?`, scope)
	return err
}

func (s *SQLite) Sweep(ctx context.Context, before time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM session_items WHERE updated_at < ?
	`, before.UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	n, _ := result.RowsAffected()
	return int(n), nil
}

func nowUTC() string {
	return time.Now().UTC().Format(timeLayout)
}

var (
	_ Backend = (*SQLite)(nil)
	_ Sweeper = (*SQLite)(nil)
)
