package pokedex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// SnapshotStore persists the last successfully loaded record set.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context) ([]byte, error)
	SaveSnapshot(ctx context.Context, data []byte) error
}

// ErrNoSnapshot is returned when no snapshot has been saved yet.
var ErrNoSnapshot = errors.New("no pokedex snapshot")

// SQLiteSnapshots stores the snapshot in the pokedex_snapshots table created
// by the migrations package.
type SQLiteSnapshots struct {
	db *sql.DB
}

func NewSQLiteSnapshots(db *sql.DB) *SQLiteSnapshots {
	return &SQLiteSnapshots{db: db}
}

func (s *SQLiteSnapshots) LoadSnapshot(ctx context.Context) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM pokedex_snapshots WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

func (s *SQLiteSnapshots) SaveSnapshot(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pokedex_snapshots (id, data, updated_at)
		VALUES (1, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, string(data))
	return err
}

// Cached serves the stored snapshot when one exists and otherwise runs the
// wrapped loader, saving its result.
type Cached struct {
	loader Loader
	store  SnapshotStore
	logger *slog.Logger
}

func NewCached(loader Loader, store SnapshotStore, logger *slog.Logger) *Cached {
	return &Cached{loader: loader, store: store, logger: logger}
}

func (c *Cached) Load(ctx context.Context) (*Database, error) {
	data, err := c.store.LoadSnapshot(ctx)
	switch {
	case err == nil:
		records, err := DecodeTuples(data)
		switch {
		case err != nil:
			c.logger.Warn("discarding unreadable pokedex snapshot", "error", err)
		case len(records) == 0:
			c.logger.Warn("discarding empty pokedex snapshot")
		default:
			return build(c.logger, "snapshot", records), nil
		}
	case !errors.Is(err, ErrNoSnapshot):
		c.logger.Warn("reading pokedex snapshot failed", "error", err)
	}
	return c.Refresh(ctx)
}

// Refresh bypasses the snapshot, runs the loader and stores a non-empty
// result.
func (c *Cached) Refresh(ctx context.Context) (*Database, error) {
	db, err := c.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if db.Len() == 0 {
		return db, nil
	}
	data, err := EncodeTuples(db.All())
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := c.store.SaveSnapshot(ctx, data); err != nil {
		c.logger.Warn("saving pokedex snapshot failed", "error", err)
	}
	return db, nil
}
