package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KindMemory = "memory"
	KindSQLite = "sqlite"
	KindRedis  = "redis"
)

// Deps carries the connections a backend may need.
type Deps struct {
	DB    *sql.DB
	Redis *redis.Client
	TTL   time.Duration
}

func NewBackend(kind string, deps Deps) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindMemory:
		return NewMemory(), nil
	case KindSQLite:
		if deps.DB == nil {
			return nil, errors.New("sqlite storage requires a database")
		}
		return NewSQLite(deps.DB), nil
	case KindRedis:
		if deps.Redis == nil {
			return nil, errors.New("redis storage requires a redis client")
		}
		return NewRedis(deps.Redis, deps.TTL), nil
	}
	return nil, fmt.Errorf("unsupported storage backend: %s", kind)
}
