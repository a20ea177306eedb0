package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/pokeshiri.db"`
	SPADir   string     `env:"SPA_DIR"`

	// StorageBackend is memory, sqlite or redis.
	StorageBackend string        `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	RedisURL       string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// PokedexSource is embedded or graphql.
	PokedexSource   string        `env:"POKEDEX_SOURCE" envDefault:"embedded"`
	GraphQLEndpoint string        `env:"GRAPHQL_ENDPOINT" envDefault:"https://beta.pokeapi.co/graphql/v1beta"`
	FetchTimeout    time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`

	AdminUser         string `env:"ADMIN_USER" envDefault:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	ReportURL string `env:"REPORT_URL"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
