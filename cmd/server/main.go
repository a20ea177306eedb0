package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/pokeshiri/server/internal/config"
	"github.com/pokeshiri/server/internal/database"
	"github.com/pokeshiri/server/internal/game"
	"github.com/pokeshiri/server/internal/handler/health"
	"github.com/pokeshiri/server/internal/migrations"
	"github.com/pokeshiri/server/internal/pokedex"
	"github.com/pokeshiri/server/internal/report"
	"github.com/pokeshiri/server/internal/server"
	"github.com/pokeshiri/server/internal/storage"
)

const janitorInterval = 10 * time.Minute

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	checks := map[string]health.Checker{"sqlite": health.CheckerFunc(db.PingContext)}

	// --- Redis (only for the redis storage backend) ---
	var rdb *redis.Client
	if cfg.StorageBackend == storage.KindRedis {
		rdb, err = openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		checks["redis"] = health.CheckerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		logger.Info("connected to redis")
	}

	// --- Session storage ---
	backend, err := storage.NewBackend(cfg.StorageBackend, storage.Deps{DB: db, Redis: rdb, TTL: cfg.SessionTTL})
	if err != nil {
		return fmt.Errorf("creating storage backend: %w", err)
	}
	store := storage.NewReactive(backend, logger)
	logger.Info("session storage ready", "backend", cfg.StorageBackend)

	// --- Pokédex ---
	initial, reload := pokedexLoaders(cfg, db, logger)
	pokedb, err := initial.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading pokedex: %w", err)
	}
	pokemon := game.NewPokemonModel(pokedb)

	// --- Error reporting ---
	reporter := report.NewReporter(logger)
	var remote *report.Remote
	if cfg.ReportURL != "" {
		remote = report.NewRemote(cfg.ReportURL, report.SeverityError, logger)
		reporter.HandleAll(remote)
	}

	// --- HTTP Server ---
	broker := server.NewBroker()
	sessions := server.NewSessions(pokemon, store, broker)
	defer sessions.Close()

	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Pokemon:  pokemon,
		Sessions: sessions,
		Broker:   broker,
		Reporter: reporter,
		Reload:   reload,
		Admin:    server.AdminCredentials{User: cfg.AdminUser, PasswordHash: cfg.AdminPasswordHash},
		SPADir:   cfg.SPADir,
	}, func(r chi.Router) {
		r.Mount("/healthz", health.NewHandler(logger, checks).Routes())
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	g.Go(func() error {
		return janitor(gctx, logger, sessions, backend, cfg.SessionTTL)
	})

	if remote != nil {
		g.Go(func() error {
			return remote.Run(gctx)
		})
	}

	return g.Wait()
}

// pokedexLoaders returns the loader used at startup and the one used by the
// admin reload endpoint. A remote source is cached in SQLite and falls back
// to the embedded dataset.
func pokedexLoaders(cfg *config.Config, db *sql.DB, logger *slog.Logger) (initial, reload pokedex.Loader) {
	embedded := pokedex.Embedded(logger)
	if cfg.PokedexSource != "graphql" {
		return embedded, embedded
	}
	remote := pokedex.NewGraphQL(cfg.GraphQLEndpoint, cfg.FetchTimeout, logger)
	cached := pokedex.NewCached(remote, pokedex.NewSQLiteSnapshots(db), logger)
	return pokedex.Fallback(logger, cached, embedded), pokedex.LoaderFunc(cached.Refresh)
}

// janitor closes idle sessions and sweeps expired rows from backends that
// do not expire keys themselves.
func janitor(ctx context.Context, logger *slog.Logger, sessions *server.Sessions, backend storage.Backend, ttl time.Duration) error {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	sweeper, _ := backend.(storage.Sweeper)

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := sessions.Evict(now.Add(-janitorInterval)); n > 0 {
				logger.Debug("closed idle sessions", "count", n)
			}
			if sweeper == nil {
				continue
			}
			n, err := sweeper.Sweep(ctx, now.Add(-ttl))
			if err != nil {
				logger.Warn("sweeping session storage failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("swept expired session items", "count", n)
			}
		}
	}
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}
