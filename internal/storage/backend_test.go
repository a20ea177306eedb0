package storage

import (
	"context"
	"testing"
	"time"

	"github.com/pokeshiri/server/internal/database"
	"github.com/pokeshiri/server/internal/migrations"
)

func openSQLite(t *testing.T) *SQLite {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := migrations.Run(db); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return NewSQLite(db)
}

func TestBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) Backend{
		"memory": func(*testing.T) Backend { return NewMemory() },
		"sqlite": func(t *testing.T) Backend { return openSQLite(t) },
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			b := open(t)

			if _, ok, err := b.Get(ctx, "s1", "usedPokemon"); ok || err != nil {
				t.Fatalf("empty get: ok=%v err=%v", ok, err)
			}

			if err := b.Set(ctx, "s1", "usedPokemon", "[]"); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := b.Set(ctx, "s1", "usedPokemon", `[{"name":"ピカチュウ"}]`); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			if err := b.Set(ctx, "s2", "usedPokemon", "[]"); err != nil {
				t.Fatalf("set other scope: %v", err)
			}

			v, ok, err := b.Get(ctx, "s1", "usedPokemon")
			if err != nil || !ok || v != `[{"name":"ピカチュウ"}]` {
				t.Fatalf("get = %q, %v, %v", v, ok, err)
			}

			if err := b.Remove(ctx, "s1", "usedPokemon"); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if _, ok, _ := b.Get(ctx, "s1", "usedPokemon"); ok {
				t.Error("item still present after remove")
			}

			if err := b.Clear(ctx, "s2"); err != nil {
				t.Fatalf("clear: %v", err)
			}
			if _, ok, _ := b.Get(ctx, "s2", "usedPokemon"); ok {
				t.Error("item still present after clear")
			}
		})
	}
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	for name, b := range map[string]interface {
		Backend
		Sweeper
	}{
		"memory": NewMemory(),
		"sqlite": openSQLite(t),
	} {
		t.Run(name, func(t *testing.T) {
			if err := b.Set(ctx, "old", "k", "v"); err != nil {
				t.Fatalf("set: %v", err)
			}
			n, err := b.Sweep(ctx, time.Now().Add(time.Minute))
			if err != nil || n != 1 {
				t.Fatalf("sweep = %d, %v, want 1", n, err)
			}
			if _, ok, _ := b.Get(ctx, "old", "k"); ok {
				t.Error("swept item still present")
			}
			if err := b.Set(ctx, "fresh", "k", "v"); err != nil {
				t.Fatalf("set: %v", err)
			}
			if n, _ := b.Sweep(ctx, time.Now().Add(-time.Minute)); n != 0 {
				t.Errorf("sweep removed %d fresh items", n)
			}
		})
	}
}

func TestNewBackend(t *testing.T) {
	tests := []struct {
		kind    string
		deps    Deps
		wantErr bool
	}{
		{"", Deps{}, false},
		{"memory", Deps{}, false},
		{"SQLite", Deps{}, true},
		{"redis", Deps{}, true},
		{"etcd", Deps{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			_, err := NewBackend(tt.kind, tt.deps)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
