package pokedex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const speciesFixture = `{
  "data": {
    "pokemon_v2_pokemonspecies": [
      {"id": 25, "generation_id": 1,
       "pokemon_v2_pokemonspeciesnames": [{"name": "ピカチュウ", "genus": "ねずみポケモン"}],
       "pokemon_v2_pokemons": [{"pokemon_v2_pokemontypes": [{"type_id": 13}]}]},
      {"id": 37, "generation_id": 1,
       "pokemon_v2_pokemonspeciesnames": [{"name": "ロコン", "genus": "きつねポケモン"}],
       "pokemon_v2_pokemons": [{"pokemon_v2_pokemontypes": [{"type_id": 10}]}]},
      {"id": 906, "generation_id": 9,
       "pokemon_v2_pokemonspeciesnames": [{"name": "ニャオハ", "genus": ""}],
       "pokemon_v2_pokemons": [{"pokemon_v2_pokemontypes": [{"type_id": 12}]}]},
      {"id": 10000, "generation_id": 9,
       "pokemon_v2_pokemonspeciesnames": [],
       "pokemon_v2_pokemons": []}
    ]
  }
}`

func TestGraphQLLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var req graphQLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if !strings.Contains(req.Query, "pokemon_v2_pokemonspecies") {
			t.Errorf("query missing species selection")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(speciesFixture))
	}))
	defer srv.Close()

	db, err := NewGraphQL(srv.URL, time.Second, discardLogger()).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if db.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (ロコン excluded, nameless dropped)", db.Len())
	}
	if _, ok := Find(db, "ロコン"); ok {
		t.Error("names ending in ン must be excluded")
	}
	p, ok := Find(db, "ニャオハ")
	if !ok || p.Genus != "くさねこポケモン" {
		t.Errorf("genus correction not applied: %+v", p)
	}
}

func TestGraphQLErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"http error", http.StatusBadGateway, `upstream down`, "status 502"},
		{"graphql error", http.StatusOK, `{"errors":[{"message":"field not found"}]}`, "field not found"},
		{"bad json", http.StatusOK, `{`, "decoding species"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGraphQL(srv.URL, time.Second, discardLogger()).Load(context.Background())
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestFallback(t *testing.T) {
	failing := LoaderFunc(func(context.Context) (*Database, error) { return nil, errors.New("boom") })

	db, err := Fallback(discardLogger(), failing, Embedded(discardLogger())).Load(context.Background())
	if err != nil || db.Len() == 0 {
		t.Fatalf("fallback to embedded: len=%d err=%v", db.Len(), err)
	}

	db, err = Fallback(discardLogger(), failing, failing).Load(context.Background())
	if err != nil {
		t.Fatalf("all failing: unexpected error %v", err)
	}
	if db.Len() != 0 {
		t.Errorf("all failing: Len = %d, want 0", db.Len())
	}
}

func TestLoadLogsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	failing := LoaderFunc(func(context.Context) (*Database, error) { return nil, errors.New("boom") })

	db, err := Fallback(logger, failing, Embedded(logger)).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "pokedex loaded"); n != 1 {
		t.Errorf("logged %d times, want once:\n%s", n, buf.String())
	}
	if !strings.Contains(buf.String(), "source=embedded") || !strings.Contains(buf.String(), fmt.Sprintf("count=%d", db.Len())) {
		t.Errorf("log = %s", buf.String())
	}
}

type memSnapshots struct {
	data  []byte
	saves int
}

func (m *memSnapshots) LoadSnapshot(context.Context) ([]byte, error) {
	if m.data == nil {
		return nil, ErrNoSnapshot
	}
	return m.data, nil
}

func (m *memSnapshots) SaveSnapshot(_ context.Context, data []byte) error {
	m.data = data
	m.saves++
	return nil
}

func TestCached(t *testing.T) {
	calls := 0
	loader := LoaderFunc(func(context.Context) (*Database, error) {
		calls++
		db, _ := NewDatabase(testRecords())
		return db, nil
	})
	store := &memSnapshots{}
	c := NewCached(loader, store, discardLogger())

	for i := 0; i < 2; i++ {
		db, err := c.Load(context.Background())
		if err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
		if db.Len() != 4 {
			t.Fatalf("load %d: Len = %d, want 4", i, db.Len())
		}
	}
	if calls != 1 {
		t.Errorf("loader calls = %d, want 1 (second load from snapshot)", calls)
	}

	if _, err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if calls != 2 || store.saves != 2 {
		t.Errorf("after refresh: calls=%d saves=%d, want 2 and 2", calls, store.saves)
	}
}
