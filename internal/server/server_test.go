package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pokeshiri/server/internal/game"
	"github.com/pokeshiri/server/internal/pokedex"
	"github.com/pokeshiri/server/internal/report"
	"github.com/pokeshiri/server/internal/storage"
)

const (
	adminUser     = "admin"
	adminPassword = "hunter2"
)

type testServer struct {
	handler  http.Handler
	sessions *Sessions
	store    *storage.Reactive
	pokemon  *game.PokemonModel
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testRecords has three ピ entries and ウパー as the only ウ follower.
func testRecords() []pokedex.Pokemon {
	return []pokedex.Pokemon{
		{Name: "ピカチュウ", Genus: "ねずみポケモン", Generation: 1, DexNumber: 25, Types: []int{13}},
		{Name: "ピッピ", Genus: "ようせいポケモン", Generation: 1, DexNumber: 35, Types: []int{18}},
		{Name: "イーブイ", Genus: "しんかポケモン", Generation: 1, DexNumber: 133, Types: []int{1}},
		{Name: "ミュウ", Genus: "しんしゅポケモン", Generation: 1, DexNumber: 151, Types: []int{14}},
		{Name: "ピチュー", Genus: "こねずみポケモン", Generation: 2, DexNumber: 172, Types: []int{13}},
		{Name: "ウパー", Genus: "みずうおポケモン", Generation: 2, DexNumber: 194, Types: []int{11, 5}},
	}
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	return newTestServerWithReload(t, nil)
}

func newTestServerWithReload(t *testing.T, reload pokedex.Loader) testServer {
	t.Helper()
	logger := discardLogger()

	db, skipped := pokedex.NewDatabase(testRecords())
	if len(skipped) > 0 {
		t.Fatalf("skipped records: %v", skipped)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	pokemon := game.NewPokemonModel(db)
	store := storage.NewReactive(storage.NewMemory(), logger)
	broker := NewBroker()
	sessions := NewSessions(pokemon, store, broker)
	t.Cleanup(func() { sessions.Close() })

	srv := New(":0", logger, Deps{
		Pokemon:  pokemon,
		Sessions: sessions,
		Broker:   broker,
		Reporter: report.NewReporter(logger),
		Reload:   reload,
		Admin:    AdminCredentials{User: adminUser, PasswordHash: string(hash)},
	}, nil)

	return testServer{handler: srv.Handler(), sessions: sessions, store: store, pokemon: pokemon}
}

func (ts testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding body: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts testServer) newSession(t *testing.T) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/sessions", "", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session status = %d", rec.Code)
	}
	var resp SessionResponse
	decode(t, rec, &resp)
	if resp.SessionID == "" {
		t.Fatal("empty session id")
	}
	return resp.SessionID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

var farFuture = time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC)

func serve(ts testServer, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}
