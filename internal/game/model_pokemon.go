// Package game wires the shiritori models to views through controllers.
// Models own state and emit EventStateUpdated after each change; controllers
// listen, re-read the models and push fresh snapshots into the views.
package game

import (
	"sync"

	"github.com/pokeshiri/server/internal/emitter"
	"github.com/pokeshiri/server/internal/pokedex"
)

// EventStateUpdated is emitted by every model after a mutation.
const EventStateUpdated = "state:updated"

// PokemonModel holds the loaded database. It is shared by all sessions.
type PokemonModel struct {
	mu     sync.RWMutex
	db     *pokedex.Database
	events *emitter.Emitter[struct{}]
}

func NewPokemonModel(db *pokedex.Database) *PokemonModel {
	if db == nil {
		db = pokedex.Empty()
	}
	return &PokemonModel{db: db, events: emitter.New[struct{}](nil)}
}

// Database returns the current immutable index.
func (m *PokemonModel) Database() *pokedex.Database {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.db
}

// Replace swaps in a newly loaded database.
func (m *PokemonModel) Replace(db *pokedex.Database) {
	m.mu.Lock()
	m.db = db
	m.mu.Unlock()
	m.events.Emit(EventStateUpdated, struct{}{})
}

func (m *PokemonModel) OnUpdate(fn func()) (off func()) {
	return m.events.On(EventStateUpdated, func(struct{}) { fn() })
}

func (m *PokemonModel) ByFirstChar(c string) []pokedex.Pokemon {
	return m.Database().ByFirstChar(c)
}

func (m *PokemonModel) ByLastChar(c string) []pokedex.Pokemon {
	return m.Database().ByLastChar(c)
}

func (m *PokemonModel) Find(name string) (pokedex.Pokemon, bool) {
	return pokedex.Find(m.Database(), name)
}

func (m *PokemonModel) FindByDex(dex int) (pokedex.Pokemon, bool) {
	return pokedex.FindByDex(m.Database(), dex)
}

func (m *PokemonModel) Total() int {
	return m.Database().Len()
}
