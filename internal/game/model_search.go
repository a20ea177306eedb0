package game

import (
	"sync"

	"github.com/pokeshiri/server/internal/emitter"
	"github.com/pokeshiri/server/internal/kana"
	"github.com/pokeshiri/server/internal/pokedex"
)

// SearchModel caches the result of the last first-character lookup.
type SearchModel struct {
	mu      sync.Mutex
	pokemon *PokemonModel
	query   string
	result  []pokedex.Pokemon
	valid   bool
	events  *emitter.Emitter[struct{}]
}

func NewSearchModel(pokemon *PokemonModel) *SearchModel {
	return &SearchModel{pokemon: pokemon, events: emitter.New[struct{}](nil)}
}

func (m *SearchModel) OnUpdate(fn func()) (off func()) {
	return m.events.On(EventStateUpdated, func(struct{}) { fn() })
}

// Search returns the Pokémon starting with char. cached reports whether the
// previous result was reused.
func (m *SearchModel) Search(char string) (result []pokedex.Pokemon, cached bool) {
	char = kana.FirstChar(char)

	m.mu.Lock()
	if m.valid && m.query == char {
		result = m.result
		m.mu.Unlock()
		return result, true
	}
	m.query = char
	m.result = m.pokemon.ByFirstChar(char)
	m.valid = true
	result = m.result
	m.mu.Unlock()

	m.events.Emit(EventStateUpdated, struct{}{})
	return result, false
}

// Last returns the cached query and result.
func (m *SearchModel) Last() (string, []pokedex.Pokemon) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.query, m.result
}

// Invalidate drops the cached result so the next Search reads the database.
func (m *SearchModel) Invalidate() {
	m.mu.Lock()
	m.valid = false
	m.mu.Unlock()
}
