package game

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/pokeshiri/server/internal/emitter"
	"github.com/pokeshiri/server/internal/pokedex"
	"github.com/pokeshiri/server/internal/shiritori"
	"github.com/pokeshiri/server/internal/storage"
)

// GameStateModel holds the used list of one session and writes it to storage
// after every mutation. Changes made to the stored list by anything else are
// picked up through the storage subscription.
type GameStateModel struct {
	// writeMu is held from a mutation until its save returns so that saves
	// reach storage in mutation order. It is taken before mu.
	writeMu sync.Mutex
	mu      sync.Mutex
	scope   string
	store   *storage.Reactive
	pokemon *PokemonModel
	used    []shiritori.UsedPokemon
	now     func() time.Time
	events  *emitter.Emitter[struct{}]
	unsub   func()
}

func NewGameStateModel(ctx context.Context, scope string, store *storage.Reactive, pokemon *PokemonModel, now func() time.Time) *GameStateModel {
	if now == nil {
		now = time.Now
	}
	m := &GameStateModel{
		scope:   scope,
		store:   store,
		pokemon: pokemon,
		used:    store.LoadUsed(ctx, scope),
		now:     now,
		events:  emitter.New[struct{}](nil),
	}
	m.unsub = store.Subscribe(scope, shiritori.StorageKey, m.sync)
	return m
}

// sync adopts a list written to storage. Writes made by this model compare
// equal and are ignored.
func (m *GameStateModel) sync(c storage.Change) {
	next := []shiritori.UsedPokemon{}
	if !c.Removed {
		list, err := shiritori.FromJSON(c.Value)
		if err != nil {
			return
		}
		next = list
	}

	m.mu.Lock()
	changed := !slices.Equal(m.used, next)
	if changed {
		m.used = next
	}
	m.mu.Unlock()

	if changed {
		m.events.Emit(EventStateUpdated, struct{}{})
	}
}

func (m *GameStateModel) OnUpdate(fn func()) (off func()) {
	return m.events.On(EventStateUpdated, func(struct{}) { fn() })
}

// Add marks p used. It reports false when p was already in the list.
func (m *GameStateModel) Add(ctx context.Context, p pokedex.Pokemon) (shiritori.UsedPokemon, bool) {
	var entry shiritori.UsedPokemon
	added := m.update(ctx, func(used []shiritori.UsedPokemon) ([]shiritori.UsedPokemon, bool) {
		for _, u := range used {
			if u.Name == p.Name {
				entry = u
				return used, false
			}
		}
		entry = shiritori.UsedPokemon{
			Name:          p.Name,
			PokedexNumber: p.DexNumber,
			Timestamp:     m.now().UnixMilli(),
		}
		return shiritori.Add(used, entry), true
	})
	return entry, added
}

// Remove unmarks name. It reports false when name was not used.
func (m *GameStateModel) Remove(ctx context.Context, name string) bool {
	return m.update(ctx, func(used []shiritori.UsedPokemon) ([]shiritori.UsedPokemon, bool) {
		if !shiritori.Contains(used, name) {
			return used, false
		}
		return shiritori.Remove(used, name), true
	})
}

func (m *GameStateModel) Clear(ctx context.Context) {
	m.update(ctx, func(used []shiritori.UsedPokemon) ([]shiritori.UsedPokemon, bool) {
		return shiritori.ClearAll(used), true
	})
}

// update applies fn to the list and, when fn reports a change, saves the
// result before the next mutation may start.
func (m *GameStateModel) update(ctx context.Context, fn func([]shiritori.UsedPokemon) ([]shiritori.UsedPokemon, bool)) bool {
	m.writeMu.Lock()

	m.mu.Lock()
	next, changed := fn(m.used)
	if changed {
		m.used = next
	}
	m.mu.Unlock()

	if changed {
		m.store.SaveUsed(ctx, m.scope, next)
	}
	m.writeMu.Unlock()

	if changed {
		m.events.Emit(EventStateUpdated, struct{}{})
	}
	return changed
}

// Used returns the list in insertion order.
func (m *GameStateModel) Used() []shiritori.UsedPokemon {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.used)
}

func (m *GameStateModel) IsUsed(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return shiritori.Contains(m.used, name)
}

func (m *GameStateModel) UsedNames() map[string]struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return shiritori.NameSet(m.used)
}

func (m *GameStateModel) UsedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.used)
}

// RemainingCount is the number of database entries not yet used. Used names
// missing from the current database are not subtracted.
func (m *GameStateModel) RemainingCount() int {
	names := m.UsedNames()
	db := m.pokemon.Database()
	used := 0
	for name := range names {
		if _, ok := pokedex.Find(db, name); ok {
			used++
		}
	}
	return db.Len() - used
}

// Close detaches the model from storage notifications.
func (m *GameStateModel) Close() {
	m.unsub()
}
