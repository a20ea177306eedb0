package game

import (
	"context"
	"sync"
	"time"

	"github.com/pokeshiri/server/internal/pokedex"
	"github.com/pokeshiri/server/internal/shiritori"
	"github.com/pokeshiri/server/internal/storage"
)

// Options configures an AppController.
type Options struct {
	SessionID string
	Pokemon   *PokemonModel
	Store     *storage.Reactive
	Views     Views
	Now       func() time.Time
}

// AppController is the root controller of a session. It owns the accordion
// and hint state, creates the search and game controllers, and re-renders
// views whenever a model reports a change.
type AppController struct {
	Search *SearchController
	Game   *GameController

	pokemon *PokemonModel
	state   *GameStateModel
	search  *SearchModel
	views   Views

	mu     sync.Mutex
	groups []shiritori.AccordionGroup
	hints  map[int]shiritori.Hints

	offs []func()
}

func NewAppController(ctx context.Context, opts Options) *AppController {
	a := &AppController{
		pokemon: opts.Pokemon,
		state:   NewGameStateModel(ctx, opts.SessionID, opts.Store, opts.Pokemon, opts.Now),
		search:  NewSearchModel(opts.Pokemon),
		views:   opts.Views,
		groups:  shiritori.DefaultGroups(),
		hints:   make(map[int]shiritori.Hints),
	}
	a.Search = &SearchController{app: a, model: a.search, views: opts.Views}
	a.Game = &GameController{app: a, state: a.state, pokemon: opts.Pokemon, views: opts.Views}

	a.offs = append(a.offs,
		a.state.OnUpdate(a.renderGame),
		a.pokemon.OnUpdate(a.reload),
		a.search.OnUpdate(func() { a.Search.render(false) }),
	)
	return a
}

// Mount renders every view from the current model state.
func (a *AppController) Mount() {
	a.views.Accordion.Update(AccordionSnapshot{Groups: a.Groups()})
	a.renderGame()
	a.views.Warning.Update(WarningSnapshot{})
}

// Close detaches the controller from all models.
func (a *AppController) Close() {
	for _, off := range a.offs {
		off()
	}
	a.state.Close()
}

func (a *AppController) State() *GameStateModel { return a.state }

func (a *AppController) reload() {
	a.search.Invalidate()
	a.views.Accordion.Update(AccordionSnapshot{Groups: a.Groups()})
	if q, _ := a.search.Last(); q != "" {
		a.search.Search(q)
	}
	a.renderGame()
}

func (a *AppController) renderGame() {
	a.views.Status.Update(a.Status())
	a.views.Used.Update(a.UsedSnapshot())
	if q, result := a.search.Last(); q != "" {
		a.views.List.Update(a.listSnapshot(q, result))
	}
}

func (a *AppController) Status() StatusSnapshot {
	return StatusSnapshot{
		UsedCount: a.state.UsedCount(),
		Remaining: a.state.RemainingCount(),
		Total:     a.pokemon.Total(),
	}
}

// UsedSnapshot lists used Pokémon newest first.
func (a *AppController) UsedSnapshot() UsedSnapshot {
	used := shiritori.SortedByTimestampDesc(a.state.Used())
	return UsedSnapshot{Count: len(used), Items: used}
}

// Groups returns the accordion with per-character counts.
func (a *AppController) Groups() []GroupSnapshot {
	a.mu.Lock()
	groups := make([]shiritori.AccordionGroup, len(a.groups))
	copy(groups, a.groups)
	a.mu.Unlock()

	out := make([]GroupSnapshot, len(groups))
	for i, g := range groups {
		out[i] = a.groupSnapshot(g)
	}
	return out
}

func (a *AppController) groupSnapshot(g shiritori.AccordionGroup) GroupSnapshot {
	s := GroupSnapshot{AccordionGroup: g, Counts: make(map[string]int, len(g.Chars))}
	for _, c := range g.Chars {
		n := len(a.pokemon.ByFirstChar(c))
		s.Counts[c] = n
		s.Total += n
	}
	return s
}

func (a *AppController) updateGroup(id string, fn func(shiritori.AccordionGroup) (shiritori.AccordionGroup, error)) (shiritori.AccordionGroup, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, g := range a.groups {
		if g.ID != id {
			continue
		}
		next, err := fn(g)
		if err != nil {
			return g, err
		}
		a.groups[i] = next
		return next, nil
	}
	return shiritori.AccordionGroup{}, errGroupNotFound(id)
}

// ToggleGroup expands or collapses a group.
func (a *AppController) ToggleGroup(id string) (GroupSnapshot, error) {
	g, err := a.updateGroup(id, func(g shiritori.AccordionGroup) (shiritori.AccordionGroup, error) {
		return g.Toggle(), nil
	})
	if err != nil {
		return GroupSnapshot{}, err
	}
	a.views.Accordion.Update(AccordionSnapshot{Groups: a.Groups()})
	return a.groupSnapshot(g), nil
}

// SelectChar activates a character tab and lists its Pokémon.
func (a *AppController) SelectChar(groupID, char string) (ListSnapshot, error) {
	_, err := a.updateGroup(groupID, func(g shiritori.AccordionGroup) (shiritori.AccordionGroup, error) {
		next, err := g.SetActiveChar(char)
		if err != nil {
			return g, errInvalidChar(groupID, char)
		}
		return next, nil
	})
	if err != nil {
		return ListSnapshot{}, err
	}
	a.views.Accordion.Update(AccordionSnapshot{Groups: a.Groups()})
	return a.Search.Select(char), nil
}

// ToggleHint flips one hint of a card.
func (a *AppController) ToggleHint(dex int, kind string) (CardSnapshot, error) {
	k, err := shiritori.ParseHintKind(kind)
	if err != nil {
		return CardSnapshot{}, errInvalidHint(kind)
	}
	p, ok := a.pokemon.FindByDex(dex)
	if !ok {
		return CardSnapshot{}, errDexNotFound(dex)
	}

	a.mu.Lock()
	a.hints[dex] = a.hintsLocked(dex).Toggle(k)
	a.mu.Unlock()

	card := a.cardSnapshot(p, a.state.UsedNames())
	a.views.Card.Update(card)
	return card, nil
}

// Card returns the current card of a Pokémon.
func (a *AppController) Card(dex int) (CardSnapshot, error) {
	p, ok := a.pokemon.FindByDex(dex)
	if !ok {
		return CardSnapshot{}, errDexNotFound(dex)
	}
	return a.cardSnapshot(p, a.state.UsedNames()), nil
}

func (a *AppController) revealHints(dex int) {
	a.mu.Lock()
	a.hints[dex] = a.hintsLocked(dex).RevealAll()
	a.mu.Unlock()
}

func (a *AppController) hintsLocked(dex int) shiritori.Hints {
	if h, ok := a.hints[dex]; ok {
		return h
	}
	return shiritori.NewHints()
}

func (a *AppController) cardSnapshot(p pokedex.Pokemon, used map[string]struct{}) CardSnapshot {
	a.mu.Lock()
	h := a.hintsLocked(p.DexNumber)
	a.mu.Unlock()

	_, isUsed := used[p.Name]
	if isUsed {
		h = h.RevealAll()
	}

	c := CardSnapshot{DexNumber: p.DexNumber, Used: isUsed, Hints: h, Image: h.Image}
	if isUsed {
		c.Name = p.Name
	}
	if h.Generation {
		c.Generation = p.Generation
	}
	if h.Genus {
		c.Genus = p.Genus
	}
	if h.Type {
		c.Types = p.TypeNames()
	}
	if h.Image != shiritori.ImageHidden {
		c.ImageURL = imageURL(p.DexNumber)
	}
	return c
}

func (a *AppController) listSnapshot(char string, result []pokedex.Pokemon) ListSnapshot {
	used := a.state.UsedNames()
	cards := make([]CardSnapshot, 0, len(result))
	for _, p := range result {
		cards = append(cards, a.cardSnapshot(p, used))
	}
	return ListSnapshot{Char: char, Cards: cards}
}
