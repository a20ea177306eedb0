package game

import (
	"context"
	"fmt"

	"github.com/pokeshiri/server/internal/kana"
	"github.com/pokeshiri/server/internal/pokedex"
	"github.com/pokeshiri/server/internal/shiritori"
)

// GameController handles answers: manual entry, reveal confirmation,
// removal and reset.
type GameController struct {
	app     *AppController
	state   *GameStateModel
	pokemon *PokemonModel
	views   Views
}

// SubmitResult is the outcome of a successful submission. Input is what the
// entry field should show afterwards.
type SubmitResult struct {
	Entry   shiritori.UsedPokemon `json:"entry"`
	Added   bool                  `json:"added"`
	Warning string                `json:"warning,omitempty"`
	Input   string                `json:"input"`
}

// Submit marks the named Pokémon used. An unknown name leaves the state
// untouched and returns a not-found error carrying the player alert.
func (c *GameController) Submit(ctx context.Context, name string) (SubmitResult, error) {
	name = kana.Normalize(name)
	if name == "" {
		return SubmitResult{}, errEmptyName()
	}
	p, ok := c.pokemon.Find(name)
	if !ok {
		return SubmitResult{Input: name}, errPokemonNotFound(name)
	}
	return c.mark(ctx, p), nil
}

// Reveal confirms the answer of a card: every hint opens and the Pokémon is
// marked used.
func (c *GameController) Reveal(ctx context.Context, dex int) (CardSnapshot, SubmitResult, error) {
	p, ok := c.pokemon.FindByDex(dex)
	if !ok {
		return CardSnapshot{}, SubmitResult{}, errDexNotFound(dex)
	}
	c.app.revealHints(dex)
	res := c.mark(ctx, p)
	card := c.app.cardSnapshot(p, c.state.UsedNames())
	c.views.Card.Update(card)
	return card, res, nil
}

func (c *GameController) mark(ctx context.Context, p pokedex.Pokemon) SubmitResult {
	entry, added := c.state.Add(ctx, p)
	res := SubmitResult{Entry: entry, Added: added}
	if !added {
		res.Warning = fmt.Sprintf(alreadyUsedFormat, p.Name)
		res.Input = p.Name
	} else {
		res.Warning = c.warningAfter(p.Name)
	}
	c.views.Warning.Update(WarningSnapshot{Message: res.Warning})
	return res
}

// warningAfter reports why the chain cannot continue from name, if it can't.
func (c *GameController) warningAfter(name string) string {
	if kana.EndsWithN(name) {
		return EndsWithNMessage
	}
	last := kana.LastChar(name)
	if last == "" {
		return ""
	}
	if len(c.Next(last)) == 0 {
		return fmt.Sprintf(deadEndFormat, last)
	}
	return ""
}

// Remove unmarks name. It reports false when name was not used.
func (c *GameController) Remove(ctx context.Context, name string) bool {
	return c.state.Remove(ctx, kana.Normalize(name))
}

// Clear empties the used list.
func (c *GameController) Clear(ctx context.Context) {
	c.state.Clear(ctx)
	c.views.Warning.Update(WarningSnapshot{})
}

// Next returns the unused Pokémon that may follow name.
func (c *GameController) Next(name string) []pokedex.Pokemon {
	last := kana.LastChar(name)
	if last == "" {
		return nil
	}
	used := c.state.UsedNames()
	var out []pokedex.Pokemon
	for _, p := range c.pokemon.ByFirstChar(last) {
		if _, ok := used[p.Name]; !ok {
			out = append(out, p)
		}
	}
	return out
}
