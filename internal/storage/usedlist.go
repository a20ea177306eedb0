package storage

import (
	"context"

	"github.com/pokeshiri/server/internal/shiritori"
)

// LoadUsed reads the used list of a session. Missing or unreadable data yields
// an empty list.
func (r *Reactive) LoadUsed(ctx context.Context, scope string) []shiritori.UsedPokemon {
	raw, ok := r.GetItem(ctx, scope, shiritori.StorageKey)
	if !ok {
		return []shiritori.UsedPokemon{}
	}
	list, err := shiritori.FromJSON(raw)
	if err != nil {
		r.logger.Warn("discarding unreadable used list", "scope", scope, "error", err)
		return []shiritori.UsedPokemon{}
	}
	return list
}

// SaveUsed writes the used list of a session.
func (r *Reactive) SaveUsed(ctx context.Context, scope string, list []shiritori.UsedPokemon) bool {
	raw, err := shiritori.ToJSON(list)
	if err != nil {
		r.logger.Warn("encoding used list failed", "scope", scope, "error", err)
		return false
	}
	return r.SetItem(ctx, scope, shiritori.StorageKey, raw)
}
