// Package shiritori defines the game-side state of the helper: the list of
// used Pokémon, the syllabary accordion groups and the per-card hint state.
// Everything here is pure and has no I/O.
package shiritori

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// StorageKey is the session storage key holding the used list.
const StorageKey = "usedPokemon"

// UsedPokemon records a Pokémon whose answer was revealed. Timestamp is in
// Unix milliseconds.
type UsedPokemon struct {
	Name          string `json:"name"`
	PokedexNumber int    `json:"pokedexNumber"`
	Timestamp     int64  `json:"timestamp"`
}

// Add appends p unless an entry with the same name exists. The input slice is
// never modified.
func Add(list []UsedPokemon, p UsedPokemon) []UsedPokemon {
	if Contains(list, p.Name) {
		return slices.Clone(list)
	}
	out := make([]UsedPokemon, 0, len(list)+1)
	out = append(out, list...)
	return append(out, p)
}

// Remove returns list without the entry named name.
func Remove(list []UsedPokemon, name string) []UsedPokemon {
	out := make([]UsedPokemon, 0, len(list))
	for _, u := range list {
		if u.Name != name {
			out = append(out, u)
		}
	}
	return out
}

// ClearAll returns an empty list.
func ClearAll([]UsedPokemon) []UsedPokemon {
	return []UsedPokemon{}
}

func Contains(list []UsedPokemon, name string) bool {
	return slices.ContainsFunc(list, func(u UsedPokemon) bool { return u.Name == name })
}

// NameSet builds a set of used names.
func NameSet(list []UsedPokemon) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, u := range list {
		set[u.Name] = struct{}{}
	}
	return set
}

// SortedByTimestampDesc returns a copy ordered newest first. Entries with the
// same timestamp keep insertion order.
func SortedByTimestampDesc(list []UsedPokemon) []UsedPokemon {
	out := slices.Clone(list)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out
}

// ToJSON encodes list as a JSON array. A nil list encodes as [].
func ToJSON(list []UsedPokemon) (string, error) {
	if list == nil {
		list = []UsedPokemon{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FromJSON decodes a stored list. Empty input and null decode to an empty
// list.
func FromJSON(s string) ([]UsedPokemon, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return []UsedPokemon{}, nil
	}
	var list []UsedPokemon
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil, fmt.Errorf("decoding used list: %w", err)
	}
	if list == nil {
		list = []UsedPokemon{}
	}
	return list, nil
}
