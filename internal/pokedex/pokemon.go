// Package pokedex holds the Pokémon records, the read-only index keyed by
// leading katakana, and the loaders that build it.
package pokedex

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Pokemon is a single species record.
type Pokemon struct {
	Name       string `json:"name"`
	Genus      string `json:"genus"`
	Generation int    `json:"generation"`
	DexNumber  int    `json:"pokedexNumber"`
	Types      []int  `json:"types"`
}

var errInvalidRecord = errors.New("invalid pokemon record")

// Validate checks the ranges of the numeric fields.
func (p Pokemon) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: empty name", errInvalidRecord)
	case p.Generation < 1 || p.Generation > 9:
		return fmt.Errorf("%w: %s generation %d", errInvalidRecord, p.Name, p.Generation)
	case p.DexNumber < 1:
		return fmt.Errorf("%w: %s dex number %d", errInvalidRecord, p.Name, p.DexNumber)
	case len(p.Types) < 1 || len(p.Types) > 2:
		return fmt.Errorf("%w: %s has %d types", errInvalidRecord, p.Name, len(p.Types))
	}
	for _, t := range p.Types {
		if t < 1 || t > len(typeNames) {
			return fmt.Errorf("%w: %s type id %d", errInvalidRecord, p.Name, t)
		}
	}
	return nil
}

// TypeNames returns the Japanese names of the record's types.
func (p Pokemon) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, TypeName(t))
	}
	return names
}

// Tuple is the compact bundle encoding: [name, genus, generation, dex, type1(, type2)].
type Tuple Pokemon

func (t Tuple) MarshalJSON() ([]byte, error) {
	fields := []any{t.Name, t.Genus, t.Generation, t.DexNumber}
	for _, typ := range t.Types {
		fields = append(fields, typ)
	}
	return json.Marshal(fields)
}

func (t *Tuple) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 5 || len(raw) > 6 {
		return fmt.Errorf("%w: tuple has %d fields", errInvalidRecord, len(raw))
	}

	var p Pokemon
	if err := json.Unmarshal(raw[0], &p.Name); err != nil {
		return fmt.Errorf("decoding name: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.Genus); err != nil {
		return fmt.Errorf("decoding genus: %w", err)
	}
	if err := json.Unmarshal(raw[2], &p.Generation); err != nil {
		return fmt.Errorf("decoding generation: %w", err)
	}
	if err := json.Unmarshal(raw[3], &p.DexNumber); err != nil {
		return fmt.Errorf("decoding dex number: %w", err)
	}
	for _, r := range raw[4:] {
		var typ int
		if err := json.Unmarshal(r, &typ); err != nil {
			return fmt.Errorf("decoding type: %w", err)
		}
		p.Types = append(p.Types, typ)
	}
	*t = Tuple(p)
	return nil
}

var typeNames = [...]string{
	"ノーマル", "かくとう", "ひこう", "どく", "じめん", "いわ",
	"むし", "ゴースト", "はがね", "ほのお", "みず", "くさ",
	"でんき", "エスパー", "こおり", "ドラゴン", "あく", "フェアリー",
}

// TypeName returns the Japanese name for a type id in 1–18, or "" when the id
// is out of range.
func TypeName(id int) string {
	if id < 1 || id > len(typeNames) {
		return ""
	}
	return typeNames[id-1]
}
