package pokedex

import (
	"slices"
	"sort"

	"github.com/pokeshiri/server/internal/kana"
)

// Database is a read-only index of Pokémon keyed by the first katakana
// character of the name. It also keeps a last-character index for chaining.
// A Database is never mutated after NewDatabase returns.
type Database struct {
	byFirst map[string][]Pokemon
	byLast  map[string][]Pokemon
	total   int
}

// NewDatabase indexes records. Records with a duplicate name or no leading
// katakana are skipped and returned so the caller can log them.
func NewDatabase(records []Pokemon) (*Database, []Pokemon) {
	db := &Database{
		byFirst: make(map[string][]Pokemon),
		byLast:  make(map[string][]Pokemon),
	}

	sorted := slices.Clone(records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DexNumber < sorted[j].DexNumber })

	seen := make(map[string]struct{}, len(sorted))
	var skipped []Pokemon
	for _, p := range sorted {
		p.Name = kana.Normalize(p.Name)
		first := kana.FirstChar(p.Name)
		if _, dup := seen[p.Name]; dup || first == "" {
			skipped = append(skipped, p)
			continue
		}
		seen[p.Name] = struct{}{}
		db.byFirst[first] = append(db.byFirst[first], p)
		if last := kana.LastChar(p.Name); last != "" {
			db.byLast[last] = append(db.byLast[last], p)
		}
		db.total++
	}
	return db, skipped
}

// Empty returns a database with no records.
func Empty() *Database {
	db, _ := NewDatabase(nil)
	return db
}

// ByFirstChar returns the Pokémon whose name starts with c. The returned slice
// must not be modified.
func (db *Database) ByFirstChar(c string) []Pokemon {
	return db.byFirst[c]
}

// ByLastChar returns the Pokémon whose name ends with c.
func (db *Database) ByLastChar(c string) []Pokemon {
	return db.byLast[c]
}

// Chars returns the leading characters present in the database, sorted.
func (db *Database) Chars() []string {
	chars := make([]string, 0, len(db.byFirst))
	for c := range db.byFirst {
		chars = append(chars, c)
	}
	sort.Strings(chars)
	return chars
}

// Len returns the number of indexed records.
func (db *Database) Len() int {
	return db.total
}

// All returns every record ordered by pokédex number.
func (db *Database) All() []Pokemon {
	all := make([]Pokemon, 0, db.total)
	for _, bucket := range db.byFirst {
		all = append(all, bucket...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].DexNumber < all[j].DexNumber })
	return all
}

// Find looks up a Pokémon by exact name after trimming and katakana
// normalization. It scans every bucket and returns the first match.
func Find(db *Database, name string) (Pokemon, bool) {
	name = kana.Normalize(name)
	if name == "" || db == nil {
		return Pokemon{}, false
	}
	for _, bucket := range db.byFirst {
		for _, p := range bucket {
			if p.Name == name {
				return p, true
			}
		}
	}
	return Pokemon{}, false
}

// FindByDex looks up a Pokémon by national pokédex number.
func FindByDex(db *Database, dex int) (Pokemon, bool) {
	if db == nil {
		return Pokemon{}, false
	}
	for _, bucket := range db.byFirst {
		for _, p := range bucket {
			if p.DexNumber == dex {
				return p, true
			}
		}
	}
	return Pokemon{}, false
}
