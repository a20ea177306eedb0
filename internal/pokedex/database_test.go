package pokedex

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/pokeshiri/server/internal/kana"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRecords() []Pokemon {
	return []Pokemon{
		{Name: "ピカチュウ", Genus: "ねずみポケモン", Generation: 1, DexNumber: 25, Types: []int{13}},
		{Name: "ピチュー", Genus: "こねずみポケモン", Generation: 2, DexNumber: 172, Types: []int{13}},
		{Name: "ウパー", Genus: "みずうおポケモン", Generation: 2, DexNumber: 194, Types: []int{11, 5}},
		{Name: "ミュウツー", Genus: "いでんしポケモン", Generation: 1, DexNumber: 150, Types: []int{14}},
	}
}

func TestNewDatabaseIndexes(t *testing.T) {
	db, skipped := NewDatabase(testRecords())
	if len(skipped) != 0 {
		t.Fatalf("skipped = %v, want none", skipped)
	}
	if db.Len() != 4 {
		t.Errorf("Len = %d, want 4", db.Len())
	}

	pi := db.ByFirstChar("ピ")
	if len(pi) != 2 || pi[0].DexNumber != 25 || pi[1].DexNumber != 172 {
		t.Errorf("ByFirstChar(ピ) = %v, want pikachu then pichu", pi)
	}
	if got := db.ByLastChar("ツ"); len(got) != 1 || got[0].Name != "ミュウツー" {
		t.Errorf("ByLastChar(ツ) = %v, want mewtwo", got)
	}
	if got := db.Chars(); len(got) != 3 {
		t.Errorf("Chars = %v, want 3 entries", got)
	}
}

func TestNewDatabaseSkipsDuplicates(t *testing.T) {
	records := append(testRecords(), Pokemon{Name: "ぴかちゅう", Genus: "x", Generation: 1, DexNumber: 999, Types: []int{1}})
	db, skipped := NewDatabase(records)
	if len(skipped) != 1 || skipped[0].DexNumber != 999 {
		t.Fatalf("skipped = %v, want the duplicate", skipped)
	}
	if db.Len() != 4 {
		t.Errorf("Len = %d, want 4", db.Len())
	}
}

func TestFind(t *testing.T) {
	db, _ := NewDatabase(testRecords())

	tests := []struct {
		name    string
		input   string
		wantDex int
		wantOK  bool
	}{
		{"exact", "ピカチュウ", 25, true},
		{"trimmed", "  ピカチュウ\t", 25, true},
		{"hiragana", "うぱー", 194, true},
		{"prefix only", "ピカ", 0, false},
		{"empty", "", 0, false},
		{"absent", "リザードン", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Find(db, tt.input)
			if ok != tt.wantOK || p.DexNumber != tt.wantDex {
				t.Errorf("Find(%q) = (%d, %v), want (%d, %v)", tt.input, p.DexNumber, ok, tt.wantDex, tt.wantOK)
			}
		})
	}
}

func TestFindByDex(t *testing.T) {
	db, _ := NewDatabase(testRecords())
	if p, ok := FindByDex(db, 150); !ok || p.Name != "ミュウツー" {
		t.Errorf("FindByDex(150) = (%v, %v)", p, ok)
	}
	if _, ok := FindByDex(db, 1); ok {
		t.Error("FindByDex(1) should miss")
	}
}

func TestTupleRoundTrip(t *testing.T) {
	data, err := EncodeTuples(testRecords())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	records, err := DecodeTuples(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 4 || records[2].Name != "ウパー" || len(records[2].Types) != 2 {
		t.Errorf("decoded = %v", records)
	}
}

func TestDecodeTuplesRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"too short", `[["ピカチュウ", "ねずみポケモン", 1, 25]]`},
		{"bad generation", `[["ピカチュウ", "ねずみポケモン", 10, 25, 13]]`},
		{"bad type", `[["ピカチュウ", "ねずみポケモン", 1, 25, 19]]`},
		{"not an array", `{"name": "ピカチュウ"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTuples([]byte(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestEmbedded(t *testing.T) {
	db, err := Embedded(discardLogger()).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if db.Len() < 850 {
		t.Errorf("Len = %d, want the national dex", db.Len())
	}
	p, ok := Find(db, "ピカチュウ")
	if !ok || p.DexNumber != 25 {
		t.Fatalf("pikachu missing from bundle: %v %v", p, ok)
	}
	if len(db.ByFirstChar("ス")) == 0 {
		t.Error("no species starting with ス")
	}

	seen := make(map[int]bool, db.Len())
	for _, p := range db.All() {
		if kana.EndsWithN(p.Name) {
			t.Errorf("bundle contains %s ending in ン", p.Name)
		}
		if seen[p.DexNumber] {
			t.Errorf("dex %d appears twice", p.DexNumber)
		}
		seen[p.DexNumber] = true
	}
	if !seen[1] || !seen[1025] {
		t.Error("bundle does not span dex 1 to 1025")
	}
}

func TestTypeName(t *testing.T) {
	if got := TypeName(13); got != "でんき" {
		t.Errorf("TypeName(13) = %q", got)
	}
	if got := TypeName(0); got != "" {
		t.Errorf("TypeName(0) = %q, want empty", got)
	}
}
