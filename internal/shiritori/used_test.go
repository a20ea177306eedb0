package shiritori

import (
	"reflect"
	"testing"
)

var (
	pikachu = UsedPokemon{Name: "ピカチュウ", PokedexNumber: 25, Timestamp: 1000}
	pichu   = UsedPokemon{Name: "ピチュー", PokedexNumber: 172, Timestamp: 3000}
	eevee   = UsedPokemon{Name: "イーブイ", PokedexNumber: 133, Timestamp: 2000}
)

func TestAddIsIdempotent(t *testing.T) {
	list := Add(nil, pikachu)
	list = Add(list, pikachu)
	again := pikachu
	again.Timestamp = 9999
	list = Add(list, again)

	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
	if list[0].Timestamp != 1000 {
		t.Errorf("timestamp = %d, want original 1000", list[0].Timestamp)
	}
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	list := Add(Add(Add(nil, pichu), pikachu), eevee)
	want := []string{"ピチュー", "ピカチュウ", "イーブイ"}
	for i, u := range list {
		if u.Name != want[i] {
			t.Errorf("list[%d] = %s, want %s", i, u.Name, want[i])
		}
	}
}

func TestAddDoesNotMutateInput(t *testing.T) {
	base := make([]UsedPokemon, 1, 4)
	base[0] = pikachu
	a := Add(base, pichu)
	b := Add(base, eevee)
	if a[1].Name != "ピチュー" || b[1].Name != "イーブイ" {
		t.Errorf("shared backing array: a=%v b=%v", a, b)
	}
}

func TestRemove(t *testing.T) {
	list := []UsedPokemon{pikachu, pichu}

	if got := Remove(list, "イーブイ"); !reflect.DeepEqual(got, list) {
		t.Errorf("removing absent name changed list: %v", got)
	}
	got := Remove(list, "ピカチュウ")
	if len(got) != len(list)-1 || got[0].Name != "ピチュー" {
		t.Errorf("Remove = %v, want only pichu", got)
	}
	if len(list) != 2 {
		t.Error("input list was mutated")
	}
}

func TestClearAll(t *testing.T) {
	for _, list := range [][]UsedPokemon{nil, {}, {pikachu, pichu, eevee}} {
		got := ClearAll(list)
		if got == nil || len(got) != 0 {
			t.Errorf("ClearAll(%v) = %#v, want empty non-nil", list, got)
		}
	}
}

func TestContainsAndNameSet(t *testing.T) {
	list := []UsedPokemon{pikachu, eevee}
	if !Contains(list, "イーブイ") || Contains(list, "ピチュー") {
		t.Error("Contains mismatch")
	}
	set := NameSet(list)
	if _, ok := set["ピカチュウ"]; !ok || len(set) != 2 {
		t.Errorf("NameSet = %v", set)
	}
}

func TestSortedByTimestampDesc(t *testing.T) {
	list := []UsedPokemon{pikachu, pichu, eevee}
	got := SortedByTimestampDesc(list)
	want := []string{"ピチュー", "イーブイ", "ピカチュウ"}
	for i, u := range got {
		if u.Name != want[i] {
			t.Errorf("sorted[%d] = %s, want %s", i, u.Name, want[i])
		}
	}
	if list[0].Name != "ピカチュウ" {
		t.Error("input was reordered")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	tests := []string{
		`[]`,
		`[{"name":"ピカチュウ","pokedexNumber":25,"timestamp":1700000000000}]`,
		`[{"name":"ピチュー","pokedexNumber":172,"timestamp":3},{"name":"イーブイ","pokedexNumber":133,"timestamp":2}]`,
	}
	for _, in := range tests {
		list, err := FromJSON(in)
		if err != nil {
			t.Fatalf("FromJSON(%s): %v", in, err)
		}
		out, err := ToJSON(list)
		if err != nil {
			t.Fatalf("ToJSON: %v", err)
		}
		back, _ := FromJSON(out)
		if !reflect.DeepEqual(list, back) {
			t.Errorf("round trip of %s produced %s", in, out)
		}
	}
}

func TestFromJSONEdgeCases(t *testing.T) {
	for _, in := range []string{"", "null", "  "} {
		list, err := FromJSON(in)
		if err != nil || list == nil || len(list) != 0 {
			t.Errorf("FromJSON(%q) = %v, %v", in, list, err)
		}
	}
	if _, err := FromJSON(`{"name":"x"}`); err == nil {
		t.Error("object input should fail")
	}
	if out, _ := ToJSON(nil); out != "[]" {
		t.Errorf("ToJSON(nil) = %s, want []", out)
	}
}
