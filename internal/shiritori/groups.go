package shiritori

import (
	"errors"
	"slices"
)

// AccordionGroup is one syllabary row of the browser. It is view state only
// and never persisted.
type AccordionGroup struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Chars      []string `json:"chars"`
	Expanded   bool     `json:"expanded"`
	ActiveChar string   `json:"activeChar,omitempty"`
}

var ErrCharNotInGroup = errors.New("character does not belong to group")

var rows = []struct {
	id, name string
	chars    []string
}{
	{"a", "ア行", []string{"ア", "イ", "ウ", "エ", "オ"}},
	{"ka", "カ行", []string{"カ", "キ", "ク", "ケ", "コ"}},
	{"sa", "サ行", []string{"サ", "シ", "ス", "セ", "ソ"}},
	{"ta", "タ行", []string{"タ", "チ", "ツ", "テ", "ト"}},
	{"na", "ナ行", []string{"ナ", "ニ", "ヌ", "ネ", "ノ"}},
	{"ha", "ハ行", []string{"ハ", "ヒ", "フ", "ヘ", "ホ"}},
	{"ma", "マ行", []string{"マ", "ミ", "ム", "メ", "モ"}},
	{"ya", "ヤ行", []string{"ヤ", "ユ", "ヨ"}},
	{"ra", "ラ行", []string{"ラ", "リ", "ル", "レ", "ロ"}},
	{"wa", "ワ行", []string{"ワ", "ヲ"}},
	{"ga", "ガ行", []string{"ガ", "ギ", "グ", "ゲ", "ゴ"}},
	{"za", "ザ行", []string{"ザ", "ジ", "ズ", "ゼ", "ゾ"}},
	{"da", "ダ行", []string{"ダ", "ヂ", "ヅ", "デ", "ド"}},
	{"ba", "バ行", []string{"バ", "ビ", "ブ", "ベ", "ボ", "ヴ"}},
	{"pa", "パ行", []string{"パ", "ピ", "プ", "ペ", "ポ"}},
}

// DefaultGroups returns the 15 collapsed groups in syllabary order.
func DefaultGroups() []AccordionGroup {
	groups := make([]AccordionGroup, len(rows))
	for i, r := range rows {
		groups[i] = AccordionGroup{ID: r.id, Name: r.name, Chars: slices.Clone(r.chars)}
	}
	return groups
}

// GroupOf returns the id of the group containing char.
func GroupOf(char string) (string, bool) {
	for _, r := range rows {
		if slices.Contains(r.chars, char) {
			return r.id, true
		}
	}
	return "", false
}

// Toggle flips the expansion flag.
func (g AccordionGroup) Toggle() AccordionGroup {
	g.Expanded = !g.Expanded
	return g
}

// SetActiveChar selects a character tab and expands the group.
func (g AccordionGroup) SetActiveChar(char string) (AccordionGroup, error) {
	if !slices.Contains(g.Chars, char) {
		return g, ErrCharNotInGroup
	}
	g.ActiveChar = char
	g.Expanded = true
	return g, nil
}
