// Package kana normalizes Pokémon names to katakana and derives the
// characters used for shiritori chaining.
package kana

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

const (
	longVowel = 'ー'
	// Hiragana and katakana blocks are offset by a constant.
	hiraganaOffset = 'ア' - 'あ'
)

var smallToLarge = map[rune]rune{
	'ァ': 'ア', 'ィ': 'イ', 'ゥ': 'ウ', 'ェ': 'エ', 'ォ': 'オ',
	'ッ': 'ツ', 'ャ': 'ヤ', 'ュ': 'ユ', 'ョ': 'ヨ', 'ヮ': 'ワ',
	'ヵ': 'カ', 'ヶ': 'ケ',
}

// ToKatakana folds half-width forms, applies NFKC and converts hiragana to
// katakana. Other runes pass through unchanged.
func ToKatakana(s string) string {
	s = norm.NFKC.String(width.Fold.String(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'ぁ' && r <= 'ゖ' {
			r += hiraganaOffset
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Normalize trims surrounding whitespace and converts to katakana.
func Normalize(name string) string {
	return ToKatakana(strings.TrimSpace(name))
}

// IsKatakana reports whether r is a katakana letter. The long vowel mark is
// not a letter.
func IsKatakana(r rune) bool {
	return r >= 'ァ' && r <= 'ヺ'
}

// Enlarge maps a small kana to its full-size form.
func Enlarge(r rune) rune {
	if l, ok := smallToLarge[r]; ok {
		return l
	}
	return r
}

// FirstChar returns the leading character of name used for grouping, or ""
// when the name does not start with katakana.
func FirstChar(name string) string {
	n := Normalize(name)
	r, _ := utf8.DecodeRuneInString(n)
	if r == utf8.RuneError || !IsKatakana(r) {
		return ""
	}
	return string(Enlarge(r))
}

// LastChar returns the character the next word must start with. Trailing long
// vowel marks, symbols and digits are skipped, so ミュウツー yields ツ and
// ニドラン♂ yields ン.
func LastChar(name string) string {
	n := Normalize(name)
	for len(n) > 0 {
		r, size := utf8.DecodeLastRuneInString(n)
		n = n[:len(n)-size]
		if r == longVowel || !IsKatakana(r) {
			continue
		}
		return string(Enlarge(r))
	}
	return ""
}

// EndsWithN reports whether name ends in ン and therefore cannot continue a
// chain.
func EndsWithN(name string) bool {
	return LastChar(name) == "ン"
}
