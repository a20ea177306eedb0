package kana

import "testing"

func TestToKatakana(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ぴかちゅう", "ピカチュウ"},
		{"ピカチュウ", "ピカチュウ"},
		{"ﾋﾟｶﾁｭｳ", "ピカチュウ"},
		{"ポリゴン２", "ポリゴン2"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ToKatakana(tt.in); got != tt.want {
				t.Errorf("ToKatakana(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFirstChar(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"ピカチュウ", "ピ"},
		{"  フシギダネ ", "フ"},
		{"ぜにがめ", "ゼ"},
		{"ヴォルケニオン", "ヴ"},
		{"Pikachu", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstChar(tt.name); got != tt.want {
				t.Errorf("FirstChar(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestLastChar(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"ピカチュウ", "ウ"},
		{"ミュウツー", "ツ"},
		{"ルンパッパ", "パ"},
		{"ニドラン♂", "ン"},
		{"ポリゴン2", "ン"},
		{"キャタピー", "ピ"},
		{"ゴンベ", "ベ"},
		{"ミミッキュ", "ユ"},
		{"リザードン", "ン"},
		{"ーー", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LastChar(tt.name); got != tt.want {
				t.Errorf("LastChar(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestEndsWithN(t *testing.T) {
	if !EndsWithN("リザードン") {
		t.Error("リザードン should end with ン")
	}
	if EndsWithN("ピカチュウ") {
		t.Error("ピカチュウ should not end with ン")
	}
}
