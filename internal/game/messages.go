package game

import (
	"fmt"

	"github.com/pokeshiri/server/internal/report"
)

// Player-facing messages.
const (
	NotFoundMessage   = "そのポケモンは見つかりませんでした"
	EmptyNameMessage  = "ポケモンの名前を入力してください"
	EndsWithNMessage  = "「ン」で終わるため、しりとりが続きません"
	alreadyUsedFormat = "%sはすでに使用済みです"
	deadEndFormat     = "「%s」から始まる未使用のポケモンがいません"
)

func errPokemonNotFound(name string) error {
	return report.New(report.CategoryNotFound, report.SeverityWarning,
		fmt.Sprintf("pokemon %q not found", name), NotFoundMessage)
}

func errDexNotFound(dex int) error {
	return report.New(report.CategoryNotFound, report.SeverityWarning,
		fmt.Sprintf("pokedex number %d not found", dex), NotFoundMessage)
}

func errEmptyName() error {
	return report.New(report.CategoryValidation, report.SeverityInfo, "empty pokemon name", EmptyNameMessage)
}

func errGroupNotFound(id string) error {
	return report.New(report.CategoryNotFound, report.SeverityInfo,
		fmt.Sprintf("accordion group %q not found", id), "グループが見つかりません")
}

func errInvalidChar(groupID, char string) error {
	return report.New(report.CategoryValidation, report.SeverityInfo,
		fmt.Sprintf("char %q not in group %q", char, groupID), "この行にない文字です")
}

func errInvalidHint(kind string) error {
	return report.New(report.CategoryValidation, report.SeverityInfo,
		fmt.Sprintf("unknown hint %q", kind), "不明なヒントです")
}
