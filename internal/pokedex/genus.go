package pokedex

// genusCorrections overrides genus strings that are missing or wrong in the
// upstream ja-Hrkt data, keyed by national dex number.
var genusCorrections = map[int]string{
	906: "くさねこポケモン",
	909: "ひトカゲポケモン",
	912: "こがもポケモン",
}

func correctGenus(dex int, genus string) string {
	if g, ok := genusCorrections[dex]; ok {
		return g
	}
	return genus
}
