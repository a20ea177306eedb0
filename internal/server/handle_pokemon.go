package server

import (
	"net/http"

	"github.com/pokeshiri/server/internal/game"
	"github.com/pokeshiri/server/internal/kana"
	"github.com/pokeshiri/server/internal/pokedex"
	"github.com/pokeshiri/server/internal/report"
)

// PokemonItem is the object form of a Pokémon record.
type PokemonItem struct {
	Name          string   `json:"name"`
	Genus         string   `json:"genus"`
	Generation    int      `json:"generation"`
	PokedexNumber int      `json:"pokedexNumber"`
	Types         []string `json:"types"`
}

func pokemonItem(p pokedex.Pokemon) PokemonItem {
	return PokemonItem{
		Name:          p.Name,
		Genus:         p.Genus,
		Generation:    p.Generation,
		PokedexNumber: p.DexNumber,
		Types:         p.TypeNames(),
	}
}

// FindResponse is the response for GET /api/pokemon/find.
type FindResponse struct {
	Pokemon PokemonItem `json:"pokemon"`
	Used    bool        `json:"used"`
}

// NextResponse is the response for GET /api/pokemon/next.
type NextResponse struct {
	Char    string        `json:"char"`
	Pokemon []PokemonItem `json:"pokemon"`
}

func queryErr(param string) error {
	return report.New(report.CategoryValidation, report.SeverityInfo,
		param+" query parameter required", "検索する文字を入力してください")
}

func handleSearch(reporter *report.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		char := kana.FirstChar(r.URL.Query().Get("char"))
		if char == "" {
			writeReport(w, r, reporter, queryErr("char"))
			return
		}
		writeJSON(w, http.StatusOK, sessionFrom(r).app.Search.Select(char))
	}
}

func handleFind(pokemon *game.PokemonModel, reporter *report.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if kana.Normalize(name) == "" {
			writeReport(w, r, reporter, queryErr("name"))
			return
		}

		p, ok := pokemon.Find(name)
		if !ok {
			writeReport(w, r, reporter, report.New(report.CategoryNotFound, report.SeverityInfo,
				"pokemon not found", game.NotFoundMessage))
			return
		}
		writeJSON(w, http.StatusOK, FindResponse{
			Pokemon: pokemonItem(p),
			Used:    sessionFrom(r).app.State().IsUsed(p.Name),
		})
	}
}

func handleNext(reporter *report.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		char := kana.LastChar(name)
		if char == "" {
			writeReport(w, r, reporter, queryErr("name"))
			return
		}

		next := sessionFrom(r).app.Game.Next(name)
		items := make([]PokemonItem, 0, len(next))
		for _, p := range next {
			items = append(items, pokemonItem(p))
		}
		writeJSON(w, http.StatusOK, NextResponse{Char: char, Pokemon: items})
	}
}
