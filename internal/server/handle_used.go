package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pokeshiri/server/internal/game"
	"github.com/pokeshiri/server/internal/report"
)

// SubmitRequest is the request body for POST /api/used.
type SubmitRequest struct {
	Name string `json:"name"`
}

// RevealRequest is the request body for POST /api/used/reveal.
type RevealRequest struct {
	PokedexNumber int `json:"pokedexNumber"`
}

// RevealResponse is the response for POST /api/used/reveal.
type RevealResponse struct {
	Card   game.CardSnapshot `json:"card"`
	Result game.SubmitResult `json:"result"`
}

func handleListUsed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sessionFrom(r).app.UsedSnapshot())
	}
}

func handleSubmitUsed(reporter *report.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := sessionFrom(r).app.Game.Submit(r.Context(), req.Name)
		if err != nil {
			writeReport(w, r, reporter, err)
			return
		}
		status := http.StatusCreated
		if !res.Added {
			status = http.StatusOK
		}
		writeJSON(w, status, res)
	}
}

func handleReveal(reporter *report.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RevealRequest
		if err := readJSON(r, &req); err != nil || req.PokedexNumber <= 0 {
			writeError(w, http.StatusBadRequest, "pokedexNumber is required")
			return
		}

		card, res, err := sessionFrom(r).app.Game.Reveal(r.Context(), req.PokedexNumber)
		if err != nil {
			writeReport(w, r, reporter, err)
			return
		}
		writeJSON(w, http.StatusOK, RevealResponse{Card: card, Result: res})
	}
}

func handleRemoveUsed(reporter *report.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if !sessionFrom(r).app.Game.Remove(r.Context(), name) {
			writeReport(w, r, reporter, report.New(report.CategoryNotFound, report.SeverityInfo,
				"pokemon not in used list", "使用済みリストにありません"))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleClearUsed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionFrom(r).app.Game.Clear(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}
