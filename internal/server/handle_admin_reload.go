package server

import (
	"log/slog"
	"net/http"

	"github.com/pokeshiri/server/internal/game"
	"github.com/pokeshiri/server/internal/pokedex"
	"github.com/pokeshiri/server/internal/report"
)

// ReloadResponse is the response for POST /api/admin/reload.
type ReloadResponse struct {
	Total int `json:"total"`
}

// handleAdminReload refetches the database and swaps it into every session.
// An empty or failed load keeps the current database.
func handleAdminReload(logger *slog.Logger, pokemon *game.PokemonModel, loader pokedex.Loader, reporter *report.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if loader == nil {
			writeError(w, http.StatusNotImplemented, "reload not configured")
			return
		}

		db, err := loader.Load(r.Context())
		if err != nil {
			writeReport(w, r, reporter, report.Wrap(err, report.CategoryNetwork, report.SeverityError, "reloading pokedex"))
			return
		}
		if db.Len() == 0 {
			writeReport(w, r, reporter, report.New(report.CategoryNetwork, report.SeverityWarning, "reload returned no pokemon", ""))
			return
		}

		pokemon.Replace(db)
		logger.Info("pokedex reloaded", "total", db.Len())
		writeJSON(w, http.StatusOK, ReloadResponse{Total: db.Len()})
	}
}
