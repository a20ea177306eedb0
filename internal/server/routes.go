package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Pokeshiri API", "/openapi.json", "/docs"))

	r.Post("/api/sessions", handleCreateSession(d.Sessions))

	// Session routes: Bearer token, or ?token= for event streams.
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware(d.Sessions))

		r.Get("/api/groups", handleListGroups())
		r.Post("/api/groups/{groupID}/toggle", handleToggleGroup(d.Reporter))
		r.Put("/api/groups/{groupID}/active", handleSetActiveChar(d.Reporter))

		r.Get("/api/pokemon", handleSearch(d.Reporter))
		r.Get("/api/pokemon/find", handleFind(d.Pokemon, d.Reporter))
		r.Get("/api/pokemon/next", handleNext(d.Reporter))

		r.Get("/api/hints/{dex}", handleGetCard(d.Reporter))
		r.Post("/api/hints/{dex}/{hint}", handleToggleHint(d.Reporter))

		r.Get("/api/used", handleListUsed())
		r.Post("/api/used", handleSubmitUsed(d.Reporter))
		r.Post("/api/used/reveal", handleReveal(d.Reporter))
		r.Delete("/api/used", handleClearUsed())
		r.Delete("/api/used/{name}", handleRemoveUsed(d.Reporter))

		r.Get("/api/status", handleStatus())
		r.Get("/api/events", handleEvents(d.Broker))
		r.Get("/ws/events", handleWSEvents(logger, d.Broker))
	})

	if d.Admin.enabled() {
		r.With(adminAuthMiddleware(d.Admin)).
			Post("/api/admin/reload", handleAdminReload(logger, d.Pokemon, d.Reload, d.Reporter))
	} else {
		logger.Info("admin routes disabled, no password hash configured")
	}

	if d.SPADir != "" {
		if info, err := os.Stat(d.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", d.SPADir)
			r.NotFound(handleSPA(d.SPADir))
		}
	}
}
