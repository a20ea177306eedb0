package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/pokeshiri/server/internal/game"
)

type sessionHeader struct {
	Authorization string `header:"Authorization" description:"Bearer <sessionId>"`
}

type groupPath struct {
	sessionHeader
	GroupID string `path:"groupID"`
}

type activeCharOp struct {
	groupPath
	Char string `json:"char"`
}

type searchQuery struct {
	sessionHeader
	Char string `query:"char" description:"Katakana or hiragana character"`
}

type nameQuery struct {
	sessionHeader
	Name string `query:"name"`
}

type dexPath struct {
	sessionHeader
	Dex int `path:"dex"`
}

type hintPath struct {
	dexPath
	Hint string `path:"hint" enum:"generation,genus,type,image"`
}

type submitOp struct {
	sessionHeader
	SubmitRequest
}

type revealOp struct {
	sessionHeader
	RevealRequest
}

type removeUsedPath struct {
	sessionHeader
	Name string `path:"name"`
}

type eventsQuery struct {
	Token string `query:"token" description:"Session id, for clients that cannot set headers"`
}

type operation struct {
	method      string
	path        string
	summary     string
	description string
	req         any
	resp        any
	status      int
	contentType string
	errors      []int
}

var operations = []operation{
	{
		method:      http.MethodPost,
		path:        "/api/sessions",
		summary:     "Create session",
		description: "Opens a new game session. Pass the returned id as a Bearer token.",
		resp:        SessionResponse{},
		status:      http.StatusCreated,
	},
	{
		method:      http.MethodGet,
		path:        "/api/groups",
		summary:     "List accordion groups",
		description: "Returns the syllabary rows with per-character Pokémon counts.",
		req:         sessionHeader{},
		resp:        GroupsResponse{},
		status:      http.StatusOK,
		errors:      []int{http.StatusUnauthorized},
	},
	{
		method:      http.MethodPost,
		path:        "/api/groups/{groupID}/toggle",
		summary:     "Toggle group",
		description: "Expands or collapses a row.",
		req:         groupPath{},
		resp:        game.GroupSnapshot{},
		status:      http.StatusOK,
		errors:      []int{http.StatusNotFound, http.StatusUnauthorized},
	},
	{
		method:      http.MethodPut,
		path:        "/api/groups/{groupID}/active",
		summary:     "Select character",
		description: "Activates a character tab of the row and lists its Pokémon.",
		req:         activeCharOp{},
		resp:        game.ListSnapshot{},
		status:      http.StatusOK,
		errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusUnauthorized},
	},
	{
		method:      http.MethodGet,
		path:        "/api/pokemon",
		summary:     "Search by first character",
		description: "Lists the cards of every Pokémon whose name starts with char.",
		req:         searchQuery{},
		resp:        game.ListSnapshot{},
		status:      http.StatusOK,
		errors:      []int{http.StatusBadRequest, http.StatusUnauthorized},
	},
	{
		method:      http.MethodGet,
		path:        "/api/pokemon/find",
		summary:     "Find by name",
		description: "Looks up a Pokémon by exact name.",
		req:         nameQuery{},
		resp:        FindResponse{},
		status:      http.StatusOK,
		errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusUnauthorized},
	},
	{
		method:      http.MethodGet,
		path:        "/api/pokemon/next",
		summary:     "Suggest next",
		description: "Lists unused Pokémon starting with the last character of name.",
		req:         nameQuery{},
		resp:        NextResponse{},
		status:      http.StatusOK,
		errors:      []int{http.StatusBadRequest, http.StatusUnauthorized},
	},
	{
		method:      http.MethodGet,
		path:        "/api/hints/{dex}",
		summary:     "Get card",
		description: "Returns the card with the hints revealed so far.",
		req:         dexPath{},
		resp:        game.CardSnapshot{},
		status:      http.StatusOK,
		errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusUnauthorized},
	},
	{
		method:      http.MethodPost,
		path:        "/api/hints/{dex}/{hint}",
		summary:     "Toggle hint",
		description: "Flips a text hint or advances the image hint hidden → silhouette → blurred → full.",
		req:         hintPath{},
		resp:        game.CardSnapshot{},
		status:      http.StatusOK,
		errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusUnauthorized},
	},
	{
		method:      http.MethodGet,
		path:        "/api/used",
		summary:     "List used Pokémon",
		description: "Returns the used list, newest first.",
		req:         sessionHeader{},
		resp:        game.UsedSnapshot{},
		status:      http.StatusOK,
		errors:      []int{http.StatusUnauthorized},
	},
	{
		method:      http.MethodPost,
		path:        "/api/used",
		summary:     "Submit name",
		description: "Marks a Pokémon used by name. Returns 200 when it was already used.",
		req:         submitOp{},
		resp:        game.SubmitResult{},
		status:      http.StatusCreated,
		errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusUnauthorized},
	},
	{
		method:      http.MethodPost,
		path:        "/api/used/reveal",
		summary:     "Confirm answer",
		description: "Reveals every hint of a card and marks the Pokémon used.",
		req:         revealOp{},
		resp:        RevealResponse{},
		status:      http.StatusOK,
		errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusUnauthorized},
	},
	{
		method:  http.MethodDelete,
		path:    "/api/used",
		summary: "Clear used list",
		req:     sessionHeader{},
		status:  http.StatusNoContent,
		errors:  []int{http.StatusUnauthorized},
	},
	{
		method:  http.MethodDelete,
		path:    "/api/used/{name}",
		summary: "Remove used Pokémon",
		req:     removeUsedPath{},
		status:  http.StatusNoContent,
		errors:  []int{http.StatusNotFound, http.StatusUnauthorized},
	},
	{
		method:      http.MethodGet,
		path:        "/api/status",
		summary:     "Game status",
		description: "Used and remaining counts plus the current warning.",
		req:         sessionHeader{},
		resp:        StatusResponse{},
		status:      http.StatusOK,
		errors:      []int{http.StatusUnauthorized},
	},
	{
		method:      http.MethodGet,
		path:        "/api/events",
		summary:     "SSE event stream",
		description: "Server-Sent Events carrying view snapshots of the session.",
		req:         eventsQuery{},
		status:      http.StatusOK,
		contentType: "text/event-stream",
		errors:      []int{http.StatusUnauthorized},
	},
	{
		method:      http.MethodGet,
		path:        "/ws/events",
		summary:     "WebSocket event stream",
		description: "Upgrades to a WebSocket that pushes the same snapshots as /api/events.",
		req:         eventsQuery{},
		status:      http.StatusSwitchingProtocols,
		contentType: "text/plain",
		errors:      []int{http.StatusUnauthorized},
	},
	{
		method:      http.MethodPost,
		path:        "/api/admin/reload",
		summary:     "Reload pokédex",
		description: "Refetches the database. Requires HTTP basic auth.",
		resp:        ReloadResponse{},
		status:      http.StatusOK,
		errors:      []int{http.StatusUnauthorized, http.StatusBadGateway},
	},
}

// HealthResponse documents GET /healthz: one entry per dependency.
type HealthResponse map[string]struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Pokeshiri API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Pokémon shiritori helper.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	for _, op := range operations {
		oc, err := r.NewOperationContext(op.method, op.path)
		if err != nil {
			continue
		}
		oc.SetSummary(op.summary)
		if op.description != "" {
			oc.SetDescription(op.description)
		}
		if op.req != nil {
			oc.AddReqStructure(op.req)
		}
		opts := []openapi.ContentOption{openapi.WithHTTPStatus(op.status)}
		if op.contentType != "" {
			opts = append(opts, openapi.WithContentType(op.contentType))
		}
		oc.AddRespStructure(op.resp, opts...)
		for _, status := range op.errors {
			oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(status))
		}
		_ = r.AddOperation(oc)
	}

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
