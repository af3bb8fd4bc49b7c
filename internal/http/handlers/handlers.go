// Package handlers serves the JSON API over the player and team services.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	appplayers "github.com/preston-bernstein/hooponomics-service/internal/app/players"
	appteams "github.com/preston-bernstein/hooponomics-service/internal/app/teams"
	"github.com/preston-bernstein/hooponomics-service/internal/query"
	"github.com/preston-bernstein/hooponomics-service/internal/valuation"
)

// Handler wires HTTP routes to the player and team services.
type Handler struct {
	players *appplayers.Service
	teams   *appteams.Service
	ready   func() bool
	logger  *slog.Logger
}

// NewHandler constructs a Handler. ready reports whether the tables are
// loaded; nil means always ready.
func NewHandler(players *appplayers.Service, teams *appteams.Service, ready func() bool, logger *slog.Logger) *Handler {
	return &Handler{
		players: players,
		teams:   teams,
		ready:   ready,
		logger:  logger,
	}
}

// Register mounts the API routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/players", h.SearchPlayers)
	r.Get("/players/{name}", h.Player)
	r.Get("/players/{name}/similar", h.SimilarPlayers)
	r.Get("/teams", h.Teams)
	r.Get("/teams/surplus", h.TeamSurplus)
	r.Get("/teams/{name}/roster", h.TeamRoster)
	r.Get("/explore/{direction}", h.Explore)
}

type rowsResponse struct {
	Columns []string        `json:"columns"`
	Rows    []valuation.Row `json:"rows"`
}

func newRowsResponse(rows []valuation.Row) rowsResponse {
	return rowsResponse{Columns: valuation.Columns, Rows: rows}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic once the tables are loaded.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.ready == nil || h.ready() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	writeError(w, r, http.StatusServiceUnavailable, "dataset not loaded", h.logger)
}

// SearchPlayers returns player names matching ?q=.
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r, defaultSearchLimit)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	q := r.URL.Query().Get("q")
	names, err := h.players.Search(r.Context(), q, limit)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": q, "players": names}, h.logger)
}

// Player returns one player's detail record.
func (h *Handler) Player(w http.ResponseWriter, r *http.Request) {
	name, err := nameParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	detail, err := h.players.Player(r.Context(), name)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, detail, h.logger)
}

// SimilarPlayers returns players comparable to the named one.
func (h *Handler) SimilarPlayers(w http.ResponseWriter, r *http.Request) {
	name, err := nameParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	limit, err := limitParam(r, h.players.Limits().Similar)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	rows, err := h.players.Similar(r.Context(), name, limit)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newRowsResponse(rows), h.logger)
}

// Teams lists team display names.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	names, err := h.teams.Teams(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": names}, h.logger)
}

// TeamRoster returns the players of a team.
func (h *Handler) TeamRoster(w http.ResponseWriter, r *http.Request) {
	name, err := nameParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	rows, err := h.teams.Roster(r.Context(), name)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newRowsResponse(rows), h.logger)
}

// TeamSurplus returns the net surplus table.
func (h *Handler) TeamSurplus(w http.ResponseWriter, r *http.Request) {
	rows, err := h.teams.Surplus(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": rows}, h.logger)
}

// Explore serves the most undervalued and overvalued rankings.
func (h *Handler) Explore(w http.ResponseWriter, r *http.Request) {
	dir, err := query.ParseDirection(chi.URLParam(r, "direction"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "not found", h.logger)
		return
	}
	positions, err := positionsParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	limit, err := limitParam(r, h.players.Limits().Ranked)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	rows, err := h.players.Ranked(r.Context(), dir, positions, limit)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newRowsResponse(rows), h.logger)
}
