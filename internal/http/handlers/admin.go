package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/hooponomics-service/internal/dataset"
	"github.com/preston-bernstein/hooponomics-service/internal/http/requestutil"
	"github.com/preston-bernstein/hooponomics-service/internal/logging"
)

// Reloader re-reads the valuation tables.
type Reloader interface {
	Reload(ctx context.Context) (*dataset.Dataset, error)
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	reloader Reloader
	token    string
	logger   *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token disables it.
func NewAdminHandler(reloader Reloader, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		reloader: reloader,
		token:    token,
		logger:   logger,
	}
}

type reloadResponse struct {
	Status   string    `json:"status"`
	Source   string    `json:"source"`
	Players  int       `json:"players"`
	Teams    int       `json:"teams"`
	Warnings int       `json:"warnings"`
	LoadedAt time.Time `json:"loadedAt"`
}

// Reload re-reads the tables and swaps them in; the previous tables stay
// live when the reload fails.
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if h.token == "" {
		writeError(w, r, http.StatusForbidden, "admin endpoint disabled", h.logger)
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.reloader == nil {
		writeError(w, r, http.StatusServiceUnavailable, "reload not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	ds, err := h.reloader.Reload(r.Context())
	if err != nil {
		logging.Warn(logger, "admin reload failed", slog.Any("error", err))
		writeDomainError(w, r, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, reloadResponse{
		Status:   "ok",
		Source:   ds.Source(),
		Players:  ds.Len(),
		Teams:    len(ds.Teams()),
		Warnings: len(ds.Warnings()),
		LoadedAt: ds.LoadedAt(),
	}, logger)
	logging.Info(logger, "admin reload complete",
		slog.String(logging.FieldSource, ds.Source()),
		slog.Int(logging.FieldPlayers, ds.Len()),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
