package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/hooponomics-service/internal/domain"
	"github.com/preston-bernstein/hooponomics-service/internal/http/requestutil"
	"github.com/preston-bernstein/hooponomics-service/internal/logging"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	body := map[string]string{"error": message}
	if reqID := requestutil.RequestID(r); reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// StatusFor maps the domain error taxonomy onto HTTP statuses.
func StatusFor(err error) (int, string) {
	if nf, ok := domain.AsNotFoundError(err); ok {
		return http.StatusNotFound, nf.Error()
	}
	if _, ok := domain.AsDataLoadError(err); ok {
		return http.StatusServiceUnavailable, "dataset unavailable"
	}
	if cfg, ok := domain.AsConfigError(err); ok {
		return http.StatusInternalServerError, cfg.Error()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable, "request cancelled"
	}
	return http.StatusInternalServerError, "internal error"
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, message := StatusFor(err)
	logger = loggerFromContext(r, logger)
	if status >= http.StatusInternalServerError {
		logging.Error(logger, "request failed", err, slog.Int(logging.FieldStatusCode, status))
	}
	writeError(w, r, status, message, logger)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
