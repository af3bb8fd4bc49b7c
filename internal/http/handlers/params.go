package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
	"github.com/preston-bernstein/hooponomics-service/internal/query"
)

const (
	defaultSearchLimit = 20
	maxLimit           = 500
)

type paramError struct {
	msg string
}

func (e *paramError) Error() string { return e.msg }

// limitParam reads ?limit=, using fallback when absent. Zero and negative
// values are passed through; the engine turns them into empty results.
func limitParam(r *http.Request, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{msg: "invalid limit"}
	}
	if n > maxLimit {
		n = maxLimit
	}
	return n, nil
}

// positionsParam reads ?positions=. Absent means every position; present but
// blank means none.
func positionsParam(r *http.Request) ([]players.Position, error) {
	values, present := r.URL.Query()["positions"]
	if !present {
		return append([]players.Position(nil), players.AllPositions...), nil
	}
	parsed, err := query.ParsePositions(strings.Join(values, ","))
	if err != nil {
		return nil, &paramError{msg: "invalid positions"}
	}
	return parsed, nil
}

func nameParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "name")
	name, err := url.PathUnescape(raw)
	if err != nil || strings.TrimSpace(name) == "" {
		return "", &paramError{msg: "invalid name"}
	}
	return name, nil
}
