// Package dashboard serves the server-rendered HTML explorer.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	appplayers "github.com/preston-bernstein/hooponomics-service/internal/app/players"
	appteams "github.com/preston-bernstein/hooponomics-service/internal/app/teams"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
	"github.com/preston-bernstein/hooponomics-service/internal/http/handlers"
	"github.com/preston-bernstein/hooponomics-service/internal/logging"
	"github.com/preston-bernstein/hooponomics-service/internal/query"
)

// DefaultCount is the initial size of the ranked tables.
const DefaultCount = 5

// Handler renders the dashboard from the query services.
type Handler struct {
	players *appplayers.Service
	teams   *appteams.Service
	logger  *slog.Logger
}

func NewHandler(players *appplayers.Service, teams *appteams.Service, logger *slog.Logger) *Handler {
	return &Handler{players: players, teams: teams, logger: logger}
}

// ServeHTTP reads ?player, ?team, ?count and the pos checkboxes. Missing
// selections fall back to the first player and team.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, err := h.build(r.Context(), r)
	status := http.StatusOK
	if err != nil {
		var msg string
		var in *inputError
		if errors.As(err, &in) {
			status, msg = http.StatusBadRequest, in.msg
		} else {
			status, msg = handlers.StatusFor(err)
		}
		data.Error = msg
		if status >= http.StatusInternalServerError {
			logging.Error(h.loggerFor(r), "dashboard render failed", err)
		}
	}
	templ.Handler(Page(data), templ.WithStatus(status)).ServeHTTP(w, r)
}

func (h *Handler) loggerFor(r *http.Request) *slog.Logger {
	return logging.FromContext(r.Context(), h.logger)
}

type inputError struct{ msg string }

func (e *inputError) Error() string { return e.msg }

func (h *Handler) build(ctx context.Context, r *http.Request) (PageData, error) {
	q := r.URL.Query()
	data := PageData{Count: DefaultCount, AllPos: true}

	count, err := countParam(q.Get("count"))
	if err != nil {
		return data, err
	}
	data.Count = count
	positions, all, selected, err := positionSelection(q.Has("explore"), q["pos"])
	if err != nil {
		return data, err
	}
	data.AllPos = all
	data.Selected = selected

	if data.Players, err = h.players.Search(ctx, "", math.MaxInt); err != nil {
		return data, err
	}
	if data.Teams, err = h.teams.Teams(ctx); err != nil {
		return data, err
	}

	data.Player = strings.TrimSpace(q.Get("player"))
	if data.Player == "" && len(data.Players) > 0 {
		data.Player = data.Players[0]
	}
	if data.Player != "" {
		detail, err := h.players.Player(ctx, data.Player)
		if err != nil {
			return data, err
		}
		data.Detail = &detail
		if data.Similar, err = h.players.Similar(ctx, data.Player, h.players.Limits().Similar); err != nil {
			return data, err
		}
	}

	data.Team = strings.TrimSpace(q.Get("team"))
	if data.Team == "" && len(data.Teams) > 0 {
		data.Team = data.Teams[0]
	}
	if data.Team != "" {
		if data.Roster, err = h.teams.Roster(ctx, data.Team); err != nil {
			return data, err
		}
	}

	if data.Undervalued, err = h.players.Ranked(ctx, query.Undervalued, positions, count); err != nil {
		return data, err
	}
	if data.Overvalued, err = h.players.Ranked(ctx, query.Overvalued, positions, count); err != nil {
		return data, err
	}
	if data.TeamSurplus, err = h.teams.Surplus(ctx); err != nil {
		return data, err
	}
	return data, nil
}

func countParam(raw string) (int, error) {
	if raw == "" {
		return DefaultCount, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || !slices.Contains(CountOptions, n) {
		return 0, &inputError{msg: "invalid count"}
	}
	return n, nil
}

// positionSelection mirrors the explore form: before it is submitted every
// position is shown; afterwards "all" or the ticked positions apply.
func positionSelection(submitted bool, values []string) ([]players.Position, bool, map[players.Position]bool, error) {
	selected := make(map[players.Position]bool)
	if !submitted {
		return append([]players.Position(nil), players.AllPositions...), true, selected, nil
	}
	if slices.Contains(values, "all") {
		return append([]players.Position(nil), players.AllPositions...), true, selected, nil
	}
	parsed, err := query.ParsePositions(strings.Join(values, ","))
	if err != nil {
		return nil, false, selected, &inputError{msg: "invalid positions"}
	}
	for _, p := range parsed {
		selected[p] = true
	}
	return parsed, false, selected, nil
}
