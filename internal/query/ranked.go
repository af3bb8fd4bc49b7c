package query

import (
	"sort"
	"strings"

	"github.com/preston-bernstein/hooponomics-service/internal/domain"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
	"github.com/preston-bernstein/hooponomics-service/internal/valuation"
)

// Direction selects which side of zero a ranked query keeps.
type Direction string

const (
	Undervalued Direction = "undervalued"
	Overvalued  Direction = "overvalued"
)

// ParseDirection validates a ranked query direction.
func ParseDirection(raw string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(raw))); d {
	case Undervalued, Overvalued:
		return d, nil
	default:
		return "", &domain.ConfigError{Field: "direction", Value: raw}
	}
}

// Ranked returns the top k players of the allowed positions by surplus value:
// strictly positive values descending for Undervalued, strictly negative
// ascending for Overvalued. Fewer than k qualifying players yields all of
// them; an empty position set or k <= 0 yields an empty result.
func (e *Engine) Ranked(dir Direction, positions []players.Position, k int) []valuation.Row {
	out := []valuation.Row{}
	if k <= 0 || len(positions) == 0 {
		return out
	}
	allowed := make(map[players.Position]struct{}, len(positions))
	for _, p := range positions {
		allowed[p] = struct{}{}
	}

	var picked []int
	for i := 0; i < e.ds.Len(); i++ {
		p := e.ds.Entry(i).Player
		if _, ok := allowed[p.Position]; !ok {
			continue
		}
		if (dir == Undervalued && p.Surplus > 0) || (dir == Overvalued && p.Surplus < 0) {
			picked = append(picked, i)
		}
	}
	sort.SliceStable(picked, func(a, b int) bool {
		sa := e.ds.Entry(picked[a]).Player.Surplus
		sb := e.ds.Entry(picked[b]).Player.Surplus
		if dir == Undervalued {
			return sa > sb
		}
		return sa < sb
	})

	for _, i := range picked {
		if len(out) == k {
			break
		}
		out = append(out, e.ds.Entry(i).Row)
	}
	return out
}

// Undervalued is Ranked in the Undervalued direction.
func (e *Engine) Undervalued(positions []players.Position, k int) []valuation.Row {
	return e.Ranked(Undervalued, positions, k)
}

// Overvalued is Ranked in the Overvalued direction.
func (e *Engine) Overvalued(positions []players.Position, k int) []valuation.Row {
	return e.Ranked(Overvalued, positions, k)
}

// TeamSurplus lists every team by net surplus, highest first. Ties keep table order.
func (e *Engine) TeamSurplus() []valuation.TeamSurplusRow {
	ts := e.ds.Teams()
	sort.SliceStable(ts, func(a, b int) bool {
		return ts[a].NetSurplus > ts[b].NetSurplus
	})
	out := make([]valuation.TeamSurplusRow, len(ts))
	for i, t := range ts {
		out[i] = valuation.NewTeamSurplusRow(t.Name, t.Code, t.NetSurplus)
	}
	return out
}
