package dashboard

import (
	"github.com/a-h/templ"

	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
	"github.com/preston-bernstein/hooponomics-service/internal/valuation"
)

//go:generate templ generate

// CountOptions are the selectable sizes of the ranked tables.
var CountOptions = []int{0, 5, 10, 15, 20, 25, 30}

// PageData is everything the dashboard page renders.
type PageData struct {
	Error string

	Players  []string
	Player   string
	Detail   *valuation.Detail
	Similar  []valuation.Row
	Teams    []string
	Team     string
	Roster   []valuation.Row
	Count    int
	AllPos   bool
	Selected map[players.Position]bool

	Undervalued []valuation.Row
	Overvalued  []valuation.Row
	TeamSurplus []valuation.TeamSurplusRow
}

// surplusStyle colours a surplus cell. The colours are a fixed palette.
func surplusStyle(c valuation.SurplusClass) templ.SafeCSS {
	return templ.SafeCSS("background:" + c.Color() + ";")
}

// splitCells separates the surplus cell, which is styled, from the rest of a row.
func splitCells(r valuation.Row) ([]string, string) {
	cells := r.Cells()
	if len(cells) == 0 {
		return nil, ""
	}
	return cells[:len(cells)-1], cells[len(cells)-1]
}
