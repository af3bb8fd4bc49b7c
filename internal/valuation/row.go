package valuation

import (
	"strconv"

	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
)

// Columns are the display headers of a player row, in order.
var Columns = []string{
	"Name",
	"Team",
	"Position",
	"Age",
	"Height",
	"Weight",
	"Salary ($M)",
	"Market Value ($M)",
	"Surplus Value ($M)",
}

// Row is the display-ready view of a player.
type Row struct {
	Name         string       `json:"name"`
	Team         string       `json:"team"`
	Position     string       `json:"position"`
	Age          int          `json:"age"`
	Height       string       `json:"height"`
	Weight       string       `json:"weight"`
	Salary       string       `json:"salary"`
	MarketValue  string       `json:"marketValue"`
	SurplusValue string       `json:"surplusValue"`
	SurplusClass SurplusClass `json:"surplusClass"`
}

// Cells returns the row in Columns order.
func (r Row) Cells() []string {
	return []string{
		r.Name,
		r.Team,
		r.Position,
		strconv.Itoa(r.Age),
		r.Height,
		r.Weight,
		r.Salary,
		r.MarketValue,
		r.SurplusValue,
	}
}

// DeriveRow computes the display columns for a player.
// It fails with a ConfigError for an unknown bracket.
func DeriveRow(p players.Player) (Row, error) {
	bracket, err := ParseBracket(p.Bracket)
	if err != nil {
		return Row{}, err
	}
	height, err := HeightDisplay(p.Height)
	if err != nil {
		return Row{}, err
	}
	surplus := SurplusDisplay(p.Surplus)
	return Row{
		Name:         p.Name,
		Team:         p.Team,
		Position:     string(p.Position),
		Age:          p.Age,
		Height:       height,
		Weight:       WeightDisplay(p.Weight),
		Salary:       SalaryDisplay(p.Salary),
		MarketValue:  bracket.Label(),
		SurplusValue: surplus,
		SurplusClass: ClassifySurplus(surplus),
	}, nil
}

// Detail extends a row with the labels shown on the player page.
type Detail struct {
	Row
	SalaryLabel      string  `json:"salaryLabel"`
	MarketValueLabel string  `json:"marketValueLabel"`
	Probability      float64 `json:"probability"`
	ProfileURL       string  `json:"profileUrl"`
}

// DeriveDetail builds the player page view from a record and its derived row.
func DeriveDetail(p players.Player, row Row, profileBase string) (Detail, error) {
	market, err := MarketValueLabelFor(p.Bracket)
	if err != nil {
		return Detail{}, err
	}
	return Detail{
		Row:              row,
		SalaryLabel:      SalaryLabel(row.Salary),
		MarketValueLabel: market,
		Probability:      p.Probability,
		ProfileURL:       ProfileURL(profileBase, p.ProfilePath),
	}, nil
}
