package valuation

import "github.com/preston-bernstein/hooponomics-service/internal/domain/players"

// NetSurplusByTeam sums unrounded surplus values per team code.
func NetSurplusByTeam(items []players.Player) map[string]float64 {
	totals := make(map[string]float64)
	for _, p := range items {
		totals[p.Team] += p.Surplus
	}
	return totals
}

// TeamSurplusRow is one line of the net-surplus-by-team table.
type TeamSurplusRow struct {
	Team         string       `json:"team"`
	Code         string       `json:"code"`
	NetSurplus   float64      `json:"netSurplus"`
	Display      string       `json:"display"`
	SurplusClass SurplusClass `json:"surplusClass"`
}

// NewTeamSurplusRow formats a team aggregate for display.
func NewTeamSurplusRow(name, code string, net float64) TeamSurplusRow {
	display := NetSurplusDisplay(net)
	class := SurplusZero
	if r := Round1(net); r < 0 {
		class = SurplusNegative
	} else if r > 0 {
		class = SurplusPositive
	}
	return TeamSurplusRow{
		Team:         name,
		Code:         code,
		NetSurplus:   net,
		Display:      display,
		SurplusClass: class,
	}
}
