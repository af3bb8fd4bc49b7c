// Package dataset loads the player and team tables into an immutable,
// validated Dataset.
package dataset

import (
	"context"

	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/teams"
)

// PlayerColumns are the required columns of the players table.
var PlayerColumns = []string{
	"Name",
	"Team",
	"Pos",
	"Age",
	"Height",
	"Weight",
	"Sal_class_predict",
	"Max_proba",
	"SalFinal",
	"Surplus_value",
	"ID",
}

// TeamColumns are the required columns of the teams table.
var TeamColumns = []string{"Team", "Team_Name", "Surplus_value"}

// Tables holds raw, typed records as read from a Source, in source order.
type Tables struct {
	Players []players.Player
	Teams   []teams.Team
}

// Source reads both input tables. Implementations return a *domain.DataLoadError
// for missing columns or unparseable rows and never return partial tables.
type Source interface {
	Name() string
	Load(ctx context.Context) (Tables, error)
}

func missingColumns(header, required []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}
	var missing []string
	for _, col := range required {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}
