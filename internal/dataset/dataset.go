package dataset

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/preston-bernstein/hooponomics-service/internal/domain"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/teams"
	"github.com/preston-bernstein/hooponomics-service/internal/valuation"
)

// surplusTolerance is the largest gap between a stored and a recomputed
// surplus (or team aggregate) accepted without a warning, in $M.
const surplusTolerance = 0.05

// Entry pairs a player record with its derived display row.
type Entry struct {
	Player players.Player
	Row    valuation.Row
}

// Dataset is the validated, enriched pair of tables. It is immutable after
// Build; every accessor returns values or fresh slices.
type Dataset struct {
	entries    []Entry
	byName     map[string]int
	teams      []teams.Team
	codeByName map[string]string
	nameByCode map[string]string
	warnings   []string
	source     string
	loadedAt   time.Time
}

// Build validates raw tables, derives display columns and team aggregates.
// Any invalid row fails the whole build with a *domain.DataLoadError.
func Build(tables Tables, source string, loadedAt time.Time) (*Dataset, error) {
	ds := &Dataset{
		entries:    make([]Entry, 0, len(tables.Players)),
		byName:     make(map[string]int, len(tables.Players)),
		codeByName: make(map[string]string, len(tables.Teams)),
		nameByCode: make(map[string]string, len(tables.Teams)),
		source:     source,
		loadedAt:   loadedAt,
	}

	for i, p := range tables.Players {
		row, err := validatePlayer(p)
		if err != nil {
			var loadErr *domain.DataLoadError
			if errors.As(err, &loadErr) {
				loadErr.Source = source
				loadErr.Row = i + 1
				return nil, loadErr
			}
			return nil, &domain.DataLoadError{Source: source, Row: i + 1, Err: err}
		}
		if _, dup := ds.byName[p.Name]; dup {
			return nil, &domain.DataLoadError{Source: source, Row: i + 1, Column: "Name", Err: eris.Errorf("duplicate player %q", p.Name)}
		}
		ds.byName[p.Name] = len(ds.entries)
		ds.entries = append(ds.entries, Entry{Player: p, Row: row})

		expected := valuation.ExpectedSurplus(valuation.Bracket(p.Bracket), p.Salary)
		if math.Abs(expected-p.Surplus) > surplusTolerance {
			ds.warnings = append(ds.warnings, fmt.Sprintf("player %q surplus %.2f differs from bracket gap %.2f", p.Name, p.Surplus, expected))
		}
	}

	if err := ds.buildTeams(tables.Teams, source); err != nil {
		return nil, err
	}
	return ds, nil
}

func validatePlayer(p players.Player) (valuation.Row, error) {
	if strings.TrimSpace(p.Name) == "" {
		return valuation.Row{}, &domain.DataLoadError{Column: "Name", Err: eris.New("empty player name")}
	}
	if strings.TrimSpace(p.Team) == "" {
		return valuation.Row{}, &domain.DataLoadError{Column: "Team", Err: eris.New("empty team code")}
	}
	if _, ok := players.ParsePosition(string(p.Position)); !ok {
		return valuation.Row{}, &domain.DataLoadError{Column: "Pos", Err: &domain.ConfigError{Field: "position", Value: string(p.Position)}}
	}
	if _, err := valuation.ParseBracket(p.Bracket); err != nil {
		return valuation.Row{}, &domain.DataLoadError{Column: "Sal_class_predict", Err: err}
	}
	if math.IsNaN(p.Probability) || p.Probability < 0 || p.Probability > 1 {
		return valuation.Row{}, &domain.DataLoadError{Column: "Max_proba", Err: eris.Errorf("probability %v outside [0,1]", p.Probability)}
	}
	if math.IsNaN(p.Salary) || math.IsNaN(p.Surplus) {
		return valuation.Row{}, &domain.DataLoadError{Column: "SalFinal", Err: eris.New("salary or surplus is NaN")}
	}
	if _, err := valuation.HeightDisplay(p.Height); err != nil {
		return valuation.Row{}, &domain.DataLoadError{Column: "Height", Err: err}
	}
	return valuation.DeriveRow(p)
}

func (ds *Dataset) buildTeams(items []teams.Team, source string) error {
	totals := valuation.NetSurplusByTeam(ds.playersInOrder())
	ds.teams = make([]teams.Team, 0, len(items))
	for i, t := range items {
		code := strings.TrimSpace(t.Code)
		name := strings.TrimSpace(t.Name)
		if code == "" || name == "" {
			return &domain.DataLoadError{Source: source, Row: i + 1, Column: "Team_Name", Err: eris.New("empty team code or name")}
		}
		if _, dup := ds.nameByCode[code]; dup {
			return &domain.DataLoadError{Source: source, Row: i + 1, Column: "Team", Err: eris.Errorf("duplicate team code %q", code)}
		}
		if _, dup := ds.codeByName[name]; dup {
			return &domain.DataLoadError{Source: source, Row: i + 1, Column: "Team_Name", Err: eris.Errorf("duplicate team name %q", name)}
		}
		ds.nameByCode[code] = name
		ds.codeByName[name] = code

		net := totals[code]
		if math.Abs(net-t.NetSurplus) > surplusTolerance {
			ds.warnings = append(ds.warnings, fmt.Sprintf("team %s net surplus %.2f recomputed as %.2f", code, t.NetSurplus, net))
		}
		ds.teams = append(ds.teams, teams.Team{Code: code, Name: name, NetSurplus: net})
	}

	for _, e := range ds.entries {
		if _, ok := ds.nameByCode[e.Player.Team]; !ok {
			ds.warnings = append(ds.warnings, fmt.Sprintf("player %q has unknown team code %s", e.Player.Name, e.Player.Team))
		}
	}
	return nil
}

func (ds *Dataset) playersInOrder() []players.Player {
	out := make([]players.Player, len(ds.entries))
	for i, e := range ds.entries {
		out[i] = e.Player
	}
	return out
}

// Len returns the number of players.
func (ds *Dataset) Len() int { return len(ds.entries) }

// Entry returns the i-th player in table order.
func (ds *Dataset) Entry(i int) Entry { return ds.entries[i] }

// Index returns the table position of a player name.
func (ds *Dataset) Index(name string) (int, bool) {
	i, ok := ds.byName[name]
	return i, ok
}

// Players returns a copy of all player records in table order.
func (ds *Dataset) Players() []players.Player { return ds.playersInOrder() }

// Teams returns a copy of the team table, aggregates included.
func (ds *Dataset) Teams() []teams.Team {
	out := make([]teams.Team, len(ds.teams))
	copy(out, ds.teams)
	return out
}

// TeamCode resolves a team display name to its short code.
func (ds *Dataset) TeamCode(name string) (string, bool) {
	code, ok := ds.codeByName[name]
	return code, ok
}

// TeamName resolves a short code to the team display name.
func (ds *Dataset) TeamName(code string) (string, bool) {
	name, ok := ds.nameByCode[code]
	return name, ok
}

// Warnings lists non-fatal inconsistencies found while building.
func (ds *Dataset) Warnings() []string {
	out := make([]string, len(ds.warnings))
	copy(out, ds.warnings)
	return out
}

// Source names the source the tables were read from.
func (ds *Dataset) Source() string { return ds.source }

// LoadedAt reports when the tables were built.
func (ds *Dataset) LoadedAt() time.Time { return ds.loadedAt }
