package dataset

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/hooponomics-service/internal/domain"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/teams"
	"github.com/preston-bernstein/hooponomics-service/internal/metrics"
)

var loadedAt = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func fixtureTables(t *testing.T) Tables {
	t.Helper()
	tables, err := NewCSVSource(testdataPath("players.csv"), testdataPath("teams.csv")).Load(context.Background())
	require.NoError(t, err)
	return tables
}

func TestBuildDerivesRowsAndTeams(t *testing.T) {
	ds, err := Build(fixtureTables(t), "csv", loadedAt)
	require.NoError(t, err)

	assert.Equal(t, 12, ds.Len())
	assert.Equal(t, "csv", ds.Source())
	assert.Equal(t, loadedAt, ds.LoadedAt())
	assert.Empty(t, ds.Warnings())

	i, ok := ds.Index("Miles McBride")
	require.True(t, ok)
	row := ds.Entry(i).Row
	assert.Equal(t, "<2", row.Salary)
	assert.Equal(t, "5-10", row.MarketValue)
	assert.Equal(t, "3.7", row.SurplusValue)
	assert.Equal(t, `6'2"`, row.Height)
	assert.Equal(t, "195 lb", row.Weight)

	code, ok := ds.TeamCode("New York Knicks")
	require.True(t, ok)
	assert.Equal(t, "NYK", code)
	name, ok := ds.TeamName("DAL")
	require.True(t, ok)
	assert.Equal(t, "Dallas Mavericks", name)

	byCode := map[string]float64{}
	for _, tm := range ds.Teams() {
		byCode[tm.Code] = tm.NetSurplus
	}
	assert.InDelta(t, 4.2, byCode["NYK"], 1e-9)
	assert.InDelta(t, -1.0, byCode["DAL"], 1e-9)
	assert.InDelta(t, -1.9, byCode["DEN"], 1e-9)
}

func TestBuildReturnsCopies(t *testing.T) {
	ds, err := Build(fixtureTables(t), "csv", loadedAt)
	require.NoError(t, err)

	ps := ds.Players()
	ps[0].Name = "mutated"
	ts := ds.Teams()
	ts[0].Name = "mutated"

	assert.Equal(t, "Nikola Jokić", ds.Players()[0].Name)
	assert.Equal(t, "Denver Nuggets", ds.Teams()[0].Name)
}

func TestBuildRejectsInvalidRows(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tables)
		column string
		row    int
	}{
		{"unknown bracket", func(tb *Tables) { tb.Players[4].Bracket = 17 }, "Sal_class_predict", 5},
		{"unknown position", func(tb *Tables) { tb.Players[1].Position = "G" }, "Pos", 2},
		{"probability above one", func(tb *Tables) { tb.Players[0].Probability = 1.2 }, "Max_proba", 1},
		{"bad height", func(tb *Tables) { tb.Players[2].Height = "six" }, "Height", 3},
		{"empty name", func(tb *Tables) { tb.Players[3].Name = " " }, "Name", 4},
		{"duplicate name", func(tb *Tables) { tb.Players[5].Name = tb.Players[0].Name }, "Name", 6},
		{"duplicate team code", func(tb *Tables) { tb.Teams[2].Code = "DEN" }, "Team", 3},
		{"duplicate team name", func(tb *Tables) { tb.Teams[1].Name = "Denver Nuggets" }, "Team_Name", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tables := fixtureTables(t)
			tc.mutate(&tables)

			ds, err := Build(tables, "csv", loadedAt)
			require.Nil(t, ds)
			loadErr, ok := domain.AsDataLoadError(err)
			require.True(t, ok, "expected DataLoadError, got %v", err)
			assert.Equal(t, tc.column, loadErr.Column)
			assert.Equal(t, tc.row, loadErr.Row)
			assert.Equal(t, "csv", loadErr.Source)
		})
	}
}

func TestBuildBracketErrorCarriesConfigError(t *testing.T) {
	tables := fixtureTables(t)
	tables.Players[0].Bracket = 35

	_, err := Build(tables, "csv", loadedAt)
	cfgErr, ok := domain.AsConfigError(err)
	require.True(t, ok)
	assert.Equal(t, "35", cfgErr.Value)
}

func TestBuildWarnsOnInconsistencies(t *testing.T) {
	tables := fixtureTables(t)
	tables.Players[1].Surplus = -2.0
	tables.Players = append(tables.Players, players.Player{
		Name: "Free Agent", Team: "FA", Position: players.SmallForward, Height: "6-7",
		Bracket: 0, Probability: 0.3, Salary: 1.1, Surplus: 0,
	})
	tables.Teams = append(tables.Teams, teams.Team{Code: "BOS", Name: "Boston Celtics", NetSurplus: 12})

	ds, err := Build(tables, "csv", loadedAt)
	require.NoError(t, err)

	warnings := ds.Warnings()
	require.Len(t, warnings, 4)
	assert.Contains(t, warnings[0], "Jamal Murray")
	assert.Contains(t, warnings[1], "team DEN")
	assert.Contains(t, warnings[2], "team BOS")
	assert.Contains(t, warnings[3], "Free Agent")

	for _, tm := range ds.Teams() {
		if tm.Code == "BOS" {
			assert.Zero(t, tm.NetSurplus)
		}
	}
}

func TestLoaderLogsAndRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	recorder := metrics.NewRecorder()

	loader := NewLoader(NewCSVSource(testdataPath("players.csv"), testdataPath("teams.csv")), logger, recorder)
	assert.Equal(t, "csv", loader.SourceName())

	ds, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, ds.Len())
	assert.Contains(t, buf.String(), "dataset loaded")

	stats := recorder.LoadStats("csv")
	assert.Equal(t, 1, stats.Loads)
	assert.Equal(t, 12, stats.LastRows)
	assert.Zero(t, stats.Errors)
}

func TestLoaderFailureIsRecorded(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	recorder := metrics.NewRecorder()

	loader := NewLoader(NewCSVSource(testdataPath("players_bad_bracket.csv"), testdataPath("teams.csv")), logger, recorder)
	ds, err := loader.Load(context.Background())
	require.Nil(t, ds)
	var cfgErr *domain.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, buf.String(), "dataset load failed")
	assert.Equal(t, 1, recorder.LoadStats("csv").Errors)
}

func TestLoaderNilCollaborators(t *testing.T) {
	var l *Loader
	assert.Equal(t, "", l.SourceName())

	loader := NewLoader(NewCSVSource(testdataPath("players.csv"), testdataPath("teams.csv")), nil, nil)
	_, err := loader.Load(context.Background())
	assert.NoError(t, err)
}
