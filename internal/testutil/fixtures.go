package testutil

import (
	"testing"
	"time"

	"github.com/preston-bernstein/hooponomics-service/internal/dataset"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/teams"
)

// SampleLoadedAt is the load time stamped on sample datasets.
var SampleLoadedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// SamplePlayer returns a minimal valid player on the given team.
func SamplePlayer(name, team string, pos players.Position, bracket int, probability, salary, surplus float64) players.Player {
	return players.Player{
		Name:        name,
		Team:        team,
		Position:    pos,
		Age:         25,
		Height:      "6-6",
		Weight:      210,
		Bracket:     bracket,
		Probability: probability,
		Salary:      salary,
		Surplus:     surplus,
		ProfilePath: "/players/x/" + name + ".html",
	}
}

// SampleTables mirrors data/app_dfplayers.csv and data/app_dfteams.csv.
func SampleTables() dataset.Tables {
	p := func(name, team string, pos players.Position, age int, height string, weight, bracket int, prob, salary, surplus float64, id string) players.Player {
		return players.Player{
			Name: name, Team: team, Position: pos, Age: age, Height: height, Weight: weight,
			Bracket: bracket, Probability: prob, Salary: salary, Surplus: surplus, ProfilePath: id,
		}
	}
	return dataset.Tables{
		Players: []players.Player{
			p("Nikola Jokić", "DEN", players.Center, 29, "6-11", 284, 30, 0.91, 47.6, 0, "/players/j/jokicni01.html"),
			p("Jamal Murray", "DEN", players.PointGuard, 27, "6-4", 215, 20, 0.55, 33.8, -8.8, "/players/m/murraja01.html"),
			p("Christian Braun", "DEN", players.ShootingGuard, 23, "6-6", 218, 10, 0.48, 3.1, 6.9, "/players/b/braunch01.html"),
			p("Jalen Brunson", "NYK", players.PointGuard, 27, "6-2", 190, 30, 0.83, 26.3, 3.7, "/players/b/brunsja01.html"),
			p("Josh Hart", "NYK", players.SmallForward, 29, "6-4", 215, 15, 0.42, 18.1, 0, "/players/h/hartjo01.html"),
			p("Julius Randle", "NYK", players.PowerForward, 29, "6-8", 250, 20, 0.51, 28.2, -3.2, "/players/r/randlju01.html"),
			p("Miles McBride", "NYK", players.ShootingGuard, 23, "6-2", 195, 5, 0.67, 1.3, 3.7, "/players/m/mcbrimi01.html"),
			p("Luka Dončić", "DAL", players.PointGuard, 25, "6-7", 230, 30, 0.97, 40.1, 0, "/players/d/doncilu01.html"),
			p("Dereck Lively II", "DAL", players.Center, 20, "7-1", 230, 10, 0.44, 4.8, 5.2, "/players/l/livelde01.html"),
			p("Tim Hardaway Jr.", "DAL", players.SmallForward, 32, "6-5", 205, 5, 0.58, 16.2, -6.2, "/players/h/hardati02.html"),
			p("Kyrie Irving", "DAL", players.PointGuard, 32, "6-2", 195, 30, 0.74, 37.0, 0, "/players/i/irvinky01.html"),
			p("Aaron Gordon", "DEN", players.PowerForward, 28, "6-8", 235, 20, 0.62, 22.3, 0, "/players/g/gordoaa01.html"),
		},
		Teams: []teams.Team{
			{Code: "DEN", Name: "Denver Nuggets", NetSurplus: -1.9},
			{Code: "NYK", Name: "New York Knicks", NetSurplus: 4.2},
			{Code: "DAL", Name: "Dallas Mavericks", NetSurplus: -1.0},
		},
	}
}

// SampleDataset builds the sample tables, failing the test on error.
func SampleDataset(t testing.TB) *dataset.Dataset {
	t.Helper()
	return MustBuild(t, SampleTables())
}

// MustBuild builds arbitrary tables, failing the test on error.
func MustBuild(t testing.TB, tables dataset.Tables) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Build(tables, "test", SampleLoadedAt)
	if err != nil {
		t.Fatalf("failed to build dataset: %v", err)
	}
	return ds
}
