package dataset

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/hooponomics-service/internal/domain"
)

// seedSQLite copies the CSV fixtures into a fresh database file.
func seedSQLite(t *testing.T, withTeams bool) string {
	t.Helper()
	tables, err := NewCSVSource(testdataPath("players.csv"), testdataPath("teams.csv")).Load(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "valuation.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE players (
		Name TEXT, Team TEXT, Pos TEXT, Age INTEGER, Height TEXT, Weight INTEGER,
		Sal_class_predict INTEGER, Max_proba REAL, SalFinal REAL, Surplus_value REAL, ID TEXT)`)
	require.NoError(t, err)
	insert := "INSERT INTO players (" + strings.Join(PlayerColumns, ", ") + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	for _, p := range tables.Players {
		_, err = db.Exec(insert, p.Name, p.Team, string(p.Position), p.Age, p.Height, p.Weight,
			p.Bracket, p.Probability, p.Salary, p.Surplus, p.ProfilePath)
		require.NoError(t, err)
	}

	if withTeams {
		_, err = db.Exec(`CREATE TABLE teams (Team TEXT, Team_Name TEXT, Surplus_value REAL)`)
		require.NoError(t, err)
		for _, tm := range tables.Teams {
			_, err = db.Exec("INSERT INTO teams (Team, Team_Name, Surplus_value) VALUES (?, ?, ?)", tm.Code, tm.Name, tm.NetSurplus)
			require.NoError(t, err)
		}
	}
	return path
}

func TestSQLiteSourceMatchesCSV(t *testing.T) {
	csvTables, err := NewCSVSource(testdataPath("players.csv"), testdataPath("teams.csv")).Load(context.Background())
	require.NoError(t, err)

	src := NewSQLiteSource(seedSQLite(t, true))
	assert.Equal(t, "sqlite", src.Name())

	tables, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, csvTables, tables)
}

func TestSQLiteSourceMissingTable(t *testing.T) {
	path := seedSQLite(t, false)

	_, err := NewSQLiteSource(path).Load(context.Background())
	loadErr, ok := domain.AsDataLoadError(err)
	require.True(t, ok, "expected DataLoadError, got %v", err)
	assert.Equal(t, path+"#teams", loadErr.Source)
}

func TestSQLiteSourceMissingFile(t *testing.T) {
	_, err := NewSQLiteSource(filepath.Join(t.TempDir(), "absent.db")).Load(context.Background())
	_, ok := domain.AsDataLoadError(err)
	assert.True(t, ok)

	_, err = NewSQLiteSource("  ").Load(context.Background())
	_, ok = domain.AsDataLoadError(err)
	assert.True(t, ok)
}
