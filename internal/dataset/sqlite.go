package dataset

import (
	"context"
	"database/sql"
	"os"
	"strings"

	_ "github.com/glebarez/go-sqlite"
	"github.com/rotisserie/eris"

	"github.com/preston-bernstein/hooponomics-service/internal/domain"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/teams"
)

const (
	playersTable = "players"
	teamsTable   = "teams"
)

// SQLiteSource reads the tables from a SQLite database holding "players" and
// "teams" tables with the same column names as the CSV contract.
type SQLiteSource struct {
	Path string
}

// NewSQLiteSource constructs a SQLite-backed source.
func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{Path: path}
}

func (s *SQLiteSource) Name() string { return "sqlite" }

// Load reads both tables in rowid order.
func (s *SQLiteSource) Load(ctx context.Context) (Tables, error) {
	if strings.TrimSpace(s.Path) == "" {
		return Tables{}, &domain.DataLoadError{Source: "sqlite", Err: eris.New("sqlite: path required")}
	}
	if _, err := os.Stat(s.Path); err != nil {
		return Tables{}, &domain.DataLoadError{Source: s.Path, Err: eris.Wrap(err, "sqlite: stat")}
	}
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return Tables{}, &domain.DataLoadError{Source: s.Path, Err: eris.Wrap(err, "sqlite: open")}
	}
	defer db.Close()

	playerRows, err := s.loadPlayers(ctx, db)
	if err != nil {
		return Tables{}, err
	}
	teamRows, err := s.loadTeams(ctx, db)
	if err != nil {
		return Tables{}, err
	}
	return Tables{Players: playerRows, Teams: teamRows}, nil
}

func (s *SQLiteSource) source(table string) string {
	return s.Path + "#" + table
}

func (s *SQLiteSource) checkColumns(ctx context.Context, db *sql.DB, table string, required []string) error {
	rows, err := db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return &domain.DataLoadError{Source: s.source(table), Err: eris.Wrap(err, "sqlite: table info")}
	}
	defer rows.Close()

	var header []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return &domain.DataLoadError{Source: s.source(table), Err: eris.Wrap(err, "sqlite: table info")}
		}
		header = append(header, name)
	}
	if err := rows.Err(); err != nil {
		return &domain.DataLoadError{Source: s.source(table), Err: eris.Wrap(err, "sqlite: table info")}
	}
	if len(header) == 0 {
		return &domain.DataLoadError{Source: s.source(table), Err: eris.Errorf("sqlite: table %s not found", table)}
	}
	if missing := missingColumns(header, required); len(missing) > 0 {
		return &domain.DataLoadError{
			Source: s.source(table),
			Column: missing[0],
			Err:    eris.Errorf("sqlite: required columns missing: %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}

func (s *SQLiteSource) loadPlayers(ctx context.Context, db *sql.DB) ([]players.Player, error) {
	if err := s.checkColumns(ctx, db, playersTable, PlayerColumns); err != nil {
		return nil, err
	}
	query := "SELECT " + strings.Join(PlayerColumns, ", ") + " FROM " + playersTable + " ORDER BY rowid"
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, &domain.DataLoadError{Source: s.source(playersTable), Err: eris.Wrap(err, "sqlite: query players")}
	}
	defer rows.Close()

	var out []players.Player
	for row := 1; rows.Next(); row++ {
		var p players.Player
		var pos string
		if err := rows.Scan(
			&p.Name, &p.Team, &pos, &p.Age, &p.Height, &p.Weight,
			&p.Bracket, &p.Probability, &p.Salary, &p.Surplus, &p.ProfilePath,
		); err != nil {
			return nil, &domain.DataLoadError{Source: s.source(playersTable), Row: row, Err: eris.Wrap(err, "sqlite: scan player")}
		}
		p.Position = players.Position(pos)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.DataLoadError{Source: s.source(playersTable), Err: eris.Wrap(err, "sqlite: read players")}
	}
	if len(out) == 0 {
		return nil, &domain.DataLoadError{Source: s.source(playersTable), Err: eris.New("sqlite: no data rows")}
	}
	return out, nil
}

func (s *SQLiteSource) loadTeams(ctx context.Context, db *sql.DB) ([]teams.Team, error) {
	if err := s.checkColumns(ctx, db, teamsTable, TeamColumns); err != nil {
		return nil, err
	}
	query := "SELECT " + strings.Join(TeamColumns, ", ") + " FROM " + teamsTable + " ORDER BY rowid"
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, &domain.DataLoadError{Source: s.source(teamsTable), Err: eris.Wrap(err, "sqlite: query teams")}
	}
	defer rows.Close()

	var out []teams.Team
	for row := 1; rows.Next(); row++ {
		var t teams.Team
		if err := rows.Scan(&t.Code, &t.Name, &t.NetSurplus); err != nil {
			return nil, &domain.DataLoadError{Source: s.source(teamsTable), Row: row, Err: eris.Wrap(err, "sqlite: scan team")}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.DataLoadError{Source: s.source(teamsTable), Err: eris.Wrap(err, "sqlite: read teams")}
	}
	if len(out) == 0 {
		return nil, &domain.DataLoadError{Source: s.source(teamsTable), Err: eris.New("sqlite: no data rows")}
	}
	return out, nil
}
