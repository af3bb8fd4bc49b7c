package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/preston-bernstein/hooponomics-service/internal/domain"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/teams"
)

// CSVSource reads the tables from two CSV files with header rows.
type CSVSource struct {
	PlayersPath string
	TeamsPath   string
}

// NewCSVSource constructs a CSV-backed source.
func NewCSVSource(playersPath, teamsPath string) *CSVSource {
	return &CSVSource{PlayersPath: playersPath, TeamsPath: teamsPath}
}

func (s *CSVSource) Name() string { return "csv" }

// Load decodes both files.
func (s *CSVSource) Load(ctx context.Context) (Tables, error) {
	playerRows, err := decodeCSVFile[players.Player](ctx, s.PlayersPath, PlayerColumns)
	if err != nil {
		return Tables{}, err
	}
	teamRows, err := decodeCSVFile[teams.Team](ctx, s.TeamsPath, TeamColumns)
	if err != nil {
		return Tables{}, err
	}
	return Tables{Players: playerRows, Teams: teamRows}, nil
}

func decodeCSVFile[T any](ctx context.Context, path string, required []string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.DataLoadError{Source: path, Err: eris.Wrap(err, "csv: open")}
	}
	defer f.Close()
	return decodeCSV[T](ctx, f, path, required)
}

// decodeCSV reads every data row of r into T using csv struct tags.
func decodeCSV[T any](ctx context.Context, r io.Reader, source string, required []string) ([]T, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	dec, err := csvutil.NewDecoder(reader)
	if errors.Is(err, io.EOF) {
		return nil, &domain.DataLoadError{Source: source, Err: eris.New("csv: empty table")}
	}
	if err != nil {
		return nil, &domain.DataLoadError{Source: source, Err: eris.Wrap(err, "csv: read header")}
	}
	if missing := missingColumns(dec.Header(), required); len(missing) > 0 {
		return nil, &domain.DataLoadError{
			Source: source,
			Column: missing[0],
			Err:    eris.Errorf("csv: required columns missing: %s", strings.Join(missing, ", ")),
		}
	}

	var out []T
	for row := 1; ; row++ {
		if ctx.Err() != nil {
			return nil, &domain.DataLoadError{Source: source, Err: eris.Wrap(ctx.Err(), "csv: context cancelled")}
		}
		var item T
		err := dec.Decode(&item)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.DataLoadError{
				Source: source,
				Row:    row,
				Column: decodeErrorField(err),
				Err:    eris.Wrap(err, "csv: decode row"),
			}
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil, &domain.DataLoadError{Source: source, Err: eris.New("csv: no data rows")}
	}
	return out, nil
}

func decodeErrorField(err error) string {
	var decErr *csvutil.DecodeError
	if errors.As(err, &decErr) {
		return decErr.Field
	}
	return ""
}
