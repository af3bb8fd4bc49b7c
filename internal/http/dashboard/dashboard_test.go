package dashboard

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/hooponomics-service/internal/app"
	appplayers "github.com/preston-bernstein/hooponomics-service/internal/app/players"
	appteams "github.com/preston-bernstein/hooponomics-service/internal/app/teams"
	"github.com/preston-bernstein/hooponomics-service/internal/dataset"
	"github.com/preston-bernstein/hooponomics-service/internal/domain"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
	"github.com/preston-bernstein/hooponomics-service/internal/store"
	"github.com/preston-bernstein/hooponomics-service/internal/testutil"
	"github.com/preston-bernstein/hooponomics-service/internal/valuation"
)

func newHandler(cache *store.Cache) *Handler {
	engines := app.NewEngines(cache, "https://www.basketball-reference.com")
	return NewHandler(
		appplayers.NewService(engines, appplayers.Limits{}, nil, nil),
		appteams.NewService(engines, nil, nil),
		nil,
	)
}

func rowNames(rows []valuation.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func buildFor(t *testing.T, target string) PageData {
	t.Helper()
	h := newHandler(testutil.NewLoadedCache())
	req := httptest.NewRequest(http.MethodGet, target, nil)
	data, err := h.build(req.Context(), req)
	require.NoError(t, err)
	return data
}

func TestBuildDefaults(t *testing.T) {
	data := buildFor(t, "/")

	assert.Equal(t, "Nikola Jokić", data.Player)
	require.NotNil(t, data.Detail)
	assert.Equal(t, "https://www.basketball-reference.com/players/j/jokicni01.html", data.Detail.ProfileURL)
	assert.Equal(t, "Denver Nuggets", data.Team)
	assert.Equal(t, []string{"Nikola Jokić", "Jamal Murray", "Christian Braun", "Aaron Gordon"}, rowNames(data.Roster))
	assert.Equal(t, DefaultCount, data.Count)
	assert.True(t, data.AllPos)
	assert.Equal(t, []string{"Christian Braun", "Dereck Lively II", "Jalen Brunson", "Miles McBride"}, rowNames(data.Undervalued))
	assert.Equal(t, []string{"Jamal Murray", "Tim Hardaway Jr.", "Julius Randle"}, rowNames(data.Overvalued))
	require.Len(t, data.TeamSurplus, 3)
	assert.Equal(t, "New York Knicks", data.TeamSurplus[0].Team)
	assert.Len(t, data.Players, 12)
}

func TestBuildSelectedPlayerAndTeam(t *testing.T) {
	data := buildFor(t, "/?player=Jalen+Brunson&team=Dallas+Mavericks")

	assert.Equal(t, []string{"Kyrie Irving", "Luka Dončić"}, rowNames(data.Similar))
	assert.Equal(t, []string{"Luka Dončić", "Dereck Lively II", "Tim Hardaway Jr.", "Kyrie Irving"}, rowNames(data.Roster))
}

func TestBuildPositionFilterAndCount(t *testing.T) {
	data := buildFor(t, "/?explore=1&pos=C&pos=SG&count=10")

	assert.False(t, data.AllPos)
	assert.Equal(t, map[players.Position]bool{players.Center: true, players.ShootingGuard: true}, data.Selected)
	assert.Equal(t, 10, data.Count)
	assert.Equal(t, []string{"Christian Braun", "Dereck Lively II", "Miles McBride"}, rowNames(data.Undervalued))
	assert.Empty(t, data.Overvalued)
}

func TestBuildSubmittedWithoutPositionsIsEmpty(t *testing.T) {
	data := buildFor(t, "/?explore=1")

	assert.Empty(t, data.Undervalued)
	assert.Empty(t, data.Overvalued)
}

func TestBuildZeroCount(t *testing.T) {
	data := buildFor(t, "/?count=0")

	assert.Empty(t, data.Undervalued)
	assert.Empty(t, data.Overvalued)
}

func TestServeRendersPage(t *testing.T) {
	h := newHandler(testutil.NewLoadedCache())
	rr := testutil.Serve(h, http.MethodGet, "/?player=Jalen+Brunson", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	body := rr.Body.String()
	assert.Contains(t, body, "Hooponomics: The NBA Player Value Predictor")
	assert.Contains(t, body, "earned a salary of")
	assert.Contains(t, body, "Most Similar Players:")
	assert.Contains(t, body, "Net Surplus Value by Team")
	for _, g := range Guide {
		assert.Contains(t, body, g.Title[:10])
	}
}

func TestServeErrors(t *testing.T) {
	cases := []struct {
		name   string
		target string
		status int
		text   string
	}{
		{"unknown player", "/?player=Nobody", http.StatusNotFound, "player not found"},
		{"unknown team", "/?team=Seattle", http.StatusNotFound, "team not found"},
		{"bad count", "/?count=7", http.StatusBadRequest, "invalid count"},
		{"bad position", "/?explore=1&pos=QB", http.StatusBadRequest, "invalid positions"},
	}
	h := newHandler(testutil.NewLoadedCache())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := testutil.Serve(h, http.MethodGet, tc.target, nil)
			testutil.AssertStatus(t, rr, tc.status)
			assert.Contains(t, rr.Body.String(), tc.text)
		})
	}
}

func TestServeLoadFailure(t *testing.T) {
	loadErr := &domain.DataLoadError{Source: "csv", Err: errors.New("missing file")}
	loader := dataset.NewLoader(testutil.ErrSource{Err: loadErr}, nil, nil)
	h := newHandler(store.NewCache(loader.Load))

	rr := testutil.Serve(h, http.MethodGet, "/", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	assert.Contains(t, rr.Body.String(), "dataset unavailable")
}

func TestPageEscapesText(t *testing.T) {
	var buf bytes.Buffer
	err := Page(PageData{Error: "<script>alert(1)</script>"}).Render(context.Background(), &buf)

	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func renderPage(t *testing.T, data PageData) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Page(data).Render(context.Background(), &buf))
	return buf.String()
}

func TestPageMarksSelectionAndSurplus(t *testing.T) {
	row := valuation.Row{Name: "Jalen Brunson", Team: "New York Knicks", Position: "PG", Age: 28, SurplusValue: "+12.5", SurplusClass: valuation.SurplusPositive}
	body := renderPage(t, PageData{
		Players:     []string{"Jalen Brunson", "Julius Randle"},
		Player:      "Jalen Brunson",
		Teams:       []string{"New York Knicks"},
		Team:        "New York Knicks",
		Roster:      []valuation.Row{row},
		Count:       10,
		Selected:    map[players.Position]bool{players.Center: true},
		TeamSurplus: []valuation.TeamSurplusRow{{Team: "New York Knicks", Display: "-3.1", SurplusClass: valuation.SurplusNegative}},
	})

	assert.Contains(t, body, `<option selected>Jalen Brunson</option>`)
	assert.Contains(t, body, `<option>Julius Randle</option>`)
	assert.Contains(t, body, `<option selected>10</option>`)
	assert.Contains(t, body, `value="C" checked>`)
	assert.NotContains(t, body, `value="all" checked>`)
	assert.Contains(t, body, `<td style="background:lightgreen;">+12.5</td>`)
	assert.Contains(t, body, `<td style="background:lightpink;">-3.1</td>`)
}

func TestPageEmptyTableAndProfileLink(t *testing.T) {
	detail := &valuation.Detail{
		Row:        valuation.Row{Name: "Nikola Jokić"},
		ProfileURL: "javascript:alert(1)",
	}
	body := renderPage(t, PageData{Detail: detail})

	assert.Contains(t, body, "No players")
	assert.NotContains(t, body, "javascript:")
	assert.Contains(t, body, string(templ.FailedSanitizationURL))
}
