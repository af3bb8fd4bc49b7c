// Package query answers lookups and ranked queries over a loaded Dataset.
// Every operation is pure and returns freshly allocated results.
package query

import (
	"strings"

	"github.com/preston-bernstein/hooponomics-service/internal/dataset"
	"github.com/preston-bernstein/hooponomics-service/internal/domain"
	"github.com/preston-bernstein/hooponomics-service/internal/valuation"
)

const (
	// DefaultSimilarLimit is the similarity result size when none is configured.
	DefaultSimilarLimit = 10
	// DefaultRankedLimit is the ranked query size when none is configured.
	DefaultRankedLimit = 5
)

// Engine runs queries against one immutable Dataset.
type Engine struct {
	ds          *dataset.Dataset
	profileBase string
	folded      []string
}

// NewEngine indexes ds for queries. profileBase prefixes player profile paths.
func NewEngine(ds *dataset.Dataset, profileBase string) *Engine {
	folded := make([]string, ds.Len())
	for i := range folded {
		folded[i] = fold(ds.Entry(i).Player.Name)
	}
	return &Engine{ds: ds, profileBase: profileBase, folded: folded}
}

// Dataset exposes the underlying tables.
func (e *Engine) Dataset() *dataset.Dataset { return e.ds }

func (e *Engine) lookup(name string) (dataset.Entry, int, error) {
	i, ok := e.ds.Index(name)
	if !ok {
		return dataset.Entry{}, -1, &domain.NotFoundError{Kind: "player", Key: name}
	}
	return e.ds.Entry(i), i, nil
}

// Player returns the full derived record of a player.
func (e *Engine) Player(name string) (valuation.Detail, error) {
	entry, _, err := e.lookup(name)
	if err != nil {
		return valuation.Detail{}, err
	}
	return valuation.DeriveDetail(entry.Player, entry.Row, e.profileBase)
}

// TeamRoster returns the players of a team, by display name, in table order.
func (e *Engine) TeamRoster(teamName string) ([]valuation.Row, error) {
	code, ok := e.ds.TeamCode(teamName)
	if !ok {
		return nil, &domain.NotFoundError{Kind: "team", Key: teamName}
	}
	out := []valuation.Row{}
	for i := 0; i < e.ds.Len(); i++ {
		entry := e.ds.Entry(i)
		if entry.Player.Team == code {
			out = append(out, entry.Row)
		}
	}
	return out, nil
}

// Teams lists team display names in table order.
func (e *Engine) Teams() []string {
	ts := e.ds.Teams()
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name
	}
	return out
}

// Search returns up to limit player names containing q, ignoring case and
// accents, in table order. An empty q matches every player.
func (e *Engine) Search(q string, limit int) []string {
	out := []string{}
	if limit <= 0 {
		return out
	}
	needle := fold(strings.TrimSpace(q))
	for i, name := range e.folded {
		if !strings.Contains(name, needle) {
			continue
		}
		out = append(out, e.ds.Entry(i).Player.Name)
		if len(out) == limit {
			break
		}
	}
	return out
}
