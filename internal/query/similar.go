package query

import (
	"math"
	"sort"

	"github.com/preston-bernstein/hooponomics-service/internal/valuation"
)

type candidate struct {
	index int
	diff  float64
}

// Similar returns up to n players sharing the reference player's bracket and
// position, closest class probability first. Ties keep table order.
func (e *Engine) Similar(name string, n int) ([]valuation.Row, error) {
	ref, refIdx, err := e.lookup(name)
	if err != nil {
		return nil, err
	}
	out := []valuation.Row{}
	if n <= 0 {
		return out, nil
	}

	var candidates []candidate
	for i := 0; i < e.ds.Len(); i++ {
		if i == refIdx {
			continue
		}
		p := e.ds.Entry(i).Player
		if p.Bracket != ref.Player.Bracket || p.Position != ref.Player.Position {
			continue
		}
		candidates = append(candidates, candidate{index: i, diff: math.Abs(p.Probability - ref.Player.Probability)})
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].diff < candidates[b].diff
	})

	for _, c := range candidates {
		if len(out) == n {
			break
		}
		out = append(out, e.ds.Entry(c.index).Row)
	}
	return out, nil
}
