package query

import (
	"strings"

	"github.com/preston-bernstein/hooponomics-service/internal/domain"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
)

// ParsePositions reads a comma-separated position list such as "PG,sg".
// "all" selects every position; a blank list selects none.
func ParsePositions(raw string) ([]players.Position, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "all") {
		return append([]players.Position(nil), players.AllPositions...), nil
	}
	out := []players.Position{}
	if raw == "" {
		return out, nil
	}
	seen := make(map[players.Position]bool)
	for _, part := range strings.Split(raw, ",") {
		code := strings.ToUpper(strings.TrimSpace(part))
		if code == "" {
			continue
		}
		pos, ok := players.ParsePosition(code)
		if !ok {
			return nil, &domain.ConfigError{Field: "position", Value: part}
		}
		if !seen[pos] {
			seen[pos] = true
			out = append(out, pos)
		}
	}
	return out, nil
}
