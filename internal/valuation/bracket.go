// Package valuation derives the display and analytical columns of the
// valuation tables: market-value brackets, salary and surplus labels,
// physical attributes and team aggregates.
package valuation

import (
	"math"
	"strconv"

	"github.com/preston-bernstein/hooponomics-service/internal/domain"
)

// Bracket is a predicted market-value class, expressed as the lower bound in $M.
type Bracket int

const (
	bracketWidth = 5
	// MaxBracket is the open-ended "30+" class.
	MaxBracket Bracket = 30
)

// Brackets lists every valid class in ascending order.
var Brackets = []Bracket{0, 5, 10, 15, 20, 25, 30}

// ParseBracket validates a raw class index against the closed enumeration.
func ParseBracket(idx int) (Bracket, error) {
	if idx < 0 || idx > int(MaxBracket) || idx%bracketWidth != 0 {
		return 0, &domain.ConfigError{Field: "bracket", Value: strconv.Itoa(idx)}
	}
	return Bracket(idx), nil
}

// BracketLabel maps a raw class index to its range label ("20-25", "30+").
func BracketLabel(idx int) (string, error) {
	b, err := ParseBracket(idx)
	if err != nil {
		return "", err
	}
	return b.Label(), nil
}

// Label renders the bracket as a range string.
func (b Bracket) Label() string {
	if b == MaxBracket {
		return strconv.Itoa(int(b)) + "+"
	}
	return strconv.Itoa(int(b)) + "-" + strconv.Itoa(int(b)+bracketWidth)
}

// Range returns the half-open salary range [low, high) in $M.
func (b Bracket) Range() (low, high float64) {
	low = float64(b)
	if b == MaxBracket {
		return low, math.Inf(1)
	}
	return low, low + bracketWidth
}

// Contains reports whether a salary falls inside the bracket.
func (b Bracket) Contains(salary float64) bool {
	low, high := b.Range()
	return salary >= low && salary < high
}

// ExpectedSurplus is the conservative gap between the bracket and a salary:
// zero inside the range, low-salary below it and high-salary above it.
func ExpectedSurplus(b Bracket, salary float64) float64 {
	low, high := b.Range()
	switch {
	case salary < low:
		return low - salary
	case salary >= high:
		return high - salary
	default:
		return 0
	}
}
