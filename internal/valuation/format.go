package valuation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const minSalaryShown = 2.0

// Round1 rounds to one decimal place, half to even.
func Round1(v float64) float64 {
	r := math.RoundToEven(v*10) / 10
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// SalaryDisplay renders a salary in $M: "<2" below two million, else one decimal.
func SalaryDisplay(salary float64) string {
	r := Round1(salary)
	if r < minSalaryShown {
		return "<2"
	}
	return oneDecimal(r)
}

// SurplusDisplay renders a surplus value in $M; an exact zero is "0".
func SurplusDisplay(surplus float64) string {
	r := Round1(surplus)
	if r == 0 {
		return "0"
	}
	return oneDecimal(r)
}

// NetSurplusDisplay renders a team aggregate with one decimal.
func NetSurplusDisplay(v float64) string {
	return oneDecimal(Round1(v))
}

// HeightDisplay converts "6-9" into 6'9".
func HeightDisplay(raw string) (string, error) {
	feet, inches, ok := strings.Cut(strings.TrimSpace(raw), "-")
	if !ok || !isDigits(feet) || !isDigits(inches) {
		return "", fmt.Errorf("height %q not in feet-inches form", raw)
	}
	return feet + "'" + inches + `"`, nil
}

// WeightDisplay appends the pound suffix.
func WeightDisplay(weight int) string {
	return strconv.Itoa(weight) + " lb"
}

// SalaryLabel adds currency to a salary display: "$22.4M", "<$2M".
func SalaryLabel(display string) string {
	if display == "<2" {
		return "<$2M"
	}
	return "$" + display + "M"
}

// MarketValueLabel adds currency to a bracket label: "$20-25M", "$30M+".
func MarketValueLabel(b Bracket) string {
	if b == MaxBracket {
		return "$" + strconv.Itoa(int(b)) + "M+"
	}
	return "$" + b.Label() + "M"
}

// MarketValueLabelFor is MarketValueLabel over a raw class index.
func MarketValueLabelFor(idx int) (string, error) {
	b, err := ParseBracket(idx)
	if err != nil {
		return "", err
	}
	return MarketValueLabel(b), nil
}

// ProfileURL joins the reference site with a player's partial profile path.
func ProfileURL(base, path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
