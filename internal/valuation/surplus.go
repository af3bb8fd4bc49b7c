package valuation

import "strings"

// SurplusClass buckets a surplus display value for presentation.
type SurplusClass string

const (
	SurplusZero     SurplusClass = "zero"
	SurplusNegative SurplusClass = "negative"
	SurplusPositive SurplusClass = "positive"
)

// ClassifySurplus maps a rendered surplus ("0", "-3.2", "4.0") to its class.
func ClassifySurplus(display string) SurplusClass {
	switch {
	case display == "0" || display == "":
		return SurplusZero
	case strings.HasPrefix(display, "-"):
		return SurplusNegative
	default:
		return SurplusPositive
	}
}

// Color returns the cell background used by the dashboard tables.
func (c SurplusClass) Color() string {
	switch c {
	case SurplusNegative:
		return "lightpink"
	case SurplusPositive:
		return "lightgreen"
	default:
		return "azure"
	}
}
