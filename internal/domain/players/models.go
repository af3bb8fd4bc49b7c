package players

// Position is one of the five roster positions.
type Position string

const (
	PointGuard    Position = "PG"
	ShootingGuard Position = "SG"
	SmallForward  Position = "SF"
	PowerForward  Position = "PF"
	Center        Position = "C"
)

// AllPositions lists positions in display order.
var AllPositions = []Position{PointGuard, ShootingGuard, SmallForward, PowerForward, Center}

// ParsePosition validates a raw position code.
func ParsePosition(raw string) (Position, bool) {
	for _, p := range AllPositions {
		if string(p) == raw {
			return p, true
		}
	}
	return "", false
}

// Player is the typed record for one row of the players table.
// Bracket, Probability, Salary and Surplus are model outputs produced upstream.
type Player struct {
	Name        string   `csv:"Name" json:"name"`
	Team        string   `csv:"Team" json:"team"`
	Position    Position `csv:"Pos" json:"position"`
	Age         int      `csv:"Age" json:"age"`
	Height      string   `csv:"Height" json:"height"`
	Weight      int      `csv:"Weight" json:"weight"`
	Bracket     int      `csv:"Sal_class_predict" json:"bracket"`
	Probability float64  `csv:"Max_proba" json:"probability"`
	Salary      float64  `csv:"SalFinal" json:"salary"`
	Surplus     float64  `csv:"Surplus_value" json:"surplus"`
	ProfilePath string   `csv:"ID" json:"profilePath"`
}
