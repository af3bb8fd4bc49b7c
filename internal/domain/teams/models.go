package teams

// Team is the typed record for one row of the teams table.
// NetSurplus is recomputed from the roster at load time.
type Team struct {
	Code       string  `csv:"Team" json:"code"`
	Name       string  `csv:"Team_Name" json:"name"`
	NetSurplus float64 `csv:"Surplus_value" json:"netSurplus"`
}
