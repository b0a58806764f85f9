package model

// Vehicle is one investment vehicle (a fund) whose positions are monitored.
type Vehicle struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// VehicleOverview is the per-vehicle summary shown on the card grid.
type VehicleOverview struct {
	VehicleID    string  `json:"vehicleId"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	ProjectCount int     `json:"projectCount"`
	Cost         float64 `json:"cost"`
	RealizedMV   float64 `json:"realizedMarketValue"`
	UnrealizedMV float64 `json:"unrealizedMarketValue"`
	TotalMV      float64 `json:"totalMarketValue"`
	MOIC         float64 `json:"moic"`
}
