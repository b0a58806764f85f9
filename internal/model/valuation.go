package model

import "time"

// ValuationSnapshot is one point-in-time market value row for a
// (project, asset class) pair. Snapshots are matched on the exact
// portfolio date; multiple rows for the same key and date are summed.
type ValuationSnapshot struct {
	ID            int64     `json:"id"`
	VehicleID     string    `json:"vehicleId"`
	ProjectID     string    `json:"projectId"`
	AssetClass    string    `json:"assetClass"`
	PortfolioDate time.Time `json:"portfolioDate"`
	UnrealizedMV  float64   `json:"unrealizedMarketValue"`
	RealizedMV    float64   `json:"realizedMarketValue"`
}

// MarketValue is the unrealized/realized split of a position's market value.
type MarketValue struct {
	Unrealized float64
	Realized   float64
}
