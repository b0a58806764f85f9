package model

import "time"

// CostEvent is one reported change in cost basis for a project position.
// Events are append-only; cost basis as of a date is the sum of DeltaCost
// over all events reported on or before that date.
type CostEvent struct {
	ID           int64     `json:"id"`
	VehicleID    string    `json:"vehicleId"`
	ProjectID    string    `json:"projectId"`
	AssetClass   string    `json:"assetClass"` // empty when not reported
	DateReported time.Time `json:"dateReported"`
	DeltaCost    float64   `json:"deltaCost"`

	// Optional reporting attributes. OutcomeType "Cash" marks cash-management
	// events that are excluded from position aggregation.
	OutcomeType      string   `json:"outcomeType,omitempty"`
	EstablishedType  string   `json:"establishedType,omitempty"` // "Private", "Liquid" or "Established"
	OwnershipPct     *float64 `json:"overallOwnershipPercentage,omitempty"`
	OverallValuation *float64 `json:"overallValuation,omitempty"`
}

// PointAttributes holds the non-additive attributes of a position, resolved
// per key as the last known (most recently reported, non-null) value on or
// before the cutoff date.
type PointAttributes struct {
	EstablishedType  string
	OwnershipPct     *float64
	OverallValuation *float64
}
