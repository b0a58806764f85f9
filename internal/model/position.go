package model

// Grain is the key granularity at which positions are derived.
type Grain int

const (
	// GrainAssetClass keys positions by (project, asset class).
	GrainAssetClass Grain = iota
	// GrainProject rolls positions up to one per project.
	GrainProject
)

// PositionKey identifies a position at either grain. AssetClass is empty
// at project grain.
type PositionKey struct {
	ProjectID  string
	AssetClass string
}

// Asset class breakdown buckets used for two-level display at project grain.
const (
	BreakdownEquity = "Equity"
	BreakdownTokens = "Tokens"
	BreakdownOthers = "Others"
)

// AssetClassBreakdown is the per-bucket split of a project-grain position.
type AssetClassBreakdown struct {
	Bucket       string  `json:"bucket"`
	Cost         float64 `json:"cost"`
	UnrealizedMV float64 `json:"unrealizedMarketValue"`
	RealizedMV   float64 `json:"realizedMarketValue"`
}

// TotalMV returns the bucket's combined market value.
func (b AssetClassBreakdown) TotalMV() float64 {
	return b.UnrealizedMV + b.RealizedMV
}

// MOIC returns the bucket's multiple on invested capital, or 0 when there
// is no positive cost basis.
func (b AssetClassBreakdown) MOIC() float64 {
	if b.Cost <= 0 {
		return 0
	}
	return b.TotalMV() / b.Cost
}

// Position is the transient merge of cumulative cost basis and a market
// value snapshot at one key. It is derived fresh per request and never
// persisted.
type Position struct {
	ProjectID    string
	AssetClass   string // empty at project grain
	Cost         float64
	UnrealizedMV float64
	RealizedMV   float64

	// Breakdown is populated at project grain only.
	Breakdown []AssetClassBreakdown
}

// Key returns the position's key at its own grain.
func (p Position) Key() PositionKey {
	return PositionKey{ProjectID: p.ProjectID, AssetClass: p.AssetClass}
}

// TotalMV returns the position's combined market value.
func (p Position) TotalMV() float64 {
	return p.UnrealizedMV + p.RealizedMV
}

// MOIC returns total market value over cost basis. A position without a
// positive cost basis has a MOIC of 0; the ratio is never negative.
func (p Position) MOIC() float64 {
	if p.Cost <= 0 {
		return 0
	}
	return p.TotalMV() / p.Cost
}

// PositionDetail is one drill-down row: a classified position together with
// the project metadata and point attributes used to classify it.
type PositionDetail struct {
	ProjectID        string                `json:"projectId"`
	ProjectName      string                `json:"projectName"`
	AssetClass       string                `json:"assetClass,omitempty"`
	Cost             float64               `json:"cost"`
	UnrealizedMV     float64               `json:"unrealizedMarketValue"`
	RealizedMV       float64               `json:"realizedMarketValue"`
	TotalMV          float64               `json:"totalMarketValue"`
	MOIC             float64               `json:"moic"`
	OwnershipPct     *float64              `json:"overallOwnershipPercentage,omitempty"`
	OverallValuation *float64              `json:"overallValuation,omitempty"`
	Breakdown        []AssetClassBreakdown `json:"breakdown,omitempty"`
}
