package model

// Taxonomy selects one of the four classification dimensions.
type Taxonomy string

const (
	TaxonomyMOICBucket     Taxonomy = "moic"
	TaxonomyAssetType      Taxonomy = "asset_type"
	TaxonomyValuationStage Taxonomy = "valuation_stage"
	TaxonomyCategory       Taxonomy = "category"
)

// Grain returns the grain a taxonomy classifies at. Asset type reads the
// asset class directly and therefore works per (project, asset class);
// the other three classify whole projects.
func (t Taxonomy) Grain() Grain {
	if t == TaxonomyAssetType {
		return GrainAssetClass
	}
	return GrainProject
}

// CategoryField selects which project metadata field drives the category
// taxonomy.
type CategoryField string

const (
	CategoryFieldStack  CategoryField = "stack"
	CategoryFieldTag    CategoryField = "tag"
	CategoryFieldSubTag CategoryField = "sub_tag"
)

// TaxonomySelector is the caller's choice of taxonomy plus, for the
// category taxonomy, the metadata field to group by.
type TaxonomySelector struct {
	Taxonomy      Taxonomy
	CategoryField CategoryField
}

// TotalRowLabel is the label of the synthetic summary row appended after
// all classified rows. It is never produced by a classifier and is not
// drillable.
const TotalRowLabel = "TOTAL"

// RollupRow is one aggregated group of positions sharing a classification
// label, with percentage-of-grand-total figures for display.
type RollupRow struct {
	Label         string  `json:"label"`
	Count         int     `json:"count"`
	Cost          float64 `json:"cost"`
	RealizedMV    float64 `json:"realizedMarketValue"`
	UnrealizedMV  float64 `json:"unrealizedMarketValue"`
	TotalMV       float64 `json:"totalMarketValue"`
	MOIC          float64 `json:"moic"`
	PctCount      float64 `json:"pctCount"`
	PctCost       float64 `json:"pctCost"`
	PctRealized   float64 `json:"pctRealized"`
	PctUnrealized float64 `json:"pctUnrealized"`
}
