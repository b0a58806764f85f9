package service

import (
	"math"

	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
)

// Asset class and established-type values the classifiers branch on.
const (
	assetClassEquity = "Equity"
	assetClassTokens = "Tokens"

	establishedPrivate = "Private"
	establishedLiquid  = "Liquid"
)

// MOIC performance buckets. "Write Offs" and "Write Off" are both
// no-residual-value outcomes but remain distinct labels: "Write Offs"
// catches positions with zero market value before any multiple is
// computed, while "Write Off" only triggers for positions that fell
// through the multiple ladder first. Historical reports used both
// spellings, so they are preserved rather than merged.
const (
	labelFullyDivested  = "Fully Divested / No Cost Basis"
	labelWriteOffs      = "Write Offs"
	labelGrandSlams     = "Grand Slams"
	labelHomeRun        = "Home Run"
	labelDoublesTriples = "Doubles/Triples"
	labelBaseHit        = "Base Hit"
	labelCost           = "Cost"
	labelWriteOff       = "Write Off"
	labelLoss           = "Loss"
)

// Asset type labels.
const (
	labelLiquid           = "Liquid"
	labelEquityDownrounds = "Equity Downrounds"
	labelEquityUprounds   = "Equity Uprounds"
	labelEquityCost       = "Equity Cost"
	labelTGEdTokens       = "TGEd Tokens (Private)"
	labelNonTGEdTokens    = "Non-TGEd Tokens (Private)"
	labelOtherTokens      = "Other Tokens"
)

// Valuation stage labels.
const (
	labelStagePreSeed = "Early Stage: Pre-Seed"
	labelStageSeed    = "Early Stage: Seed"
	labelStageSeriesA = "Mid Stage: Series A"
	labelStageSeriesB = "Late Stage: Series B"
	labelStageGrowth  = "Late Stage: Growth"
	labelStageUnknown = "Unknown"
)

// labelUncategorized groups projects whose selected metadata field is empty.
const labelUncategorized = "Uncategorized"

// classifierInput bundles a position with the project metadata and point
// attributes its classification may read.
type classifierInput struct {
	Position model.Position
	Attrs    model.PointAttributes
	Meta     model.ProjectMeta
}

// classificationRule is one (predicate, label) pair. Rule sets are
// evaluated top to bottom and the first match wins, so rule order is
// load-bearing: reordering changes which label a position receives.
type classificationRule struct {
	label func(classifierInput) string
	match func(classifierInput) bool
}

func staticLabel(label string) func(classifierInput) string {
	return func(classifierInput) string { return label }
}

func firstMatch(rules []classificationRule, in classifierInput) string {
	for _, rule := range rules {
		if rule.match(in) {
			return rule.label(in)
		}
	}
	return "" // unreachable: every rule set ends in a catch-all
}

// moicBucketRules grade a position by its multiple on invested capital.
// Positions without a positive cost basis short-circuit before any ratio
// is computed, so MOIC is never a division by zero or a negative ratio.
var moicBucketRules = []classificationRule{
	{staticLabel(labelFullyDivested), func(in classifierInput) bool {
		return in.Position.Cost <= 0
	}},
	{staticLabel(labelWriteOffs), func(in classifierInput) bool {
		return in.Position.UnrealizedMV == 0 && in.Position.RealizedMV == 0
	}},
	{staticLabel(labelGrandSlams), func(in classifierInput) bool {
		return in.Position.MOIC() >= 10
	}},
	{staticLabel(labelHomeRun), func(in classifierInput) bool {
		return in.Position.MOIC() >= 5
	}},
	{staticLabel(labelDoublesTriples), func(in classifierInput) bool {
		return in.Position.MOIC() >= 2
	}},
	{staticLabel(labelBaseHit), func(in classifierInput) bool {
		return in.Position.MOIC() > 1
	}},
	{staticLabel(labelCost), func(in classifierInput) bool {
		return in.Position.MOIC() >= 0.95
	}},
	{staticLabel(labelWriteOff), func(in classifierInput) bool {
		return in.Position.TotalMV() == 0
	}},
	{staticLabel(labelLoss), func(classifierInput) bool {
		return true
	}},
}

// assetTypeRules split positions by instrument: liquid holdings first,
// then equity by round direction, then private tokens by TGE status.
// Anything else lands in a dynamic Other(<asset class>) bucket.
var assetTypeRules = []classificationRule{
	{staticLabel(labelLiquid), func(in classifierInput) bool {
		return in.Attrs.EstablishedType == establishedLiquid
	}},
	{staticLabel(labelEquityDownrounds), func(in classifierInput) bool {
		return in.Position.AssetClass == assetClassEquity && in.Position.UnrealizedMV < in.Position.Cost
	}},
	{staticLabel(labelEquityUprounds), func(in classifierInput) bool {
		return in.Position.AssetClass == assetClassEquity && in.Position.UnrealizedMV > in.Position.Cost
	}},
	{staticLabel(labelEquityCost), func(in classifierInput) bool {
		return in.Position.AssetClass == assetClassEquity
	}},
	{staticLabel(labelTGEdTokens), func(in classifierInput) bool {
		return in.Position.AssetClass == assetClassTokens &&
			in.Meta.CoingeckoID != "" &&
			in.Attrs.EstablishedType == establishedPrivate
	}},
	{staticLabel(labelNonTGEdTokens), func(in classifierInput) bool {
		return in.Position.AssetClass == assetClassTokens &&
			in.Meta.CoingeckoID == "" &&
			in.Attrs.EstablishedType == establishedPrivate
	}},
	{staticLabel(labelOtherTokens), func(in classifierInput) bool {
		return in.Position.AssetClass == assetClassTokens
	}},
	{func(in classifierInput) string {
		return "Other(" + in.Position.AssetClass + ")"
	}, func(classifierInput) bool {
		return true
	}},
}

// valuationStageBands map the last known overall valuation to a stage.
// Upper bounds are exclusive and evaluated in ascending order.
var valuationStageBands = []struct {
	label      string
	upperBound float64 // exclusive
}{
	{labelStagePreSeed, 25_000_000},
	{labelStageSeed, 50_000_000},
	{labelStageSeriesA, 150_000_000},
	{labelStageSeriesB, 250_000_000},
	{labelStageGrowth, math.Inf(1)},
}

func classifyValuationStage(overallValuation *float64) string {
	if overallValuation == nil {
		return labelStageUnknown
	}
	for _, band := range valuationStageBands {
		if *overallValuation < band.upperBound {
			return band.label
		}
	}
	return labelStageUnknown
}

func classifyCategory(meta model.ProjectMeta, field model.CategoryField) string {
	value := meta.CategoryValue(field)
	if value == "" {
		return labelUncategorized
	}
	return value
}

// classify maps one position to its label in the selected taxonomy. The
// rollup aggregator and the drill-down provider both go through this one
// function, so the two views can never disagree on group membership.
func classify(sel model.TaxonomySelector, in classifierInput) string {
	switch sel.Taxonomy {
	case model.TaxonomyMOICBucket:
		return firstMatch(moicBucketRules, in)
	case model.TaxonomyAssetType:
		return firstMatch(assetTypeRules, in)
	case model.TaxonomyValuationStage:
		return classifyValuationStage(in.Attrs.OverallValuation)
	case model.TaxonomyCategory:
		return classifyCategory(in.Meta, sel.CategoryField)
	}
	return "" // unreachable: selectors are validated before classification
}
