package service

import (
	"sort"
	"time"

	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
)

// Rows excluded from position aggregation. "Other Assets" is the cash and
// adjustments placeholder handled by a separate excluded-positions path;
// "Cash" outcome events track fund cash movements, not position cost.
const (
	excludedProjectID   = "Other Assets"
	excludedOutcomeType = "Cash"
	unknownAssetClass   = "Unknown"
)

// ledgerKey returns the aggregation key of a cost event at the requested
// grain. An unreported asset class groups under "Unknown".
func ledgerKey(e model.CostEvent, grain model.Grain) model.PositionKey {
	if grain == model.GrainProject {
		return model.PositionKey{ProjectID: e.ProjectID}
	}

	class := e.AssetClass
	if class == "" {
		class = unknownAssetClass
	}
	return model.PositionKey{ProjectID: e.ProjectID, AssetClass: class}
}

// eligibleCostEvent reports whether an event participates in aggregation:
// not a cash-management event, not the excluded placeholder project, and
// reported on or before the cutoff date (cutoff is inclusive).
func eligibleCostEvent(e model.CostEvent, cutoff time.Time) bool {
	if e.ProjectID == excludedProjectID {
		return false
	}
	if e.OutcomeType == excludedOutcomeType {
		return false
	}
	return !e.DateReported.After(cutoff)
}

// cumulativeCost sums delta costs per key over all eligible events reported
// on or before the cutoff date. Keys with no events are simply absent; the
// merge step defaults them to zero cost.
func cumulativeCost(events []model.CostEvent, cutoff time.Time, grain model.Grain) map[model.PositionKey]float64 {
	costs := make(map[model.PositionKey]float64)

	for _, e := range events {
		if !eligibleCostEvent(e, cutoff) {
			continue
		}
		costs[ledgerKey(e, grain)] += e.DeltaCost
	}

	return costs
}

// pointAttributes resolves the non-additive attributes (established type,
// ownership percentage, overall valuation) per key as the last known value:
// the value from the latest eligible event on or before the cutoff that has
// the attribute set, ties on date broken by the highest row id. Each
// attribute resolves independently, so a newer event that reports only a
// valuation does not blank out an older ownership percentage.
func pointAttributes(events []model.CostEvent, cutoff time.Time, grain model.Grain) map[model.PositionKey]model.PointAttributes {
	ordered := make([]model.CostEvent, 0, len(events))
	for _, e := range events {
		if eligibleCostEvent(e, cutoff) {
			ordered = append(ordered, e)
		}
	}

	// Scan newest first; the first non-null hit per attribute wins.
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].DateReported.Equal(ordered[j].DateReported) {
			return ordered[i].DateReported.After(ordered[j].DateReported)
		}
		return ordered[i].ID > ordered[j].ID
	})

	attrs := make(map[model.PositionKey]model.PointAttributes)

	for _, e := range ordered {
		key := ledgerKey(e, grain)
		a := attrs[key]

		if a.EstablishedType == "" && e.EstablishedType != "" {
			a.EstablishedType = e.EstablishedType
		}
		if a.OwnershipPct == nil && e.OwnershipPct != nil {
			v := *e.OwnershipPct
			a.OwnershipPct = &v
		}
		if a.OverallValuation == nil && e.OverallValuation != nil {
			v := *e.OverallValuation
			a.OverallValuation = &v
		}

		attrs[key] = a
	}

	return attrs
}
