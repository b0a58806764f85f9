package service

import (
	"sort"

	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
)

// mergePositions full-outer-joins the cost and valuation maps over the
// union of their keys. A key present on only one side still yields a
// position, with the missing side defaulting to zero. The merge is a plain
// in-memory join so it stays independently testable; no query-level outer
// join is involved.
//
// The result is sorted by (project, asset class) so repeated invocations
// over the same inputs produce identical output.
func mergePositions(costs map[model.PositionKey]float64, values map[model.PositionKey]model.MarketValue) []model.Position {
	keys := make(map[model.PositionKey]struct{}, len(costs)+len(values))
	for k := range costs {
		keys[k] = struct{}{}
	}
	for k := range values {
		keys[k] = struct{}{}
	}

	positions := make([]model.Position, 0, len(keys))
	for k := range keys {
		mv := values[k]
		positions = append(positions, model.Position{
			ProjectID:    k.ProjectID,
			AssetClass:   k.AssetClass,
			Cost:         costs[k],
			UnrealizedMV: mv.Unrealized,
			RealizedMV:   mv.Realized,
		})
	}

	sort.Slice(positions, func(i, j int) bool {
		if positions[i].ProjectID != positions[j].ProjectID {
			return positions[i].ProjectID < positions[j].ProjectID
		}
		return positions[i].AssetClass < positions[j].AssetClass
	})

	return positions
}

// assetClassBucket maps a raw asset class to its two-level display bucket.
func assetClassBucket(class string) string {
	switch class {
	case assetClassEquity:
		return model.BreakdownEquity
	case assetClassTokens:
		return model.BreakdownTokens
	default:
		return model.BreakdownOthers
	}
}

var breakdownRank = map[string]int{
	model.BreakdownEquity: 0,
	model.BreakdownTokens: 1,
	model.BreakdownOthers: 2,
}

// rollupToProject sums asset-class grain positions into one position per
// project, carrying a per-bucket (Equity / Tokens / Others) breakdown for
// two-level display. Input order is preserved per project, so sorted input
// yields sorted output.
func rollupToProject(positions []model.Position) []model.Position {
	byProject := make(map[string]*model.Position)
	order := []string{}

	for _, p := range positions {
		agg, ok := byProject[p.ProjectID]
		if !ok {
			agg = &model.Position{ProjectID: p.ProjectID}
			byProject[p.ProjectID] = agg
			order = append(order, p.ProjectID)
		}

		agg.Cost += p.Cost
		agg.UnrealizedMV += p.UnrealizedMV
		agg.RealizedMV += p.RealizedMV

		bucket := assetClassBucket(p.AssetClass)
		idx := -1
		for i := range agg.Breakdown {
			if agg.Breakdown[i].Bucket == bucket {
				idx = i
				break
			}
		}
		if idx == -1 {
			agg.Breakdown = append(agg.Breakdown, model.AssetClassBreakdown{Bucket: bucket})
			idx = len(agg.Breakdown) - 1
		}
		agg.Breakdown[idx].Cost += p.Cost
		agg.Breakdown[idx].UnrealizedMV += p.UnrealizedMV
		agg.Breakdown[idx].RealizedMV += p.RealizedMV
	}

	result := make([]model.Position, 0, len(order))
	for _, projectID := range order {
		agg := byProject[projectID]
		sort.SliceStable(agg.Breakdown, func(i, j int) bool {
			return breakdownRank[agg.Breakdown[i].Bucket] < breakdownRank[agg.Breakdown[j].Bucket]
		})
		result = append(result, *agg)
	}

	return result
}
