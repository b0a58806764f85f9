package service

import (
	"time"

	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
)

// Snapshot asset classes that track fund-level flows rather than project
// positions. They are handled by the excluded-positions path.
var excludedSnapshotClasses = map[string]bool{
	"Flows":          true,
	"NAV Adjustment": true,
	"Cash":           true,
}

// snapshotKey returns the aggregation key of a snapshot row at the
// requested grain, normalized the same way as ledger keys so the two
// sides of the merge line up.
func snapshotKey(s model.ValuationSnapshot, grain model.Grain) model.PositionKey {
	if grain == model.GrainProject {
		return model.PositionKey{ProjectID: s.ProjectID}
	}

	class := s.AssetClass
	if class == "" {
		class = unknownAssetClass
	}
	return model.PositionKey{ProjectID: s.ProjectID, AssetClass: class}
}

// valuationAt sums market values per key over all snapshot rows at the
// exact portfolio date. Multiple rows for one key are summed; keys with no
// snapshot are absent and default to zero market value in the merge step.
func valuationAt(snapshots []model.ValuationSnapshot, portfolioDate time.Time, grain model.Grain) map[model.PositionKey]model.MarketValue {
	values := make(map[model.PositionKey]model.MarketValue)

	for _, s := range snapshots {
		if s.ProjectID == excludedProjectID {
			continue
		}
		if excludedSnapshotClasses[s.AssetClass] {
			continue
		}
		if !s.PortfolioDate.Equal(portfolioDate) {
			continue
		}

		key := snapshotKey(s, grain)
		mv := values[key]
		mv.Unrealized += s.UnrealizedMV
		mv.Realized += s.RealizedMV
		values[key] = mv
	}

	return values
}
