package service

import (
	"sort"

	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
)

// Display rank tables. Rollup rows are sorted by these fixed priorities;
// labels not in the table (the dynamic Other(<asset class>) buckets) sort
// after all ranked labels, alphabetically.
var moicBucketRank = map[string]int{
	labelGrandSlams:     0,
	labelHomeRun:        1,
	labelDoublesTriples: 2,
	labelBaseHit:        3,
	labelCost:           4,
	labelLoss:           5,
	labelWriteOff:       6,
	labelWriteOffs:      7,
	labelFullyDivested:  8,
}

var assetTypeRank = map[string]int{
	labelEquityDownrounds: 0,
	labelEquityUprounds:   1,
	labelEquityCost:       2,
	labelTGEdTokens:       3,
	labelNonTGEdTokens:    4,
	labelOtherTokens:      5,
	labelLiquid:           6,
}

var valuationStageRank = map[string]int{
	labelStagePreSeed: 0,
	labelStageSeed:    1,
	labelStageSeriesA: 2,
	labelStageSeriesB: 3,
	labelStageGrowth:  4,
	labelStageUnknown: 5,
}

// moicOf is the shared MOIC formula: total market value over cost basis,
// 0 when there is no positive cost basis. Never negative, never NaN.
func moicOf(cost, totalMV float64) float64 {
	if cost <= 0 {
		return 0
	}
	return totalMV / cost
}

// pct returns value as a percentage of grandTotal, or 0 when the grand
// total is zero. Output is always a finite number.
func pct(value, grandTotal float64) float64 {
	if grandTotal == 0 {
		return 0
	}
	return round4(value / grandTotal * 100)
}

// rollupPositions groups the classified positions by label, sums their
// cost and market values, and computes the percentage-of-grand-total and
// MOIC figures per group. A synthetic TOTAL row is appended after all
// classified rows; it restates the grand totals and is not drillable.
//
// Grand totals are accumulated over exactly the same position set that the
// groups are built from, so the group sums always reconstruct the totals:
// nothing is double counted and nothing is silently dropped.
//
// Monetary values are rounded per position before summing, at the same
// grain the drill-down rounds them, so a label's drill-down sum always
// equals its rollup cell even when costs carry sub-cent fractions.
func rollupPositions(sel model.TaxonomySelector, items []classifierInput) []model.RollupRow {
	grouped := make(map[string]*model.RollupRow)
	labels := []string{}

	grandCount := 0
	var grandCost, grandRealized, grandUnrealized float64

	for _, in := range items {
		label := classify(sel, in)

		row, ok := grouped[label]
		if !ok {
			row = &model.RollupRow{Label: label}
			grouped[label] = row
			labels = append(labels, label)
		}

		cost := round(in.Position.Cost)
		realized := round(in.Position.RealizedMV)
		unrealized := round(in.Position.UnrealizedMV)

		row.Count++
		row.Cost += cost
		row.RealizedMV += realized
		row.UnrealizedMV += unrealized

		grandCount++
		grandCost += cost
		grandRealized += realized
		grandUnrealized += unrealized
	}

	rows := make([]model.RollupRow, 0, len(labels)+1)
	for _, label := range labels {
		row := *grouped[label]
		totalMV := row.UnrealizedMV + row.RealizedMV

		row.MOIC = round4(moicOf(row.Cost, totalMV))
		row.PctCount = pct(float64(row.Count), float64(grandCount))
		row.PctCost = pct(row.Cost, grandCost)
		row.PctRealized = pct(row.RealizedMV, grandRealized)
		row.PctUnrealized = pct(row.UnrealizedMV, grandUnrealized)
		row.Cost = round(row.Cost)
		row.RealizedMV = round(row.RealizedMV)
		row.UnrealizedMV = round(row.UnrealizedMV)
		row.TotalMV = round(totalMV)

		rows = append(rows, row)
	}

	sortRollupRows(sel, rows)

	grandTotalMV := grandRealized + grandUnrealized
	rows = append(rows, model.RollupRow{
		Label:         model.TotalRowLabel,
		Count:         grandCount,
		Cost:          round(grandCost),
		RealizedMV:    round(grandRealized),
		UnrealizedMV:  round(grandUnrealized),
		TotalMV:       round(grandTotalMV),
		MOIC:          round4(moicOf(grandCost, grandTotalMV)),
		PctCount:      pct(float64(grandCount), float64(grandCount)),
		PctCost:       pct(grandCost, grandCost),
		PctRealized:   pct(grandRealized, grandRealized),
		PctUnrealized: pct(grandUnrealized, grandUnrealized),
	})

	return rows
}

// sortRollupRows orders classified rows for display: rank tables for the
// three fixed taxonomies, total cost descending for the free-form category
// taxonomy. Ties fall back to the label so output order is deterministic.
func sortRollupRows(sel model.TaxonomySelector, rows []model.RollupRow) {
	if sel.Taxonomy == model.TaxonomyCategory {
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Cost != rows[j].Cost {
				return rows[i].Cost > rows[j].Cost
			}
			return rows[i].Label < rows[j].Label
		})
		return
	}

	rank := rankTable(sel.Taxonomy)
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rankOf(rank, rows[i].Label), rankOf(rank, rows[j].Label)
		if ri != rj {
			return ri < rj
		}
		return rows[i].Label < rows[j].Label
	})
}

func rankTable(taxonomy model.Taxonomy) map[string]int {
	switch taxonomy {
	case model.TaxonomyMOICBucket:
		return moicBucketRank
	case model.TaxonomyAssetType:
		return assetTypeRank
	case model.TaxonomyValuationStage:
		return valuationStageRank
	}
	return nil
}

func rankOf(rank map[string]int, label string) int {
	if r, ok := rank[label]; ok {
		return r
	}
	return len(rank) + 1
}
