package service_test

import (
	"context"
	"database/sql"
	"reflect"
	"testing"
	"time"

	"github.com/fundsight/Fund-Monitor-Backend/internal/apperrors"
	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
	"github.com/fundsight/Fund-Monitor-Backend/internal/testutil"
)

// seedVehicle populates one vehicle with two real positions plus every kind
// of row the pipeline must ignore:
//
//	acme: Seed cost 150000, unrealized 450000 at 2024-06-30 (3.0x), Private, 20M valuation
//	zen:  Equity cost 200000, unrealized 150000 at 2024-06-30 (0.75x), 60M valuation
//
// Excluded noise: an "Other Assets" event, a Cash outcome event, a Flows
// snapshot and an event dated after the portfolio date.
func seedVehicle(t *testing.T, db *sql.DB) model.Vehicle {
	t.Helper()

	vehicle := testutil.NewVehicle().WithName("Alpha Fund").Build(t, db)

	testutil.NewProject().WithID("acme").WithName("Acme Protocol").
		WithStack("DeFi").WithCoingeckoID("acme-token").Build(t, db)
	testutil.NewProject().WithID("zen").WithName("Zen Labs").
		WithStack("Infra").Build(t, db)

	testutil.NewCostEvent(vehicle.ID, "acme").WithAssetClass("Seed").
		WithDate("2024-01-10").WithDelta(100000).
		WithEstablishedType("Private").WithOverallValuation(20_000_000).Build(t, db)
	testutil.NewCostEvent(vehicle.ID, "acme").WithAssetClass("Seed").
		WithDate("2024-02-10").WithDelta(50000).Build(t, db)
	testutil.NewCostEvent(vehicle.ID, "zen").WithAssetClass("Equity").
		WithDate("2024-01-15").WithDelta(200000).
		WithOwnershipPct(4.5).WithOverallValuation(60_000_000).Build(t, db)

	// Rows the readers must exclude.
	testutil.NewCostEvent(vehicle.ID, "Other Assets").WithAssetClass("Seed").
		WithDate("2024-01-10").WithDelta(999999).Build(t, db)
	testutil.NewCostEvent(vehicle.ID, "acme").WithAssetClass("Seed").
		WithDate("2024-03-01").WithDelta(77777).WithOutcomeType("Cash").Build(t, db)
	testutil.NewCostEvent(vehicle.ID, "acme").WithAssetClass("Seed").
		WithDate("2024-07-15").WithDelta(500000).Build(t, db)

	testutil.NewSnapshot(vehicle.ID, "acme").WithAssetClass("Seed").
		WithPortfolioDate("2024-06-30").WithUnrealized(450000).Build(t, db)
	testutil.NewSnapshot(vehicle.ID, "zen").WithAssetClass("Equity").
		WithPortfolioDate("2024-06-30").WithUnrealized(150000).Build(t, db)
	testutil.NewSnapshot(vehicle.ID, "acme").WithAssetClass("Flows").
		WithPortfolioDate("2024-06-30").WithUnrealized(123456).Build(t, db)
	testutil.NewSnapshot(vehicle.ID, "acme").WithAssetClass("Seed").
		WithPortfolioDate("2024-05-31").WithUnrealized(999).Build(t, db)

	return vehicle
}

var allSelectors = []model.TaxonomySelector{
	{Taxonomy: model.TaxonomyMOICBucket},
	{Taxonomy: model.TaxonomyAssetType},
	{Taxonomy: model.TaxonomyValuationStage},
	{Taxonomy: model.TaxonomyCategory, CategoryField: model.CategoryFieldStack},
}

// TestPositionService_GetRollup tests the end-to-end rollup pipeline
// against a seeded database.
//
// WHY: This is the operation the dashboard lives on. It must honor the
// exclusion rules, the inclusive cutoff default and the display order,
// and it must degrade to an empty table instead of failing.
func TestPositionService_GetRollup(t *testing.T) {
	moicSel := model.TaxonomySelector{Taxonomy: model.TaxonomyMOICBucket}
	portfolioDate := "2024-06-30"

	t.Run("computes the MOIC bucket table with default cutoff", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		vehicle := seedVehicle(t, db)

		rows, err := svc.GetRollup(context.Background(), vehicle.ID,
			testutil.MakeDate(t, portfolioDate), time.Time{}, moicSel)
		if err != nil {
			t.Fatalf("GetRollup() returned unexpected error: %v", err)
		}

		want := []string{"Doubles/Triples", "Loss", "TOTAL"}
		if len(rows) != len(want) {
			t.Fatalf("Expected %d rows, got %d: %+v", len(want), len(rows), rows)
		}
		for i, label := range want {
			if rows[i].Label != label {
				t.Errorf("Row %d: expected %q, got %q", i, label, rows[i].Label)
			}
		}

		doubles := rows[0]
		if doubles.Count != 1 || doubles.Cost != 150000 || doubles.UnrealizedMV != 450000 {
			t.Errorf("Unexpected Doubles/Triples row: %+v", doubles)
		}
		if doubles.MOIC != 3 {
			t.Errorf("Expected MOIC 3, got %v", doubles.MOIC)
		}
		if doubles.PctCost != 42.8571 {
			t.Errorf("Expected pctCost 42.8571, got %v", doubles.PctCost)
		}

		total := rows[2]
		if total.Count != 2 || total.Cost != 350000 || total.TotalMV != 600000 {
			t.Errorf("Unexpected TOTAL row: %+v", total)
		}
		if total.MOIC != 1.7143 {
			t.Errorf("Expected TOTAL MOIC 1.7143, got %v", total.MOIC)
		}
	})

	t.Run("explicit cutoff limits the cost window", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		vehicle := seedVehicle(t, db)

		rows, err := svc.GetRollup(context.Background(), vehicle.ID,
			testutil.MakeDate(t, portfolioDate), testutil.MakeDate(t, "2024-01-31"), moicSel)
		if err != nil {
			t.Fatalf("GetRollup() returned unexpected error: %v", err)
		}

		// Only acme's first event is inside the window: 100000 cost
		// against 450000 market value makes a 4.5x Doubles/Triples.
		if rows[0].Label != "Doubles/Triples" || rows[0].Cost != 100000 || rows[0].MOIC != 4.5 {
			t.Errorf("Unexpected first row: %+v", rows[0])
		}
	})

	t.Run("asset type taxonomy works per asset class", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		vehicle := seedVehicle(t, db)

		rows, err := svc.GetRollup(context.Background(), vehicle.ID,
			testutil.MakeDate(t, portfolioDate), time.Time{},
			model.TaxonomySelector{Taxonomy: model.TaxonomyAssetType})
		if err != nil {
			t.Fatalf("GetRollup() returned unexpected error: %v", err)
		}

		want := []string{"Equity Downrounds", "Other(Seed)", "TOTAL"}
		if len(rows) != len(want) {
			t.Fatalf("Expected %d rows, got %d: %+v", len(want), len(rows), rows)
		}
		for i, label := range want {
			if rows[i].Label != label {
				t.Errorf("Row %d: expected %q, got %q", i, label, rows[i].Label)
			}
		}
	})

	t.Run("valuation stage reads the last known overall valuation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		vehicle := seedVehicle(t, db)

		rows, err := svc.GetRollup(context.Background(), vehicle.ID,
			testutil.MakeDate(t, portfolioDate), time.Time{},
			model.TaxonomySelector{Taxonomy: model.TaxonomyValuationStage})
		if err != nil {
			t.Fatalf("GetRollup() returned unexpected error: %v", err)
		}

		// acme reported 20M (Pre-Seed), zen 60M (Series A).
		want := []string{"Early Stage: Pre-Seed", "Mid Stage: Series A", "TOTAL"}
		for i, label := range want {
			if rows[i].Label != label {
				t.Errorf("Row %d: expected %q, got %q", i, label, rows[i].Label)
			}
		}
	})

	t.Run("category taxonomy sorts by cost descending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		vehicle := seedVehicle(t, db)

		rows, err := svc.GetRollup(context.Background(), vehicle.ID,
			testutil.MakeDate(t, portfolioDate), time.Time{},
			model.TaxonomySelector{Taxonomy: model.TaxonomyCategory, CategoryField: model.CategoryFieldStack})
		if err != nil {
			t.Fatalf("GetRollup() returned unexpected error: %v", err)
		}

		want := []string{"Infra", "DeFi", "TOTAL"}
		for i, label := range want {
			if rows[i].Label != label {
				t.Errorf("Row %d: expected %q, got %q", i, label, rows[i].Label)
			}
		}
	})

	t.Run("empty vehicle yields only the TOTAL row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		vehicle := testutil.CreateVehicle(t, db, "Empty Fund")

		rows, err := svc.GetRollup(context.Background(), vehicle.ID,
			testutil.MakeDate(t, portfolioDate), time.Time{}, moicSel)
		if err != nil {
			t.Fatalf("GetRollup() returned unexpected error: %v", err)
		}

		if len(rows) != 1 || rows[0].Label != "TOTAL" || rows[0].Count != 0 {
			t.Errorf("Expected a single zero TOTAL row, got %+v", rows)
		}
	})

	t.Run("rejects an unknown taxonomy", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)

		_, err := svc.GetRollup(context.Background(), testutil.MakeID(),
			testutil.MakeDate(t, portfolioDate), time.Time{},
			model.TaxonomySelector{Taxonomy: "sharpe_ratio"})
		if err != apperrors.ErrUnknownTaxonomy {
			t.Errorf("Expected ErrUnknownTaxonomy, got %v", err)
		}
	})

	t.Run("rejects an unknown category field", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)

		_, err := svc.GetRollup(context.Background(), testutil.MakeID(),
			testutil.MakeDate(t, portfolioDate), time.Time{},
			model.TaxonomySelector{Taxonomy: model.TaxonomyCategory, CategoryField: "vibe"})
		if err != apperrors.ErrUnknownCategoryField {
			t.Errorf("Expected ErrUnknownCategoryField, got %v", err)
		}
	})

	t.Run("degrades to an empty table when the store fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)

		db.Close()

		rows, err := svc.GetRollup(context.Background(), testutil.MakeID(),
			testutil.MakeDate(t, portfolioDate), time.Time{}, moicSel)
		if err != nil {
			t.Fatalf("Expected degraded nil error, got %v", err)
		}
		if rows == nil || len(rows) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", rows)
		}
	})

	t.Run("is idempotent over identical inputs", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		vehicle := seedVehicle(t, db)

		first, err := svc.GetRollup(context.Background(), vehicle.ID,
			testutil.MakeDate(t, portfolioDate), time.Time{}, moicSel)
		if err != nil {
			t.Fatalf("GetRollup() returned unexpected error: %v", err)
		}
		second, err := svc.GetRollup(context.Background(), vehicle.ID,
			testutil.MakeDate(t, portfolioDate), time.Time{}, moicSel)
		if err != nil {
			t.Fatalf("GetRollup() returned unexpected error: %v", err)
		}

		if !reflect.DeepEqual(first, second) {
			t.Errorf("Expected identical results, got %+v vs %+v", first, second)
		}
	})
}

// TestPositionService_GetDrillDown tests the drill-down view and its
// agreement with the rollup.
//
// WHY: Drill-down re-derives positions through the same classifier as the
// rollup; if the two ever disagree, clicking a row shows the wrong list.
func TestPositionService_GetDrillDown(t *testing.T) {
	portfolioDate := "2024-06-30"

	t.Run("agrees with the rollup for every label in every taxonomy", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		vehicle := seedVehicle(t, db)

		for _, sel := range allSelectors {
			rows, err := svc.GetRollup(context.Background(), vehicle.ID,
				testutil.MakeDate(t, portfolioDate), time.Time{}, sel)
			if err != nil {
				t.Fatalf("GetRollup(%s) returned unexpected error: %v", sel.Taxonomy, err)
			}

			for _, row := range rows {
				if row.Label == model.TotalRowLabel {
					continue
				}

				details, err := svc.GetDrillDown(context.Background(), vehicle.ID,
					testutil.MakeDate(t, portfolioDate), time.Time{}, sel, row.Label)
				if err != nil {
					t.Fatalf("GetDrillDown(%s, %q) returned unexpected error: %v", sel.Taxonomy, row.Label, err)
				}

				if len(details) != row.Count {
					t.Errorf("%s/%q: rollup counts %d positions, drill-down returned %d",
						sel.Taxonomy, row.Label, row.Count, len(details))
				}

				var cost float64
				for _, d := range details {
					cost += d.Cost
				}
				if cost != row.Cost {
					t.Errorf("%s/%q: rollup cost %v, drill-down sums to %v",
						sel.Taxonomy, row.Label, row.Cost, cost)
				}
			}
		}
	})

	t.Run("agrees with the rollup when costs carry sub-cent fractions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		vehicle := testutil.NewVehicle().WithName("Fraction Fund").Build(t, db)

		testutil.NewProject().WithID("ion").WithName("Ion Works").Build(t, db)
		testutil.NewProject().WithID("nova").WithName("Nova Grid").Build(t, db)

		// Two positions at 100.004 each: rounded per position both sides
		// sum to 200.00, whereas rounding only the group sum would yield
		// 200.01 in the rollup and 200.00 in the drill-down.
		for _, projectID := range []string{"ion", "nova"} {
			testutil.NewCostEvent(vehicle.ID, projectID).WithAssetClass("Seed").
				WithDate("2024-01-10").WithDelta(100.004).Build(t, db)
			testutil.NewSnapshot(vehicle.ID, projectID).WithAssetClass("Seed").
				WithPortfolioDate("2024-06-30").WithUnrealized(50).Build(t, db)
		}

		sel := model.TaxonomySelector{Taxonomy: model.TaxonomyMOICBucket}
		rows, err := svc.GetRollup(context.Background(), vehicle.ID,
			testutil.MakeDate(t, portfolioDate), time.Time{}, sel)
		if err != nil {
			t.Fatalf("GetRollup() returned unexpected error: %v", err)
		}

		var loss *model.RollupRow
		for i := range rows {
			if rows[i].Label == "Loss" {
				loss = &rows[i]
			}
		}
		if loss == nil {
			t.Fatalf("Expected a Loss row, got %+v", rows)
		}
		if loss.Cost != 200 {
			t.Errorf("Expected rollup cost 200, got %v", loss.Cost)
		}

		details, err := svc.GetDrillDown(context.Background(), vehicle.ID,
			testutil.MakeDate(t, portfolioDate), time.Time{}, sel, "Loss")
		if err != nil {
			t.Fatalf("GetDrillDown() returned unexpected error: %v", err)
		}

		var cost float64
		for _, d := range details {
			cost += d.Cost
		}
		if cost != loss.Cost {
			t.Errorf("Rollup cost %v, drill-down sums to %v", loss.Cost, cost)
		}
	})

	t.Run("returns position details with metadata and attributes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		vehicle := seedVehicle(t, db)

		details, err := svc.GetDrillDown(context.Background(), vehicle.ID,
			testutil.MakeDate(t, portfolioDate), time.Time{},
			model.TaxonomySelector{Taxonomy: model.TaxonomyMOICBucket}, "Loss")
		if err != nil {
			t.Fatalf("GetDrillDown() returned unexpected error: %v", err)
		}

		if len(details) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(details))
		}

		zen := details[0]
		if zen.ProjectID != "zen" || zen.ProjectName != "Zen Labs" {
			t.Errorf("Unexpected project: %+v", zen)
		}
		if zen.Cost != 200000 || zen.TotalMV != 150000 || zen.MOIC != 0.75 {
			t.Errorf("Unexpected figures: %+v", zen)
		}
		if zen.OwnershipPct == nil || *zen.OwnershipPct != 4.5 {
			t.Errorf("Expected ownership 4.5, got %v", zen.OwnershipPct)
		}
		if zen.OverallValuation == nil || *zen.OverallValuation != 60_000_000 {
			t.Errorf("Expected overall valuation 60M, got %v", zen.OverallValuation)
		}
		if len(zen.Breakdown) != 1 || zen.Breakdown[0].Bucket != model.BreakdownEquity {
			t.Errorf("Expected a single Equity breakdown bucket, got %+v", zen.Breakdown)
		}
	})

	t.Run("rejects an empty label", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)

		_, err := svc.GetDrillDown(context.Background(), testutil.MakeID(),
			testutil.MakeDate(t, portfolioDate), time.Time{},
			model.TaxonomySelector{Taxonomy: model.TaxonomyMOICBucket}, "")
		if err != apperrors.ErrEmptyLabel {
			t.Errorf("Expected ErrEmptyLabel, got %v", err)
		}
	})

	t.Run("the TOTAL row is not drillable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		vehicle := seedVehicle(t, db)

		details, err := svc.GetDrillDown(context.Background(), vehicle.ID,
			testutil.MakeDate(t, portfolioDate), time.Time{},
			model.TaxonomySelector{Taxonomy: model.TaxonomyMOICBucket}, model.TotalRowLabel)
		if err != nil {
			t.Fatalf("GetDrillDown() returned unexpected error: %v", err)
		}
		if len(details) != 0 {
			t.Errorf("Expected no positions behind TOTAL, got %+v", details)
		}
	})

	t.Run("degrades to an empty list when the store fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)

		db.Close()

		details, err := svc.GetDrillDown(context.Background(), testutil.MakeID(),
			testutil.MakeDate(t, portfolioDate), time.Time{},
			model.TaxonomySelector{Taxonomy: model.TaxonomyMOICBucket}, "Loss")
		if err != nil {
			t.Fatalf("Expected degraded nil error, got %v", err)
		}
		if details == nil || len(details) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", details)
		}
	})
}

// TestPositionService_GetVehicleOverview tests the concurrent card-grid
// summary.
func TestPositionService_GetVehicleOverview(t *testing.T) {
	t.Run("returns one card per vehicle in listing order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)

		vehicle := seedVehicle(t, db) // "Alpha Fund"
		testutil.CreateVehicle(t, db, "Beta Fund")

		overviews, err := svc.GetVehicleOverview(context.Background(), testutil.MakeDate(t, "2024-06-30"))
		if err != nil {
			t.Fatalf("GetVehicleOverview() returned unexpected error: %v", err)
		}

		if len(overviews) != 2 {
			t.Fatalf("Expected 2 cards, got %d", len(overviews))
		}

		alpha := overviews[0]
		if alpha.VehicleID != vehicle.ID || alpha.Name != "Alpha Fund" {
			t.Fatalf("Expected Alpha Fund first, got %+v", alpha)
		}
		if alpha.ProjectCount != 2 || alpha.Cost != 350000 || alpha.TotalMV != 600000 {
			t.Errorf("Unexpected Alpha card: %+v", alpha)
		}
		if alpha.MOIC != 1.7143 {
			t.Errorf("Expected MOIC 1.7143, got %v", alpha.MOIC)
		}

		beta := overviews[1]
		if beta.Name != "Beta Fund" {
			t.Errorf("Expected Beta Fund second, got %+v", beta)
		}
		if beta.ProjectCount != 0 || beta.Cost != 0 || beta.TotalMV != 0 || beta.MOIC != 0 {
			t.Errorf("Expected a zero card for the empty vehicle, got %+v", beta)
		}
	})

	t.Run("degrades to an empty grid when listing fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)

		db.Close()

		overviews, err := svc.GetVehicleOverview(context.Background(), testutil.MakeDate(t, "2024-06-30"))
		if err != nil {
			t.Fatalf("Expected degraded nil error, got %v", err)
		}
		if overviews == nil || len(overviews) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", overviews)
		}
	})
}
