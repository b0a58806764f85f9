package service

import (
	"context"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fundsight/Fund-Monitor-Backend/internal/apperrors"
	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
)

// PositionService derives classified, rolled-up position tables from the
// cost event ledger and valuation snapshots. It is stateless: every call
// performs its own reads, merges, classifies and aggregates, and nothing
// is cached between invocations.
type PositionService struct {
	costEvents CostEventStore
	valuations ValuationSnapshotStore
	projects   ProjectMetadataStore
	vehicles   VehicleStore
}

// NewPositionService creates a new PositionService with the provided store
// boundaries.
func NewPositionService(
	costEvents CostEventStore,
	valuations ValuationSnapshotStore,
	projects ProjectMetadataStore,
	vehicles VehicleStore,
) *PositionService {
	return &PositionService{
		costEvents: costEvents,
		valuations: valuations,
		projects:   projects,
		vehicles:   vehicles,
	}
}

// engineInputs is everything one invocation reads before computing.
type engineInputs struct {
	events []model.CostEvent
	snaps  []model.ValuationSnapshot
	meta   map[string]model.ProjectMeta
}

// GetRollup returns the classified rollup table for one vehicle: one row
// per classification label plus a synthetic TOTAL row, sorted for display.
//
// A zero cutoff defaults to the portfolio date, i.e. cost is cumulative up
// to the snapshot date. A failed store read degrades to an empty table
// rather than an error; the failure is logged. The caller cannot
// distinguish a degraded result from "no positions", which is an accepted
// limitation.
func (s *PositionService) GetRollup(ctx context.Context, vehicleID string, portfolioDate, cutoff time.Time, sel model.TaxonomySelector) ([]model.RollupRow, error) {
	if err := validateSelector(sel); err != nil {
		return nil, err
	}
	cutoff = defaultCutoff(cutoff, portfolioDate)

	inputs, err := s.loadEngineInputs(ctx, vehicleID, portfolioDate, cutoff)
	if err != nil {
		log.Printf("rollup for vehicle %s degraded to empty result: %v", vehicleID, err)
		return []model.RollupRow{}, nil
	}

	items := buildClassifierInputs(inputs, sel.Taxonomy.Grain(), portfolioDate, cutoff)
	return rollupPositions(sel, items), nil
}

// GetDrillDown returns the individual positions folded into one rollup
// label, re-derived through the same pipeline and the same classifier as
// GetRollup. Count and sums of the result match the corresponding rollup
// row computed over the same inputs.
//
// The synthetic TOTAL label is never produced by a classifier, so asking
// for it yields an empty list.
func (s *PositionService) GetDrillDown(ctx context.Context, vehicleID string, portfolioDate, cutoff time.Time, sel model.TaxonomySelector, label string) ([]model.PositionDetail, error) {
	if err := validateSelector(sel); err != nil {
		return nil, err
	}
	if label == "" {
		return nil, apperrors.ErrEmptyLabel
	}
	cutoff = defaultCutoff(cutoff, portfolioDate)

	inputs, err := s.loadEngineInputs(ctx, vehicleID, portfolioDate, cutoff)
	if err != nil {
		log.Printf("drill-down for vehicle %s degraded to empty result: %v", vehicleID, err)
		return []model.PositionDetail{}, nil
	}

	items := buildClassifierInputs(inputs, sel.Taxonomy.Grain(), portfolioDate, cutoff)

	details := []model.PositionDetail{}
	for _, in := range items {
		if classify(sel, in) != label {
			continue
		}
		details = append(details, buildDetail(in))
	}

	sort.SliceStable(details, func(i, j int) bool {
		if details[i].Cost != details[j].Cost {
			return details[i].Cost > details[j].Cost
		}
		if details[i].ProjectID != details[j].ProjectID {
			return details[i].ProjectID < details[j].ProjectID
		}
		return details[i].AssetClass < details[j].AssetClass
	})

	return details, nil
}

// GetVehicleOverview computes the card-grid summary for every vehicle at
// the portfolio date. Each vehicle's pipeline runs as an independent
// concurrent unit; a failed vehicle degrades to a zero-valued card instead
// of failing the whole grid.
func (s *PositionService) GetVehicleOverview(ctx context.Context, portfolioDate time.Time) ([]model.VehicleOverview, error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		log.Printf("vehicle overview degraded to empty result: %v", err)
		return []model.VehicleOverview{}, nil
	}

	overviews := make([]model.VehicleOverview, len(vehicles))

	g, gctx := errgroup.WithContext(ctx)
	for i, vehicle := range vehicles {
		i, vehicle := i, vehicle
		g.Go(func() error {
			overview := model.VehicleOverview{
				VehicleID:   vehicle.ID,
				Name:        vehicle.Name,
				Description: vehicle.Description,
			}

			inputs, err := s.loadEngineInputs(gctx, vehicle.ID, portfolioDate, portfolioDate)
			if err != nil {
				log.Printf("overview for vehicle %s degraded to zero values: %v", vehicle.ID, err)
				overviews[i] = overview
				return nil
			}

			costs := cumulativeCost(inputs.events, portfolioDate, model.GrainProject)
			values := valuationAt(inputs.snaps, portfolioDate, model.GrainProject)
			positions := mergePositions(costs, values)

			for _, p := range positions {
				overview.ProjectCount++
				overview.Cost += p.Cost
				overview.RealizedMV += p.RealizedMV
				overview.UnrealizedMV += p.UnrealizedMV
			}
			overview.TotalMV = overview.RealizedMV + overview.UnrealizedMV
			overview.MOIC = round4(moicOf(overview.Cost, overview.TotalMV))
			overview.Cost = round(overview.Cost)
			overview.RealizedMV = round(overview.RealizedMV)
			overview.UnrealizedMV = round(overview.UnrealizedMV)
			overview.TotalMV = round(overview.TotalMV)

			overviews[i] = overview
			return nil
		})
	}

	// Workers never return errors; they degrade their own slot instead.
	_ = g.Wait()

	return overviews, nil
}

// loadEngineInputs issues the two independent store reads concurrently and
// joins on both before resolving project metadata for the union of
// projects seen on either side.
func (s *PositionService) loadEngineInputs(ctx context.Context, vehicleID string, portfolioDate, cutoff time.Time) (engineInputs, error) {
	var inputs engineInputs

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := s.costEvents.Query(gctx, vehicleID, cutoff)
		if err != nil {
			return err
		}
		inputs.events = events
		return nil
	})
	g.Go(func() error {
		snaps, err := s.valuations.Query(gctx, vehicleID, portfolioDate)
		if err != nil {
			return err
		}
		inputs.snaps = snaps
		return nil
	})
	if err := g.Wait(); err != nil {
		return engineInputs{}, err
	}

	meta, err := s.projects.Lookup(ctx, collectProjectIDs(inputs.events, inputs.snaps))
	if err != nil {
		return engineInputs{}, err
	}
	inputs.meta = meta

	return inputs, nil
}

// buildClassifierInputs runs the reader/merge pipeline at the requested
// grain and attaches the metadata and point attributes each position's
// classification may read.
//
// Positions are always merged at asset-class grain first; project grain is
// a rollup over that merge so the per-class breakdown is carried along.
func buildClassifierInputs(inputs engineInputs, grain model.Grain, portfolioDate, cutoff time.Time) []classifierInput {
	costs := cumulativeCost(inputs.events, cutoff, model.GrainAssetClass)
	values := valuationAt(inputs.snaps, portfolioDate, model.GrainAssetClass)
	positions := mergePositions(costs, values)

	if grain == model.GrainProject {
		positions = rollupToProject(positions)
	}

	attrs := pointAttributes(inputs.events, cutoff, grain)

	items := make([]classifierInput, len(positions))
	for i, p := range positions {
		items[i] = classifierInput{
			Position: p,
			Attrs:    attrs[p.Key()],
			Meta:     inputs.meta[p.ProjectID],
		}
	}

	return items
}

func buildDetail(in classifierInput) model.PositionDetail {
	name := in.Meta.Name
	if name == "" {
		name = in.Position.ProjectID
	}

	breakdown := make([]model.AssetClassBreakdown, len(in.Position.Breakdown))
	for i, b := range in.Position.Breakdown {
		breakdown[i] = model.AssetClassBreakdown{
			Bucket:       b.Bucket,
			Cost:         round(b.Cost),
			UnrealizedMV: round(b.UnrealizedMV),
			RealizedMV:   round(b.RealizedMV),
		}
	}

	return model.PositionDetail{
		ProjectID:        in.Position.ProjectID,
		ProjectName:      name,
		AssetClass:       in.Position.AssetClass,
		Cost:             round(in.Position.Cost),
		UnrealizedMV:     round(in.Position.UnrealizedMV),
		RealizedMV:       round(in.Position.RealizedMV),
		TotalMV:          round(in.Position.TotalMV()),
		MOIC:             round4(in.Position.MOIC()),
		OwnershipPct:     in.Attrs.OwnershipPct,
		OverallValuation: in.Attrs.OverallValuation,
		Breakdown:        breakdown,
	}
}

// collectProjectIDs returns the sorted union of project IDs seen on either
// side of the merge, excluded placeholder rows filtered out.
func collectProjectIDs(events []model.CostEvent, snaps []model.ValuationSnapshot) []string {
	seen := make(map[string]struct{})
	for _, e := range events {
		if e.ProjectID != excludedProjectID {
			seen[e.ProjectID] = struct{}{}
		}
	}
	for _, snap := range snaps {
		if snap.ProjectID != excludedProjectID {
			seen[snap.ProjectID] = struct{}{}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// defaultCutoff resolves a zero cutoff to the portfolio date: cost is
// cumulative up to the snapshot date unless an explicit range was given.
func defaultCutoff(cutoff, portfolioDate time.Time) time.Time {
	if cutoff.IsZero() {
		return portfolioDate
	}
	return cutoff
}

func validateSelector(sel model.TaxonomySelector) error {
	switch sel.Taxonomy {
	case model.TaxonomyMOICBucket, model.TaxonomyAssetType, model.TaxonomyValuationStage:
		return nil
	case model.TaxonomyCategory:
		switch sel.CategoryField {
		case model.CategoryFieldStack, model.CategoryFieldTag, model.CategoryFieldSubTag:
			return nil
		}
		return apperrors.ErrUnknownCategoryField
	}
	return apperrors.ErrUnknownTaxonomy
}
