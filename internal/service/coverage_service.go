package service

import (
	"context"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
)

// CoverageService detects projects that carry an open cost basis but have
// no valuation snapshot at a portfolio date. These are the missing
// deliverables that upstream alerting (Slack et al.) notifies managers
// about; this service only produces the report.
type CoverageService struct {
	costEvents    CostEventStore
	valuations    ValuationSnapshotStore
	snapshotDates SnapshotDateStore
	projects      ProjectMetadataStore
	vehicles      VehicleStore
}

// NewCoverageService creates a new CoverageService with the provided store
// boundaries.
func NewCoverageService(
	costEvents CostEventStore,
	valuations ValuationSnapshotStore,
	snapshotDates SnapshotDateStore,
	projects ProjectMetadataStore,
	vehicles VehicleStore,
) *CoverageService {
	return &CoverageService{
		costEvents:    costEvents,
		valuations:    valuations,
		snapshotDates: snapshotDates,
		projects:      projects,
		vehicles:      vehicles,
	}
}

// MissingSnapshots returns the projects in one vehicle that hold a positive
// cumulative cost basis as of the portfolio date but have no valuation
// snapshot row at that date. Sorted by cost descending so the largest
// unreported positions surface first.
func (s *CoverageService) MissingSnapshots(ctx context.Context, vehicleID string, portfolioDate time.Time) ([]model.MissingSnapshot, error) {
	var events []model.CostEvent
	var snaps []model.ValuationSnapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.costEvents.Query(gctx, vehicleID, portfolioDate)
		return err
	})
	g.Go(func() error {
		var err error
		snaps, err = s.valuations.Query(gctx, vehicleID, portfolioDate)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	costs := cumulativeCost(events, portfolioDate, model.GrainProject)
	values := valuationAt(snaps, portfolioDate, model.GrainProject)

	missingIDs := []string{}
	for key, cost := range costs {
		if cost <= 0 {
			continue
		}
		if _, ok := values[key]; ok {
			continue
		}
		missingIDs = append(missingIDs, key.ProjectID)
	}

	meta, err := s.projects.Lookup(ctx, missingIDs)
	if err != nil {
		return nil, err
	}

	missing := make([]model.MissingSnapshot, 0, len(missingIDs))
	for _, projectID := range missingIDs {
		name := meta[projectID].Name
		if name == "" {
			name = projectID
		}
		missing = append(missing, model.MissingSnapshot{
			ProjectID:   projectID,
			ProjectName: name,
			Cost:        round(costs[model.PositionKey{ProjectID: projectID}]),
		})
	}

	sort.Slice(missing, func(i, j int) bool {
		if missing[i].Cost != missing[j].Cost {
			return missing[i].Cost > missing[j].Cost
		}
		return missing[i].ProjectID < missing[j].ProjectID
	})

	return missing, nil
}

// LogMissingSnapshots runs the coverage check for every vehicle at its
// latest snapshot date and logs the findings. Used as a scheduled job;
// failures are logged, never raised.
func (s *CoverageService) LogMissingSnapshots(ctx context.Context) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		log.Printf("coverage check skipped: failed to list vehicles: %v", err)
		return
	}

	for _, vehicle := range vehicles {
		portfolioDate, ok, err := s.snapshotDates.LatestPortfolioDate(ctx, vehicle.ID)
		if err != nil {
			log.Printf("coverage check skipped for vehicle %s: %v", vehicle.ID, err)
			continue
		}
		if !ok {
			continue
		}

		missing, err := s.MissingSnapshots(ctx, vehicle.ID, portfolioDate)
		if err != nil {
			log.Printf("coverage check failed for vehicle %s: %v", vehicle.ID, err)
			continue
		}

		for _, m := range missing {
			log.Printf(
				"missing valuation snapshot: vehicle=%s project=%s (%s) cost=%.2f date=%s",
				vehicle.Name, m.ProjectName, m.ProjectID, m.Cost, portfolioDate.Format("2006-01-02"),
			)
		}
	}
}
