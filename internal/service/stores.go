package service

import (
	"context"
	"time"

	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
)

// The engine consumes read-only store boundaries. The concrete SQLite
// implementations live in internal/repository; tests may substitute their
// own. All reads take a context so request abandonment cancels them.

// CostEventStore reads the append-only cost event ledger for one vehicle
// up to an inclusive cutoff date.
type CostEventStore interface {
	Query(ctx context.Context, vehicleID string, cutoff time.Time) ([]model.CostEvent, error)
}

// ValuationSnapshotStore reads market value snapshots for one vehicle at
// an exact portfolio date.
type ValuationSnapshotStore interface {
	Query(ctx context.Context, vehicleID string, portfolioDate time.Time) ([]model.ValuationSnapshot, error)
}

// ProjectMetadataStore resolves project metadata for classification.
type ProjectMetadataStore interface {
	Lookup(ctx context.Context, projectIDs []string) (map[string]model.ProjectMeta, error)
}

// VehicleStore lists the vehicles in scope.
type VehicleStore interface {
	List(ctx context.Context) ([]model.Vehicle, error)
	GetOnID(ctx context.Context, vehicleID string) (model.Vehicle, error)
}

// SnapshotDateStore resolves the most recent portfolio date a vehicle has
// snapshots for. Used by the coverage check.
type SnapshotDateStore interface {
	LatestPortfolioDate(ctx context.Context, vehicleID string) (time.Time, bool, error)
}
