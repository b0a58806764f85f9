package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
)

// CostEventRepository provides data access methods for the cost_event ledger.
// The ledger is append-only: this repository only ever reads it.
type CostEventRepository struct {
	db *sql.DB
}

// NewCostEventRepository creates a new CostEventRepository with the provided database connection.
func NewCostEventRepository(db *sql.DB) *CostEventRepository {
	return &CostEventRepository{db: db}
}

// Query retrieves all cost events for the vehicle reported on or before the
// cutoff date, sorted by date then row id so downstream last-known-value
// scans have a deterministic tie-break order.
//
// Returns an empty slice when the vehicle has no events in range.
func (s *CostEventRepository) Query(ctx context.Context, vehicleID string, cutoff time.Time) ([]model.CostEvent, error) {
	query := `
		SELECT id, vehicle_id, project_id, asset_class, date_reported, delta_cost,
		       outcome_type, established_type, overall_ownership_percentage, overall_valuation
		FROM cost_event
		WHERE vehicle_id = ?
		AND date_reported <= ?
		ORDER BY date_reported ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, vehicleID, cutoff.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query cost_event table: %w", err)
	}
	defer rows.Close()

	events := []model.CostEvent{}

	for rows.Next() {
		var dateStr string
		var assetClass, outcomeType, establishedType sql.NullString
		var ownershipPct, overallValuation sql.NullFloat64
		var e model.CostEvent

		err := rows.Scan(
			&e.ID,
			&e.VehicleID,
			&e.ProjectID,
			&assetClass,
			&dateStr,
			&e.DeltaCost,
			&outcomeType,
			&establishedType,
			&ownershipPct,
			&overallValuation,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cost_event table results: %w", err)
		}

		e.DateReported, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date_reported: %w", err)
		}

		e.AssetClass = assetClass.String
		e.OutcomeType = outcomeType.String
		e.EstablishedType = establishedType.String
		if ownershipPct.Valid {
			v := ownershipPct.Float64
			e.OwnershipPct = &v
		}
		if overallValuation.Valid {
			v := overallValuation.Float64
			e.OverallValuation = &v
		}

		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cost_event table: %w", err)
	}

	return events, nil
}
