package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
)

// ValuationRepository provides data access methods for the valuation_snapshot table.
type ValuationRepository struct {
	db *sql.DB
}

// NewValuationRepository creates a new ValuationRepository with the provided database connection.
func NewValuationRepository(db *sql.DB) *ValuationRepository {
	return &ValuationRepository{db: db}
}

// Query retrieves all valuation snapshots for the vehicle at the exact
// portfolio date. There is no date-range tolerance: a snapshot either exists
// for the date or it does not.
func (s *ValuationRepository) Query(ctx context.Context, vehicleID string, portfolioDate time.Time) ([]model.ValuationSnapshot, error) {
	query := `
		SELECT id, vehicle_id, project_id, asset_class, portfolio_date,
		       unrealized_market_value, realized_market_value
		FROM valuation_snapshot
		WHERE vehicle_id = ?
		AND portfolio_date = ?
		ORDER BY project_id ASC, asset_class ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, vehicleID, portfolioDate.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query valuation_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.ValuationSnapshot{}

	for rows.Next() {
		var dateStr string
		var v model.ValuationSnapshot

		err := rows.Scan(
			&v.ID,
			&v.VehicleID,
			&v.ProjectID,
			&v.AssetClass,
			&dateStr,
			&v.UnrealizedMV,
			&v.RealizedMV,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan valuation_snapshot table results: %w", err)
		}

		v.PortfolioDate, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse portfolio_date: %w", err)
		}

		snapshots = append(snapshots, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating valuation_snapshot table: %w", err)
	}

	return snapshots, nil
}

// LatestPortfolioDate returns the most recent portfolio date with at least
// one snapshot for the vehicle. The boolean is false when the vehicle has
// no snapshots at all.
func (s *ValuationRepository) LatestPortfolioDate(ctx context.Context, vehicleID string) (time.Time, bool, error) {
	query := `
		SELECT MAX(portfolio_date)
		FROM valuation_snapshot
		WHERE vehicle_id = ?
	`

	var dateStr sql.NullString
	if err := s.db.QueryRowContext(ctx, query, vehicleID).Scan(&dateStr); err != nil {
		return time.Time{}, false, fmt.Errorf("failed to query latest portfolio date: %w", err)
	}

	if !dateStr.Valid {
		return time.Time{}, false, nil
	}

	date, err := ParseTime(dateStr.String)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse latest portfolio date: %w", err)
	}

	return date, true, nil
}
