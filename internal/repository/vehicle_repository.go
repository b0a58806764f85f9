package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fundsight/Fund-Monitor-Backend/internal/apperrors"
	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
)

// VehicleRepository provides data access methods for the vehicle table.
type VehicleRepository struct {
	db *sql.DB
}

// NewVehicleRepository creates a new VehicleRepository with the provided database connection.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// List retrieves all vehicles ordered by name.
// Returns an empty slice when no vehicles exist.
func (s *VehicleRepository) List(ctx context.Context) ([]model.Vehicle, error) {
	query := `
          SELECT id, name, COALESCE(description, '')
          FROM vehicle
          ORDER BY name ASC, id ASC
      `

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicle table: %w", err)
	}
	defer rows.Close()

	vehicles := []model.Vehicle{}

	for rows.Next() {
		var v model.Vehicle

		err := rows.Scan(
			&v.ID,
			&v.Name,
			&v.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle table results: %w", err)
		}

		vehicles = append(vehicles, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicle table: %w", err)
	}

	return vehicles, nil
}

// GetOnID retrieves a single vehicle by its ID.
func (s *VehicleRepository) GetOnID(ctx context.Context, vehicleID string) (model.Vehicle, error) {
	query := `
          SELECT id, name, COALESCE(description, '')
          FROM vehicle
          WHERE id = ?
      `
	var v model.Vehicle

	err := s.db.QueryRowContext(ctx, query, vehicleID).Scan(
		&v.ID,
		&v.Name,
		&v.Description,
	)
	if err == sql.ErrNoRows {
		return model.Vehicle{}, apperrors.ErrVehicleNotFound
	}
	if err != nil {
		return model.Vehicle{}, fmt.Errorf("failed to query vehicle: %w", err)
	}

	return v, nil
}
