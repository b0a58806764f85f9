package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/fundsight/Fund-Monitor-Backend/internal/repository"
	"github.com/fundsight/Fund-Monitor-Backend/internal/service"
)

func NewTestPositionService(t *testing.T, db *sql.DB) *service.PositionService {
	t.Helper()

	costEventRepo := repository.NewCostEventRepository(db)
	valuationRepo := repository.NewValuationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)

	return service.NewPositionService(
		costEventRepo,
		valuationRepo,
		projectRepo,
		vehicleRepo,
	)
}

func NewTestVehicleService(t *testing.T, db *sql.DB) *service.VehicleService {
	t.Helper()

	return service.NewVehicleService(repository.NewVehicleRepository(db))
}

func NewTestCoverageService(t *testing.T, db *sql.DB) *service.CoverageService {
	t.Helper()

	costEventRepo := repository.NewCostEventRepository(db)
	valuationRepo := repository.NewValuationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)

	return service.NewCoverageService(
		costEventRepo,
		valuationRepo,
		valuationRepo,
		projectRepo,
		vehicleRepo,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}
