package service

import (
	"context"

	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
)

// VehicleService handles vehicle-related business logic operations.
type VehicleService struct {
	vehicles VehicleStore
}

// NewVehicleService creates a new VehicleService with the provided store.
func NewVehicleService(vehicles VehicleStore) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

// GetVehicles retrieves all vehicles.
func (s *VehicleService) GetVehicles(ctx context.Context) ([]model.Vehicle, error) {
	return s.vehicles.List(ctx)
}

// GetVehicle retrieves a single vehicle by its ID.
func (s *VehicleService) GetVehicle(ctx context.Context, vehicleID string) (model.Vehicle, error) {
	return s.vehicles.GetOnID(ctx, vehicleID)
}
