package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundsight/Fund-Monitor-Backend/internal/api/response"
	"github.com/fundsight/Fund-Monitor-Backend/internal/apperrors"
	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
	"github.com/fundsight/Fund-Monitor-Backend/internal/service"
	"github.com/fundsight/Fund-Monitor-Backend/internal/validation"
)

// VehicleHandler handles vehicle-related HTTP requests
type VehicleHandler struct {
	vehicleService  *service.VehicleService
	positionService *service.PositionService
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(vehicleService *service.VehicleService, positionService *service.PositionService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService:  vehicleService,
		positionService: positionService,
	}
}

// VehicleResponse represents the Vehicles get response
type VehicleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Vehicles returns basic information for all vehicles.
func (h *VehicleHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicleService.GetVehicles(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve vehicles", err.Error())
		return
	}

	resp := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		resp[i] = VehicleResponse{
			ID:          v.ID,
			Name:        v.Name,
			Description: v.Description,
		}
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// Vehicle returns a single vehicle by its ID.
func (h *VehicleHandler) Vehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "vehicleID")
	if err := validation.ValidateUUID(vehicleID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid vehicle ID", err.Error())
		return
	}

	vehicle, err := h.vehicleService.GetVehicle(r.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrVehicleNotFound) {
			response.RespondError(w, http.StatusNotFound, "vehicle not found", nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve vehicle", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, VehicleResponse{
		ID:          vehicle.ID,
		Name:        vehicle.Name,
		Description: vehicle.Description,
	})
}

// OverviewResponse wraps the per-vehicle overview cards with the portfolio
// date they were computed for.
type OverviewResponse struct {
	PortfolioDate string                  `json:"portfolioDate"`
	Vehicles      []model.VehicleOverview `json:"vehicles"`
}

// Overview returns the card-grid summary for all vehicles at one
// portfolio date.
func (h *VehicleHandler) Overview(w http.ResponseWriter, r *http.Request) {
	portfolioDateStr := r.URL.Query().Get("portfolio_date")
	portfolioDate, _, err := validation.ParseDateParams(portfolioDateStr, "")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid portfolio_date", err.Error())
		return
	}

	overviews, err := h.positionService.GetVehicleOverview(r.Context(), portfolioDate)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute vehicle overview", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, OverviewResponse{
		PortfolioDate: portfolioDate.Format("2006-01-02"),
		Vehicles:      overviews,
	})
}
