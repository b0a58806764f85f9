package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundsight/Fund-Monitor-Backend/internal/api/response"
	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
	"github.com/fundsight/Fund-Monitor-Backend/internal/service"
	"github.com/fundsight/Fund-Monitor-Backend/internal/validation"
)

// CoverageHandler handles snapshot-coverage HTTP requests.
type CoverageHandler struct {
	coverageService *service.CoverageService
}

// NewCoverageHandler creates a new CoverageHandler
func NewCoverageHandler(coverageService *service.CoverageService) *CoverageHandler {
	return &CoverageHandler{
		coverageService: coverageService,
	}
}

// CoverageResponse lists the projects missing a valuation snapshot at the
// requested portfolio date.
type CoverageResponse struct {
	VehicleID     string                  `json:"vehicleId"`
	PortfolioDate string                  `json:"portfolioDate"`
	Missing       []model.MissingSnapshot `json:"missing"`
}

// Coverage returns the missing-snapshot report for one vehicle.
func (h *CoverageHandler) Coverage(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "vehicleID")
	if err := validation.ValidateUUID(vehicleID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid vehicle ID", err.Error())
		return
	}

	portfolioDate, _, err := validation.ParseDateParams(r.URL.Query().Get("portfolio_date"), "")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid portfolio_date", err.Error())
		return
	}

	missing, err := h.coverageService.MissingSnapshots(r.Context(), vehicleID, portfolioDate)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute snapshot coverage", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, CoverageResponse{
		VehicleID:     vehicleID,
		PortfolioDate: portfolioDate.Format("2006-01-02"),
		Missing:       missing,
	})
}
