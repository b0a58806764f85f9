package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundsight/Fund-Monitor-Backend/internal/api/response"
	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
	"github.com/fundsight/Fund-Monitor-Backend/internal/service"
	"github.com/fundsight/Fund-Monitor-Backend/internal/validation"
)

// PositionHandler handles position rollup and drill-down HTTP requests.
type PositionHandler struct {
	positionService *service.PositionService
}

// NewPositionHandler creates a new PositionHandler
func NewPositionHandler(positionService *service.PositionService) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
	}
}

// positionParams are the query parameters shared by the rollup and
// drill-down endpoints.
type positionParams struct {
	vehicleID     string
	portfolioDate string
	cutoff        string
	selector      model.TaxonomySelector
}

func parsePositionParams(r *http.Request) (positionParams, error) {
	p := positionParams{
		vehicleID:     chi.URLParam(r, "vehicleID"),
		portfolioDate: r.URL.Query().Get("portfolio_date"),
		cutoff:        r.URL.Query().Get("cutoff_date"),
	}

	if err := validation.ValidateUUID(p.vehicleID); err != nil {
		return positionParams{}, err
	}

	sel, err := validation.ParseTaxonomySelector(
		r.URL.Query().Get("taxonomy"),
		r.URL.Query().Get("category_field"),
	)
	if err != nil {
		return positionParams{}, err
	}
	p.selector = sel

	return p, nil
}

// RollupResponse wraps the rollup rows with the request parameters they
// were computed for.
type RollupResponse struct {
	VehicleID     string            `json:"vehicleId"`
	Taxonomy      string            `json:"taxonomy"`
	PortfolioDate string            `json:"portfolioDate"`
	CutoffDate    string            `json:"cutoffDate"`
	Rows          []model.RollupRow `json:"rows"`
}

// Rollup returns the classified rollup table for one vehicle and taxonomy.
func (h *PositionHandler) Rollup(w http.ResponseWriter, r *http.Request) {
	params, err := parsePositionParams(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid rollup request", err.Error())
		return
	}

	portfolioDate, cutoff, err := validation.ParseDateParams(params.portfolioDate, params.cutoff)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date parameters", err.Error())
		return
	}

	rows, err := h.positionService.GetRollup(r.Context(), params.vehicleID, portfolioDate, cutoff, params.selector)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid taxonomy selector", err.Error())
		return
	}

	if cutoff.IsZero() {
		cutoff = portfolioDate
	}

	response.RespondJSON(w, http.StatusOK, RollupResponse{
		VehicleID:     params.vehicleID,
		Taxonomy:      string(params.selector.Taxonomy),
		PortfolioDate: portfolioDate.Format("2006-01-02"),
		CutoffDate:    cutoff.Format("2006-01-02"),
		Rows:          rows,
	})
}

// DrillDownResponse wraps the drill-down positions with the label they
// were filtered to.
type DrillDownResponse struct {
	VehicleID     string                 `json:"vehicleId"`
	Taxonomy      string                 `json:"taxonomy"`
	Label         string                 `json:"label"`
	PortfolioDate string                 `json:"portfolioDate"`
	CutoffDate    string                 `json:"cutoffDate"`
	Positions     []model.PositionDetail `json:"positions"`
}

// DrillDown returns the individual positions behind one rollup label.
func (h *PositionHandler) DrillDown(w http.ResponseWriter, r *http.Request) {
	params, err := parsePositionParams(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid drill-down request", err.Error())
		return
	}

	portfolioDate, cutoff, err := validation.ParseDateParams(params.portfolioDate, params.cutoff)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date parameters", err.Error())
		return
	}

	label := r.URL.Query().Get("label")

	positions, err := h.positionService.GetDrillDown(r.Context(), params.vehicleID, portfolioDate, cutoff, params.selector, label)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid drill-down parameters", err.Error())
		return
	}

	if cutoff.IsZero() {
		cutoff = portfolioDate
	}

	response.RespondJSON(w, http.StatusOK, DrillDownResponse{
		VehicleID:     params.vehicleID,
		Taxonomy:      string(params.selector.Taxonomy),
		Label:         label,
		PortfolioDate: portfolioDate.Format("2006-01-02"),
		CutoffDate:    cutoff.Format("2006-01-02"),
		Positions:     positions,
	})
}
