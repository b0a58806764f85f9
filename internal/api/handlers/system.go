package handlers

import (
	"net/http"

	"github.com/fundsight/Fund-Monitor-Backend/internal/api/response"
	"github.com/fundsight/Fund-Monitor-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// Health reports whether the service and its database are reachable.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.Health(); err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, "database unreachable", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
