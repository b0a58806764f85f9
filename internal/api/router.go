package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fundsight/Fund-Monitor-Backend/internal/api/handlers"
	custommiddleware "github.com/fundsight/Fund-Monitor-Backend/internal/api/middleware"
	"github.com/fundsight/Fund-Monitor-Backend/internal/config"
	"github.com/fundsight/Fund-Monitor-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	vehicleService *service.VehicleService,
	positionService *service.PositionService,
	coverageService *service.CoverageService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
		})

		r.Route("/vehicle", func(r chi.Router) {
			vehicleHandler := handlers.NewVehicleHandler(vehicleService, positionService)
			positionHandler := handlers.NewPositionHandler(positionService)
			coverageHandler := handlers.NewCoverageHandler(coverageService)

			r.Get("/", vehicleHandler.Vehicles)
			r.Get("/overview", vehicleHandler.Overview)

			r.Route("/{vehicleID}", func(r chi.Router) {
				r.Get("/", vehicleHandler.Vehicle)
				r.Get("/rollup", positionHandler.Rollup)
				r.Get("/drilldown", positionHandler.DrillDown)
				r.Get("/coverage", coverageHandler.Coverage)
			})
		})
	})

	return r
}
