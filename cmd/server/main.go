package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fundsight/Fund-Monitor-Backend/internal/api"
	"github.com/fundsight/Fund-Monitor-Backend/internal/config"
	"github.com/fundsight/Fund-Monitor-Backend/internal/database"
	"github.com/fundsight/Fund-Monitor-Backend/internal/repository"
	"github.com/fundsight/Fund-Monitor-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	costEventRepo := repository.NewCostEventRepository(db)
	valuationRepo := repository.NewValuationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	vehicleService := service.NewVehicleService(vehicleRepo)
	positionService := service.NewPositionService(
		costEventRepo,
		valuationRepo,
		projectRepo,
		vehicleRepo,
	)
	coverageService := service.NewCoverageService(
		costEventRepo,
		valuationRepo,
		valuationRepo,
		projectRepo,
		vehicleRepo,
	)

	// Schedule the snapshot coverage check
	scheduler := cron.New()
	if cfg.Coverage.Enabled {
		_, err := scheduler.AddFunc(cfg.Coverage.Schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			coverageService.LogMissingSnapshots(ctx)
		})
		if err != nil {
			log.Fatalf("Failed to schedule coverage check: %v", err)
		}
		scheduler.Start()
		log.Printf("Coverage check scheduled: %s", cfg.Coverage.Schedule)
	}

	// Create router
	router := api.NewRouter(systemService, vehicleService, positionService, coverageService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	scheduler.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
