package service

import (
	"database/sql"

	"github.com/fundsight/Fund-Monitor-Backend/internal/database"
)

// SystemService handles system-level operations such as health checks.
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService with the provided database connection.
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// Health verifies that the database connection is alive.
func (s *SystemService) Health() error {
	return database.HealthCheck(s.db)
}
