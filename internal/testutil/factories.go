package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
)

// VehicleBuilder provides a fluent interface for creating test vehicles.
//
// Example usage:
//
//	// Simple creation with defaults
//	vehicle := testutil.NewVehicle().Build(t, db)
//
//	// Customized vehicle
//	vehicle := testutil.NewVehicle().
//	    WithName("Crypto Fund II").
//	    WithDescription("Liquid token vehicle").
//	    Build(t, db)
type VehicleBuilder struct {
	ID          string
	Name        string
	Description string
}

// NewVehicle creates a VehicleBuilder with sensible defaults.
func NewVehicle() *VehicleBuilder {
	return &VehicleBuilder{
		ID:          MakeID(),
		Name:        "Test Vehicle",
		Description: "Test description",
	}
}

// WithID sets a custom ID.
func (b *VehicleBuilder) WithID(id string) *VehicleBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *VehicleBuilder) WithName(name string) *VehicleBuilder {
	b.Name = name
	return b
}

// WithDescription sets a custom description.
func (b *VehicleBuilder) WithDescription(desc string) *VehicleBuilder {
	b.Description = desc
	return b
}

// Build creates the vehicle in the database and returns it.
func (b *VehicleBuilder) Build(t *testing.T, db *sql.DB) model.Vehicle {
	t.Helper()

	query := `
		INSERT INTO vehicle (id, name, description)
		VALUES (?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Description)
	if err != nil {
		t.Fatalf("Failed to create test vehicle: %v", err)
	}

	return model.Vehicle{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
	}
}

// ProjectBuilder provides a fluent interface for creating test projects.
//
// Example usage:
//
//	project := testutil.NewProject().
//	    WithID("acme").
//	    WithName("Acme Protocol").
//	    WithStack("Infrastructure").
//	    WithCoingeckoID("acme-token").
//	    Build(t, db)
type ProjectBuilder struct {
	ID          string
	Name        string
	Stack       string
	Tag         string
	SubTag      string
	CoingeckoID string
}

// NewProject creates a ProjectBuilder with sensible defaults.
func NewProject() *ProjectBuilder {
	return &ProjectBuilder{
		ID:   MakeID(),
		Name: "Test Project",
	}
}

// WithID sets a custom ID.
func (b *ProjectBuilder) WithID(id string) *ProjectBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *ProjectBuilder) WithName(name string) *ProjectBuilder {
	b.Name = name
	return b
}

// WithStack sets the stack classification.
func (b *ProjectBuilder) WithStack(stack string) *ProjectBuilder {
	b.Stack = stack
	return b
}

// WithTag sets the tag classification.
func (b *ProjectBuilder) WithTag(tag string) *ProjectBuilder {
	b.Tag = tag
	return b
}

// WithSubTag sets the sub-tag classification.
func (b *ProjectBuilder) WithSubTag(subTag string) *ProjectBuilder {
	b.SubTag = subTag
	return b
}

// WithCoingeckoID marks the project's token as listed (post-TGE).
func (b *ProjectBuilder) WithCoingeckoID(id string) *ProjectBuilder {
	b.CoingeckoID = id
	return b
}

// Build creates the project in the database and returns its metadata.
func (b *ProjectBuilder) Build(t *testing.T, db *sql.DB) model.ProjectMeta {
	t.Helper()

	query := `
		INSERT INTO project (id, name, stack, tag, sub_tag, coingecko_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name,
		nullIfEmpty(b.Stack), nullIfEmpty(b.Tag), nullIfEmpty(b.SubTag), nullIfEmpty(b.CoingeckoID))
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}

	return model.ProjectMeta{
		ID:          b.ID,
		Name:        b.Name,
		Stack:       b.Stack,
		Tag:         b.Tag,
		SubTag:      b.SubTag,
		CoingeckoID: b.CoingeckoID,
	}
}

// CostEventBuilder provides a fluent interface for creating test cost events.
//
// Example usage:
//
//	testutil.NewCostEvent(vehicle.ID, "acme").
//	    WithAssetClass("Pre-Seed").
//	    WithDate("2024-03-15").
//	    WithDelta(100000).
//	    Build(t, db)
type CostEventBuilder struct {
	VehicleID        string
	ProjectID        string
	AssetClass       string // empty inserts NULL
	Date             string
	DeltaCost        float64
	OutcomeType      string
	EstablishedType  string
	OwnershipPct     *float64
	OverallValuation *float64
}

// NewCostEvent creates a CostEventBuilder with sensible defaults.
func NewCostEvent(vehicleID, projectID string) *CostEventBuilder {
	return &CostEventBuilder{
		VehicleID:  vehicleID,
		ProjectID:  projectID,
		AssetClass: "Seed",
		Date:       "2024-01-01",
		DeltaCost:  100000,
	}
}

// WithAssetClass sets the asset class. An empty string inserts NULL.
func (b *CostEventBuilder) WithAssetClass(class string) *CostEventBuilder {
	b.AssetClass = class
	return b
}

// WithDate sets the reporting date (format: 2006-01-02).
func (b *CostEventBuilder) WithDate(date string) *CostEventBuilder {
	b.Date = date
	return b
}

// WithDelta sets the cost basis change.
func (b *CostEventBuilder) WithDelta(delta float64) *CostEventBuilder {
	b.DeltaCost = delta
	return b
}

// WithOutcomeType sets the outcome type.
func (b *CostEventBuilder) WithOutcomeType(outcomeType string) *CostEventBuilder {
	b.OutcomeType = outcomeType
	return b
}

// WithEstablishedType sets the established type.
func (b *CostEventBuilder) WithEstablishedType(establishedType string) *CostEventBuilder {
	b.EstablishedType = establishedType
	return b
}

// WithOwnershipPct sets the overall ownership percentage.
func (b *CostEventBuilder) WithOwnershipPct(pct float64) *CostEventBuilder {
	b.OwnershipPct = &pct
	return b
}

// WithOverallValuation sets the overall company/network valuation.
func (b *CostEventBuilder) WithOverallValuation(valuation float64) *CostEventBuilder {
	b.OverallValuation = &valuation
	return b
}

// Build creates the cost event in the database and returns it. Referenced
// vehicle and project rows are created on demand so tests can seed ledgers
// without building parents first.
func (b *CostEventBuilder) Build(t *testing.T, db *sql.DB) model.CostEvent {
	t.Helper()

	ensureVehicle(t, db, b.VehicleID)
	ensureProject(t, db, b.ProjectID)

	query := `
		INSERT INTO cost_event (
			vehicle_id, project_id, asset_class, date_reported, delta_cost,
			outcome_type, established_type, overall_ownership_percentage, overall_valuation
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.Exec(query,
		b.VehicleID, b.ProjectID, nullIfEmpty(b.AssetClass), b.Date, b.DeltaCost,
		nullIfEmpty(b.OutcomeType), nullIfEmpty(b.EstablishedType), b.OwnershipPct, b.OverallValuation)
	if err != nil {
		t.Fatalf("Failed to create test cost event: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read cost event ID: %v", err)
	}

	return model.CostEvent{
		ID:               id,
		VehicleID:        b.VehicleID,
		ProjectID:        b.ProjectID,
		AssetClass:       b.AssetClass,
		DateReported:     MakeDate(t, b.Date),
		DeltaCost:        b.DeltaCost,
		OutcomeType:      b.OutcomeType,
		EstablishedType:  b.EstablishedType,
		OwnershipPct:     b.OwnershipPct,
		OverallValuation: b.OverallValuation,
	}
}

// SnapshotBuilder provides a fluent interface for creating test valuation
// snapshots.
//
// Example usage:
//
//	testutil.NewSnapshot(vehicle.ID, "acme").
//	    WithAssetClass("Token").
//	    WithPortfolioDate("2024-06-30").
//	    WithUnrealized(250000).
//	    Build(t, db)
type SnapshotBuilder struct {
	VehicleID     string
	ProjectID     string
	AssetClass    string
	PortfolioDate string
	UnrealizedMV  float64
	RealizedMV    float64
}

// NewSnapshot creates a SnapshotBuilder with sensible defaults.
func NewSnapshot(vehicleID, projectID string) *SnapshotBuilder {
	return &SnapshotBuilder{
		VehicleID:     vehicleID,
		ProjectID:     projectID,
		AssetClass:    "Seed",
		PortfolioDate: "2024-06-30",
	}
}

// WithAssetClass sets the asset class.
func (b *SnapshotBuilder) WithAssetClass(class string) *SnapshotBuilder {
	b.AssetClass = class
	return b
}

// WithPortfolioDate sets the snapshot date (format: 2006-01-02).
func (b *SnapshotBuilder) WithPortfolioDate(date string) *SnapshotBuilder {
	b.PortfolioDate = date
	return b
}

// WithUnrealized sets the unrealized market value.
func (b *SnapshotBuilder) WithUnrealized(mv float64) *SnapshotBuilder {
	b.UnrealizedMV = mv
	return b
}

// WithRealized sets the realized market value.
func (b *SnapshotBuilder) WithRealized(mv float64) *SnapshotBuilder {
	b.RealizedMV = mv
	return b
}

// Build creates the snapshot in the database and returns it.
func (b *SnapshotBuilder) Build(t *testing.T, db *sql.DB) model.ValuationSnapshot {
	t.Helper()

	ensureVehicle(t, db, b.VehicleID)
	ensureProject(t, db, b.ProjectID)

	query := `
		INSERT INTO valuation_snapshot (
			vehicle_id, project_id, asset_class, portfolio_date,
			unrealized_market_value, realized_market_value
		)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := db.Exec(query,
		b.VehicleID, b.ProjectID, b.AssetClass, b.PortfolioDate, b.UnrealizedMV, b.RealizedMV)
	if err != nil {
		t.Fatalf("Failed to create test snapshot: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read snapshot ID: %v", err)
	}

	return model.ValuationSnapshot{
		ID:            id,
		VehicleID:     b.VehicleID,
		ProjectID:     b.ProjectID,
		AssetClass:    b.AssetClass,
		PortfolioDate: MakeDate(t, b.PortfolioDate),
		UnrealizedMV:  b.UnrealizedMV,
		RealizedMV:    b.RealizedMV,
	}
}

// Convenience functions

// CreateVehicle creates a vehicle with the given name and default values.
//
// Example usage:
//
//	vehicle := testutil.CreateVehicle(t, db, "Venture Fund I")
func CreateVehicle(t *testing.T, db *sql.DB, name string) model.Vehicle {
	t.Helper()
	return NewVehicle().WithName(name).Build(t, db)
}

// CreateProject creates a project with the given ID and name.
//
// Example usage:
//
//	project := testutil.CreateProject(t, db, "acme", "Acme Protocol")
func CreateProject(t *testing.T, db *sql.DB, id, name string) model.ProjectMeta {
	t.Helper()
	return NewProject().WithID(id).WithName(name).Build(t, db)
}

// ensureVehicle inserts a placeholder vehicle row if none exists, so
// foreign keys on seeded rows hold.
func ensureVehicle(t *testing.T, db *sql.DB, id string) {
	t.Helper()

	_, err := db.Exec(`INSERT OR IGNORE INTO vehicle (id, name, description) VALUES (?, ?, '')`, id, id)
	if err != nil {
		t.Fatalf("Failed to ensure test vehicle: %v", err)
	}
}

// ensureProject inserts a placeholder project row if none exists.
func ensureProject(t *testing.T, db *sql.DB, id string) {
	t.Helper()

	_, err := db.Exec(`INSERT OR IGNORE INTO project (id, name) VALUES (?, ?)`, id, id)
	if err != nil {
		t.Fatalf("Failed to ensure test project: %v", err)
	}
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// MakeDate parses a 2006-01-02 date string, failing the test on bad input.
//
// Example usage:
//
//	date := testutil.MakeDate(t, "2024-06-30")
func MakeDate(t *testing.T, date string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("Failed to parse test date %q: %v", date, err)
	}
	return parsed
}
