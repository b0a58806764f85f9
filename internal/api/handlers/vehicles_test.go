package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fundsight/Fund-Monitor-Backend/internal/testutil"
)

func TestVehicleHandler_Vehicles(t *testing.T) {
	setupHandler := func(t *testing.T) (*VehicleHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		vs := testutil.NewTestVehicleService(t, db)
		ps := testutil.NewTestPositionService(t, db)
		return NewVehicleHandler(vs, ps), db
	}

	t.Run("returns all vehicles", func(t *testing.T) {
		handler, db := setupHandler(t)
		testutil.CreateVehicle(t, db, "Alpha Fund")
		testutil.CreateVehicle(t, db, "Beta Fund")

		req := httptest.NewRequest(http.MethodGet, "/api/vehicle/", nil)
		w := httptest.NewRecorder()

		handler.Vehicles(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp []VehicleResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if len(resp) != 2 {
			t.Fatalf("Expected 2 vehicles, got %d", len(resp))
		}
		if resp[0].Name != "Alpha Fund" || resp[1].Name != "Beta Fund" {
			t.Errorf("Expected name-sorted vehicles, got %+v", resp)
		}
	})

	t.Run("returns an empty list for an empty database", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/vehicle/", nil)
		w := httptest.NewRecorder()

		handler.Vehicles(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp []VehicleResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(resp) != 0 {
			t.Errorf("Expected empty list, got %+v", resp)
		}
	})
}

func TestVehicleHandler_Vehicle(t *testing.T) {
	setupHandler := func(t *testing.T) (*VehicleHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		vs := testutil.NewTestVehicleService(t, db)
		ps := testutil.NewTestPositionService(t, db)
		return NewVehicleHandler(vs, ps), db
	}

	t.Run("returns a vehicle by ID", func(t *testing.T) {
		handler, db := setupHandler(t)
		vehicle := testutil.CreateVehicle(t, db, "Alpha Fund")

		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/vehicle/"+vehicle.ID,
			map[string]string{"vehicleID": vehicle.ID})
		w := httptest.NewRecorder()

		handler.Vehicle(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp VehicleResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.ID != vehicle.ID || resp.Name != "Alpha Fund" {
			t.Errorf("Unexpected vehicle: %+v", resp)
		}
	})

	t.Run("returns 404 for an unknown vehicle", func(t *testing.T) {
		handler, _ := setupHandler(t)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/vehicle/"+id,
			map[string]string{"vehicleID": id})
		w := httptest.NewRecorder()

		handler.Vehicle(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects an invalid vehicle ID", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/vehicle/not-a-uuid",
			map[string]string{"vehicleID": "not-a-uuid"})
		w := httptest.NewRecorder()

		handler.Vehicle(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestVehicleHandler_Overview(t *testing.T) {
	setupHandler := func(t *testing.T) (*VehicleHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		vs := testutil.NewTestVehicleService(t, db)
		ps := testutil.NewTestPositionService(t, db)
		return NewVehicleHandler(vs, ps), db
	}

	t.Run("returns one card per vehicle", func(t *testing.T) {
		handler, db := setupHandler(t)
		vehicle := seedPosition(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/vehicle/overview",
			map[string]string{"portfolio_date": "2024-06-30"})
		w := httptest.NewRecorder()

		handler.Overview(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp OverviewResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if resp.PortfolioDate != "2024-06-30" {
			t.Errorf("Expected portfolio date echoed back, got %q", resp.PortfolioDate)
		}
		if len(resp.Vehicles) != 1 {
			t.Fatalf("Expected 1 card, got %d", len(resp.Vehicles))
		}

		card := resp.Vehicles[0]
		if card.VehicleID != vehicle.ID || card.ProjectCount != 1 {
			t.Errorf("Unexpected card: %+v", card)
		}
		if card.Cost != 100000 || card.TotalMV != 300000 || card.MOIC != 3 {
			t.Errorf("Unexpected card figures: %+v", card)
		}
	})

	t.Run("rejects a missing portfolio date", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/vehicle/overview", nil)
		w := httptest.NewRecorder()

		handler.Overview(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
