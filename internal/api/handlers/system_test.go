package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fundsight/Fund-Monitor-Backend/internal/testutil"
)

func TestSystemHandler_Health(t *testing.T) {
	setupHandler := func(t *testing.T) (*SystemHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ss := testutil.NewTestSystemService(t, db)
		return NewSystemHandler(ss), db
	}

	t.Run("returns ok when the database is connected", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp map[string]string
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp["status"] != "ok" {
			t.Errorf("Expected status ok, got %q", resp["status"])
		}
	})

	t.Run("returns 503 when the database is disconnected", func(t *testing.T) {
		handler, db := setupHandler(t)

		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}
	})
}
