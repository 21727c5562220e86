package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"jobtrail/internal/config"
	"jobtrail/internal/store"
	"jobtrail/pkg/models"
)

func seedStore(t *testing.T) store.Store {
	t.Helper()
	st := store.NewMemoryStore()
	recs := []*models.ApplicationRec{
		{ID: "acme corp::engineer", Company: "Acme Corp", Status: models.StatusRejected, ApplicationDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "globex::engineer", Company: "Globex", Status: models.StatusPending, ApplicationDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
	}
	if err := st.Save(context.Background(), "me", recs); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	return st
}

func TestApplicationsHandlerStatusFilter(t *testing.T) {
	cfg := &config.Config{}
	cfg.Gmail.UserID = "me"
	handler := ApplicationsHandler(cfg, seedStore(t))

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantCount int
	}{
		{"no filter", "", http.StatusOK, 2},
		{"rejected only", "?status=rejected", http.StatusOK, 1},
		{"no matches", "?status=offer", http.StatusOK, 0},
		{"unknown status", "?status=ghosted", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/applications"+tt.query, nil)
			rec := httptest.NewRecorder()

			if err := handler(e.NewContext(req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			var body struct {
				Count int `json:"count"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if body.Count != tt.wantCount {
				t.Errorf("count = %d, want %d", body.Count, tt.wantCount)
			}
		})
	}
}
