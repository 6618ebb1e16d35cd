package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"plastictrack/internal/adapter/repo"
	"plastictrack/internal/detect"
	"plastictrack/internal/http/handlers"
)

func TestRouterWiresAPIRoutes(t *testing.T) {
	app := &handlers.App{
		Ledger:         repo.NewUsageRepositoryMem(),
		DetectorStatus: detect.Status{Available: true, Loaded: true},
		Logger:         zerolog.Nop(),
	}
	router := NewRouter(app, zerolog.Nop(), []string{"*"})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /api/health = %d, want 200", rr.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode health body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("health body = %v", body)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/summary?email=a%40x.com", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /api/summary = %d, want 200", rr.Code)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("GET /nope = %d, want 404", rr.Code)
	}
}
