package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"plastictrack/internal/detect"
)

func TestHealthReportsDetectorState(t *testing.T) {
	cases := []struct {
		name   string
		status detect.Status
	}{
		{"ready", detect.Status{Available: true, Loaded: true}},
		{"model missing", detect.Status{Available: true, Loaded: false}},
		{"uninitialized", detect.Status{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := &App{DetectorStatus: tc.status, Logger: zerolog.Nop()}

			rr := httptest.NewRecorder()
			app.Health(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rr.Code)
			}
			var body struct {
				Status               string `json:"status"`
				ModelLoaded          bool   `json:"model_loaded"`
				UltralyticsAvailable bool   `json:"ultralytics_available"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body.Status != "ok" {
				t.Fatalf("status field = %q, want ok", body.Status)
			}
			if body.ModelLoaded != tc.status.Loaded || body.UltralyticsAvailable != tc.status.Available {
				t.Fatalf("body %+v does not reflect %+v", body, tc.status)
			}
		})
	}
}
