package handlers

import (
	"net/http"
)

// Health reports liveness plus the detector state resolved at startup.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"status":                "ok",
		"model_loaded":          a.DetectorStatus.Loaded,
		"ultralytics_available": a.DetectorStatus.Available,
	})
}
