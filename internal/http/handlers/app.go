package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"plastictrack/internal/detect"
	"plastictrack/internal/domain"
	"plastictrack/internal/storage"
)

// App holds the request handlers' dependencies. The detector status is
// resolved once at startup and injected, so handlers never consult global
// model state.
type App struct {
	Ledger         domain.UsageLedger
	Store          *storage.FileStore
	Detector       detect.Detector
	DetectorStatus detect.Status
	Logger         zerolog.Logger
	MaxUploadBytes int64
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes the structured error body every failure returns; clients
// never see a raw trace.
func (a *App) error(w http.ResponseWriter, code int, message string) {
	a.json(w, code, map[string]string{"status": "error", "error": message})
}
