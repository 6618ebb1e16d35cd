package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"plastictrack/internal/detect"
	"plastictrack/internal/domain"
)

const defaultMaxUploadBytes = 20 << 20

type uploadResponse struct {
	Status     string         `json:"status"`
	Note       string         `json:"note,omitempty"`
	Detections map[string]int `json:"detections"`
	Summary    map[string]int `json:"summary"`
}

// Upload accepts a multipart image, runs it through the detector and
// accumulates the mapped category counts into the caller's daily ledger.
// Validation happens before any file write; inference happens before any
// ledger access, so no ledger lock is ever held across the model call.
func (a *App) Upload(w http.ResponseWriter, r *http.Request) {
	limit := a.MaxUploadBytes
	if limit <= 0 {
		limit = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		a.error(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		a.error(w, http.StatusBadRequest, domain.ErrMissingIdentity.Error())
		return
	}
	entryDate, err := domain.ResolveEntryDate(r.FormValue("the_date"), time.Now())
	if err != nil {
		a.error(w, http.StatusBadRequest, "the_date must be a valid DD-MM-YYYY date")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	imagePath, err := a.Store.SaveUpload(r.Context(), email, entryDate, header.Filename, data)
	if err != nil {
		// Never drop the upload silently, but still answer with whatever the
		// ledger already holds for this partition.
		a.Logger.Error().Err(err).Str("email", email).Str("entry_date", entryDate).Msg("failed to store upload")
		a.degraded(w, r.Context(), email, entryDate, "image could not be stored")
		return
	}
	a.Logger.Info().Str("path", imagePath).Msg("image saved")

	if !a.DetectorStatus.Ready() {
		a.degraded(w, r.Context(), email, entryDate, "detection model not available on server")
		return
	}

	raw, err := a.Detector.Detect(r.Context(), imagePath)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, domain.ErrDetectorUnavailable) {
			a.Logger.Warn().Err(err).Msg("detector not reachable, degrading")
			a.degraded(w, r.Context(), email, entryDate, "detection unavailable")
			return
		}
		a.Logger.Error().Err(err).Str("path", imagePath).Msg("detection failed")
		a.error(w, http.StatusInternalServerError, err.Error())
		return
	}

	detections := detect.Aggregate(raw)
	for label, count := range detections {
		a.Logger.Debug().Str("category", label).Int("count", count).Msg("detected")
	}

	if len(detections) > 0 {
		if err := a.Ledger.UpsertCounts(r.Context(), email, entryDate, detections); err != nil {
			a.Logger.Error().Err(err).Str("email", email).Str("entry_date", entryDate).Msg("failed to persist counts")
			a.error(w, http.StatusInternalServerError, "failed to persist detection counts")
			return
		}
	}

	summary, err := a.Ledger.GetSummary(r.Context(), email, entryDate)
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to load summary")
		a.error(w, http.StatusInternalServerError, "failed to load summary")
		return
	}

	a.json(w, http.StatusOK, uploadResponse{Status: "ok", Detections: detections, Summary: summary})
}

// degraded answers an upload that could not be run through detection: still a
// success, with empty detections, a note and the unchanged summary.
func (a *App) degraded(w http.ResponseWriter, ctx context.Context, email, entryDate, note string) {
	summary, err := a.Ledger.GetSummary(ctx, email, entryDate)
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to load summary")
		a.error(w, http.StatusInternalServerError, "failed to load summary")
		return
	}
	a.json(w, http.StatusOK, uploadResponse{
		Status:     "ok",
		Note:       note,
		Detections: map[string]int{},
		Summary:    summary,
	})
}
