package handlers

import (
	"net/http"
	"strings"
	"time"

	"plastictrack/internal/domain"
)

// Summary returns the accumulated category counts for one identity and day.
// An identity or day the ledger has never seen yields an empty summary.
func (a *App) Summary(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		a.error(w, http.StatusBadRequest, domain.ErrMissingIdentity.Error())
		return
	}
	entryDate, err := domain.ResolveEntryDate(r.URL.Query().Get("the_date"), time.Now())
	if err != nil {
		a.error(w, http.StatusBadRequest, "the_date must be a valid DD-MM-YYYY date")
		return
	}

	summary, err := a.Ledger.GetSummary(r.Context(), email, entryDate)
	if err != nil {
		a.Logger.Error().Err(err).Str("email", email).Str("entry_date", entryDate).Msg("failed to load summary")
		a.error(w, http.StatusInternalServerError, "failed to load summary")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"date":    entryDate,
		"summary": summary,
	})
}
