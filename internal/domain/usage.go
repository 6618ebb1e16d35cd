package domain

import (
	"fmt"
	"strings"
	"time"
)

// Categories recognised by the label mapper. Other collects every label that
// matches no keyword set.
const (
	CategoryBottle    = "Bottle"
	CategoryBag       = "Bag"
	CategoryCup       = "Cup"
	CategoryStraw     = "Straw"
	CategoryContainer = "Container"
	CategoryPlastic   = "Plastic"
	CategoryOther     = "Other"
)

// EntryDateLayout is the DD-MM-YYYY key that partitions the ledger by day.
// Dates are plain calendar strings with no timezone semantics.
const EntryDateLayout = "02-01-2006"

// UsageRecord is one accumulated counter for an (email, entry date, category)
// triple. At most one record exists per triple; its count only grows.
type UsageRecord struct {
	ID        string
	Email     string
	EntryDate string
	Label     string
	Count     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResolveEntryDate returns the ledger partition key for a client-supplied
// date. An empty input falls back to the current server date. A malformed
// input is rejected so it cannot create an orphaned partition; well-formed
// dates are re-formatted so variants like "1-2-2025" and "01-02-2025" land
// in the same bucket.
func ResolveEntryDate(raw string, now time.Time) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.Format(EntryDateLayout), nil
	}
	t, err := time.Parse(EntryDateLayout, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t.Format(EntryDateLayout), nil
}
