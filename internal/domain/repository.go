package domain

import "context"

// UsageLedger accumulates per-day category counts for an identity.
type UsageLedger interface {
	// UpsertCounts adds each increment to the matching record, creating the
	// record on first sight. The whole map is applied atomically: concurrent
	// callers for the same triple must not lose increments, and a failure
	// mid-way must not leave a subset applied.
	UpsertCounts(ctx context.Context, email, entryDate string, increments map[string]int) error

	// GetSummary returns all category counts for the (email, entryDate)
	// partition. An unknown partition yields an empty map, not an error.
	GetSummary(ctx context.Context, email, entryDate string) (map[string]int, error)
}
