package repo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"plastictrack/internal/domain"
)

type memKey struct {
	email     string
	entryDate string
	label     string
}

// UsageRepositoryMem is an in-memory ledger for development and tests. All
// access is serialized through one mutex, which is sufficient at dev-mode
// request rates and gives the same no-lost-updates guarantee as the Postgres
// upsert.
type UsageRepositoryMem struct {
	mu      sync.Mutex
	records map[memKey]*domain.UsageRecord
}

// NewUsageRepositoryMem constructs an empty in-memory ledger.
func NewUsageRepositoryMem() *UsageRepositoryMem {
	return &UsageRepositoryMem{records: make(map[memKey]*domain.UsageRecord)}
}

// UpsertCounts adds each increment to its record, creating records on first
// sight with a fresh id.
func (r *UsageRepositoryMem) UpsertCounts(ctx context.Context, email, entryDate string, increments map[string]int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for label, delta := range increments {
		if delta <= 0 {
			continue
		}
		key := memKey{email: email, entryDate: entryDate, label: label}
		if rec, ok := r.records[key]; ok {
			rec.Count += delta
			rec.UpdatedAt = now
			continue
		}
		r.records[key] = &domain.UsageRecord{
			ID:        uuid.NewString(),
			Email:     email,
			EntryDate: entryDate,
			Label:     label,
			Count:     delta,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return nil
}

// GetSummary returns the counts for one (email, entryDate) partition.
func (r *UsageRepositoryMem) GetSummary(ctx context.Context, email, entryDate string) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	summary := make(map[string]int)
	for key, rec := range r.records {
		if key.email == email && key.entryDate == entryDate {
			summary[key.label] = rec.Count
		}
	}
	return summary, nil
}

var _ domain.UsageLedger = (*UsageRepositoryMem)(nil)
