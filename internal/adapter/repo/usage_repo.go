package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"plastictrack/internal/domain"
)

// UsageRepositoryPG implements domain.UsageLedger using PostgreSQL. The
// increment is pushed into the upsert statement itself, so concurrent
// requests for the same (email, entry_date, label) triple serialize on the
// row instead of racing a read-modify-write in the application.
type UsageRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUsageRepository constructs the repository.
func NewUsageRepository(pool *pgxpool.Pool) *UsageRepositoryPG {
	return &UsageRepositoryPG{pool: pool}
}

const upsertUsageSQL = `
INSERT INTO usage_records (id, email, entry_date, label, count)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (email, entry_date, label) DO UPDATE SET
    count = usage_records.count + EXCLUDED.count,
    updated_at = now();
`

// UpsertCounts applies the whole increment map in one transaction, so a
// failure mid-way rolls back entirely rather than leaving a subset applied.
func (r *UsageRepositoryPG) UpsertCounts(ctx context.Context, email, entryDate string, increments map[string]int) error {
	if len(increments) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("usage: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for label, delta := range increments {
		if delta <= 0 {
			continue
		}
		if _, err := tx.Exec(ctx, upsertUsageSQL, uuid.NewString(), email, entryDate, label, delta); err != nil {
			return fmt.Errorf("usage: upsert %s: %w", label, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("usage: commit: %w", err)
	}
	return nil
}

// GetSummary returns all category counts for the (email, entryDate)
// partition. An unknown partition is a normal state and yields an empty map.
func (r *UsageRepositoryPG) GetSummary(ctx context.Context, email, entryDate string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
SELECT label, count
FROM usage_records
WHERE email = $1 AND entry_date = $2;
`, email, entryDate)
	if err != nil {
		return nil, fmt.Errorf("usage: query summary: %w", err)
	}
	defer rows.Close()

	summary := make(map[string]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, fmt.Errorf("usage: scan summary: %w", err)
		}
		summary[label] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("usage: iterate summary: %w", err)
	}
	return summary, nil
}

var _ domain.UsageLedger = (*UsageRepositoryPG)(nil)
