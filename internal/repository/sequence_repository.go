package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SequenceRepository backs the counter-based tracking allocator with an
// atomic per-scope counter table.
type SequenceRepository struct {
	db *sqlx.DB
}

// NewSequenceRepository constructs the repository.
func NewSequenceRepository(db *sqlx.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Next increments and returns the counter for the scope (one scope per
// tracking-number year). The upsert makes concurrent callers serialize on
// the row, so two requests never receive the same value.
func (r *SequenceRepository) Next(ctx context.Context, scope string) (int64, error) {
	const query = `INSERT INTO sequence_counters (scope, value) VALUES ($1, 1)
ON CONFLICT (scope) DO UPDATE SET value = sequence_counters.value + 1
RETURNING value`
	var value int64
	if err := r.db.QueryRowContext(ctx, query, scope).Scan(&value); err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", scope, err)
	}
	return value, nil
}

// Reserve advances the counter by n and returns the first value of the
// reserved block. Used to pre-allocate tracking numbers for import batches.
func (r *SequenceRepository) Reserve(ctx context.Context, scope string, n int64) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("reserve sequence %s: block size must be positive", scope)
	}
	const query = `INSERT INTO sequence_counters (scope, value) VALUES ($1, $2)
ON CONFLICT (scope) DO UPDATE SET value = sequence_counters.value + $2
RETURNING value`
	var last int64
	if err := r.db.QueryRowContext(ctx, query, scope, n).Scan(&last); err != nil {
		return 0, fmt.Errorf("reserve sequence %s: %w", scope, err)
	}
	return last - n + 1, nil
}
