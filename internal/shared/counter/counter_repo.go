package counter

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Repository hands out monotonically increasing values per key, shared by every
// process using the same database.
type Repository interface {
	NextValue(ctx context.Context, counterKey string) (int64, error)
}

// PayrollRunKey numbers the batch runs of one payroll month.
func PayrollRunKey(year, month int) string {
	return fmt.Sprintf("payroll_run:%04d-%02d", year, month)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const nextValueQuery = `
INSERT INTO counters (counter_key, last_value, updated_at)
VALUES (?, 1, now())
ON CONFLICT (counter_key) DO UPDATE
SET last_value = counters.last_value + 1, updated_at = now()
RETURNING last_value
`

func (r *repository) NextValue(ctx context.Context, counterKey string) (int64, error) {
	var nextValue int64

	// Single upsert so concurrent callers never observe the same value.
	err := r.db.WithContext(ctx).Raw(nextValueQuery, counterKey).Scan(&nextValue).Error
	if err != nil {
		return 0, fmt.Errorf("next value for %s: %w", counterKey, err)
	}

	return nextValue, nil
}
