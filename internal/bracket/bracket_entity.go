package bracket

import (
	"time"

	bracketerrors "go-payroll/internal/bracket/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind selects which input a bracket set is keyed by.
type Kind string

const (
	KindServiceYears Kind = "service_years"
	KindAbsenceDays  Kind = "absence_days"
)

func ParseKind(v string) (Kind, error) {
	switch k := Kind(v); k {
	case KindServiceYears, KindAbsenceDays:
		return k, nil
	default:
		return "", bracketerrors.ErrInvalidKind
	}
}

// Bracket maps the closed interval [MinBound, MaxBound] to a percentage.
// A nil MaxBound is unbounded above.
type Bracket struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind       Kind      `gorm:"type:varchar(20);not null;index:idx_bracket_kind_active"`
	Label      string    `gorm:"type:varchar(120)"`
	MinBound   int       `gorm:"not null"`
	MaxBound   *int
	Percentage decimal.Decimal `gorm:"type:numeric(7,2);not null"`
	Active     bool            `gorm:"not null;index:idx_bracket_kind_active"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Bracket) TableName() string {
	return "interval_brackets"
}

// Contains reports whether input falls inside the bracket. Both bounds are inclusive.
func (b Bracket) Contains(input int) bool {
	if input < b.MinBound {
		return false
	}
	return b.MaxBound == nil || input <= *b.MaxBound
}
