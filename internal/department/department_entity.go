package department

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Department carries the flat incentive percentage paid on top of base salary
// to everyone assigned to it.
type Department struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name                string          `gorm:"size:255;not null"`
	IncentivePercentage decimal.Decimal `gorm:"type:numeric(7,2);not null;default:0"`
	CreatedAt           time.Time       `gorm:"autoCreateTime"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime"`
	DeletedAt           gorm.DeletedAt  `gorm:"index"`
}
