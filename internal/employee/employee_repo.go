package employee

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository is the read side of the employee directory. Soft-deleted and
// inactive employees are never returned.
type Repository interface {
	FindActive(ctx context.Context) ([]Employee, error)
	FindActiveByID(ctx context.Context, id string) (*Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindActive(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("active = ?", true).
		Order("full_name ASC").
		Order("id ASC").
		Find(&employees).Error
	return employees, err
}

// FindActiveByID returns nil, nil when no active employee has the id.
func (r *repository) FindActiveByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("active = ?", true).
		First(&empl, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &empl, nil
}
