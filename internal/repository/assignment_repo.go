package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/b4os-dev/classboard-api/internal/models"
)

// AssignmentRepository provides read access to assignment definitions.
// Assignments are owned by the classroom sync; this API never mutates them.
type AssignmentRepository interface {
	List(ctx context.Context) ([]models.Assignment, error)
	GetByName(ctx context.Context, name string) (models.Assignment, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository constructs a GORM-backed assignment repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) GetByName(ctx context.Context, name string) (models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&assignment).Error; err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}
