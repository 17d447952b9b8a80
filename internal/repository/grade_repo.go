package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/b4os-dev/classboard-api/internal/models"
)

// GradeRepository provides read access to the raw grade rows synced from
// GitHub Classroom.
type GradeRepository interface {
	ListAll(ctx context.Context) ([]models.Grade, error)
	ListByStudent(ctx context.Context, username string) ([]models.Grade, error)
	CountDistinctStudents(ctx context.Context) (int64, error)
}

type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository constructs a GORM-backed grade repository.
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) ListAll(ctx context.Context) ([]models.Grade, error) {
	var grades []models.Grade
	if err := r.db.WithContext(ctx).
		Order("github_username ASC, assignment_name ASC").
		Find(&grades).Error; err != nil {
		return nil, err
	}

	return grades, nil
}

func (r *gradeRepository) ListByStudent(ctx context.Context, username string) ([]models.Grade, error) {
	var grades []models.Grade
	if err := r.db.WithContext(ctx).
		Where("github_username = ?", username).
		Order("assignment_name ASC").
		Find(&grades).Error; err != nil {
		return nil, err
	}

	return grades, nil
}

func (r *gradeRepository) CountDistinctStudents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Grade{}).
		Distinct("github_username").
		Count(&count).Error
	return count, err
}
