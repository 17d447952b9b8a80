package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/b4os-dev/classboard-api/internal/models"
)

// StudentRepository provides read access to the program roster.
type StudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	GetByUsername(ctx context.Context, username string) (models.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a GORM-backed student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Order("github_username ASC").Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) GetByUsername(ctx context.Context, username string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("github_username = ?", username).First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}
