package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/b4os-dev/classboard-api/internal/models"
)

// ReviewCommentFilter narrows comment queries. A nil AssignmentName returns
// comments across every assignment for the student.
type ReviewCommentFilter struct {
	StudentUsername string
	AssignmentName  *string
}

// ReviewRepository defines persistence operations for review assignments and
// their comments.
type ReviewRepository interface {
	CreateAssignment(ctx context.Context, review *models.ReviewAssignment) error
	GetAssignmentByID(ctx context.Context, id uint) (models.ReviewAssignment, error)
	ListByStudent(ctx context.Context, username string) ([]models.ReviewAssignment, error)
	ListAllAssignments(ctx context.Context) ([]models.ReviewAssignment, error)
	UpdateAssignment(ctx context.Context, review *models.ReviewAssignment) error
	DeleteAssignment(ctx context.Context, id uint) error
	CreateComment(ctx context.Context, comment *models.ReviewComment) error
	ListComments(ctx context.Context, filter ReviewCommentFilter) ([]models.ReviewComment, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository constructs a GORM-backed review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateAssignment(ctx context.Context, review *models.ReviewAssignment) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) GetAssignmentByID(ctx context.Context, id uint) (models.ReviewAssignment, error) {
	var review models.ReviewAssignment
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return models.ReviewAssignment{}, err
	}

	return review, nil
}

func (r *reviewRepository) ListByStudent(ctx context.Context, username string) ([]models.ReviewAssignment, error) {
	var reviews []models.ReviewAssignment
	if err := r.db.WithContext(ctx).
		Where("student_username = ?", username).
		Order("assigned_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepository) ListAllAssignments(ctx context.Context) ([]models.ReviewAssignment, error) {
	var reviews []models.ReviewAssignment
	if err := r.db.WithContext(ctx).
		Order("assigned_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepository) UpdateAssignment(ctx context.Context, review *models.ReviewAssignment) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) DeleteAssignment(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ReviewAssignment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepository) CreateComment(ctx context.Context, comment *models.ReviewComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *reviewRepository) ListComments(ctx context.Context, filter ReviewCommentFilter) ([]models.ReviewComment, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ReviewComment{}).
		Where("student_username = ?", filter.StudentUsername)

	if filter.AssignmentName != nil {
		query = query.Where("assignment_name = ?", *filter.AssignmentName)
	}

	var comments []models.ReviewComment
	if err := query.Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}

	return comments, nil
}
