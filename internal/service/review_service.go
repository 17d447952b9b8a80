package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/b4os-dev/classboard-api/internal/dto"
	"github.com/b4os-dev/classboard-api/internal/models"
	"github.com/b4os-dev/classboard-api/internal/repository"
)

// ErrReviewNotFound indicates the referenced review assignment does not exist.
var ErrReviewNotFound = errors.New("review assignment not found")

// ErrScoreOutOfRange indicates a quality score outside the 1-10 range.
var ErrScoreOutOfRange = fmt.Errorf("quality score must be between %d and %d", models.MinQualityScore, models.MaxQualityScore)

// ErrInvalidReviewStatus indicates an unknown target status.
var ErrInvalidReviewStatus = errors.New("invalid review status")

// ReviewService exposes the peer-review workflow use cases.
type ReviewService interface {
	AssignReviewer(ctx context.Context, payload dto.AssignReviewerRequest) (dto.ReviewAssignmentResponse, error)
	UpdateStatus(ctx context.Context, id uint, payload dto.UpdateReviewStatusRequest) (dto.ReviewAssignmentResponse, error)
	UpdateQualityScore(ctx context.Context, id uint, payload dto.UpdateQualityScoreRequest) (dto.ReviewAssignmentResponse, error)
	RemoveReviewer(ctx context.Context, id uint) error
	ListForStudent(ctx context.Context, username string) ([]dto.ReviewAssignmentResponse, error)
	AddComment(ctx context.Context, payload dto.AddReviewCommentRequest) (dto.ReviewCommentResponse, error)
	ListComments(ctx context.Context, username string, assignment *string) ([]dto.ReviewCommentResponse, error)
	StudentSummary(ctx context.Context, username string) (dto.ReviewStatusSummary, error)
	SummaryByStudent(ctx context.Context) (map[string]dto.ReviewStatusSummary, error)
}

type reviewService struct {
	repo      repository.ReviewRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewReviewService builds the review workflow service.
func NewReviewService(repo repository.ReviewRepository, validate *validator.Validate, logger zerolog.Logger) ReviewService {
	return &reviewService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "review_service").Logger(),
		now:       time.Now,
	}
}

func (s *reviewService) AssignReviewer(ctx context.Context, payload dto.AssignReviewerRequest) (dto.ReviewAssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ReviewAssignmentResponse{}, err
	}

	review := models.ReviewAssignment{
		StudentUsername:  payload.StudentUsername,
		ReviewerUsername: payload.ReviewerUsername,
		AssignmentName:   payload.AssignmentName,
		Status:           models.ReviewStatusPending,
		AssignedAt:       s.now(),
	}

	if err := s.repo.CreateAssignment(ctx, &review); err != nil {
		return dto.ReviewAssignmentResponse{}, err
	}

	s.logger.Info().
		Uint("review_id", review.ID).
		Str("student", review.StudentUsername).
		Str("reviewer", review.ReviewerUsername).
		Str("assignment", review.AssignmentName).
		Msg("reviewer assigned")

	return dto.NewReviewAssignmentResponse(review), nil
}

// UpdateStatus accepts any of the known states as a target; the forward-only
// pending -> in_progress -> completed progression is a calling convention,
// not a data-layer invariant. CompletedAt is stamped exactly when the review
// enters completed and cleared when it leaves.
func (s *reviewService) UpdateStatus(ctx context.Context, id uint, payload dto.UpdateReviewStatusRequest) (dto.ReviewAssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ReviewAssignmentResponse{}, err
	}
	if !models.IsValidReviewStatus(payload.Status) {
		return dto.ReviewAssignmentResponse{}, ErrInvalidReviewStatus
	}

	review, err := s.repo.GetAssignmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ReviewAssignmentResponse{}, ErrReviewNotFound
		}
		return dto.ReviewAssignmentResponse{}, err
	}

	review.Status = payload.Status
	switch payload.Status {
	case models.ReviewStatusCompleted:
		if review.CompletedAt == nil {
			completedAt := s.now()
			review.CompletedAt = &completedAt
		}
	default:
		review.CompletedAt = nil
	}

	if err := s.repo.UpdateAssignment(ctx, &review); err != nil {
		return dto.ReviewAssignmentResponse{}, err
	}

	s.logger.Info().Uint("review_id", review.ID).Str("status", review.Status).Msg("review status updated")

	return dto.NewReviewAssignmentResponse(review), nil
}

// UpdateQualityScore rates the submission independently of status. Values
// outside [1,10] are rejected, never clamped.
func (s *reviewService) UpdateQualityScore(ctx context.Context, id uint, payload dto.UpdateQualityScoreRequest) (dto.ReviewAssignmentResponse, error) {
	if payload.Score < models.MinQualityScore || payload.Score > models.MaxQualityScore {
		return dto.ReviewAssignmentResponse{}, ErrScoreOutOfRange
	}

	review, err := s.repo.GetAssignmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ReviewAssignmentResponse{}, ErrReviewNotFound
		}
		return dto.ReviewAssignmentResponse{}, err
	}

	score := payload.Score
	review.CodeQualityScore = &score

	if err := s.repo.UpdateAssignment(ctx, &review); err != nil {
		return dto.ReviewAssignmentResponse{}, err
	}

	s.logger.Info().Uint("review_id", review.ID).Int("score", score).Msg("quality score updated")

	return dto.NewReviewAssignmentResponse(review), nil
}

func (s *reviewService) RemoveReviewer(ctx context.Context, id uint) error {
	if err := s.repo.DeleteAssignment(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	s.logger.Info().Uint("review_id", id).Msg("reviewer removed")
	return nil
}

func (s *reviewService) ListForStudent(ctx context.Context, username string) ([]dto.ReviewAssignmentResponse, error) {
	reviews, err := s.repo.ListByStudent(ctx, username)
	if err != nil {
		return nil, err
	}

	return dto.NewReviewAssignmentResponseSlice(reviews), nil
}

func (s *reviewService) AddComment(ctx context.Context, payload dto.AddReviewCommentRequest) (dto.ReviewCommentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ReviewCommentResponse{}, err
	}

	comment := models.ReviewComment{
		StudentUsername:  payload.StudentUsername,
		ReviewerUsername: payload.ReviewerUsername,
		AssignmentName:   payload.AssignmentName,
		Comment:          payload.Comment,
		CommentType:      payload.CommentType,
		Priority:         payload.Priority,
	}

	if err := s.repo.CreateComment(ctx, &comment); err != nil {
		return dto.ReviewCommentResponse{}, err
	}

	return dto.NewReviewCommentResponse(comment), nil
}

func (s *reviewService) ListComments(ctx context.Context, username string, assignment *string) ([]dto.ReviewCommentResponse, error) {
	comments, err := s.repo.ListComments(ctx, repository.ReviewCommentFilter{
		StudentUsername: username,
		AssignmentName:  assignment,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewReviewCommentResponseSlice(comments), nil
}

func (s *reviewService) StudentSummary(ctx context.Context, username string) (dto.ReviewStatusSummary, error) {
	reviews, err := s.repo.ListByStudent(ctx, username)
	if err != nil {
		return dto.ReviewStatusSummary{}, err
	}

	return buildReviewSummary(reviews), nil
}

// SummaryByStudent groups every review assignment by student username, for
// the dashboard join against leaderboard entries.
func (s *reviewService) SummaryByStudent(ctx context.Context) (map[string]dto.ReviewStatusSummary, error) {
	reviews, err := s.repo.ListAllAssignments(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.ReviewAssignment)
	for _, review := range reviews {
		grouped[review.StudentUsername] = append(grouped[review.StudentUsername], review)
	}

	summaries := make(map[string]dto.ReviewStatusSummary, len(grouped))
	for username, studentReviews := range grouped {
		summaries[username] = buildReviewSummary(studentReviews)
	}

	return summaries, nil
}

// buildReviewSummary aggregates one student's reviewer records. The latest
// reviewer is the most recently assigned one; the average quality score is
// the rounded mean over all scored records, not just the latest.
func buildReviewSummary(reviews []models.ReviewAssignment) dto.ReviewStatusSummary {
	if len(reviews) == 0 {
		return dto.ReviewStatusSummary{}
	}

	summary := dto.ReviewStatusSummary{
		HasReviewer:  true,
		TotalReviews: len(reviews),
	}

	var latest models.ReviewAssignment
	var scoreTotal int
	for _, review := range reviews {
		if latest.ID == 0 || review.AssignedAt.After(latest.AssignedAt) {
			latest = review
		}
		if review.CodeQualityScore != nil {
			scoreTotal += *review.CodeQualityScore
			summary.QualityScoreCount++
		}
		switch review.Status {
		case models.ReviewStatusCompleted:
			summary.CompletedReviews++
		default:
			summary.ActiveReview = true
		}
	}

	summary.LatestReviewer = latest.ReviewerUsername
	summary.LatestStatus = latest.Status
	assignedAt := latest.AssignedAt
	summary.LatestAssignedAt = &assignedAt

	if summary.QualityScoreCount > 0 {
		average := int(math.Round(float64(scoreTotal) / float64(summary.QualityScoreCount)))
		summary.AverageQualityScore = &average
	}

	return summary
}
