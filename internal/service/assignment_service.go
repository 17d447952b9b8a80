package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/b4os-dev/classboard-api/internal/dto"
	"github.com/b4os-dev/classboard-api/internal/repository"
)

// AssignmentService exposes read-only assignment use cases.
type AssignmentService interface {
	ListAssignments(ctx context.Context) ([]dto.AssignmentResponse, error)
}

type assignmentService struct {
	repo   repository.AssignmentRepository
	logger zerolog.Logger
}

// NewAssignmentService builds a new assignment service.
func NewAssignmentService(repo repository.AssignmentRepository, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		repo:   repo,
		logger: logger.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *assignmentService) ListAssignments(ctx context.Context) ([]dto.AssignmentResponse, error) {
	assignments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewAssignmentResponseSlice(assignments), nil
}
