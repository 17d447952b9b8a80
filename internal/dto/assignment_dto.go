package dto

import (
	"time"

	"github.com/b4os-dev/classboard-api/internal/models"
)

// AssignmentResponse is the serialized assignment returned to API clients.
type AssignmentResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	PointsAvailable *int      `json:"points_available"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:              model.ID,
		Name:            model.Name,
		PointsAvailable: model.PointsAvailable,
		UpdatedAt:       model.UpdatedAt,
	}
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}

// GradeBreakdownEntry is one per-assignment line of a student's breakdown.
type GradeBreakdownEntry struct {
	AssignmentName  string     `json:"assignment_name"`
	PointsAwarded   *int       `json:"points_awarded"`
	PointsAvailable *int       `json:"points_available"`
	Percentage      int        `json:"percentage"`
	Accepted        bool       `json:"accepted"`
	ForkCreatedAt   *time.Time `json:"fork_created_at"`
	ForkUpdatedAt   *time.Time `json:"fork_updated_at"`
}
