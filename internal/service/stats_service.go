package service

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/b4os-dev/classboard-api/internal/dto"
	"github.com/b4os-dev/classboard-api/internal/repository"
)

// StatsService derives the program-wide summary counters.
type StatsService interface {
	GetStats(ctx context.Context, leaderboard []dto.LeaderboardEntry) (dto.StatsSummary, error)
}

type statsService struct {
	stats       repository.StatsRepository
	grades      repository.GradeRepository
	assignments repository.AssignmentRepository
	logger      zerolog.Logger
}

// NewStatsService builds the stats summarizer.
func NewStatsService(
	stats repository.StatsRepository,
	grades repository.GradeRepository,
	assignments repository.AssignmentRepository,
	logger zerolog.Logger,
) StatsService {
	return &statsService{
		stats:       stats,
		grades:      grades,
		assignments: assignments,
		logger:      logger.With().Str("component", "stats_service").Logger(),
	}
}

// GetStats prefers the materialized stats row and recomputes from raw grades
// when none exists. The leaderboard parameter supplies the student count on
// the computed path so both views agree within one request.
func (s *statsService) GetStats(ctx context.Context, leaderboard []dto.LeaderboardEntry) (dto.StatsSummary, error) {
	materialized, err := s.stats.Latest(ctx)
	if err == nil {
		return dto.NewStatsSummary(materialized), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warn().Err(err).Msg("materialized stats unavailable, computing from raw grades")
	}

	return s.computeFromRaw(ctx, leaderboard)
}

func (s *statsService) computeFromRaw(ctx context.Context, leaderboard []dto.LeaderboardEntry) (dto.StatsSummary, error) {
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return dto.StatsSummary{}, err
	}

	grades, err := s.grades.ListAll(ctx)
	if err != nil {
		return dto.StatsSummary{}, err
	}

	totalStudents := len(leaderboard)
	if totalStudents == 0 {
		distinct, err := s.grades.CountDistinctStudents(ctx)
		if err != nil {
			return dto.StatsSummary{}, err
		}
		totalStudents = int(distinct)
	}

	// Zero-valued grades are treated as not meaningfully attempted and
	// excluded from the average on purpose.
	var scoreTotal int
	var validGrades int
	for _, grade := range grades {
		if grade.PointsAwarded != nil && *grade.PointsAwarded > 0 {
			scoreTotal += *grade.PointsAwarded
			validGrades++
		}
	}

	var avgScore float64
	if validGrades > 0 {
		avgScore = float64(scoreTotal) / float64(validGrades)
	}

	var completionRate int
	if totalStudents > 0 && len(assignments) > 0 {
		completionRate = int(math.Round(float64(validGrades) / float64(totalStudents*len(assignments)) * 100))
	}

	return dto.StatsSummary{
		TotalStudents:    totalStudents,
		TotalAssignments: len(assignments),
		TotalGrades:      len(grades),
		AvgScore:         avgScore,
		CompletionRate:   completionRate,
	}, nil
}
