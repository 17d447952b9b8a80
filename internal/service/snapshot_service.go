package service

import (
	"context"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/b4os-dev/classboard-api/internal/models"
	"github.com/b4os-dev/classboard-api/internal/repository"
)

// SnapshotService rebuilds the materialized leaderboard and stats tables
// from raw classroom data. It runs after every classroom sync and on demand
// from the admin API.
type SnapshotService interface {
	// RefreshLeaderboard recomputes and replaces the admin leaderboard,
	// returning the number of ranked students.
	RefreshLeaderboard(ctx context.Context) (int, error)
}

type snapshotService struct {
	students    repository.StudentRepository
	grades      repository.GradeRepository
	assignments repository.AssignmentRepository
	snapshots   repository.LeaderboardRepository
	stats       repository.StatsRepository
	logger      zerolog.Logger
}

// NewSnapshotService builds the leaderboard refresher.
func NewSnapshotService(
	students repository.StudentRepository,
	grades repository.GradeRepository,
	assignments repository.AssignmentRepository,
	snapshots repository.LeaderboardRepository,
	stats repository.StatsRepository,
	logger zerolog.Logger,
) SnapshotService {
	return &snapshotService{
		students:    students,
		grades:      grades,
		assignments: assignments,
		snapshots:   snapshots,
		stats:       stats,
		logger:      logger.With().Str("component", "snapshot_service").Logger(),
	}
}

func (s *snapshotService) RefreshLeaderboard(ctx context.Context) (int, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return 0, err
	}

	grades, err := s.grades.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return 0, err
	}

	pointsByAssignment := make(map[string]int, len(assignments))
	for _, assignment := range assignments {
		if assignment.PointsAvailable != nil {
			pointsByAssignment[assignment.Name] = *assignment.PointsAvailable
		}
	}

	gradesByStudent := make(map[string][]models.Grade)
	for _, grade := range grades {
		gradesByStudent[grade.GithubUsername] = append(gradesByStudent[grade.GithubUsername], grade)
	}

	snapshots := make([]models.LeaderboardSnapshot, 0, len(students))
	for _, student := range students {
		studentGrades := gradesByStudent[student.GithubUsername]

		var totalScore, totalPossible int
		accepted := make(map[string]struct{})
		for _, grade := range studentGrades {
			if grade.PointsAwarded != nil {
				totalScore += *grade.PointsAwarded
			}
			totalPossible += pointsByAssignment[grade.AssignmentName]
			if grade.Accepted() {
				accepted[grade.AssignmentName] = struct{}{}
			}
		}

		var resolution *int
		if student.HasFork() {
			resolution = student.ResolutionHours()
		}

		snapshots = append(snapshots, models.LeaderboardSnapshot{
			GithubUsername:       student.GithubUsername,
			TotalScore:           totalScore,
			TotalPossible:        totalPossible,
			Percentage:           Percentage(totalScore, totalPossible),
			AssignmentsCompleted: len(accepted),
			ResolutionTimeHours:  resolution,
			HasFork:              student.HasFork(),
			ForkCreatedAt:        student.ForkCreatedAt,
			LastUpdatedAt:        student.LastUpdatedAt,
		})
	}

	rankSnapshots(snapshots)

	if err := s.snapshots.ReplaceAll(ctx, snapshots); err != nil {
		return 0, err
	}

	if err := s.refreshStats(ctx, len(snapshots), len(assignments), grades); err != nil {
		// The leaderboard is already replaced; a stale stats row only means
		// the next stats read falls back to raw computation.
		s.logger.Warn().Err(err).Msg("failed to refresh materialized stats")
	}

	s.logger.Info().Int("students", len(snapshots)).Msg("leaderboard snapshot refreshed")

	return len(snapshots), nil
}

// rankSnapshots orders by resolution time ascending (fastest solver first,
// students without one last), percentage descending as tiebreaker, username
// ascending as the final tiebreaker, then stamps 1-based positions.
func rankSnapshots(snapshots []models.LeaderboardSnapshot) {
	sort.SliceStable(snapshots, func(i, j int) bool {
		left, right := snapshots[i], snapshots[j]

		leftHours, rightHours := math.MaxInt, math.MaxInt
		if left.ResolutionTimeHours != nil {
			leftHours = *left.ResolutionTimeHours
		}
		if right.ResolutionTimeHours != nil {
			rightHours = *right.ResolutionTimeHours
		}
		if leftHours != rightHours {
			return leftHours < rightHours
		}

		if left.Percentage != right.Percentage {
			return left.Percentage > right.Percentage
		}

		return left.GithubUsername < right.GithubUsername
	})

	for i := range snapshots {
		snapshots[i].RankingPosition = i + 1
	}
}

func (s *snapshotService) refreshStats(ctx context.Context, totalStudents, totalAssignments int, grades []models.Grade) error {
	var scoreTotal, validGrades int
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
	if totalStudents > 0 && totalAssignments > 0 {
		completionRate = int(math.Round(float64(validGrades) / float64(totalStudents*totalAssignments) * 100))
	}

	return s.stats.Replace(ctx, models.ProgramStats{
		TotalStudents:    totalStudents,
		TotalAssignments: totalAssignments,
		TotalGrades:      len(grades),
		AvgScore:         avgScore,
		CompletionRate:   completionRate,
	})
}
