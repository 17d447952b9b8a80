package service

import (
	"context"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/b4os-dev/classboard-api/internal/dto"
	"github.com/b4os-dev/classboard-api/internal/models"
	"github.com/b4os-dev/classboard-api/internal/repository"
)

// LeaderboardService computes the ranked per-student scoring view.
type LeaderboardService interface {
	// Full returns the unfiltered leaderboard for every enrolled student.
	Full(ctx context.Context) ([]dto.LeaderboardEntry, error)
	// GetLeaderboard returns the leaderboard visible to the caller.
	GetLeaderboard(ctx context.Context, role, username string) ([]dto.LeaderboardEntry, error)
	// GetStudentBreakdown returns the per-assignment grade lines for one student.
	GetStudentBreakdown(ctx context.Context, username string) ([]dto.GradeBreakdownEntry, error)
}

type leaderboardService struct {
	snapshots   repository.LeaderboardRepository
	grades      repository.GradeRepository
	assignments repository.AssignmentRepository
	students    repository.StudentRepository
	logger      zerolog.Logger
}

// NewLeaderboardService builds the leaderboard aggregator.
func NewLeaderboardService(
	snapshots repository.LeaderboardRepository,
	grades repository.GradeRepository,
	assignments repository.AssignmentRepository,
	students repository.StudentRepository,
	logger zerolog.Logger,
) LeaderboardService {
	return &leaderboardService{
		snapshots:   snapshots,
		grades:      grades,
		assignments: assignments,
		students:    students,
		logger:      logger.With().Str("component", "leaderboard_service").Logger(),
	}
}

// Full resolves the leaderboard through two strategies: the materialized
// snapshot when it has rows, otherwise on-the-fly aggregation of raw grades.
func (s *leaderboardService) Full(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	snapshot, err := s.fromSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot != nil {
		return snapshot, nil
	}

	return s.computeFromGrades(ctx)
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, role, username string) ([]dto.LeaderboardEntry, error) {
	entries, err := s.Full(ctx)
	if err != nil {
		return nil, err
	}

	return FilterForRole(entries, role, username), nil
}

// fromSnapshot returns nil (without error) when the snapshot is empty or
// unreadable, signalling the caller to fall back to raw aggregation.
func (s *leaderboardService) fromSnapshot(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	snapshots, err := s.snapshots.List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("leaderboard snapshot unavailable, falling back to raw grades")
		return nil, nil
	}
	if len(snapshots) == 0 {
		return nil, nil
	}

	entries := make([]dto.LeaderboardEntry, 0, len(snapshots))
	seen := make(map[string]struct{}, len(snapshots))
	for _, snapshot := range snapshots {
		entries = append(entries, dto.NewLeaderboardEntry(snapshot))
		seen[snapshot.GithubUsername] = struct{}{}
	}

	// Every enrolled student appears, even with no synced work yet.
	students, err := s.students.List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("roster unavailable, serving snapshot without roster union")
		return entries, nil
	}

	for _, student := range students {
		if _, ok := seen[student.GithubUsername]; ok {
			continue
		}
		entries = append(entries, dto.LeaderboardEntry{
			GithubUsername:      student.GithubUsername,
			HasFork:             student.HasFork(),
			ResolutionTimeHours: student.ResolutionHours(),
		})
	}

	return entries, nil
}

// computeFromGrades aggregates raw grade rows grouped by username. A failure
// reading grades degrades to an empty leaderboard; a failure reading
// assignments is fatal because totals cannot be joined without capacities.
func (s *leaderboardService) computeFromGrades(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, err
	}

	pointsByAssignment := make(map[string]int, len(assignments))
	for _, assignment := range assignments {
		if assignment.PointsAvailable != nil {
			pointsByAssignment[assignment.Name] = *assignment.PointsAvailable
		}
	}

	grades, err := s.grades.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read grades, serving empty leaderboard")
		return []dto.LeaderboardEntry{}, nil
	}

	type accumulator struct {
		totalScore    int
		totalPossible int
		accepted      map[string]struct{}
		hasFork       bool
	}

	totals := make(map[string]*accumulator)
	order := make([]string, 0)
	for _, grade := range grades {
		acc, ok := totals[grade.GithubUsername]
		if !ok {
			acc = &accumulator{accepted: make(map[string]struct{})}
			totals[grade.GithubUsername] = acc
			order = append(order, grade.GithubUsername)
		}

		if grade.PointsAwarded != nil {
			acc.totalScore += *grade.PointsAwarded
		}
		acc.totalPossible += pointsByAssignment[grade.AssignmentName]
		if grade.Accepted() {
			acc.accepted[grade.AssignmentName] = struct{}{}
			acc.hasFork = true
		}
	}

	entries := make([]dto.LeaderboardEntry, 0, len(totals))
	for _, username := range order {
		acc := totals[username]
		entries = append(entries, dto.LeaderboardEntry{
			GithubUsername:       username,
			TotalScore:           acc.totalScore,
			TotalPossible:        acc.totalPossible,
			Percentage:           Percentage(acc.totalScore, acc.totalPossible),
			AssignmentsCompleted: len(acc.accepted),
			HasFork:              acc.hasFork,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Percentage != entries[j].Percentage {
			return entries[i].Percentage > entries[j].Percentage
		}
		return entries[i].GithubUsername < entries[j].GithubUsername
	})

	return entries, nil
}

func (s *leaderboardService) GetStudentBreakdown(ctx context.Context, username string) ([]dto.GradeBreakdownEntry, error) {
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, err
	}

	pointsByAssignment := make(map[string]*int, len(assignments))
	for _, assignment := range assignments {
		pointsByAssignment[assignment.Name] = assignment.PointsAvailable
	}

	grades, err := s.grades.ListByStudent(ctx, username)
	if err != nil {
		return nil, err
	}

	breakdown := make([]dto.GradeBreakdownEntry, 0, len(grades))
	for _, grade := range grades {
		available := pointsByAssignment[grade.AssignmentName]

		awarded := 0
		if grade.PointsAwarded != nil {
			awarded = *grade.PointsAwarded
		}
		possible := 0
		if available != nil {
			possible = *available
		}

		breakdown = append(breakdown, dto.GradeBreakdownEntry{
			AssignmentName:  grade.AssignmentName,
			PointsAwarded:   grade.PointsAwarded,
			PointsAvailable: available,
			Percentage:      Percentage(awarded, possible),
			Accepted:        grade.Accepted(),
			ForkCreatedAt:   grade.ForkCreatedAt,
			ForkUpdatedAt:   grade.ForkUpdatedAt,
		})
	}

	return breakdown, nil
}

// FilterForRole restricts the leaderboard to what the caller may see:
// privileged roles get everything, anyone else at most their own row.
func FilterForRole(entries []dto.LeaderboardEntry, role, username string) []dto.LeaderboardEntry {
	if models.IsPrivileged(role) {
		return entries
	}

	for _, entry := range entries {
		if entry.GithubUsername == username {
			return []dto.LeaderboardEntry{entry}
		}
	}

	return []dto.LeaderboardEntry{}
}

// Percentage returns the rounded score percentage, short-circuiting to 0
// when no points were available.
func Percentage(score, possible int) int {
	if possible <= 0 {
		return 0
	}

	return int(math.Round(float64(score) / float64(possible) * 100))
}
