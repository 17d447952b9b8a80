package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/b4os-dev/classboard-api/internal/dto"
	"github.com/b4os-dev/classboard-api/internal/models"
)

type fakeStatsRepo struct {
	row       models.ProgramStats
	latestErr error
	replaced  *models.ProgramStats
}

func (f *fakeStatsRepo) Latest(ctx context.Context) (models.ProgramStats, error) {
	if f.latestErr != nil {
		return models.ProgramStats{}, f.latestErr
	}
	return f.row, nil
}

func (f *fakeStatsRepo) Replace(ctx context.Context, stats models.ProgramStats) error {
	f.replaced = &stats
	return nil
}

func TestStatsPrefersMaterializedRow(t *testing.T) {
	svc := NewStatsService(
		&fakeStatsRepo{row: models.ProgramStats{
			TotalStudents:    12,
			TotalAssignments: 4,
			TotalGrades:      30,
			AvgScore:         71.5,
			CompletionRate:   62,
		}},
		&fakeGradeRepo{listErr: errors.New("grades must not be read on the materialized path")},
		&fakeAssignmentRepo{},
		testLogger(),
	)

	stats, err := svc.GetStats(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, 12, stats.TotalStudents)
	require.Equal(t, 71.5, stats.AvgScore)
	require.Equal(t, 62, stats.CompletionRate)
}

func TestStatsComputedExcludesZeroGrades(t *testing.T) {
	svc := NewStatsService(
		&fakeStatsRepo{latestErr: gorm.ErrRecordNotFound},
		&fakeGradeRepo{grades: []models.Grade{
			{GithubUsername: "alice", AssignmentName: "math-a", PointsAwarded: intPtr(80)},
			{GithubUsername: "alice", AssignmentName: "math-b", PointsAwarded: intPtr(0)},
			{GithubUsername: "bob", AssignmentName: "math-a", PointsAwarded: nil},
			{GithubUsername: "bob", AssignmentName: "math-b", PointsAwarded: intPtr(60)},
		}},
		&fakeAssignmentRepo{assignments: []models.Assignment{
			{Name: "math-a"}, {Name: "math-b"},
		}},
		testLogger(),
	)

	leaderboard := []dto.LeaderboardEntry{{GithubUsername: "alice"}, {GithubUsername: "bob"}}
	stats, err := svc.GetStats(context.Background(), leaderboard)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalStudents)
	require.Equal(t, 2, stats.TotalAssignments)
	require.Equal(t, 4, stats.TotalGrades)
	require.Equal(t, 70.0, stats.AvgScore, "only non-zero graded rows count toward the average")
	require.Equal(t, 50, stats.CompletionRate, "2 valid grades over 2 students x 2 assignments")
}

func TestStatsComputedFallsBackToDistinctStudents(t *testing.T) {
	svc := NewStatsService(
		&fakeStatsRepo{latestErr: gorm.ErrRecordNotFound},
		&fakeGradeRepo{grades: []models.Grade{
			{GithubUsername: "alice", AssignmentName: "math-a", PointsAwarded: intPtr(50)},
			{GithubUsername: "bob", AssignmentName: "math-a", PointsAwarded: intPtr(70)},
		}},
		&fakeAssignmentRepo{assignments: []models.Assignment{{Name: "math-a"}}},
		testLogger(),
	)

	stats, err := svc.GetStats(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalStudents)
}

func TestStatsComputedGuardsEmptyProgram(t *testing.T) {
	svc := NewStatsService(
		&fakeStatsRepo{latestErr: gorm.ErrRecordNotFound},
		&fakeGradeRepo{},
		&fakeAssignmentRepo{},
		testLogger(),
	)

	stats, err := svc.GetStats(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, stats.TotalStudents)
	require.Zero(t, stats.AvgScore)
	require.Zero(t, stats.CompletionRate)
}
