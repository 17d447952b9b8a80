package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/b4os-dev/classboard-api/internal/dto"
	"github.com/b4os-dev/classboard-api/internal/models"
)

type stubLeaderboard struct {
	entries []dto.LeaderboardEntry
	err     error
}

func (s *stubLeaderboard) Full(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	return s.entries, s.err
}

func (s *stubLeaderboard) GetLeaderboard(ctx context.Context, role, username string) ([]dto.LeaderboardEntry, error) {
	entries, err := s.Full(ctx)
	if err != nil {
		return nil, err
	}
	return FilterForRole(entries, role, username), nil
}

func (s *stubLeaderboard) GetStudentBreakdown(ctx context.Context, username string) ([]dto.GradeBreakdownEntry, error) {
	return nil, nil
}

type stubStats struct {
	summary dto.StatsSummary
	err     error
	gotSize int
}

func (s *stubStats) GetStats(ctx context.Context, leaderboard []dto.LeaderboardEntry) (dto.StatsSummary, error) {
	s.gotSize = len(leaderboard)
	return s.summary, s.err
}

type stubAssignmentLister struct {
	list []dto.AssignmentResponse
	err  error
}

func (s *stubAssignmentLister) ListAssignments(ctx context.Context) ([]dto.AssignmentResponse, error) {
	return s.list, s.err
}

type stubReviews struct {
	ReviewService
	summaries map[string]dto.ReviewStatusSummary
	err       error
}

func (s *stubReviews) SummaryByStudent(ctx context.Context) (map[string]dto.ReviewStatusSummary, error) {
	return s.summaries, s.err
}

var (
	_ LeaderboardService = (*stubLeaderboard)(nil)
	_ StatsService       = (*stubStats)(nil)
	_ AssignmentLister   = (*stubAssignmentLister)(nil)
	_ ReviewService      = (*stubReviews)(nil)
)

func TestOverviewJoinsAllBranches(t *testing.T) {
	entries := []dto.LeaderboardEntry{
		{GithubUsername: "alice", Percentage: 80},
		{GithubUsername: "bob", Percentage: 60},
	}
	stats := &stubStats{summary: dto.StatsSummary{TotalStudents: 2}}
	svc := NewOverviewService(
		&stubLeaderboard{entries: entries},
		stats,
		&stubReviews{summaries: map[string]dto.ReviewStatusSummary{
			"alice": {HasReviewer: true, TotalReviews: 1},
		}},
		&stubAssignmentLister{list: []dto.AssignmentResponse{{Name: "math-a"}}},
		testLogger(),
	)

	overview, err := svc.GetOverview(context.Background(), models.RoleAdmin, "admin")
	require.NoError(t, err)
	require.Len(t, overview.Leaderboard, 2)
	require.Len(t, overview.Assignments, 1)
	require.Equal(t, 2, overview.Stats.TotalStudents)
	require.True(t, overview.Reviews["alice"].HasReviewer)
	require.Equal(t, 2, stats.gotSize, "stats must see the unfiltered leaderboard")
}

func TestOverviewRestrictsStudentVisibility(t *testing.T) {
	svc := NewOverviewService(
		&stubLeaderboard{entries: []dto.LeaderboardEntry{
			{GithubUsername: "alice"},
			{GithubUsername: "bob"},
		}},
		&stubStats{},
		&stubReviews{summaries: map[string]dto.ReviewStatusSummary{
			"alice": {HasReviewer: true},
			"bob":   {HasReviewer: true},
		}},
		&stubAssignmentLister{},
		testLogger(),
	)

	overview, err := svc.GetOverview(context.Background(), models.RoleStudent, "bob")
	require.NoError(t, err)
	require.Len(t, overview.Leaderboard, 1)
	require.Equal(t, "bob", overview.Leaderboard[0].GithubUsername)
	require.Len(t, overview.Reviews, 1)
	_, ok := overview.Reviews["bob"]
	require.True(t, ok)
}

func TestOverviewReviewFailureDegrades(t *testing.T) {
	svc := NewOverviewService(
		&stubLeaderboard{entries: []dto.LeaderboardEntry{{GithubUsername: "alice"}}},
		&stubStats{},
		&stubReviews{err: errors.New("boom")},
		&stubAssignmentLister{},
		testLogger(),
	)

	overview, err := svc.GetOverview(context.Background(), models.RoleAdmin, "admin")
	require.NoError(t, err)
	require.NotNil(t, overview.Reviews)
	require.Empty(t, overview.Reviews)
	require.Len(t, overview.Leaderboard, 1)
}

func TestOverviewLeaderboardFailureIsFatal(t *testing.T) {
	svc := NewOverviewService(
		&stubLeaderboard{err: errors.New("boom")},
		&stubStats{},
		&stubReviews{},
		&stubAssignmentLister{},
		testLogger(),
	)

	_, err := svc.GetOverview(context.Background(), models.RoleAdmin, "admin")
	require.Error(t, err)
}

func TestOverviewAssignmentFailureIsFatal(t *testing.T) {
	svc := NewOverviewService(
		&stubLeaderboard{},
		&stubStats{},
		&stubReviews{},
		&stubAssignmentLister{err: errors.New("boom")},
		testLogger(),
	)

	_, err := svc.GetOverview(context.Background(), models.RoleAdmin, "admin")
	require.Error(t, err)
}
