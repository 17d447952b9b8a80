package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/b4os-dev/classboard-api/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func intPtr(v int) *int {
	return &v
}

type fakeSnapshotRepo struct {
	rows       []models.LeaderboardSnapshot
	listErr    error
	replaced   []models.LeaderboardSnapshot
	replaceErr error
}

func (f *fakeSnapshotRepo) List(ctx context.Context) ([]models.LeaderboardSnapshot, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.LeaderboardSnapshot(nil), f.rows...), nil
}

func (f *fakeSnapshotRepo) ReplaceAll(ctx context.Context, snapshots []models.LeaderboardSnapshot) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced = snapshots
	return nil
}

type fakeGradeRepo struct {
	grades  []models.Grade
	listErr error
}

func (f *fakeGradeRepo) ListAll(ctx context.Context) ([]models.Grade, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Grade(nil), f.grades...), nil
}

func (f *fakeGradeRepo) ListByStudent(ctx context.Context, username string) ([]models.Grade, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []models.Grade
	for _, grade := range f.grades {
		if grade.GithubUsername == username {
			result = append(result, grade)
		}
	}
	return result, nil
}

func (f *fakeGradeRepo) CountDistinctStudents(ctx context.Context) (int64, error) {
	if f.listErr != nil {
		return 0, f.listErr
	}
	seen := map[string]struct{}{}
	for _, grade := range f.grades {
		seen[grade.GithubUsername] = struct{}{}
	}
	return int64(len(seen)), nil
}

type fakeAssignmentRepo struct {
	assignments []models.Assignment
	listErr     error
}

func (f *fakeAssignmentRepo) List(ctx context.Context) ([]models.Assignment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Assignment(nil), f.assignments...), nil
}

func (f *fakeAssignmentRepo) GetByName(ctx context.Context, name string) (models.Assignment, error) {
	for _, assignment := range f.assignments {
		if assignment.Name == name {
			return assignment, nil
		}
	}
	return models.Assignment{}, errors.New("not found")
}

type fakeStudentRepo struct {
	students []models.Student
	listErr  error
}

func (f *fakeStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Student(nil), f.students...), nil
}

func (f *fakeStudentRepo) GetByUsername(ctx context.Context, username string) (models.Student, error) {
	for _, student := range f.students {
		if student.GithubUsername == username {
			return student, nil
		}
	}
	return models.Student{}, errors.New("not found")
}

func TestLeaderboardFallbackComputesAndSorts(t *testing.T) {
	forked := time.Now().Add(-48 * time.Hour)
	svc := NewLeaderboardService(
		&fakeSnapshotRepo{},
		&fakeGradeRepo{grades: []models.Grade{
			{GithubUsername: "alice", AssignmentName: "math-a", PointsAwarded: intPtr(60), ForkCreatedAt: &forked},
			{GithubUsername: "bob", AssignmentName: "math-a", PointsAwarded: intPtr(90), ForkCreatedAt: &forked},
		}},
		&fakeAssignmentRepo{assignments: []models.Assignment{
			{Name: "math-a", PointsAvailable: intPtr(100)},
		}},
		&fakeStudentRepo{},
		testLogger(),
	)

	entries, err := svc.Full(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "bob", entries[0].GithubUsername)
	require.Equal(t, 90, entries[0].Percentage)
	require.Equal(t, "alice", entries[1].GithubUsername)
	require.Equal(t, 60, entries[1].Percentage)
}

func TestLeaderboardZeroPossibleYieldsZeroPercentage(t *testing.T) {
	svc := NewLeaderboardService(
		&fakeSnapshotRepo{},
		&fakeGradeRepo{grades: []models.Grade{
			{GithubUsername: "carol", AssignmentName: "mystery", PointsAwarded: intPtr(10)},
		}},
		&fakeAssignmentRepo{assignments: []models.Assignment{
			{Name: "mystery", PointsAvailable: nil},
		}},
		&fakeStudentRepo{},
		testLogger(),
	)

	entries, err := svc.Full(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 0, entries[0].Percentage)
	require.Equal(t, 10, entries[0].TotalScore)
	require.Equal(t, 0, entries[0].TotalPossible)
}

func TestLeaderboardCompletionCountsAcceptedForksOnly(t *testing.T) {
	forked := time.Now().Add(-24 * time.Hour)
	svc := NewLeaderboardService(
		&fakeSnapshotRepo{},
		&fakeGradeRepo{grades: []models.Grade{
			{GithubUsername: "alice", AssignmentName: "math-a", PointsAwarded: intPtr(80), ForkCreatedAt: &forked},
			{GithubUsername: "alice", AssignmentName: "math-b", PointsAwarded: nil},
		}},
		&fakeAssignmentRepo{assignments: []models.Assignment{
			{Name: "math-a", PointsAvailable: intPtr(100)},
			{Name: "math-b", PointsAvailable: intPtr(50)},
		}},
		&fakeStudentRepo{},
		testLogger(),
	)

	entries, err := svc.Full(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 1, entries[0].AssignmentsCompleted, "graded rows without a fork must not count")
	require.Equal(t, 80, entries[0].TotalScore)
	require.Equal(t, 150, entries[0].TotalPossible)
}

func TestLeaderboardSnapshotPreferredWithRosterUnion(t *testing.T) {
	svc := NewLeaderboardService(
		&fakeSnapshotRepo{rows: []models.LeaderboardSnapshot{
			{GithubUsername: "bob", TotalScore: 90, TotalPossible: 100, Percentage: 90, RankingPosition: 1, HasFork: true},
		}},
		&fakeGradeRepo{listErr: errors.New("grades must not be read on the snapshot path")},
		&fakeAssignmentRepo{},
		&fakeStudentRepo{students: []models.Student{
			{GithubUsername: "bob"},
			{GithubUsername: "dana"},
		}},
		testLogger(),
	)

	entries, err := svc.Full(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "bob", entries[0].GithubUsername)
	require.Equal(t, 1, entries[0].RankingPosition)

	// dana never submitted anything but still appears, zero-valued.
	require.Equal(t, "dana", entries[1].GithubUsername)
	require.Equal(t, 0, entries[1].TotalScore)
	require.Equal(t, 0, entries[1].Percentage)
}

func TestLeaderboardSnapshotReadFailureFallsBack(t *testing.T) {
	forked := time.Now()
	svc := NewLeaderboardService(
		&fakeSnapshotRepo{listErr: errors.New("boom")},
		&fakeGradeRepo{grades: []models.Grade{
			{GithubUsername: "alice", AssignmentName: "math-a", PointsAwarded: intPtr(50), ForkCreatedAt: &forked},
		}},
		&fakeAssignmentRepo{assignments: []models.Assignment{
			{Name: "math-a", PointsAvailable: intPtr(100)},
		}},
		&fakeStudentRepo{},
		testLogger(),
	)

	entries, err := svc.Full(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 50, entries[0].Percentage)
}

func TestLeaderboardGradeReadFailureDegradesToEmpty(t *testing.T) {
	svc := NewLeaderboardService(
		&fakeSnapshotRepo{},
		&fakeGradeRepo{listErr: errors.New("boom")},
		&fakeAssignmentRepo{},
		&fakeStudentRepo{},
		testLogger(),
	)

	entries, err := svc.Full(context.Background())
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestLeaderboardAssignmentReadFailureIsFatal(t *testing.T) {
	svc := NewLeaderboardService(
		&fakeSnapshotRepo{},
		&fakeGradeRepo{},
		&fakeAssignmentRepo{listErr: errors.New("boom")},
		&fakeStudentRepo{},
		testLogger(),
	)

	_, err := svc.Full(context.Background())
	require.Error(t, err)
}

func TestLeaderboardIdempotentOrdering(t *testing.T) {
	forked := time.Now()
	grades := []models.Grade{
		{GithubUsername: "alice", AssignmentName: "math-a", PointsAwarded: intPtr(70), ForkCreatedAt: &forked},
		{GithubUsername: "bob", AssignmentName: "math-a", PointsAwarded: intPtr(70), ForkCreatedAt: &forked},
		{GithubUsername: "carol", AssignmentName: "math-a", PointsAwarded: intPtr(90), ForkCreatedAt: &forked},
	}
	svc := NewLeaderboardService(
		&fakeSnapshotRepo{},
		&fakeGradeRepo{grades: grades},
		&fakeAssignmentRepo{assignments: []models.Assignment{{Name: "math-a", PointsAvailable: intPtr(100)}}},
		&fakeStudentRepo{},
		testLogger(),
	)

	first, err := svc.Full(context.Background())
	require.NoError(t, err)
	second, err := svc.Full(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestFilterForRole(t *testing.T) {
	entries, err := NewLeaderboardService(
		&fakeSnapshotRepo{rows: []models.LeaderboardSnapshot{
			{GithubUsername: "alice", Percentage: 80, RankingPosition: 1},
			{GithubUsername: "bob", Percentage: 60, RankingPosition: 2},
		}},
		&fakeGradeRepo{},
		&fakeAssignmentRepo{},
		&fakeStudentRepo{},
		testLogger(),
	).Full(context.Background())
	require.NoError(t, err)

	require.Len(t, FilterForRole(entries, models.RoleAdmin, "alice"), 2)
	require.Len(t, FilterForRole(entries, models.RoleInstructor, "alice"), 2)

	own := FilterForRole(entries, models.RoleStudent, "bob")
	require.Len(t, own, 1)
	require.Equal(t, "bob", own[0].GithubUsername)

	require.Empty(t, FilterForRole(entries, models.RoleStudent, "mallory"))
}

func TestStudentBreakdownScenario(t *testing.T) {
	forked := time.Now().Add(-72 * time.Hour)
	svc := NewLeaderboardService(
		&fakeSnapshotRepo{},
		&fakeGradeRepo{grades: []models.Grade{
			{GithubUsername: "alice", AssignmentName: "math-a", PointsAwarded: intPtr(80), ForkCreatedAt: &forked},
			{GithubUsername: "alice", AssignmentName: "math-b", PointsAwarded: nil},
		}},
		&fakeAssignmentRepo{assignments: []models.Assignment{
			{Name: "math-a", PointsAvailable: intPtr(100)},
			{Name: "math-b", PointsAvailable: intPtr(50)},
		}},
		&fakeStudentRepo{},
		testLogger(),
	)

	breakdown, err := svc.GetStudentBreakdown(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, breakdown, 2)

	require.Equal(t, "math-a", breakdown[0].AssignmentName)
	require.Equal(t, 80, breakdown[0].Percentage)
	require.True(t, breakdown[0].Accepted)

	require.Equal(t, "math-b", breakdown[1].AssignmentName)
	require.Equal(t, 0, breakdown[1].Percentage)
	require.False(t, breakdown[1].Accepted)
	require.Nil(t, breakdown[1].PointsAwarded)
}

func TestPercentageRounding(t *testing.T) {
	require.Equal(t, 0, Percentage(10, 0))
	require.Equal(t, 0, Percentage(0, 100))
	require.Equal(t, 67, Percentage(2, 3))
	require.Equal(t, 100, Percentage(100, 100))
}
