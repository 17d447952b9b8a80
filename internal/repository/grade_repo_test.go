package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/b4os-dev/classboard-api/internal/models"
)

func TestGradeRepositoryQueries(t *testing.T) {
	db := setupTestDB(t, &models.Grade{})
	repo := NewGradeRepository(db)
	ctx := context.Background()

	points := 80
	rows := []models.Grade{
		{GithubUsername: "bob", AssignmentName: "math-b"},
		{GithubUsername: "alice", AssignmentName: "math-b", PointsAwarded: &points},
		{GithubUsername: "alice", AssignmentName: "math-a"},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "alice", all[0].GithubUsername)
	require.Equal(t, "math-a", all[0].AssignmentName)

	mine, err := repo.ListByStudent(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, "math-a", mine[0].AssignmentName)

	distinct, err := repo.CountDistinctStudents(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), distinct)
}
