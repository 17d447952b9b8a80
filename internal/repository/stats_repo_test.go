package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/b4os-dev/classboard-api/internal/models"
)

func TestStatsRepositoryReplaceKeepsSingleRow(t *testing.T) {
	db := setupTestDB(t, &models.ProgramStats{})
	repo := NewStatsRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, models.ProgramStats{TotalStudents: 5, AvgScore: 60}))
	require.NoError(t, repo.Replace(ctx, models.ProgramStats{TotalStudents: 7, AvgScore: 72.5}))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.Equal(t, 7, latest.TotalStudents)
	require.Equal(t, 72.5, latest.AvgScore)

	var count int64
	require.NoError(t, db.Model(&models.ProgramStats{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestStatsRepositoryLatestEmpty(t *testing.T) {
	db := setupTestDB(t, &models.ProgramStats{})
	repo := NewStatsRepository(db)

	_, err := repo.Latest(context.Background())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
