package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/b4os-dev/classboard-api/internal/models"
)

// LeaderboardRepository manages the materialized admin leaderboard.
type LeaderboardRepository interface {
	List(ctx context.Context) ([]models.LeaderboardSnapshot, error)
	ReplaceAll(ctx context.Context, snapshots []models.LeaderboardSnapshot) error
}

type leaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository constructs a GORM-backed leaderboard repository.
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) List(ctx context.Context) ([]models.LeaderboardSnapshot, error) {
	var snapshots []models.LeaderboardSnapshot
	if err := r.db.WithContext(ctx).
		Order("ranking_position ASC").
		Find(&snapshots).Error; err != nil {
		return nil, err
	}

	return snapshots, nil
}

// ReplaceAll swaps the snapshot in a single transaction so readers never see
// a half-refreshed leaderboard.
func (r *leaderboardRepository) ReplaceAll(ctx context.Context, snapshots []models.LeaderboardSnapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.LeaderboardSnapshot{}).Error; err != nil {
			return err
		}

		if len(snapshots) == 0 {
			return nil
		}

		return tx.Create(&snapshots).Error
	})
}
