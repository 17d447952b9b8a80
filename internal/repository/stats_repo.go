package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/b4os-dev/classboard-api/internal/models"
)

// StatsRepository manages the materialized program stats row.
type StatsRepository interface {
	Latest(ctx context.Context) (models.ProgramStats, error)
	Replace(ctx context.Context, stats models.ProgramStats) error
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository constructs a GORM-backed stats repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Latest(ctx context.Context) (models.ProgramStats, error) {
	var stats models.ProgramStats
	if err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		First(&stats).Error; err != nil {
		return models.ProgramStats{}, err
	}

	return stats, nil
}

// Replace keeps a single authoritative row: earlier rows are dropped in the
// same transaction that writes the fresh one.
func (r *statsRepository) Replace(ctx context.Context, stats models.ProgramStats) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ProgramStats{}).Error; err != nil {
			return err
		}

		return tx.Create(&stats).Error
	})
}
