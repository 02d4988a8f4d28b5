package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/abhisek/pathweaver/internal/logger"
)

// StatsRepo maintains the single-row site counters. Increments run as
// single UPDATE statements so concurrent requests never lose counts.
type StatsRepo interface {
	Get(ctx context.Context) (*SiteStats, error)
	IncrementPathsGenerated(ctx context.Context) error
	IncrementSearches(ctx context.Context) error
}

type statsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewStatsRepo creates a StatsRepo backed by db.
func NewStatsRepo(db *gorm.DB, baseLog *logger.Logger) StatsRepo {
	return &statsRepo{db: db, log: baseLog.With("repo", "StatsRepo")}
}

func (r *statsRepo) Get(ctx context.Context) (*SiteStats, error) {
	var row SiteStats
	if err := r.db.WithContext(ctx).First(&row, siteStatsRowID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *statsRepo) increment(ctx context.Context, column string) error {
	return r.db.WithContext(ctx).
		Model(&SiteStats{}).
		Where("id = ?", siteStatsRowID).
		Updates(map[string]any{
			column:       gorm.Expr(column+" + ?", 1),
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *statsRepo) IncrementPathsGenerated(ctx context.Context) error {
	return r.increment(ctx, "paths_generated")
}

func (r *statsRepo) IncrementSearches(ctx context.Context) error {
	return r.increment(ctx, "searches_run")
}
