package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhisek/pathweaver/internal/logger"
)

// AchievementRepo persists earned achievements. Idempotence is the caller's
// job: evaluation checks existence before awarding, inside the same
// transaction as the completion that triggered it.
type AchievementRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *Achievement) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*Achievement, error)
	HasKind(ctx context.Context, tx *gorm.DB, userID, kind string) (bool, error)
	HasForPath(ctx context.Context, tx *gorm.DB, userID, kind string, pathID uuid.UUID) (bool, error)
}

type achievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewAchievementRepo creates an AchievementRepo backed by db.
func NewAchievementRepo(db *gorm.DB, baseLog *logger.Logger) AchievementRepo {
	return &achievementRepo{db: db, log: baseLog.With("repo", "AchievementRepo")}
}

func (r *achievementRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *achievementRepo) Create(ctx context.Context, tx *gorm.DB, row *Achievement) error {
	return r.conn(tx).WithContext(ctx).Create(row).Error
}

func (r *achievementRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*Achievement, error) {
	var rows []*Achievement
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("awarded_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *achievementRepo) HasKind(ctx context.Context, tx *gorm.DB, userID, kind string) (bool, error) {
	var n int64
	err := r.conn(tx).WithContext(ctx).
		Model(&Achievement{}).
		Where("user_id = ? AND kind = ?", userID, kind).
		Count(&n).Error
	return n > 0, err
}

func (r *achievementRepo) HasForPath(ctx context.Context, tx *gorm.DB, userID, kind string, pathID uuid.UUID) (bool, error) {
	var n int64
	err := r.conn(tx).WithContext(ctx).
		Model(&Achievement{}).
		Where("user_id = ? AND kind = ? AND path_id = ?", userID, kind, pathID).
		Count(&n).Error
	return n > 0, err
}
