package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/abhisek/pathweaver/internal/logger"
)

// ProgressRepo persists per-item completion state.
type ProgressRepo interface {
	Get(ctx context.Context, tx *gorm.DB, pathID uuid.UUID, positionKey int, itemType string, itemIndex int) (*ProgressRecord, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *ProgressRecord) error
	ListByPath(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) ([]*ProgressRecord, error)
	CountCompleted(ctx context.Context, tx *gorm.DB, pathID uuid.UUID, itemTypes []string) (int64, error)
	DeleteByPath(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) error
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewProgressRepo creates a ProgressRepo backed by db.
func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

func (r *progressRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *progressRepo) Get(ctx context.Context, tx *gorm.DB, pathID uuid.UUID, positionKey int, itemType string, itemIndex int) (*ProgressRecord, error) {
	var row ProgressRecord
	err := r.conn(tx).WithContext(ctx).
		Where("path_id = ? AND position_key = ? AND item_type = ? AND item_index = ?",
			pathID, positionKey, itemType, itemIndex).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert inserts the record or, on a conflict with the composite item index,
// updates its mutable columns.
func (r *progressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *ProgressRecord) error {
	return r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "path_id"}, {Name: "position_key"}, {Name: "item_type"}, {Name: "item_index"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"completed", "notes", "completed_at", "updated_at"}),
		}).
		Create(row).Error
}

func (r *progressRepo) ListByPath(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) ([]*ProgressRecord, error) {
	var rows []*ProgressRecord
	err := r.conn(tx).WithContext(ctx).
		Where("path_id = ?", pathID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountCompleted counts completed records of the given item types. Rollups
// are always recomputed from this count, never incremented in place.
func (r *progressRepo) CountCompleted(ctx context.Context, tx *gorm.DB, pathID uuid.UUID, itemTypes []string) (int64, error) {
	var n int64
	err := r.conn(tx).WithContext(ctx).
		Model(&ProgressRecord{}).
		Where("path_id = ? AND completed = ? AND item_type IN ?", pathID, true, itemTypes).
		Count(&n).Error
	return n, err
}

func (r *progressRepo) DeleteByPath(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("path_id = ?", pathID).
		Delete(&ProgressRecord{}).Error
}
