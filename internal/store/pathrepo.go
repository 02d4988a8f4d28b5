package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/abhisek/pathweaver/internal/logger"
)

// PathRepo persists saved paths. All methods accept an optional transaction;
// a nil tx runs against the base connection.
type PathRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *SavedPath) error
	GetForUser(ctx context.Context, tx *gorm.DB, userID string, id uuid.UUID) (*SavedPath, error)
	GetForUserLocked(ctx context.Context, tx *gorm.DB, userID string, id uuid.UUID) (*SavedPath, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*SavedPath, error)
	FindActiveByTopic(ctx context.Context, tx *gorm.DB, userID, topic string) (*SavedPath, error)
	Update(ctx context.Context, tx *gorm.DB, row *SavedPath) error
	TouchLastAccessed(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	SetArchived(ctx context.Context, tx *gorm.DB, id uuid.UUID, archived bool) error
	CountCompletedByUser(ctx context.Context, tx *gorm.DB, userID string) (int64, error)
}

type pathRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewPathRepo creates a PathRepo backed by db.
func NewPathRepo(db *gorm.DB, baseLog *logger.Logger) PathRepo {
	return &pathRepo{db: db, log: baseLog.With("repo", "PathRepo")}
}

func (r *pathRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *pathRepo) Create(ctx context.Context, tx *gorm.DB, row *SavedPath) error {
	return r.conn(tx).WithContext(ctx).Create(row).Error
}

// GetForUser looks a path up by id and owner. A path belonging to a
// different user reads as not found rather than forbidden.
func (r *pathRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID string, id uuid.UUID) (*SavedPath, error) {
	var row SavedPath
	err := r.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetForUserLocked is GetForUser with a SELECT ... FOR UPDATE row lock, for
// transactions that recount progress and write rollups back: concurrent
// writers to the same path serialize on the row instead of committing stale
// counts over each other. The sqlite dialect drops the locking clause; its
// writers are already serialized by the engine.
func (r *pathRepo) GetForUserLocked(ctx context.Context, tx *gorm.DB, userID string, id uuid.UUID) (*SavedPath, error) {
	var row SavedPath
	err := r.conn(tx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *pathRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*SavedPath, error) {
	var rows []*SavedPath
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND archived = ?", userID, false).
		Order("last_accessed_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindActiveByTopic matches the topic string exactly. Archived paths do not
// block saving a fresh path for the same topic.
func (r *pathRepo) FindActiveByTopic(ctx context.Context, tx *gorm.DB, userID, topic string) (*SavedPath, error) {
	var row SavedPath
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND archived = ? AND topic = ?", userID, false, topic).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *pathRepo) Update(ctx context.Context, tx *gorm.DB, row *SavedPath) error {
	return r.conn(tx).WithContext(ctx).Save(row).Error
}

func (r *pathRepo) TouchLastAccessed(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Model(&SavedPath{}).
		Where("id = ?", id).
		Update("last_accessed_at", time.Now().UTC()).Error
}

func (r *pathRepo) SetArchived(ctx context.Context, tx *gorm.DB, id uuid.UUID, archived bool) error {
	res := r.conn(tx).WithContext(ctx).
		Model(&SavedPath{}).
		Where("id = ?", id).
		Update("archived", archived)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pathRepo) CountCompletedByUser(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	var n int64
	err := r.conn(tx).WithContext(ctx).
		Model(&SavedPath{}).
		Where("user_id = ? AND status = ?", userID, StatusCompleted).
		Count(&n).Error
	return n, err
}
