package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/abhisek/pathweaver/internal/llm"
	"github.com/abhisek/pathweaver/internal/logger"
)

// LLMLogRepo records provider calls. It satisfies llm.RequestLogger so it
// can be handed straight to the logging decorator.
type LLMLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewLLMLogRepo creates an LLMLogRepo backed by db.
func NewLLMLogRepo(db *gorm.DB, baseLog *logger.Logger) *LLMLogRepo {
	return &LLMLogRepo{db: db, log: baseLog.With("repo", "LLMLogRepo")}
}

// AppendLLMRequest persists one provider call record.
func (r *LLMLogRepo) AppendLLMRequest(ctx context.Context, rec llm.RequestLog) error {
	row := LLMRequestEvent{
		Provider:     rec.Provider,
		Model:        rec.Model,
		Purpose:      rec.Purpose,
		InputTokens:  rec.InputTokens,
		OutputTokens: rec.OutputTokens,
		LatencyMs:    rec.LatencyMs,
		Success:      rec.Success,
		ErrorMessage: rec.ErrorMessage,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// Recent returns the latest provider call records, newest first.
func (r *LLMLogRepo) Recent(ctx context.Context, limit int) ([]*LLMRequestEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []*LLMRequestEvent
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
