// Package library owns the saved-path lifecycle: saving generated paths with
// duplicate-topic conflict detection, fetching them joined with progress,
// listing, archival, and restart.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/abhisek/pathweaver/internal/logger"
	"github.com/abhisek/pathweaver/internal/paths"
	"github.com/abhisek/pathweaver/internal/store"
)

// Service is the path library. All mutations run in a transaction.
type Service struct {
	db       *gorm.DB
	pathRepo store.PathRepo
	progRepo store.ProgressRepo
	log      *logger.Logger
}

// NewService creates a library Service.
func NewService(db *gorm.DB, pathRepo store.PathRepo, progRepo store.ProgressRepo, log *logger.Logger) *Service {
	return &Service{
		db:       db,
		pathRepo: pathRepo,
		progRepo: progRepo,
		log:      log.With("component", "library"),
	}
}

// PathWithProgress is a fetched path joined with its progress records, keyed
// for O(1) completion lookups.
type PathWithProgress struct {
	Path     *store.SavedPath                 `json:"path"`
	Payload  paths.Payload                    `json:"payload"`
	Progress map[string]*store.ProgressRecord `json:"progressMap"`
}

// Save persists a new path for the user. A non-archived path with the exact
// same topic string is a conflict unless replace is set, in which
// case the existing path is archived first. The payload's trackable counts
// are frozen into the row at save time.
func (s *Service) Save(ctx context.Context, userID, topic string, payload paths.Payload, replace bool) (*store.SavedPath, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	topics, stages := payload.CountTrackable()

	row := &store.SavedPath{
		UserID:      userID,
		Topic:       topic,
		Payload:     datatypes.JSON(raw),
		IsNewFormat: payload.IsNewFormat,
		Status:      store.StatusActive,
		TotalTopics: topics,
		TotalStages: stages,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.pathRepo.FindActiveByTopic(ctx, tx, userID, topic)
		if err == nil {
			if !replace {
				return &store.DuplicateTopicError{Topic: topic, ExistingID: existing.ID}
			}
			if err := s.pathRepo.SetArchived(ctx, tx, existing.ID, true); err != nil {
				return fmt.Errorf("archive replaced path: %w", err)
			}
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return s.pathRepo.Create(ctx, tx, row)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("path saved", "user_id", userID, "path_id", row.ID, "topic", topic, "replace", replace)
	return row, nil
}

// Get fetches a path with its progress map and touches last_accessed_at.
// Archived paths stay fetchable by their owner.
func (s *Service) Get(ctx context.Context, userID string, pathID uuid.UUID) (*PathWithProgress, error) {
	row, err := s.pathRepo.GetForUser(ctx, nil, userID, pathID)
	if err != nil {
		return nil, err
	}

	var payload paths.Payload
	if err := json.Unmarshal(row.Payload, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal stored payload: %w", err)
	}

	records, err := s.progRepo.ListByPath(ctx, nil, pathID)
	if err != nil {
		return nil, err
	}
	progress := make(map[string]*store.ProgressRecord, len(records))
	for _, rec := range records {
		key := paths.ProgressMapKey(rec.PositionKey, paths.ItemType(rec.ItemType), rec.ItemIndex)
		progress[key] = rec
	}

	if err := s.pathRepo.TouchLastAccessed(ctx, nil, pathID); err != nil {
		s.log.Warn("failed to touch last_accessed_at", "path_id", pathID, "error", err)
	}

	return &PathWithProgress{Path: row, Payload: payload, Progress: progress}, nil
}

// List returns the user's non-archived paths, most recently accessed first.
func (s *Service) List(ctx context.Context, userID string) ([]*store.SavedPath, error) {
	return s.pathRepo.ListByUser(ctx, nil, userID)
}

// Archive soft-deletes a path. It disappears from List but stays fetchable.
func (s *Service) Archive(ctx context.Context, userID string, pathID uuid.UUID) error {
	if _, err := s.pathRepo.GetForUser(ctx, nil, userID, pathID); err != nil {
		return err
	}
	if err := s.pathRepo.SetArchived(ctx, nil, pathID, true); err != nil {
		return err
	}
	s.log.Info("path archived", "user_id", userID, "path_id", pathID)
	return nil
}

// Restart wipes all progress for a path and resets its rollups and status.
// The stored payload is untouched.
func (s *Service) Restart(ctx context.Context, userID string, pathID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Locked so a toggle racing the restart cannot write back rollups
		// counted from the rows deleted here.
		row, err := s.pathRepo.GetForUserLocked(ctx, tx, userID, pathID)
		if err != nil {
			return err
		}
		if err := s.progRepo.DeleteByPath(ctx, tx, pathID); err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}
		row.CompletedTopics = 0
		row.CompletedStages = 0
		row.Status = store.StatusActive
		row.CompletedAt = nil
		return s.pathRepo.Update(ctx, tx, row)
	})
	if err != nil {
		return err
	}
	s.log.Info("path restarted", "user_id", userID, "path_id", pathID)
	return nil
}
