// Package progress is the completion state machine: it records per-item
// toggles, recomputes rollup counters from scratch, detects the one-way
// active to completed transition, and triggers achievement evaluation.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhisek/pathweaver/internal/achievements"
	"github.com/abhisek/pathweaver/internal/logger"
	"github.com/abhisek/pathweaver/internal/paths"
	"github.com/abhisek/pathweaver/internal/store"
)

// ErrItemLocked means sequential unlocking forbids completing the item yet.
var ErrItemLocked = errors.New("item is locked by an earlier incomplete item")

// ToggleInput identifies one trackable item and its new state. Notes is a
// pointer so an absent note never erases a stored one.
type ToggleInput struct {
	PositionKey int
	ItemType    paths.ItemType
	ItemIndex   int
	Completed   bool
	Notes       *string
}

// ToggleResult is the delta returned to the caller after a toggle.
type ToggleResult struct {
	CompletedTopics  int                  `json:"completedTopics"`
	CompletedStages  int                  `json:"completedStages"`
	IsFullyCompleted bool                 `json:"isFullyCompleted"`
	NewAchievements  []*store.Achievement `json:"newAchievements"`
}

// Tracker mutates progress state. Every toggle runs as one transaction:
// upsert, full recount, completion transition, and award evaluation commit
// together or not at all.
type Tracker struct {
	db        *gorm.DB
	pathRepo  store.PathRepo
	progRepo  store.ProgressRepo
	evaluator *achievements.Evaluator
	log       *logger.Logger
}

// NewTracker creates a Tracker.
func NewTracker(db *gorm.DB, pathRepo store.PathRepo, progRepo store.ProgressRepo, evaluator *achievements.Evaluator, log *logger.Logger) *Tracker {
	return &Tracker{
		db:        db,
		pathRepo:  pathRepo,
		progRepo:  progRepo,
		evaluator: evaluator,
		log:       log.With("component", "progress"),
	}
}

// ToggleItem flips one item's completion state and returns the recomputed
// rollups plus any achievements granted by a completion transition. Marking
// an item complete on a new-format path is gated by sequential unlocking;
// un-completing is never gated. Legacy-format paths are not gated.
func (t *Tracker) ToggleItem(ctx context.Context, userID string, pathID uuid.UUID, in ToggleInput) (*ToggleResult, error) {
	var result ToggleResult

	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The row lock serializes concurrent toggles on the same path, so
		// each recount below sees every committed upsert.
		path, err := t.pathRepo.GetForUserLocked(ctx, tx, userID, pathID)
		if err != nil {
			return err
		}

		var payload paths.Payload
		if err := json.Unmarshal(path.Payload, &payload); err != nil {
			return fmt.Errorf("unmarshal stored payload: %w", err)
		}
		if err := validateTarget(payload, in); err != nil {
			return err
		}

		records, err := t.progRepo.ListByPath(ctx, tx, pathID)
		if err != nil {
			return err
		}

		if in.Completed && payload.IsNewFormat {
			if err := checkUnlocked(payload.Path, in, completedSet(records)); err != nil {
				return err
			}
		}

		rec := &store.ProgressRecord{
			PathID:      pathID,
			PositionKey: in.PositionKey,
			ItemType:    string(in.ItemType),
			ItemIndex:   in.ItemIndex,
			Completed:   in.Completed,
		}
		if in.Completed {
			now := time.Now().UTC()
			rec.CompletedAt = &now
		}
		if in.Notes != nil {
			rec.Notes = *in.Notes
		} else if prev := findRecord(records, in); prev != nil {
			rec.Notes = prev.Notes
		}
		if err := t.progRepo.Upsert(ctx, tx, rec); err != nil {
			return fmt.Errorf("upsert progress: %w", err)
		}

		// Rollups are always a fresh count over the rows, never an
		// increment, so concurrent or retried toggles cannot drift.
		topicCount, err := t.progRepo.CountCompleted(ctx, tx, pathID,
			[]string{string(paths.ItemLesson), string(paths.ItemTopic)})
		if err != nil {
			return err
		}
		stageCount, err := t.progRepo.CountCompleted(ctx, tx, pathID,
			[]string{string(paths.ItemStage)})
		if err != nil {
			return err
		}

		path.CompletedTopics = int(topicCount)
		path.CompletedStages = int(stageCount)
		path.LastAccessedAt = time.Now().UTC()

		fullyComplete := path.TotalTopics > 0 && path.CompletedTopics >= path.TotalTopics
		if fullyComplete && path.Status != store.StatusCompleted {
			now := time.Now().UTC()
			path.Status = store.StatusCompleted
			path.CompletedAt = &now
			if err := t.pathRepo.Update(ctx, tx, path); err != nil {
				return err
			}

			granted, err := t.evaluator.OnPathCompleted(ctx, tx, userID, pathID, path.Topic)
			if err != nil {
				return err
			}
			result.NewAchievements = granted
			t.log.Info("path completed", "user_id", userID, "path_id", pathID, "topic", path.Topic)
		} else {
			// Completion is monotonic: dropping below the threshold
			// keeps the completed status until an explicit restart.
			if err := t.pathRepo.Update(ctx, tx, path); err != nil {
				return err
			}
		}

		result.CompletedTopics = path.CompletedTopics
		result.CompletedStages = path.CompletedStages
		result.IsFullyCompleted = path.Status == store.StatusCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.NewAchievements == nil {
		result.NewAchievements = []*store.Achievement{}
	}
	return &result, nil
}

// findRecord returns the existing row matching the toggled item, if any.
func findRecord(records []*store.ProgressRecord, in ToggleInput) *store.ProgressRecord {
	for _, r := range records {
		if r.PositionKey == in.PositionKey && r.ItemType == string(in.ItemType) && r.ItemIndex == in.ItemIndex {
			return r
		}
	}
	return nil
}

// completedSet builds the O(1) lookup used by the gating walk.
func completedSet(records []*store.ProgressRecord) map[string]bool {
	set := make(map[string]bool, len(records))
	for _, r := range records {
		if r.Completed {
			set[paths.ProgressMapKey(r.PositionKey, paths.ItemType(r.ItemType), r.ItemIndex)] = true
		}
	}
	return set
}

// validateTarget rejects toggles that address positions outside the stored
// payload. The two formats have separate keying schemes and are checked
// separately.
func validateTarget(payload paths.Payload, in ToggleInput) error {
	if in.ItemIndex < 0 {
		return fmt.Errorf("%w: negative item index", paths.ErrValidation)
	}

	if payload.IsNewFormat {
		key := paths.DecodePositionKey(in.PositionKey)
		if !key.Valid() || key.UnitIndex >= len(payload.Path.Units) {
			return fmt.Errorf("%w: position %d outside path", paths.ErrValidation, in.PositionKey)
		}
		unit := payload.Path.Units[key.UnitIndex]

		switch in.ItemType {
		case paths.ItemBoss:
			if !key.IsBoss() || in.ItemIndex != 0 {
				return fmt.Errorf("%w: malformed boss position", paths.ErrValidation)
			}
		case paths.ItemLesson:
			if key.IsBoss() || key.LevelIndex >= len(unit.Levels) {
				return fmt.Errorf("%w: level %d outside unit", paths.ErrValidation, key.LevelIndex)
			}
			if in.ItemIndex >= len(unit.Levels[key.LevelIndex].Lessons) {
				return fmt.Errorf("%w: lesson %d outside level", paths.ErrValidation, in.ItemIndex)
			}
		case paths.ItemProject:
			if key.IsBoss() || key.LevelIndex >= len(unit.Levels) {
				return fmt.Errorf("%w: level %d outside unit", paths.ErrValidation, key.LevelIndex)
			}
			if in.ItemIndex != 0 {
				return fmt.Errorf("%w: malformed project position", paths.ErrValidation)
			}
		default:
			return fmt.Errorf("%w: item type %q not valid for this format", paths.ErrValidation, in.ItemType)
		}
		return nil
	}

	if in.PositionKey < 0 || in.PositionKey >= len(payload.Stages) {
		return fmt.Errorf("%w: stage %d outside path", paths.ErrValidation, in.PositionKey)
	}
	stage := payload.Stages[in.PositionKey]
	switch in.ItemType {
	case paths.ItemTopic:
		if in.ItemIndex >= len(stage.KeyTopics) {
			return fmt.Errorf("%w: topic %d outside stage", paths.ErrValidation, in.ItemIndex)
		}
	case paths.ItemProject, paths.ItemStage:
		if in.ItemIndex != 0 {
			return fmt.Errorf("%w: malformed %s position", paths.ErrValidation, in.ItemType)
		}
	default:
		return fmt.Errorf("%w: item type %q not valid for this format", paths.ErrValidation, in.ItemType)
	}
	return nil
}

// checkUnlocked enforces sequential unlocking for new-format paths:
// a lesson needs its predecessor, the first lesson of a level needs the
// previous level, the first level of a unit needs the previous unit, and a
// boss needs every level of its unit.
func checkUnlocked(path *paths.LearningPath, in ToggleInput, done map[string]bool) error {
	key := paths.DecodePositionKey(in.PositionKey)

	switch in.ItemType {
	case paths.ItemBoss:
		if !unitLessonsDone(path, key.UnitIndex, done) {
			return fmt.Errorf("%w: boss requires every level of unit %d", ErrItemLocked, key.UnitIndex+1)
		}
	case paths.ItemLesson:
		if in.ItemIndex > 0 {
			if !lessonDone(key.UnitIndex, key.LevelIndex, in.ItemIndex-1, done) {
				return fmt.Errorf("%w: lesson %d requires lesson %d", ErrItemLocked, in.ItemIndex+1, in.ItemIndex)
			}
			return nil
		}
		if key.LevelIndex > 0 {
			if !levelLessonsDone(path, key.UnitIndex, key.LevelIndex-1, done) {
				return fmt.Errorf("%w: level %d requires level %d", ErrItemLocked, key.LevelIndex+1, key.LevelIndex)
			}
			return nil
		}
		if key.UnitIndex > 0 {
			if !unitLessonsDone(path, key.UnitIndex-1, done) {
				return fmt.Errorf("%w: unit %d requires unit %d", ErrItemLocked, key.UnitIndex+1, key.UnitIndex)
			}
		}
	}
	// Projects are not part of the unlock chain.
	return nil
}

func lessonDone(unit, level, lesson int, done map[string]bool) bool {
	return done[paths.ProgressMapKey(paths.LevelKey(unit, level).Encode(), paths.ItemLesson, lesson)]
}

func levelLessonsDone(path *paths.LearningPath, unit, level int, done map[string]bool) bool {
	for i := range path.Units[unit].Levels[level].Lessons {
		if !lessonDone(unit, level, i, done) {
			return false
		}
	}
	return true
}

func unitLessonsDone(path *paths.LearningPath, unit int, done map[string]bool) bool {
	for li := range path.Units[unit].Levels {
		if !levelLessonsDone(path, unit, li, done) {
			return false
		}
	}
	return true
}
