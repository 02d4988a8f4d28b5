// Package achievements awards badges when a path reaches full completion.
// Evaluation runs inside the same transaction as the completion transition,
// so awards and the status flip commit or roll back together.
package achievements

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhisek/pathweaver/internal/logger"
	"github.com/abhisek/pathweaver/internal/store"
)

// milestone thresholds in ascending order.
var milestones = []struct {
	count int64
	kind  string
}{
	{5, store.AchievementMilestone5},
	{10, store.AchievementMilestone10},
	{25, store.AchievementMilestone25},
	{50, store.AchievementMilestone50},
}

// Evaluator applies the award rules. Each rule is existence-checked before
// insert, so re-running a transition awards nothing new.
type Evaluator struct {
	paths        store.PathRepo
	achievements store.AchievementRepo
	log          *logger.Logger
}

// NewEvaluator creates an Evaluator over the given repositories.
func NewEvaluator(paths store.PathRepo, achievements store.AchievementRepo, log *logger.Logger) *Evaluator {
	return &Evaluator{
		paths:        paths,
		achievements: achievements,
		log:          log.With("component", "achievements"),
	}
}

// OnPathCompleted evaluates all rules for a completion transition and
// returns the newly granted awards. The path's status must already be
// completed within tx so the completed-path count includes it.
func (e *Evaluator) OnPathCompleted(ctx context.Context, tx *gorm.DB, userID string, pathID uuid.UUID, topic string) ([]*store.Achievement, error) {
	var granted []*store.Achievement

	has, err := e.achievements.HasForPath(ctx, tx, userID, store.AchievementPathCompletion, pathID)
	if err != nil {
		return nil, fmt.Errorf("check path_completion: %w", err)
	}
	if !has {
		a := &store.Achievement{
			UserID:      userID,
			Kind:        store.AchievementPathCompletion,
			PathID:      &pathID,
			Title:       fmt.Sprintf("Completed: %s", topic),
			Description: fmt.Sprintf("Finished every lesson of your %s learning path.", topic),
			Icon:        "trophy",
			Topic:       topic,
		}
		if err := e.achievements.Create(ctx, tx, a); err != nil {
			return nil, fmt.Errorf("award path_completion: %w", err)
		}
		granted = append(granted, a)
	}

	completed, err := e.paths.CountCompletedByUser(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("count completed paths: %w", err)
	}

	if completed == 1 {
		a, err := e.awardOnce(ctx, tx, userID, store.AchievementFirstPath,
			"First Path", "Completed your very first learning path.", "star")
		if err != nil {
			return nil, err
		}
		if a != nil {
			granted = append(granted, a)
		}
	}

	for _, m := range milestones {
		if completed < m.count {
			break
		}
		a, err := e.awardOnce(ctx, tx, userID, m.kind,
			fmt.Sprintf("%d Paths", m.count),
			fmt.Sprintf("Completed %d learning paths.", m.count),
			"medal")
		if err != nil {
			return nil, err
		}
		if a != nil {
			granted = append(granted, a)
		}
	}

	if len(granted) > 0 {
		e.log.Info("achievements granted", "user_id", userID, "path_id", pathID, "count", len(granted))
	}
	return granted, nil
}

// awardOnce inserts a one-shot achievement unless the user already holds it.
func (e *Evaluator) awardOnce(ctx context.Context, tx *gorm.DB, userID, kind, title, description, icon string) (*store.Achievement, error) {
	has, err := e.achievements.HasKind(ctx, tx, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", kind, err)
	}
	if has {
		return nil, nil
	}
	a := &store.Achievement{
		UserID:      userID,
		Kind:        kind,
		Title:       title,
		Description: description,
		Icon:        icon,
	}
	if err := e.achievements.Create(ctx, tx, a); err != nil {
		return nil, fmt.Errorf("award %s: %w", kind, err)
	}
	return a, nil
}
