package achievements_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/abhisek/pathweaver/internal/achievements"
	"github.com/abhisek/pathweaver/internal/logger"
	"github.com/abhisek/pathweaver/internal/store"
	"github.com/abhisek/pathweaver/internal/testutil"
)

func completedPath(t *testing.T, repo store.PathRepo, userID, topic string) *store.SavedPath {
	t.Helper()
	now := time.Now().UTC()
	row := &store.SavedPath{
		UserID:      userID,
		Topic:       topic,
		Payload:     datatypes.JSON([]byte(`{"isNewFormat":true}`)),
		IsNewFormat: true,
		Status:      store.StatusCompleted,
		CompletedAt: &now,
	}
	if err := repo.Create(context.Background(), nil, row); err != nil {
		t.Fatalf("create path: %v", err)
	}
	return row
}

func TestFirstCompletionAwardsBoth(t *testing.T) {
	db := testutil.DB(t)
	pathRepo := store.NewPathRepo(db, logger.Nop())
	achRepo := store.NewAchievementRepo(db, logger.Nop())
	ev := achievements.NewEvaluator(pathRepo, achRepo, logger.Nop())
	ctx := context.Background()

	path := completedPath(t, pathRepo, "u", "Rust")
	granted, err := ev.OnPathCompleted(ctx, nil, "u", path.ID, "Rust")
	if err != nil {
		t.Fatalf("OnPathCompleted: %v", err)
	}

	kinds := map[string]bool{}
	for _, a := range granted {
		kinds[a.Kind] = true
	}
	if !kinds[store.AchievementPathCompletion] || !kinds[store.AchievementFirstPath] {
		t.Errorf("granted kinds = %v, want path_completion and first_path", kinds)
	}
	if len(granted) != 2 {
		t.Errorf("len(granted) = %d, want 2", len(granted))
	}
}

func TestRepeatedTransitionAwardsNothing(t *testing.T) {
	db := testutil.DB(t)
	pathRepo := store.NewPathRepo(db, logger.Nop())
	achRepo := store.NewAchievementRepo(db, logger.Nop())
	ev := achievements.NewEvaluator(pathRepo, achRepo, logger.Nop())
	ctx := context.Background()

	path := completedPath(t, pathRepo, "u", "Rust")
	if _, err := ev.OnPathCompleted(ctx, nil, "u", path.ID, "Rust"); err != nil {
		t.Fatalf("first OnPathCompleted: %v", err)
	}

	granted, err := ev.OnPathCompleted(ctx, nil, "u", path.ID, "Rust")
	if err != nil {
		t.Fatalf("second OnPathCompleted: %v", err)
	}
	if len(granted) != 0 {
		t.Errorf("second transition granted %d awards, want 0", len(granted))
	}
}

func TestMilestoneBoundary(t *testing.T) {
	db := testutil.DB(t)
	pathRepo := store.NewPathRepo(db, logger.Nop())
	achRepo := store.NewAchievementRepo(db, logger.Nop())
	ev := achievements.NewEvaluator(pathRepo, achRepo, logger.Nop())
	ctx := context.Background()

	var granted []*store.Achievement
	for i := 1; i <= 6; i++ {
		topic := fmt.Sprintf("Topic %d", i)
		path := completedPath(t, pathRepo, "u", topic)
		g, err := ev.OnPathCompleted(ctx, nil, "u", path.ID, topic)
		if err != nil {
			t.Fatalf("OnPathCompleted %d: %v", i, err)
		}

		switch i {
		case 5:
			found := false
			for _, a := range g {
				if a.Kind == store.AchievementMilestone5 {
					found = true
				}
			}
			if !found {
				t.Errorf("5th completion did not award milestone_5: %+v", g)
			}
		case 6:
			for _, a := range g {
				if a.Kind != store.AchievementPathCompletion {
					t.Errorf("6th completion awarded unexpected %s", a.Kind)
				}
			}
		}
		granted = append(granted, g...)
	}

	// One first_path and one milestone_5 across the whole run.
	counts := map[string]int{}
	for _, a := range granted {
		counts[a.Kind]++
	}
	if counts[store.AchievementFirstPath] != 1 {
		t.Errorf("first_path awarded %d times", counts[store.AchievementFirstPath])
	}
	if counts[store.AchievementMilestone5] != 1 {
		t.Errorf("milestone_5 awarded %d times", counts[store.AchievementMilestone5])
	}
	if counts[store.AchievementPathCompletion] != 6 {
		t.Errorf("path_completion awarded %d times, want 6", counts[store.AchievementPathCompletion])
	}
}
