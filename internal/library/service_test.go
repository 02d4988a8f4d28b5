package library_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/abhisek/pathweaver/internal/library"
	"github.com/abhisek/pathweaver/internal/logger"
	"github.com/abhisek/pathweaver/internal/paths"
	"github.com/abhisek/pathweaver/internal/store"
	"github.com/abhisek/pathweaver/internal/testutil"
)

func samplePath(topic string) *paths.LearningPath {
	p := &paths.LearningPath{
		Topic: topic,
		Units: []paths.Unit{
			{
				Title: "Unit 1",
				Levels: []paths.Level{
					{
						Title: "Level 1",
						Lessons: []paths.Lesson{
							{ID: "lesson-0-0-0", Title: "A", XP: 10},
							{ID: "lesson-0-0-1", Title: "B", XP: 12},
						},
					},
				},
			},
		},
	}
	p.ComputeTotals()
	return p
}

func legacyStages() []paths.PathStage {
	return []paths.PathStage{
		{Title: "Stage 1", KeyTopics: []paths.KeyTopic{
			{Name: "T1", Resource: paths.Resource{Title: "R1", Kind: paths.KindVideo, URL: "https://example.com/1"}},
			{Name: "T2", Resource: paths.Resource{Title: "R2", Kind: paths.KindArticle, URL: "https://example.com/2"}},
		}},
		{Title: "Stage 2", KeyTopics: []paths.KeyTopic{
			{Name: "T3", Resource: paths.Resource{Title: "R3", Kind: paths.KindVideo, URL: "https://example.com/3"}},
		}},
	}
}

func newService(t *testing.T) (*library.Service, *gorm.DB, store.ProgressRepo) {
	t.Helper()
	db := testutil.DB(t)
	pathRepo := store.NewPathRepo(db, logger.Nop())
	progRepo := store.NewProgressRepo(db, logger.Nop())
	return library.NewService(db, pathRepo, progRepo, logger.Nop()), db, progRepo
}

func TestSaveAndGet(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	row, err := svc.Save(ctx, "u", "Rust", paths.NewPayload(samplePath("Rust")), false)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if row.TotalTopics != 2 || row.TotalStages != 1 {
		t.Errorf("totals = %d/%d, want 2/1", row.TotalTopics, row.TotalStages)
	}
	if row.Status != store.StatusActive || !row.IsNewFormat {
		t.Errorf("row = %+v", row)
	}

	got, err := svc.Get(ctx, "u", row.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Payload.IsNewFormat || got.Payload.Path.Topic != "Rust" {
		t.Errorf("payload = %+v", got.Payload)
	}
	if len(got.Progress) != 0 {
		t.Errorf("fresh path has %d progress entries", len(got.Progress))
	}
}

func TestSaveRejectsInvalidPayload(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Save(context.Background(), "u", "Rust", paths.Payload{IsNewFormat: true}, false)
	if !errors.Is(err, paths.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestDuplicateTopicConflict(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	first, err := svc.Save(ctx, "u", "Go", paths.NewPayload(samplePath("Go")), false)
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}

	_, err = svc.Save(ctx, "u", "Go", paths.NewPayload(samplePath("Go")), false)
	var dup *store.DuplicateTopicError
	if !errors.As(err, &dup) {
		t.Fatalf("second Save err = %v, want DuplicateTopicError", err)
	}
	if dup.ExistingID != first.ID {
		t.Errorf("conflict carries id %s, want %s", dup.ExistingID, first.ID)
	}

	// A different user is unaffected.
	if _, err := svc.Save(ctx, "other", "Go", paths.NewPayload(samplePath("Go")), false); err != nil {
		t.Errorf("other user's Save: %v", err)
	}

	// Replace archives the original and inserts.
	second, err := svc.Save(ctx, "u", "Go", paths.NewPayload(samplePath("Go")), true)
	if err != nil {
		t.Fatalf("replace Save: %v", err)
	}
	if second.ID == first.ID {
		t.Error("replace did not create a new row")
	}

	listed, err := svc.List(ctx, "u")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != second.ID {
		t.Errorf("List after replace = %+v", listed)
	}

	// Conflict detection is an exact string match: a case variant is a
	// distinct topic.
	if _, err := svc.Save(ctx, "u", "go", paths.NewPayload(samplePath("go")), false); err != nil {
		t.Errorf("case-variant Save: %v", err)
	}
}

func TestSaveSucceedsAfterArchive(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	first, err := svc.Save(ctx, "u", "Go", paths.NewPayload(samplePath("Go")), false)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := svc.Archive(ctx, "u", first.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if _, err := svc.Save(ctx, "u", "Go", paths.NewPayload(samplePath("Go")), false); err != nil {
		t.Errorf("Save after archive: %v", err)
	}

	// Archived paths stay fetchable by their owner.
	if _, err := svc.Get(ctx, "u", first.ID); err != nil {
		t.Errorf("Get archived: %v", err)
	}
}

func TestLegacyRoundTrip(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	stages := legacyStages()
	row, err := svc.Save(ctx, "u", "History", paths.LegacyPayload(stages), false)
	if err != nil {
		t.Fatalf("Save legacy: %v", err)
	}
	if row.IsNewFormat {
		t.Error("legacy payload marked as new format")
	}
	if row.TotalTopics != 3 || row.TotalStages != 2 {
		t.Errorf("totals = %d/%d, want 3/2", row.TotalTopics, row.TotalStages)
	}

	got, err := svc.Get(ctx, "u", row.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	want, _ := json.Marshal(stages)
	have, _ := json.Marshal(got.Payload.Stages)
	if string(want) != string(have) {
		t.Errorf("stage structure changed across round trip:\nwant %s\nhave %s", want, have)
	}
}

func TestGetIsOwnerScoped(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	row, err := svc.Save(ctx, "u", "Go", paths.NewPayload(samplePath("Go")), false)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := svc.Get(ctx, "intruder", row.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("cross-user Get err = %v, want ErrNotFound", err)
	}
	if err := svc.Archive(ctx, "intruder", row.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("cross-user Archive err = %v, want ErrNotFound", err)
	}
	if err := svc.Restart(ctx, "intruder", row.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("cross-user Restart err = %v, want ErrNotFound", err)
	}
}

func TestRestartClearsProgress(t *testing.T) {
	svc, db, progRepo := newService(t)
	ctx := context.Background()

	row, err := svc.Save(ctx, "u", "Go", paths.NewPayload(samplePath("Go")), false)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	err = progRepo.Upsert(ctx, nil, &store.ProgressRecord{
		PathID: row.ID, PositionKey: 0, ItemType: string(paths.ItemLesson), ItemIndex: 0, Completed: true,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := db.Model(&store.SavedPath{}).Where("id = ?", row.ID).
		Updates(map[string]any{"completed_topics": 1, "status": store.StatusCompleted}).Error; err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	if err := svc.Restart(ctx, "u", row.ID); err != nil {
		t.Fatalf("Restart: %v", err)
	}

	got, err := svc.Get(ctx, "u", row.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Path.Status != store.StatusActive || got.Path.CompletedTopics != 0 || got.Path.CompletedAt != nil {
		t.Errorf("path after restart = %+v", got.Path)
	}
	if len(got.Progress) != 0 {
		t.Errorf("progress after restart has %d entries", len(got.Progress))
	}
	// Payload untouched.
	if got.Payload.Path.LessonCount != 2 {
		t.Errorf("payload changed by restart: %+v", got.Payload.Path)
	}
}
