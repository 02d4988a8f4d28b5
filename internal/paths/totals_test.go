package paths

import (
	"errors"
	"testing"
)

func samplePath() *LearningPath {
	return &LearningPath{
		Topic: "rust programming",
		Units: []Unit{
			{
				Title: "Foundations",
				Levels: []Level{
					{Title: "Syntax", Lessons: []Lesson{
						{ID: "l1", Title: "Variables", XP: 10},
						{ID: "l2", Title: "Functions", XP: 12},
					}},
					{Title: "Ownership", Lessons: []Lesson{
						{ID: "l3", Title: "Borrowing", XP: 15},
					}},
				},
			},
			{
				Title: "Applied",
				Levels: []Level{
					{Title: "CLI Tools", Lessons: []Lesson{
						{ID: "l4", Title: "Clap", XP: 11},
						{ID: "l5", Title: "Errors", XP: 14},
					}},
				},
			},
		},
	}
}

func TestComputeTotals(t *testing.T) {
	p := samplePath()
	p.ComputeTotals()

	if p.UnitCount != 2 {
		t.Errorf("UnitCount = %d, want 2", p.UnitCount)
	}
	if p.LevelCount != 3 {
		t.Errorf("LevelCount = %d, want 3", p.LevelCount)
	}
	if p.LessonCount != 5 {
		t.Errorf("LessonCount = %d, want 5", p.LessonCount)
	}
	if p.TotalXP != 62 {
		t.Errorf("TotalXP = %d, want 62", p.TotalXP)
	}
	if got := p.Units[0].Levels[0].TotalXP; got != 22 {
		t.Errorf("level TotalXP = %d, want 22", got)
	}
}

func TestCountTrackableNewFormat(t *testing.T) {
	pl := NewPayload(samplePath())
	topics, stages := pl.CountTrackable()
	if topics != 5 {
		t.Errorf("topics = %d, want 5", topics)
	}
	if stages != 3 {
		t.Errorf("stages = %d, want 3", stages)
	}
}

func TestCountTrackableLegacy(t *testing.T) {
	pl := LegacyPayload([]PathStage{
		{Title: "Basics", KeyTopics: []KeyTopic{{Name: "a"}, {Name: "b"}}},
		{Title: "Advanced", KeyTopics: []KeyTopic{{Name: "c"}}},
	})
	topics, stages := pl.CountTrackable()
	if topics != 3 {
		t.Errorf("topics = %d, want 3", topics)
	}
	if stages != 2 {
		t.Errorf("stages = %d, want 2", stages)
	}
}

func TestValidate(t *testing.T) {
	good := NewPayload(samplePath())
	if err := good.Validate(); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}

	bad := []Payload{
		{IsNewFormat: true},
		{IsNewFormat: true, Path: &LearningPath{Topic: "x"}},
		{IsNewFormat: true, Path: samplePath(), Stages: []PathStage{{Title: "s"}}},
		{},
		{Stages: []PathStage{{}}},
		{Path: samplePath()},
	}
	for i, pl := range bad {
		if err := pl.Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestValidateRejectsOversizedTree(t *testing.T) {
	p := &LearningPath{Topic: "x"}
	for range MaxUnits + 1 {
		p.Units = append(p.Units, Unit{Levels: []Level{{Lessons: []Lesson{{ID: "l"}}}}})
	}
	if err := NewPayload(p).Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for %d units, got %v", len(p.Units), err)
	}
}
