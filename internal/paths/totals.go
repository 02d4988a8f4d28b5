package paths

import (
	"errors"
	"fmt"
)

// ErrValidation marks a structurally malformed path payload. Rejected before
// any persistence attempt.
var ErrValidation = errors.New("invalid path payload")

// ComputeTotals recomputes every derived counter on the path: per-level XP,
// unit/level/lesson counts, and total XP. Pure aggregation over the tree.
func (p *LearningPath) ComputeTotals() {
	p.UnitCount = len(p.Units)
	p.LevelCount = 0
	p.LessonCount = 0
	p.TotalXP = 0

	for ui := range p.Units {
		for li := range p.Units[ui].Levels {
			level := &p.Units[ui].Levels[li]
			level.TotalXP = 0
			for _, lesson := range level.Lessons {
				level.TotalXP += lesson.XP
			}
			p.LevelCount++
			p.LessonCount += len(level.Lessons)
			p.TotalXP += level.TotalXP
		}
	}
}

// CountTrackable returns the number of leaf items (topics) and grouping
// items (stages) the payload contains, used as the saved path's immutable
// totals. New format: lessons and levels. Legacy: key topics and stages.
func (pl Payload) CountTrackable() (topics, stages int) {
	if pl.IsNewFormat {
		for _, u := range pl.Path.Units {
			for _, l := range u.Levels {
				topics += len(l.Lessons)
			}
			stages += len(u.Levels)
		}
		return topics, stages
	}
	for _, s := range pl.Stages {
		topics += len(s.KeyTopics)
	}
	return topics, len(pl.Stages)
}

// Validate checks the payload's structural shape against the format
// discriminant and the position-key limits.
func (pl Payload) Validate() error {
	if pl.IsNewFormat {
		if pl.Path == nil {
			return fmt.Errorf("%w: new format without path", ErrValidation)
		}
		if len(pl.Stages) != 0 {
			return fmt.Errorf("%w: new format carries legacy stages", ErrValidation)
		}
		return pl.Path.validate()
	}
	if pl.Path != nil {
		return fmt.Errorf("%w: legacy format carries a unit tree", ErrValidation)
	}
	if len(pl.Stages) == 0 {
		return fmt.Errorf("%w: legacy format without stages", ErrValidation)
	}
	if len(pl.Stages) > MaxUnits {
		return fmt.Errorf("%w: %d stages exceeds the %d-stage limit", ErrValidation, len(pl.Stages), MaxUnits)
	}
	for i, s := range pl.Stages {
		if s.Title == "" {
			return fmt.Errorf("%w: stage %d has no title", ErrValidation, i)
		}
	}
	return nil
}

func (p *LearningPath) validate() error {
	if p.Topic == "" {
		return fmt.Errorf("%w: empty topic", ErrValidation)
	}
	if len(p.Units) == 0 {
		return fmt.Errorf("%w: path has no units", ErrValidation)
	}
	if len(p.Units) > MaxUnits {
		return fmt.Errorf("%w: %d units exceeds the %d-unit limit", ErrValidation, len(p.Units), MaxUnits)
	}
	for ui, u := range p.Units {
		if len(u.Levels) == 0 {
			return fmt.Errorf("%w: unit %d has no levels", ErrValidation, ui)
		}
		if len(u.Levels) > MaxLevelsPerUnit {
			return fmt.Errorf("%w: unit %d has %d levels, limit is %d", ErrValidation, ui, len(u.Levels), MaxLevelsPerUnit)
		}
		for li, l := range u.Levels {
			if len(l.Lessons) == 0 {
				return fmt.Errorf("%w: unit %d level %d has no lessons", ErrValidation, ui, li)
			}
		}
	}
	return nil
}
