// Package paths defines the learning-path domain model: the unit/level/lesson
// tree produced by generation, the legacy flat stage format, and the position
// keys that address trackable items inside either shape.
package paths

// ResourceKind is the category of a consumable piece of content.
type ResourceKind string

const (
	KindVideo   ResourceKind = "Video"
	KindArticle ResourceKind = "Article"
	KindCourse  ResourceKind = "Course"
	KindBook    ResourceKind = "Book"
	KindPodcast ResourceKind = "Podcast"
)

// AllResourceKinds returns the known kinds in display order.
func AllResourceKinds() []ResourceKind {
	return []ResourceKind{KindVideo, KindArticle, KindCourse, KindBook, KindPodcast}
}

// Resource is a single consumable unit of content. Immutable once produced;
// owned by exactly one Lesson or KeyTopic.
type Resource struct {
	Title        string       `json:"title"`
	Kind         ResourceKind `json:"kind"`
	Description  string       `json:"description"`
	URL          string       `json:"url"`
	Views        string       `json:"views"`
	ViewCount    uint64       `json:"viewCount"`
	PublishedAt  string       `json:"publishedAt"`
	DurationMin  int          `json:"durationMin"`
	VideoID      string       `json:"videoId,omitempty"`
	ThumbnailURL string       `json:"thumbnailUrl,omitempty"`
}

// Lesson is the atomic learning unit. XP is assigned at assembly time,
// always within [MinLessonXP, MaxLessonXP].
type Lesson struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	XP          int      `json:"xp"`
	Resource    Resource `json:"resource"`
}

// XP reward bounds for a single lesson.
const (
	MinLessonXP = 10
	MaxLessonXP = 15
)

// Level is an ordered group of lessons. TotalXP is derived from the lessons.
type Level struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Icon             string   `json:"icon"`
	ChallengeProject string   `json:"challengeProject,omitempty"`
	Lessons          []Lesson `json:"lessons"`
	TotalXP          int      `json:"totalXp"`
}

// Unit is an ordered group of levels. The boss challenge unlocks once every
// level in the unit is complete.
type Unit struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Color         string  `json:"color"`
	BossChallenge string  `json:"bossChallenge,omitempty"`
	Levels        []Level `json:"levels"`
}

// LearningPath is the aggregate root for the new unit/level/lesson format.
type LearningPath struct {
	Topic       string `json:"topic"`
	Units       []Unit `json:"units"`
	UnitCount   int    `json:"unitCount"`
	LevelCount  int    `json:"levelCount"`
	LessonCount int    `json:"lessonCount"`
	TotalXP     int    `json:"totalXp"`
}

// KeyTopic is a named resource inside a legacy stage.
type KeyTopic struct {
	Name     string   `json:"name"`
	Resource Resource `json:"resource"`
}

// PathStage is one stage of the legacy flat format.
type PathStage struct {
	Title            string     `json:"title"`
	KeyTopics        []KeyTopic `json:"keyTopics"`
	SuggestedProject string     `json:"suggestedProject,omitempty"`
}

// Payload is the tagged union persisted for a saved path. Exactly one of
// Path or Stages is set, discriminated by IsNewFormat. The two formats have
// different cardinalities and keying schemes and are never unified
// internally; consumers branch once on the discriminant.
type Payload struct {
	IsNewFormat bool          `json:"isNewFormat"`
	Path        *LearningPath `json:"path,omitempty"`
	Stages      []PathStage   `json:"stages,omitempty"`
}

// NewPayload wraps a LearningPath in the new-format payload.
func NewPayload(p *LearningPath) Payload {
	return Payload{IsNewFormat: true, Path: p}
}

// LegacyPayload wraps a stage list in the legacy-format payload.
func LegacyPayload(stages []PathStage) Payload {
	return Payload{IsNewFormat: false, Stages: stages}
}
