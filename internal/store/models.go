// Package store is the persistence layer: gorm models and repositories for
// saved paths, per-item progress, achievements, provider call events, and
// site-wide counters. Repositories take an optional transaction handle so
// callers can compose multi-row updates atomically.
package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Path lifecycle status values. Archival is a separate flag so a completed
// path keeps its status when archived.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// SavedPath is one persisted learning path owned by a user. Payload holds
// the serialized paths.Payload; the rollup columns are denormalized from the
// progress rows and recomputed in full on every toggle.
type SavedPath struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string         `gorm:"column:user_id;not null;index" json:"user_id"`
	Topic           string         `gorm:"column:topic;not null" json:"topic"`
	Payload         datatypes.JSON `gorm:"column:payload;not null" json:"payload"`
	IsNewFormat     bool           `gorm:"column:is_new_format;not null" json:"is_new_format"`
	Status          string         `gorm:"column:status;not null;default:'active'" json:"status"`
	CompletedTopics int            `gorm:"column:completed_topics;not null;default:0" json:"completed_topics"`
	TotalTopics     int            `gorm:"column:total_topics;not null;default:0" json:"total_topics"`
	CompletedStages int            `gorm:"column:completed_stages;not null;default:0" json:"completed_stages"`
	TotalStages     int            `gorm:"column:total_stages;not null;default:0" json:"total_stages"`
	Archived        bool           `gorm:"column:archived;not null;default:false;index" json:"archived"`
	CompletedAt     *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	LastAccessedAt  time.Time      `gorm:"column:last_accessed_at;not null" json:"last_accessed_at"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (SavedPath) TableName() string { return "saved_paths" }

func (p *SavedPath) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.LastAccessedAt.IsZero() {
		p.LastAccessedAt = time.Now().UTC()
	}
	return nil
}

// ProgressRecord is the completion state of one trackable item within a
// path. PositionKey is the encoded unit/level position for new-format paths
// and the raw stage index for legacy ones. The composite unique index makes
// toggles upserts rather than inserts.
type ProgressRecord struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PathID      uuid.UUID  `gorm:"type:uuid;not null;index;index:idx_path_item,unique" json:"path_id"`
	PositionKey int        `gorm:"column:position_key;not null;index:idx_path_item,unique" json:"position_key"`
	ItemType    string     `gorm:"column:item_type;not null;index:idx_path_item,unique" json:"item_type"`
	ItemIndex   int        `gorm:"column:item_index;not null;index:idx_path_item,unique" json:"item_index"`
	Completed   bool       `gorm:"column:completed;not null;default:false" json:"completed"`
	Notes       string     `gorm:"column:notes;not null;default:''" json:"notes"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (ProgressRecord) TableName() string { return "progress_records" }

func (r *ProgressRecord) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Achievement kinds awarded on path completion.
const (
	AchievementPathCompletion = "path_completion"
	AchievementFirstPath      = "first_path"
	AchievementMilestone5     = "milestone_5"
	AchievementMilestone10    = "milestone_10"
	AchievementMilestone25    = "milestone_25"
	AchievementMilestone50    = "milestone_50"
)

// Achievement is one earned award. PathID is set only for per-path kinds;
// one-shot kinds (first_path, milestones) leave it nil.
type Achievement struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string     `gorm:"column:user_id;not null;index:idx_user_kind" json:"user_id"`
	Kind        string     `gorm:"column:kind;not null;index:idx_user_kind" json:"kind"`
	PathID      *uuid.UUID `gorm:"type:uuid;column:path_id;index" json:"path_id,omitempty"`
	Title       string     `gorm:"column:title;not null;default:''" json:"title"`
	Description string     `gorm:"column:description;not null;default:''" json:"description"`
	Icon        string     `gorm:"column:icon;not null;default:''" json:"icon"`
	Topic       string     `gorm:"column:topic;not null;default:''" json:"topic"`
	AwardedAt   time.Time  `gorm:"column:awarded_at;not null" json:"awarded_at"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
}

func (Achievement) TableName() string { return "achievements" }

func (a *Achievement) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AwardedAt.IsZero() {
		a.AwardedAt = time.Now().UTC()
	}
	return nil
}

// LLMRequestEvent is one recorded provider call.
type LLMRequestEvent struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Provider     string    `gorm:"column:provider;not null" json:"provider"`
	Model        string    `gorm:"column:model;not null" json:"model"`
	Purpose      string    `gorm:"column:purpose;not null;index" json:"purpose"`
	InputTokens  int       `gorm:"column:input_tokens;not null;default:0" json:"input_tokens"`
	OutputTokens int       `gorm:"column:output_tokens;not null;default:0" json:"output_tokens"`
	LatencyMs    int64     `gorm:"column:latency_ms;not null;default:0" json:"latency_ms"`
	Success      bool      `gorm:"column:success;not null" json:"success"`
	ErrorMessage string    `gorm:"column:error_message;not null;default:''" json:"error_message"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (LLMRequestEvent) TableName() string { return "llm_request_events" }

func (e *LLMRequestEvent) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// SiteStats is a single-row table of site-wide counters.
type SiteStats struct {
	ID             int       `gorm:"primaryKey" json:"id"`
	PathsGenerated int64     `gorm:"column:paths_generated;not null;default:0" json:"paths_generated"`
	SearchesRun    int64     `gorm:"column:searches_run;not null;default:0" json:"searches_run"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (SiteStats) TableName() string { return "site_stats" }

// siteStatsRowID is the fixed primary key of the single stats row.
const siteStatsRowID = 1
