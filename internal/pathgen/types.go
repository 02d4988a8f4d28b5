// Package pathgen turns a free-text topic into a learning path: an LLM
// produces the structural outline, then every lesson is resolved to a
// concrete video resource and the tree is assembled with XP and rollups.
package pathgen

import (
	"context"

	"github.com/abhisek/pathweaver/internal/paths"
)

// ResourceResolver resolves search queries to Resources. Implemented by
// videos.Fetcher; resolutions never fail, they degrade to placeholders.
type ResourceResolver interface {
	FetchBestMatch(ctx context.Context, query string) paths.Resource
	FetchResourceList(ctx context.Context, topic string, desiredCount int, allowedKinds []paths.ResourceKind) []paths.Resource
}

// outline mirrors the JSON structure requested from the provider.
type outline struct {
	Units []outlineUnit `json:"units"`
}

type outlineUnit struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Color         string         `json:"color"`
	BossChallenge string         `json:"bossChallenge"`
	Levels        []outlineLevel `json:"levels"`
}

type outlineLevel struct {
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Icon             string          `json:"icon"`
	ChallengeProject string          `json:"challengeProject"`
	Lessons          []outlineLesson `json:"lessons"`
}

type outlineLesson struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SearchHint  string `json:"searchHint"`
}

// suggestion is one quick-dive resource suggestion from the provider.
type suggestion struct {
	Title       string `json:"title"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	SearchHint  string `json:"searchHint"`
}

type suggestionList struct {
	Suggestions []suggestion `json:"suggestions"`
}
