// Package videos wraps the video-lookup provider and normalizes its results
// into the domain Resource shape. Lookups degrade to a well-formed
// placeholder instead of failing: callers never branch on "no resource",
// only on resource content.
package videos

import "context"

// VideoResult is one ranked result from the lookup provider.
type VideoResult struct {
	ID           string
	Title        string
	ChannelTitle string
	PublishedAt  string // RFC 3339
	Duration     string // ISO 8601, e.g. "PT12M34S"
	ViewCount    uint64
	ThumbnailURL string
}

// Searcher is the lookup provider boundary. Quota exhaustion returns an
// empty slice, not an error.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int64) ([]VideoResult, error)
}
