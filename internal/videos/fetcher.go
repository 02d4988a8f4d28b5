package videos

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/abhisek/pathweaver/internal/logger"
	"github.com/abhisek/pathweaver/internal/paths"
)

// Fetcher resolves free-text queries to Resources, absorbing provider
// failures into placeholders.
type Fetcher struct {
	searcher Searcher
	log      *logger.Logger
}

// NewFetcher creates a Fetcher on top of a Searcher.
func NewFetcher(searcher Searcher, log *logger.Logger) *Fetcher {
	return &Fetcher{searcher: searcher, log: log.With("component", "videos")}
}

// FetchBestMatch resolves a query to its single best video Resource. It
// never fails: provider errors and empty result sets both yield the
// placeholder, so generation degrades per lesson instead of aborting.
func (f *Fetcher) FetchBestMatch(ctx context.Context, query string) paths.Resource {
	results, err := f.searcher.Search(ctx, query, 1)
	if err != nil {
		f.log.Warn("video lookup failed, using placeholder", "query", query, "error", err)
		return Placeholder(query, paths.KindVideo)
	}
	if len(results) == 0 {
		return Placeholder(query, paths.KindVideo)
	}
	return toResource(results[0])
}

// FetchResourceList resolves a topic to up to desiredCount Resources of the
// allowed kinds. Video slots come from the lookup provider; everything else
// (and any shortfall) is filled with placeholders so the caller always gets
// exactly desiredCount well-formed entries.
func (f *Fetcher) FetchResourceList(ctx context.Context, topic string, desiredCount int, allowedKinds []paths.ResourceKind) []paths.Resource {
	if desiredCount <= 0 {
		return nil
	}
	if len(allowedKinds) == 0 {
		allowedKinds = paths.AllResourceKinds()
	}

	out := make([]paths.Resource, 0, desiredCount)

	if kindAllowed(paths.KindVideo, allowedKinds) {
		results, err := f.searcher.Search(ctx, topic, int64(desiredCount))
		if err != nil {
			f.log.Warn("video list lookup failed", "topic", topic, "error", err)
		}
		for _, r := range results {
			if len(out) == desiredCount {
				break
			}
			out = append(out, toResource(r))
		}
	}

	for kind := 0; len(out) < desiredCount; kind++ {
		out = append(out, Placeholder(topic, allowedKinds[kind%len(allowedKinds)]))
	}

	return out
}

// Placeholder builds the degraded Resource for a query: title derived from
// the query, a search-results fallback URL, and zeroed metrics.
func Placeholder(query string, kind paths.ResourceKind) paths.Resource {
	return paths.Resource{
		Title:       fmt.Sprintf("%s (search results)", strings.TrimSpace(query)),
		Kind:        kind,
		Description: fmt.Sprintf("Curated results for %q", query),
		URL:         "https://www.youtube.com/results?search_query=" + url.QueryEscape(query),
		Views:       FormatViews(0),
		ViewCount:   0,
		DurationMin: 0,
	}
}

func toResource(v VideoResult) paths.Resource {
	publishedAt := v.PublishedAt
	if idx := strings.IndexByte(publishedAt, 'T'); idx > 0 {
		publishedAt = publishedAt[:idx]
	}
	return paths.Resource{
		Title:        v.Title,
		Kind:         paths.KindVideo,
		Description:  v.ChannelTitle,
		URL:          "https://www.youtube.com/watch?v=" + v.ID,
		Views:        FormatViews(v.ViewCount),
		ViewCount:    v.ViewCount,
		PublishedAt:  publishedAt,
		DurationMin:  ParseISODuration(v.Duration),
		VideoID:      v.ID,
		ThumbnailURL: v.ThumbnailURL,
	}
}

func kindAllowed(kind paths.ResourceKind, allowed []paths.ResourceKind) bool {
	for _, k := range allowed {
		if k == kind {
			return true
		}
	}
	return false
}
