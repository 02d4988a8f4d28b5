package videos

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/pathweaver/internal/logger"
	"github.com/abhisek/pathweaver/internal/paths"
)

// stubSearcher returns canned results keyed by query substring.
type stubSearcher struct {
	results map[string][]VideoResult
	err     error
}

func (s *stubSearcher) Search(_ context.Context, query string, _ int64) ([]VideoResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	for key, res := range s.results {
		if strings.Contains(query, key) {
			return res, nil
		}
	}
	return nil, nil
}

func TestFetchBestMatch(t *testing.T) {
	f := NewFetcher(&stubSearcher{results: map[string][]VideoResult{
		"go generics": {{
			ID:           "abc123",
			Title:        "Go Generics in 20 Minutes",
			ChannelTitle: "GopherCon",
			PublishedAt:  "2023-05-01T10:00:00Z",
			Duration:     "PT19M45S",
			ViewCount:    1_250_000,
			ThumbnailURL: "https://i.ytimg.com/vi/abc123/mqdefault.jpg",
		}},
	}}, logger.Nop())

	r := f.FetchBestMatch(context.Background(), "go generics tutorial")
	if r.VideoID != "abc123" {
		t.Fatalf("VideoID = %q, want abc123", r.VideoID)
	}
	if r.URL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("URL = %q", r.URL)
	}
	if r.DurationMin != 20 {
		t.Errorf("DurationMin = %d, want 20", r.DurationMin)
	}
	if r.Views != "1.2M views" {
		t.Errorf("Views = %q, want 1.2M views", r.Views)
	}
	if r.PublishedAt != "2023-05-01" {
		t.Errorf("PublishedAt = %q, want date only", r.PublishedAt)
	}
	if r.Kind != paths.KindVideo {
		t.Errorf("Kind = %q", r.Kind)
	}
}

func TestFetchBestMatchPlaceholderOnEmpty(t *testing.T) {
	f := NewFetcher(&stubSearcher{}, logger.Nop())

	r := f.FetchBestMatch(context.Background(), "xyzzy-nonexistent-topic-42")
	if r.ViewCount != 0 || r.DurationMin != 0 {
		t.Errorf("placeholder must have zero metrics, got %+v", r)
	}
	if r.URL == "" {
		t.Error("placeholder must carry a fallback URL")
	}
	if !strings.Contains(r.URL, "xyzzy-nonexistent-topic-42") {
		t.Errorf("fallback URL should embed the query, got %q", r.URL)
	}
	if !strings.Contains(r.Title, "xyzzy-nonexistent-topic-42") {
		t.Errorf("placeholder title should derive from the query, got %q", r.Title)
	}
	if r.VideoID != "" {
		t.Errorf("placeholder must not carry a video id, got %q", r.VideoID)
	}
}

func TestFetchBestMatchPlaceholderOnError(t *testing.T) {
	f := NewFetcher(&stubSearcher{err: errors.New("provider down")}, logger.Nop())

	r := f.FetchBestMatch(context.Background(), "anything")
	if r.URL == "" || r.ViewCount != 0 {
		t.Errorf("expected placeholder on provider error, got %+v", r)
	}
}

func TestFetchResourceListPadsToCount(t *testing.T) {
	f := NewFetcher(&stubSearcher{results: map[string][]VideoResult{
		"kubernetes": {
			{ID: "v1", Title: "K8s Intro", Duration: "PT10M"},
			{ID: "v2", Title: "K8s Pods", Duration: "PT8M"},
		},
	}}, logger.Nop())

	got := f.FetchResourceList(context.Background(), "kubernetes", 5, nil)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if got[0].VideoID != "v1" || got[1].VideoID != "v2" {
		t.Error("ranked videos must come first, in order")
	}
	for i := 2; i < 5; i++ {
		if got[i].URL == "" {
			t.Errorf("slot %d: placeholder missing fallback URL", i)
		}
	}
}

func TestFetchResourceListKindsWithoutVideo(t *testing.T) {
	f := NewFetcher(&stubSearcher{results: map[string][]VideoResult{
		"sql": {{ID: "v9", Title: "SQL Crash Course"}},
	}}, logger.Nop())

	got := f.FetchResourceList(context.Background(), "sql", 2, []paths.ResourceKind{paths.KindArticle, paths.KindBook})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, r := range got {
		if r.Kind == paths.KindVideo {
			t.Errorf("video kind excluded but got %+v", r)
		}
		if r.VideoID != "" {
			t.Error("no video lookups should happen when videos are excluded")
		}
	}
	if got[0].Kind != paths.KindArticle || got[1].Kind != paths.KindBook {
		t.Errorf("placeholders should cycle the allowed kinds, got %q then %q", got[0].Kind, got[1].Kind)
	}
}
