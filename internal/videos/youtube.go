package videos

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"
)

// YouTubeClient implements Searcher against the YouTube Data API v3.
type YouTubeClient struct {
	svc *youtube.Service
}

// NewYouTubeClient creates a client authenticated with an API key.
func NewYouTubeClient(ctx context.Context, apiKey string) (*YouTubeClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube API key is required")
	}
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &YouTubeClient{svc: svc}, nil
}

// Search returns up to maxResults ranked videos for the query. Two calls:
// search.list for ranking, then videos.list for duration and view counts,
// which search.list does not return.
func (c *YouTubeClient) Search(ctx context.Context, query string, maxResults int64) ([]VideoResult, error) {
	searchResp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		VideoEmbeddable("true").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		if isQuotaExceeded(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("youtube search %q: %w", query, err)
	}

	ids := make([]string, 0, len(searchResp.Items))
	byID := make(map[string]*VideoResult, len(searchResp.Items))
	results := make([]VideoResult, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		r := VideoResult{ID: item.Id.VideoId}
		if item.Snippet != nil {
			r.Title = item.Snippet.Title
			r.ChannelTitle = item.Snippet.ChannelTitle
			r.PublishedAt = item.Snippet.PublishedAt
			if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
				r.ThumbnailURL = item.Snippet.Thumbnails.Medium.Url
			}
		}
		results = append(results, r)
		byID[r.ID] = &results[len(results)-1]
		ids = append(ids, r.ID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	videosResp, err := c.svc.Videos.List([]string{"contentDetails", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		if isQuotaExceeded(err) {
			// Ranked list is still usable without metrics.
			return results, nil
		}
		return nil, fmt.Errorf("youtube videos lookup: %w", err)
	}

	for _, item := range videosResp.Items {
		r, ok := byID[item.Id]
		if !ok {
			continue
		}
		if item.ContentDetails != nil {
			r.Duration = item.ContentDetails.Duration
		}
		if item.Statistics != nil {
			r.ViewCount = item.Statistics.ViewCount
		}
	}

	return results, nil
}

func isQuotaExceeded(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code != http.StatusForbidden && apiErr.Code != http.StatusTooManyRequests {
		return false
	}
	for _, e := range apiErr.Errors {
		if e.Reason == "quotaExceeded" || e.Reason == "dailyLimitExceeded" || e.Reason == "rateLimitExceeded" {
			return true
		}
	}
	return apiErr.Code == http.StatusTooManyRequests
}
