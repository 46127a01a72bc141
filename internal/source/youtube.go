package source

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"studydesk/internal/content"
)

const defaultMaxVideos = 5

// YouTube searches for videos through the YouTube Data API v3.
type YouTube struct {
	svc        *youtube.Service
	maxResults int64
}

// NewYouTube builds the Data API service. Tests can swap the transport with
// option.WithEndpoint and option.WithHTTPClient.
func NewYouTube(ctx context.Context, maxResults int64, opts ...option.ClientOption) (*YouTube, error) {
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}
	if maxResults <= 0 {
		maxResults = defaultMaxVideos
	}
	return &YouTube{svc: svc, maxResults: maxResults}, nil
}

func (y *YouTube) Fetch(ctx context.Context, topic string) ([]content.Video, error) {
	resp, err := y.svc.Search.List([]string{"snippet"}).
		Q(topic).
		Type("video").
		MaxResults(y.maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}
	if len(resp.Items) == 0 {
		return []content.Video{{Message: content.SentinelMessage(content.ProviderYouTube)}}, nil
	}

	videos := make([]content.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		var v content.Video
		if item.Id != nil {
			v.VideoID = item.Id.VideoId
		}
		if item.Snippet != nil {
			v.Title = item.Snippet.Title
			if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Default != nil {
				v.ThumbnailURL = item.Snippet.Thumbnails.Default.Url
			}
		}
		videos = append(videos, v)
	}
	return videos, nil
}
