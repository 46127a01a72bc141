// Package source contains one adapter per external content provider. Each
// adapter normalizes its provider's response shape into content items and
// wraps transport failures so raw errors never cross the adapter boundary.
package source

import (
	"context"
	"net/http"
	"time"

	"studydesk/internal/content"
)

const defaultTimeout = 15 * time.Second

// WikipediaSource searches the encyclopedia and returns full article texts.
type WikipediaSource interface {
	Fetch(ctx context.Context, topic string) ([]content.WikipediaArticle, error)
}

// YouTubeSource searches for videos matching a topic.
type YouTubeSource interface {
	Fetch(ctx context.Context, topic string) ([]content.Video, error)
}

// DocsSource searches technical documentation for a topic.
type DocsSource interface {
	Fetch(ctx context.Context, topic string) ([]content.DocPage, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
