package source

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studydesk/internal/content"
)

// MockWikipedia is a mock WikipediaSource using testify/mock.
type MockWikipedia struct {
	mock.Mock
}

func (m *MockWikipedia) Fetch(ctx context.Context, topic string) ([]content.WikipediaArticle, error) {
	args := m.Called(ctx, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]content.WikipediaArticle), args.Error(1)
}

// MockYouTube is a mock YouTubeSource using testify/mock.
type MockYouTube struct {
	mock.Mock
}

func (m *MockYouTube) Fetch(ctx context.Context, topic string) ([]content.Video, error) {
	args := m.Called(ctx, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]content.Video), args.Error(1)
}

// MockDocs is a mock DocsSource using testify/mock.
type MockDocs struct {
	mock.Mock
}

func (m *MockDocs) Fetch(ctx context.Context, topic string) ([]content.DocPage, error) {
	args := m.Called(ctx, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]content.DocPage), args.Error(1)
}
