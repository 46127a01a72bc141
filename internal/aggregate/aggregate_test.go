package aggregate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"studydesk/internal/content"
	"studydesk/internal/source"
	"studydesk/internal/store"
)

type mocks struct {
	wiki  *source.MockWikipedia
	yt    *source.MockYouTube
	docs  *source.MockDocs
	store *store.MockStore
}

func newAggregator() (*Aggregator, mocks) {
	m := mocks{
		wiki:  new(source.MockWikipedia),
		yt:    new(source.MockYouTube),
		docs:  new(source.MockDocs),
		store: new(store.MockStore),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, m.wiki, m.yt, m.docs, m.store), m
}

func (m mocks) assertExpectations(t *testing.T) {
	m.wiki.AssertExpectations(t)
	m.yt.AssertExpectations(t)
	m.docs.AssertExpectations(t)
	m.store.AssertExpectations(t)
}

var (
	wikiItems = []content.WikipediaArticle{{Title: "Event loop", Content: "Full text."}}
	ytItems   = []content.Video{{VideoID: "abc", Title: "Explained", ThumbnailURL: "u"}}
	mdnItems  = []content.DocPage{{Title: "EventLoop", Summary: "Short.", URL: "https://developer.mozilla.org/en-US/docs/EventLoop"}}
)

func TestAggregateSuccess(t *testing.T) {
	a, m := newAggregator()
	m.wiki.On("Fetch", mock.Anything, "Event Loop").Return(wikiItems, nil).Once()
	m.yt.On("Fetch", mock.Anything, "Event Loop").Return(ytItems, nil).Once()
	m.docs.On("Fetch", mock.Anything, "Event Loop").Return(mdnItems, nil).Once()
	m.store.On("Put", mock.Anything, mock.MatchedBy(func(rec content.Record) bool {
		return rec.Key == "event-loop" && rec.Topic == "Event Loop"
	})).Return(nil).Once()

	rec, err := a.Aggregate(context.Background(), "Event Loop")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(rec.Content.Wikipedia) != 1 || rec.Content.Wikipedia[0].Title != "Event loop" {
		t.Errorf("unexpected wikipedia items: %+v", rec.Content.Wikipedia)
	}
	if len(rec.Content.YouTube) != 1 || len(rec.Content.MDN) != 1 {
		t.Errorf("unexpected bundle: %+v", rec.Content)
	}
	m.assertExpectations(t)
}

func TestAggregatePartialProviderFailure(t *testing.T) {
	// Policy: a single failed provider is replaced by a failure-marker item
	// and the record is still persisted.
	a, m := newAggregator()
	m.wiki.On("Fetch", mock.Anything, "X").Return(wikiItems, nil).Once()
	m.yt.On("Fetch", mock.Anything, "X").Return(nil, errors.New("quota exceeded")).Once()
	m.docs.On("Fetch", mock.Anything, "X").Return(mdnItems, nil).Once()
	m.store.On("Put", mock.Anything, mock.Anything).Return(nil).Once()

	rec, err := a.Aggregate(context.Background(), "X")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(rec.Content.YouTube) != 1 || rec.Content.YouTube[0].Message != "Failed to fetch YouTube content" {
		t.Errorf("expected youtube failure marker, got %+v", rec.Content.YouTube)
	}
	if len(rec.Content.Wikipedia) != 1 || rec.Content.Wikipedia[0].Message != "" {
		t.Errorf("surviving provider results must be kept: %+v", rec.Content.Wikipedia)
	}
	m.assertExpectations(t)
}

func TestAggregateAllProvidersFail(t *testing.T) {
	a, m := newAggregator()
	m.wiki.On("Fetch", mock.Anything, "X").Return(nil, errors.New("down")).Once()
	m.yt.On("Fetch", mock.Anything, "X").Return(nil, errors.New("down")).Once()
	m.docs.On("Fetch", mock.Anything, "X").Return(nil, errors.New("down")).Once()

	if _, err := a.Aggregate(context.Background(), "X"); err == nil {
		t.Fatal("expected error when every provider fails")
	}
	// Nothing may be persisted.
	m.store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestAggregateStoreFailureSurfaces(t *testing.T) {
	a, m := newAggregator()
	m.wiki.On("Fetch", mock.Anything, "X").Return(wikiItems, nil).Once()
	m.yt.On("Fetch", mock.Anything, "X").Return(ytItems, nil).Once()
	m.docs.On("Fetch", mock.Anything, "X").Return(mdnItems, nil).Once()
	m.store.On("Put", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

	if _, err := a.Aggregate(context.Background(), "X"); err == nil {
		t.Fatal("a silent store failure would make later retrieval lie; it must surface")
	}
	m.assertExpectations(t)
}

func TestAggregateEmptyTopic(t *testing.T) {
	a, m := newAggregator()
	if _, err := a.Aggregate(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty topic")
	}
	m.wiki.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestAggregateSentinelPassthrough(t *testing.T) {
	// A provider that answered "no results" is not a failure and its
	// sentinel item is persisted as-is.
	sentinel := []content.DocPage{{Message: content.SentinelMessage(content.ProviderMDN)}}
	a, m := newAggregator()
	m.wiki.On("Fetch", mock.Anything, "X").Return(wikiItems, nil).Once()
	m.yt.On("Fetch", mock.Anything, "X").Return(ytItems, nil).Once()
	m.docs.On("Fetch", mock.Anything, "X").Return(sentinel, nil).Once()
	m.store.On("Put", mock.Anything, mock.Anything).Return(nil).Once()

	rec, err := a.Aggregate(context.Background(), "X")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(rec.Content.MDN) != 1 || rec.Content.MDN[0].Message != "No results found for this topic on MDN" {
		t.Errorf("sentinel item not preserved: %+v", rec.Content.MDN)
	}
	m.assertExpectations(t)
}

func TestFindArticle(t *testing.T) {
	stored := content.Record{
		Key:   "event-loop",
		Topic: "Event Loop",
		Content: content.Bundle{
			Wikipedia: []content.WikipediaArticle{
				{Title: "Event loop", Content: "Wikipedia text."},
				{Title: "Reactor pattern", Content: "Reactor text."},
			},
			MDN: []content.DocPage{{Title: "EventLoop", Summary: "MDN summary."}},
		},
	}

	tests := []struct {
		name     string
		title    string
		provider content.Provider
		want     string
		wantErr  error
	}{
		{"wikipedia exact match", "Event loop", content.ProviderWikipedia, "Wikipedia text.", nil},
		{"second item matches", "Reactor pattern", content.ProviderWikipedia, "Reactor text.", nil},
		{"mdn uses summary", "EventLoop", content.ProviderMDN, "MDN summary.", nil},
		{"case difference is not a match", "event loop", content.ProviderWikipedia, "", content.ErrArticleNotFound},
		{"whitespace difference is not a match", "Event loop ", content.ProviderWikipedia, "", content.ErrArticleNotFound},
		{"wrong provider list", "EventLoop", content.ProviderWikipedia, "", content.ErrArticleNotFound},
		{"youtube has no text", "Explained", content.ProviderYouTube, "", content.ErrNoArticleText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, m := newAggregator()
			m.store.On("Get", mock.Anything, "event-loop").Return(stored, nil).Once()

			got, err := a.FindArticle(context.Background(), "Event Loop", tt.title, tt.provider)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
			m.assertExpectations(t)
		})
	}
}

func TestFindArticleRecordMissing(t *testing.T) {
	a, m := newAggregator()
	m.store.On("Get", mock.Anything, "never-stored").Return(content.Record{}, store.ErrRecordNotFound).Once()

	_, err := a.FindArticle(context.Background(), "Never Stored", "Anything", content.ProviderWikipedia)
	if !errors.Is(err, content.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
	m.assertExpectations(t)
}

func TestFindArticleSkipsSentinels(t *testing.T) {
	stored := content.Record{
		Key: "x",
		Content: content.Bundle{
			Wikipedia: []content.WikipediaArticle{{Message: "No results found for this topic on wikipedia"}},
		},
	}
	a, m := newAggregator()
	m.store.On("Get", mock.Anything, "x").Return(stored, nil).Once()

	// A sentinel's empty title must not match an empty requested title.
	_, err := a.FindArticle(context.Background(), "X", "", content.ProviderWikipedia)
	if !errors.Is(err, content.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
	m.assertExpectations(t)
}
