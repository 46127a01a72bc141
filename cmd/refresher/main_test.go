package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"studydesk/internal/aggregate"
	"studydesk/internal/app"
	"studydesk/internal/content"
	"studydesk/internal/source"
	"studydesk/internal/store"
)

func newRefresherDeps() (app.Deps, *source.MockWikipedia, *source.MockYouTube, *source.MockDocs, *store.MockStore) {
	wiki := new(source.MockWikipedia)
	yt := new(source.MockYouTube)
	docs := new(source.MockDocs)
	st := new(store.MockStore)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps := app.Deps{
		Log:        log,
		Store:      st,
		Aggregator: aggregate.New(log, wiki, yt, docs, st),
	}
	return deps, wiki, yt, docs, st
}

func TestHandleRefresh(t *testing.T) {
	deps, wiki, yt, docs, st := newRefresherDeps()
	wiki.On("Fetch", mock.Anything, "Event Loop").
		Return([]content.WikipediaArticle{{Title: "Event loop", Content: "Fresh text."}}, nil).Once()
	yt.On("Fetch", mock.Anything, "Event Loop").
		Return([]content.Video{{VideoID: "new", Title: "Newer video"}}, nil).Once()
	docs.On("Fetch", mock.Anything, "Event Loop").
		Return([]content.DocPage{{Title: "EventLoop", Summary: "Fresh summary."}}, nil).Once()
	st.On("Put", mock.Anything, mock.MatchedBy(func(rec content.Record) bool {
		return rec.Key == "event-loop"
	})).Return(nil).Once()

	if err := handleRefresh(context.Background(), deps, refreshTaskPayload{Topic: "Event Loop"}); err != nil {
		t.Fatalf("handleRefresh failed: %v", err)
	}
	st.AssertExpectations(t)
}

func TestHandleRefreshMissingTopic(t *testing.T) {
	deps, wiki, _, _, _ := newRefresherDeps()
	if err := handleRefresh(context.Background(), deps, refreshTaskPayload{}); err == nil {
		t.Fatal("expected error for empty topic")
	}
	wiki.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestHandleRefreshStoreFailure(t *testing.T) {
	deps, wiki, yt, docs, st := newRefresherDeps()
	wiki.On("Fetch", mock.Anything, "X").Return([]content.WikipediaArticle{{Title: "T", Content: "C"}}, nil).Once()
	yt.On("Fetch", mock.Anything, "X").Return([]content.Video{{VideoID: "v"}}, nil).Once()
	docs.On("Fetch", mock.Anything, "X").Return([]content.DocPage{{Title: "D"}}, nil).Once()
	st.On("Put", mock.Anything, mock.Anything).Return(errors.New("db gone")).Once()

	// Store failure must propagate so the queue redelivers the task.
	if err := handleRefresh(context.Background(), deps, refreshTaskPayload{Topic: "X"}); err == nil {
		t.Fatal("expected store failure to propagate")
	}
	st.AssertExpectations(t)
}
