// Package aggregate fans a topic search out to the three content providers,
// merges their results into one record, and persists it.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"studydesk/internal/content"
	"studydesk/internal/source"
	"studydesk/internal/store"
	"studydesk/internal/topic"
)

// Failure-marker messages substituted for a provider that errored. Distinct
// from the "no results" sentinels: those mean the provider answered.
const (
	wikipediaFailedMessage = "Failed to fetch Wikipedia content"
	youtubeFailedMessage   = "Failed to fetch YouTube content"
	mdnFailedMessage       = "Failed to fetch MDN content"
)

type Aggregator struct {
	log       *slog.Logger
	wikipedia source.WikipediaSource
	youtube   source.YouTubeSource
	docs      source.DocsSource
	store     store.Store
}

func New(log *slog.Logger, wiki source.WikipediaSource, yt source.YouTubeSource, docs source.DocsSource, st store.Store) *Aggregator {
	return &Aggregator{log: log, wikipedia: wiki, youtube: yt, docs: docs, store: st}
}

// Aggregate calls all three providers concurrently and merges what they
// return. A failed provider contributes a single failure-marker item while
// the others' results are kept; only when every provider fails, or the store
// write fails, does the whole aggregation fail. The record is persisted
// before Aggregate reports success.
func (a *Aggregator) Aggregate(ctx context.Context, searchTopic string) (content.Record, error) {
	if searchTopic == "" {
		return content.Record{}, fmt.Errorf("topic is required")
	}

	var (
		articles               []content.WikipediaArticle
		videos                 []content.Video
		pages                  []content.DocPage
		wikiErr, ytErr, mdnErr error
	)

	// Plain errgroup without cross-cancellation: one provider failing must
	// not stop the other two.
	var g errgroup.Group
	g.Go(func() error {
		articles, wikiErr = a.wikipedia.Fetch(ctx, searchTopic)
		return nil
	})
	g.Go(func() error {
		videos, ytErr = a.youtube.Fetch(ctx, searchTopic)
		return nil
	})
	g.Go(func() error {
		pages, mdnErr = a.docs.Fetch(ctx, searchTopic)
		return nil
	})
	_ = g.Wait()

	if wikiErr != nil && ytErr != nil && mdnErr != nil {
		return content.Record{}, fmt.Errorf("all providers failed: wikipedia: %v; youtube: %v; mdn: %v", wikiErr, ytErr, mdnErr)
	}
	if wikiErr != nil {
		a.log.Warn("wikipedia fetch failed", "topic", searchTopic, "err", wikiErr)
		articles = []content.WikipediaArticle{{Message: wikipediaFailedMessage}}
	}
	if ytErr != nil {
		a.log.Warn("youtube fetch failed", "topic", searchTopic, "err", ytErr)
		videos = []content.Video{{Message: youtubeFailedMessage}}
	}
	if mdnErr != nil {
		a.log.Warn("mdn fetch failed", "topic", searchTopic, "err", mdnErr)
		pages = []content.DocPage{{Message: mdnFailedMessage}}
	}

	record := content.Record{
		Key:   topic.Derive(searchTopic),
		Topic: searchTopic,
		Content: content.Bundle{
			Wikipedia: articles,
			YouTube:   videos,
			MDN:       pages,
		},
	}
	if err := a.store.Put(ctx, record); err != nil {
		return content.Record{}, fmt.Errorf("failed to store record: %w", err)
	}
	a.log.Info("stored aggregate record", "key", record.Key, "topic", searchTopic)
	return record, nil
}

// FindArticle re-derives the document key for the topic, loads the stored
// record, and returns the text of the item whose title exactly equals title.
// Title matching is byte-for-byte; callers must pass back the title string
// they were shown.
func (a *Aggregator) FindArticle(ctx context.Context, searchTopic, title string, provider content.Provider) (string, error) {
	rec, err := a.store.Get(ctx, topic.Derive(searchTopic))
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return "", content.ErrArticleNotFound
		}
		return "", fmt.Errorf("failed to load record: %w", err)
	}
	return rec.Content.ArticleText(title, provider)
}
