// Package content holds the item types produced by the three providers and
// the aggregate record the store persists.
package content

import (
	"errors"
	"time"
)

// Provider identifies one of the three external content sources.
type Provider string

const (
	ProviderWikipedia Provider = "wikipedia"
	ProviderYouTube   Provider = "youtube"
	ProviderMDN       Provider = "mdn"
)

var (
	// ErrNoArticleText means the provider's items carry no generatable text.
	ErrNoArticleText = errors.New("provider items carry no generatable text")
	// ErrArticleNotFound means no stored item matched the requested title.
	ErrArticleNotFound = errors.New("article not found")
)

// WikipediaArticle is one encyclopedia result with its full extracted text.
// A non-empty Message marks a sentinel or failure-marker item instead of a
// real result.
type WikipediaArticle struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
}

// Video is one video-search result.
type Video struct {
	VideoID      string `json:"videoId,omitempty"`
	Title        string `json:"title,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Message      string `json:"message,omitempty"`
}

// DocPage is one technical-documentation result with its browsable URL.
type DocPage struct {
	Title   string `json:"title,omitempty"`
	Summary string `json:"summary,omitempty"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

// Bundle groups the three providers' result lists. Field names follow the
// wire shape served to the client and persisted by the store.
type Bundle struct {
	Wikipedia []WikipediaArticle `json:"wikipediaContent"`
	YouTube   []Video            `json:"youtubeContent"`
	MDN       []DocPage          `json:"MDNContent"`
}

// Record is the aggregate document for one topic: the derived key, the topic
// as the user typed it, the merged content, and the store-assigned write
// time.
type Record struct {
	Key       string
	Topic     string
	Content   Bundle
	CreatedAt time.Time
}

// SentinelMessage is the placeholder text a provider returns instead of an
// empty list when the search matched nothing.
func SentinelMessage(p Provider) string {
	switch p {
	case ProviderWikipedia:
		return "No results found for this topic on wikipedia"
	case ProviderYouTube:
		return "No results found for this topic on YouTube"
	case ProviderMDN:
		return "No results found for this topic on MDN"
	}
	return "No results found for this topic"
}

// ArticleText returns the generatable text of a stored item: the full
// extract for Wikipedia, the summary for MDN. Videos have no text and
// sentinel items carry none either.
func (b Bundle) ArticleText(title string, p Provider) (string, error) {
	switch p {
	case ProviderWikipedia:
		for _, a := range b.Wikipedia {
			if a.Message == "" && a.Title == title {
				return a.Content, nil
			}
		}
	case ProviderMDN:
		for _, d := range b.MDN {
			if d.Message == "" && d.Title == title {
				return d.Summary, nil
			}
		}
	case ProviderYouTube:
		return "", ErrNoArticleText
	}
	return "", ErrArticleNotFound
}
