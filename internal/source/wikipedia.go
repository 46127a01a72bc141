package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"studydesk/internal/content"
)

const defaultWikipediaURL = "https://en.wikipedia.org/w/api.php"

// Wikipedia fetches articles in two phases against the MediaWiki action API:
// a search call yielding candidate titles, then one full-text extract call
// per candidate. The extract calls run concurrently once the search is done.
type Wikipedia struct {
	baseURL string
	client  *http.Client
}

func NewWikipedia(baseURL string, timeout time.Duration) *Wikipedia {
	if baseURL == "" {
		baseURL = defaultWikipediaURL
	}
	return &Wikipedia{baseURL: baseURL, client: newHTTPClient(timeout)}
}

type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type wikiExtractResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

func (w *Wikipedia) Fetch(ctx context.Context, topic string) ([]content.WikipediaArticle, error) {
	titles, err := w.search(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("wikipedia search: %w", err)
	}
	if len(titles) == 0 {
		return []content.WikipediaArticle{{Message: content.SentinelMessage(content.ProviderWikipedia)}}, nil
	}

	articles := make([]content.WikipediaArticle, len(titles))
	g, gctx := errgroup.WithContext(ctx)
	for i, title := range titles {
		g.Go(func() error {
			text, err := w.extract(gctx, title)
			if err != nil {
				return fmt.Errorf("wikipedia extract %q: %w", title, err)
			}
			articles[i] = content.WikipediaArticle{Title: title, Content: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return articles, nil
}

func (w *Wikipedia) search(ctx context.Context, topic string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", topic)
	params.Set("utf8", "")
	params.Set("format", "json")

	var resp wikiSearchResponse
	if err := w.getJSON(ctx, params, &resp); err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

func (w *Wikipedia) extract(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("format", "json")
	params.Set("explaintext", "")
	params.Set("titles", title)

	var resp wikiExtractResponse
	if err := w.getJSON(ctx, params, &resp); err != nil {
		return "", err
	}
	// The pages map is keyed by page id and holds exactly one entry per
	// requested title.
	for _, page := range resp.Query.Pages {
		return page.Extract, nil
	}
	return "", fmt.Errorf("no page returned for title %q", title)
}

func (w *Wikipedia) getJSON(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return err
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
