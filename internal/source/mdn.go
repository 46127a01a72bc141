package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"studydesk/internal/content"
)

const defaultMDNBaseURL = "https://developer.mozilla.org"

// MDN searches the MDN Web Docs API and resolves each result's slug into a
// fully-qualified documentation URL.
type MDN struct {
	baseURL string
	client  *http.Client
}

func NewMDN(baseURL string, timeout time.Duration) *MDN {
	if baseURL == "" {
		baseURL = defaultMDNBaseURL
	}
	return &MDN{baseURL: strings.TrimRight(baseURL, "/"), client: newHTTPClient(timeout)}
}

type mdnSearchResponse struct {
	Documents []struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
		Slug    string `json:"slug"`
	} `json:"documents"`
}

func (m *MDN) Fetch(ctx context.Context, topic string) ([]content.DocPage, error) {
	searchURL := fmt.Sprintf("%s/api/v1/search?q=%s&locale=en-US", m.baseURL, url.QueryEscape(topic))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("mdn search: %w", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mdn search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mdn search: unexpected status %d", resp.StatusCode)
	}

	var parsed mdnSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("mdn search: %w", err)
	}
	if len(parsed.Documents) == 0 {
		return []content.DocPage{{Message: content.SentinelMessage(content.ProviderMDN)}}, nil
	}

	pages := make([]content.DocPage, 0, len(parsed.Documents))
	for _, doc := range parsed.Documents {
		pages = append(pages, content.DocPage{
			Title:   doc.Title,
			Summary: doc.Summary,
			URL:     m.baseURL + "/en-US/docs/" + doc.Slug,
		})
	}
	return pages, nil
}
