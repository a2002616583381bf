package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const tavilyEndpoint = "https://api.tavily.com/search"

// Searcher runs one web search and returns formatted findings.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// Tavily is a Searcher over the Tavily search API.
type Tavily struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewTavily(apiKey string) *Tavily {
	return &Tavily{
		apiKey:   apiKey,
		endpoint: tavilyEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type tavilyRequest struct {
	Query          string   `json:"query"`
	NumResults     int      `json:"num_results"`
	IncludeDomains []string `json:"include_domains"`
	ExcludeDomains []string `json:"exclude_domains"`
	SearchDepth    string   `json:"search_depth"`
}

type tavilyResult struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

type tavilyResponse struct {
	Results []tavilyResult `json:"results"`
}

// Search posts one query and formats the top results as titled snippets
// with source URLs.
func (t *Tavily) Search(ctx context.Context, query string) (string, error) {
	payload, err := json.Marshal(tavilyRequest{
		Query:          query,
		NumResults:     10,
		IncludeDomains: []string{},
		ExcludeDomains: []string{},
		SearchDepth:    "advanced",
	})
	if err != nil {
		return "", fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("tavily search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tavily search: unexpected status %d", resp.StatusCode)
	}

	var decoded tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}

	results := decoded.Results
	if len(results) > 5 {
		results = results[:5]
	}

	formatted := make([]string, 0, len(results))
	for _, res := range results {
		content := res.Content
		if content == "" {
			content = "No content available"
		}
		formatted = append(formatted, fmt.Sprintf(
			"Title: %s\nContent: %s\nURL: %s\n", res.Title, content, res.URL))
	}
	return strings.Join(formatted, "\n\n"), nil
}
