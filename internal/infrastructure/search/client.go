package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/brandnewmax/searchintentanalyze/internal/domain/analysis"
	"github.com/brandnewmax/searchintentanalyze/internal/infrastructure/metrics"
)

const (
	// resultCount is the fixed number of organic results requested.
	resultCount = 10
	// Locale is pinned to US English results.
	regionCode   = "us"
	languageCode = "en"
)

// Client queries the search provider for ranked organic results. One attempt
// per search, bounded by a hard timeout; any failure degrades to no results.
type Client struct {
	httpClient *resty.Client
	endpoint   string
	apiKey     string
	timeout    time.Duration
}

var _ analysis.Searcher = (*Client)(nil)

// NewClient wires a search provider client.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetHeader("User-Agent", "search-intent-analyze/1.0")

	return &Client{
		httpClient: client,
		endpoint:   endpoint,
		apiKey:     apiKey,
		timeout:    timeout,
	}
}

type searchRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
	GL  string `json:"gl"`
	HL  string `json:"hl"`
}

type organicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	Organic []organicResult `json:"organic"`
}

// Search returns ranked results for the keyword, or nil when no real-time
// data is available. A missing keyword or API key short-circuits without a
// network call. The request is aborted past the timeout, never retried.
func (c *Client) Search(ctx context.Context, keyword string) ([]analysis.SearchResult, error) {
	if strings.TrimSpace(keyword) == "" || strings.TrimSpace(c.apiKey) == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()

	var result searchResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(searchRequest{Q: keyword, Num: resultCount, GL: regionCode, HL: languageCode}).
		SetResult(&result).
		Post(c.endpoint)

	metrics.ObserveProviderLatency("search", time.Since(started).Seconds())

	if err != nil {
		return nil, fmt.Errorf("search provider request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("search provider error (status %d): %s", resp.StatusCode(), resp.String())
	}

	results := make([]analysis.SearchResult, 0, len(result.Organic))
	for _, item := range result.Organic {
		results = append(results, analysis.SearchResult{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}

	log.Debug().Str("keyword", keyword).Int("results", len(results)).Msg("search completed")
	return results, nil
}
