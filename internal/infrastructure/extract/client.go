package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/brandnewmax/searchintentanalyze/internal/domain/analysis"
	"github.com/brandnewmax/searchintentanalyze/internal/infrastructure/metrics"
)

const (
	// MaxContentRunes caps stored page content; anything longer is cut and
	// marked.
	MaxContentRunes = 35000
	// TruncationMarker is appended whenever content was cut at the cap.
	TruncationMarker = "\n\n[content truncated]"
)

// Client fetches readable page content through a reader-style extraction
// provider: GET <endpoint>/<url> returning markdown text. Single attempt per
// URL with a hard timeout; failures are the caller's problem to degrade on.
type Client struct {
	httpClient *resty.Client
	endpoint   string
	apiKey     string
	timeout    time.Duration
}

var _ analysis.Extractor = (*Client)(nil)

// NewClient wires an extraction provider client. The API key is optional;
// when present it is sent as bearer authentication.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetHeader("User-Agent", "search-intent-analyze/1.0")

	return &Client{
		httpClient: client,
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		timeout:    timeout,
	}
}

// Extract returns the readable content of url truncated to MaxContentRunes,
// or ("", nil) when url is absent or the page had no text. Transport and
// provider failures return an error. Never retried.
func (c *Client) Extract(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()

	req := c.httpClient.R().
		SetContext(ctx).
		SetHeader("X-Return-Format", "markdown")
	if strings.TrimSpace(c.apiKey) != "" {
		req.SetAuthToken(c.apiKey)
	}

	resp, err := req.Get(c.endpoint + "/" + url)

	metrics.ObserveProviderLatency("extract", time.Since(started).Seconds())

	if err != nil {
		return "", fmt.Errorf("extraction request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("extraction provider error (status %d)", resp.StatusCode())
	}

	text := strings.TrimSpace(resp.String())
	runes := []rune(text)
	if len(runes) > MaxContentRunes {
		text = string(runes[:MaxContentRunes]) + TruncationMarker
	}
	return text, nil
}
