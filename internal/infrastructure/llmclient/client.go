package llmclient

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/brandnewmax/searchintentanalyze/internal/domain/analysis"
	"github.com/brandnewmax/searchintentanalyze/internal/infrastructure/httpclient"
	"github.com/brandnewmax/searchintentanalyze/internal/infrastructure/metrics"
)

// maxErrorBodyBytes bounds how much of a failed handshake body is carried
// into the client-visible error frame.
const maxErrorBodyBytes = 8 * 1024

// Client opens streaming chat-completion requests against an
// OpenAI-compatible provider and hands back the raw byte stream.
type Client struct {
	httpClient  *resty.Client
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	retryPolicy httpclient.RetryPolicy
}

var _ analysis.CompletionStreamer = (*Client)(nil)

// NewClient wires a streaming completion client for the given provider.
func NewClient(baseURL, apiKey, model string, maxTokens int) *Client {
	client := resty.New().SetDoNotParseResponse(true)

	return &Client{
		httpClient:  client,
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		model:       model,
		maxTokens:   maxTokens,
		retryPolicy: httpclient.DefaultRetryPolicy(),
	}
}

// StreamCompletion performs the streaming handshake with bounded retries and
// returns the upstream body for verbatim relay. A non-success final response
// is reported as *analysis.UpstreamError carrying the status and body, so it
// can be rendered to the client as-is.
func (c *Client) StreamCompletion(ctx context.Context, prompt analysis.Prompt) (io.ReadCloser, error) {
	request := openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Stream:    true,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
	}

	started := time.Now()
	resp, err := httpclient.DoWithRetry(ctx, c.retryPolicy, "chat_completion_stream", func() (*resty.Response, error) {
		return c.httpClient.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept-Encoding", "identity").
			SetAuthToken(c.apiKey).
			SetBody(request).
			Post(c.baseURL + "/chat/completions")
	})
	metrics.ObserveProviderLatency("ai", time.Since(started).Seconds())

	if err != nil {
		return nil, err
	}

	body := resp.RawBody()
	if resp.IsError() {
		detail := ""
		if body != nil {
			raw, _ := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))
			_ = body.Close()
			detail = strings.TrimSpace(string(raw))
		}
		return nil, &analysis.UpstreamError{StatusCode: resp.StatusCode(), Body: detail}
	}
	if body == nil {
		return nil, errors.New("AI provider returned an empty response body")
	}

	log.Debug().Str("model", c.model).Dur("handshake", time.Since(started)).Msg("completion stream opened")
	return body, nil
}
