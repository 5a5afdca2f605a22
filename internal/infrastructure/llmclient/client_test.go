package llmclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandnewmax/searchintentanalyze/internal/domain/analysis"
	"github.com/brandnewmax/searchintentanalyze/internal/infrastructure/httpclient"
)

func fastRetry(c *Client) *Client {
	c.retryPolicy = httpclient.RetryPolicy{MaxRetries: 2, Backoff: 5 * time.Millisecond}
	return c
}

func TestStreamCompletion_RelaysBody(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		require.Equal(t, "/v1/chat/completions", r.URL.Path)

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: {\"choices\":[]}\n\ndata: [DONE]\n\n"))
	}))
	defer server.Close()

	client := fastRetry(NewClient(server.URL+"/v1", "sk-test", "test-model", 1024))
	stream, err := client.StreamCompletion(context.Background(), analysis.Prompt{System: "sys", User: "usr"})
	require.NoError(t, err)
	defer stream.Close()

	raw, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "data: {\"choices\":[]}\n\ndata: [DONE]\n\n", string(raw))

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "test-model", gotBody["model"])
	assert.Equal(t, true, gotBody["stream"])
	assert.Equal(t, float64(1024), gotBody["max_tokens"])

	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "sys", first["content"])
}

func TestStreamCompletion_HandshakeErrorCarriesStatusAndBody(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal error"))
	}))
	defer server.Close()

	client := fastRetry(NewClient(server.URL, "sk-test", "test-model", 1024))
	_, err := client.StreamCompletion(context.Background(), analysis.Prompt{User: "usr"})

	require.Error(t, err)
	var upstreamErr *analysis.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.StatusCode)
	assert.Equal(t, "internal error", upstreamErr.Body)
	assert.Contains(t, upstreamErr.Error(), "500")
	assert.Contains(t, upstreamErr.Error(), "internal error")

	// Retries exhausted on the retryable 5xx before surfacing it.
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestStreamCompletion_BadRequestNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("model not found"))
	}))
	defer server.Close()

	client := fastRetry(NewClient(server.URL, "sk-test", "missing-model", 1024))
	_, err := client.StreamCompletion(context.Background(), analysis.Prompt{User: "usr"})

	var upstreamErr *analysis.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusBadRequest, upstreamErr.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
