package analyze_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandnewmax/searchintentanalyze/internal/config"
	"github.com/brandnewmax/searchintentanalyze/internal/domain/analysis"
	"github.com/brandnewmax/searchintentanalyze/internal/infrastructure/extract"
	"github.com/brandnewmax/searchintentanalyze/internal/infrastructure/llmclient"
	"github.com/brandnewmax/searchintentanalyze/internal/infrastructure/search"
	"github.com/brandnewmax/searchintentanalyze/internal/interfaces/httpserver"
	"github.com/brandnewmax/searchintentanalyze/internal/interfaces/httpserver/routes/analyze"
)

type fakeProviders struct {
	searchCalls  int32
	extractCalls int32
	aiCalls      int32

	searchServer  *httptest.Server
	extractServer *httptest.Server
	aiServer      *httptest.Server
}

func newFakeProviders(t *testing.T) *fakeProviders {
	t.Helper()
	f := &fakeProviders{}

	f.searchServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.searchCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"organic":[
			{"title":"Top Shoes","link":"https://example.com/shoes","snippet":"ranked list"},
			{"title":"Shoe Guide","link":"https://example.com/guide","snippet":"buying advice"}
		]}`))
	}))
	t.Cleanup(f.searchServer.Close)

	f.extractServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.extractCalls, 1)
		_, _ = w.Write([]byte("# Article\n\nDetailed shoe analysis."))
	}))
	t.Cleanup(f.extractServer.Close)

	f.aiServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.aiCalls, 1)
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, chunk := range []string{
			`data: {"id":"c1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":"The intent"},"finish_reason":null}]}`,
			`data: {"id":"c1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":" is commercial."},"finish_reason":"stop"}]}`,
			`data: [DONE]`,
		} {
			_, _ = w.Write([]byte(chunk + "\n\n"))
			flusher.Flush()
		}
	}))
	t.Cleanup(f.aiServer.Close)

	return f
}

func (f *fakeProviders) router(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		HTTPPort:          "0",
		SearchEndpoint:    f.searchServer.URL,
		SerperAPIKey:      "search-key",
		ExtractEndpoint:   f.extractServer.URL,
		AIBaseURL:         f.aiServer.URL,
		AIAPIKey:          "sk-test",
		AIModel:           "test-model",
		AIMaxTokens:       512,
		SearchTimeout:     2 * time.Second,
		ExtractTimeout:    2 * time.Second,
		StreamTimeout:     10 * time.Second,
		KeepAliveInterval: 5 * time.Second,
	}

	service := analysis.NewService(
		search.NewClient(cfg.SearchEndpoint, cfg.SerperAPIKey, cfg.SearchTimeout),
		extract.NewClient(cfg.ExtractEndpoint, cfg.ExtractAPIKey, cfg.ExtractTimeout),
		llmclient.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, cfg.AIMaxTokens),
		analysis.Options{
			StreamTimeout:     cfg.StreamTimeout,
			KeepAliveInterval: cfg.KeepAliveInterval,
		},
	)

	return httpserver.NewHTTPServer(cfg, analyze.NewAnalyzeRoute(service)).Router()
}

func postAnalyze(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestPostAnalyze_StreamsFullReport(t *testing.T) {
	providers := newFakeProviders(t)
	router := providers.router(t)

	w := postAnalyze(router, `{"keyword":"best running shoes"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()

	searchIdx := strings.Index(body, "Searching live results")
	captureIdx := strings.Index(body, "Captured 2 reference sources")
	generateIdx := strings.Index(body, "generating the analysis report")
	chunkIdx := strings.Index(body, "The intent")

	require.GreaterOrEqual(t, searchIdx, 0, "missing search status frame")
	require.Greater(t, captureIdx, searchIdx, "capture frame must follow search frame")
	require.Greater(t, generateIdx, captureIdx, "completion frame must follow capture frame")
	require.Greater(t, chunkIdx, generateIdx, "relayed chunks must follow status frames")

	assert.Contains(t, body, " is commercial.")
	assert.Contains(t, body, "data: [DONE]")
	assert.NotContains(t, body, ": keep-alive", "no keep-alive expected on a fast upstream")

	assert.Equal(t, int32(1), atomic.LoadInt32(&providers.searchCalls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&providers.extractCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&providers.aiCalls))
}

func TestPostAnalyze_MissingKeywordEmitsErrorFrame(t *testing.T) {
	providers := newFakeProviders(t)
	router := providers.router(t)

	w := postAnalyze(router, `{"keyword":"  "}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "keyword is required")

	assert.Zero(t, atomic.LoadInt32(&providers.searchCalls), "no provider call on validation failure")
	assert.Zero(t, atomic.LoadInt32(&providers.extractCalls))
	assert.Zero(t, atomic.LoadInt32(&providers.aiCalls))
}

func TestPostAnalyze_MalformedBodyRejectedBeforeStream(t *testing.T) {
	providers := newFakeProviders(t)
	router := providers.router(t)

	w := postAnalyze(router, `{"keyword":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
	assert.Zero(t, atomic.LoadInt32(&providers.aiCalls))
}

func TestPostAnalyze_NonPOSTRejected(t *testing.T) {
	providers := newFakeProviders(t)
	router := providers.router(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/analyze", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Zero(t, atomic.LoadInt32(&providers.aiCalls))
}

func TestPostAnalyze_UpstreamErrorRenderedOnce(t *testing.T) {
	providers := newFakeProviders(t)
	providers.aiServer.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&providers.aiCalls, 1)
		w.WriteHeader(http.StatusBadRequest) // non-retryable so the test stays fast
		_, _ = w.Write([]byte("invalid model"))
	})
	router := providers.router(t)

	w := postAnalyze(router, `{"keyword":"kw"}`)

	body := w.Body.String()
	assert.Contains(t, body, "400")
	assert.Contains(t, body, "invalid model")
	assert.Equal(t, 1, strings.Count(body, "[Error]"), "exactly one terminal error frame")
	assert.Equal(t, int32(1), atomic.LoadInt32(&providers.aiCalls))
}
