package analysis

import (
	"context"
	"fmt"
	"io"
)

// SearchResult is one ranked organic result from the search provider.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// EnrichedResult pairs a search result with its extracted page content.
// Content holds the readable page text, or the original snippet when
// extraction came back empty.
type EnrichedResult struct {
	SearchResult
	Content string
}

// Prompt is the assembled instruction pair sent to the AI provider.
type Prompt struct {
	System string
	User   string
}

// Searcher returns ranked results for a keyword. A nil slice without error
// means no real-time data is available; callers degrade rather than fail.
type Searcher interface {
	Search(ctx context.Context, keyword string) ([]SearchResult, error)
}

// Extractor fetches readable content for a URL. An error drops the result
// from the context entirely; an empty string without error lets the caller
// substitute the search snippet.
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// CompletionStreamer opens a streaming completion request and hands back the
// raw upstream byte stream.
type CompletionStreamer interface {
	StreamCompletion(ctx context.Context, prompt Prompt) (io.ReadCloser, error)
}

// StreamSink is the push-based outlet the pipeline writes frames into. It
// decouples stage logic from the wire encoding. Status and Error frames are
// best-effort; a failed Chunk write is terminal for the stream.
type StreamSink interface {
	// Status emits a synthetic progress frame.
	Status(message string)
	// Chunk forwards upstream bytes verbatim.
	Chunk(p []byte) error
	// KeepAlive emits a comment frame to hold the connection open.
	KeepAlive()
	// Error emits a terminal error frame.
	Error(message string)
}

// UpstreamError reports a failed AI provider handshake. Its message carries
// the status code and response body through to the client stream.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("AI provider returned HTTP %d: %s", e.StatusCode, e.Body)
}
