package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/brandnewmax/searchintentanalyze/internal/infrastructure/metrics"
)

const (
	defaultStreamTimeout     = 2 * time.Minute
	defaultKeepAliveInterval = 15 * time.Second
)

// Options carries the operator-tunable knobs for the pipeline.
type Options struct {
	SystemPrompt      string
	StreamTimeout     time.Duration
	KeepAliveInterval time.Duration
}

// Service runs the three-stage analysis pipeline: search, concurrent content
// enrichment, then a relayed AI completion stream. All state is
// request-scoped; a Service is safe for concurrent use.
type Service struct {
	searcher  Searcher
	extractor Extractor
	streamer  CompletionStreamer
	opts      Options
}

// NewService wires the pipeline stages together.
func NewService(searcher Searcher, extractor Extractor, streamer CompletionStreamer, opts Options) *Service {
	if opts.StreamTimeout <= 0 {
		opts.StreamTimeout = defaultStreamTimeout
	}
	if opts.KeepAliveInterval <= 0 {
		opts.KeepAliveInterval = defaultKeepAliveInterval
	}
	return &Service{
		searcher:  searcher,
		extractor: extractor,
		streamer:  streamer,
		opts:      opts,
	}
}

// Run drives the pipeline for one keyword, pushing every frame into sink.
// Search and extraction failures degrade silently to fallback data; only AI
// provider failures terminate the stream, and those always surface as a
// single readable error frame before the sink goes quiet.
func (s *Service) Run(ctx context.Context, keyword string, sink StreamSink) error {
	started := time.Now()

	sink.Status(fmt.Sprintf("Searching live results for %q...", keyword))

	results, err := s.searcher.Search(ctx, keyword)
	if err != nil {
		log.Warn().Err(err).Str("keyword", keyword).Msg("search degraded to empty results")
		results = nil
	}

	var searchContext string
	kept := 0
	if len(results) == 0 {
		metrics.RecordStage("search", "degraded")
		sink.Status("Warning: no live search data available, the report will be a theoretical analysis only.")
		searchContext = FallbackSearchContext
	} else {
		metrics.RecordStage("search", "ok")
		n := min(len(results), maxFanOut)
		sink.Status(fmt.Sprintf("Reading the top %d sources...", n))

		searchContext, kept = BuildSearchContext(ctx, s.extractor, results)
		if kept == 0 {
			metrics.RecordStage("extract", "degraded")
			sink.Status("Warning: none of the sources could be read, the report will be a theoretical analysis only.")
		} else {
			metrics.RecordStage("extract", "ok")
			sink.Status(fmt.Sprintf("Captured %d reference sources.", kept))
		}
	}

	sink.Status("Search context ready, generating the analysis report...")

	prompt := BuildPrompt(keyword, searchContext, s.opts.SystemPrompt)

	streamCtx, cancel := context.WithTimeout(ctx, s.opts.StreamTimeout)
	defer cancel()

	upstream, err := s.streamer.StreamCompletion(streamCtx, prompt)
	if err != nil {
		metrics.RecordStage("relay", "error")
		var upstreamErr *UpstreamError
		if errors.As(err, &upstreamErr) {
			sink.Error(upstreamErr.Error())
		} else {
			sink.Error("failed to reach the AI provider: " + err.Error())
		}
		return err
	}
	defer upstream.Close()

	if err := relay(streamCtx, upstream, sink, s.opts.KeepAliveInterval); err != nil {
		metrics.RecordStage("relay", "error")
		sink.Error("analysis stream interrupted: " + err.Error())
		return err
	}

	metrics.RecordStage("relay", "ok")
	log.Info().
		Str("keyword", keyword).
		Int("sources", kept).
		Dur("duration", time.Since(started)).
		Msg("analysis stream completed")
	return nil
}
