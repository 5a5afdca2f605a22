package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	// maxFanOut bounds how many results are enriched concurrently.
	maxFanOut = 8
	// maxExcerptRunes caps each reference block's content for prompt
	// inclusion, independent of the larger cap applied at extraction.
	maxExcerptRunes = 2000
)

// FallbackSearchContext replaces the assembled context when no reference
// material could be gathered.
const FallbackSearchContext = "No real-time search data is available. Base the analysis on general knowledge and make clear that live SERP data was not consulted."

// BuildSearchContext concurrently enriches the top results and renders them
// into a single numbered context block. Every extraction runs to completion
// regardless of sibling failures: a failed extraction drops its result from
// the context, while an empty extraction falls back to the search snippet.
// Block numbering follows the original rank order, not completion order.
// Returns the rendered context and how many reference blocks it contains;
// with zero blocks the fallback sentinel is returned instead.
func BuildSearchContext(ctx context.Context, extractor Extractor, results []SearchResult) (string, int) {
	top := results
	if len(top) > maxFanOut {
		top = top[:maxFanOut]
	}
	if len(top) == 0 {
		return FallbackSearchContext, 0
	}

	enriched := make([]*EnrichedResult, len(top))

	g := new(errgroup.Group)
	for i, result := range top {
		i, result := i, result
		g.Go(func() error {
			content, err := extractor.Extract(ctx, result.Link)
			if err != nil {
				log.Warn().
					Err(err).
					Str("url", result.Link).
					Msg("content extraction failed, dropping result")
				return nil
			}
			if content == "" {
				content = result.Snippet
			}
			enriched[i] = &EnrichedResult{SearchResult: result, Content: content}
			return nil
		})
	}
	_ = g.Wait()

	var builder strings.Builder
	kept := 0
	for _, item := range enriched {
		if item == nil {
			continue
		}
		kept++
		builder.WriteString(fmt.Sprintf("[%d] %s\n", kept, item.Title))
		builder.WriteString(fmt.Sprintf("URL: %s\n", item.Link))
		builder.WriteString(fmt.Sprintf("Content: %s\n\n", truncateRunes(item.Content, maxExcerptRunes)))
	}

	if kept == 0 {
		return FallbackSearchContext, 0
	}
	return builder.String(), kept
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
