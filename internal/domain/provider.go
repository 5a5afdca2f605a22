package domain

import (
	"github.com/google/wire"

	"github.com/brandnewmax/searchintentanalyze/internal/config"
	"github.com/brandnewmax/searchintentanalyze/internal/domain/analysis"
)

// DomainProvider provides all domain services
var DomainProvider = wire.NewSet(
	ProvideAnalysisService,
)

// ProvideAnalysisService assembles the analysis pipeline from its stages.
func ProvideAnalysisService(
	cfg *config.Config,
	searcher analysis.Searcher,
	extractor analysis.Extractor,
	streamer analysis.CompletionStreamer,
) *analysis.Service {
	return analysis.NewService(searcher, extractor, streamer, analysis.Options{
		SystemPrompt:      cfg.SystemPrompt,
		StreamTimeout:     cfg.StreamTimeout,
		KeepAliveInterval: cfg.KeepAliveInterval,
	})
}
