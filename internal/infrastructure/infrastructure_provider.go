package infrastructure

import (
	"github.com/google/wire"

	"github.com/brandnewmax/searchintentanalyze/internal/config"
	"github.com/brandnewmax/searchintentanalyze/internal/domain/analysis"
	"github.com/brandnewmax/searchintentanalyze/internal/infrastructure/extract"
	"github.com/brandnewmax/searchintentanalyze/internal/infrastructure/llmclient"
	"github.com/brandnewmax/searchintentanalyze/internal/infrastructure/search"
)

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Provider clients
	ProvideSearchClient,
	ProvideExtractClient,
	ProvideCompletionClient,

	wire.Bind(new(analysis.Searcher), new(*search.Client)),
	wire.Bind(new(analysis.Extractor), new(*extract.Client)),
	wire.Bind(new(analysis.CompletionStreamer), new(*llmclient.Client)),
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideSearchClient provides the search provider client
func ProvideSearchClient(cfg *config.Config) *search.Client {
	return search.NewClient(cfg.SearchEndpoint, cfg.SerperAPIKey, cfg.SearchTimeout)
}

// ProvideExtractClient provides the content extraction client
func ProvideExtractClient(cfg *config.Config) *extract.Client {
	return extract.NewClient(cfg.ExtractEndpoint, cfg.ExtractAPIKey, cfg.ExtractTimeout)
}

// ProvideCompletionClient provides the streaming AI completion client
func ProvideCompletionClient(cfg *config.Config) *llmclient.Client {
	return llmclient.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, cfg.AIMaxTokens)
}
