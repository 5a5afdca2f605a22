package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment backed configuration for the analysis service.
type Config struct {
	// HTTP Server
	HTTPPort  string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"` // json or console

	// AI provider (required)
	AIBaseURL   string `env:"AI_BASE_URL"`
	AIAPIKey    string `env:"AI_API_KEY"`
	AIModel     string `env:"AI_MODEL" envDefault:"gpt-4o-mini"`
	AIMaxTokens int    `env:"AI_MAX_TOKENS" envDefault:"4096"`

	// Prompt
	SystemPrompt string `env:"SYSTEM_PROMPT"`

	// Search provider (optional; pipeline degrades without it)
	SerperAPIKey   string `env:"SERPER_API_KEY"`
	SearchEndpoint string `env:"SEARCH_ENDPOINT" envDefault:"https://google.serper.dev/search"`

	// Content extraction provider (optional key)
	ExtractAPIKey   string `env:"EXTRACT_API_KEY"`
	ExtractEndpoint string `env:"EXTRACT_ENDPOINT" envDefault:"https://r.jina.ai"`

	// Timeouts and stream pacing
	SearchTimeout     time.Duration `env:"SEARCH_TIMEOUT" envDefault:"8s"`
	ExtractTimeout    time.Duration `env:"EXTRACT_TIMEOUT" envDefault:"12s"`
	StreamTimeout     time.Duration `env:"STREAM_TIMEOUT" envDefault:"2m"`
	KeepAliveInterval time.Duration `env:"KEEPALIVE_INTERVAL" envDefault:"15s"`
}

// ErrMissingAICredentials marks the config-level failure class: the AI
// provider is mandatory, unlike the degradable search/extract providers.
var ErrMissingAICredentials = errors.New("AI_BASE_URL and AI_API_KEY must be configured")

// Load parses environment variables into Config and performs validation.
// Missing AI credentials fail startup; search and extract keys stay optional.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if strings.TrimSpace(cfg.AIBaseURL) == "" || strings.TrimSpace(cfg.AIAPIKey) == "" {
		return nil, ErrMissingAICredentials
	}
	if _, err := url.ParseRequestURI(cfg.AIBaseURL); err != nil {
		return nil, fmt.Errorf("invalid AI_BASE_URL: %w", err)
	}
	if _, err := url.ParseRequestURI(cfg.SearchEndpoint); err != nil {
		return nil, fmt.Errorf("invalid SEARCH_ENDPOINT: %w", err)
	}
	if _, err := url.ParseRequestURI(cfg.ExtractEndpoint); err != nil {
		return nil, fmt.Errorf("invalid EXTRACT_ENDPOINT: %w", err)
	}

	cfg.AIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.AIBaseURL), "/")
	cfg.ExtractEndpoint = strings.TrimRight(strings.TrimSpace(cfg.ExtractEndpoint), "/")
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	return cfg, nil
}
