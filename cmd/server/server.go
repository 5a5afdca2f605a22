package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/brandnewmax/searchintentanalyze/internal/config"
	"github.com/brandnewmax/searchintentanalyze/internal/infrastructure/logger"
	_ "github.com/brandnewmax/searchintentanalyze/internal/infrastructure/metrics" // Register Prometheus metrics
	"github.com/brandnewmax/searchintentanalyze/internal/interfaces/httpserver"
)

type Application struct {
	httpServer *httpserver.HTTPServer
}

func init() {
	// Initialize logger with default settings
	logger.Init("info", "console")
}

func (app *Application) Start() error {
	return app.httpServer.Run()
}

func main() {
	// Optional .env for local development; environment wins in deployment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Re-initialize logger with config settings
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("model", cfg.AIModel).
		Bool("search_enabled", cfg.SerperAPIKey != "").
		Msg("Starting search intent analysis service")

	// Create application with dependency injection
	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create application")
	}

	if err := application.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
