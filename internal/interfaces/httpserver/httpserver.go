package httpserver

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brandnewmax/searchintentanalyze/internal/config"
	"github.com/brandnewmax/searchintentanalyze/internal/interfaces/httpserver/middlewares"
	"github.com/brandnewmax/searchintentanalyze/internal/interfaces/httpserver/responses"
	"github.com/brandnewmax/searchintentanalyze/internal/interfaces/httpserver/routes/analyze"
)

type HTTPServer struct {
	router       *gin.Engine
	config       *config.Config
	analyzeRoute *analyze.AnalyzeRoute
	routesOnce   sync.Once
}

func NewHTTPServer(
	cfg *config.Config,
	analyzeRoute *analyze.AnalyzeRoute,
) *HTTPServer {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.CORS())
	router.Use(middlewares.MetricsRecorder())

	// The analysis endpoint is POST-only; reject other methods explicitly.
	router.HandleMethodNotAllowed = true
	router.NoMethod(responses.MethodNotAllowed)

	return &HTTPServer{
		router:       router,
		config:       cfg,
		analyzeRoute: analyzeRoute,
	}
}

func (s *HTTPServer) setupRoutes() {
	s.routesOnce.Do(s.registerRoutes)
}

func (s *HTTPServer) registerRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "search-intent-analyze"})
	})

	s.router.GET("/readyz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ready", "service": "search-intent-analyze"})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1")
	s.analyzeRoute.RegisterRouter(v1)
}

// Router exposes the configured engine, mainly for tests.
func (s *HTTPServer) Router() *gin.Engine {
	s.setupRoutes()
	return s.router
}

func (s *HTTPServer) Run() error {
	s.setupRoutes()
	addr := fmt.Sprintf(":%s", s.config.HTTPPort)
	return s.router.Run(addr)
}
