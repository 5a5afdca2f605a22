package analyze

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/brandnewmax/searchintentanalyze/internal/domain/analysis"
	"github.com/brandnewmax/searchintentanalyze/internal/interfaces/httpserver/responses"
)

// AnalyzeRoute exposes the streaming search-intent analysis endpoint by
// delegating to the analysis pipeline.
type AnalyzeRoute struct {
	service *analysis.Service
}

func NewAnalyzeRoute(service *analysis.Service) *AnalyzeRoute {
	return &AnalyzeRoute{service: service}
}

func (route *AnalyzeRoute) RegisterRouter(router *gin.RouterGroup) {
	router.POST("/analyze", route.PostAnalyze)
}

type analyzeRequest struct {
	Keyword string `json:"keyword"`
}

// PostAnalyze validates the request, opens the SSE stream and runs the
// pipeline against it. Malformed bodies are rejected before the stream
// opens; a missing keyword is reported as a single in-stream error frame.
// The stream is closed exactly once, when this handler returns.
func (route *AnalyzeRoute) PostAnalyze(reqCtx *gin.Context) {
	var request analyzeRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		responses.BadRequest(reqCtx, "invalid request body")
		return
	}

	setupSSEHeaders(reqCtx)
	sink := newSSESink(reqCtx)

	keyword := strings.TrimSpace(request.Keyword)
	if keyword == "" {
		sink.Error("keyword is required")
		return
	}

	log.Info().
		Str("route", "/v1/analyze").
		Str("keyword", keyword).
		Msg("analysis request received")

	if err := route.service.Run(reqCtx.Request.Context(), keyword, sink); err != nil {
		// The terminal error frame is already on the wire; just record it.
		log.Warn().Err(err).Str("keyword", keyword).Msg("analysis pipeline terminated with error")
	}
}

func setupSSEHeaders(reqCtx *gin.Context) {
	reqCtx.Header("Content-Type", "text/event-stream")
	reqCtx.Header("Cache-Control", "no-cache")
	reqCtx.Header("Connection", "keep-alive")
	reqCtx.Header("X-Accel-Buffering", "no")
	reqCtx.Writer.WriteHeaderNow()
}
