package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// BadRequest aborts the request with a 400 and a JSON error body. Used only
// before the SSE stream opens; once streaming, errors travel as frames.
func BadRequest(reqCtx *gin.Context, message string) {
	reqCtx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// MethodNotAllowed aborts non-POST requests to the analysis endpoint.
func MethodNotAllowed(reqCtx *gin.Context) {
	reqCtx.AbortWithStatusJSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
}
