package api

import (
	"net/http"

	"clubhouse/internal/apperr"
	"clubhouse/internal/logger"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// Fail renders err as a JSON error response, mapping the error's kind to a
// status code. Unclassified errors are logged and hidden behind a 500.
func Fail(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status, known := statusOf(kind)
	if !known {
		logger.Error("unhandled error", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, ErrorResponse{Error: apperr.MessageOf(err)})
}

func statusOf(kind apperr.Kind) (int, bool) {
	switch kind {
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized, true
	case apperr.KindNotFound:
		return http.StatusNotFound, true
	case apperr.KindInvalidInput, apperr.KindInvalidState:
		return http.StatusBadRequest, true
	case apperr.KindForbidden:
		return http.StatusForbidden, true
	case apperr.KindConflict:
		return http.StatusConflict, true
	case apperr.KindUpstream:
		return http.StatusBadGateway, true
	default:
		return http.StatusInternalServerError, false
	}
}
