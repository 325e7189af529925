package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-codeclash/internal/content"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(c *gin.Context, err error) {
	status, payload := mapError(err)
	c.AbortWithStatusJSON(status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable, errorResponse{Error: "unavailable", Message: err.Error()}
	}

	switch content.KindOf(err) {
	case content.KindNotFound:
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
	case content.KindParse, content.KindRender:
		return http.StatusUnprocessableEntity, errorResponse{Error: "unprocessable_entry", Message: err.Error()}
	case content.KindIO:
		return http.StatusInternalServerError, errorResponse{Error: "storage_error", Message: err.Error()}
	}
	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()}
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "bad_request", Message: message})
}
