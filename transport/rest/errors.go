package rest

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

const internalErrorMessage = "internal server error"

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// abortWithError - writes the error body. Caller-side violations keep their text, anything else is
// reported as a generic server error.
func abortWithError(c *gin.Context, err error) {
	status := apperror.HTTPStatus(err)

	message := err.Error()
	if !apperror.IsPrecondition(err) {
		message = internalErrorMessage
	}

	c.AbortWithStatusJSON(status, errorResponse{Status: "error", Message: message})
}

// fail - logs a server-side failure before reporting it.
func fail(c *gin.Context, logger *slog.Logger, err error) {
	if !apperror.IsPrecondition(err) {
		logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}

	abortWithError(c, err)
}
