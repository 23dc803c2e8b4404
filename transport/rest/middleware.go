package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/metrics"
)

const (
	keyIdentity  = "identity"
	keySessionID = "sessionID"
	keyPoolID    = "poolID"
)

// identity resolves the caller from a bearer token. Requests without one act as anonymous.
func identity(auth authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(keyIdentity, entity.Anonymous)
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortWithError(c, fmt.Errorf("%w: expected a bearer token", apperror.ErrUnauthorized))
			return
		}

		username, err := auth.ResolveIdentity(token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(keyIdentity, username)
		c.Next()
	}
}

// hostingContext reads the session and pool the request runs in.
func hostingContext(defaultPool string) gin.HandlerFunc {
	return func(c *gin.Context) {
		poolID := c.GetHeader(HeaderPoolID)
		if poolID == "" {
			poolID = defaultPool
		}

		c.Set(keySessionID, c.GetHeader(HeaderSessionID))
		c.Set(keyPoolID, poolID)
		c.Next()
	}
}

func requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(keySessionID) == "" {
			abortWithError(c, fmt.Errorf("%w: sessionId is required", apperror.ErrMissingContext))
			return
		}

		c.Next()
	}
}

func requestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.HTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("component", "http")

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Debug("request served",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}

func recovery(logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("component", "http")

	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("recovered from panic", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Status: "error", Message: internalErrorMessage})
	})
}
