package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ping - liveness probe.
func Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
