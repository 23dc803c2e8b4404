package rest

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-rooms/pkg/handlers"
)

const (
	HeaderSessionID = "X-Session-Id"
	HeaderPoolID    = "X-Pool-Id"
)

type RouterOptions struct {
	DefaultPool string
	DevTokens   bool
}

// Services are the use cases exposed over HTTP.
type Services struct {
	GamePlay    gamePlayService
	Games       gameService
	Leaderboard leaderboardService
	Matchmaking matchmakingService
	Counter     counterService
	Auth        authService
}

// NewRouter - builds the gin engine with every route and middleware.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer, services Services, opts RouterOptions) *gin.Engine {
	handler := newHandler(logger, services)

	router := gin.New()
	router.Use(
		recovery(logger),
		requestMetrics(m),
		requestLogger(logger),
	)

	router.GET("/ping", handlers.Ping)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if opts.DevTokens {
		router.POST("/auth/token", handler.IssueToken)
	}

	api := router.Group("/api", identity(services.Auth), hostingContext(opts.DefaultPool))
	{
		api.POST("/sessions", handler.CreateSession)

		api.GET("/leaderboard", handler.GetLeaderboard)
		api.POST("/leaderboard/win", handler.RecordWin)

		api.POST("/matchmaking/request", handler.RequestPairing)

		session := api.Group("", requireSession())
		session.GET("/init", handler.Init)
		session.POST("/increment", handler.Increment)
		session.POST("/decrement", handler.Decrement)

		session.GET("/game", handler.GetGame)
		session.POST("/game/move", handler.MakeMove)
		session.POST("/game/reset", handler.ResetGame)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Status: "error", Message: "route not found"})
	})

	return router
}
