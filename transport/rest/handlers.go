package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

type gamePlayService interface {
	GetGameState(ctx context.Context, sessionID, identity string) (*entity.GameView, error)
	MakeTurn(ctx context.Context, sessionID, identity string, cell int) (*entity.GameView, error)
	Reset(ctx context.Context, sessionID, identity string) (*entity.GameView, error)
}

type gameService interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
}

type leaderboardService interface {
	Get(ctx context.Context, poolID, identity string) (*entity.LeaderboardView, error)
	RecordWin(ctx context.Context, poolID, identity string) (*entity.WinRecord, error)
}

type matchmakingService interface {
	RequestPairing(ctx context.Context, poolID, identity string) (*entity.Pairing, error)
}

type counterService interface {
	Get(ctx context.Context) (int64, error)
	Increment(ctx context.Context) (int64, error)
	Decrement(ctx context.Context) (int64, error)
}

type authService interface {
	GenerateToken(username string) (string, error)
	ResolveIdentity(token string) (string, error)
}

type handler struct {
	logger *slog.Logger

	gamePlay    gamePlayService
	games       gameService
	leaderboard leaderboardService
	matchmaking matchmakingService
	counter     counterService
	auth        authService
}

func newHandler(logger *slog.Logger, services Services) *handler {
	return &handler{
		logger:      logger.With("component", "rest"),
		gamePlay:    services.GamePlay,
		games:       services.Games,
		leaderboard: services.Leaderboard,
		matchmaking: services.Matchmaking,
		counter:     services.Counter,
		auth:        services.Auth,
	}
}

type moveRequest struct {
	Index *int `json:"index"`
}

type tokenRequest struct {
	Username string `json:"username"`
}

// GetGame - join-or-view.
func (that *handler) GetGame(c *gin.Context) {
	view, err := that.gamePlay.GetGameState(c.Request.Context(), c.GetString(keySessionID), c.GetString(keyIdentity))
	if err != nil {
		fail(c, that.logger, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (that *handler) MakeMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		abortWithError(c, fmt.Errorf("%w: index must be an integer", apperror.ErrInvalidMove))
		return
	}

	view, err := that.gamePlay.MakeTurn(c.Request.Context(), c.GetString(keySessionID), c.GetString(keyIdentity), *req.Index)
	if err != nil {
		fail(c, that.logger, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (that *handler) ResetGame(c *gin.Context) {
	view, err := that.gamePlay.Reset(c.Request.Context(), c.GetString(keySessionID), c.GetString(keyIdentity))
	if err != nil {
		fail(c, that.logger, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (that *handler) CreateSession(c *gin.Context) {
	game, err := that.games.CreateGame(c.Request.Context())
	if err != nil {
		fail(c, that.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"type":      "session.create",
		"sessionId": game.ID,
	})
}

func (that *handler) GetLeaderboard(c *gin.Context) {
	view, err := that.leaderboard.Get(c.Request.Context(), c.GetString(keyPoolID), c.GetString(keyIdentity))
	if err != nil {
		fail(c, that.logger, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (that *handler) RecordWin(c *gin.Context) {
	record, err := that.leaderboard.RecordWin(c.Request.Context(), c.GetString(keyPoolID), c.GetString(keyIdentity))
	if err != nil {
		fail(c, that.logger, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (that *handler) RequestPairing(c *gin.Context) {
	pairing, err := that.matchmaking.RequestPairing(c.Request.Context(), c.GetString(keyPoolID), c.GetString(keyIdentity))
	if err != nil {
		fail(c, that.logger, err)
		return
	}

	c.JSON(http.StatusOK, pairing)
}

func (that *handler) Init(c *gin.Context) {
	count, err := that.counter.Get(c.Request.Context())
	if err != nil {
		fail(c, that.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"type":      "init",
		"sessionId": c.GetString(keySessionID),
		"count":     count,
		"username":  c.GetString(keyIdentity),
	})
}

func (that *handler) Increment(c *gin.Context) {
	that.step(c, "increment", that.counter.Increment)
}

func (that *handler) Decrement(c *gin.Context) {
	that.step(c, "decrement", that.counter.Decrement)
}

func (that *handler) step(c *gin.Context, kind string, apply func(ctx context.Context) (int64, error)) {
	count, err := apply(c.Request.Context())
	if err != nil {
		fail(c, that.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"type":      kind,
		"sessionId": c.GetString(keySessionID),
		"count":     count,
	})
}

// IssueToken - hands out a signed identity token for the requested username. Only routed when dev
// tokens are enabled.
func (that *handler) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fmt.Errorf("%w: %w", apperror.ErrBadRequest, err))
		return
	}

	token, err := that.auth.GenerateToken(req.Username)
	if err != nil {
		fail(c, that.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"type":     "auth.token",
		"username": req.Username,
		"token":    token,
	})
}
