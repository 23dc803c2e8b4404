package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
)

// GamePlayService runs the session transitions. Every call fetches the current state, applies one
// transition and overwrites the stored state. There is no locking: two concurrent writers to the
// same session lose one of the updates.
//
// Precondition violations are returned as is so their text can be shown to the caller.
type GamePlayService interface {
	GetGameState(ctx context.Context, sessionID, identity string) (*entity.GameView, error)
	MakeTurn(ctx context.Context, sessionID, identity string, cell int) (*entity.GameView, error)
	Reset(ctx context.Context, sessionID, identity string) (*entity.GameView, error)
}

type gamePlayService struct {
	logger  *slog.Logger
	metrics *metrics.Metrics

	gameRepo gameRepo
	now      func() time.Time
}

func NewGamePlayService(logger *slog.Logger, m *metrics.Metrics, gameRepo gameRepo, now func() time.Time) GamePlayService {
	return &gamePlayService{
		logger:   logger.With("component", "gameplay"),
		metrics:  m,
		gameRepo: gameRepo,
		now:      now,
	}
}

// GetGameState - join-or-view. Seats the caller on a free slot and always re-persists the session,
// even when nothing changed.
func (that *gamePlayService) GetGameState(ctx context.Context, sessionID, identity string) (*entity.GameView, error) {
	game, err := that.fetchGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if game.Join(identity, that.now()) {
		that.logger.Debug("session updated on join", "sessionID", sessionID, "identity", identity, "status", game.Status)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return entity.NewGameView(entity.TypeGameState, game, identity), nil
}

func (that *gamePlayService) MakeTurn(ctx context.Context, sessionID, identity string, cell int) (*entity.GameView, error) {
	log := that.logger.With("method", "MakeTurn", "sessionID", sessionID, "identity", identity)

	game, err := that.fetchGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err = game.MakeTurn(identity, cell, that.now()); err != nil {
		log.Debug("move rejected", "cell", cell, "error", err)
		that.metrics.Move(rejectionReason(err))

		return nil, err
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.metrics.Move("accepted")

	if game.IsFinished() {
		log.Info("round finished", "status", game.Status, "winner", game.WinnerUsername)
		that.metrics.GameFinished(string(game.Status))
	}

	return entity.NewGameView(entity.TypeGameMove, game, identity), nil
}

func (that *gamePlayService) Reset(ctx context.Context, sessionID, identity string) (*entity.GameView, error) {
	game, err := that.fetchGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err = game.Reset(identity, that.now()); err != nil {
		return nil, err
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return entity.NewGameView(entity.TypeGameReset, game, identity), nil
}

// fetchGame - loads the session, materializing the initial state for unknown or corrupt sessions.
func (that *gamePlayService) fetchGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionId is required", apperror.ErrMissingContext)
	}

	game, err := that.gameRepo.GetByID(ctx, sessionID)
	switch {
	case err == nil:
		return game, nil
	case errors.Is(err, repository.ErrGameNotFound):
		return entity.NewGame(sessionID, that.now()), nil
	case errors.Is(err, repository.ErrMalformedGame):
		that.logger.Warn("discarding malformed game state", "sessionID", sessionID, "error", err)
		return entity.NewGame(sessionID, that.now()), nil
	default:
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, apperror.ErrInvalidMove):
		return "invalid_move"
	case errors.Is(err, apperror.ErrNotAPlayer):
		return "not_a_player"
	case errors.Is(err, apperror.ErrGameNotActive):
		return "game_not_active"
	case errors.Is(err, apperror.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, apperror.ErrCellOccupied):
		return "cell_occupied"
	default:
		return "error"
	}
}
