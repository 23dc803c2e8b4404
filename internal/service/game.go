package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// GameService is the session factory: it creates new addressable sessions.
type GameService interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

type gameService struct {
	gameRepo gameRepo
	now      func() time.Time
}

func NewGameService(gameRepo gameRepo, now func() time.Time) GameService {
	return &gameService{
		gameRepo: gameRepo,
		now:      now,
	}
}

// CreateGame - persists the initial waiting state under a fresh session id.
func (that *gameService) CreateGame(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(uuid.Must(uuid.NewRandom()).String(), that.now())

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game from storage: %w", err)
	}

	return game, nil
}
