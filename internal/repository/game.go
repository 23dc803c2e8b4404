package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/storage"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrMalformedGame = errors.New("malformed game state")
)

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

type dbGame struct {
	store storage.Store
}

func NewGameRepository(store storage.Store) GameRepository {
	return &dbGame{
		store: store,
	}
}

// storedGame decodes the board as a slice so a wrong cell count is detected instead of being padded.
type storedGame struct {
	*entity.Game
	Board []entity.Mark `json:"board"`
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.store.Set(ctx, gameKey(game.ID), gameJSON); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

// GetByID - returns ErrGameNotFound for an unknown session and ErrMalformedGame for corrupt state.
func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.store.Get(ctx, gameKey(id))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	existing := storedGame{Game: &entity.Game{}}
	if err = json.Unmarshal(response, &existing); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedGame, err)
	}

	if len(existing.Board) != entity.BoardSize {
		return nil, fmt.Errorf("%w: board has %d cells", ErrMalformedGame, len(existing.Board))
	}

	if err = existing.Game.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedGame, err)
	}

	game := existing.Game
	copy(game.Board[:], existing.Board)
	game.ID = id

	return game, nil
}
