package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/storage"
)

type LeaderboardRepository interface {
	Get(ctx context.Context, poolID string) (entity.Leaderboard, error)
	Save(ctx context.Context, poolID string, board entity.Leaderboard) error
}

type dbLeaderboard struct {
	store storage.Store
}

func NewLeaderboardRepository(store storage.Store) LeaderboardRepository {
	return &dbLeaderboard{
		store: store,
	}
}

// Get - loads the pool's tally. Absent or malformed data yields an empty tally, never an error;
// only a failing store is reported.
func (that *dbLeaderboard) Get(ctx context.Context, poolID string) (entity.Leaderboard, error) {
	raw, err := that.store.Get(ctx, leaderboardKey(poolID))
	if errors.Is(err, storage.ErrNotFound) {
		return entity.Leaderboard{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return parseLeaderboard(raw), nil
}

func (that *dbLeaderboard) Save(ctx context.Context, poolID string, board entity.Leaderboard) error {
	boardJSON, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("could not marshal leaderboard: %w", err)
	}

	if err = that.store.Set(ctx, leaderboardKey(poolID), boardJSON); err != nil {
		return fmt.Errorf("failed to set leaderboard: %w", err)
	}

	return nil
}

// parseLeaderboard keeps only entries whose value is a non-negative integer.
func parseLeaderboard(raw []byte) entity.Leaderboard {
	board := entity.Leaderboard{}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var parsed map[string]any
	if err := decoder.Decode(&parsed); err != nil {
		return board
	}

	for username, value := range parsed {
		number, ok := value.(json.Number)
		if !ok {
			continue
		}

		wins, err := number.Int64()
		if err != nil || wins < 0 {
			continue
		}

		board[username] = wins
	}

	return board
}
