package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/metrics"
)

const DefaultLeaderboardLimit = 10

type LeaderboardService interface {
	Get(ctx context.Context, poolID, identity string) (*entity.LeaderboardView, error)
	RecordWin(ctx context.Context, poolID, identity string) (*entity.WinRecord, error)
}

type leaderboardRepo interface {
	Get(ctx context.Context, poolID string) (entity.Leaderboard, error)
	Save(ctx context.Context, poolID string, board entity.Leaderboard) error
}

type leaderboardService struct {
	logger  *slog.Logger
	metrics *metrics.Metrics

	leaderboardRepo leaderboardRepo
	limit           int
}

func NewLeaderboardService(logger *slog.Logger, m *metrics.Metrics, leaderboardRepo leaderboardRepo, limit int) LeaderboardService {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	return &leaderboardService{
		logger:          logger.With("component", "leaderboard"),
		metrics:         m,
		leaderboardRepo: leaderboardRepo,
		limit:           limit,
	}
}

func (that *leaderboardService) Get(ctx context.Context, poolID, identity string) (*entity.LeaderboardView, error) {
	if poolID == "" {
		return nil, fmt.Errorf("%w: poolId is required", apperror.ErrMissingContext)
	}

	board, err := that.leaderboardRepo.Get(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	return &entity.LeaderboardView{
		Type:     entity.TypeLeaderboardGet,
		PoolID:   poolID,
		Username: identity,
		MyWins:   board.Wins(identity),
		Entries:  board.Top(that.limit),
	}, nil
}

// RecordWin - read, add one, write back the whole tally. Concurrent wins in the same pool can
// overwrite each other; the tally is advisory.
func (that *leaderboardService) RecordWin(ctx context.Context, poolID, identity string) (*entity.WinRecord, error) {
	if poolID == "" {
		return nil, fmt.Errorf("%w: poolId is required", apperror.ErrMissingContext)
	}

	board, err := that.leaderboardRepo.Get(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	wins := board.RecordWin(identity)

	if err = that.leaderboardRepo.Save(ctx, poolID, board); err != nil {
		return nil, fmt.Errorf("failed to record win: %w", err)
	}

	that.logger.Info("win recorded", "poolID", poolID, "identity", identity, "wins", wins)
	that.metrics.LeaderboardWin()

	return &entity.WinRecord{
		Type:     entity.TypeLeaderboardRecordWin,
		PoolID:   poolID,
		Username: identity,
		MyWins:   wins,
	}, nil
}
