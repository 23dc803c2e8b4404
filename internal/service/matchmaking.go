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

const (
	DefaultReservationTTL = 300 * time.Second

	messagePaired  = "You've been matched! Opening game..."
	messageWaiting = "Waiting for opponent... Share the link or ask a friend to request a match!"
)

// MatchmakingService pairs two callers through a single TTL-bound reservation per pool.
// The reservation is advisory, not a lock: two callers that both find the pool empty each create a
// session and the later write wins, leaving the other session unmatched but still joinable.
type MatchmakingService interface {
	RequestPairing(ctx context.Context, poolID, identity string) (*entity.Pairing, error)
}

type reservationRepo interface {
	Get(ctx context.Context, poolID string) (*entity.Reservation, error)
	Reserve(ctx context.Context, poolID string, reservation *entity.Reservation, ttl time.Duration) error
	Delete(ctx context.Context, poolID string) error
}

type matchmakingService struct {
	logger  *slog.Logger
	metrics *metrics.Metrics

	reservationRepo reservationRepo
	gameService     GameService
	ttl             time.Duration
	now             func() time.Time
}

func NewMatchmakingService(
	logger *slog.Logger,
	m *metrics.Metrics,
	reservationRepo reservationRepo,
	gameService GameService,
	ttl time.Duration,
	now func() time.Time,
) MatchmakingService {
	if ttl <= 0 {
		ttl = DefaultReservationTTL
	}

	return &matchmakingService{
		logger:          logger.With("component", "matchmaking"),
		metrics:         m,
		reservationRepo: reservationRepo,
		gameService:     gameService,
		ttl:             ttl,
		now:             now,
	}
}

// RequestPairing - consumes a pending reservation left by someone else, or creates a session and
// reserves it for the next caller.
func (that *matchmakingService) RequestPairing(ctx context.Context, poolID, identity string) (*entity.Pairing, error) {
	log := that.logger.With("method", "RequestPairing", "poolID", poolID, "identity", identity)

	if poolID == "" {
		return nil, fmt.Errorf("%w: poolId is required", apperror.ErrMissingContext)
	}

	reservation, err := that.reservationRepo.Get(ctx, poolID)
	switch {
	case err == nil && reservation.IsOwnedBy(identity):
		log.Info("caller is still waiting on own reservation", "sessionID", reservation.SessionID)
		that.metrics.Matchmaking(entity.PairingWaiting)

		return waitingPairing(reservation.SessionID), nil
	case err == nil:
		if err = that.reservationRepo.Delete(ctx, poolID); err != nil {
			return nil, fmt.Errorf("failed to consume reservation: %w", err)
		}

		log.Info("paired with pending session", "sessionID", reservation.SessionID)
		that.metrics.Matchmaking(entity.PairingPaired)

		return &entity.Pairing{
			Type:      entity.TypeMatchmakingPaired,
			Outcome:   entity.PairingPaired,
			SessionID: reservation.SessionID,
			Message:   messagePaired,
		}, nil
	case !errors.Is(err, repository.ErrReservationNotFound):
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	game, err := that.gameService.CreateGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	reservation = &entity.Reservation{
		SessionID:   game.ID,
		RequestedBy: identity,
		CreatedAt:   that.now(),
	}

	if err = that.reservationRepo.Reserve(ctx, poolID, reservation, that.ttl); err != nil {
		return nil, fmt.Errorf("failed to reserve session: %w", err)
	}

	log.Info("created session and waiting for opponent", "sessionID", game.ID, "ttl", that.ttl)
	that.metrics.Matchmaking(entity.PairingWaiting)

	return waitingPairing(game.ID), nil
}

func waitingPairing(sessionID string) *entity.Pairing {
	return &entity.Pairing{
		Type:      entity.TypeMatchmakingWaiting,
		Outcome:   entity.PairingWaiting,
		SessionID: sessionID,
		Message:   messageWaiting,
	}
}
