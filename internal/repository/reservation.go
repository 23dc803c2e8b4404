package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/storage"
)

var ErrReservationNotFound = errors.New("reservation not found")

type ReservationRepository interface {
	Get(ctx context.Context, poolID string) (*entity.Reservation, error)
	Reserve(ctx context.Context, poolID string, reservation *entity.Reservation, ttl time.Duration) error
	Delete(ctx context.Context, poolID string) error
}

type dbReservation struct {
	store storage.Store
}

func NewReservationRepository(store storage.Store) ReservationRepository {
	return &dbReservation{
		store: store,
	}
}

// Get - a value that is not a JSON reservation is read as a bare session id.
func (that *dbReservation) Get(ctx context.Context, poolID string) (*entity.Reservation, error) {
	raw, err := that.store.Get(ctx, matchmakingKey(poolID))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrReservationNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	var reservation entity.Reservation
	if err = json.Unmarshal(raw, &reservation); err != nil || reservation.SessionID == "" {
		if len(raw) == 0 {
			return nil, ErrReservationNotFound
		}
		return &entity.Reservation{SessionID: string(raw)}, nil
	}

	return &reservation, nil
}

// Reserve - writes the reservation, then bounds its lifetime. The two calls are not atomic.
func (that *dbReservation) Reserve(ctx context.Context, poolID string, reservation *entity.Reservation, ttl time.Duration) error {
	reservationJSON, err := json.Marshal(reservation)
	if err != nil {
		return fmt.Errorf("could not marshal reservation: %w", err)
	}

	key := matchmakingKey(poolID)

	if err = that.store.Set(ctx, key, reservationJSON); err != nil {
		return fmt.Errorf("failed to set reservation: %w", err)
	}

	if err = that.store.Expire(ctx, key, ttl); err != nil {
		return fmt.Errorf("failed to expire reservation: %w", err)
	}

	return nil
}

func (that *dbReservation) Delete(ctx context.Context, poolID string) error {
	if err := that.store.Delete(ctx, matchmakingKey(poolID)); err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	return nil
}
