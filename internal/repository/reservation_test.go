package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-rooms/testing/suite"
)

func TestReservationRepository_Reserve(t *testing.T) {
	ctx, st := suite.New(t)

	repo := NewReservationRepository(st.Storage)

	// Given: a reservation for a pool
	reservation := &entity.Reservation{SessionID: "s1", RequestedBy: "alice", CreatedAt: testNow}

	// When: it is reserved with a TTL
	err := repo.Reserve(ctx, "pool", reservation, 300*time.Second)

	// Then: it can be read back and redis carries the expiry
	require.NoError(t, err)

	retrieved, err := repo.Get(ctx, "pool")
	require.NoError(t, err)
	assert.Equal(t, "s1", retrieved.SessionID)
	assert.Equal(t, "alice", retrieved.RequestedBy)

	ttl, err := st.Client.TTL(ctx, "ttt:matchmaking:pool").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 290*time.Second)
	assert.LessOrEqual(t, ttl, 300*time.Second)
}

func TestReservationRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Absent reservation", func(t *testing.T) {
		repo := NewReservationRepository(storage.NewMemoryStorage())

		reservation, err := repo.Get(ctx, "pool")

		require.ErrorIs(t, err, ErrReservationNotFound)
		assert.Nil(t, reservation)
	})

	t.Run("Bare session id", func(t *testing.T) {
		// Given: a reservation written as a plain session id
		store := storage.NewMemoryStorage()
		require.NoError(t, store.Set(ctx, "ttt:matchmaking:pool", []byte("t3_abc")))

		// When: it is read
		reservation, err := NewReservationRepository(store).Get(ctx, "pool")

		// Then: the raw value is the session id and nobody owns it
		require.NoError(t, err)
		assert.Equal(t, "t3_abc", reservation.SessionID)
		assert.False(t, reservation.IsOwnedBy("alice"))
	})

	t.Run("Expired reservation", func(t *testing.T) {
		// Given: a reservation whose TTL has elapsed
		now := testNow
		store := storage.NewMemoryStorageWithClock(func() time.Time { return now })
		repo := NewReservationRepository(store)
		require.NoError(t, repo.Reserve(ctx, "pool", &entity.Reservation{SessionID: "s1"}, 300*time.Second))

		now = now.Add(301 * time.Second)

		// When: it is read
		reservation, err := repo.Get(ctx, "pool")

		// Then: it is gone
		require.ErrorIs(t, err, ErrReservationNotFound)
		assert.Nil(t, reservation)
	})
}

func TestReservationRepository_Delete(t *testing.T) {
	ctx := context.Background()

	// Given: a pending reservation
	repo := NewReservationRepository(storage.NewMemoryStorage())
	require.NoError(t, repo.Reserve(ctx, "pool", &entity.Reservation{SessionID: "s1"}, time.Minute))

	// When: it is deleted
	require.NoError(t, repo.Delete(ctx, "pool"))

	// Then: it is no longer found
	_, err := repo.Get(ctx, "pool")
	require.ErrorIs(t, err, ErrReservationNotFound)
}

func TestReservationRepository_Reserve_ExpireFailure(t *testing.T) {
	ctx := context.Background()

	// Given: a store that accepts the write but fails to set the expiry
	store := &mockStore{}
	store.On("Set", ctx, "ttt:matchmaking:pool", mock.Anything).Return(nil).Once()
	store.On("Expire", ctx, "ttt:matchmaking:pool", 300*time.Second).Return(errStoreDown).Once()

	// When: the reservation is written
	err := NewReservationRepository(store).Reserve(ctx, "pool", &entity.Reservation{SessionID: "s1"}, 300*time.Second)

	// Then: the failure is reported
	require.ErrorIs(t, err, errStoreDown)
	store.AssertExpectations(t)
}
