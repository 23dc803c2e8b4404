package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
)

func TestGameService_CreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Persists a waiting session under a fresh id", func(t *testing.T) {
		// Given: a game service over an empty store
		clock := newTestClock()
		games := repository.NewGameRepository(newTestStore(clock))
		svc := NewGameService(games, clock.Now)

		// When: two sessions are created
		first, err := svc.CreateGame(ctx)
		require.NoError(t, err)
		second, err := svc.CreateGame(ctx)
		require.NoError(t, err)

		// Then: each has its own uuid and is stored in the initial state
		require.NoError(t, uuid.Validate(first.ID))
		assert.NotEqual(t, first.ID, second.ID)

		stored, err := games.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame(first.ID, testNow), stored)
	})

	t.Run("Store failure", func(t *testing.T) {
		gameRepo := new(mockGameRepo)
		gameRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(errStoreDown).Once()

		_, err := NewGameService(gameRepo, newTestClock().Now).CreateGame(ctx)

		require.ErrorIs(t, err, errStoreDown)
		gameRepo.AssertExpectations(t)
	})
}
