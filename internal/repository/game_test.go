package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-rooms/testing/suite"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a fresh game
	game := entity.NewGame("123", testNow)

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, game)

	// Then: no error should be returned, and the game is stored under its key
	require.NoError(t, err)

	raw, err := st.Client.Get(ctx, "ttt:123:game").Result()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"sessionId": "123",
		"board": [null, null, null, null, null, null, null, null, null],
		"turn": "X",
		"status": "waiting",
		"winner": null,
		"winnerUsername": null,
		"players": {"X": null, "O": null},
		"updatedAt": 1792238400000
	}`, raw)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a game in progress
		game := entity.NewGame("123", testNow)
		game.Join("alice", testNow)
		game.Join("bob", testNow)
		require.NoError(t, game.MakeTurn("alice", 4, testNow))

		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved game should match the saved game
		require.NoError(t, err)
		assert.Equal(t, game, retrievedGame)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_GetByID_Malformed(t *testing.T) {
	ctx := context.Background()

	cases := map[string]string{
		"not json":           `{{{`,
		"short board":        `{"board":[null,null,null],"turn":"X","status":"waiting"}`,
		"long board":         `{"board":[null,null,null,null,null,null,null,null,null,null],"turn":"X","status":"waiting"}`,
		"unknown mark":       `{"board":["Z",null,null,null,null,null,null,null,null],"turn":"X","status":"waiting"}`,
		"unknown status":     `{"board":[null,null,null,null,null,null,null,null,null],"turn":"X","status":"paused"}`,
		"missing turn":       `{"board":[null,null,null,null,null,null,null,null,null],"status":"waiting"}`,
		"won without mark":   `{"board":[null,null,null,null,null,null,null,null,null],"turn":"X","status":"won"}`,
		"board not an array": `{"board":"XXX","turn":"X","status":"waiting"}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			// Given: corrupt state persisted under the session key
			store := storage.NewMemoryStorage()
			require.NoError(t, store.Set(ctx, "ttt:s1:game", []byte(raw)))

			gameRepo := NewGameRepository(store)

			// When: the session is fetched
			game, err := gameRepo.GetByID(ctx, "s1")

			// Then: ErrMalformedGame is reported so the caller can start over
			require.ErrorIs(t, err, ErrMalformedGame)
			assert.Nil(t, game)
		})
	}
}

func TestGameRepository_GetByID_OverridesStoredID(t *testing.T) {
	ctx := context.Background()

	// Given: a valid session stored with a stale id field
	store := storage.NewMemoryStorage()
	raw := `{"sessionId":"other","board":["X",null,null,null,"O",null,null,null,null],` +
		`"turn":"X","status":"playing","winner":null,"players":{"X":"a","O":"b"},"updatedAt":5}`
	require.NoError(t, store.Set(ctx, "ttt:s1:game", []byte(raw)))

	// When: it is fetched by key
	game, err := NewGameRepository(store).GetByID(ctx, "s1")

	// Then: the id follows the key and the cells are decoded in order
	require.NoError(t, err)
	assert.Equal(t, "s1", game.ID)
	assert.Equal(t, entity.Board{entity.PlayerX, "", "", "", entity.PlayerO, "", "", "", ""}, game.Board)
	assert.Equal(t, entity.Players{X: "a", O: "b"}, game.Players)
	assert.Equal(t, int64(5), game.UpdatedAt)
}
