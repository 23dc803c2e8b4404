package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/storage"
)

var (
	errStoreDown = errors.New("store down")

	testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testClock is a settable clock shared by services and the memory store.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: testNow}
}

func (that *testClock) Now() time.Time {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.now
}

func (that *testClock) Advance(d time.Duration) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.now = that.now.Add(d)
}

func newTestStore(clock *testClock) *storage.MemoryStorage {
	return storage.NewMemoryStorageWithClock(clock.Now)
}

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	return that.Called(ctx, game).Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	return args.Get(0).(*entity.Game), args.Error(1)
}

type mockReservationRepo struct {
	mock.Mock
}

func (that *mockReservationRepo) Get(ctx context.Context, poolID string) (*entity.Reservation, error) {
	args := that.Called(ctx, poolID)
	return args.Get(0).(*entity.Reservation), args.Error(1)
}

func (that *mockReservationRepo) Reserve(ctx context.Context, poolID string, reservation *entity.Reservation, ttl time.Duration) error {
	return that.Called(ctx, poolID, reservation, ttl).Error(0)
}

func (that *mockReservationRepo) Delete(ctx context.Context, poolID string) error {
	return that.Called(ctx, poolID).Error(0)
}

type mockLeaderboardRepo struct {
	mock.Mock
}

func (that *mockLeaderboardRepo) Get(ctx context.Context, poolID string) (entity.Leaderboard, error) {
	args := that.Called(ctx, poolID)
	return args.Get(0).(entity.Leaderboard), args.Error(1)
}

func (that *mockLeaderboardRepo) Save(ctx context.Context, poolID string, board entity.Leaderboard) error {
	return that.Called(ctx, poolID, board).Error(0)
}
