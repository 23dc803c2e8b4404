package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/service"
	"github.com/rocketscienceinc/tictactoe-rooms/transport/rest"
)

const shutdownTimeout = 10 * time.Second

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	store, err := openStorage(ctx, log, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = store.Close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	now := time.Now

	gameRepo := repository.NewGameRepository(store)
	gameService := service.NewGameService(gameRepo, now)

	services := rest.Services{
		GamePlay:    service.NewGamePlayService(logger, m, gameRepo, now),
		Games:       gameService,
		Leaderboard: service.NewLeaderboardService(logger, m, repository.NewLeaderboardRepository(store), conf.Leaderboard.Limit),
		Matchmaking: service.NewMatchmakingService(
			logger,
			m,
			repository.NewReservationRepository(store),
			gameService,
			conf.Matchmaking.ReservationTTL,
			now,
		),
		Counter: service.NewCounterService(repository.NewCounterRepository(store)),
		Auth:    service.NewAuthService(conf.JWTSecretKey, conf.Auth.TokenTTL, now),
	}

	if conf.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := rest.NewRouter(logger, m, registry, services, rest.RouterOptions{
		DefaultPool: conf.Game.DefaultPool,
		DevTokens:   conf.Auth.DevTokens,
	})

	server := rest.NewServer(logger, rest.ServerOptions{
		Port:         conf.HTTPPort,
		ReadTimeout:  conf.HTTP.ReadTimeout,
		WriteTimeout: conf.HTTP.WriteTimeout,
		IdleTimeout:  conf.HTTP.IdleTimeout,
	}, router)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		if httpErr := server.Start(); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return nil
}

func openStorage(ctx context.Context, log *slog.Logger, conf *config.Config) (storage.Store, error) {
	if conf.Storage.Driver == config.StorageMemory {
		log.Warn("using in-memory storage, state is lost on restart")
		return storage.NewMemoryStorage(), nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, storage.RedisOptions{
		Addr:     redisAddrString,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return redisStorage, nil
}
