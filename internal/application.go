package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-solo/internal/config"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solo/internal/surface"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-solo/transport/rest"
	"github.com/rocketscienceinc/tictactoe-solo/transport/websocket"
)

var ErrUnknownScoreStorage = errors.New("unknown score storage")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sessionID := uuid.NewString()
	log = log.With("session", sessionID)

	scoreRepo, closeRepo, err := newScoreRepository(ctx, log, conf, sessionID)
	if err != nil {
		return err
	}

	defer closeRepo()

	if err = scoreRepo.Reset(ctx); err != nil {
		return fmt.Errorf("could not reset score: %w", err)
	}

	projection := surface.New()
	loop := tictactoe.NewLoop(logger, 0)
	engine := tictactoe.NewEngine(logger, projection, scoreRepo, loop, tictactoe.NewRandomizer(conf.Game.Seed), tictactoe.Options{
		ComputerDelay: conf.Game.ComputerDelay,
		RoundDelay:    conf.Game.RoundDelay,
	})
	gameUseCase := usecase.NewGameManager(logger, loop, engine, scoreRepo)

	errCh := make(chan error, 3)

	go func() {
		if loopErr := loop.Run(ctx); loopErr != nil {
			errCh <- fmt.Errorf("game loop error: %w", loopErr)
		}
	}()

	// run HTTP server
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, gameUseCase).Start(ctx, conf.HTTPPort); httpErr != nil {
			errCh <- fmt.Errorf("HTTP server error: %w", httpErr)
		}
	}()

	// run Websocket server
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, gameUseCase, projection).Start(ctx, conf.SocketPort); wsErr != nil {
			errCh <- fmt.Errorf("WebSocket server error: %w", wsErr)
		}
	}()

	select {
	case err = <-errCh:
		log.Error("shutting down", "error", err)
		return err
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newScoreRepository(ctx context.Context, log *slog.Logger, conf *config.Config, sessionID string) (repository.ScoreRepository, func(), error) {
	switch conf.Score.Storage {
	case config.ScoreStorageMemory:
		return repository.NewMemoryScoreRepository(), func() {}, nil
	case config.ScoreStorageRedis:
		redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeFn := func() {
			if closeErr := redisStorage.Close(); closeErr != nil {
				log.Error("could not close redis storage", "error", closeErr)
			}
		}

		return repository.NewScoreRepository(redisStorage, sessionID), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownScoreStorage, conf.Score.Storage)
	}
}
