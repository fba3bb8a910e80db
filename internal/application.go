package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/reversi/internal/apperror"
	"github.com/rocketscienceinc/reversi/internal/config"
	"github.com/rocketscienceinc/reversi/internal/repository"
	"github.com/rocketscienceinc/reversi/internal/repository/storage"
	"github.com/rocketscienceinc/reversi/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/reversi/internal/transport/console"
	"github.com/rocketscienceinc/reversi/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the game on the given input and output until it ends, the player leaves or a signal arrives.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gameRepo, closeStorage, err := openRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	gameManager := usecase.NewGameManager(logger, gameRepo)
	driver := console.New(logger, gameManager, in, out, conf.DefaultSaveName)

	log.Info("Starting game", "storage", conf.Storage)

	// the driver blocks on input, so it runs apart from the signal wait
	doneCh := make(chan error, 1)
	go func() {
		doneCh <- driver.Run(ctx)
	}()

	select {
	case err = <-doneCh:
		if errors.Is(err, apperror.ErrInputClosed) {
			log.Info("Input closed before a game was started")
			return nil
		}
		if err != nil {
			return fmt.Errorf("game aborted: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Received signal, shutting down")
		return nil
	}
}

func openRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func() error, error) {
	switch conf.Storage {
	case config.StorageSQLite:
		sqliteStorage, err := sqlite.New(conf.SQLiteStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteRepository(sqliteStorage.Connection), sqliteStorage.Close, nil

	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewGameRepository(redisStorage), redisStorage.Close, nil

	default:
		gameRepo, err := repository.NewFileRepository(conf.SaveDir, conf.CompressSaves)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open file storage: %w", err)
		}

		return gameRepo, func() error { return nil }, nil
	}
}
