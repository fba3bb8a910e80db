package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/reversi/internal/apperror"
	"github.com/rocketscienceinc/reversi/internal/entity"
	"github.com/rocketscienceinc/reversi/internal/pkg"
)

type gameRepo interface {
	Save(ctx context.Context, snapshot *entity.Snapshot) error
	Load(ctx context.Context, target string) (*entity.Snapshot, error)
	List(ctx context.Context) ([]string, error)
	Target(name string) string
}

// GameManager owns the single game being played and saves it after every successful move.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	game *entity.Game
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
	}
}

// Game returns the game in progress, or nil before one is started or loaded.
func (that *GameManager) Game() *entity.Game {
	return that.game
}

// DefaultTarget is where a new game called name is saved.
func (that *GameManager) DefaultTarget(name string) string {
	return that.gameRepo.Target(name)
}

func (that *GameManager) SavedGames(ctx context.Context) ([]string, error) {
	targets, err := that.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved games: %w", err)
	}

	return targets, nil
}

// StartNewGame replaces any current game with a fresh one saved under target.
// An empty target plays without saving.
func (that *GameManager) StartNewGame(ctx context.Context, target string) *entity.Game {
	that.game = entity.NewGame(pkg.GenerateGameID(), target)

	that.logger.Info("new game started", "game_id", that.game.ID, "save_target", target)
	that.save(ctx)

	return that.game
}

func (that *GameManager) LoadGame(ctx context.Context, target string) (*entity.Game, error) {
	snapshot, err := that.gameRepo.Load(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrLoadAborted, err)
	}

	game, err := entity.FromSnapshot(snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrLoadAborted, err)
	}

	that.game = game
	that.logger.Info("game loaded", "game_id", game.ID, "save_target", target, "turn", game.Turn.String())

	return game, nil
}

// MakeMove plays (row, col) for the current player. It reports false for an illegal move,
// which leaves the game untouched and is not an error.
func (that *GameManager) MakeMove(ctx context.Context, row, col int) (bool, error) {
	if that.game == nil {
		return false, apperror.ErrNoActiveGame
	}

	if err := that.game.ConfirmOngoingState(); err != nil {
		return false, err
	}

	player := that.game.Turn
	if !that.game.MakeMove(row, col) {
		that.logger.Debug("move rejected", "player", player.String(), "row", row, "col", col)
		return false, nil
	}

	that.logger.Debug("move played", "player", player.String(), "row", row, "col", col)
	that.save(ctx)

	return true, nil
}

// save writes the current game to its save target. Failures are logged, never returned,
// so a broken store cannot stop the game.
func (that *GameManager) save(ctx context.Context) {
	if that.game.SaveTarget == "" {
		return
	}

	log := that.logger.With("method", "save", "save_target", that.game.SaveTarget)

	if err := that.gameRepo.Save(ctx, that.game.Snapshot()); err != nil {
		log.Warn("failed to save game", "error", err)
		return
	}

	log.Debug("game saved")
}
