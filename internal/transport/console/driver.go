package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/reversi/internal/apperror"
	"github.com/rocketscienceinc/reversi/internal/entity"
)

var (
	errQuit          = errors.New("quit requested")
	errInvalidNumber = errors.New("not a number")
	errOutOfRange    = errors.New("row and column must be between 0 and 7")
)

type gameManager interface {
	Game() *entity.Game
	DefaultTarget(name string) string
	SavedGames(ctx context.Context) ([]string, error)
	StartNewGame(ctx context.Context, target string) *entity.Game
	LoadGame(ctx context.Context, target string) (*entity.Game, error)
	MakeMove(ctx context.Context, row, col int) (bool, error)
}

// Driver runs the interactive turn loop over a line-oriented reader and writer.
type Driver struct {
	logger  *slog.Logger
	manager gameManager

	in  *bufio.Scanner
	out io.Writer

	saveName string
}

func New(logger *slog.Logger, manager gameManager, in io.Reader, out io.Writer, saveName string) *Driver {
	return &Driver{
		logger:   logger.With("component", "console"),
		manager:  manager,
		in:       bufio.NewScanner(in),
		out:      out,
		saveName: saveName,
	}
}

// Run asks for a new or saved game and plays it until the board is full or the player quits.
// Only a failed startup is reported as an error.
func (that *Driver) Run(ctx context.Context) error {
	if err := that.setup(ctx); err != nil {
		return err
	}

	return that.play(ctx)
}

func (that *Driver) setup(ctx context.Context) error {
	answer, err := that.prompt("Load a saved game? (y/n): ")
	if err != nil {
		if errors.Is(err, errQuit) {
			return apperror.ErrInputClosed
		}
		return err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return that.loadSaved(ctx)
	default:
		that.manager.StartNewGame(ctx, that.manager.DefaultTarget(that.saveName))
		return nil
	}
}

// loadSaved is the file selection prompt: a number picks a listed save, anything else is taken as a target.
func (that *Driver) loadSaved(ctx context.Context) error {
	targets, err := that.manager.SavedGames(ctx)
	if err != nil {
		that.logger.Warn("could not list saved games", "error", err)
	}

	if len(targets) > 0 {
		fmt.Fprintln(that.out, "Saved games:")
		for i, target := range targets {
			fmt.Fprintf(that.out, "  %d) %s\n", i+1, target)
		}
	}

	answer, err := that.prompt("Choose a game (number or name, empty to cancel): ")
	if err != nil && !errors.Is(err, errQuit) {
		return err
	}

	if answer == "" || errors.Is(err, errQuit) {
		fmt.Fprintln(that.out, "No file was selected.")
		return apperror.ErrNoFileSelected
	}

	target := answer
	if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(targets) {
		target = targets[n-1]
	}

	if _, err = that.manager.LoadGame(ctx, target); err != nil {
		fmt.Fprintf(that.out, "Could not load %s: %v\n", target, err)
		return err
	}

	return nil
}

func (that *Driver) play(ctx context.Context) error {
	game := that.manager.Game()

	for !game.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		RenderBoard(that.out, game)
		fmt.Fprintf(that.out, "%s to move\n", playerName(game.Turn))

		if moves := game.ValidMoves(); len(moves) > 0 {
			fmt.Fprintf(that.out, "Legal moves: %s\n", formatMoves(moves))
		} else {
			fmt.Fprintf(that.out, "%s has no legal move.\n", playerName(game.Turn))
		}

		row, col, err := that.readMove()
		switch {
		case errors.Is(err, errQuit), errors.Is(err, apperror.ErrInputClosed):
			fmt.Fprintln(that.out, "Leaving the game.")
			return nil
		case errors.Is(err, errInvalidNumber), errors.Is(err, errOutOfRange):
			fmt.Fprintf(that.out, "Error: %v\n", err)
			continue
		case err != nil:
			return err
		}

		ok, err := that.manager.MakeMove(ctx, row, col)
		if err != nil {
			if errors.Is(err, apperror.ErrGameFinished) {
				break
			}
			return err
		}

		if ok {
			fmt.Fprintln(that.out, "Valid move!")
		} else {
			fmt.Fprintln(that.out, "Invalid move, try again.")
		}
	}

	RenderBoard(that.out, game)
	RenderSummary(that.out, game)

	return nil
}

func (that *Driver) readMove() (int, int, error) {
	row, err := that.readCoordinate("Row (0-7): ")
	if err != nil {
		return 0, 0, err
	}

	col, err := that.readCoordinate("Column (0-7): ")
	if err != nil {
		return 0, 0, err
	}

	return row, col, nil
}

func (that *Driver) readCoordinate(label string) (int, error) {
	answer, err := that.prompt(label)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInvalidNumber, answer)
	}

	if n < 0 || n >= entity.BoardSize {
		return 0, errOutOfRange
	}

	return n, nil
}

func (that *Driver) prompt(label string) (string, error) {
	fmt.Fprint(that.out, label)

	if !that.in.Scan() {
		fmt.Fprintln(that.out)
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", apperror.ErrInputClosed
	}

	answer := strings.TrimSpace(that.in.Text())
	switch strings.ToLower(answer) {
	case "q", "quit":
		return answer, errQuit
	}

	return answer, nil
}
