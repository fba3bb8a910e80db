package entity

import (
	"fmt"

	"github.com/rocketscienceinc/reversi/internal/apperror"
)

const BoardSize = 8

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Cell is the content of a single board square. Black and White double as player colors.
type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

func (that Cell) String() string {
	switch that {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// Opponent returns the other color. Empty has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

type Winner string

const (
	WinnerBlack Winner = "black"
	WinnerWhite Winner = "white"
	WinnerDraw  Winner = "draw"
)

type Board [BoardSize][BoardSize]Cell

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// directions lists the eight rays checked around a candidate square.
var directions = [8]Position{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// Game is the board engine: the board, whose turn it is and where the game is saved.
// It never touches storage itself.
type Game struct {
	ID         string
	Board      Board
	Turn       Cell
	SaveTarget string
}

func NewGame(id, saveTarget string) *Game {
	game := &Game{
		ID:         id,
		Turn:       Black,
		SaveTarget: saveTarget,
	}

	game.Board[3][3] = White
	game.Board[3][4] = Black
	game.Board[4][3] = Black
	game.Board[4][4] = White

	return game
}

func inBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// Cell returns the content at (row, col), or Empty when off the board.
func (that *Game) Cell(row, col int) Cell {
	if !inBounds(row, col) {
		return Empty
	}

	return that.Board[row][col]
}

// brackets reports whether playing at (row, col) flanks at least one opponent stone along dir.
// The terminating own stone must sit beyond the adjacent square.
func (that *Game) brackets(row, col int, dir Position) bool {
	opponent := that.Turn.Opponent()

	r, c := row+dir.Row, col+dir.Col
	run := 0
	for inBounds(r, c) && that.Board[r][c] == opponent {
		r += dir.Row
		c += dir.Col
		run++
	}

	return run > 0 && inBounds(r, c) && that.Board[r][c] == that.Turn
}

func (that *Game) IsValidMove(row, col int) bool {
	if !inBounds(row, col) || that.Board[row][col] != Empty {
		return false
	}

	for _, dir := range directions {
		if that.brackets(row, col, dir) {
			return true
		}
	}

	return false
}

// MakeMove places the current player's stone, flips every bracketed run and passes the turn.
// An invalid move leaves the game untouched and returns false.
func (that *Game) MakeMove(row, col int) bool {
	if !that.IsValidMove(row, col) {
		return false
	}

	var flanking []Position
	for _, dir := range directions {
		if that.brackets(row, col, dir) {
			flanking = append(flanking, dir)
		}
	}

	that.Board[row][col] = that.Turn
	for _, dir := range flanking {
		for r, c := row+dir.Row, col+dir.Col; that.Board[r][c] != that.Turn; r, c = r+dir.Row, c+dir.Col {
			that.Board[r][c] = that.Turn
		}
	}

	that.Turn = that.Turn.Opponent()

	return true
}

// ValidMoves lists the squares the current player may play, in row-major order.
func (that *Game) ValidMoves() []Position {
	var moves []Position
	for row := range BoardSize {
		for col := range BoardSize {
			if that.IsValidMove(row, col) {
				moves = append(moves, Position{Row: row, Col: col})
			}
		}
	}

	return moves
}

// IsGameOver is true only once every square is occupied. A side without legal moves does not end the game.
func (that *Game) IsGameOver() bool {
	for _, row := range that.Board {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

func (that *Game) CountStones() (int, int) {
	var black, white int
	for _, row := range that.Board {
		for _, cell := range row {
			switch cell {
			case Black:
				black++
			case White:
				white++
			}
		}
	}

	return black, white
}

func (that *Game) Winner() Winner {
	black, white := that.CountStones()

	switch {
	case black > white:
		return WinnerBlack
	case white > black:
		return WinnerWhite
	default:
		return WinnerDraw
	}
}

func (that *Game) Status() string {
	if that.IsGameOver() {
		return StatusFinished
	}

	return StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status() == StatusFinished
}

// ConfirmOngoingState returns an error once the game has reached its terminal state.
func (that *Game) ConfirmOngoingState() error {
	switch that.Turn {
	case Black, White:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, that.Turn)
	}

	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	return nil
}

func (that *Game) Clone() *Game {
	clone := *that
	return &clone
}
