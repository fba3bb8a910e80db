package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/reversi/internal/entity"
)

const separator = " +-+-+-+-+-+-+-+-+"

func stone(cell entity.Cell) string {
	switch cell {
	case entity.Black:
		return "●"
	case entity.White:
		return "○"
	default:
		return " "
	}
}

func playerName(cell entity.Cell) string {
	return fmt.Sprintf("%s (%s)", stone(cell), cell)
}

// RenderBoard draws the board with row and column indices.
func RenderBoard(w io.Writer, game *entity.Game) {
	var sb strings.Builder

	sb.WriteString("  0 1 2 3 4 5 6 7\n")
	sb.WriteString(separator + "\n")
	for row := range entity.BoardSize {
		cells := make([]string, entity.BoardSize)
		for col := range entity.BoardSize {
			cells[col] = stone(game.Board[row][col])
		}
		fmt.Fprintf(&sb, "%d|%s|\n", row, strings.Join(cells, "|"))
		sb.WriteString(separator + "\n")
	}

	io.WriteString(w, sb.String())
}

// RenderSummary prints the final tally and the winner.
func RenderSummary(w io.Writer, game *entity.Game) {
	black, white := game.CountStones()

	fmt.Fprintln(w, "Game over!")
	fmt.Fprintf(w, "%s: %d, %s: %d\n", playerName(entity.Black), black, playerName(entity.White), white)

	switch game.Winner() {
	case entity.WinnerBlack:
		fmt.Fprintf(w, "Winner: %s\n", playerName(entity.Black))
	case entity.WinnerWhite:
		fmt.Fprintf(w, "Winner: %s\n", playerName(entity.White))
	default:
		fmt.Fprintln(w, "Winner: draw")
	}
}

func formatMoves(moves []entity.Position) string {
	parts := make([]string, 0, len(moves))
	for _, move := range moves {
		parts = append(parts, fmt.Sprintf("(%d,%d)", move.Row, move.Col))
	}

	return strings.Join(parts, " ")
}
