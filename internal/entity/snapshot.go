package entity

import (
	"errors"
	"fmt"
	"time"
)

// SnapshotVersion is bumped whenever the persisted layout changes.
const SnapshotVersion = 1

const (
	symbolEmpty = '.'
	symbolBlack = 'B'
	symbolWhite = 'W'
)

var (
	ErrUnknownPlayer       = errors.New("unknown player")
	ErrUnsupportedSnapshot = errors.New("unsupported snapshot version")
	ErrMalformedBoard      = errors.New("malformed board")
)

// Snapshot is the persisted form of a Game, independent of the in-memory board layout.
type Snapshot struct {
	Version    int               `json:"version"`
	ID         string            `json:"id"`
	Board      [BoardSize]string `json:"board"`
	Turn       string            `json:"turn"`
	SaveTarget string            `json:"save_target,omitempty"`
	SavedAt    time.Time         `json:"saved_at"`
}

func (that *Game) Snapshot() *Snapshot {
	snapshot := &Snapshot{
		Version:    SnapshotVersion,
		ID:         that.ID,
		Turn:       that.Turn.String(),
		SaveTarget: that.SaveTarget,
		SavedAt:    time.Now().UTC(),
	}

	for i, row := range that.Board {
		line := make([]byte, BoardSize)
		for j, cell := range row {
			switch cell {
			case Black:
				line[j] = symbolBlack
			case White:
				line[j] = symbolWhite
			default:
				line[j] = symbolEmpty
			}
		}
		snapshot.Board[i] = string(line)
	}

	return snapshot
}

// FromSnapshot validates a snapshot and rebuilds the game it describes.
func FromSnapshot(snapshot *Snapshot) (*Game, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrMalformedBoard)
	}

	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSnapshot, snapshot.Version)
	}

	game := &Game{
		ID:         snapshot.ID,
		SaveTarget: snapshot.SaveTarget,
	}

	switch snapshot.Turn {
	case Black.String():
		game.Turn = Black
	case White.String():
		game.Turn = White
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, snapshot.Turn)
	}

	for i, line := range snapshot.Board {
		if len(line) != BoardSize {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrMalformedBoard, i, len(line))
		}

		for j := range BoardSize {
			switch line[j] {
			case symbolEmpty:
				game.Board[i][j] = Empty
			case symbolBlack:
				game.Board[i][j] = Black
			case symbolWhite:
				game.Board[i][j] = White
			default:
				return nil, fmt.Errorf("%w: unexpected %q at (%d,%d)", ErrMalformedBoard, line[j], i, j)
			}
		}
	}

	return game, nil
}
