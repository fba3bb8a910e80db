package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/reversi/internal/entity"
)

const (
	gameKeyPrefix = "game:"
	gamesSetKey   = "games"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrEmptyTarget  = errors.New("save target is empty")
	ErrCorruptSave  = errors.New("corrupt save")
)

// GameRepository persists game snapshots under a save target.
type GameRepository interface {
	Save(ctx context.Context, snapshot *entity.Snapshot) error
	Load(ctx context.Context, target string) (*entity.Snapshot, error)
	List(ctx context.Context) ([]string, error)
	// Target maps a save name to the identifier this backend stores it under.
	Target(name string) string
}

func encodeSnapshot(snapshot *entity.Snapshot) ([]byte, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrCorruptSave)
	}

	if snapshot.SaveTarget == "" {
		return nil, ErrEmptyTarget
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	return data, nil
}

// decodeSnapshot parses a stored snapshot and pins it to the target it was read from.
func decodeSnapshot(data []byte, target string) (*entity.Snapshot, error) {
	var snapshot entity.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptSave, target, err)
	}

	snapshot.SaveTarget = target

	return &snapshot, nil
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func (that *dbGame) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	gameJSON, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, gameKeyPrefix+snapshot.SaveTarget, gameJSON, 0)
		pipe.SAdd(ctx, gamesSetKey, snapshot.SaveTarget)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) Load(ctx context.Context, target string) (*entity.Snapshot, error) {
	if target == "" {
		return nil, ErrEmptyTarget
	}

	response, err := that.client.Get(ctx, gameKeyPrefix+target).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return decodeSnapshot(response, target)
}

func (that *dbGame) List(ctx context.Context) ([]string, error) {
	targets, err := that.client.SMembers(ctx, gamesSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	sort.Strings(targets)

	return targets, nil
}

func (that *dbGame) Target(name string) string {
	return name
}
