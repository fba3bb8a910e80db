package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rocketscienceinc/reversi/internal/entity"
	"github.com/rocketscienceinc/reversi/internal/repository/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepository(t *testing.T) GameRepository {
	t.Helper()

	st, err := sqlite.New(filepath.Join(t.TempDir(), "db", "reversi.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Init(context.Background()))

	return NewSQLiteRepository(st.Connection)
}

func TestSQLiteRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	gameRepo := newSQLiteRepository(t)

	// Given: a saved game after two moves
	game := entity.NewGame("123", gameRepo.Target("match"))
	require.True(t, game.MakeMove(2, 3))
	require.True(t, game.MakeMove(2, 2))
	require.NoError(t, gameRepo.Save(ctx, game.Snapshot()))

	// When: loading it back
	snapshot, err := gameRepo.Load(ctx, "match")
	require.NoError(t, err)

	// Then: the game is identical
	restored, err := entity.FromSnapshot(snapshot)
	require.NoError(t, err)
	assert.Equal(t, game, restored)
}

func TestSQLiteRepository_Load(t *testing.T) {
	ctx := context.Background()
	gameRepo := newSQLiteRepository(t)

	t.Run("NotFound", func(t *testing.T) {
		_, err := gameRepo.Load(ctx, "absent")

		assert.Equal(t, ErrGameNotFound, err)
	})

	t.Run("EmptyTarget", func(t *testing.T) {
		_, err := gameRepo.Load(ctx, "")

		assert.ErrorIs(t, err, ErrEmptyTarget)
	})
}

func TestSQLiteRepository_List(t *testing.T) {
	ctx := context.Background()
	gameRepo := newSQLiteRepository(t)

	// Given: two saves, the second one newer, and the first saved twice
	older := entity.NewGame("1", "older").Snapshot()
	older.SavedAt = time.Unix(100, 0)
	newer := entity.NewGame("2", "newer").Snapshot()
	newer.SavedAt = time.Unix(200, 0)

	require.NoError(t, gameRepo.Save(ctx, older))
	require.NoError(t, gameRepo.Save(ctx, newer))
	require.NoError(t, gameRepo.Save(ctx, older))

	// When: listing
	targets, err := gameRepo.List(ctx)

	// Then: each target appears once, newest first
	require.NoError(t, err)
	assert.Equal(t, []string{"newer", "older"}, targets)
}
