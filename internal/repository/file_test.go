package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rocketscienceinc/reversi/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepository_RoundTrip(t *testing.T) {
	for _, compressed := range []bool{false, true} {
		t.Run(map[bool]string{false: "plain", true: "zstd"}[compressed], func(t *testing.T) {
			ctx := context.Background()

			// Given: a file repository and a game saved to its default target
			gameRepo, err := NewFileRepository(t.TempDir(), compressed)
			require.NoError(t, err)

			game := entity.NewGame("123", gameRepo.Target("reversi_game"))
			require.True(t, game.MakeMove(5, 4))
			require.NoError(t, gameRepo.Save(ctx, game.Snapshot()))

			// When: loading it back
			snapshot, err := gameRepo.Load(ctx, game.SaveTarget)
			require.NoError(t, err)

			// Then: board, turn and save target survive
			restored, err := entity.FromSnapshot(snapshot)
			require.NoError(t, err)
			assert.Equal(t, game, restored)
		})
	}
}

func TestFileRepository_Target(t *testing.T) {
	dir := t.TempDir()

	plain, err := NewFileRepository(dir, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "match.json"), plain.Target("match"))

	compressed, err := NewFileRepository(dir, true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "match.json.zst"), compressed.Target("match"))
}

func TestFileRepository_Save(t *testing.T) {
	t.Run("Overwrites the previous save", func(t *testing.T) {
		ctx := context.Background()
		gameRepo, err := NewFileRepository(t.TempDir(), false)
		require.NoError(t, err)

		game := entity.NewGame("123", gameRepo.Target("match"))
		require.NoError(t, gameRepo.Save(ctx, game.Snapshot()))
		require.True(t, game.MakeMove(2, 3))
		require.NoError(t, gameRepo.Save(ctx, game.Snapshot()))

		snapshot, err := gameRepo.Load(ctx, game.SaveTarget)
		require.NoError(t, err)
		assert.Equal(t, "white", snapshot.Turn)
	})

	t.Run("Compressed file is not plain JSON", func(t *testing.T) {
		ctx := context.Background()
		gameRepo, err := NewFileRepository(t.TempDir(), true)
		require.NoError(t, err)

		game := entity.NewGame("123", gameRepo.Target("match"))
		require.NoError(t, gameRepo.Save(ctx, game.Snapshot()))

		data, err := os.ReadFile(game.SaveTarget)
		require.NoError(t, err)
		assert.NotEqual(t, byte('{'), data[0])
	})

	t.Run("Rejects an empty target", func(t *testing.T) {
		gameRepo, err := NewFileRepository(t.TempDir(), false)
		require.NoError(t, err)

		err = gameRepo.Save(context.Background(), entity.NewGame("123", "").Snapshot())

		assert.ErrorIs(t, err, ErrEmptyTarget)
	})
}

func TestFileRepository_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing file", func(t *testing.T) {
		dir := t.TempDir()
		gameRepo, err := NewFileRepository(dir, false)
		require.NoError(t, err)

		_, err = gameRepo.Load(ctx, filepath.Join(dir, "absent.json"))

		assert.Equal(t, ErrGameNotFound, err)
	})

	t.Run("Empty target", func(t *testing.T) {
		gameRepo, err := NewFileRepository(t.TempDir(), false)
		require.NoError(t, err)

		_, err = gameRepo.Load(ctx, "")

		assert.ErrorIs(t, err, ErrEmptyTarget)
	})

	t.Run("Corrupt JSON", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		gameRepo, err := NewFileRepository(dir, false)
		require.NoError(t, err)

		_, err = gameRepo.Load(ctx, path)

		assert.ErrorIs(t, err, ErrCorruptSave)
	})

	t.Run("Corrupt zstd", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "broken.json.zst")
		require.NoError(t, os.WriteFile(path, []byte("not zstd at all"), 0o600))

		gameRepo, err := NewFileRepository(dir, false)
		require.NoError(t, err)

		_, err = gameRepo.Load(ctx, path)

		assert.ErrorIs(t, err, ErrCorruptSave)
	})

	t.Run("Loaded snapshot points at the file it came from", func(t *testing.T) {
		dir := t.TempDir()
		gameRepo, err := NewFileRepository(dir, false)
		require.NoError(t, err)

		original := gameRepo.Target("first")
		require.NoError(t, gameRepo.Save(ctx, entity.NewGame("1", original).Snapshot()))

		moved := filepath.Join(dir, "moved.json")
		require.NoError(t, os.Rename(original, moved))

		snapshot, err := gameRepo.Load(ctx, moved)
		require.NoError(t, err)
		assert.Equal(t, moved, snapshot.SaveTarget)
	})
}

func TestFileRepository_List(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	gameRepo, err := NewFileRepository(dir, false)
	require.NoError(t, err)

	// Given: two saves, a foreign file and a sub-directory
	require.NoError(t, gameRepo.Save(ctx, entity.NewGame("1", gameRepo.Target("b")).Snapshot()))
	require.NoError(t, gameRepo.Save(ctx, entity.NewGame("2", filepath.Join(dir, "a.json.zst")).Snapshot()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

	// When: listing
	targets, err := gameRepo.List(ctx)

	// Then: only the save files are returned, sorted
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.json.zst"), filepath.Join(dir, "b.json")}, targets)
}
