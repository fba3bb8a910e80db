package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rocketscienceinc/reversi/internal/entity"
)

const (
	jsonExt       = ".json"
	compressedExt = ".json.zst"
)

type fileGame struct {
	dir      string
	compress bool
}

// NewFileRepository stores each game as a JSON file. Targets are file paths; a target ending in
// .zst is written zstd-compressed whatever compress says, compress only picks the default extension.
func NewFileRepository(dir string, compress bool) (GameRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}

	return &fileGame{
		dir:      dir,
		compress: compress,
	}, nil
}

func (that *fileGame) Save(_ context.Context, snapshot *entity.Snapshot) error {
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	target := snapshot.SaveTarget
	if isCompressed(target) {
		if data, err = compress(data); err != nil {
			return err
		}
	}

	dir := filepath.Dir(target)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write save file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close save file: %w", err)
	}

	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to replace save file: %w", err)
	}

	return nil
}

func (that *fileGame) Load(_ context.Context, target string) (*entity.Snapshot, error) {
	if target == "" {
		return nil, ErrEmptyTarget
	}

	data, err := os.ReadFile(target)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	if isCompressed(target) {
		if data, err = decompress(data); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCorruptSave, target, err)
		}
	}

	return decodeSnapshot(data, target)
}

// List returns the save files found directly inside the save directory.
func (that *fileGame) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(that.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read save directory: %w", err)
	}

	var targets []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, jsonExt) || strings.HasSuffix(name, compressedExt) {
			targets = append(targets, filepath.Join(that.dir, name))
		}
	}

	sort.Strings(targets)

	return targets, nil
}

func (that *fileGame) Target(name string) string {
	if that.compress {
		return filepath.Join(that.dir, name+compressedExt)
	}

	return filepath.Join(that.dir, name+jsonExt)
}

func isCompressed(target string) bool {
	return strings.HasSuffix(target, ".zst")
}

func compress(data []byte) ([]byte, error) {
	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %w", err)
	}

	if _, err = compWriter.Write(data); err != nil {
		compWriter.Close()
		return nil, fmt.Errorf("failed to compress save: %w", err)
	}

	if err = compWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %w", err)
	}

	return compressed.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer compReader.Close()

	return io.ReadAll(compReader)
}
