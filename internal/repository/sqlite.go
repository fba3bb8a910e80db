package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/reversi/internal/entity"
)

type sqliteGame struct {
	conn *sql.DB
}

// NewSQLiteRepository expects the saves table created by sqlite.Storage.Init.
func NewSQLiteRepository(conn *sql.DB) GameRepository {
	return &sqliteGame{
		conn: conn,
	}
}

func (that *sqliteGame) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO saves (target, snapshot, updated_at) VALUES (?, ?, ?)`

	_, err = that.conn.ExecContext(ctx, query, snapshot.SaveTarget, string(data), snapshot.SavedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("can't save game: %w", err)
	}

	return nil
}

func (that *sqliteGame) Load(ctx context.Context, target string) (*entity.Snapshot, error) {
	if target == "" {
		return nil, ErrEmptyTarget
	}

	query := `SELECT snapshot FROM saves WHERE target = ?`

	var data string
	err := that.conn.QueryRowContext(ctx, query, target).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't load game: %w", err)
	}

	return decodeSnapshot([]byte(data), target)
}

// List returns save targets, most recently saved first.
func (that *sqliteGame) List(ctx context.Context) ([]string, error) {
	query := `SELECT target FROM saves ORDER BY updated_at DESC, target`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't list games: %w", err)
	}
	defer rows.Close()

	var targets []string
	for rows.Next() {
		var target string
		if err = rows.Scan(&target); err != nil {
			return nil, fmt.Errorf("can't scan game: %w", err)
		}
		targets = append(targets, target)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't list games: %w", err)
	}

	return targets, nil
}

func (that *sqliteGame) Target(name string) string {
	return name
}
