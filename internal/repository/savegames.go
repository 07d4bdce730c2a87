package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when no savegame exists under the requested ID.
var ErrNotFound = errors.New("savegame not found")

// SaveGame is one persisted game snapshot. Blob is the engine's opaque
// snapshot format; Players and Turn are duplicated out of it so listings
// do not need to decode anything.
type SaveGame struct {
	GameID    string
	Players   []string
	Turn      int
	Blob      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveGameSummary is a listing row without the snapshot payload.
type SaveGameSummary struct {
	GameID    string
	Players   []string
	Turn      int
	UpdatedAt time.Time
}

// SaveGameRepository stores game snapshots.
type SaveGameRepository struct {
	db *DB
}

// NewSaveGameRepository creates a savegame repository.
func NewSaveGameRepository(db *DB) *SaveGameRepository {
	return &SaveGameRepository{db: db}
}

// Save upserts the snapshot for a game.
func (r *SaveGameRepository) Save(ctx context.Context, sg *SaveGame) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO savegames (game_id, players, turn, blob, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (game_id) DO UPDATE
		SET players = EXCLUDED.players,
		    turn = EXCLUDED.turn,
		    blob = EXCLUDED.blob,
		    updated_at = now()
	`, sg.GameID, sg.Players, sg.Turn, sg.Blob)
	if err != nil {
		return fmt.Errorf("failed to save game %s: %w", sg.GameID, err)
	}
	return nil
}

// Load fetches the snapshot for a game.
func (r *SaveGameRepository) Load(ctx context.Context, gameID string) (*SaveGame, error) {
	sg := &SaveGame{}
	err := r.db.pool.QueryRow(ctx, `
		SELECT game_id, players, turn, blob, created_at, updated_at
		FROM savegames
		WHERE game_id = $1
	`, gameID).Scan(&sg.GameID, &sg.Players, &sg.Turn, &sg.Blob, &sg.CreatedAt, &sg.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game %s: %w", gameID, err)
	}
	return sg, nil
}

// List returns summaries of every savegame, most recently updated first.
func (r *SaveGameRepository) List(ctx context.Context) ([]SaveGameSummary, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT game_id, players, turn, updated_at
		FROM savegames
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list savegames: %w", err)
	}
	defer rows.Close()

	var summaries []SaveGameSummary
	for rows.Next() {
		var s SaveGameSummary
		if err := rows.Scan(&s.GameID, &s.Players, &s.Turn, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan savegame row: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Delete removes a savegame.
func (r *SaveGameRepository) Delete(ctx context.Context, gameID string) error {
	tag, err := r.db.pool.Exec(ctx, `DELETE FROM savegames WHERE game_id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("failed to delete game %s: %w", gameID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
