package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain/board"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// Guest-session storage keys: a serialized board list under one key and the
// active-board id under a second, both JSON-encoded.
const (
	boardsKey      = "boards"
	activeBoardKey = "activeBoardId"
)

// Adapter implements repository.Adapter for anonymous guest sessions backed
// by local, single-device SQLite. Data does not survive a switch to an
// authenticated session; there is no migration path.
type Adapter struct {
	db *DB
}

// NewAdapter creates a local persistence adapter.
func NewAdapter(db *DB) *Adapter {
	return &Adapter{db: db}
}

// Load reads the stored document. A session that never saved reports
// repository.ErrNotFound. Corrupt values are passed through loosely typed;
// the normalizer owns degradation.
func (a *Adapter) Load(ctx context.Context) (map[string]any, error) {
	boardsJSON, err := a.get(ctx, boardsKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load boards: %w", err)
	}

	var boards any
	// Undecodable stored JSON degrades to an absent field.
	_ = json.Unmarshal([]byte(boardsJSON), &boards)

	doc := map[string]any{boardsKey: boards}

	activeJSON, err := a.get(ctx, activeBoardKey)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to load active board id: %w", err)
	}
	if err == nil {
		var active string
		if json.Unmarshal([]byte(activeJSON), &active) == nil {
			doc[activeBoardKey] = active
		}
	}

	return doc, nil
}

// Save upserts both keys. No transaction: last writer wins, matching the
// store's coordination model.
func (a *Adapter) Save(ctx context.Context, boards []board.Board, activeBoardID string) error {
	boardsJSON, err := json.Marshal(boards)
	if err != nil {
		return fmt.Errorf("failed to encode boards: %w", err)
	}
	activeJSON, err := json.Marshal(activeBoardID)
	if err != nil {
		return fmt.Errorf("failed to encode active board id: %w", err)
	}

	if err := a.set(ctx, boardsKey, string(boardsJSON)); err != nil {
		return fmt.Errorf("failed to save boards: %w", err)
	}
	if err := a.set(ctx, activeBoardKey, string(activeJSON)); err != nil {
		return fmt.Errorf("failed to save active board id: %w", err)
	}
	return nil
}

func (a *Adapter) get(ctx context.Context, key string) (string, error) {
	var value string
	err := a.db.QueryRowContext(ctx, `SELECT value FROM session_state WHERE key = ?`, key).Scan(&value)
	return value, err
}

func (a *Adapter) set(ctx context.Context, key, value string) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO session_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now())
	return err
}
