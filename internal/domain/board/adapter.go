package board

import (
	"context"
	"errors"
)

// Adapter persists board snapshots for one session.
//
// Load is called once per session establishment and returns the raw persisted
// document for the normalizer; it reports ErrNotFound when no document exists
// yet (a brand-new identity). Save is called after every successful store
// mutation. Neither call is transactional; concurrent writers are not
// coordinated and the last completed Save wins.
type Adapter interface {
	Load(ctx context.Context) (map[string]any, error)
	Save(ctx context.Context, boards []Board, activeBoardID string) error
}

var (
	// ErrNotFound is returned when no persisted document exists for the session
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when the backing store cannot be reached
	ErrUnavailable = errors.New("store unavailable")
)
