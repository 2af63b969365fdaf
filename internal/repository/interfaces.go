package repository

import (
	"github.com/taskdeck/taskdeck/internal/domain/board"
)

// Adapter persists board snapshots for one session.
//
// It is defined in the board package (which depends on it) and aliased here
// so adapter implementations and wiring keep referring to repository.Adapter.
type Adapter = board.Adapter
