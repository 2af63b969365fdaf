package repository

import (
	"github.com/taskdeck/taskdeck/internal/domain/board"
)

var (
	// ErrNotFound is returned when no persisted document exists for the session
	ErrNotFound = board.ErrNotFound

	// ErrUnavailable is returned when the backing store cannot be reached
	ErrUnavailable = board.ErrUnavailable
)
