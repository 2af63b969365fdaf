package board

import "errors"

var (
	// ErrNoActiveBoard indicates a mutation was issued with no active board.
	ErrNoActiveBoard = errors.New("no active board")
	// ErrNoColumnsAvailable indicates the board has no column to place a task in.
	ErrNoColumnsAvailable = errors.New("no columns available")
	// ErrBoardNotFound indicates the board doesn't exist.
	ErrBoardNotFound = errors.New("board not found")
	// ErrColumnNotFound indicates the column doesn't exist on the active board.
	ErrColumnNotFound = errors.New("column not found")
	// ErrTaskNotFound indicates the task doesn't exist in the expected column.
	ErrTaskNotFound = errors.New("task not found")
	// ErrChecklistItemNotFound indicates the checklist item doesn't exist on the task.
	ErrChecklistItemNotFound = errors.New("checklist item not found")
	// ErrInvalidInput indicates invalid input for a board operation.
	ErrInvalidInput = errors.New("invalid board input")
)
