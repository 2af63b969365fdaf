package mcp

import (
	"errors"
	"fmt"

	"github.com/taskdeck/taskdeck/internal/domain/board"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps board-store errors to MCP error codes. Unknown errors pass
// through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, board.ErrNoActiveBoard):
		return &APIError{Code: "NO_ACTIVE_BOARD", Message: "no active board", RecoveryHint: "Create or select a board first"}
	case errors.Is(err, board.ErrNoColumnsAvailable):
		return &APIError{Code: "NO_COLUMNS_AVAILABLE", Message: "the board has no columns", RecoveryHint: "Add a column first"}
	case errors.Is(err, board.ErrBoardNotFound):
		return &APIError{Code: "BOARD_NOT_FOUND", Message: "board not found", RecoveryHint: "List boards to check the id"}
	case errors.Is(err, board.ErrColumnNotFound):
		return &APIError{Code: "COLUMN_NOT_FOUND", Message: "column not found", RecoveryHint: "Check the column id"}
	case errors.Is(err, board.ErrTaskNotFound):
		return &APIError{Code: "TASK_NOT_FOUND", Message: "task not found", RecoveryHint: "Check the task id and column"}
	case errors.Is(err, board.ErrChecklistItemNotFound):
		return &APIError{Code: "CHECKLIST_ITEM_NOT_FOUND", Message: "checklist item not found", RecoveryHint: "Check the item id"}
	case errors.Is(err, board.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid input", RecoveryHint: "Check required fields"}
	default:
		return err
	}
}
