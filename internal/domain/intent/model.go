package intent

import "github.com/taskdeck/taskdeck/internal/domain/board"

// ActionType tags the structured actions emitted by the AI layer.
type ActionType string

const (
	ActionUpdateStatus   ActionType = "updateStatus"
	ActionUpdatePriority ActionType = "updatePriority"
	ActionCreateTask     ActionType = "createTask"
	ActionDeleteTask     ActionType = "deleteTask"
)

// TaskDetails carries creation fields for createTask actions.
type TaskDetails struct {
	Content     string         `json:"content"`
	Priority    board.Priority `json:"priority,omitempty"`
	Deadline    string         `json:"deadline,omitempty"`
	Description string         `json:"description,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
}

// Action is the tagged-union intent consumed from the AI layer. Unknown
// types must be tolerated, never panicked on.
type Action struct {
	Type           ActionType   `json:"type"`
	TaskIdentifier string       `json:"taskIdentifier,omitempty"`
	TargetValue    string       `json:"targetValue,omitempty"`
	Details        *TaskDetails `json:"taskDetails,omitempty"`
}

// OutcomeCode classifies resolution results. All are recoverable-by-user
// conditions the chat layer phrases into a message; none are errors.
type OutcomeCode string

const (
	OutcomeApplied              OutcomeCode = "applied"
	OutcomeNoActiveBoard        OutcomeCode = "no_active_board"
	OutcomeNoColumnsAvailable   OutcomeCode = "no_columns_available"
	OutcomeTargetColumnNotFound OutcomeCode = "target_column_not_found"
	OutcomeTaskNotFound         OutcomeCode = "task_not_found"
	OutcomeAmbiguousTask        OutcomeCode = "ambiguous_task"
	OutcomeInvalidPriority      OutcomeCode = "invalid_priority"
	OutcomeUnsupportedAction    OutcomeCode = "unsupported_action"
)

// Outcome is the typed result of resolving an action.
type Outcome struct {
	Code OutcomeCode `json:"code"`
	// Task is the affected task for applied outcomes.
	Task *board.Task `json:"task,omitempty"`
	// Identifier echoes the original task identifier for not-found and
	// ambiguous outcomes, for user-facing messaging.
	Identifier string `json:"identifier,omitempty"`
	// ValidColumns lists the board's column titles when the target column
	// was not found, so the caller can surface the choices.
	ValidColumns []string `json:"validColumns,omitempty"`
	// MatchCount is the number of candidate tasks for ambiguous outcomes.
	MatchCount int `json:"matchCount,omitempty"`
}

func applied(t board.Task) Outcome {
	return Outcome{Code: OutcomeApplied, Task: &t}
}
