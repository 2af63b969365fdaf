package intent

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/taskdeck/taskdeck/internal/domain/board"
)

// Store is the board-store surface the resolver needs.
type Store interface {
	ActiveBoard() (board.Board, bool)
	AddTask(draft board.TaskDraft, columnID string) (board.Task, error)
	MoveTask(taskID, fromColumnID, toColumnID string, automate bool) (board.MoveResult, error)
	UpdateTask(patch board.TaskPatch) (board.Task, error)
	DeleteTask(taskID, columnID string) error
}

// Resolver translates AI-produced structured actions into board store calls,
// given only the currently active board as context.
type Resolver struct {
	store  Store
	logger *slog.Logger
}

// NewResolver creates a new action resolver.
func NewResolver(store Store, logger *slog.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

// Resolve locates the referenced entities on the active board, validates the
// requested transition, applies it through the store, and reports a typed
// outcome. It never returns an error; every condition maps to an outcome the
// chat layer can phrase.
func (r *Resolver) Resolve(action Action) Outcome {
	active, ok := r.store.ActiveBoard()
	if !ok {
		return Outcome{Code: OutcomeNoActiveBoard}
	}

	switch action.Type {
	case ActionUpdateStatus:
		return r.updateStatus(active, action)
	case ActionUpdatePriority:
		return r.updatePriority(active, action)
	case ActionCreateTask:
		return r.createTask(action)
	case ActionDeleteTask:
		return r.deleteTask(active, action)
	default:
		r.logger.Warn("unsupported action type", "type", string(action.Type))
		return Outcome{Code: OutcomeUnsupportedAction}
	}
}

func (r *Resolver) updateStatus(active board.Board, action Action) Outcome {
	task, columnID, outcome := r.locateTask(active, action.TaskIdentifier)
	if outcome != nil {
		return *outcome
	}

	dest, ok := active.FindColumnByTitle(action.TargetValue)
	if !ok {
		return Outcome{
			Code:         OutcomeTargetColumnNotFound,
			Identifier:   action.TargetValue,
			ValidColumns: active.ColumnTitles(),
		}
	}

	// Automation is reserved for explicit drag-and-drop moves; chat-driven
	// moves never auto-complete checklists.
	result, err := r.store.MoveTask(task.ID, columnID, dest.ID, false)
	if err != nil {
		return r.outcomeFromError(err, action.TaskIdentifier)
	}
	return applied(result.Task)
}

func (r *Resolver) updatePriority(active board.Board, action Action) Outcome {
	priority := board.Priority(strings.ToLower(action.TargetValue))
	if !priority.Valid() {
		return Outcome{Code: OutcomeInvalidPriority, Identifier: action.TargetValue}
	}

	task, _, outcome := r.locateTask(active, action.TaskIdentifier)
	if outcome != nil {
		return *outcome
	}

	updated, err := r.store.UpdateTask(board.TaskPatch{ID: task.ID, Priority: &priority})
	if err != nil {
		return r.outcomeFromError(err, action.TaskIdentifier)
	}
	return applied(updated)
}

func (r *Resolver) createTask(action Action) Outcome {
	details := action.Details
	if details == nil {
		details = &TaskDetails{Content: action.TaskIdentifier}
	}
	draft := board.TaskDraft{
		Content:     details.Content,
		Priority:    details.Priority,
		Deadline:    details.Deadline,
		Description: details.Description,
		Tags:        details.Tags,
	}
	if draft.Priority == "" {
		draft.Priority = board.PriorityMedium
	}

	// Always targets the first column; AddTask enforces that one exists.
	created, err := r.store.AddTask(draft, "")
	if err != nil {
		return r.outcomeFromError(err, details.Content)
	}
	return applied(created)
}

func (r *Resolver) deleteTask(active board.Board, action Action) Outcome {
	task, columnID, outcome := r.locateTask(active, action.TaskIdentifier)
	if outcome != nil {
		return *outcome
	}
	if err := r.store.DeleteTask(task.ID, columnID); err != nil {
		return r.outcomeFromError(err, action.TaskIdentifier)
	}
	return applied(task)
}

// locateTask matches the identifier case-insensitively against task content
// or id, scanning all columns in order. Zero matches reports TaskNotFound;
// more than one reports AmbiguousTask so the chat layer can ask for
// clarification rather than silently acting on the first hit.
func (r *Resolver) locateTask(active board.Board, identifier string) (board.Task, string, *Outcome) {
	type match struct {
		task     board.Task
		columnID string
	}
	var matches []match
	for _, c := range active.Columns {
		for _, t := range c.Tasks {
			if strings.EqualFold(t.Content, identifier) || strings.EqualFold(t.ID, identifier) {
				matches = append(matches, match{task: t, columnID: c.ID})
			}
		}
	}

	switch len(matches) {
	case 0:
		return board.Task{}, "", &Outcome{Code: OutcomeTaskNotFound, Identifier: identifier}
	case 1:
		return matches[0].task, matches[0].columnID, nil
	default:
		return board.Task{}, "", &Outcome{
			Code:       OutcomeAmbiguousTask,
			Identifier: identifier,
			MatchCount: len(matches),
		}
	}
}

// outcomeFromError maps store errors surfaced mid-application (the board can
// change underneath between locate and apply) onto outcome codes.
func (r *Resolver) outcomeFromError(err error, identifier string) Outcome {
	switch {
	case errors.Is(err, board.ErrNoActiveBoard):
		return Outcome{Code: OutcomeNoActiveBoard}
	case errors.Is(err, board.ErrNoColumnsAvailable):
		return Outcome{Code: OutcomeNoColumnsAvailable}
	case errors.Is(err, board.ErrColumnNotFound):
		return Outcome{Code: OutcomeTargetColumnNotFound, Identifier: identifier}
	case errors.Is(err, board.ErrTaskNotFound):
		return Outcome{Code: OutcomeTaskNotFound, Identifier: identifier}
	case errors.Is(err, board.ErrInvalidInput):
		return Outcome{Code: OutcomeUnsupportedAction, Identifier: identifier}
	default:
		r.logger.Error("action application failed", "error", err)
		return Outcome{Code: OutcomeUnsupportedAction}
	}
}
