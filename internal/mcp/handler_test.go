package mcp_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/domain/board"
	"github.com/taskdeck/taskdeck/internal/domain/intent"
	"github.com/taskdeck/taskdeck/internal/mcp"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/internal/repository/mocks"
)

func newTestHandler(t *testing.T) (*mcp.Handler, *board.Store) {
	t.Helper()
	adapter := &mocks.Adapter{}
	adapter.On("Load", mock.Anything).Return(nil, repository.ErrNotFound)
	adapter.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := board.NewStore(adapter, "user-1", logger)
	require.NoError(t, store.Load(context.Background()))

	resolver := intent.NewResolver(store, logger)
	return mcp.NewHandler(store, resolver, logger), store
}

func requireAPIErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*mcp.APIError)
	require.True(t, ok, "expected *mcp.APIError, got %T", err)
	require.Equal(t, code, apiErr.Code)
	require.NotEmpty(t, apiErr.RecoveryHint)
}

func TestHandler_GetBoard(t *testing.T) {
	h, store := newTestHandler(t)
	ctx := context.Background()

	_, out, err := h.GetBoard(ctx, nil, mcp.EmptyParams{})
	require.NoError(t, err)
	require.NotNil(t, out.Board)
	require.Equal(t, store.ActiveBoardID(), out.Board.ID)
	require.Len(t, out.Board.Columns, 3)

	// With no boards left the snapshot is empty, not an error.
	store.DeleteBoard(store.ActiveBoardID())
	_, out, err = h.GetBoard(ctx, nil, mcp.EmptyParams{})
	require.NoError(t, err)
	require.Nil(t, out.Board)
}

func TestHandler_ListBoards(t *testing.T) {
	h, store := newTestHandler(t)
	ctx := context.Background()

	second := store.AddBoard("Second")
	_, err := store.AddTask(board.TaskDraft{Content: "counted"}, "")
	require.NoError(t, err)

	_, out, err := h.ListBoards(ctx, nil, mcp.EmptyParams{})
	require.NoError(t, err)
	require.Len(t, out.Boards, 2)
	require.Equal(t, second.ID, out.ActiveBoardID)

	for _, summary := range out.Boards {
		if summary.ID == second.ID {
			require.True(t, summary.Active)
			require.Equal(t, 1, summary.Tasks)
		} else {
			require.False(t, summary.Active)
		}
	}
}

func TestHandler_BoardLifecycle(t *testing.T) {
	h, store := newTestHandler(t)
	ctx := context.Background()

	_, created, err := h.CreateBoard(ctx, nil, mcp.CreateBoardParams{Name: "Sprint 12"})
	require.NoError(t, err)
	require.Equal(t, "Sprint 12", created.Name)
	require.Equal(t, created.ID, store.ActiveBoardID())

	_, _, err = h.RenameBoard(ctx, nil, mcp.RenameBoardParams{ID: created.ID, Name: "Sprint 13"})
	require.NoError(t, err)

	_, _, err = h.SetActiveBoard(ctx, nil, mcp.BoardIDParams{ID: "ghost"})
	requireAPIErrorCode(t, err, "BOARD_NOT_FOUND")

	_, ack, err := h.DeleteBoard(ctx, nil, mcp.BoardIDParams{ID: created.ID})
	require.NoError(t, err)
	require.True(t, ack.OK)
	require.Len(t, store.Boards(), 1)
}

func TestHandler_ColumnErrors(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	_, _, err := h.DeleteColumn(ctx, nil, mcp.ColumnIDParams{ID: "ghost"})
	requireAPIErrorCode(t, err, "COLUMN_NOT_FOUND")

	_, _, err = h.RenameColumn(ctx, nil, mcp.RenameColumnParams{ID: "ghost", Title: "X"})
	requireAPIErrorCode(t, err, "COLUMN_NOT_FOUND")

	_, _, err = h.AddColumn(ctx, nil, mcp.AddColumnParams{Title: " "})
	requireAPIErrorCode(t, err, "INVALID_INPUT")
}

func TestHandler_TaskLifecycle(t *testing.T) {
	h, store := newTestHandler(t)
	ctx := context.Background()

	_, task, err := h.AddTask(ctx, nil, mcp.AddTaskParams{Content: "Wire tests", Priority: "high"})
	require.NoError(t, err)
	require.Equal(t, board.PriorityHigh, task.Priority)

	active, _ := store.ActiveBoard()
	from := active.Columns[0]
	to := active.Columns[1]

	_, moved, err := h.MoveTask(ctx, nil, mcp.MoveTaskParams{
		TaskID:       task.ID,
		FromColumnID: from.ID,
		ToColumnID:   to.ID,
	})
	require.NoError(t, err)
	require.Equal(t, to.ID, moved.Task.Status)

	content := "Wire more tests"
	_, updated, err := h.UpdateTask(ctx, nil, mcp.UpdateTaskParams{ID: task.ID, Content: &content})
	require.NoError(t, err)
	require.Equal(t, content, updated.Content)

	_, _, err = h.DeleteTask(ctx, nil, mcp.DeleteTaskParams{TaskID: "ghost", ColumnID: to.ID})
	requireAPIErrorCode(t, err, "TASK_NOT_FOUND")

	_, ack, err := h.DeleteTask(ctx, nil, mcp.DeleteTaskParams{TaskID: task.ID, ColumnID: to.ID})
	require.NoError(t, err)
	require.True(t, ack.OK)
}

func TestHandler_Checklist(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	_, task, err := h.AddTask(ctx, nil, mcp.AddTaskParams{Content: "with list"})
	require.NoError(t, err)

	_, item, err := h.AddChecklistItem(ctx, nil, mcp.AddChecklistItemParams{TaskID: task.ID, Text: "step"})
	require.NoError(t, err)

	_, _, err = h.ToggleChecklistItem(ctx, nil, mcp.ChecklistItemParams{TaskID: task.ID, ItemID: item.ID})
	require.NoError(t, err)

	_, _, err = h.UpdateChecklistItem(ctx, nil, mcp.UpdateChecklistItemParams{TaskID: task.ID, ItemID: item.ID, Text: "step renamed"})
	require.NoError(t, err)

	_, _, err = h.DeleteChecklistItem(ctx, nil, mcp.ChecklistItemParams{TaskID: task.ID, ItemID: "ghost"})
	requireAPIErrorCode(t, err, "CHECKLIST_ITEM_NOT_FOUND")

	_, ack, err := h.DeleteChecklistItem(ctx, nil, mcp.ChecklistItemParams{TaskID: task.ID, ItemID: item.ID})
	require.NoError(t, err)
	require.True(t, ack.OK)
}

func TestHandler_ApplyAction_NeverFails(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	_, _, err := h.AddTask(ctx, nil, mcp.AddTaskParams{Content: "Design UI"})
	require.NoError(t, err)

	_, outcome, err := h.ApplyAction(ctx, nil, mcp.ApplyActionParams{
		Type:           "updateStatus",
		TaskIdentifier: "Design UI",
		TargetValue:    "Done",
	})
	require.NoError(t, err)
	require.Equal(t, intent.OutcomeApplied, outcome.Code)

	// Unknown targets come back as outcomes, not tool errors.
	_, outcome, err = h.ApplyAction(ctx, nil, mcp.ApplyActionParams{
		Type:           "updateStatus",
		TaskIdentifier: "Design UI",
		TargetValue:    "Archive",
	})
	require.NoError(t, err)
	require.Equal(t, intent.OutcomeTargetColumnNotFound, outcome.Code)
	require.NotEmpty(t, outcome.ValidColumns)

	_, outcome, err = h.ApplyAction(ctx, nil, mcp.ApplyActionParams{Type: "explodeBoard"})
	require.NoError(t, err)
	require.Equal(t, intent.OutcomeUnsupportedAction, outcome.Code)
}
