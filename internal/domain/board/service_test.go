package board_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/domain/board"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/internal/repository/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStore loads a store as a brand-new session, which seeds the default
// board with the standard three columns.
func newTestStore(t *testing.T) (*board.Store, *mocks.Adapter) {
	t.Helper()
	adapter := &mocks.Adapter{}
	adapter.On("Load", mock.Anything).Return(nil, repository.ErrNotFound)
	adapter.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	store := board.NewStore(adapter, "user-1", discardLogger())
	require.NoError(t, store.Load(context.Background()))
	return store, adapter
}

// requireStatusInvariant checks the derived back-reference: every task's
// status equals the id of the column containing it.
func requireStatusInvariant(t *testing.T, b board.Board) {
	t.Helper()
	for _, c := range b.Columns {
		for _, task := range c.Tasks {
			require.Equal(t, c.ID, task.Status, "task %q in column %q", task.Content, c.Title)
		}
	}
}

func TestStore_Load_SeedsDefaultBoard(t *testing.T) {
	store, adapter := newTestStore(t)

	boards := store.Boards()
	require.Len(t, boards, 1)
	require.Equal(t, boards[0].ID, store.ActiveBoardID())
	require.Len(t, boards[0].Columns, 3)
	require.Equal(t, "To Do", boards[0].Columns[0].Title)

	// Seeding schedules the initial corrective write.
	store.Flush()
	adapter.AssertNumberOfCalls(t, "Save", 1)
}

func TestStore_Load_NormalizesPersistedDocument(t *testing.T) {
	adapter := &mocks.Adapter{}
	adapter.On("Load", mock.Anything).Return(map[string]any{
		"boards": []any{
			map[string]any{
				"id":   "b1",
				"name": "Legacy",
				"columns": []any{
					map[string]any{"id": "c1", "title": "Todo", "tasks": []any{
						map[string]any{"id": "t1", "content": "Old task", "status": "bogus"},
					}},
				},
			},
		},
		"activeBoardId": "b1",
	}, nil)
	adapter.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	store := board.NewStore(adapter, "user-1", discardLogger())
	require.NoError(t, store.Load(context.Background()))

	active, ok := store.ActiveBoard()
	require.True(t, ok)
	require.Equal(t, "Legacy", active.Name)
	requireStatusInvariant(t, active)

	// Nothing was corrected, so no write happens on load.
	store.Flush()
	adapter.AssertNumberOfCalls(t, "Save", 0)
}

func TestStore_Load_PropagatesBackendFailure(t *testing.T) {
	adapter := &mocks.Adapter{}
	adapter.On("Load", mock.Anything).Return(nil, errors.New("connection refused"))

	store := board.NewStore(adapter, "user-1", discardLogger())
	require.Error(t, store.Load(context.Background()))
}

func TestStore_AddTask_DefaultsToFirstColumn(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.AddTask(board.TaskDraft{Content: "first"}, "")
	require.NoError(t, err)
	second, err := store.AddTask(board.TaskDraft{Content: "second"}, "")
	require.NoError(t, err)

	active, _ := store.ActiveBoard()
	inbox := active.Columns[0]
	require.Len(t, inbox.Tasks, 2)
	// Quick-add prepends: most recent first.
	require.Equal(t, second.ID, inbox.Tasks[0].ID)
	require.Equal(t, first.ID, inbox.Tasks[1].ID)
	require.Equal(t, board.PriorityMedium, inbox.Tasks[0].Priority)
	requireStatusInvariant(t, active)
}

func TestStore_AddTask_NoColumnsAvailable(t *testing.T) {
	store, _ := newTestStore(t)
	active, _ := store.ActiveBoard()
	for _, c := range active.Columns {
		require.NoError(t, store.DeleteColumn(c.ID))
	}

	_, err := store.AddTask(board.TaskDraft{Content: "orphan"}, "")
	require.ErrorIs(t, err, board.ErrNoColumnsAvailable)
}

func TestStore_AddTask_BlankContentRejected(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.AddTask(board.TaskDraft{Content: "  "}, "")
	require.ErrorIs(t, err, board.ErrInvalidInput)
}

func TestStore_MoveTask_UpdatesStatusAndPrepends(t *testing.T) {
	store, _ := newTestStore(t)
	active, _ := store.ActiveBoard()
	todo, progress := active.Columns[0], active.Columns[1]

	blocker, err := store.AddTask(board.TaskDraft{Content: "already here"}, progress.ID)
	require.NoError(t, err)
	task, err := store.AddTask(board.TaskDraft{Content: "moving"}, todo.ID)
	require.NoError(t, err)

	result, err := store.MoveTask(task.ID, todo.ID, progress.ID, false)
	require.NoError(t, err)
	require.Equal(t, progress.ID, result.Task.Status)
	require.False(t, result.Automated)

	active, _ = store.ActiveBoard()
	dest, _ := active.FindColumn(progress.ID)
	require.Len(t, dest.Tasks, 2)
	require.Equal(t, task.ID, dest.Tasks[0].ID, "moved task is prepended")
	require.Equal(t, blocker.ID, dest.Tasks[1].ID)

	src, _ := active.FindColumn(todo.ID)
	require.Empty(t, src.Tasks)
	requireStatusInvariant(t, active)
}

func TestStore_MoveTask_Automation(t *testing.T) {
	store, _ := newTestStore(t)
	active, _ := store.ActiveBoard()
	todo := active.Columns[0]
	done, ok := active.FindColumnByTitle("done")
	require.True(t, ok)

	task, err := store.AddTask(board.TaskDraft{Content: "with checklist"}, todo.ID)
	require.NoError(t, err)
	_, err = store.AddChecklistItem(task.ID, "step one")
	require.NoError(t, err)
	_, err = store.AddChecklistItem(task.ID, "step two")
	require.NoError(t, err)

	result, err := store.MoveTask(task.ID, todo.ID, done.ID, true)
	require.NoError(t, err)
	require.True(t, result.Automated)
	for _, item := range result.Task.Checklist {
		require.True(t, item.Completed)
	}
}

func TestStore_MoveTask_NoAutomationWithoutFlag(t *testing.T) {
	store, _ := newTestStore(t)
	active, _ := store.ActiveBoard()
	todo := active.Columns[0]
	done, _ := active.FindColumnByTitle("done")

	task, _ := store.AddTask(board.TaskDraft{Content: "manual"}, todo.ID)
	_, err := store.AddChecklistItem(task.ID, "still open")
	require.NoError(t, err)

	result, err := store.MoveTask(task.ID, todo.ID, done.ID, false)
	require.NoError(t, err)
	require.False(t, result.Automated)
	for _, item := range result.Task.Checklist {
		require.False(t, item.Completed)
	}
}

func TestStore_MoveTask_NoAutomationOutsideDone(t *testing.T) {
	store, _ := newTestStore(t)
	active, _ := store.ActiveBoard()
	todo, progress := active.Columns[0], active.Columns[1]

	task, _ := store.AddTask(board.TaskDraft{Content: "wip"}, todo.ID)
	_, err := store.AddChecklistItem(task.ID, "item")
	require.NoError(t, err)

	result, err := store.MoveTask(task.ID, todo.ID, progress.ID, true)
	require.NoError(t, err)
	require.False(t, result.Automated)
	require.False(t, result.Task.Checklist[0].Completed)
}

func TestStore_MoveTask_MissingTask(t *testing.T) {
	store, _ := newTestStore(t)
	active, _ := store.ActiveBoard()

	_, err := store.MoveTask("nope", active.Columns[0].ID, active.Columns[1].ID, false)
	require.ErrorIs(t, err, board.ErrTaskNotFound)

	_, err = store.MoveTask("nope", "missing-column", active.Columns[1].ID, false)
	require.ErrorIs(t, err, board.ErrColumnNotFound)
}

func TestStore_DeleteColumn_CascadesTasks(t *testing.T) {
	store, _ := newTestStore(t)
	active, _ := store.ActiveBoard()
	todo := active.Columns[0]

	task, _ := store.AddTask(board.TaskDraft{Content: "doomed"}, todo.ID)
	require.NoError(t, store.DeleteColumn(todo.ID))

	active, _ = store.ActiveBoard()
	require.Len(t, active.Columns, 2)
	_, _, found := active.FindTask(task.ID)
	require.False(t, found)
}

func TestStore_UpdateTask_PatchesInPlace(t *testing.T) {
	store, _ := newTestStore(t)
	active, _ := store.ActiveBoard()
	todo := active.Columns[0]

	older, _ := store.AddTask(board.TaskDraft{Content: "older"}, todo.ID)
	_, _ = store.AddTask(board.TaskDraft{Content: "newer"}, todo.ID)

	content := "older, renamed"
	priority := board.PriorityHigh
	updated, err := store.UpdateTask(board.TaskPatch{
		ID:       older.ID,
		Content:  &content,
		Priority: &priority,
		Tags:     []string{"urgent"},
	})
	require.NoError(t, err)
	require.Equal(t, content, updated.Content)
	require.Equal(t, board.PriorityHigh, updated.Priority)

	active, _ = store.ActiveBoard()
	column, _ := active.FindColumn(todo.ID)
	// Update preserves position: the older task stays at index 1.
	require.Equal(t, older.ID, column.Tasks[1].ID)
	require.Equal(t, content, column.Tasks[1].Content)
	requireStatusInvariant(t, active)
}

func TestStore_UpdateTask_InvalidPriority(t *testing.T) {
	store, _ := newTestStore(t)
	task, _ := store.AddTask(board.TaskDraft{Content: "x"}, "")

	bad := board.Priority("urgent")
	_, err := store.UpdateTask(board.TaskPatch{ID: task.ID, Priority: &bad})
	require.ErrorIs(t, err, board.ErrInvalidInput)
}

func TestStore_ChecklistCRUD(t *testing.T) {
	store, _ := newTestStore(t)
	task, _ := store.AddTask(board.TaskDraft{Content: "with list"}, "")

	item, err := store.AddChecklistItem(task.ID, "write tests")
	require.NoError(t, err)
	require.False(t, item.Completed)

	require.NoError(t, store.ToggleChecklistItem(task.ID, item.ID))
	require.NoError(t, store.UpdateChecklistItem(task.ID, item.ID, "write more tests"))

	active, _ := store.ActiveBoard()
	current, _, _ := active.FindTask(task.ID)
	require.Len(t, current.Checklist, 1)
	require.True(t, current.Checklist[0].Completed)
	require.Equal(t, "write more tests", current.Checklist[0].Text)

	require.NoError(t, store.DeleteChecklistItem(task.ID, item.ID))
	require.ErrorIs(t, store.ToggleChecklistItem(task.ID, item.ID), board.ErrChecklistItemNotFound)
}

func TestStore_DeleteBoard_ActiveFallsBack(t *testing.T) {
	store, _ := newTestStore(t)
	original := store.ActiveBoardID()

	second := store.AddBoard("Second")
	require.Equal(t, second.ID, store.ActiveBoardID())

	store.DeleteBoard(second.ID)
	require.Equal(t, original, store.ActiveBoardID())

	// Unknown id is a no-op.
	store.DeleteBoard("ghost")
	require.Len(t, store.Boards(), 1)
}

func TestStore_NoActiveBoard(t *testing.T) {
	store, _ := newTestStore(t)
	store.DeleteBoard(store.ActiveBoardID())
	require.Empty(t, store.ActiveBoardID())

	_, err := store.AddTask(board.TaskDraft{Content: "homeless"}, "")
	require.ErrorIs(t, err, board.ErrNoActiveBoard)

	_, err = store.AddColumn("Anywhere")
	require.ErrorIs(t, err, board.ErrNoActiveBoard)
}

func TestStore_MutationsPersistSnapshots(t *testing.T) {
	store, adapter := newTestStore(t)

	_, err := store.AddTask(board.TaskDraft{Content: "persisted"}, "")
	require.NoError(t, err)
	store.Flush()

	// Seed write plus one mutation write.
	adapter.AssertNumberOfCalls(t, "Save", 2)

	// Saves run on background goroutines, so scan for the mutation write
	// rather than assuming recording order.
	var found bool
	for _, call := range adapter.Calls {
		if call.Method != "Save" {
			continue
		}
		boards := call.Arguments.Get(1).([]board.Board)
		if len(boards) == 1 && len(boards[0].Columns[0].Tasks) == 1 {
			require.Equal(t, "persisted", boards[0].Columns[0].Tasks[0].Content)
			require.Equal(t, store.ActiveBoardID(), call.Arguments.String(2))
			found = true
		}
	}
	require.True(t, found, "expected a save carrying the new task")
}

func TestStore_SaveFailureIsSwallowed(t *testing.T) {
	adapter := &mocks.Adapter{}
	adapter.On("Load", mock.Anything).Return(nil, repository.ErrNotFound)
	adapter.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	store := board.NewStore(adapter, "user-1", discardLogger())
	require.NoError(t, store.Load(context.Background()))

	// The in-memory state stays authoritative for the session.
	task, err := store.AddTask(board.TaskDraft{Content: "kept"}, "")
	require.NoError(t, err)
	store.Flush()

	active, _ := store.ActiveBoard()
	_, _, found := active.FindTask(task.ID)
	require.True(t, found)
}

func TestStore_SnapshotsDoNotAlias(t *testing.T) {
	store, _ := newTestStore(t)
	task, _ := store.AddTask(board.TaskDraft{Content: "original"}, "")

	snapshot, _ := store.ActiveBoard()
	snapshot.Columns[0].Tasks[0].Content = "tampered"
	snapshot.Columns[0].Title = "tampered"

	active, _ := store.ActiveBoard()
	current, _, _ := active.FindTask(task.ID)
	require.Equal(t, "original", current.Content)
	require.Equal(t, "To Do", active.Columns[0].Title)
}

func TestStore_SwitchSession_ReplacesState(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.AddTask(board.TaskDraft{Content: "guest task"}, "")
	require.NoError(t, err)

	remote := &mocks.Adapter{}
	remote.On("Load", mock.Anything).Return(map[string]any{
		"boards": []any{
			map[string]any{"id": "acct-board", "name": "Account Board", "columns": []any{
				map[string]any{"id": "c1", "title": "Inbox"},
			}},
		},
		"activeBoardId": "acct-board",
	}, nil)
	remote.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, store.SwitchSession(context.Background(), remote, "user-42"))
	require.Equal(t, "user-42", store.Identity())

	boards := store.Boards()
	require.Len(t, boards, 1)
	require.Equal(t, "Account Board", boards[0].Name)
	require.Equal(t, "acct-board", store.ActiveBoardID())
}

func TestStore_UpdateTheme(t *testing.T) {
	store, _ := newTestStore(t)
	id := store.ActiveBoardID()

	require.NoError(t, store.UpdateTheme(id, board.Theme{"background": "#000"}))
	active, _ := store.ActiveBoard()
	require.Equal(t, "#000", active.Theme["background"])

	require.NoError(t, store.UpdateTheme(id, nil))
	active, _ = store.ActiveBoard()
	require.Nil(t, active.Theme)
}

func TestStore_RenameOperations(t *testing.T) {
	store, _ := newTestStore(t)
	id := store.ActiveBoardID()

	require.NoError(t, store.RenameBoard(id, "Renamed"))
	require.ErrorIs(t, store.RenameBoard(id, " "), board.ErrInvalidInput)

	active, _ := store.ActiveBoard()
	require.Equal(t, "Renamed", active.Name)

	col := active.Columns[0]
	require.NoError(t, store.RenameColumn(col.ID, "Backlog"))
	require.ErrorIs(t, store.RenameColumn("ghost", "X"), board.ErrColumnNotFound)

	active, _ = store.ActiveBoard()
	require.Equal(t, "Backlog", active.Columns[0].Title)
}
