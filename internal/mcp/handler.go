package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taskdeck/taskdeck/internal/domain/board"
	"github.com/taskdeck/taskdeck/internal/domain/intent"
)

// Handler exposes the board store and action resolver as MCP tool
// implementations.
type Handler struct {
	store    *board.Store
	resolver *intent.Resolver
	logger   *slog.Logger
}

// NewHandler creates a new tool handler.
func NewHandler(store *board.Store, resolver *intent.Resolver, logger *slog.Logger) *Handler {
	return &Handler{store: store, resolver: resolver, logger: logger}
}

func (h *Handler) GetBoard(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, GetBoardResult, error) {
	active, ok := h.store.ActiveBoard()
	if !ok {
		return nil, GetBoardResult{}, nil
	}
	return nil, GetBoardResult{Board: &active}, nil
}

func (h *Handler) ListBoards(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, ListBoardsResult, error) {
	activeID := h.store.ActiveBoardID()
	boards := h.store.Boards()
	out := ListBoardsResult{Boards: make([]BoardSummary, 0, len(boards)), ActiveBoardID: activeID}
	for _, b := range boards {
		tasks := 0
		for _, c := range b.Columns {
			tasks += len(c.Tasks)
		}
		out.Boards = append(out.Boards, BoardSummary{
			ID:        b.ID,
			Name:      b.Name,
			Columns:   len(b.Columns),
			Tasks:     tasks,
			Active:    b.ID == activeID,
			CreatedAt: b.CreatedAt,
		})
	}
	return nil, out, nil
}

func (h *Handler) CreateBoard(ctx context.Context, req *sdkmcp.CallToolRequest, in CreateBoardParams) (*sdkmcp.CallToolResult, board.Board, error) {
	return nil, h.store.AddBoard(in.Name), nil
}

func (h *Handler) DeleteBoard(ctx context.Context, req *sdkmcp.CallToolRequest, in BoardIDParams) (*sdkmcp.CallToolResult, Ack, error) {
	h.store.DeleteBoard(in.ID)
	return nil, Ack{OK: true}, nil
}

func (h *Handler) RenameBoard(ctx context.Context, req *sdkmcp.CallToolRequest, in RenameBoardParams) (*sdkmcp.CallToolResult, Ack, error) {
	if err := h.store.RenameBoard(in.ID, in.Name); err != nil {
		return nil, Ack{}, MapError(err)
	}
	return nil, Ack{OK: true}, nil
}

func (h *Handler) SetActiveBoard(ctx context.Context, req *sdkmcp.CallToolRequest, in BoardIDParams) (*sdkmcp.CallToolResult, Ack, error) {
	if err := h.store.SetActiveBoard(in.ID); err != nil {
		return nil, Ack{}, MapError(err)
	}
	return nil, Ack{OK: true}, nil
}

func (h *Handler) UpdateTheme(ctx context.Context, req *sdkmcp.CallToolRequest, in UpdateThemeParams) (*sdkmcp.CallToolResult, Ack, error) {
	if err := h.store.UpdateTheme(in.ID, board.Theme(in.Theme)); err != nil {
		return nil, Ack{}, MapError(err)
	}
	return nil, Ack{OK: true}, nil
}

func (h *Handler) AddColumn(ctx context.Context, req *sdkmcp.CallToolRequest, in AddColumnParams) (*sdkmcp.CallToolResult, board.Column, error) {
	column, err := h.store.AddColumn(in.Title)
	if err != nil {
		return nil, board.Column{}, MapError(err)
	}
	return nil, column, nil
}

func (h *Handler) RenameColumn(ctx context.Context, req *sdkmcp.CallToolRequest, in RenameColumnParams) (*sdkmcp.CallToolResult, Ack, error) {
	if err := h.store.RenameColumn(in.ID, in.Title); err != nil {
		return nil, Ack{}, MapError(err)
	}
	return nil, Ack{OK: true}, nil
}

func (h *Handler) DeleteColumn(ctx context.Context, req *sdkmcp.CallToolRequest, in ColumnIDParams) (*sdkmcp.CallToolResult, Ack, error) {
	if err := h.store.DeleteColumn(in.ID); err != nil {
		return nil, Ack{}, MapError(err)
	}
	return nil, Ack{OK: true}, nil
}

func (h *Handler) AddTask(ctx context.Context, req *sdkmcp.CallToolRequest, in AddTaskParams) (*sdkmcp.CallToolResult, board.Task, error) {
	task, err := h.store.AddTask(board.TaskDraft{
		Content:      in.Content,
		Priority:     board.Priority(in.Priority),
		Deadline:     in.Deadline,
		Description:  in.Description,
		Tags:         in.Tags,
		Dependencies: in.Dependencies,
	}, in.ColumnID)
	if err != nil {
		return nil, board.Task{}, MapError(err)
	}
	return nil, task, nil
}

func (h *Handler) MoveTask(ctx context.Context, req *sdkmcp.CallToolRequest, in MoveTaskParams) (*sdkmcp.CallToolResult, board.MoveResult, error) {
	result, err := h.store.MoveTask(in.TaskID, in.FromColumnID, in.ToColumnID, in.Automate)
	if err != nil {
		return nil, board.MoveResult{}, MapError(err)
	}
	return nil, result, nil
}

func (h *Handler) UpdateTask(ctx context.Context, req *sdkmcp.CallToolRequest, in UpdateTaskParams) (*sdkmcp.CallToolResult, board.Task, error) {
	patch := board.TaskPatch{
		ID:           in.ID,
		Content:      in.Content,
		Deadline:     in.Deadline,
		Description:  in.Description,
		Tags:         in.Tags,
		Dependencies: in.Dependencies,
	}
	if in.Priority != nil {
		priority := board.Priority(*in.Priority)
		patch.Priority = &priority
	}
	task, err := h.store.UpdateTask(patch)
	if err != nil {
		return nil, board.Task{}, MapError(err)
	}
	return nil, task, nil
}

func (h *Handler) DeleteTask(ctx context.Context, req *sdkmcp.CallToolRequest, in DeleteTaskParams) (*sdkmcp.CallToolResult, Ack, error) {
	if err := h.store.DeleteTask(in.TaskID, in.ColumnID); err != nil {
		return nil, Ack{}, MapError(err)
	}
	return nil, Ack{OK: true}, nil
}

func (h *Handler) AddChecklistItem(ctx context.Context, req *sdkmcp.CallToolRequest, in AddChecklistItemParams) (*sdkmcp.CallToolResult, board.ChecklistItem, error) {
	item, err := h.store.AddChecklistItem(in.TaskID, in.Text)
	if err != nil {
		return nil, board.ChecklistItem{}, MapError(err)
	}
	return nil, item, nil
}

func (h *Handler) ToggleChecklistItem(ctx context.Context, req *sdkmcp.CallToolRequest, in ChecklistItemParams) (*sdkmcp.CallToolResult, Ack, error) {
	if err := h.store.ToggleChecklistItem(in.TaskID, in.ItemID); err != nil {
		return nil, Ack{}, MapError(err)
	}
	return nil, Ack{OK: true}, nil
}

func (h *Handler) UpdateChecklistItem(ctx context.Context, req *sdkmcp.CallToolRequest, in UpdateChecklistItemParams) (*sdkmcp.CallToolResult, Ack, error) {
	if err := h.store.UpdateChecklistItem(in.TaskID, in.ItemID, in.Text); err != nil {
		return nil, Ack{}, MapError(err)
	}
	return nil, Ack{OK: true}, nil
}

func (h *Handler) DeleteChecklistItem(ctx context.Context, req *sdkmcp.CallToolRequest, in ChecklistItemParams) (*sdkmcp.CallToolResult, Ack, error) {
	if err := h.store.DeleteChecklistItem(in.TaskID, in.ItemID); err != nil {
		return nil, Ack{}, MapError(err)
	}
	return nil, Ack{OK: true}, nil
}

// ApplyAction resolves a structured AI action against the active board. The
// outcome is always a structured result, never a tool error, so the chat
// layer can phrase a tailored message per condition.
func (h *Handler) ApplyAction(ctx context.Context, req *sdkmcp.CallToolRequest, in ApplyActionParams) (*sdkmcp.CallToolResult, intent.Outcome, error) {
	outcome := h.resolver.Resolve(intent.Action{
		Type:           intent.ActionType(in.Type),
		TaskIdentifier: in.TaskIdentifier,
		TargetValue:    in.TargetValue,
		Details:        in.TaskDetails,
	})
	return nil, outcome, nil
}
