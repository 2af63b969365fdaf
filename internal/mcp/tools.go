package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools attaches the board tool surface to the server. Input schemas
// are inferred from the typed params structs.
func registerTools(server *sdkmcp.Server, h *Handler) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_board",
		Description: "Get the full active board: columns, tasks, checklists, theme",
	}, h.GetBoard)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_boards",
		Description: "List all boards of this session with column/task counts",
	}, h.ListBoards)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_board",
		Description: "Create a board seeded with the default columns and make it active",
	}, h.CreateBoard)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_board",
		Description: "Delete a board and everything on it",
	}, h.DeleteBoard)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rename_board",
		Description: "Rename a board",
	}, h.RenameBoard)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_active_board",
		Description: "Switch the active board",
	}, h.SetActiveBoard)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_theme",
		Description: "Replace a board's color theme tokens",
	}, h.UpdateTheme)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_column",
		Description: "Append a column to the active board",
	}, h.AddColumn)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rename_column",
		Description: "Rename a column on the active board",
	}, h.RenameColumn)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_column",
		Description: "Delete a column and all tasks it contains",
	}, h.DeleteColumn)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_task",
		Description: "Create a task; defaults to the first column when no column id is given",
	}, h.AddTask)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "move_task",
		Description: "Move a task between columns; with automate, moving into a Done column completes its checklist",
	}, h.MoveTask)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_task",
		Description: "Partially update a task's fields (not its column)",
	}, h.UpdateTask)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task from a column",
	}, h.DeleteTask)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_checklist_item",
		Description: "Add a checklist item to a task",
	}, h.AddChecklistItem)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_checklist_item",
		Description: "Toggle a checklist item's completed flag",
	}, h.ToggleChecklistItem)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_checklist_item",
		Description: "Replace a checklist item's text",
	}, h.UpdateChecklistItem)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_checklist_item",
		Description: "Delete a checklist item from a task",
	}, h.DeleteChecklistItem)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "apply_action",
		Description: "Apply a structured task action (updateStatus, updatePriority, createTask, deleteTask) and get a typed outcome",
	}, h.ApplyAction)
}
