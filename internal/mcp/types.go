package mcp

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/domain/board"
	"github.com/taskdeck/taskdeck/internal/domain/intent"
)

type EmptyParams struct{}

type Ack struct {
	OK bool `json:"ok"`
}

type GetBoardResult struct {
	Board *board.Board `json:"board,omitempty"`
}

// BoardSummary is a lightweight representation for listing.
type BoardSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Columns   int       `json:"columns"`
	Tasks     int       `json:"tasks"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListBoardsResult struct {
	Boards        []BoardSummary `json:"boards"`
	ActiveBoardID string         `json:"activeBoardId,omitempty"`
}

type CreateBoardParams struct {
	Name string `json:"name"`
}

type BoardIDParams struct {
	ID string `json:"id"`
}

type RenameBoardParams struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UpdateThemeParams struct {
	ID    string            `json:"id"`
	Theme map[string]string `json:"theme"`
}

type AddColumnParams struct {
	Title string `json:"title"`
}

type RenameColumnParams struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type ColumnIDParams struct {
	ID string `json:"id"`
}

type AddTaskParams struct {
	Content      string   `json:"content"`
	Priority     string   `json:"priority,omitempty"`
	Deadline     string   `json:"deadline,omitempty"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	ColumnID     string   `json:"columnId,omitempty"`
}

type MoveTaskParams struct {
	TaskID       string `json:"taskId"`
	FromColumnID string `json:"fromColumnId"`
	ToColumnID   string `json:"toColumnId"`
	Automate     bool   `json:"automate,omitempty"`
}

type UpdateTaskParams struct {
	ID           string   `json:"id"`
	Content      *string  `json:"content,omitempty"`
	Priority     *string  `json:"priority,omitempty"`
	Deadline     *string  `json:"deadline,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

type DeleteTaskParams struct {
	TaskID   string `json:"taskId"`
	ColumnID string `json:"columnId"`
}

type AddChecklistItemParams struct {
	TaskID string `json:"taskId"`
	Text   string `json:"text"`
}

type ChecklistItemParams struct {
	TaskID string `json:"taskId"`
	ItemID string `json:"itemId"`
}

type UpdateChecklistItemParams struct {
	TaskID string `json:"taskId"`
	ItemID string `json:"itemId"`
	Text   string `json:"text"`
}

// ApplyActionParams mirrors the action contract consumed from the AI layer.
type ApplyActionParams struct {
	Type           string              `json:"type"`
	TaskIdentifier string              `json:"taskIdentifier,omitempty"`
	TargetValue    string              `json:"targetValue,omitempty"`
	TaskDetails    *intent.TaskDetails `json:"taskDetails,omitempty"`
}
