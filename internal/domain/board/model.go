package board

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority is the task urgency level.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the recognized priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ChecklistItem is a single checkbox owned by exactly one task.
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task is the unit of work on a board.
//
// Status is a derived back-reference: it always equals the ID of the column
// currently containing the task. Every relocation goes through placeTask so
// the two are updated together.
type Task struct {
	ID           string          `json:"id"`
	Content      string          `json:"content"`
	Status       string          `json:"status"`
	Priority     Priority        `json:"priority"`
	Deadline     string          `json:"deadline,omitempty"`
	Dependencies []string        `json:"dependencies"`
	Description  string          `json:"description,omitempty"`
	Tags         []string        `json:"tags"`
	Checklist    []ChecklistItem `json:"checklist"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Column is a named, ordered bucket of tasks. The first column of a board is
// the default quick-add target.
type Column struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Tasks    []Task `json:"tasks"`
	WIPLimit *int   `json:"wipLimit,omitempty"`
}

// Theme is a sparse map of color tokens. An absent key means "use default",
// never "use empty".
type Theme map[string]string

// Board is a kanban workspace containing ordered columns.
type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Columns   []Column  `json:"columns"`
	Theme     Theme     `json:"theme,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document is the persisted board list plus the active-board pointer.
type Document struct {
	Boards        []Board `json:"boards"`
	ActiveBoardID string  `json:"activeBoardId"`
}

// MoveResult reports the outcome of a task move.
type MoveResult struct {
	Task      Task `json:"task"`
	Automated bool `json:"automated"`
}

// UntitledBoardName is the fallback name for boards persisted without one.
const UntitledBoardName = "Untitled Board"

// DoneColumnTitle is the column title that triggers checklist automation on
// move, compared case-insensitively.
const DoneColumnTitle = "done"

// DefaultColumnTitles are the columns seeded onto new boards.
var DefaultColumnTitles = []string{"To Do", "In Progress", "Done"}

// NewID generates an entity id: unix-millis timestamp plus a short random
// suffix. Collisions are probabilistically negligible, not cryptographically
// excluded.
func NewID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// NewDefaultBoard builds the board seeded for a fresh session so the UI is
// never empty.
func NewDefaultBoard(name string) Board {
	if strings.TrimSpace(name) == "" {
		name = "My Board"
	}
	columns := make([]Column, 0, len(DefaultColumnTitles))
	for _, title := range DefaultColumnTitles {
		columns = append(columns, Column{
			ID:    NewID(),
			Title: title,
			Tasks: []Task{},
		})
	}
	return Board{
		ID:        NewID(),
		Name:      name,
		Columns:   columns,
		CreatedAt: time.Now(),
	}
}

// Clone returns a deep copy. No column or task slice is shared with the
// receiver, so two boards in memory never alias nested containers.
func (b Board) Clone() Board {
	columns := make([]Column, len(b.Columns))
	for i, c := range b.Columns {
		columns[i] = c.Clone()
	}
	b.Columns = columns
	b.Theme = maps.Clone(b.Theme)
	return b
}

// Clone returns a deep copy of the column and its tasks.
func (c Column) Clone() Column {
	tasks := make([]Task, len(c.Tasks))
	for i, t := range c.Tasks {
		tasks[i] = t.Clone()
	}
	c.Tasks = tasks
	if c.WIPLimit != nil {
		limit := *c.WIPLimit
		c.WIPLimit = &limit
	}
	return c
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	t.Dependencies = slices.Clone(t.Dependencies)
	t.Tags = slices.Clone(t.Tags)
	t.Checklist = slices.Clone(t.Checklist)
	return t
}

// FindColumn returns the column with the given id.
func (b Board) FindColumn(id string) (Column, bool) {
	for _, c := range b.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// FindColumnByTitle returns the first column whose title matches
// case-insensitively.
func (b Board) FindColumnByTitle(title string) (Column, bool) {
	for _, c := range b.Columns {
		if strings.EqualFold(c.Title, title) {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnTitles returns the board's column titles in order.
func (b Board) ColumnTitles() []string {
	titles := make([]string, 0, len(b.Columns))
	for _, c := range b.Columns {
		titles = append(titles, c.Title)
	}
	return titles
}

// FindTask scans all columns in order and returns the first task with the
// given id, along with its containing column id.
func (b Board) FindTask(id string) (Task, string, bool) {
	for _, c := range b.Columns {
		for _, t := range c.Tasks {
			if t.ID == id {
				return t, c.ID, true
			}
		}
	}
	return Task{}, "", false
}
