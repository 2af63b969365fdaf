package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// Store is the single in-memory source of truth for the session's boards and
// active-board pointer, and the only component allowed to mutate them.
//
// Mutations follow one pattern: require a non-null active board, compute a
// new Board value functionally from the current one, replace it in the board
// list by id, then hand the new snapshot to the persistence adapter on a
// background goroutine. The UI sees the in-memory result immediately; a
// failed save is logged and swallowed, the next successful mutation carries
// the latest state forward.
type Store struct {
	mu       sync.Mutex
	adapter  Adapter
	identity string
	logger   *slog.Logger

	boards   []Board
	activeID string

	saves sync.WaitGroup
}

// NewStore creates a store bound to a persistence adapter and session
// identity. Call Load before issuing mutations.
func NewStore(adapter Adapter, identity string, logger *slog.Logger) *Store {
	return &Store{adapter: adapter, identity: identity, logger: logger}
}

// TaskDraft describes a task creation request.
type TaskDraft struct {
	Content      string
	Priority     Priority
	Deadline     string
	Description  string
	Tags         []string
	Dependencies []string
}

// TaskPatch describes a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	ID           string
	Content      *string
	Priority     *Priority
	Deadline     *string
	Description  *string
	Tags         []string
	Dependencies []string
}

// Load establishes the session: fetches the persisted document, normalizes
// it, seeds a default board when the identity has no boards at all, and
// schedules a corrective write when normalization changed the active id.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.adapter.Load(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("loading document: %w", err)
	}

	doc, corrected := Normalize(raw)
	seeded := false
	if len(doc.Boards) == 0 {
		seed := NewDefaultBoard("")
		doc.Boards = []Board{seed}
		doc.ActiveBoardID = seed.ID
		seeded = true
	}

	s.mu.Lock()
	s.boards = doc.Boards
	s.activeID = doc.ActiveBoardID
	if corrected || seeded {
		s.persistLocked()
	}
	s.mu.Unlock()

	s.logger.Info("session loaded",
		"identity", s.identity,
		"boards", len(doc.Boards),
		"seeded", seeded,
	)
	return nil
}

// SwitchSession replaces the persistence adapter and identity (guest to
// authenticated or back) and reloads state from the new backend. Guest data
// is not migrated. An in-flight save from the prior session may race the
// reload at the old backend; last write wins there.
func (s *Store) SwitchSession(ctx context.Context, adapter Adapter, identity string) error {
	s.mu.Lock()
	s.adapter = adapter
	s.identity = identity
	s.boards = nil
	s.activeID = ""
	s.mu.Unlock()
	return s.Load(ctx)
}

// Flush waits for all in-flight persistence writes. Used at shutdown.
func (s *Store) Flush() {
	s.saves.Wait()
}

// Identity returns the session identity label.
func (s *Store) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Boards returns deep copies of all boards.
func (s *Store) Boards() []Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	boards := make([]Board, len(s.boards))
	for i, b := range s.boards {
		boards[i] = b.Clone()
	}
	return boards
}

// ActiveBoard returns a deep copy of the active board, if any.
func (s *Store) ActiveBoard() (Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.boards {
		if b.ID == s.activeID {
			return b.Clone(), true
		}
	}
	return Board{}, false
}

// ActiveBoardID returns the active-board pointer.
func (s *Store) ActiveBoardID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// SetActiveBoard switches the active-board pointer.
func (s *Store) SetActiveBoard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.ContainsFunc(s.boards, func(b Board) bool { return b.ID == id }) {
		return ErrBoardNotFound
	}
	s.activeID = id
	s.persistLocked()
	return nil
}

// AddBoard creates a board seeded with the default columns and makes it
// active.
func (s *Store) AddBoard(name string) Board {
	b := NewDefaultBoard(name)
	s.mu.Lock()
	s.boards = append(slices.Clone(s.boards), b)
	s.activeID = b.ID
	s.persistLocked()
	s.mu.Unlock()
	return b.Clone()
}

// DeleteBoard removes a board. When the active board is deleted the pointer
// falls back to the first remaining board. Deleting an unknown id is a
// no-op.
func (s *Store) DeleteBoard(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	remaining := slices.DeleteFunc(slices.Clone(s.boards), func(b Board) bool { return b.ID == id })
	if len(remaining) == len(s.boards) {
		return
	}
	s.boards = remaining
	if s.activeID == id {
		s.activeID = ""
		if len(remaining) > 0 {
			s.activeID = remaining[0].ID
		}
	}
	s.persistLocked()
}

// RenameBoard changes a board's name. Renaming a vanished board is silently
// absorbed.
func (s *Store) RenameBoard(id, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidInput
	}
	return s.mutateBoard(id, func(b *Board) error {
		b.Name = name
		return nil
	})
}

// UpdateTheme replaces a board's theme. Absent keys fall back to defaults at
// render time, so a sparse map is expected.
func (s *Store) UpdateTheme(id string, theme Theme) error {
	return s.mutateBoard(id, func(b *Board) error {
		if len(theme) == 0 {
			b.Theme = nil
			return nil
		}
		next := make(Theme, len(theme))
		for key, value := range theme {
			next[key] = value
		}
		b.Theme = next
		return nil
	})
}

// AddColumn appends a column to the active board.
func (s *Store) AddColumn(title string) (Column, error) {
	if strings.TrimSpace(title) == "" {
		return Column{}, ErrInvalidInput
	}
	var created Column
	err := s.mutateActive(func(b *Board) error {
		created = Column{ID: NewID(), Title: title, Tasks: []Task{}}
		b.Columns = append(b.Columns, created)
		return nil
	})
	return created, err
}

// RenameColumn changes a column's title on the active board.
func (s *Store) RenameColumn(id, title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrInvalidInput
	}
	return s.mutateActive(func(b *Board) error {
		for i := range b.Columns {
			if b.Columns[i].ID == id {
				b.Columns[i].Title = title
				return nil
			}
		}
		return ErrColumnNotFound
	})
}

// DeleteColumn removes a column and every task it contains. Callers confirm
// the cascade before invoking; this layer does not.
func (s *Store) DeleteColumn(id string) error {
	return s.mutateActive(func(b *Board) error {
		next := slices.DeleteFunc(slices.Clone(b.Columns), func(c Column) bool { return c.ID == id })
		if len(next) == len(b.Columns) {
			return ErrColumnNotFound
		}
		b.Columns = next
		return nil
	})
}

// AddTask creates a task in the given column, or in the board's first column
// when columnID is empty. A board with zero columns reports
// ErrNoColumnsAvailable rather than dropping the task.
func (s *Store) AddTask(draft TaskDraft, columnID string) (Task, error) {
	if strings.TrimSpace(draft.Content) == "" {
		return Task{}, ErrInvalidInput
	}
	var created Task
	err := s.mutateActive(func(b *Board) error {
		if len(b.Columns) == 0 {
			return ErrNoColumnsAvailable
		}
		target := columnID
		if target == "" {
			target = b.Columns[0].ID
		}
		priority := draft.Priority
		if !priority.Valid() {
			priority = PriorityMedium
		}
		task := Task{
			ID:           NewID(),
			Content:      draft.Content,
			Priority:     priority,
			Deadline:     draft.Deadline,
			Description:  draft.Description,
			Dependencies: emptyIfNil(draft.Dependencies),
			Tags:         emptyIfNil(draft.Tags),
			Checklist:    []ChecklistItem{},
			CreatedAt:    time.Now(),
		}
		placed, err := placeTask(b, target, task)
		if err != nil {
			return err
		}
		created = placed
		return nil
	})
	return created, err
}

// MoveTask relocates a task between columns of the active board. The task is
// prepended to the destination, establishing most-recently-moved ordering.
// When automate is set and the destination column is titled "done"
// (case-insensitive), every incomplete checklist item on the task is marked
// complete as a side effect.
func (s *Store) MoveTask(taskID, fromColumnID, toColumnID string, automate bool) (MoveResult, error) {
	var result MoveResult
	err := s.mutateActive(func(b *Board) error {
		task, err := extractTask(b, fromColumnID, taskID)
		if err != nil {
			return err
		}

		automated := false
		if automate && len(task.Checklist) > 0 {
			if dest, ok := b.FindColumn(toColumnID); ok && strings.EqualFold(dest.Title, DoneColumnTitle) {
				for i := range task.Checklist {
					task.Checklist[i].Completed = true
				}
				automated = true
			}
		}

		placed, err := placeTask(b, toColumnID, task)
		if err != nil {
			return err
		}
		result = MoveResult{Task: placed, Automated: automated}
		return nil
	})
	return result, err
}

// DeleteTask removes a task from a column of the active board.
func (s *Store) DeleteTask(taskID, columnID string) error {
	return s.mutateActive(func(b *Board) error {
		_, err := extractTask(b, columnID, taskID)
		return err
	})
}

// UpdateTask applies a partial update to a task, preserving its position.
// Relocation is MoveTask's job; Status cannot be patched directly.
func (s *Store) UpdateTask(patch TaskPatch) (Task, error) {
	if patch.Priority != nil && !patch.Priority.Valid() {
		return Task{}, ErrInvalidInput
	}
	var updated Task
	err := s.mutateActive(func(b *Board) error {
		for i := range b.Columns {
			for j := range b.Columns[i].Tasks {
				if b.Columns[i].Tasks[j].ID != patch.ID {
					continue
				}
				task := b.Columns[i].Tasks[j]
				if patch.Content != nil {
					task.Content = *patch.Content
				}
				if patch.Priority != nil {
					task.Priority = *patch.Priority
				}
				if patch.Deadline != nil {
					task.Deadline = *patch.Deadline
				}
				if patch.Description != nil {
					task.Description = *patch.Description
				}
				if patch.Tags != nil {
					task.Tags = slices.Clone(patch.Tags)
				}
				if patch.Dependencies != nil {
					task.Dependencies = slices.Clone(patch.Dependencies)
				}
				b.Columns[i].Tasks[j] = task
				updated = task
				return nil
			}
		}
		return ErrTaskNotFound
	})
	return updated, err
}

// AddChecklistItem appends a checklist item to a task.
func (s *Store) AddChecklistItem(taskID, text string) (ChecklistItem, error) {
	var created ChecklistItem
	err := s.mutateTask(taskID, func(t *Task) error {
		created = ChecklistItem{ID: NewID(), Text: text}
		t.Checklist = append(t.Checklist, created)
		return nil
	})
	return created, err
}

// ToggleChecklistItem flips a checklist item's completed flag.
func (s *Store) ToggleChecklistItem(taskID, itemID string) error {
	return s.mutateTask(taskID, func(t *Task) error {
		for i := range t.Checklist {
			if t.Checklist[i].ID == itemID {
				t.Checklist[i].Completed = !t.Checklist[i].Completed
				return nil
			}
		}
		return ErrChecklistItemNotFound
	})
}

// UpdateChecklistItem replaces a checklist item's text.
func (s *Store) UpdateChecklistItem(taskID, itemID, text string) error {
	return s.mutateTask(taskID, func(t *Task) error {
		for i := range t.Checklist {
			if t.Checklist[i].ID == itemID {
				t.Checklist[i].Text = text
				return nil
			}
		}
		return ErrChecklistItemNotFound
	})
}

// DeleteChecklistItem removes a checklist item from a task.
func (s *Store) DeleteChecklistItem(taskID, itemID string) error {
	return s.mutateTask(taskID, func(t *Task) error {
		next := slices.DeleteFunc(slices.Clone(t.Checklist), func(item ChecklistItem) bool { return item.ID == itemID })
		if len(next) == len(t.Checklist) {
			return ErrChecklistItemNotFound
		}
		t.Checklist = next
		return nil
	})
}

// mutateActive runs the shared read-apply pattern against the active board:
// no active pointer reports ErrNoActiveBoard; a pointer to a board that no
// longer exists is silently absorbed; otherwise mutate edits a deep copy
// which then replaces the original by id, leaving all other boards
// referentially untouched, and the new snapshot is persisted.
func (s *Store) mutateActive(mutate func(*Board) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeID == "" {
		return ErrNoActiveBoard
	}
	return s.applyLocked(s.activeID, mutate)
}

// mutateBoard is mutateActive for an explicitly addressed board.
func (s *Store) mutateBoard(id string, mutate func(*Board) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(id, mutate)
}

func (s *Store) applyLocked(id string, mutate func(*Board) error) error {
	idx := slices.IndexFunc(s.boards, func(b Board) bool { return b.ID == id })
	if idx < 0 {
		// Board deleted concurrently; absorb rather than fail.
		return nil
	}
	next := s.boards[idx].Clone()
	if err := mutate(&next); err != nil {
		return err
	}
	boards := slices.Clone(s.boards)
	boards[idx] = next
	s.boards = boards
	s.persistLocked()
	return nil
}

// mutateTask locates a task by id across the active board's columns and
// applies an in-place edit, preserving task position.
func (s *Store) mutateTask(taskID string, mutate func(*Task) error) error {
	return s.mutateActive(func(b *Board) error {
		for i := range b.Columns {
			for j := range b.Columns[i].Tasks {
				if b.Columns[i].Tasks[j].ID == taskID {
					return mutate(&b.Columns[i].Tasks[j])
				}
			}
		}
		return ErrTaskNotFound
	})
}

// persistLocked hands a deep-copied snapshot to the adapter on a background
// goroutine. Saves are not serialized relative to each other; the last save
// to complete determines the persisted state, which the product accepts.
func (s *Store) persistLocked() {
	boards := make([]Board, len(s.boards))
	for i, b := range s.boards {
		boards[i] = b.Clone()
	}
	activeID := s.activeID
	adapter := s.adapter
	identity := s.identity

	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		if err := adapter.Save(context.Background(), boards, activeID); err != nil {
			s.logger.Error("persistence write failed",
				"identity", identity,
				"error", err,
			)
		}
	}()
}

// placeTask prepends a task to the given column and sets the status
// back-reference. Every operation that puts a task into a column goes
// through here; status is never assigned anywhere else.
func placeTask(b *Board, columnID string, t Task) (Task, error) {
	for i := range b.Columns {
		if b.Columns[i].ID != columnID {
			continue
		}
		t.Status = columnID
		b.Columns[i].Tasks = append([]Task{t}, b.Columns[i].Tasks...)
		return t, nil
	}
	return Task{}, ErrColumnNotFound
}

// extractTask removes a task from a column and returns it.
func extractTask(b *Board, columnID, taskID string) (Task, error) {
	for i := range b.Columns {
		if b.Columns[i].ID != columnID {
			continue
		}
		for j, t := range b.Columns[i].Tasks {
			if t.ID == taskID {
				b.Columns[i].Tasks = append(slices.Clone(b.Columns[i].Tasks[:j]), b.Columns[i].Tasks[j+1:]...)
				return t, nil
			}
		}
		return Task{}, ErrTaskNotFound
	}
	return Task{}, ErrColumnNotFound
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return slices.Clone(values)
}
