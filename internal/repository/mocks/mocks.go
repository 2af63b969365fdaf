package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/taskdeck/taskdeck/internal/domain/board"
)

// Adapter is a mock for repository.Adapter.
type Adapter struct {
	mock.Mock
}

func (m *Adapter) Load(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	if doc, ok := args.Get(0).(map[string]any); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Adapter) Save(ctx context.Context, boards []board.Board, activeBoardID string) error {
	args := m.Called(ctx, boards, activeBoardID)
	return args.Error(0)
}
