package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"docremedy/internal/model"
)

type MockChangeRepository struct {
	mock.Mock
}

func (m *MockChangeRepository) Create(ctx context.Context, ch *model.StagedChange) (*model.StagedChange, error) {
	args := m.Called(ctx, ch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StagedChange), args.Error(1)
}

func (m *MockChangeRepository) FindByID(ctx context.Context, id string) (*model.StagedChange, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StagedChange), args.Error(1)
}

func (m *MockChangeRepository) ListByDocument(ctx context.Context, documentID string) ([]model.StagedChange, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StagedChange), args.Error(1)
}

func (m *MockChangeRepository) ListStagedByDocument(ctx context.Context, documentID string) ([]model.StagedChange, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StagedChange), args.Error(1)
}

func (m *MockChangeRepository) MarkApplied(ctx context.Context, ids []string, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

func (m *MockChangeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
