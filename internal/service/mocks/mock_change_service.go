package mocks

import (
	"context"

	"docremedy/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockChangeService struct {
	mock.Mock
}

func (m *MockChangeService) Stage(ctx context.Context, issueID string, req service.StageRequest) (*service.ChangeWithDiff, error) {
	args := m.Called(ctx, issueID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChangeWithDiff), args.Error(1)
}

func (m *MockChangeService) List(ctx context.Context, documentID string) ([]service.ChangeWithDiff, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ChangeWithDiff), args.Error(1)
}

func (m *MockChangeService) Apply(ctx context.Context, documentID string) (*service.ApplyResult, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplyResult), args.Error(1)
}

func (m *MockChangeService) Cancel(ctx context.Context, changeID string) error {
	args := m.Called(ctx, changeID)
	return args.Error(0)
}

func (m *MockChangeService) Clear(ctx context.Context, changeID string) error {
	args := m.Called(ctx, changeID)
	return args.Error(0)
}
