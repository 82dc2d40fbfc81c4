package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docremedy/internal/model"
)

type MockIssueRepository struct {
	mock.Mock
}

func (m *MockIssueRepository) ReplaceForDocument(ctx context.Context, documentID string, issues []model.AccessibilityIssue) error {
	args := m.Called(ctx, documentID, issues)
	return args.Error(0)
}

func (m *MockIssueRepository) FindByID(ctx context.Context, id string) (*model.AccessibilityIssue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessibilityIssue), args.Error(1)
}

func (m *MockIssueRepository) ListByDocument(ctx context.Context, documentID string) ([]model.AccessibilityIssue, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AccessibilityIssue), args.Error(1)
}

func (m *MockIssueRepository) SetFixed(ctx context.Context, id string, fixed bool) error {
	args := m.Called(ctx, id, fixed)
	return args.Error(0)
}
