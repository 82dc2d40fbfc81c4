package mocks

import (
	"context"

	"docremedy/internal/model"
	"docremedy/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockScanService struct {
	mock.Mock
}

func (m *MockScanService) Scan(ctx context.Context, documentID string) (*service.ScanResult, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScanResult), args.Error(1)
}

func (m *MockScanService) Issues(ctx context.Context, documentID string) ([]model.AccessibilityIssue, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AccessibilityIssue), args.Error(1)
}
