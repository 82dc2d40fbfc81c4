package mocks

import (
	"context"

	"docremedy/internal/suggest"
	"github.com/stretchr/testify/mock"
)

type MockSuggestService struct {
	mock.Mock
}

func (m *MockSuggestService) SuggestFix(ctx context.Context, issueID string) (*suggest.Suggestion, error) {
	args := m.Called(ctx, issueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*suggest.Suggestion), args.Error(1)
}
