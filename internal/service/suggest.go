package service

import (
	"context"
	"database/sql"
	"errors"

	"docremedy/internal/model"
	"docremedy/internal/repository"
	"docremedy/internal/suggest"
)

// ErrIssueNotFound is returned when an issue ID does not exist.
var ErrIssueNotFound = errors.New("issue not found")

// SuggestService produces fix suggestions for recorded issues.
type SuggestService interface {
	// SuggestFix returns a proposed fix for the issue, including before/after
	// preview snippets.
	SuggestFix(ctx context.Context, issueID string) (*suggest.Suggestion, error)
}

type suggestService struct {
	issues    repository.IssueRepository
	suggester suggest.Suggester
}

// NewSuggestService constructs a SuggestService around the given suggester.
func NewSuggestService(issues repository.IssueRepository, suggester suggest.Suggester) SuggestService {
	return &suggestService{issues: issues, suggester: suggester}
}

func (s *suggestService) SuggestFix(ctx context.Context, issueID string) (*suggest.Suggestion, error) {
	if issueID == "" {
		return nil, ErrIDRequired
	}
	issue, err := s.issues.FindByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	return s.suggester.Suggest(ctx, issue)
}

// loadIssue is shared by the change pipeline, which also resolves issues by ID.
func loadIssue(ctx context.Context, repo repository.IssueRepository, id string) (*model.AccessibilityIssue, error) {
	issue, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	return issue, nil
}
