package repository

import (
	"context"

	"docremedy/internal/model"
)

// IssueRepository defines data access for accessibility issues.
type IssueRepository interface {
	// ReplaceForDocument atomically deletes the document's existing issues
	// (cascading away their staged changes) and inserts the new set.
	ReplaceForDocument(ctx context.Context, documentID string, issues []model.AccessibilityIssue) error

	// FindByID returns an issue by its ID.
	FindByID(ctx context.Context, id string) (*model.AccessibilityIssue, error)

	// ListByDocument returns all issues recorded for a document, oldest first.
	ListByDocument(ctx context.Context, documentID string) ([]model.AccessibilityIssue, error)

	// SetFixed flips the is_fixed flag on an issue.
	SetFixed(ctx context.Context, id string, fixed bool) error
}
