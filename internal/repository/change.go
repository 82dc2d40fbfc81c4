package repository

import (
	"context"
	"time"

	"docremedy/internal/model"
)

// ChangeRepository defines data access for staged changes.
type ChangeRepository interface {
	// Create inserts a new staged change record.
	Create(ctx context.Context, ch *model.StagedChange) (*model.StagedChange, error)

	// FindByID returns a staged change by its ID.
	FindByID(ctx context.Context, id string) (*model.StagedChange, error)

	// ListByDocument returns every change recorded for a document in creation
	// order, regardless of status.
	ListByDocument(ctx context.Context, documentID string) ([]model.StagedChange, error)

	// ListStagedByDocument returns the document's changes still in the staged
	// state, in creation order.
	ListStagedByDocument(ctx context.Context, documentID string) ([]model.StagedChange, error)

	// MarkApplied transitions the given changes to applied with the given timestamp.
	MarkApplied(ctx context.Context, ids []string, at time.Time) error

	// Delete removes a change by ID. It returns nil if the row did not exist.
	Delete(ctx context.Context, id string) error
}
