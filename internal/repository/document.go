package repository

import (
	"context"
	"time"

	"docremedy/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record.
	// The caller provides required fields (ID, Status, CreatedAt); the stored
	// row is returned as persisted.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a paginated list of documents and total rows count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// UpdateStatus sets the lifecycle status of a document.
	UpdateStatus(ctx context.Context, id, status string) error

	// MarkRemediated sets the remediated status and timestamp in one update.
	MarkRemediated(ctx context.Context, id string, at time.Time) error

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
