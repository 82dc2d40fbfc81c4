package model

import "time"

// Document lifecycle statuses. A document starts as uploaded, moves to
// scanning while the accessibility scan runs, becomes ready once issues
// are recorded, and ends remediated after staged changes are applied.
const (
	DocumentStatusUploaded    = "uploaded"
	DocumentStatusScanning    = "scanning"
	DocumentStatusReady       = "ready"
	DocumentStatusRemediating = "remediating"
	DocumentStatusRemediated  = "remediated"
)

// Document represents a stored DOCX file in the system.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	StoragePath string `json:"storage_path"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	Status      string `json:"status"`

	// SourceDocumentID links a remediated copy back to the document it was produced from.
	SourceDocumentID *string `json:"source_document_id,omitempty"`

	CreatedAt    time.Time  `json:"created_at"`
	RemediatedAt *time.Time `json:"remediated_at,omitempty"`
}
