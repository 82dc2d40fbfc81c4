package model

import "time"

// Staged change statuses.
const (
	ChangeStatusStaged  = "staged"
	ChangeStatusApplied = "applied"
)

// Staged change types. Suggested changes originate from the suggestion
// engine and carry a fix type; manual changes are free-form text edits.
const (
	ChangeTypeManual    = "manual"
	ChangeTypeSuggested = "suggested"
)

// StagedChange is a pending edit for a single accessibility issue. Changes
// accumulate in the staged state and are applied to the document in one batch.
type StagedChange struct {
	ID              string `json:"id"`
	IssueID         string `json:"issue_id"`
	DocumentID      string `json:"document_id"`
	OriginalContent string `json:"original_content"`
	NewContent      string `json:"new_content"`
	ChangeType      string `json:"change_type"`

	// FixType and NewValue are set for suggested changes and drive the
	// structural edit during apply (color hex, style name, font size, ...).
	// Manual changes leave them empty and fall back to a text replacement.
	FixType  string `json:"fix_type,omitempty"`
	NewValue string `json:"new_value,omitempty"`

	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	AppliedAt *time.Time `json:"applied_at,omitempty"`
}
