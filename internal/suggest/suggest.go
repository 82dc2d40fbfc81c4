// Package suggest produces fix suggestions for accessibility issues. The
// rule table always works; a Gemini-backed provider can be layered on top
// and falls back to the table when the model is unreachable or returns
// something unusable.
package suggest

import (
	"context"

	"docremedy/internal/model"
)

// Fix types a suggestion can carry. The change application pipeline keys
// its structural edits off these.
const (
	FixColorChange      = "color_change"
	FixHeadingStructure = "heading_structure_change"
	FixHeadingLevel     = "heading_level_change"
	FixAltText          = "alt_text_addition"
	FixTableHeader      = "table_header_addition"
	FixLinkText         = "link_text_change"
	FixFontSize         = "font_size_change"
	FixManualReview     = "manual_review"
)

// SnippetPair is a before/after pair of minimal DOCX fragments, base64
// encoded, that preview a fix in isolation.
type SnippetPair struct {
	Original string `json:"original"`
	Fixed    string `json:"fixed"`
}

// Suggestion is a proposed fix for one issue.
type Suggestion struct {
	IssueID       string       `json:"issue_id"`
	SuggestedText string       `json:"suggested_text"`
	Confidence    float64      `json:"confidence"`
	FixType       string       `json:"fix_type"`
	OldValue      string       `json:"old_value"`
	NewValue      string       `json:"new_value"`
	ElementXPath  string       `json:"element_xpath"`
	Snippets      *SnippetPair `json:"snippets,omitempty"`
}

// Suggester proposes a fix for an accessibility issue.
type Suggester interface {
	Suggest(ctx context.Context, issue *model.AccessibilityIssue) (*Suggestion, error)
}
