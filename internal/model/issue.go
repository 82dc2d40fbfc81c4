package model

import "time"

// IssueStatusActive marks an issue that is still present in the document.
// Rescans replace the active set wholesale rather than mutating it.
const IssueStatusActive = "active"

// IssueDetails carries rule-specific findings (colors, ratios, heading levels,
// table dimensions, ...). It is persisted as JSONB and returned to clients as-is.
type IssueDetails map[string]any

// String returns the string value stored under key, or "" when absent
// or of a different type.
func (d IssueDetails) String(key string) string {
	if d == nil {
		return ""
	}
	if s, ok := d[key].(string); ok {
		return s
	}
	return ""
}

// Int returns the integer value stored under key. JSON round-trips store
// numbers as float64, so both forms are accepted.
func (d IssueDetails) Int(key string) int {
	if d == nil {
		return 0
	}
	switch v := d[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// AccessibilityIssue is a single WCAG finding produced by scanning a document.
// ElementXPath locates the offending element inside the DOCX body
// (e.g. //w:p[3]/w:r[2] for a run, //w:tbl[1] for a table).
type AccessibilityIssue struct {
	ID           string       `json:"id"`
	DocumentID   string       `json:"document_id"`
	Clause       string       `json:"clause"`
	Description  string       `json:"description"`
	Status       string       `json:"status"`
	WCAGLevel    string       `json:"wcag_level"`
	Details      IssueDetails `json:"details"`
	ElementXPath string       `json:"element_xpath"`
	IsFixed      bool         `json:"is_fixed"`
	CreatedAt    time.Time    `json:"created_at"`
}
