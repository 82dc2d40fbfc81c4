package suggest

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docremedy/internal/model"
)

func TestRuleSuggester_Contrast(t *testing.T) {
	issue := &model.AccessibilityIssue{
		ID:     "issue-1",
		Clause: "WCAG 2.1 AA 1.4.3",
		Details: model.IssueDetails{
			"contrast_ratio":   1.67,
			"foreground_color": "#C8C8C8",
			"original_content": "Sample Document with Accessibility Issues",
		},
		ElementXPath: "//w:p[1]/w:r[1]",
	}

	s, err := NewRuleSuggester().Suggest(context.Background(), issue)
	require.NoError(t, err)

	assert.Equal(t, "issue-1", s.IssueID)
	assert.Equal(t, FixColorChange, s.FixType)
	assert.Equal(t, "#C8C8C8", s.OldValue)
	assert.Equal(t, AccessibleTextColor, s.NewValue)
	assert.Equal(t, 0.95, s.Confidence)
	assert.Equal(t, "//w:p[1]/w:r[1]/w:rPr/w:color", s.ElementXPath)
	assert.Contains(t, s.SuggestedText, "#333333")
	require.NotNil(t, s.Snippets)
	assertValidSnippet(t, s.Snippets.Original)
	assertValidSnippet(t, s.Snippets.Fixed)
}

func TestRuleSuggester_Table(t *testing.T) {
	tests := []struct {
		name        string
		details     model.IssueDetails
		wantFixType string
		wantNew     string
		wantConf    float64
	}{
		{
			name:        "heading structure",
			details:     model.IssueDetails{"issue_type": "heading_structure", "original_content": "Fake heading"},
			wantFixType: FixHeadingStructure,
			wantNew:     "Heading2",
			wantConf:    0.88,
		},
		{
			name:        "heading hierarchy",
			details:     model.IssueDetails{"issue_type": "heading_hierarchy", "found_level": "h3", "expected_level": "h2", "original_content": "Subsection"},
			wantFixType: FixHeadingLevel,
			wantNew:     "Heading2",
			wantConf:    0.92,
		},
		{
			name:        "alt text from reference",
			details:     model.IssueDetails{"issue_type": "missing_alt_text", "reference_text": "chart below", "original_content": "See the chart below."},
			wantFixType: FixAltText,
			wantNew:     "Chart",
			wantConf:    0.85,
		},
		{
			name:        "table headers",
			details:     model.IssueDetails{"issue_type": "table_headers", "table_rows": 3, "table_columns": 3},
			wantFixType: FixTableHeader,
			wantNew:     "Column 1, Column 2, Column 3",
			wantConf:    0.90,
		},
		{
			name:        "link text",
			details:     model.IssueDetails{"issue_type": "link_text", "link_text": "here", "original_content": "here"},
			wantFixType: FixLinkText,
			wantNew:     "download the report",
			wantConf:    0.87,
		},
		{
			name:        "font size",
			details:     model.IssueDetails{"issue_type": "font_size", "current_size": "6pt", "minimum_size": "12pt", "original_content": "fine print"},
			wantFixType: FixFontSize,
			wantNew:     "12pt",
			wantConf:    0.93,
		},
		{
			name:        "unknown issue type",
			details:     model.IssueDetails{"issue_type": "something_else"},
			wantFixType: FixManualReview,
			wantNew:     "",
			wantConf:    0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := &model.AccessibilityIssue{ID: "issue-x", Clause: "WCAG 2.1 A 1.3.1", Details: tt.details, ElementXPath: "//w:p[2]"}

			s, err := NewRuleSuggester().Suggest(context.Background(), issue)
			require.NoError(t, err)

			assert.Equal(t, tt.wantFixType, s.FixType)
			assert.Equal(t, tt.wantNew, s.NewValue)
			assert.Equal(t, tt.wantConf, s.Confidence)
			require.NotNil(t, s.Snippets)
			assertValidSnippet(t, s.Snippets.Original)
			assertValidSnippet(t, s.Snippets.Fixed)
		})
	}
}

func TestHeadingStyleFor(t *testing.T) {
	assert.Equal(t, "Heading2", headingStyleFor("h2"))
	assert.Equal(t, "Heading1", headingStyleFor("H1"))
	assert.Equal(t, "Heading2", headingStyleFor("not-a-level"))
	assert.Equal(t, "Heading2", headingStyleFor(""))
}

func TestAltTextFor(t *testing.T) {
	assert.Equal(t, "Chart", altTextFor(&model.AccessibilityIssue{Details: model.IssueDetails{"reference_text": "chart below"}}))
	assert.Equal(t, "annual sales", altTextFor(&model.AccessibilityIssue{Details: model.IssueDetails{"image_name": "annual_sales.png"}}))
	assert.Equal(t, "Document image", altTextFor(&model.AccessibilityIssue{Details: model.IssueDetails{}}))
}

func TestParseSuggestion(t *testing.T) {
	t.Run("clean json", func(t *testing.T) {
		s, err := parseSuggestion(`{"suggested_text": "Darken the text", "confidence": 0.9, "fix_type": "color_change", "old_value": "#C8C8C8", "new_value": "#222222"}`)
		require.NoError(t, err)
		assert.Equal(t, FixColorChange, s.FixType)
		assert.Equal(t, "#222222", s.NewValue)
	})

	t.Run("fenced json", func(t *testing.T) {
		raw := "```json\n{\"suggested_text\": \"Darken the text\", \"confidence\": 0.9, \"fix_type\": \"color_change\"}\n```"
		s, err := parseSuggestion(raw)
		require.NoError(t, err)
		assert.Equal(t, "Darken the text", s.SuggestedText)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := parseSuggestion("I think you should darken the text.")
		assert.Error(t, err)
	})

	t.Run("unknown fix type", func(t *testing.T) {
		_, err := parseSuggestion(`{"suggested_text": "x", "confidence": 0.5, "fix_type": "repaint_everything"}`)
		assert.Error(t, err)
	})

	t.Run("confidence out of range", func(t *testing.T) {
		_, err := parseSuggestion(`{"suggested_text": "x", "confidence": 1.5, "fix_type": "manual_review"}`)
		assert.Error(t, err)
	})

	t.Run("missing suggested text", func(t *testing.T) {
		_, err := parseSuggestion(`{"confidence": 0.5, "fix_type": "manual_review"}`)
		assert.Error(t, err)
	})
}

// assertValidSnippet checks the base64 payload is a readable zip with a
// document part.
func assertValidSnippet(t *testing.T, encoded string) {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)

	found := false
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			found = true
		}
	}
	assert.True(t, found, "snippet missing word/document.xml")
}
