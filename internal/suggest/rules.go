package suggest

import (
	"context"
	"fmt"
	"strings"

	"docremedy/internal/model"
)

// AccessibleTextColor is the replacement color the rule table proposes for
// contrast failures; #333333 clears the AA threshold against white with
// room to spare.
const AccessibleTextColor = "#333333"

// ruleSuggester derives a fix from the issue type and its recorded details.
// It is deterministic and needs no network access.
type ruleSuggester struct{}

// NewRuleSuggester returns the built-in rule-table suggester.
func NewRuleSuggester() Suggester {
	return ruleSuggester{}
}

func (ruleSuggester) Suggest(ctx context.Context, issue *model.AccessibilityIssue) (*Suggestion, error) {
	s := tableSuggestion(issue)
	s.IssueID = issue.ID

	snippets, err := BuildSnippets(issue, s)
	if err != nil {
		return nil, fmt.Errorf("build snippets: %w", err)
	}
	s.Snippets = snippets
	return s, nil
}

// issueKind normalizes the issue to a fix-table key. Contrast issues carry
// no issue_type in their details, so the clause decides.
func issueKind(issue *model.AccessibilityIssue) string {
	if t := issue.Details.String("issue_type"); t != "" {
		return t
	}
	if strings.Contains(issue.Clause, "1.4.3") {
		return "color_contrast"
	}
	return ""
}

func tableSuggestion(issue *model.AccessibilityIssue) *Suggestion {
	switch issueKind(issue) {
	case "color_contrast":
		old := issue.Details.String("foreground_color")
		return &Suggestion{
			SuggestedText: fmt.Sprintf("Change text color from %s to %s for better contrast", old, AccessibleTextColor),
			Confidence:    0.95,
			FixType:       FixColorChange,
			OldValue:      old,
			NewValue:      AccessibleTextColor,
			ElementXPath:  issue.ElementXPath + "/w:rPr/w:color",
		}

	case "heading_structure":
		return &Suggestion{
			SuggestedText: "Convert the paragraph to a Heading 2 for proper document structure",
			Confidence:    0.88,
			FixType:       FixHeadingStructure,
			OldValue:      "paragraph",
			NewValue:      "Heading2",
			ElementXPath:  issue.ElementXPath + "/w:pPr/w:pStyle",
		}

	case "heading_hierarchy":
		found := issue.Details.String("found_level")
		expected := issue.Details.String("expected_level")
		return &Suggestion{
			SuggestedText: fmt.Sprintf("Change heading level from %s to %s to maintain proper hierarchy", found, expected),
			Confidence:    0.92,
			FixType:       FixHeadingLevel,
			OldValue:      found,
			NewValue:      headingStyleFor(expected),
			ElementXPath:  issue.ElementXPath + "/w:pPr/w:pStyle",
		}

	case "missing_alt_text":
		alt := altTextFor(issue)
		return &Suggestion{
			SuggestedText: fmt.Sprintf("Add %q as alternative text for the referenced image", alt),
			Confidence:    0.85,
			FixType:       FixAltText,
			OldValue:      "",
			NewValue:      alt,
			ElementXPath:  issue.ElementXPath,
		}

	case "table_headers":
		cols := issue.Details.Int("table_columns")
		if cols <= 0 {
			cols = 3
		}
		labels := make([]string, cols)
		for i := range labels {
			labels[i] = fmt.Sprintf("Column %d", i+1)
		}
		joined := strings.Join(labels, ", ")
		return &Suggestion{
			SuggestedText: fmt.Sprintf("Add header row with %q to the table", joined),
			Confidence:    0.90,
			FixType:       FixTableHeader,
			OldValue:      "",
			NewValue:      joined,
			ElementXPath:  issue.ElementXPath + "/w:tr[1]",
		}

	case "link_text":
		old := issue.Details.String("link_text")
		return &Suggestion{
			SuggestedText: fmt.Sprintf("Change link text from %q to %q for better description", old, "download the report"),
			Confidence:    0.87,
			FixType:       FixLinkText,
			OldValue:      old,
			NewValue:      "download the report",
			ElementXPath:  issue.ElementXPath + "/w:t",
		}

	case "font_size":
		old := issue.Details.String("current_size")
		min := issue.Details.String("minimum_size")
		if min == "" {
			min = "12pt"
		}
		return &Suggestion{
			SuggestedText: fmt.Sprintf("Increase font size from %s to %s for better readability", old, min),
			Confidence:    0.93,
			FixType:       FixFontSize,
			OldValue:      old,
			NewValue:      min,
			ElementXPath:  issue.ElementXPath + "/w:rPr/w:sz",
		}
	}

	return &Suggestion{
		SuggestedText: "Manual review required for this issue type",
		Confidence:    0.5,
		FixType:       FixManualReview,
		ElementXPath:  issue.ElementXPath,
	}
}

// headingStyleFor maps an "h2"-form level to its paragraph style name.
func headingStyleFor(level string) string {
	n := 0
	if _, err := fmt.Sscanf(strings.ToLower(level), "h%d", &n); err != nil || n < 1 || n > 9 {
		return "Heading2"
	}
	return fmt.Sprintf("Heading%d", n)
}

// altTextFor derives a starting alt text from what the scanner recorded.
func altTextFor(issue *model.AccessibilityIssue) string {
	if ref := issue.Details.String("reference_text"); ref != "" {
		// "chart below" -> "Chart"
		word := strings.Fields(ref)[0]
		return strings.ToUpper(word[:1]) + word[1:]
	}
	if name := issue.Details.String("image_name"); name != "" {
		base := name
		if i := strings.LastIndex(base, "."); i > 0 {
			base = base[:i]
		}
		return strings.ReplaceAll(base, "_", " ")
	}
	return "Document image"
}
