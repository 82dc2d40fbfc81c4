package suggest

import (
	"encoding/base64"
	"fmt"
	"strings"

	"docremedy/internal/docx"
	"docremedy/internal/model"
)

// BuildSnippets renders a minimal before/after DOCX pair for a suggestion so
// the client can preview the fix in isolation.
func BuildSnippets(issue *model.AccessibilityIssue, s *Suggestion) (*SnippetPair, error) {
	content := issue.Details.String("original_content")
	if content == "" {
		content = "Affected document content"
	}

	var before, after *docx.Document
	switch s.FixType {
	case FixColorChange:
		before = colorSnippet(content, s.OldValue)
		after = colorSnippet(content, s.NewValue)

	case FixHeadingStructure:
		before = docx.New()
		before.AddParagraph(content)
		after = headingSnippet(content, s.NewValue)

	case FixHeadingLevel:
		before = headingSnippet(content, headingStyleFor(s.OldValue))
		after = headingSnippet(content, s.NewValue)

	case FixAltText:
		before = docx.New()
		before.AddParagraph(content)
		after = docx.New()
		after.AddParagraph(content)
		after.AddParagraph(fmt.Sprintf("[Image: %s]", s.NewValue))

	case FixTableHeader:
		rows := issue.Details.Int("table_rows")
		if rows <= 1 {
			rows = 2
		}
		cols := issue.Details.Int("table_columns")
		if cols <= 0 {
			cols = 3
		}
		before = tableSnippet(rows, cols, nil)
		after = tableSnippet(rows, cols, strings.Split(s.NewValue, ", "))

	case FixLinkText:
		before = linkSnippet(s.OldValue)
		after = linkSnippet(s.NewValue)

	case FixFontSize:
		before = sizeSnippet(content, s.OldValue)
		after = sizeSnippet(content, s.NewValue)

	default:
		before = docx.New()
		before.AddParagraph(content)
		after = docx.New()
		after.AddParagraph(content)
	}

	orig, err := encodeSnippet(before)
	if err != nil {
		return nil, err
	}
	fixed, err := encodeSnippet(after)
	if err != nil {
		return nil, err
	}
	return &SnippetPair{Original: orig, Fixed: fixed}, nil
}

func encodeSnippet(d *docx.Document) (string, error) {
	b, err := d.Bytes()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func colorSnippet(text, hex string) *docx.Document {
	d := docx.New()
	p := d.AddParagraph(text)
	if hex != "" {
		p.Runs()[0].SetColor(hex)
	}
	return d
}

func headingSnippet(text, style string) *docx.Document {
	d := docx.New()
	p := d.AddParagraph(text)
	p.Style = style
	return d
}

func tableSnippet(rows, cols int, headers []string) *docx.Document {
	d := docx.New()
	t := d.AddTable(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			t.Cell(i, j).SetText(fmt.Sprintf("Data %d-%d", i+1, j+1))
		}
	}
	if len(headers) > 0 {
		t.Rows[0].Header = true
		for j, h := range headers {
			if j >= cols {
				break
			}
			t.Cell(0, j).SetText(h)
			t.Cell(0, j).Paragraphs[0].Runs()[0].SetBold(true)
		}
	}
	return d
}

func linkSnippet(text string) *docx.Document {
	d := docx.New()
	p := d.AddParagraph("Click ")
	p.AddRun(text).SetColor("0000FF").SetUnderline("single")
	p.AddRun(" for more information.")
	return d
}

func sizeSnippet(text, size string) *docx.Document {
	d := docx.New()
	p := d.AddParagraph(text)
	if pt := parsePt(size); pt > 0 {
		p.Runs()[0].SetSizePt(pt)
	}
	return d
}

func parsePt(s string) int {
	n := 0
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%dpt", &n); err != nil {
		return 0
	}
	return n
}
