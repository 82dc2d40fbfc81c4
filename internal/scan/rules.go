package scan

import (
	"fmt"
	"strconv"
	"strings"

	"docremedy/internal/docx"
	"docremedy/internal/model"
)

// contrastRule flags runs with an explicit font color that fails the WCAG
// contrast threshold against the page background.
type contrastRule struct{}

func (contrastRule) Name() string { return "color_contrast" }

func (contrastRule) Apply(d *docx.Document, cfg *Config) ([]Finding, error) {
	var out []Finding
	for _, b := range blocks(d) {
		if b.para == nil {
			continue
		}
		for ri, run := range b.para.Runs() {
			if run.Props.Color == "" || strings.TrimSpace(run.Text) == "" {
				continue
			}
			ratio, err := ContrastRatio(run.Props.Color, cfg.Contrast.BackgroundColor)
			if err != nil {
				return nil, fmt.Errorf("contrast rule at %s: %w", docx.RunLocator(b.paraNum, ri+1), err)
			}
			if ratio >= cfg.Contrast.MinimumRatio {
				continue
			}

			region := "body text"
			switch {
			case b.para.Style == docx.StyleTitle:
				region = "document title"
			case docx.HeadingLevel(b.para.Style) > 0:
				region = "heading"
			}

			locator := docx.RunLocator(b.paraNum, ri+1)
			out = append(out, Finding{
				Clause:       ClauseContrast,
				Description:  "Insufficient color contrast in " + region,
				WCAGLevel:    "AA",
				ElementXPath: locator,
				Details: model.IssueDetails{
					"contrast_ratio":   round2(ratio),
					"required_ratio":   cfg.Contrast.MinimumRatio,
					"foreground_color": "#" + run.Props.Color,
					"background_color": "#" + docx.NormalizeHex(cfg.Contrast.BackgroundColor),
					"original_content": strings.TrimSpace(run.Text),
					"element_xpath":    locator + "/w:t",
				},
				block: b.index,
				run:   ri + 1,
			})
		}
	}
	return out, nil
}

// fakeHeadingRule flags short, fully bold (or oversized) body paragraphs
// that visually pose as headings without a heading style.
type fakeHeadingRule struct{}

func (fakeHeadingRule) Name() string { return "heading_structure" }

func (fakeHeadingRule) Apply(d *docx.Document, cfg *Config) ([]Finding, error) {
	var out []Finding
	for _, b := range blocks(d) {
		if b.para == nil || b.para.Style != "" {
			continue
		}
		text := strings.TrimSpace(b.para.Text())
		if text == "" || wordCount(text) > cfg.Heading.MaxFakeHeadingWords {
			continue
		}
		if !looksLikeHeading(b.para, cfg) {
			continue
		}

		out = append(out, Finding{
			Clause:       ClauseStructure,
			Description:  "Missing heading structure - paragraph should be a heading",
			WCAGLevel:    "A",
			ElementXPath: docx.ParagraphLocator(b.paraNum),
			Details: model.IssueDetails{
				"issue_type":       "heading_structure",
				"found_element":    "paragraph",
				"expected_element": "heading",
				"original_content": text,
				"element_xpath":    docx.RunLocator(b.paraNum, 1) + "/w:t",
			},
			block: b.index,
		})
	}
	return out, nil
}

func looksLikeHeading(p *docx.Paragraph, cfg *Config) bool {
	runs := p.Runs()
	allBold := true
	anyText := false
	for _, r := range runs {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		anyText = true
		if r.SizePt() >= cfg.Heading.MinFakeHeadingSizePoints {
			return true
		}
		if !r.Props.Bold {
			allBold = false
		}
	}
	return anyText && allBold
}

// headingHierarchyRule flags heading levels that skip over the next
// expected level.
type headingHierarchyRule struct{}

func (headingHierarchyRule) Name() string { return "heading_hierarchy" }

func (headingHierarchyRule) Apply(d *docx.Document, cfg *Config) ([]Finding, error) {
	var out []Finding
	prev := 0
	for _, b := range blocks(d) {
		if b.para == nil {
			continue
		}
		lvl := docx.HeadingLevel(b.para.Style)
		if lvl == 0 {
			continue
		}
		if lvl > prev+1 {
			out = append(out, Finding{
				Clause:       ClauseStructure,
				Description:  fmt.Sprintf("Improper heading hierarchy - h%d without preceding h%d", lvl, prev+1),
				WCAGLevel:    "A",
				ElementXPath: docx.ParagraphLocator(b.paraNum),
				Details: model.IssueDetails{
					"issue_type":       "heading_hierarchy",
					"found_level":      fmt.Sprintf("h%d", lvl),
					"expected_level":   fmt.Sprintf("h%d", prev+1),
					"original_content": strings.TrimSpace(b.para.Text()),
					"element_xpath":    docx.RunLocator(b.paraNum, 1) + "/w:t",
				},
				block: b.index,
			})
		}
		prev = lvl
	}
	return out, nil
}

// altTextRule flags drawings without a description and paragraphs that
// reference a visual with no described image nearby.
type altTextRule struct{}

func (altTextRule) Name() string { return "alt_text" }

func (altTextRule) Apply(d *docx.Document, cfg *Config) ([]Finding, error) {
	var out []Finding
	bs := blocks(d)
	for i, b := range bs {
		if b.para == nil {
			continue
		}

		for ri, run := range b.para.Runs() {
			if run.Drawing == nil || run.Drawing.Descr != "" {
				continue
			}
			locator := docx.RunLocator(b.paraNum, ri+1)
			out = append(out, Finding{
				Clause:       ClauseAltText,
				Description:  "Image missing alternative text",
				WCAGLevel:    "A",
				ElementXPath: locator,
				Details: model.IssueDetails{
					"issue_type":       "missing_alt_text",
					"image_name":       run.Drawing.Name,
					"original_content": "",
					"element_xpath":    locator,
				},
				block: b.index,
				run:   ri + 1,
			})
		}

		text := strings.TrimSpace(b.para.Text())
		ref := matchReference(text, cfg.AltText.VisualReferences)
		if ref == "" {
			continue
		}
		if describedImageNearby(bs, i) {
			continue
		}
		out = append(out, Finding{
			Clause:       ClauseAltText,
			Description:  "Missing alternative text for referenced image",
			WCAGLevel:    "A",
			ElementXPath: docx.ParagraphLocator(b.paraNum),
			Details: model.IssueDetails{
				"issue_type":       "missing_alt_text",
				"reference_text":   ref,
				"original_content": text,
				"element_xpath":    docx.RunLocator(b.paraNum, 1) + "/w:t",
			},
			block: b.index,
		})
	}
	return out, nil
}

func matchReference(text string, refs []string) string {
	lower := strings.ToLower(text)
	for _, ref := range refs {
		if strings.Contains(lower, ref) {
			return ref
		}
	}
	return ""
}

func describedImageNearby(bs []blockInfo, i int) bool {
	for j := i - 1; j <= i+1; j++ {
		if j < 0 || j >= len(bs) || bs[j].para == nil {
			continue
		}
		for _, run := range bs[j].para.Runs() {
			if run.Drawing != nil && run.Drawing.Descr != "" {
				return true
			}
		}
	}
	return false
}

// tableHeaderRule flags tables whose first row is not marked as a header row.
type tableHeaderRule struct{}

func (tableHeaderRule) Name() string { return "table_headers" }

func (tableHeaderRule) Apply(d *docx.Document, cfg *Config) ([]Finding, error) {
	var out []Finding
	for _, b := range blocks(d) {
		if b.table == nil || len(b.table.Rows) == 0 || b.table.Rows[0].Header {
			continue
		}
		out = append(out, Finding{
			Clause:       ClauseStructure,
			Description:  "Table missing header row",
			WCAGLevel:    "A",
			ElementXPath: docx.TableLocator(b.tableNum),
			Details: model.IssueDetails{
				"issue_type":       "table_headers",
				"table_rows":       len(b.table.Rows),
				"table_columns":    b.table.Columns(),
				"original_content": "Data table without headers",
				"element_xpath":    docx.TableLocator(b.tableNum),
			},
			block: b.index,
		})
	}
	return out, nil
}

// linkTextRule flags hyperlinks, and runs styled as links, whose text is a
// vague phrase.
type linkTextRule struct{}

func (linkTextRule) Name() string { return "link_text" }

func (linkTextRule) Apply(d *docx.Document, cfg *Config) ([]Finding, error) {
	var out []Finding
	linkColor := docx.NormalizeHex(cfg.LinkText.LinkStyleColor)
	for _, b := range blocks(d) {
		if b.para == nil {
			continue
		}
		context := strings.TrimSpace(b.para.Text())

		runIdx := 0
		for _, child := range b.para.Children {
			switch {
			case child.Hyperlink != nil:
				first := runIdx + 1
				var sb strings.Builder
				for _, r := range child.Hyperlink.Runs {
					sb.WriteString(r.Text)
					runIdx++
				}
				if text := strings.TrimSpace(sb.String()); isVague(text, cfg.LinkText.VaguePhrases) {
					out = append(out, linkFinding(b, first, text, context))
				}
			case child.Run != nil:
				runIdx++
				if linkColor == "" || child.Run.Props.Color != linkColor {
					continue
				}
				if text := strings.TrimSpace(child.Run.Text); isVague(text, cfg.LinkText.VaguePhrases) {
					out = append(out, linkFinding(b, runIdx, text, context))
				}
			}
		}
	}
	return out, nil
}

func linkFinding(b blockInfo, runNum int, text, context string) Finding {
	locator := docx.RunLocator(b.paraNum, runNum)
	return Finding{
		Clause:       ClauseLinkText,
		Description:  fmt.Sprintf("Link text not descriptive - %q is not meaningful", text),
		WCAGLevel:    "A",
		ElementXPath: locator,
		Details: model.IssueDetails{
			"issue_type":       "link_text",
			"link_text":        text,
			"context":          context,
			"original_content": text,
			"element_xpath":    locator + "/w:t",
		},
		block: b.index,
		run:   runNum,
	}
}

func isVague(text string, phrases []string) bool {
	norm := strings.ToLower(strings.Trim(text, " .,:;!?"))
	if norm == "" {
		return false
	}
	for _, p := range phrases {
		if norm == p {
			return true
		}
	}
	return false
}

// fontSizeRule flags runs with an explicit font size below the minimum.
type fontSizeRule struct{}

func (fontSizeRule) Name() string { return "font_size" }

func (fontSizeRule) Apply(d *docx.Document, cfg *Config) ([]Finding, error) {
	var out []Finding
	for _, b := range blocks(d) {
		if b.para == nil {
			continue
		}
		for ri, run := range b.para.Runs() {
			if run.Props.SizeHalfPoints == 0 || strings.TrimSpace(run.Text) == "" {
				continue
			}
			if run.SizePt() >= cfg.FontSize.MinimumPoints {
				continue
			}
			locator := docx.RunLocator(b.paraNum, ri+1)
			out = append(out, Finding{
				Clause:       ClauseFontSize,
				Description:  "Text too small to read without zooming",
				WCAGLevel:    "AA",
				ElementXPath: locator,
				Details: model.IssueDetails{
					"issue_type":       "font_size",
					"current_size":     formatPt(run.SizePt()),
					"minimum_size":     formatPt(cfg.FontSize.MinimumPoints),
					"original_content": strings.TrimSpace(run.Text),
					"element_xpath":    locator + "/w:t",
				},
				block: b.index,
				run:   ri + 1,
			})
		}
	}
	return out, nil
}

func formatPt(pt float64) string {
	return strconv.FormatFloat(pt, 'f', -1, 64) + "pt"
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
