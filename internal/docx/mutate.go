package docx

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoDrawing is returned by SetAltText when the located element carries
// no inline drawing to describe.
var ErrNoDrawing = errors.New("no drawing at locator")

// SetRunColor recolors the located run, or every run of the paragraph for a
// paragraph-level locator.
func (d *Document) SetRunColor(loc Locator, hex string) error {
	runs, err := d.targetRuns(loc)
	if err != nil {
		return err
	}
	for _, r := range runs {
		r.Props.Color = NormalizeHex(hex)
	}
	return nil
}

// SetRunSizePt resizes the located run, or every run of the paragraph for a
// paragraph-level locator.
func (d *Document) SetRunSizePt(loc Locator, pt int) error {
	if pt <= 0 {
		return fmt.Errorf("font size must be positive, got %d", pt)
	}
	runs, err := d.targetRuns(loc)
	if err != nil {
		return err
	}
	for _, r := range runs {
		r.Props.SizeHalfPoints = pt * 2
	}
	return nil
}

// SetParagraphStyle restyles the paragraph the locator points at (run
// locators resolve to their paragraph).
func (d *Document) SetParagraphStyle(loc Locator, style string) error {
	p, _, _, err := d.Resolve(loc)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("locator %s does not address a paragraph", loc)
	}
	p.Style = style
	return nil
}

// ReplaceText rewrites the located run's text. For a paragraph-level locator
// the paragraph collapses to a single run carrying its first run's
// formatting, which keeps colors and sizes stable across text edits.
func (d *Document) ReplaceText(loc Locator, text string) error {
	p, run, _, err := d.Resolve(loc)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("locator %s does not address a paragraph", loc)
	}
	if run != nil {
		run.Text = text
		return nil
	}
	var props RunProps
	if runs := p.Runs(); len(runs) > 0 {
		props = runs[0].Props
	}
	p.Children = []ParaChild{{Run: &Run{Props: props, Text: text}}}
	return nil
}

// MarkTableHeader promotes the first row of the located table to a header
// row. When labels are given they replace the first-row cell texts in bold;
// missing cells are left as they are.
func (d *Document) MarkTableHeader(loc Locator, labels []string) error {
	_, _, t, err := d.Resolve(loc)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("locator %s does not address a table", loc)
	}
	if len(t.Rows) == 0 {
		return fmt.Errorf("table at %s has no rows", loc)
	}
	first := t.Rows[0]
	first.Header = true
	for i, label := range labels {
		if i >= len(first.Cells) {
			break
		}
		first.Cells[i].SetText(label)
		for _, r := range first.Cells[i].Paragraphs[0].Runs() {
			r.Props.Bold = true
		}
	}
	return nil
}

// SetAltText sets the description of the first drawing at the locator. The
// raw drawing markup is patched in place so image data is untouched.
func (d *Document) SetAltText(loc Locator, descr string) error {
	runs, err := d.targetRuns(loc)
	if err != nil {
		return err
	}
	for _, r := range runs {
		if r.Drawing == nil {
			continue
		}
		r.Drawing.Descr = descr
		if r.Drawing.RawXML != "" {
			r.Drawing.RawXML = setDescrAttr(r.Drawing.RawXML, descr)
		}
		return nil
	}
	return ErrNoDrawing
}

// targetRuns resolves a locator to the runs it covers: the single run for a
// run locator, all runs of the paragraph for a paragraph locator.
func (d *Document) targetRuns(loc Locator) ([]*Run, error) {
	p, run, _, err := d.Resolve(loc)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("locator %s does not address a paragraph", loc)
	}
	if run != nil {
		return []*Run{run}, nil
	}
	runs := p.Runs()
	if len(runs) == 0 {
		return nil, fmt.Errorf("paragraph at %s has no runs", loc)
	}
	return runs, nil
}

var xmlAttrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// setDescrAttr rewrites (or injects) the descr attribute on the wp:docPr tag
// inside raw drawing markup.
func setDescrAttr(raw, descr string) string {
	tag := docPrPattern.FindString(raw)
	if tag == "" {
		return raw
	}
	escaped := xmlAttrEscaper.Replace(descr)
	var updated string
	if descrPattern.MatchString(tag) {
		updated = descrPattern.ReplaceAllLiteralString(tag, `descr="`+escaped+`"`)
	} else {
		suffix := ">"
		trimmed := strings.TrimSuffix(tag, ">")
		if strings.HasSuffix(trimmed, "/") {
			trimmed = strings.TrimSuffix(trimmed, "/")
			suffix = "/>"
		}
		updated = trimmed + ` descr="` + escaped + `"` + suffix
	}
	return strings.Replace(raw, tag, updated, 1)
}
