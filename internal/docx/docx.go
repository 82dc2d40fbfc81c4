// Package docx reads, builds, mutates, and renders the WordprocessingML
// subset this service remediates: paragraphs with styled runs, hyperlinks,
// tables, and inline drawings. Anything outside that subset survives a
// read/patch round trip untouched because only word/document.xml is rewritten.
package docx

import (
	"fmt"
	"strings"
)

// Heading style identifiers as stored in w:pStyle. Title is treated as the
// top-level heading (level 1) for hierarchy purposes.
const (
	StyleTitle    = "Title"
	StyleHeading1 = "Heading1"
	StyleHeading2 = "Heading2"
	StyleHeading3 = "Heading3"
)

// Document is the in-memory form of a DOCX body plus the hyperlink
// relationships needed for rendering.
type Document struct {
	Body Body

	// rels maps relationship IDs (r:id) to their targets, read from
	// word/_rels/document.xml.rels. Empty for built documents.
	rels map[string]string
}

// Body holds the top-level block items in document order. sectPr content is
// carried verbatim so page setup survives a rewrite.
type Body struct {
	Items     []BlockItem
	SectPrXML string
}

// BlockItem is either a paragraph or a table; exactly one field is set.
type BlockItem struct {
	Para  *Paragraph
	Table *Table
}

// Paragraph is a single w:p with an optional style and ordered children.
type Paragraph struct {
	Style    string
	Children []ParaChild
}

// ParaChild is either a plain run or a hyperlink; exactly one field is set.
type ParaChild struct {
	Run       *Run
	Hyperlink *Hyperlink
}

// Hyperlink groups the runs of a w:hyperlink together with its r:id.
type Hyperlink struct {
	RelID string
	Runs  []*Run
}

// Run is a w:r: a piece of text with uniform formatting, optionally
// carrying an inline drawing.
type Run struct {
	Props   RunProps
	Text    string
	Drawing *Drawing
}

// RunProps models the run properties this service inspects and edits.
// Color is an uppercase hex triplet without '#'; SizeHalfPoints follows the
// w:sz convention (24 = 12pt). Zero values mean "not set".
type RunProps struct {
	Bold           bool
	Italic         bool
	Underline      string
	Color          string
	SizeHalfPoints int
}

// Drawing is an inline image anchor. For parsed documents RawXML holds the
// original drawing markup so image data survives a rewrite; Descr and Name
// mirror the wp:docPr attributes.
type Drawing struct {
	Name   string
	Descr  string
	RawXML string
}

// Table is a w:tbl of rows and cells.
type Table struct {
	Rows []*TableRow
}

// TableRow is a w:tr. Header mirrors the w:tblHeader row property.
type TableRow struct {
	Header bool
	Cells  []*TableCell
}

// TableCell is a w:tc holding one or more paragraphs.
type TableCell struct {
	Paragraphs []*Paragraph
}

// New returns an empty document ready for the builder methods.
func New() *Document {
	return &Document{}
}

// AddParagraph appends a body paragraph. When text is non-empty the
// paragraph starts with a single run holding it.
func (d *Document) AddParagraph(text string) *Paragraph {
	p := &Paragraph{}
	if text != "" {
		p.AddRun(text)
	}
	d.Body.Items = append(d.Body.Items, BlockItem{Para: p})
	return p
}

// AddHeading appends a heading paragraph. Level 0 maps to the Title style,
// levels 1-6 to Heading1-Heading6.
func (d *Document) AddHeading(text string, level int) *Paragraph {
	p := d.AddParagraph(text)
	if level <= 0 {
		p.Style = StyleTitle
	} else {
		p.Style = fmt.Sprintf("Heading%d", level)
	}
	return p
}

// AddTable appends a table with the given dimensions; every cell starts
// with one empty paragraph.
func (d *Document) AddTable(rows, cols int) *Table {
	t := &Table{}
	for i := 0; i < rows; i++ {
		row := &TableRow{}
		for j := 0; j < cols; j++ {
			row.Cells = append(row.Cells, &TableCell{Paragraphs: []*Paragraph{{}}})
		}
		t.Rows = append(t.Rows, row)
	}
	d.Body.Items = append(d.Body.Items, BlockItem{Table: t})
	return t
}

// AddRun appends a plain run to the paragraph.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{Text: text}
	p.Children = append(p.Children, ParaChild{Run: r})
	return r
}

// AddHyperlink appends a hyperlink with a single run holding text.
func (p *Paragraph) AddHyperlink(relID, text string) *Hyperlink {
	h := &Hyperlink{RelID: relID, Runs: []*Run{{Text: text}}}
	p.Children = append(p.Children, ParaChild{Hyperlink: h})
	return h
}

// Runs returns the paragraph's runs flattened in document order, including
// runs nested in hyperlinks. Locator run indexes are positions in this list.
func (p *Paragraph) Runs() []*Run {
	var out []*Run
	for _, c := range p.Children {
		switch {
		case c.Run != nil:
			out = append(out, c.Run)
		case c.Hyperlink != nil:
			out = append(out, c.Hyperlink.Runs...)
		}
	}
	return out
}

// Text concatenates all run text in the paragraph.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs() {
		b.WriteString(r.Text)
	}
	return b.String()
}

// linked reports whether run is part of a hyperlink child.
func (p *Paragraph) linked(run *Run) bool {
	for _, c := range p.Children {
		if c.Hyperlink == nil {
			continue
		}
		for _, r := range c.Hyperlink.Runs {
			if r == run {
				return true
			}
		}
	}
	return false
}

// Paragraphs returns the body-level paragraphs in order (table cell
// paragraphs are not included; they are addressed through their table).
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, it := range d.Body.Items {
		if it.Para != nil {
			out = append(out, it.Para)
		}
	}
	return out
}

// Tables returns the body-level tables in order.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, it := range d.Body.Items {
		if it.Table != nil {
			out = append(out, it.Table)
		}
	}
	return out
}

// HyperlinkTarget resolves an r:id against the document relationships.
func (d *Document) HyperlinkTarget(relID string) string {
	return d.rels[relID]
}

// Cell returns the cell at row i, column j (0-based) or nil when out of range.
func (t *Table) Cell(i, j int) *TableCell {
	if i < 0 || i >= len(t.Rows) {
		return nil
	}
	row := t.Rows[i]
	if j < 0 || j >= len(row.Cells) {
		return nil
	}
	return row.Cells[j]
}

// Columns returns the column count of the widest row.
func (t *Table) Columns() int {
	n := 0
	for _, row := range t.Rows {
		if len(row.Cells) > n {
			n = len(row.Cells)
		}
	}
	return n
}

// Text returns the concatenated text of the cell's paragraphs.
func (c *TableCell) Text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

// SetText replaces the cell content with a single paragraph holding text.
func (c *TableCell) SetText(text string) {
	p := &Paragraph{}
	p.AddRun(text)
	c.Paragraphs = []*Paragraph{p}
}

// SetBold toggles bold on the run.
func (r *Run) SetBold(b bool) *Run {
	r.Props.Bold = b
	return r
}

// SetItalic toggles italics on the run.
func (r *Run) SetItalic(b bool) *Run {
	r.Props.Italic = b
	return r
}

// SetUnderline sets the w:u value ("single", "double", ...); empty clears it.
func (r *Run) SetUnderline(style string) *Run {
	r.Props.Underline = style
	return r
}

// SetColor sets the run color from a hex triplet, with or without '#'.
func (r *Run) SetColor(hex string) *Run {
	r.Props.Color = NormalizeHex(hex)
	return r
}

// SetSizePt sets the font size in points.
func (r *Run) SetSizePt(pt int) *Run {
	r.Props.SizeHalfPoints = pt * 2
	return r
}

// SizePt returns the run's font size in points, or 0 when unset.
func (r *Run) SizePt() float64 {
	return float64(r.Props.SizeHalfPoints) / 2
}

// HeadingLevel maps a paragraph style to its heading level: Title and
// Heading1 are level 1, HeadingN is level N. Non-heading styles return 0.
func HeadingLevel(style string) int {
	if style == StyleTitle {
		return 1
	}
	if !strings.HasPrefix(style, "Heading") {
		return 0
	}
	var n int
	if _, err := fmt.Sscanf(style, "Heading%d", &n); err != nil || n < 1 || n > 9 {
		return 0
	}
	return n
}

// NormalizeHex uppercases a hex color triplet and strips a leading '#'.
func NormalizeHex(s string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), "#"))
}
