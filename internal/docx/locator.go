package docx

import (
	"fmt"
	"regexp"
)

// Locator addresses an element inside the document body using the XPath-like
// form issues carry: //w:p[3] for the third body paragraph, //w:p[3]/w:r[2]
// for its second run, //w:tbl[1] for the first table. Indexes are 1-based;
// paragraph indexes count body-level paragraphs only and run indexes count
// the flattened run list of their paragraph.
type Locator struct {
	Para  int
	Run   int
	Table int
}

var locatorPattern = regexp.MustCompile(`^//w:(p|tbl)\[([1-9][0-9]*)\](?:/w:r\[([1-9][0-9]*)\])?$`)

// ParseLocator parses the string form. Table locators cannot carry a run part.
func ParseLocator(s string) (Locator, error) {
	m := locatorPattern.FindStringSubmatch(s)
	if m == nil {
		return Locator{}, fmt.Errorf("invalid element locator %q", s)
	}
	var loc Locator
	idx := atoiMatched(m[2])
	switch m[1] {
	case "p":
		loc.Para = idx
		if m[3] != "" {
			loc.Run = atoiMatched(m[3])
		}
	case "tbl":
		if m[3] != "" {
			return Locator{}, fmt.Errorf("invalid element locator %q", s)
		}
		loc.Table = idx
	}
	return loc, nil
}

func atoiMatched(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

// ParagraphLocator returns the string form for body paragraph n.
func ParagraphLocator(n int) string {
	return fmt.Sprintf("//w:p[%d]", n)
}

// RunLocator returns the string form for run m of body paragraph n.
func RunLocator(n, m int) string {
	return fmt.Sprintf("//w:p[%d]/w:r[%d]", n, m)
}

// TableLocator returns the string form for body table n.
func TableLocator(n int) string {
	return fmt.Sprintf("//w:tbl[%d]", n)
}

// String renders the locator back to its XPath-like form.
func (l Locator) String() string {
	switch {
	case l.Table > 0:
		return TableLocator(l.Table)
	case l.Para > 0 && l.Run > 0:
		return RunLocator(l.Para, l.Run)
	case l.Para > 0:
		return ParagraphLocator(l.Para)
	}
	return ""
}

// ParagraphAt returns the n-th (1-based) body paragraph.
func (d *Document) ParagraphAt(n int) (*Paragraph, error) {
	paras := d.Paragraphs()
	if n < 1 || n > len(paras) {
		return nil, fmt.Errorf("paragraph %d out of range (document has %d)", n, len(paras))
	}
	return paras[n-1], nil
}

// TableAt returns the n-th (1-based) body table.
func (d *Document) TableAt(n int) (*Table, error) {
	tables := d.Tables()
	if n < 1 || n > len(tables) {
		return nil, fmt.Errorf("table %d out of range (document has %d)", n, len(tables))
	}
	return tables[n-1], nil
}

// Resolve returns the paragraph, run, or table the locator points at.
// Exactly one of run/table is non-nil for run and table locators; paragraph
// locators return only the paragraph.
func (d *Document) Resolve(loc Locator) (*Paragraph, *Run, *Table, error) {
	if loc.Table > 0 {
		t, err := d.TableAt(loc.Table)
		if err != nil {
			return nil, nil, nil, err
		}
		return nil, nil, t, nil
	}
	p, err := d.ParagraphAt(loc.Para)
	if err != nil {
		return nil, nil, nil, err
	}
	if loc.Run == 0 {
		return p, nil, nil, nil
	}
	runs := p.Runs()
	if loc.Run > len(runs) {
		return nil, nil, nil, fmt.Errorf("run %d out of range (paragraph has %d)", loc.Run, len(runs))
	}
	return p, runs[loc.Run-1], nil, nil
}
