package docx

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// RenderResult is the HTML preview of a document plus any warnings raised
// for constructs the renderer could not map faithfully.
type RenderResult struct {
	HTML     string
	Messages []string
}

// Render converts the document body to preview HTML. Heading styles map to
// h1-h6, run formatting to inline elements, and tables keep their header
// rows as th cells so the preview mirrors what assistive tools would expose.
func (d *Document) Render() RenderResult {
	r := &renderer{doc: d, seenStyles: map[string]bool{}}
	for _, it := range d.Body.Items {
		switch {
		case it.Para != nil:
			r.paragraph(it.Para)
		case it.Table != nil:
			r.table(it.Table)
		}
	}
	return RenderResult{HTML: r.out.String(), Messages: r.messages}
}

type renderer struct {
	doc        *Document
	out        strings.Builder
	messages   []string
	seenStyles map[string]bool
}

func (r *renderer) warn(format string, args ...any) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

func (r *renderer) paragraph(p *Paragraph) {
	tag := "p"
	switch {
	case p.Style == StyleTitle:
		tag = "h1"
	case HeadingLevel(p.Style) > 0:
		lvl := HeadingLevel(p.Style)
		if lvl > 6 {
			lvl = 6
		}
		tag = "h" + strconv.Itoa(lvl)
	case p.Style != "":
		if !r.seenStyles[p.Style] {
			r.seenStyles[p.Style] = true
			r.warn("unrecognized paragraph style: %s", p.Style)
		}
	}

	r.out.WriteString("<" + tag + ">")
	for _, c := range p.Children {
		switch {
		case c.Run != nil:
			r.run(c.Run)
		case c.Hyperlink != nil:
			r.hyperlink(c.Hyperlink)
		}
	}
	r.out.WriteString("</" + tag + ">")
}

func (r *renderer) hyperlink(h *Hyperlink) {
	target := r.doc.HyperlinkTarget(h.RelID)
	if target == "" {
		target = "#"
		r.warn("hyperlink target not resolved for relationship %q", h.RelID)
	}
	r.out.WriteString(`<a href="` + html.EscapeString(target) + `">`)
	for _, run := range h.Runs {
		r.run(run)
	}
	r.out.WriteString("</a>")
}

func (r *renderer) run(run *Run) {
	if run.Drawing != nil {
		if run.Drawing.Descr != "" {
			r.out.WriteString(`<span role="img" aria-label="` + html.EscapeString(run.Drawing.Descr) + `">[image: ` + html.EscapeString(run.Drawing.Descr) + `]</span>`)
		} else {
			r.out.WriteString(`<span role="img">[image]</span>`)
			r.warn("drawing without alternative text omitted from preview")
		}
	}
	if run.Text == "" {
		return
	}

	opening, closing := runWrappers(run.Props)
	r.out.WriteString(opening)
	r.out.WriteString(html.EscapeString(run.Text))
	r.out.WriteString(closing)
}

// runWrappers builds the nested inline markup for a run's formatting.
func runWrappers(props RunProps) (opening, closing string) {
	var styles []string
	if props.Color != "" {
		styles = append(styles, "color:#"+props.Color)
	}
	if props.SizeHalfPoints > 0 {
		pt := strconv.FormatFloat(float64(props.SizeHalfPoints)/2, 'f', -1, 64)
		styles = append(styles, "font-size:"+pt+"pt")
	}

	if len(styles) > 0 {
		opening += `<span style="` + strings.Join(styles, ";") + `">`
	}
	if props.Bold {
		opening += "<strong>"
	}
	if props.Italic {
		opening += "<em>"
	}
	if props.Underline != "" {
		opening += "<u>"
	}

	if props.Underline != "" {
		closing += "</u>"
	}
	if props.Italic {
		closing += "</em>"
	}
	if props.Bold {
		closing += "</strong>"
	}
	if len(styles) > 0 {
		closing += "</span>"
	}
	return opening, closing
}

func (r *renderer) table(t *Table) {
	r.out.WriteString("<table>")
	for i, row := range t.Rows {
		cellTag := "td"
		if row.Header {
			cellTag = "th"
		}
		if i == 0 && row.Header {
			r.out.WriteString("<thead>")
		}
		r.out.WriteString("<tr>")
		for _, cell := range row.Cells {
			r.out.WriteString("<" + cellTag + ">")
			for j, p := range cell.Paragraphs {
				if j > 0 {
					r.out.WriteString("<br/>")
				}
				for _, c := range p.Children {
					switch {
					case c.Run != nil:
						r.run(c.Run)
					case c.Hyperlink != nil:
						r.hyperlink(c.Hyperlink)
					}
				}
			}
			r.out.WriteString("</" + cellTag + ">")
		}
		r.out.WriteString("</tr>")
		if i == 0 && row.Header {
			r.out.WriteString("</thead>")
		}
	}
	r.out.WriteString("</table>")
}
