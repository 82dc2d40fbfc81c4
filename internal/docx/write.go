package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const documentOpenTag = `<w:document` +
	` xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
	` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
	` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
	` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
	` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`

// Bytes serializes the document into a complete DOCX archive containing the
// minimal part set (content types, package relationships, document, styles).
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{documentPart, d.DocumentXML()},
		{"word/styles.xml", []byte(stylesXML)},
		{relsPart, []byte(documentRelsXML)},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := w.Write(part.content); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Patch rewrites word/document.xml inside src with the serialized form of d,
// copying every other part verbatim. Styles, images, and package metadata of
// the source document are preserved.
func Patch(src []byte, d *Document) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return nil, fmt.Errorf("open docx archive: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	replaced := false

	for _, f := range zr.File {
		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", f.Name, err)
		}
		if f.Name == documentPart {
			if _, err := w.Write(d.DocumentXML()); err != nil {
				return nil, fmt.Errorf("write %s: %w", f.Name, err)
			}
			replaced = true
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		if _, err := io.Copy(w, rc); err != nil {
			rc.Close()
			return nil, fmt.Errorf("copy %s: %w", f.Name, err)
		}
		rc.Close()
	}
	if !replaced {
		return nil, ErrNoDocumentPart
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// DocumentXML serializes the body into word/document.xml markup.
func (d *Document) DocumentXML() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(documentOpenTag)
	b.WriteString("<w:body>")
	for _, it := range d.Body.Items {
		switch {
		case it.Para != nil:
			writeParagraph(&b, it.Para)
		case it.Table != nil:
			writeTable(&b, it.Table)
		}
	}
	if d.Body.SectPrXML != "" {
		b.WriteString("<w:sectPr>")
		b.WriteString(d.Body.SectPrXML)
		b.WriteString("</w:sectPr>")
	}
	b.WriteString("</w:body></w:document>")
	return b.Bytes()
}

func writeParagraph(b *bytes.Buffer, p *Paragraph) {
	b.WriteString("<w:p>")
	if p.Style != "" {
		b.WriteString(`<w:pPr><w:pStyle w:val="`)
		writeEscaped(b, p.Style)
		b.WriteString(`"/></w:pPr>`)
	}
	for _, c := range p.Children {
		switch {
		case c.Run != nil:
			writeRun(b, c.Run)
		case c.Hyperlink != nil:
			b.WriteString("<w:hyperlink")
			if c.Hyperlink.RelID != "" {
				b.WriteString(` r:id="`)
				writeEscaped(b, c.Hyperlink.RelID)
				b.WriteString(`"`)
			}
			b.WriteString(">")
			for _, r := range c.Hyperlink.Runs {
				writeRun(b, r)
			}
			b.WriteString("</w:hyperlink>")
		}
	}
	b.WriteString("</w:p>")
}

func writeRun(b *bytes.Buffer, r *Run) {
	b.WriteString("<w:r>")
	writeRunProps(b, r.Props)
	if r.Drawing != nil && r.Drawing.RawXML != "" {
		b.WriteString("<w:drawing>")
		b.WriteString(r.Drawing.RawXML)
		b.WriteString("</w:drawing>")
	}
	if r.Text != "" {
		b.WriteString(`<w:t xml:space="preserve">`)
		writeEscaped(b, r.Text)
		b.WriteString("</w:t>")
	}
	b.WriteString("</w:r>")
}

// writeRunProps emits rPr children in the CT_RPr schema order: b, i,
// color, sz, u.
func writeRunProps(b *bytes.Buffer, props RunProps) {
	if props == (RunProps{}) {
		return
	}
	b.WriteString("<w:rPr>")
	if props.Bold {
		b.WriteString("<w:b/>")
	}
	if props.Italic {
		b.WriteString("<w:i/>")
	}
	if props.Color != "" {
		b.WriteString(`<w:color w:val="`)
		writeEscaped(b, props.Color)
		b.WriteString(`"/>`)
	}
	if props.SizeHalfPoints > 0 {
		b.WriteString(`<w:sz w:val="`)
		b.WriteString(strconv.Itoa(props.SizeHalfPoints))
		b.WriteString(`"/><w:szCs w:val="`)
		b.WriteString(strconv.Itoa(props.SizeHalfPoints))
		b.WriteString(`"/>`)
	}
	if props.Underline != "" {
		b.WriteString(`<w:u w:val="`)
		writeEscaped(b, props.Underline)
		b.WriteString(`"/>`)
	}
	b.WriteString("</w:rPr>")
}

func writeTable(b *bytes.Buffer, t *Table) {
	b.WriteString("<w:tbl>")
	b.WriteString(`<w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="0" w:type="auto"/></w:tblPr>`)
	b.WriteString("<w:tblGrid>")
	for i := 0; i < t.Columns(); i++ {
		b.WriteString(`<w:gridCol/>`)
	}
	b.WriteString("</w:tblGrid>")
	for _, row := range t.Rows {
		b.WriteString("<w:tr>")
		if row.Header {
			b.WriteString("<w:trPr><w:tblHeader/></w:trPr>")
		}
		for _, cell := range row.Cells {
			b.WriteString("<w:tc><w:tcPr/>")
			if len(cell.Paragraphs) == 0 {
				// A cell must hold at least one paragraph to stay valid.
				b.WriteString("<w:p/>")
			}
			for _, p := range cell.Paragraphs {
				writeParagraph(b, p)
			}
			b.WriteString("</w:tc>")
		}
		b.WriteString("</w:tr>")
	}
	b.WriteString("</w:tbl>")
}

func writeEscaped(b *bytes.Buffer, s string) {
	// EscapeText only fails on invalid writers; bytes.Buffer never errors.
	_ = xml.EscapeText(b, []byte(s))
}

const contentTypesXML = xmlHeader +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const packageRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

// stylesXML defines the paragraph styles the builder can reference. Sizes are
// in half-points; heading styles carry outline levels so assistive tools and
// navigation panes see the structure.
const stylesXML = xmlHeader +
	`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/>` +
	`<w:rPr><w:sz w:val="56"/><w:szCs w:val="56"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:sz w:val="32"/><w:szCs w:val="32"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:outlineLvl w:val="1"/></w:pPr><w:rPr><w:b/><w:sz w:val="28"/><w:szCs w:val="28"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:outlineLvl w:val="2"/></w:pPr><w:rPr><w:b/><w:sz w:val="26"/><w:szCs w:val="26"/></w:rPr></w:style>` +
	`</w:styles>`
