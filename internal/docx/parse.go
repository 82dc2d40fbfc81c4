package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const (
	wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relNS  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	documentPart = "word/document.xml"
	relsPart     = "word/_rels/document.xml.rels"
)

// ErrNoDocumentPart is returned when the archive lacks word/document.xml,
// which usually means the upload was not a DOCX file.
var ErrNoDocumentPart = errors.New("missing word/document.xml part")

// Parse reads a DOCX archive into a Document. Only the body subset this
// service works with is modeled; unknown elements are skipped and, for
// sectPr and drawings, preserved verbatim for later rewrites.
func Parse(b []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("open docx archive: %w", err)
	}

	var doc *Document
	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", documentPart, err)
		}
		doc, err = parseDocumentXML(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		break
	}
	if doc == nil {
		return nil, ErrNoDocumentPart
	}

	for _, f := range zr.File {
		if f.Name != relsPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", relsPart, err)
		}
		rels, err := parseRelationships(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		doc.rels = rels
		break
	}

	return doc, nil
}

func parseDocumentXML(r io.Reader) (*Document, error) {
	var raw struct {
		XMLName xml.Name `xml:"document"`
		Body    Body     `xml:"body"`
	}
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode document.xml: %w", err)
	}
	return &Document{Body: raw.Body}, nil
}

func parseRelationships(r io.Reader) (map[string]string, error) {
	var raw struct {
		XMLName xml.Name `xml:"Relationships"`
		Rels    []struct {
			ID     string `xml:"Id,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode document.xml.rels: %w", err)
	}
	rels := make(map[string]string, len(raw.Rels))
	for _, rel := range raw.Rels {
		rels[rel.ID] = rel.Target
	}
	return rels, nil
}

// innerXML captures an element's raw content.
type innerXML struct {
	Content string `xml:",innerxml"`
}

// toggleXML models OOXML on/off properties (w:b, w:tblHeader, ...), which
// are true when present unless the val attribute says otherwise.
type toggleXML struct {
	Val string `xml:"val,attr"`
}

func (t *toggleXML) on() bool {
	if t == nil {
		return false
	}
	switch strings.ToLower(t.Val) {
	case "0", "false", "off", "none":
		return false
	}
	return true
}

type valXML struct {
	Val string `xml:"val,attr"`
}

func isWord(name xml.Name, local string) bool {
	return name.Space == wordNS && name.Local == local
}

// UnmarshalXML walks the body children, keeping paragraphs and tables in
// document order and capturing sectPr verbatim.
func (b *Body) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isWord(t.Name, "p"):
				p := &Paragraph{}
				if err := d.DecodeElement(p, &t); err != nil {
					return err
				}
				b.Items = append(b.Items, BlockItem{Para: p})
			case isWord(t.Name, "tbl"):
				tbl := &Table{}
				if err := d.DecodeElement(tbl, &t); err != nil {
					return err
				}
				b.Items = append(b.Items, BlockItem{Table: tbl})
			case isWord(t.Name, "sectPr"):
				var raw innerXML
				if err := d.DecodeElement(&raw, &t); err != nil {
					return err
				}
				b.SectPrXML = raw.Content
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// UnmarshalXML decodes a w:p, keeping runs and hyperlinks ordered.
func (p *Paragraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isWord(t.Name, "pPr"):
				var props struct {
					Style *valXML `xml:"pStyle"`
				}
				if err := d.DecodeElement(&props, &t); err != nil {
					return err
				}
				if props.Style != nil {
					p.Style = props.Style.Val
				}
			case isWord(t.Name, "r"):
				r := &Run{}
				if err := d.DecodeElement(r, &t); err != nil {
					return err
				}
				p.Children = append(p.Children, ParaChild{Run: r})
			case isWord(t.Name, "hyperlink"):
				h := &Hyperlink{}
				for _, a := range t.Attr {
					if a.Name.Local == "id" {
						h.RelID = a.Value
					}
				}
				if err := h.unmarshalRuns(d); err != nil {
					return err
				}
				p.Children = append(p.Children, ParaChild{Hyperlink: h})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (h *Hyperlink) unmarshalRuns(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if isWord(t.Name, "r") {
				r := &Run{}
				if err := d.DecodeElement(r, &t); err != nil {
					return err
				}
				h.Runs = append(h.Runs, r)
				continue
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// UnmarshalXML decodes a w:r and its properties, text, and inline drawing.
func (r *Run) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isWord(t.Name, "rPr"):
				var props struct {
					Bold      *toggleXML `xml:"b"`
					Italic    *toggleXML `xml:"i"`
					Color     *valXML    `xml:"color"`
					Size      *valXML    `xml:"sz"`
					Underline *valXML    `xml:"u"`
				}
				if err := d.DecodeElement(&props, &t); err != nil {
					return err
				}
				r.Props.Bold = props.Bold.on()
				r.Props.Italic = props.Italic.on()
				if props.Color != nil {
					r.Props.Color = NormalizeHex(props.Color.Val)
				}
				if props.Size != nil {
					if hp, err := strconv.Atoi(props.Size.Val); err == nil {
						r.Props.SizeHalfPoints = hp
					}
				}
				if props.Underline != nil && props.Underline.Val != "none" {
					r.Props.Underline = props.Underline.Val
				}
			case isWord(t.Name, "t"):
				var text struct {
					Value string `xml:",chardata"`
				}
				if err := d.DecodeElement(&text, &t); err != nil {
					return err
				}
				r.Text += text.Value
			case isWord(t.Name, "br"):
				r.Text += "\n"
				if err := d.Skip(); err != nil {
					return err
				}
			case isWord(t.Name, "tab"):
				r.Text += "\t"
				if err := d.Skip(); err != nil {
					return err
				}
			case isWord(t.Name, "drawing"):
				var raw innerXML
				if err := d.DecodeElement(&raw, &t); err != nil {
					return err
				}
				r.Drawing = drawingFromXML(raw.Content)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// UnmarshalXML decodes a w:tbl into rows and cells.
func (tb *Table) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if isWord(t.Name, "tr") {
				row := &TableRow{}
				if err := d.DecodeElement(row, &t); err != nil {
					return err
				}
				tb.Rows = append(tb.Rows, row)
				continue
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// UnmarshalXML decodes a w:tr, reading the header flag and cells.
func (tr *TableRow) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isWord(t.Name, "trPr"):
				var props struct {
					TblHeader *toggleXML `xml:"tblHeader"`
				}
				if err := d.DecodeElement(&props, &t); err != nil {
					return err
				}
				tr.Header = props.TblHeader.on()
			case isWord(t.Name, "tc"):
				cell := &TableCell{}
				if err := d.DecodeElement(cell, &t); err != nil {
					return err
				}
				tr.Cells = append(tr.Cells, cell)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// UnmarshalXML decodes a w:tc, collecting its paragraphs.
func (tc *TableCell) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if isWord(t.Name, "p") {
				p := &Paragraph{}
				if err := d.DecodeElement(p, &t); err != nil {
					return err
				}
				tc.Paragraphs = append(tc.Paragraphs, p)
				continue
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

var (
	docPrPattern = regexp.MustCompile(`<[A-Za-z0-9]+:docPr\b[^>]*>`)
	namePattern  = regexp.MustCompile(`\bname="([^"]*)"`)
	descrPattern = regexp.MustCompile(`\bdescr="([^"]*)"`)
)

var xmlAttrUnescaper = strings.NewReplacer(
	"&quot;", `"`,
	"&apos;", "'",
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
)

func drawingFromXML(raw string) *Drawing {
	d := &Drawing{RawXML: raw}
	if tag := docPrPattern.FindString(raw); tag != "" {
		if m := namePattern.FindStringSubmatch(tag); m != nil {
			d.Name = xmlAttrUnescaper.Replace(m[1])
		}
		if m := descrPattern.FindStringSubmatch(tag); m != nil {
			d.Descr = xmlAttrUnescaper.Replace(m[1])
		}
	}
	return d
}
