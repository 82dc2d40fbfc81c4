package docx

import "fmt"

// SampleDocument builds a small document that trips every scanner rule once:
// a low-contrast title, a bold paragraph posing as a heading, an h3 that
// skips a level, low-contrast body text, a chart reference with no image,
// a headerless table, a vague "here" link, and 6pt fine print.
func SampleDocument() *Document {
	d := New()

	title := d.AddHeading("Sample Document with Accessibility Issues", 0)
	title.Runs()[0].SetColor("C8C8C8")

	fake := d.AddParagraph("This is a paragraph that should be a heading.")
	fake.Runs()[0].SetBold(true)

	d.AddHeading("Subsection", 3)

	contrast := d.AddParagraph("This text has insufficient color contrast. ")
	contrast.Runs()[0].SetColor("B4B4B4")

	d.AddParagraph("Please refer to the chart below for more information.")

	table := d.AddTable(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			table.Cell(i, j).SetText(fmt.Sprintf("Data %d-%d", i+1, j+1))
		}
	}

	link := d.AddParagraph("Click ")
	link.AddRun("here").SetColor("0000FF")
	link.AddRun(" for more information.")

	small := d.AddParagraph("This text is too small to read easily.")
	small.Runs()[0].SetSizePt(6)

	return d
}
