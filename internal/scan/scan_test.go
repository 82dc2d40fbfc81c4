package scan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docremedy/internal/docx"
)

func TestScan_SampleDocument(t *testing.T) {
	doc := docx.SampleDocument()
	cfg := DefaultConfig()

	findings, err := Scan(context.Background(), doc, cfg)
	require.NoError(t, err)
	require.Len(t, findings, 8)

	// Findings come back in document order.
	wantLocators := []string{
		"//w:p[1]/w:r[1]", // low-contrast title
		"//w:p[2]",        // bold paragraph posing as a heading
		"//w:p[3]",        // h3 after the title
		"//w:p[4]/w:r[1]", // low-contrast body text
		"//w:p[5]",        // chart reference with no image
		"//w:tbl[1]",      // headerless table
		"//w:p[6]/w:r[2]", // vague "here" link
		"//w:p[7]/w:r[1]", // 6pt fine print
	}
	for i, f := range findings {
		assert.Equal(t, wantLocators[i], f.ElementXPath, "finding %d", i)
	}

	assert.Equal(t, ClauseContrast, findings[0].Clause)
	assert.Equal(t, "Insufficient color contrast in document title", findings[0].Description)
	assert.Equal(t, "#C8C8C8", findings[0].Details.String("foreground_color"))

	assert.Equal(t, ClauseStructure, findings[1].Clause)
	assert.Equal(t, "heading_structure", findings[1].Details.String("issue_type"))

	assert.Equal(t, "h3", findings[2].Details.String("found_level"))
	assert.Equal(t, "h2", findings[2].Details.String("expected_level"))

	assert.Equal(t, "Insufficient color contrast in body text", findings[3].Description)

	assert.Equal(t, ClauseAltText, findings[4].Clause)
	assert.Equal(t, "chart below", findings[4].Details.String("reference_text"))

	assert.Equal(t, 3, findings[5].Details.Int("table_rows"))
	assert.Equal(t, 3, findings[5].Details.Int("table_columns"))

	assert.Equal(t, ClauseLinkText, findings[6].Clause)
	assert.Equal(t, "here", findings[6].Details.String("link_text"))
	assert.Equal(t, "Click here for more information.", findings[6].Details.String("context"))

	assert.Equal(t, ClauseFontSize, findings[7].Clause)
	assert.Equal(t, "6pt", findings[7].Details.String("current_size"))
	assert.Equal(t, "12pt", findings[7].Details.String("minimum_size"))
}

func TestScan_CleanDocument(t *testing.T) {
	d := docx.New()
	d.AddHeading("Quarterly Report", 1)
	d.AddParagraph("All figures are in thousands of dollars unless noted otherwise.")
	d.AddHeading("Revenue", 2)
	d.AddParagraph("Revenue grew across all regions.")

	findings, err := Scan(context.Background(), d, DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestContrastRatio(t *testing.T) {
	tests := []struct {
		name string
		fg   string
		bg   string
		want float64
	}{
		{"black on white", "000000", "FFFFFF", 21},
		{"white on white", "FFFFFF", "FFFFFF", 1},
		{"light gray on white", "C8C8C8", "FFFFFF", 1.67},
		{"dark gray on white", "333333", "FFFFFF", 12.63},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ContrastRatio(tt.fg, tt.bg)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}

	t.Run("order independent", func(t *testing.T) {
		a, err := ContrastRatio("333333", "FFFFFF")
		require.NoError(t, err)
		b, err := ContrastRatio("FFFFFF", "333333")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("invalid color", func(t *testing.T) {
		_, err := ContrastRatio("zzz", "FFFFFF")
		assert.Error(t, err)
	})
}

func TestHeadingHierarchyRule(t *testing.T) {
	t.Run("skipped level after h1", func(t *testing.T) {
		d := docx.New()
		d.AddHeading("Top", 1)
		d.AddHeading("Too deep", 3)

		fs, err := headingHierarchyRule{}.Apply(d, DefaultConfig())
		require.NoError(t, err)
		require.Len(t, fs, 1)
		assert.Equal(t, "h2", fs[0].Details.String("expected_level"))
	})

	t.Run("descending levels are fine", func(t *testing.T) {
		d := docx.New()
		d.AddHeading("Top", 1)
		d.AddHeading("Sub", 2)
		d.AddHeading("Another top", 1)

		fs, err := headingHierarchyRule{}.Apply(d, DefaultConfig())
		require.NoError(t, err)
		assert.Empty(t, fs)
	})
}

func TestFakeHeadingRule(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("long bold paragraph is not a heading", func(t *testing.T) {
		d := docx.New()
		p := d.AddParagraph("This bold paragraph runs on far too long to plausibly be a heading of any kind in a real document.")
		p.Runs()[0].SetBold(true)

		fs, err := fakeHeadingRule{}.Apply(d, cfg)
		require.NoError(t, err)
		assert.Empty(t, fs)
	})

	t.Run("oversized short paragraph is heading-like", func(t *testing.T) {
		d := docx.New()
		p := d.AddParagraph("Big important words")
		p.Runs()[0].SetSizePt(18)

		fs, err := fakeHeadingRule{}.Apply(d, cfg)
		require.NoError(t, err)
		require.Len(t, fs, 1)
		assert.Equal(t, "//w:p[1]", fs[0].ElementXPath)
	})

	t.Run("styled headings are skipped", func(t *testing.T) {
		d := docx.New()
		h := d.AddHeading("Real heading", 1)
		h.Runs()[0].SetBold(true)

		fs, err := fakeHeadingRule{}.Apply(d, cfg)
		require.NoError(t, err)
		assert.Empty(t, fs)
	})
}

func TestLinkTextRule_Hyperlink(t *testing.T) {
	d := docx.New()
	p := d.AddParagraph("See the ")
	p.AddHyperlink("rId1", "read more")
	p.AddRun(" page.")

	fs, err := linkTextRule{}.Apply(d, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, fs, 1)
	assert.Equal(t, "//w:p[1]/w:r[2]", fs[0].ElementXPath)
	assert.Equal(t, "read more", fs[0].Details.String("link_text"))
}

func TestAltTextRule_Drawings(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("undescribed drawing flagged", func(t *testing.T) {
		d := docx.New()
		p := d.AddParagraph("")
		r := p.AddRun("")
		r.Drawing = &docx.Drawing{Name: "chart.png"}

		fs, err := altTextRule{}.Apply(d, cfg)
		require.NoError(t, err)
		require.Len(t, fs, 1)
		assert.Equal(t, "Image missing alternative text", fs[0].Description)
	})

	t.Run("reference next to described image passes", func(t *testing.T) {
		d := docx.New()
		p := d.AddParagraph("")
		r := p.AddRun("")
		r.Drawing = &docx.Drawing{Name: "chart.png", Descr: "Annual sales chart"}
		d.AddParagraph("Please refer to the chart above for details.")

		fs, err := altTextRule{}.Apply(d, cfg)
		require.NoError(t, err)
		assert.Empty(t, fs)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty path uses defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, 4.5, cfg.Contrast.MinimumRatio)
		assert.Equal(t, float64(12), cfg.FontSize.MinimumPoints)
		assert.Contains(t, cfg.LinkText.VaguePhrases, "click here")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/ruleset.yaml")
		assert.Error(t, err)
	})
}
