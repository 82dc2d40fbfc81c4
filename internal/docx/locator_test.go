package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocator(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Locator
		wantErr bool
	}{
		{name: "paragraph", in: "//w:p[3]", want: Locator{Para: 3}},
		{name: "run", in: "//w:p[1]/w:r[2]", want: Locator{Para: 1, Run: 2}},
		{name: "table", in: "//w:tbl[1]", want: Locator{Table: 1}},
		{name: "large index", in: "//w:p[42]/w:r[17]", want: Locator{Para: 42, Run: 17}},
		{name: "empty", in: "", wantErr: true},
		{name: "zero index", in: "//w:p[0]", wantErr: true},
		{name: "missing slashes", in: "w:p[1]", wantErr: true},
		{name: "run on table", in: "//w:tbl[1]/w:r[1]", wantErr: true},
		{name: "trailing segment", in: "//w:p[1]/w:r[1]/w:t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocator(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestLocatorFormatters(t *testing.T) {
	assert.Equal(t, "//w:p[4]", ParagraphLocator(4))
	assert.Equal(t, "//w:p[6]/w:r[2]", RunLocator(6, 2))
	assert.Equal(t, "//w:tbl[1]", TableLocator(1))
}

func TestResolve(t *testing.T) {
	doc := SampleDocument()

	t.Run("paragraph", func(t *testing.T) {
		p, run, tbl, err := doc.Resolve(Locator{Para: 2})
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Nil(t, run)
		assert.Nil(t, tbl)
		assert.Equal(t, "This is a paragraph that should be a heading.", p.Text())
	})

	t.Run("run", func(t *testing.T) {
		p, run, _, err := doc.Resolve(Locator{Para: 6, Run: 2})
		require.NoError(t, err)
		require.NotNil(t, p)
		require.NotNil(t, run)
		assert.Equal(t, "here", run.Text)
	})

	t.Run("table", func(t *testing.T) {
		_, _, tbl, err := doc.Resolve(Locator{Table: 1})
		require.NoError(t, err)
		require.NotNil(t, tbl)
		assert.Len(t, tbl.Rows, 3)
	})

	t.Run("paragraph out of range", func(t *testing.T) {
		_, _, _, err := doc.Resolve(Locator{Para: 99})
		assert.Error(t, err)
	})

	t.Run("run out of range", func(t *testing.T) {
		_, _, _, err := doc.Resolve(Locator{Para: 1, Run: 5})
		assert.Error(t, err)
	})

	t.Run("table out of range", func(t *testing.T) {
		_, _, _, err := doc.Resolve(Locator{Table: 2})
		assert.Error(t, err)
	})
}

func TestRunsIncludesHyperlinkRuns(t *testing.T) {
	d := New()
	p := d.AddParagraph("See ")
	p.AddHyperlink("rId5", "the docs")
	p.AddRun(" for details.")

	runs := p.Runs()
	require.Len(t, runs, 3)
	assert.Equal(t, "the docs", runs[1].Text)
	assert.True(t, p.linked(runs[1]))
	assert.False(t, p.linked(runs[0]))
}
