package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-benford/internal/pdftest"
)

func TestTableExtractor_Extract(t *testing.T) {
	tempDir := t.TempDir()
	extractor := NewTableExtractor(1024 * 1024)

	t.Run("grid becomes a table", func(t *testing.T) {
		path := pdftest.Write(t, tempDir, "grid.pdf", pdftest.Grid(150,
			[]string{"Item", "2023", "2024"},
			[]string{"Revenue", "1200", "1350"},
			[]string{"Expenses", "800", "910"},
		))

		tables, err := extractor.Extract(context.Background(), path)
		require.NoError(t, err)
		require.True(t, tables.Present())
		require.Len(t, tables.Items, 1)

		table := tables.Items[0]
		assert.Equal(t, 1, table.Page)
		assert.Equal(t, 3, table.Columns)
		assert.Equal(t, 1.0, table.Confidence)
		assert.Equal(t, [][]string{
			{"Item", "2023", "2024"},
			{"Revenue", "1200", "1350"},
			{"Expenses", "800", "910"},
		}, table.Rows)
	})

	t.Run("prose has no tables", func(t *testing.T) {
		path := pdftest.Write(t, tempDir, "prose.pdf",
			pdftest.Lines("The company reported revenue of 1200.", "Expenses were 800."))

		tables, err := extractor.Extract(context.Background(), path)
		require.NoError(t, err)
		assert.False(t, tables.Present())
		assert.Empty(t, tables.Items)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := extractor.Extract(context.Background(), tempDir+"/missing.pdf")
		assert.Error(t, err)
	})
}

func TestTables_PresentOnNil(t *testing.T) {
	var tables *Tables
	assert.False(t, tables.Present())
}

func TestSplitCells(t *testing.T) {
	row := []glyph{
		{x: 72, w: 6, s: "N"},
		{x: 78, w: 6, s: "e"},
		{x: 84, w: 6, s: "t"},
		{x: 200, w: 6, s: "4"},
		{x: 206, w: 6, s: "2"},
		{x: 212, w: 3, s: " "},
	}

	assert.Equal(t, []string{"Net", "42"}, splitCells(row))
}

func TestGroupGlyphsByRow(t *testing.T) {
	glyphs := []glyph{
		{x: 200, y: 700, s: "b"},
		{x: 72, y: 720, s: "x"},
		{x: 72, y: 702, s: "a"},
	}

	rows := groupGlyphsByRow(glyphs)
	require.Len(t, rows, 2)
	assert.Equal(t, "x", rows[0][0].s)
	require.Len(t, rows[1], 2)
	assert.Equal(t, "a", rows[1][0].s)
	assert.Equal(t, "b", rows[1][1].s)
}

func TestAnalyzeTableStructure(t *testing.T) {
	t.Run("drops inconsistent rows", func(t *testing.T) {
		table, ok := analyzeTableStructure(2, [][]string{
			{"a", "b"},
			{"c", "d"},
			{"e", "f", "g"},
		})
		require.True(t, ok)
		assert.Equal(t, 2, table.Page)
		assert.Equal(t, 2, table.Columns)
		assert.Len(t, table.Rows, 2)
		assert.InDelta(t, 2.0/3.0, table.Confidence, 1e-9)
	})

	t.Run("single row rejected", func(t *testing.T) {
		_, ok := analyzeTableStructure(1, [][]string{{"a", "b"}})
		assert.False(t, ok)
	})

	t.Run("no agreement rejected", func(t *testing.T) {
		_, ok := analyzeTableStructure(1, [][]string{{"a", "b"}, {"a", "b", "c"}, {"a", "b", "c", "d"}})
		assert.False(t, ok)
	})
}
