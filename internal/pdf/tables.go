package pdf

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Table detection constants
const (
	rowTolerance               = 5.0  // points between baselines of the same row
	cellGap                    = 12.0 // horizontal gap that starts a new cell
	minRowsForTable            = 2
	minColumnsForTable         = 2
	minimumConfidenceThreshold = 0.5
)

// TableExtractor detects tables from the position of text on each page
type TableExtractor struct {
	maxFileSize int64
	validator   *Validator
}

// NewTableExtractor creates a new table extractor with the specified constraints
func NewTableExtractor(maxFileSize int64) *TableExtractor {
	return &TableExtractor{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
	}
}

// glyph is a run of text with its position on the page
type glyph struct {
	x, y, w float64
	s       string
}

// Extract returns every table found in the document. Finding no tables is
// reported through an empty result, while parser failures return an error.
func (t *TableExtractor) Extract(ctx context.Context, path string) (result *Tables, err error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	if err := t.validator.ValidateDocument(path, false); err != nil {
		return nil, err
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("table extraction failed: %v", rec)
		}
	}()

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	result = &Tables{Path: path, Items: []Table{}}

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		glyphs := make([]glyph, 0)
		for _, text := range page.Content().Text {
			glyphs = append(glyphs, glyph{x: text.X, y: text.Y, w: text.W, s: text.S})
		}

		result.Items = append(result.Items, detectTables(pageNum, glyphs)...)
	}

	return result, nil
}

// detectTables groups glyphs into rows and cells and returns runs of rows
// that share a column count.
func detectTables(pageNum int, glyphs []glyph) []Table {
	var tables []Table
	var block [][]string

	flush := func() {
		if table, ok := analyzeTableStructure(pageNum, block); ok {
			tables = append(tables, table)
		}
		block = nil
	}

	for _, row := range groupGlyphsByRow(glyphs) {
		cells := splitCells(row)
		if len(cells) < minColumnsForTable {
			flush()
			continue
		}
		block = append(block, cells)
	}
	flush()

	return tables
}

// groupGlyphsByRow sorts glyphs top to bottom and groups those sharing a
// baseline. Within a row glyphs are ordered left to right; the sort is stable
// so glyphs at the same position keep their content-stream order.
func groupGlyphsByRow(glyphs []glyph) [][]glyph {
	if len(glyphs) == 0 {
		return nil
	}

	sort.SliceStable(glyphs, func(i, j int) bool {
		return glyphs[i].y > glyphs[j].y
	})

	var rows [][]glyph
	currentRow := []glyph{glyphs[0]}
	currentY := glyphs[0].y

	for i := 1; i < len(glyphs); i++ {
		if abs(glyphs[i].y-currentY) <= rowTolerance {
			currentRow = append(currentRow, glyphs[i])
			continue
		}
		rows = append(rows, currentRow)
		currentRow = []glyph{glyphs[i]}
		currentY = glyphs[i].y
	}
	rows = append(rows, currentRow)

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].x < row[j].x
		})
	}

	return rows
}

// splitCells merges adjacent glyphs of a row into cell strings
func splitCells(row []glyph) []string {
	var cells []string
	var cell strings.Builder
	end := 0.0

	emit := func() {
		if text := strings.TrimSpace(cell.String()); text != "" {
			cells = append(cells, text)
		}
		cell.Reset()
	}

	for i, g := range row {
		if i > 0 && g.x-end > cellGap {
			emit()
		}
		cell.WriteString(g.s)
		if g.x+g.w > end || i == 0 {
			end = g.x + g.w
		}
	}
	emit()

	return cells
}

// analyzeTableStructure keeps the rows of a block that share the most common
// column count. The block is rejected when too few rows agree.
func analyzeTableStructure(pageNum int, rows [][]string) (Table, bool) {
	if len(rows) < minRowsForTable {
		return Table{}, false
	}

	colCounts := make(map[int]int)
	for _, row := range rows {
		colCounts[len(row)]++
	}

	maxCount := 0
	commonColCount := 0
	for count, frequency := range colCounts {
		if frequency > maxCount || (frequency == maxCount && count > commonColCount) {
			maxCount = frequency
			commonColCount = count
		}
	}

	confidence := float64(maxCount) / float64(len(rows))
	if confidence < minimumConfidenceThreshold || maxCount < minRowsForTable {
		return Table{}, false
	}

	table := Table{
		Page:       pageNum,
		Columns:    commonColCount,
		Rows:       make([][]string, 0, maxCount),
		Confidence: confidence,
	}
	for _, row := range rows {
		if len(row) != commonColCount {
			continue // Skip inconsistent rows
		}
		table.Rows = append(table.Rows, row)
	}

	return table, true
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
