package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/a3tai/mcp-benford/internal/analysis"
)

const barWidth = 40

// TextWriter outputs plain-text reports for terminals and log files.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in plain-text format.
func (w *TextWriter) Write(report *analysis.Report) (int, error) {
	var sb strings.Builder

	sb.WriteString("BENFORD'S LAW ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&sb, "Document: %s\n", sourceName(report))
	fmt.Fprintf(&sb, "Pages:    %d (%d with text)\n", report.Pages, report.PagesWithText)
	if report.Truncated {
		sb.WriteString("Text:     truncated at the extraction limit\n")
	}
	sb.WriteString("\n")

	if !report.HasVerdict() {
		fmt.Fprintf(&sb, "WARNING: %s\n", report.Warning)
		return w.output.Write([]byte(sb.String()))
	}

	w.writeDistribution(&sb, report)
	sb.WriteString("\n")
	sb.WriteString(report.Conclusion + "\n")

	if report.Tables != nil {
		sb.WriteString("\n")
		w.writeTables(&sb, report.Tables)
	}

	return w.output.Write([]byte(sb.String()))
}

func (w *TextWriter) writeDistribution(sb *strings.Builder, report *analysis.Report) {
	result := report.Result

	fmt.Fprintf(sb, "%-5s %8s %10s %9s %9s  %s\n", "Digit", "Observed", "Expected", "Obs %", "Benford %", "Distribution")
	sb.WriteString(strings.Repeat("-", 60) + "\n")

	for _, row := range report.Digits {
		bar := int(row.ObservedProportion*barWidth + 0.5)
		marker := int(row.BenfordProportion*barWidth + 0.5)
		fmt.Fprintf(sb, "%-5d %8d %10.2f %9s %9s  %s\n",
			row.Digit, row.Observed, row.Expected,
			percent(row.ObservedProportion), percent(row.BenfordProportion),
			drawBar(bar, marker))
	}

	sb.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(sb, "Numbers found: %d, starting with 0: %d, counted: %d\n",
		result.Tokens, result.LeadingZeros, result.Total)
	if result.ZScoreDefined {
		fmt.Fprintf(sb, "Z-score: %.4f (threshold %.2f)\n", result.ZScore, result.Threshold)
	} else {
		fmt.Fprintf(sb, "Z-score: undefined (threshold %.2f)\n", result.Threshold)
	}
	fmt.Fprintf(sb, "Verdict: %s\n", result.Verdict)
}

// drawBar renders n hashes with a '|' at the Benford expectation
func drawBar(n, marker int) string {
	width := n
	if marker+1 > width {
		width = marker + 1
	}
	bar := []byte(strings.Repeat(" ", width))
	for i := 0; i < n; i++ {
		bar[i] = '#'
	}
	bar[marker] = '|'
	return strings.TrimRight(string(bar), " ")
}

func (w *TextWriter) writeTables(sb *strings.Builder, section *analysis.TableSection) {
	sb.WriteString("EXTRACTED TABLES\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")

	switch {
	case section.Error != "":
		sb.WriteString(section.Error + "\n")
		return
	case !section.Present():
		sb.WriteString("No tables found in the PDF.\n")
		return
	}

	for i, table := range section.Tables.Items {
		fmt.Fprintf(sb, "Table %d (page %d, %d columns)\n", i+1, table.Page, table.Columns)

		widths := make([]int, table.Columns)
		for _, row := range table.Rows {
			for c, cell := range row {
				if c < len(widths) && len(cell) > widths[c] {
					widths[c] = len(cell)
				}
			}
		}
		for _, row := range table.Rows {
			cells := make([]string, len(row))
			for c, cell := range row {
				if c < len(widths) {
					cell = fmt.Sprintf("%-*s", widths[c], cell)
				}
				cells[c] = cell
			}
			sb.WriteString("  " + strings.TrimRight(strings.Join(cells, "  "), " ") + "\n")
		}
		sb.WriteString("\n")
	}
}
