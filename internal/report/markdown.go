package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/a3tai/mcp-benford/internal/analysis"
	"github.com/a3tai/mcp-benford/internal/benford"
	"github.com/a3tai/mcp-benford/internal/pdf"
)

// MarkdownWriter outputs reports as GitHub-flavoured Markdown with a
// mermaid chart of the observed leading digits.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *analysis.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeConclusion(md, report)

	if report.HasVerdict() {
		w.writeDistribution(md, report)
		w.writeStatistics(md, report.Result)
	}

	if report.Tables != nil {
		w.writeTables(md, report.Tables)
	}

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Analyzed %s in %s*",
		report.AnalyzedAt.Format("2006-01-02 15:04:05 MST"), report.Elapsed.Round(time.Millisecond))

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *analysis.Report) {
	md.H1("Benford's Law Analysis")
	md.PlainText("")

	rows := [][]string{
		{"Document", "`" + sourceName(report) + "`"},
		{"Pages", fmt.Sprintf("%d (%d with text)", report.Pages, report.PagesWithText)},
		{"Status", string(report.Status)},
	}
	if doc := report.Document; doc != nil {
		if doc.Version != "" {
			rows = append(rows, []string{"PDF Version", doc.Version})
		}
		rows = append(rows,
			[]string{"Size", strconv.FormatInt(doc.Size, 10) + " bytes"},
			[]string{"Encrypted", strconv.FormatBool(doc.Encrypted)},
		)
	}
	if report.Truncated {
		rows = append(rows, []string{"Text", "truncated at the extraction limit"})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeConclusion(md *markdown.Markdown, report *analysis.Report) {
	switch {
	case report.Status == analysis.StatusNoDigits:
		md.Caution(report.Warning)
	case report.Verdict() == benford.VerdictDeviates:
		md.Warning(report.Conclusion)
	case report.Verdict() == benford.VerdictConforms:
		md.Tip(report.Conclusion)
	default:
		md.Caution(report.Conclusion)
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeDistribution(md *markdown.Markdown, report *analysis.Report) {
	md.H2("Leading Digit Distribution")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Digits))
	for _, row := range report.Digits {
		rows = append(rows, []string{
			strconv.Itoa(row.Digit),
			strconv.Itoa(row.Observed),
			fmt.Sprintf("%.2f", row.Expected),
			percent(row.ObservedProportion),
			percent(row.BenfordProportion),
			fmt.Sprintf("%+.2f", row.Deviation),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Digit", "Observed", "Expected", "Observed %", "Benford %", "Deviation"},
		Rows:   rows,
	})
	md.PlainText("")

	if report.Result.Total == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Observed Leading Digits"),
		piechart.WithShowData(true),
	)
	for _, row := range report.Digits {
		if row.Observed > 0 {
			chart.LabelAndIntValue(strconv.Itoa(row.Digit), uint64(row.Observed))
		}
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeStatistics(md *markdown.Markdown, result *benford.Result) {
	md.H2("Statistics")
	md.PlainText("")

	zScore := "undefined"
	if result.ZScoreDefined {
		zScore = fmt.Sprintf("%.4f", result.ZScore)
	}

	md.BulletList(
		fmt.Sprintf("Numbers found: %d", result.Tokens),
		fmt.Sprintf("Numbers starting with 0 (ignored): %d", result.LeadingZeros),
		fmt.Sprintf("Numbers counted: %d", result.Total),
		fmt.Sprintf("Expected total: %.4f", result.ExpectedTotal),
		fmt.Sprintf("Z-score: %s (threshold %.2f)", zScore, result.Threshold),
		"Verdict: **"+result.Verdict.String()+"**",
	)
	md.PlainText("")
}

func (w *MarkdownWriter) writeTables(md *markdown.Markdown, section *analysis.TableSection) {
	md.H2("Extracted Tables")
	md.PlainText("")

	switch {
	case section.Error != "":
		md.Warning(section.Error)
		md.PlainText("")
		return
	case !section.Present():
		md.Note("No tables found in the PDF.")
		md.PlainText("")
		return
	}

	for i, table := range section.Tables.Items {
		md.H3f("Table %d (page %d)", i+1, table.Page)
		md.PlainText("")
		md.Table(tableSet(table))
		md.PlainText("")
	}
}

// tableSet uses the first detected row as the header
func tableSet(table pdf.Table) markdown.TableSet {
	set := markdown.TableSet{Rows: [][]string{}}
	if len(table.Rows) == 0 {
		return set
	}
	set.Header = table.Rows[0]
	set.Rows = append(set.Rows, table.Rows[1:]...)
	return set
}
