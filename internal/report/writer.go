// Package report renders analysis reports as text, Markdown, JSON or YAML.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/a3tai/mcp-benford/internal/analysis"
)

// Format names an output format
type Format string

// Supported formats
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists the accepted format names
func Formats() []string {
	return []string{string(FormatText), string(FormatMarkdown), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat validates a format name. "md" and "yml" are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported report format %q (expected one of %s)",
			name, strings.Join(Formats(), ", "))
	}
}

// Writer writes an analysis report to its destination.
type Writer interface {
	// Write returns the number of bytes written.
	Write(report *analysis.Report) (int, error)
}

// NewWriter returns the writer for format
func NewWriter(output io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatText:
		return NewTextWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatYAML:
		return NewYAMLWriter(output), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// Render writes report to output in the given format
func Render(output io.Writer, report *analysis.Report, format Format) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}
	w, err := NewWriter(output, format)
	if err != nil {
		return err
	}
	_, err = w.Write(report)
	return err
}

// String renders report into a string
func String(report *analysis.Report, format Format) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, report, format); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// baseWriter holds the output destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// percent formats a proportion as a percentage
func percent(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}

// sourceName returns the display name of the analysed document
func sourceName(report *analysis.Report) string {
	if report.Source == "" {
		return "(unnamed)"
	}
	return report.Source
}
