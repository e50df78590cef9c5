package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/a3tai/mcp-benford/internal/analysis"
	"github.com/a3tai/mcp-benford/internal/benford"
	"github.com/a3tai/mcp-benford/internal/pdf"
)

// createTestReport builds a completed report over a Benford-shaped sample
func createTestReport(t *testing.T) *analysis.Report {
	t.Helper()

	counts := []int{301, 176, 125, 97, 79, 67, 58, 51, 46}
	var tokens []string
	for i, n := range counts {
		for j := 0; j < n; j++ {
			tokens = append(tokens, string(rune('1'+i))+"00")
		}
	}
	tokens = append(tokens, "007")

	result, err := benford.Evaluate(tokens)
	require.NoError(t, err)

	return &analysis.Report{
		Source:        "annual-report.pdf",
		Document:      &pdf.DocumentInfo{Path: "annual-report.pdf", Size: 2048, Pages: 2, Version: "1.4"},
		Pages:         2,
		PagesWithText: 2,
		Status:        analysis.StatusCompleted,
		Conclusion:    analysis.ConformsConclusion,
		Result:        result,
		Digits:        result.Rows(),
		AnalyzedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Elapsed:       1500 * time.Millisecond,
	}
}

func noDigitsReport() *analysis.Report {
	return &analysis.Report{
		Source:  "cover.pdf",
		Pages:   1,
		Status:  analysis.StatusNoDigits,
		Warning: analysis.NoDigitsWarning,
	}
}

func withTables(r *analysis.Report) *analysis.Report {
	r.Tables = &analysis.TableSection{Tables: &pdf.Tables{
		Path: r.Source,
		Items: []pdf.Table{{
			Page:       1,
			Columns:    2,
			Rows:       [][]string{{"Item", "Amount"}, {"Revenue", "1200"}, {"Cost", "345"}},
			Confidence: 1,
		}},
	}}
	return r
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"TXT", FormatText, false},
		{"markdown", FormatMarkdown, false},
		{" md ", FormatMarkdown, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"html", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, nil, FormatText))
	assert.Error(t, Render(&buf, noDigitsReport(), Format("pdf")))
}

func TestTextWriter(t *testing.T) {
	t.Run("completed report", func(t *testing.T) {
		out, err := String(withTables(createTestReport(t)), FormatText)
		require.NoError(t, err)

		assert.Contains(t, out, "BENFORD'S LAW ANALYSIS")
		assert.Contains(t, out, "annual-report.pdf")
		assert.Contains(t, out, "30.10%")
		assert.Contains(t, out, "starting with 0: 1")
		assert.Contains(t, out, "Verdict: conforms")
		assert.Contains(t, out, analysis.ConformsConclusion)
		assert.Contains(t, out, "EXTRACTED TABLES")
		assert.Contains(t, out, "Revenue  1200")
	})

	t.Run("no digits", func(t *testing.T) {
		out, err := String(noDigitsReport(), FormatText)
		require.NoError(t, err)
		assert.Contains(t, out, "WARNING: "+analysis.NoDigitsWarning)
		assert.NotContains(t, out, "Verdict")
	})

	t.Run("table failure", func(t *testing.T) {
		r := createTestReport(t)
		r.Tables = &analysis.TableSection{Error: "Error occurred during table extraction: boom"}
		out, err := String(r, FormatText)
		require.NoError(t, err)
		assert.Contains(t, out, "Error occurred during table extraction: boom")
	})
}

func TestDrawBar(t *testing.T) {
	assert.Equal(t, "###|", drawBar(3, 3))
	assert.Equal(t, "##|#", drawBar(4, 2))
	assert.Equal(t, "#  |", drawBar(1, 3))
	assert.Equal(t, "|", drawBar(0, 0))
}

func TestMarkdownWriter(t *testing.T) {
	t.Run("conforming report", func(t *testing.T) {
		out, err := String(withTables(createTestReport(t)), FormatMarkdown)
		require.NoError(t, err)

		assert.Contains(t, out, "# Benford's Law Analysis")
		assert.Contains(t, out, "`annual-report.pdf`")
		assert.Contains(t, out, "[!TIP]")
		assert.Contains(t, out, analysis.ConformsConclusion)
		assert.Contains(t, out, "## Leading Digit Distribution")
		assert.Contains(t, out, "```mermaid")
		assert.Contains(t, out, "Observed Leading Digits")
		assert.Contains(t, out, "## Extracted Tables")
		assert.Contains(t, out, "Revenue")
	})

	t.Run("deviating report", func(t *testing.T) {
		r := createTestReport(t)
		r.Result.Verdict = benford.VerdictDeviates
		r.Conclusion = analysis.DeviatesConclusion

		out, err := String(r, FormatMarkdown)
		require.NoError(t, err)
		assert.Contains(t, out, "[!WARNING]")
		assert.Contains(t, out, analysis.DeviatesConclusion)
	})

	t.Run("no digits", func(t *testing.T) {
		out, err := String(noDigitsReport(), FormatMarkdown)
		require.NoError(t, err)
		assert.Contains(t, out, "[!CAUTION]")
		assert.Contains(t, out, analysis.NoDigitsWarning)
		assert.NotContains(t, out, "mermaid")
	})

	t.Run("no tables found", func(t *testing.T) {
		r := createTestReport(t)
		r.Tables = &analysis.TableSection{Tables: &pdf.Tables{Items: []pdf.Table{}}}
		out, err := String(r, FormatMarkdown)
		require.NoError(t, err)
		assert.Contains(t, out, "No tables found in the PDF.")
	})
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewJSONWriter(&buf).Write(createTestReport(t))
	require.NoError(t, err)
	assert.False(t, strings.Contains(strings.TrimSpace(buf.String()), "\n"), "compact output is one line")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "completed", decoded["status"])

	result, ok := decoded["result"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "conforms", result["verdict"])
	observed, ok := result["observed"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(301), observed["1"])

	out, err := String(createTestReport(t), FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"source\": \"annual-report.pdf\"")
}

func TestYAMLWriter(t *testing.T) {
	out, err := String(withTables(createTestReport(t)), FormatYAML)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "annual-report.pdf", decoded["source"])
	assert.Equal(t, "completed", decoded["status"])

	result, ok := decoded["result"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "conforms", result["verdict"])
	assert.Contains(t, decoded, "table_extraction")
}
