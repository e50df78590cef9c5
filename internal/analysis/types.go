package analysis

import (
	"time"

	"github.com/a3tai/mcp-benford/internal/benford"
	"github.com/a3tai/mcp-benford/internal/pdf"
)

// Status describes how far an analysis pass got
type Status string

const (
	// StatusCompleted means a verdict was computed (possibly insufficient-data)
	StatusCompleted Status = "completed"
	// StatusNoDigits means the document text contained no digits
	StatusNoDigits Status = "no_digits"
)

// User-facing conclusion texts
const (
	NoDigitsWarning        = "No digits found in the PDF."
	ConformsConclusion     = "The data conforms reasonably well to Benford's Law (5% level of significance)."
	DeviatesConclusion     = "The data significantly deviates from Benford's Law, indicating potential anomalies (5% level of significance)."
	InsufficientConclusion = "Every number in the document starts with 0, so there is not enough data to test against Benford's Law."
)

// Request describes one document to analyse. Exactly one of Path and Content
// must be set.
type Request struct {
	// Path is a PDF inside the configured directory
	Path string
	// Content holds uploaded PDF bytes, spooled to a temporary file
	Content []byte
	// Name is the display name of an upload
	Name string
	// IncludeTables runs table extraction after the verdict
	IncludeTables bool
}

// TableSection is the optional table extraction outcome
type TableSection struct {
	Tables *pdf.Tables `json:"tables,omitempty" yaml:"tables,omitempty"`
	Error  string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// Present reports whether any table was found
func (t *TableSection) Present() bool {
	return t != nil && t.Tables.Present()
}

// Report is the outcome of one analysis pass
type Report struct {
	Source        string             `json:"source" yaml:"source"`
	Document      *pdf.DocumentInfo  `json:"document,omitempty" yaml:"document,omitempty"`
	Pages         int                `json:"pages" yaml:"pages"`
	PagesWithText int                `json:"pages_with_text" yaml:"pages_with_text"`
	Truncated     bool               `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	Status        Status             `json:"status" yaml:"status"`
	Warning       string             `json:"warning,omitempty" yaml:"warning,omitempty"`
	Conclusion    string             `json:"conclusion,omitempty" yaml:"conclusion,omitempty"`
	Result        *benford.Result    `json:"result,omitempty" yaml:"result,omitempty"`
	Digits        []benford.DigitRow `json:"digits,omitempty" yaml:"digits,omitempty"`
	Tables        *TableSection      `json:"table_extraction,omitempty" yaml:"table_extraction,omitempty"`
	AnalyzedAt    time.Time          `json:"analyzed_at" yaml:"analyzed_at"`
	Elapsed       time.Duration      `json:"elapsed_ns" yaml:"elapsed_ns"`
}

// HasVerdict reports whether the report carries an evaluation result
func (r *Report) HasVerdict() bool {
	return r.Status == StatusCompleted && r.Result != nil
}

// Verdict returns the verdict, or insufficient-data when none was computed
func (r *Report) Verdict() benford.Verdict {
	if !r.HasVerdict() {
		return benford.VerdictInsufficientData
	}
	return r.Result.Verdict
}

func conclusionFor(v benford.Verdict) string {
	switch v {
	case benford.VerdictConforms:
		return ConformsConclusion
	case benford.VerdictDeviates:
		return DeviatesConclusion
	default:
		return InsufficientConclusion
	}
}
