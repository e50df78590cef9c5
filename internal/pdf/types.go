package pdf

// DocumentInfo describes a PDF as seen by pdfcpu
type DocumentInfo struct {
	Path      string `json:"path" yaml:"path"`
	Size      int64  `json:"size" yaml:"size"`
	Pages     int    `json:"pages" yaml:"pages"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
	Encrypted bool   `json:"encrypted" yaml:"encrypted"`
}

// TextResult is the concatenated plain text of a document
type TextResult struct {
	Path          string `json:"path" yaml:"path"`
	Text          string `json:"-" yaml:"-"`
	Pages         int    `json:"pages" yaml:"pages"`
	PagesWithText int    `json:"pages_with_text" yaml:"pages_with_text"`
	Truncated     bool   `json:"truncated" yaml:"truncated"`
}

// Table is a block of rows detected on a single page
type Table struct {
	Page       int        `json:"page" yaml:"page"`
	Columns    int        `json:"columns" yaml:"columns"`
	Rows       [][]string `json:"rows" yaml:"rows"`
	Confidence float64    `json:"confidence" yaml:"confidence"`
}

// Tables holds every table found in a document. An empty Items slice means
// the document has no detectable tables, which is not an error.
type Tables struct {
	Path  string  `json:"path" yaml:"path"`
	Items []Table `json:"items" yaml:"items"`
}

// Present reports whether at least one table was found
func (t *Tables) Present() bool {
	return t != nil && len(t.Items) > 0
}

// Request Types

// PDFValidateFileRequest represents a request to validate a PDF file
type PDFValidateFileRequest struct {
	Path string `json:"path"`
}

// PDFSearchDirectoryRequest represents a request to list analysable PDFs
type PDFSearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// PDFExtractTablesRequest represents a request to extract tables from a PDF file
type PDFExtractTablesRequest struct {
	Path string `json:"path"`
}

// Response Types

// PDFValidateFileResult represents the result of a PDF validation operation
type PDFValidateFileResult struct {
	Valid   bool          `json:"valid"`
	Path    string        `json:"path"`
	Message string        `json:"message,omitempty"`
	Info    *DocumentInfo `json:"info,omitempty"`
}

// FileInfo describes a PDF found by a directory search
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// PDFSearchDirectoryResult represents the result of a directory search.
// File paths are relative to Directory.
type PDFSearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
	Truncated   bool       `json:"truncated,omitempty"`
}
