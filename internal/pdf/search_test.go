package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSearchFixtures(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	testFiles := map[string][]byte{
		"document1.pdf":                make([]byte, 1024),
		"research_paper.pdf":           make([]byte, 2048),
		"machine_learning.pdf":         make([]byte, 512),
		"Q3-Financial-Statements.PDF":  make([]byte, 256),
		"report.txt":                   []byte("not a pdf"),
		"empty.pdf":                    {},
		"large.pdf":                    make([]byte, 2*1024*1024),
		"archive/2023-ledger.pdf":      make([]byte, 128),
		".hidden/secret-statement.pdf": make([]byte, 128),
	}

	for name, content := range testFiles {
		path := filepath.Join(tempDir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, content, 0o644))
	}

	return tempDir
}

func TestSearch_SearchDirectory(t *testing.T) {
	search := NewSearch(1024 * 1024)
	tempDir := writeSearchFixtures(t)

	tests := []struct {
		name      string
		req       PDFSearchDirectoryRequest
		wantPaths []string
		truncated bool
	}{
		{
			name: "all PDFs",
			req:  PDFSearchDirectoryRequest{Directory: tempDir},
			wantPaths: []string{
				"Q3-Financial-Statements.PDF",
				filepath.Join("archive", "2023-ledger.pdf"),
				"document1.pdf",
				"machine_learning.pdf",
				"research_paper.pdf",
			},
		},
		{
			name:      "substring query",
			req:       PDFSearchDirectoryRequest{Directory: tempDir, Query: "machine"},
			wantPaths: []string{"machine_learning.pdf"},
		},
		{
			name:      "word query is case insensitive",
			req:       PDFSearchDirectoryRequest{Directory: tempDir, Query: "financial q3"},
			wantPaths: []string{"Q3-Financial-Statements.PDF"},
		},
		{
			name:      "no match",
			req:       PDFSearchDirectoryRequest{Directory: tempDir, Query: "invoice"},
			wantPaths: []string{},
		},
		{
			name:      "limit",
			req:       PDFSearchDirectoryRequest{Directory: tempDir, Limit: 2},
			truncated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := search.SearchDirectory(tt.req)
			require.NoError(t, err)

			assert.Equal(t, tempDir, result.Directory)
			assert.Equal(t, tt.truncated, result.Truncated)
			assert.Equal(t, len(result.Files), result.TotalCount)

			if tt.wantPaths == nil {
				assert.Len(t, result.Files, tt.req.Limit)
				return
			}

			paths := make([]string, 0, len(result.Files))
			for _, f := range result.Files {
				paths = append(paths, f.Path)
			}
			assert.Equal(t, tt.wantPaths, paths)
		})
	}
}

func TestSearch_SearchDirectoryErrors(t *testing.T) {
	search := NewSearch(1024)
	file := filepath.Join(t.TempDir(), "a.pdf")
	require.NoError(t, os.WriteFile(file, []byte("%PDF"), 0o644))

	_, err := search.SearchDirectory(PDFSearchDirectoryRequest{})
	assert.Error(t, err)

	_, err = search.SearchDirectory(PDFSearchDirectoryRequest{Directory: "/nonexistent/directory"})
	assert.ErrorContains(t, err, "does not exist")

	_, err = search.SearchDirectory(PDFSearchDirectoryRequest{Directory: file})
	assert.ErrorContains(t, err, "not a directory")
}

func TestMatchesQuery(t *testing.T) {
	tests := []struct {
		filename string
		query    string
		want     bool
	}{
		{"annual_report_2024.pdf", "report", true},
		{"annual_report_2024.pdf", "annual 2024", true},
		{"annual_report_2024.pdf", "2023", false},
		{"Balance-Sheet.pdf", "sheet", true},
		{"Balance-Sheet.pdf", "balance income", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename+"/"+tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesQuery(tt.filename, tt.query))
		})
	}
}
