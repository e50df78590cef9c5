package pdf

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-benford/internal/pdftest"
)

func TestNewService(t *testing.T) {
	tempDir := t.TempDir()

	service, err := NewService(1024*1024, tempDir)
	require.NoError(t, err)

	assert.Equal(t, int64(1024*1024), service.GetMaxFileSize())
	assert.Equal(t, tempDir, service.GetConfiguredDirectory())
	assert.NotNil(t, service.reader)
	assert.NotNil(t, service.validator)
	assert.NotNil(t, service.tables)

	_, err = NewService(1024, "")
	assert.Error(t, err)
}

func TestService_PDFValidateFile(t *testing.T) {
	tempDir := t.TempDir()
	service, err := NewService(1024*1024, tempDir)
	require.NoError(t, err)

	pdftest.Write(t, tempDir, "annual.pdf", pdftest.Lines("Net income 4512"))

	t.Run("relative path inside directory", func(t *testing.T) {
		result, err := service.PDFValidateFile(PDFValidateFileRequest{Path: "annual.pdf"})
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, filepath.Join(tempDir, "annual.pdf"), result.Path)
	})

	t.Run("path outside directory", func(t *testing.T) {
		_, err := service.PDFValidateFile(PDFValidateFileRequest{Path: "../annual.pdf"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "security validation failed")
	})
}

func TestService_PDFExtractTables(t *testing.T) {
	tempDir := t.TempDir()
	service, err := NewService(1024*1024, tempDir)
	require.NoError(t, err)

	pdftest.Write(t, tempDir, "ledger.pdf", pdftest.Grid(120,
		[]string{"Account", "Debit"},
		[]string{"Cash", "1500"},
	))

	tables, err := service.PDFExtractTables(context.Background(), PDFExtractTablesRequest{Path: "ledger.pdf"})
	require.NoError(t, err)
	require.True(t, tables.Present())
	assert.Equal(t, [][]string{{"Account", "Debit"}, {"Cash", "1500"}}, tables.Items[0].Rows)

	_, err = service.PDFExtractTables(context.Background(), PDFExtractTablesRequest{Path: "/etc/passwd"})
	assert.Error(t, err)
}

func TestService_ExtractText(t *testing.T) {
	tempDir := t.TempDir()
	service, err := NewService(1024*1024, tempDir)
	require.NoError(t, err)

	path := pdftest.Write(t, tempDir, "doc.pdf", pdftest.Lines("Assets 9876"))

	require.NoError(t, service.ValidateDocument(path, true))

	text, err := service.ExtractText(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, text.Text, "9876")
}
