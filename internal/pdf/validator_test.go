package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-benford/internal/pdftest"
)

func TestValidator_ValidateDocument(t *testing.T) {
	tempDir := t.TempDir()

	validPDF := pdftest.Write(t, tempDir, "valid.pdf", pdftest.Lines("Total 100"))
	noExt := filepath.Join(tempDir, "upload")
	require.NoError(t, os.WriteFile(noExt, pdftest.Build(pdftest.Lines("7")), 0o600))

	textFile := filepath.Join(tempDir, "notes.txt")
	require.NoError(t, os.WriteFile(textFile, []byte("This is not a PDF"), 0o600))

	emptyPDF := filepath.Join(tempDir, "empty.pdf")
	require.NoError(t, os.WriteFile(emptyPDF, nil, 0o600))

	garbagePDF := filepath.Join(tempDir, "garbage.pdf")
	require.NoError(t, os.WriteFile(garbagePDF, make([]byte, 512), 0o600))

	largePDF := filepath.Join(tempDir, "large.pdf")
	require.NoError(t, os.WriteFile(largePDF, make([]byte, 64*1024+1), 0o600))

	validator := NewValidator(64 * 1024)

	tests := []struct {
		name           string
		path           string
		checkExtension bool
		wantErr        string
	}{
		{name: "valid PDF", path: validPDF, checkExtension: true},
		{name: "upload without extension", path: noExt, checkExtension: false},
		{name: "extension required", path: noExt, checkExtension: true, wantErr: "file is not a PDF"},
		{name: "empty path", path: "", wantErr: "path cannot be empty"},
		{name: "missing file", path: filepath.Join(tempDir, "missing.pdf"), wantErr: "file does not exist"},
		{name: "directory", path: tempDir, wantErr: "path is a directory"},
		{name: "text file", path: textFile, checkExtension: true, wantErr: "file is not a PDF"},
		{name: "empty file", path: emptyPDF, wantErr: "file is empty"},
		{name: "too large", path: largePDF, wantErr: "file too large"},
		{name: "not parseable", path: garbagePDF, wantErr: "invalid PDF file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateDocument(tt.path, tt.checkExtension)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.True(t, validator.IsValidPDF(validPDF))
	assert.False(t, validator.IsValidPDF(textFile))
}

func TestValidator_ValidateFile(t *testing.T) {
	tempDir := t.TempDir()
	validator := NewValidator(1024 * 1024)

	t.Run("valid file is inspected", func(t *testing.T) {
		path := pdftest.Write(t, tempDir, "two-pages.pdf", pdftest.Lines("1"), pdftest.Lines("2"))

		result, err := validator.ValidateFile(PDFValidateFileRequest{Path: path})
		require.NoError(t, err)

		assert.True(t, result.Valid)
		assert.Empty(t, result.Message)
		require.NotNil(t, result.Info)
		assert.Equal(t, 2, result.Info.Pages)
		assert.False(t, result.Info.Encrypted)
		assert.Positive(t, result.Info.Size)
	})

	t.Run("invalid file reports message", func(t *testing.T) {
		path := filepath.Join(tempDir, "broken.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 but nothing else"), 0o600))

		result, err := validator.ValidateFile(PDFValidateFileRequest{Path: path})
		require.NoError(t, err)

		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Message)
		assert.Nil(t, result.Info)
	})
}
