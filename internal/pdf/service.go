package pdf

import (
	"context"
	"fmt"

	"github.com/a3tai/mcp-benford/internal/pdf/security"
)

// Service bundles the PDF collaborators used by the Benford analysis: text
// extraction, table extraction, validation and upload spooling.
type Service struct {
	maxFileSize   int64
	reader        *Reader
	validator     *Validator
	tables        *TableExtractor
	search        *Search
	pathValidator *security.PathValidator
}

// NewService creates a new PDF service with all components
func NewService(maxFileSize int64, configuredDirectory string) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		maxFileSize:   maxFileSize,
		reader:        NewReader(maxFileSize),
		validator:     NewValidator(maxFileSize),
		tables:        NewTableExtractor(maxFileSize),
		search:        NewSearch(maxFileSize),
		pathValidator: pathValidator,
	}, nil
}

// ResolvePath returns the absolute form of path after checking it is inside
// the configured directory
func (s *Service) ResolvePath(path string) (string, error) {
	resolved, err := s.pathValidator.Resolve(path)
	if err != nil {
		return "", fmt.Errorf("security validation failed: %w", err)
	}
	return resolved, nil
}

// Spool stores uploaded bytes in a temporary file
func (s *Service) Spool(content []byte) (string, func(), error) {
	return Spool(content, s.maxFileSize)
}

// ValidateDocument checks that path is a readable PDF within the size limit
func (s *Service) ValidateDocument(path string, checkExtension bool) error {
	return s.validator.ValidateDocument(path, checkExtension)
}

// Inspect returns structural information about a PDF
func (s *Service) Inspect(path string) (*DocumentInfo, error) {
	return s.validator.Inspect(path)
}

// ExtractText returns the concatenated page text of a PDF
func (s *Service) ExtractText(ctx context.Context, path string) (*TextResult, error) {
	return s.reader.ExtractText(ctx, path)
}

// ExtractTables returns the tables detected in a PDF
func (s *Service) ExtractTables(ctx context.Context, path string) (*Tables, error) {
	return s.tables.Extract(ctx, path)
}

// PDFValidateFile performs validation on a PDF file
func (s *Service) PDFValidateFile(req PDFValidateFileRequest) (*PDFValidateFileResult, error) {
	path, err := s.ResolvePath(req.Path)
	if err != nil {
		return nil, err
	}
	req.Path = path
	return s.validator.ValidateFile(req)
}

// PDFExtractTables extracts tables from a PDF file in the configured directory
func (s *Service) PDFExtractTables(ctx context.Context, req PDFExtractTablesRequest) (*Tables, error) {
	path, err := s.ResolvePath(req.Path)
	if err != nil {
		return nil, err
	}
	return s.tables.Extract(ctx, path)
}

// PDFSearchDirectory lists the PDFs under the configured directory. A
// non-empty req.Directory must itself be inside the configured directory.
func (s *Service) PDFSearchDirectory(req PDFSearchDirectoryRequest) (*PDFSearchDirectoryResult, error) {
	if req.Directory == "" {
		req.Directory = s.GetConfiguredDirectory()
	}
	directory, err := s.ResolvePath(req.Directory)
	if err != nil {
		return nil, err
	}
	req.Directory = directory
	return s.search.SearchDirectory(req)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// GetConfiguredDirectory returns the directory file tools are confined to
func (s *Service) GetConfiguredDirectory() string {
	return s.pathValidator.GetConfiguredDirectory()
}
