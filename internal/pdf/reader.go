package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const defaultMaxTextSize = 10 * 1024 * 1024 // 10MB text limit

// Reader handles PDF text extraction
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a new PDF reader with the specified constraints
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: defaultMaxTextSize,
	}
}

// ExtractText returns the plain text of every page, pages separated by a
// newline so digit runs never join across a page boundary. A document without
// extractable text (for example a scanned PDF) yields an empty Text, not an
// error. The context is checked between pages.
func (r *Reader) ExtractText(ctx context.Context, path string) (result *TextResult, err error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("PDF text extraction failed: %v", rec)
		}
	}()

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	result = &TextResult{
		Path:  path,
		Pages: pdfReader.NumPage(),
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= result.Pages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}
		if strings.TrimSpace(content) != "" {
			result.PagesWithText++
		}

		if builder.Len()+len(content) > r.maxTextSize {
			remaining := r.maxTextSize - builder.Len()
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			result.Truncated = true
			break
		}

		builder.WriteString(content)
		if pageNum < result.Pages {
			builder.WriteString("\n")
		}
	}

	result.Text = builder.String()
	return result, nil
}
