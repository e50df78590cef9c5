package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// UploadFileName is the name given to spooled uploads inside their temp directory
const UploadFileName = "uploaded_pdf.pdf"

// Spool writes uploaded document bytes to a private temporary directory and
// returns the file path with a cleanup function that removes the directory.
// Cleanup is safe to call more than once.
func Spool(content []byte, maxFileSize int64) (string, func(), error) {
	if len(content) == 0 {
		return "", nil, fmt.Errorf("uploaded file is empty")
	}
	if int64(len(content)) > maxFileSize {
		return "", nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", len(content), maxFileSize)
	}

	dir, err := os.MkdirTemp("", "benford-upload-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			_ = os.RemoveAll(dir)
		})
	}

	path := filepath.Join(dir, UploadFileName)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write uploaded file: %w", err)
	}

	return path, cleanup, nil
}
