package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPathValidator(t *testing.T) {
	_, err := NewPathValidator("")
	assert.Error(t, err)

	v, err := NewPathValidator("/non/existent/path")
	require.NoError(t, err)
	assert.Equal(t, "/non/existent/path", v.GetConfiguredDirectory())
}

func TestPathValidator_Resolve(t *testing.T) {
	tempDir := t.TempDir()
	outside := t.TempDir()

	inside := filepath.Join(tempDir, "report.pdf")
	require.NoError(t, os.WriteFile(inside, []byte("x"), 0o600))

	v, err := NewPathValidator(tempDir)
	require.NoError(t, err)

	tests := []struct {
		name      string
		path      string
		want      string
		wantError bool
	}{
		{name: "absolute inside", path: inside, want: inside},
		{name: "relative inside", path: "report.pdf", want: inside},
		{name: "nested relative", path: "sub/q3.pdf", want: filepath.Join(tempDir, "sub", "q3.pdf")},
		{name: "traversal", path: "../escape.pdf", wantError: true},
		{name: "other directory", path: filepath.Join(outside, "x.pdf"), wantError: true},
		{name: "empty", path: "", wantError: true},
		{name: "null bytes only", path: "\x00", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Resolve(tt.path)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathValidator_SymlinkEscape(t *testing.T) {
	tempDir := t.TempDir()
	outside := t.TempDir()

	target := filepath.Join(outside, "secret.pdf")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o600))

	link := filepath.Join(tempDir, "link.pdf")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	v, err := NewPathValidator(tempDir)
	require.NoError(t, err)

	assert.Error(t, v.ValidatePath(link))
}

func TestPathValidator_MissingDirectoryAllowsAll(t *testing.T) {
	v, err := NewPathValidator(filepath.Join(t.TempDir(), "not-created"))
	require.NoError(t, err)

	within, err := v.IsPathWithinDirectory("/etc/hosts")
	require.NoError(t, err)
	assert.True(t, within)
}
