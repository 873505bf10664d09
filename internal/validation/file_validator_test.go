package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileValidator_ValidateInputWorkbook(t *testing.T) {
	dir := t.TempDir()
	v := NewFileValidator(nil)

	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr string
	}{
		{
			name: "valid xlsx file",
			setup: func(t *testing.T) string {
				path := filepath.Join(dir, "prices.xlsx")
				require.NoError(t, os.WriteFile(path, []byte("stub"), 0644))
				return path
			},
		},
		{
			name: "missing file",
			setup: func(t *testing.T) string {
				return filepath.Join(dir, "nope.xlsx")
			},
			wantErr: "does not exist",
		},
		{
			name: "directory instead of file",
			setup: func(t *testing.T) string {
				path := filepath.Join(dir, "subdir.xlsx")
				require.NoError(t, os.Mkdir(path, 0755))
				return path
			},
			wantErr: "is a directory",
		},
		{
			name: "unsupported extension",
			setup: func(t *testing.T) string {
				path := filepath.Join(dir, "prices.csv")
				require.NoError(t, os.WriteFile(path, []byte("a,b"), 0644))
				return path
			},
			wantErr: "unsupported workbook extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateInputWorkbook(tt.setup(t))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFileValidator_ValidateOutputPath(t *testing.T) {
	dir := t.TempDir()
	v := NewFileValidator(nil)

	// Nested directory gets created on demand.
	out := filepath.Join(dir, "reports", "out.xlsx")
	require.NoError(t, v.ValidateOutputPath(out))
	assert.DirExists(t, filepath.Join(dir, "reports"))
}
