package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMarkdownToPDF(t *testing.T) {
	tests := []struct {
		name              string
		fileName          string
		content           string
		wantErrorContains string
	}{
		{
			name:     "diary markdown",
			fileName: "diary_1.md",
			content:  "# Rainy day\n\n- Date: 2024-03-15\n\n## Memo\n\nstayed in\n",
		},
		{
			name:              "not a markdown file",
			fileName:          "diary_1.txt",
			content:           "# Rainy day\n",
			wantErrorContains: "must have .md extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markdownPath := filepath.Join(t.TempDir(), tt.fileName)
			require.NoError(t, os.WriteFile(markdownPath, []byte(tt.content), 0644))

			got, err := ConvertMarkdownToPDF(markdownPath)
			if tt.wantErrorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrorContains)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(got))
			assert.Equal(t, "diary_1.pdf", filepath.Base(got))

			data, err := os.ReadFile(got)
			require.NoError(t, err)
			assert.Equal(t, "%PDF", string(data[:4]))
		})
	}
}

func TestConvertMarkdownToPDF_MissingFile(t *testing.T) {
	_, err := ConvertMarkdownToPDF(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "os.ReadFile")
}

func TestWriteMarkdownPDF_CreatesDirectory(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "exports", "2024", "diary.pdf")
	require.NoError(t, WriteMarkdownPDF([]byte("# Title\n\nbody\n"), pdfPath))
	assert.FileExists(t, pdfPath)
}
