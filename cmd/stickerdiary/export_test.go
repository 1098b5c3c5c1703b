package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/stickerdiary/internal/diary"
	"github.com/at-ishikawa/stickerdiary/internal/testutil"
)

func TestExport(t *testing.T) {
	content := diary.Content{
		Title:      "Rainy day",
		Date:       "2024-03-15",
		Memo:       "stayed in",
		Background: diary.BackgroundGrid,
		Stickers: []diary.Sticker{
			{ID: 1, Emoji: "Wow", X: 100, Y: 100, Rotation: 0, Scale: 1, ZIndex: 1, IsText: true},
		},
	}

	tests := []struct {
		name      string
		args      []string
		wantFiles []string
		check     func(t *testing.T, dir, id string)
	}{
		{
			name:      "png by default",
			args:      nil,
			wantFiles: []string{".png"},
			check: func(t *testing.T, dir, id string) {
				data, err := os.ReadFile(filepath.Join(dir, id+".png"))
				require.NoError(t, err)
				assert.Equal(t, "\x89PNG", string(data[:4]))
			},
		},
		{
			name:      "markdown with the image",
			args:      []string{"--format", "md"},
			wantFiles: []string{".png", ".md"},
			check: func(t *testing.T, dir, id string) {
				data, err := os.ReadFile(filepath.Join(dir, id+".md"))
				require.NoError(t, err)
				markdown := string(data)
				assert.Contains(t, markdown, "# Rainy day")
				assert.Contains(t, markdown, "![Rainy day]("+id+".png)")
				assert.Contains(t, markdown, "stayed in")
				assert.Contains(t, markdown, "- Wow (text)")
				assert.NotContains(t, markdown, "Shared:")
			},
		},
		{
			name:      "pdf",
			args:      []string{"--format", "pdf"},
			wantFiles: []string{".pdf"},
			check: func(t *testing.T, dir, id string) {
				data, err := os.ReadFile(filepath.Join(dir, id+".pdf"))
				require.NoError(t, err)
				assert.Equal(t, "%PDF", string(data[:4]))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			cfgPath := testutil.SetupTestConfig(t, tmpDir)
			d := testutil.CreateDiary(t, tmpDir, content)
			outputDir := filepath.Join(tmpDir, testutil.OutputDirectory)

			out, err := runCommand(t, cfgPath, append([]string{"export", d.ID}, tt.args...)...)
			require.NoError(t, err)

			var want []string
			for _, ext := range tt.wantFiles {
				want = append(want, filepath.Join(outputDir, d.ID+ext))
			}
			assert.Equal(t, want, strings.Fields(out))
			tt.check(t, outputDir, d.ID)
		})
	}
}

func TestExport_SharedMarkdown(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	d := testutil.CreateDiary(t, tmpDir, diary.Content{Title: "Picnic"})
	_, err := runCommand(t, cfgPath, "diaries", "share", d.ID)
	require.NoError(t, err)

	outputDir := filepath.Join(tmpDir, "custom")
	_, err = runCommand(t, cfgPath, "export", d.ID, "--format", "md", "--output", outputDir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outputDir, d.ID+".md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "- Shared: "+testutil.ShareBaseURL+"/share/"+d.ID)
}

func TestExport_Errors(t *testing.T) {
	tests := []struct {
		name              string
		args              []string
		wantErrorContains string
	}{
		{
			name:              "unknown diary",
			args:              []string{"export", "diary_missing"},
			wantErrorContains: "a.diaries.GetByID(diary_missing)",
		},
		{
			name:              "unknown format",
			args:              []string{"export", "diary_missing", "--format", "jpg"},
			wantErrorContains: `invalid value "jpg"`,
		},
		{
			name:              "missing id",
			args:              []string{"export"},
			wantErrorContains: "accepts 1 arg(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := testutil.SetupTestConfig(t, t.TempDir())
			_, err := runCommand(t, cfgPath, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrorContains)
		})
	}
}
