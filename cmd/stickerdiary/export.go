package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/stickerdiary/internal/assets"
	"github.com/at-ishikawa/stickerdiary/internal/config"
	"github.com/at-ishikawa/stickerdiary/internal/diary"
	"github.com/at-ishikawa/stickerdiary/internal/pdf"
	"github.com/at-ishikawa/stickerdiary/internal/render"
)

const (
	coverTimeout    = 10 * time.Second
	coverRetryCount = 2
)

func newExportCommand() *cobra.Command {
	var (
		format    = FormatPNG
		outputDir string
	)
	command := &cobra.Command{
		Use:   "export <diary id>",
		Short: "Export a diary as a PNG image, Markdown or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, a *app, args []string) error {
			ctx := cmd.Context()
			d, err := a.diaries.GetByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("a.diaries.GetByID(%s) > %w", args[0], err)
			}
			if outputDir == "" {
				outputDir = a.cfg.Outputs.Directory
			}

			paths, err := exportDiary(ctx, a.cfg, *d, format, outputDir)
			if err != nil {
				return err
			}
			for _, path := range paths {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		}),
	}
	flags := command.Flags()
	flags.Var(&format, "format", fmt.Sprintf("Output format. Options: %s, %s, %s", FormatPNG, FormatMarkdown, FormatPDF))
	flags.StringVarP(&outputDir, "output", "o", "", "Output directory (default outputs.directory)")
	return command
}

// exportDiary writes the files of one diary into dir and returns their paths.
// Markdown embeds the PNG next to it. The PDF is rendered from Markdown without the image.
func exportDiary(ctx context.Context, cfg *config.Config, d diary.Diary, format FormatFlag, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}

	shareURL := ""
	if d.IsPublic {
		shareURL = diary.ShareURL(cfg.Share.BaseURL, d.ID)
	}

	switch format {
	case FormatPNG, FormatMarkdown:
		pngPath := filepath.Join(dir, d.ID+".png")
		if err := exportPNG(ctx, d, pngPath); err != nil {
			return nil, err
		}
		if format == FormatPNG {
			return []string{pngPath}, nil
		}

		markdownPath := filepath.Join(dir, d.ID+".md")
		file, err := os.Create(markdownPath)
		if err != nil {
			return nil, fmt.Errorf("os.Create(%s) > %w", markdownPath, err)
		}
		defer file.Close()
		templateData := assets.NewDiaryTemplate(d, shareURL, filepath.Base(pngPath))
		if err := assets.WriteDiary(file, cfg.Outputs.MarkdownTemplate, templateData); err != nil {
			return nil, fmt.Errorf("assets.WriteDiary() > %w", err)
		}
		return []string{pngPath, markdownPath}, nil
	case FormatPDF:
		var markdown bytes.Buffer
		if err := assets.WriteDiary(&markdown, cfg.Outputs.MarkdownTemplate, assets.NewDiaryTemplate(d, shareURL, "")); err != nil {
			return nil, fmt.Errorf("assets.WriteDiary() > %w", err)
		}
		pdfPath := filepath.Join(dir, d.ID+".pdf")
		if err := pdf.WriteMarkdownPDF(markdown.Bytes(), pdfPath); err != nil {
			return nil, fmt.Errorf("pdf.WriteMarkdownPDF() > %w", err)
		}
		return []string{pdfPath}, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

func exportPNG(ctx context.Context, d diary.Diary, path string) error {
	covers := render.NewCoverFetcher(coverTimeout, coverRetryCount)
	defer covers.Close()

	renderer, err := render.NewRenderer(render.WithCovers(covers))
	if err != nil {
		return fmt.Errorf("render.NewRenderer() > %w", err)
	}
	if err := renderer.SavePNG(ctx, path, d.Content); err != nil {
		return fmt.Errorf("renderer.SavePNG() > %w", err)
	}
	return nil
}
