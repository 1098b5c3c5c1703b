// Package assets renders diaries as Markdown with a user template or the embedded one.
package assets

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const diaryTemplateName = "diary.md.go.tmpl"

//go:embed templates/diary.md.go.tmpl
var fallbackDiaryTemplate string

// ParseDiaryTemplate parses the template at templatePath. When it is missing or broken,
// the embedded template is used instead.
func ParseDiaryTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, diaryTemplateName, fallbackDiaryTemplate)
}

func parseTemplateWithFallback(templatePath string, fallbackName string, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join":  strings.Join,
		"upper": strings.ToUpper,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
