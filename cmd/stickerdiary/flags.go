package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/stickerdiary/internal/card"
	"github.com/at-ishikawa/stickerdiary/internal/diary"
)

type BackgroundFlag diary.Background

// Set implements pflag.Value.
func (b *BackgroundFlag) Set(v string) error {
	background, err := diary.ParseBackground(v)
	if err != nil {
		return fmt.Errorf("invalid value %q, valid values are %s", v, joinBackgrounds())
	}
	*b = BackgroundFlag(background)
	return nil
}

// String implements pflag.Value.
func (b *BackgroundFlag) String() string {
	if b == nil {
		return ""
	}
	return string(*b)
}

// Type implements pflag.Value.
func (b *BackgroundFlag) Type() string {
	return "BackgroundFlag"
}

func joinBackgrounds() string {
	names := make([]string, 0, len(diary.Backgrounds))
	for _, background := range diary.Backgrounds {
		names = append(names, string(background))
	}
	return strings.Join(names, ", ")
}

type StatusFlag card.Status

// Set implements pflag.Value.
func (s *StatusFlag) Set(v string) error {
	status := card.Status(v)
	if !status.Valid() {
		return fmt.Errorf("invalid value %q, valid values are %q, %q, %q or %q", v,
			card.StatusWatching, card.StatusPlanToWatch, card.StatusCompleted, card.StatusOnHold)
	}
	*s = StatusFlag(status)
	return nil
}

// String implements pflag.Value.
func (s *StatusFlag) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Type implements pflag.Value.
func (s *StatusFlag) Type() string {
	return "StatusFlag"
}

type FormatFlag string

const (
	FormatPNG      FormatFlag = "png"
	FormatMarkdown FormatFlag = "md"
	FormatPDF      FormatFlag = "pdf"
)

// Set implements pflag.Value.
func (f *FormatFlag) Set(v string) error {
	switch FormatFlag(v) {
	case FormatPNG, FormatMarkdown, FormatPDF:
		*f = FormatFlag(v)
	default:
		return fmt.Errorf("invalid value %q, valid values are %q, %q or %q", v, FormatPNG, FormatMarkdown, FormatPDF)
	}
	return nil
}

// String implements pflag.Value.
func (f *FormatFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *FormatFlag) Type() string {
	return "FormatFlag"
}

var (
	_ pflag.Value = (*BackgroundFlag)(nil)
	_ pflag.Value = (*StatusFlag)(nil)
	_ pflag.Value = (*FormatFlag)(nil)
)
