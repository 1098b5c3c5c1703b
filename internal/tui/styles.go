package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/at-ishikawa/stickerdiary/internal/diary"
	"github.com/at-ishikawa/stickerdiary/internal/editor"
)

var backgroundColors = map[diary.Background]lipgloss.Color{
	diary.BackgroundPlain: "#FDF8F3",
	diary.BackgroundGrid:  "#FDF8F3",
	diary.BackgroundDots:  "#FDF8F3",
	diary.BackgroundLines: "#FDF8F3",
	diary.BackgroundMint:  "#E8F5F1",
	diary.BackgroundPeach: "#FFF0E5",
}

const (
	colorInk      = lipgloss.Color("#5D4E3C")
	colorPattern  = lipgloss.Color("#D4CFC8")
	colorGuide    = lipgloss.Color("#FF6B9D")
	colorSelected = lipgloss.Color("#7BC4A8")
	colorMuted    = lipgloss.Color("#8B7D6B")
	colorError    = lipgloss.Color("#E05252")
)

type styles struct {
	background lipgloss.Style
	pattern    lipgloss.Style
	guide      lipgloss.Style
	sticker    lipgloss.Style
	card       lipgloss.Style
	selected   lipgloss.Style

	frame   lipgloss.Style
	title   lipgloss.Style
	muted   lipgloss.Style
	panel   lipgloss.Style
	prompt  lipgloss.Style
	message lipgloss.Style
	status  map[editor.SaveStatus]lipgloss.Style
}

func newStyles(background diary.Background) styles {
	paper, ok := backgroundColors[background]
	if !ok {
		paper = backgroundColors[diary.BackgroundPlain]
	}
	base := lipgloss.NewStyle().Background(paper)
	return styles{
		background: base.Copy().Foreground(colorInk),
		pattern:    base.Copy().Foreground(colorPattern),
		guide:      base.Copy().Foreground(colorGuide),
		sticker:    base.Copy().Foreground(colorInk),
		card:       base.Copy().Foreground(colorInk).Bold(true),
		selected:   base.Copy().Foreground(colorSelected).Bold(true),

		frame:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted),
		title:   lipgloss.NewStyle().Bold(true).Foreground(colorInk),
		muted:   lipgloss.NewStyle().Foreground(colorMuted),
		panel:   lipgloss.NewStyle().PaddingLeft(2).Width(36),
		prompt:  lipgloss.NewStyle().Bold(true).Foreground(colorSelected),
		message: lipgloss.NewStyle().Italic(true).Foreground(colorMuted),
		status: map[editor.SaveStatus]lipgloss.Style{
			editor.StatusSaved:   lipgloss.NewStyle().Foreground(colorSelected),
			editor.StatusSaving:  lipgloss.NewStyle().Foreground(colorMuted),
			editor.StatusUnsaved: lipgloss.NewStyle().Foreground(colorGuide),
			editor.StatusError:   lipgloss.NewStyle().Bold(true).Foreground(colorError),
		},
	}
}

func (s styles) cell(kind cellKind) lipgloss.Style {
	switch kind {
	case cellPattern:
		return s.pattern
	case cellGuide:
		return s.guide
	case cellSticker:
		return s.sticker
	case cellCard:
		return s.card
	case cellSelected:
		return s.selected
	}
	return s.background
}
