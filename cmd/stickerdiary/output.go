package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/stickerdiary/internal/card"
	"github.com/at-ishikawa/stickerdiary/internal/diary"
)

var (
	bold  = color.New(color.Bold)
	faint = color.New(color.Faint)

	statusColors = map[card.Status]*color.Color{
		card.StatusWatching:    color.New(color.FgGreen),
		card.StatusPlanToWatch: color.New(color.FgCyan),
		card.StatusCompleted:   color.New(color.FgBlue),
		card.StatusOnHold:      color.New(color.FgYellow),
	}
)

func printDiaries(w io.Writer, diaries []diary.Diary) {
	if len(diaries) == 0 {
		_, _ = faint.Fprintln(w, "no diaries")
		return
	}
	for _, d := range diaries {
		_, _ = bold.Fprintf(w, "%s  %s", d.Date, d.Title)
		details := []string{d.ID, fmt.Sprintf("%d stickers", len(d.Stickers)), fmt.Sprintf("%d cards", len(d.Cards))}
		if d.Likes > 0 {
			details = append(details, fmt.Sprintf("%d likes", d.Likes))
		}
		if d.IsPublic {
			details = append(details, "public")
		}
		_, _ = faint.Fprintf(w, "  (%s)\n", strings.Join(details, ", "))
	}
}

func printCards(w io.Writer, cards []card.Card) {
	if len(cards) == 0 {
		_, _ = faint.Fprintln(w, "no cards")
		return
	}
	for _, c := range cards {
		_, _ = bold.Fprint(w, c.Title)
		if c.Author != "" {
			_, _ = fmt.Fprintf(w, " by %s", c.Author)
		}
		statusColor, ok := statusColors[c.Status]
		if !ok {
			statusColor = faint
		}
		_, _ = statusColor.Fprintf(w, "  [%s]", c.Status)
		_, _ = faint.Fprintf(w, "  %s\n", c.ID)
	}
}

func printFolders(w io.Writer, folders []card.Folder) {
	if len(folders) == 0 {
		_, _ = faint.Fprintln(w, "no folders")
		return
	}
	for _, f := range folders {
		_, _ = bold.Fprint(w, f.Name)
		_, _ = faint.Fprintf(w, "  %s  %s\n", f.Color, f.ID)
	}
}
