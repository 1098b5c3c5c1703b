package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/at-ishikawa/stickerdiary/internal/diary"
	"github.com/at-ishikawa/stickerdiary/internal/editor"
)

const helpText = `Canvas
  mouse drag     move a sticker or card
  tab            select the next sticker
  arrows         move the selection (shift: 10px)
  [ ] { }        layer down / up / to back / to front
  r R + -        rotate and scale the selection
  del            delete the selection
  esc            clear the selection
Add
  e              sticker picker
  t              text sticker
  c              card palette
  f m            flip / comment on the selected card
Diary
  T M D          edit title / memo / date
  b              next background
  g G            toggle snap / guides
  X              clear all stickers
  ctrl+z ctrl+y  undo / redo
  ctrl+s         save
  ctrl+l         copy the share link
  q              quit`

func (m *Model) View() string {
	state := m.engine.State()
	st := newStyles(state.Background)

	if m.mode == modeHelp {
		return st.frame.Render(helpText) + "\n" + st.muted.Render("press any key to go back")
	}

	title := st.title.Render(state.Title)
	if strings.TrimSpace(state.Title) == "" {
		title = st.muted.Render(diary.DefaultTitle)
	}
	header := title + "  " + st.muted.Render(fmt.Sprintf("%s · %s", state.Date, state.Background))
	canvas := st.frame.Render(drawCanvas(state).render(st))

	var side string
	switch m.mode {
	case modeStickers:
		side = m.stickersView(st)
	case modePalette:
		side = m.paletteView(st)
	default:
		side = selectionView(state, st)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, st.panel.Render(side))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.statusLine(state, st), m.footer(st))
}

func (m *Model) statusLine(state editor.State, st styles) string {
	status := state.Status.String()
	switch state.Status {
	case editor.StatusSaved:
		if !state.LastSaved.IsZero() {
			status = fmt.Sprintf("saved at %s", state.LastSaved.Format("15:04"))
		}
	case editor.StatusSaving:
		status = "saving..."
	case editor.StatusUnsaved:
		status = "unsaved changes"
	case editor.StatusError:
		status = "save failed"
	}

	flags := []string{}
	if state.Snap {
		flags = append(flags, "snap")
	}
	if state.GuidesEnabled {
		flags = append(flags, "guides")
	}
	if state.CanUndo {
		flags = append(flags, "undo")
	}
	if state.CanRedo {
		flags = append(flags, "redo")
	}

	line := st.status[state.Status].Render(status)
	if len(flags) > 0 {
		line += "  " + st.muted.Render("["+strings.Join(flags, " ")+"]")
	}
	if m.message != "" {
		line += "  " + st.message.Render(m.message)
	}
	return line
}

func (m *Model) footer(st styles) string {
	if m.mode == modeInput {
		return st.prompt.Render(inputPrompts[m.field]+": ") + string(m.input) + "█"
	}
	return st.muted.Render("? help · ctrl+s save · q quit")
}

func (m *Model) stickersView(st styles) string {
	var b strings.Builder
	for i, category := range StickerCategories {
		name := category.Name
		if i == m.category {
			name = st.prompt.Render("[" + name + "]")
		}
		b.WriteString(name + " ")
	}
	b.WriteString("\n\n")
	for i, sticker := range StickerCategories[m.category].Stickers {
		fmt.Fprintf(&b, "%d  %s\n", i+1, sticker)
	}
	b.WriteString("\n" + st.muted.Render("1-8 add · tab next · esc close"))
	return b.String()
}

func (m *Model) paletteView(st styles) string {
	if m.palette == nil {
		return st.muted.Render("loading cards...")
	}
	if len(m.palette) == 0 {
		return st.muted.Render("the catalog is empty\nimport cards with `stickerdiary cards import`")
	}
	var b strings.Builder
	b.WriteString(st.title.Render("Cards") + "\n\n")
	for i, c := range m.palette {
		cursor := "  "
		if i == m.cursor {
			cursor = st.prompt.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, truncate(c.Title, 24), st.muted.Render(c.Author))
	}
	b.WriteString("\n" + st.muted.Render("enter place · esc close"))
	return b.String()
}

func selectionView(state editor.State, st styles) string {
	var b strings.Builder
	if s, ok := selectedSticker(state); ok {
		fmt.Fprintf(&b, "%s\n\n", st.title.Render("Sticker "+s.Emoji))
		fmt.Fprintf(&b, "position  %.0f, %.0f\n", s.X, s.Y)
		fmt.Fprintf(&b, "rotation  %.0f°\n", s.Rotation)
		fmt.Fprintf(&b, "scale     %.1f\n", s.Scale)
		fmt.Fprintf(&b, "layer     %d\n", s.ZIndex)
	} else if c, ok := selectedCard(state); ok {
		fmt.Fprintf(&b, "%s\n", st.title.Render(c.CardData.Title))
		if c.CardData.Author != "" {
			fmt.Fprintf(&b, "%s\n", st.muted.Render(c.CardData.Author))
		}
		fmt.Fprintf(&b, "\nrotation  %.0f°\nscale     %.1f\n", c.Rotation, c.Scale)
		comments := state.Comments[commentRef(c)]
		if len(comments) > 0 {
			b.WriteString("\n" + st.title.Render("Comments") + "\n")
			for _, comment := range comments {
				fmt.Fprintf(&b, "%s: %s\n", comment.Author, comment.Text)
			}
		}
	} else {
		b.WriteString(st.muted.Render("nothing selected") + "\n")
	}

	if state.Memo != "" {
		b.WriteString("\n" + st.title.Render("Memo") + "\n" + state.Memo + "\n")
	}
	return b.String()
}
