package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/at-ishikawa/stickerdiary/internal/diary"
	"github.com/at-ishikawa/stickerdiary/internal/editor"
)

// One terminal cell covers cellWidth x cellHeight canvas pixels.
const (
	cellWidth  = 10
	cellHeight = 20

	canvasCols = editor.CanvasWidth / cellWidth
	canvasRows = editor.CanvasHeight / cellHeight

	stickerSize = 50
	cardWidth   = 100
	cardHeight  = 150
)

// Terminal position of the canvas' top-left cell: one header line plus the border.
const (
	canvasLeft = 1
	canvasTop  = 2
)

type cellKind int

const (
	cellBackground cellKind = iota
	cellPattern
	cellGuide
	cellSticker
	cellCard
	cellSelected
)

type cell struct {
	text string
	kind cellKind
}

type grid [][]cell

func newGrid() grid {
	g := make(grid, canvasRows)
	for row := range g {
		g[row] = make([]cell, canvasCols)
		for col := range g[row] {
			g[row][col] = cell{text: " "}
		}
	}
	return g
}

func (g grid) inside(col, row int) bool {
	return row >= 0 && row < len(g) && col >= 0 && col < len(g[row])
}

// put writes text at (col, row). Wide glyphs take the following cell too.
func (g grid) put(col, row int, text string, kind cellKind) {
	width := max(lipgloss.Width(text), 1)
	if !g.inside(col, row) || !g.inside(col+width-1, row) {
		return
	}
	line := g[row]
	// Overwriting half of a wide glyph blanks the other half.
	if line[col].text == "" && col > 0 {
		line[col-1] = cell{text: " ", kind: line[col-1].kind}
	}
	end := col + width
	if end < len(line) && line[end].text == "" {
		line[end] = cell{text: " ", kind: line[end].kind}
	}
	line[col] = cell{text: text, kind: kind}
	for i := col + 1; i < end; i++ {
		line[i] = cell{text: "", kind: kind}
	}
}

func (g grid) putString(col, row int, s string, kind cellKind) int {
	for _, r := range s {
		text := string(r)
		g.put(col, row, text, kind)
		col += max(lipgloss.Width(text), 1)
	}
	return col
}

func cellToPoint(col, row int) editor.Point {
	return editor.Point{X: float64(col * cellWidth), Y: float64(row * cellHeight)}
}

// mouseToCanvas converts a terminal position into canvas coordinates.
func mouseToCanvas(x, y int) (editor.Point, bool) {
	col, row := x-canvasLeft, y-canvasTop
	if col < 0 || col >= canvasCols || row < 0 || row >= canvasRows {
		return editor.Point{}, false
	}
	return cellToPoint(col, row), true
}

// layer is a sticker or a placed card in paint order.
type layer struct {
	zIndex  int
	sticker *diary.Sticker
	card    *diary.PlacedCard
}

func layers(state editor.State) []layer {
	result := make([]layer, 0, len(state.Stickers)+len(state.Cards))
	for i := range state.Cards {
		result = append(result, layer{zIndex: state.Cards[i].ZIndex, card: &state.Cards[i]})
	}
	for i := range state.Stickers {
		result = append(result, layer{zIndex: state.Stickers[i].ZIndex, sticker: &state.Stickers[i]})
	}
	slices.SortStableFunc(result, func(a, b layer) int {
		return a.zIndex - b.zIndex
	})
	return result
}

func (l layer) contains(p editor.Point) bool {
	if l.sticker != nil {
		s := l.sticker
		half := stickerSize / 2 * s.Scale
		cx, cy := s.X+stickerSize/2, s.Y+stickerSize/2
		return p.X >= cx-half && p.X < cx+half && p.Y >= cy-half && p.Y < cy+half
	}
	c := l.card
	w, h := cardWidth*c.Scale, cardHeight*c.Scale
	cx, cy := c.X+cardWidth/2, c.Y+cardHeight/2
	return p.X >= cx-w/2 && p.X < cx+w/2 && p.Y >= cy-h/2 && p.Y < cy+h/2
}

// hitTest returns the topmost layer under p.
func hitTest(state editor.State, p editor.Point) (layer, bool) {
	all := layers(state)
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].contains(p) {
			return all[i], true
		}
	}
	return layer{}, false
}

func drawCanvas(state editor.State) grid {
	g := newGrid()
	drawPattern(g, state.Background)
	if state.Guides.X.Visible {
		col := int(state.Guides.X.Position / cellWidth)
		for row := range g {
			g.put(col, row, "│", cellGuide)
		}
	}
	if state.Guides.Y.Visible {
		row := int(state.Guides.Y.Position / cellHeight)
		for col := 0; col < canvasCols; col++ {
			g.put(col, row, "─", cellGuide)
		}
	}

	for _, l := range layers(state) {
		if l.sticker != nil {
			kind := cellSticker
			if state.HasSelection && state.SelectedSticker == l.sticker.ID {
				kind = cellSelected
			}
			drawSticker(g, *l.sticker, kind)
			continue
		}
		kind := cellCard
		if state.SelectedCard == l.card.ID {
			kind = cellSelected
		}
		drawCard(g, *l.card, state.Flipped[l.card.ID], len(state.Comments[commentRef(*l.card)]), kind)
	}
	return g
}

func drawPattern(g grid, background diary.Background) {
	for row := range g {
		for col := range g[row] {
			var text string
			switch background {
			case diary.BackgroundGrid:
				if col%2 == 0 {
					text = "┼"
				}
			case diary.BackgroundDots:
				if col%2 == 0 && row%2 == 0 {
					text = "·"
				}
			case diary.BackgroundLines:
				text = "_"
			}
			if text != "" {
				g[row][col] = cell{text: text, kind: cellPattern}
			}
		}
	}
}

func drawSticker(g grid, s diary.Sticker, kind cellKind) {
	cx, cy := s.X+stickerSize/2, s.Y+stickerSize/2
	row := int(cy / cellHeight)
	if s.IsText {
		width := lipgloss.Width(s.Emoji)
		g.putString(int(cx/cellWidth)-width/2, row, s.Emoji, kind)
		return
	}
	width := max(lipgloss.Width(s.Emoji), 1)
	g.put(int(cx/cellWidth)-width/2, row, s.Emoji, kind)
}

func drawCard(g grid, c diary.PlacedCard, flipped bool, comments int, kind cellKind) {
	// Cards scale around their centre.
	w, h := cardWidth*c.Scale, cardHeight*c.Scale
	left := int((c.X + cardWidth/2 - w/2) / cellWidth)
	top := int((c.Y + cardHeight/2 - h/2) / cellHeight)
	cols := max(int(w/cellWidth), 4)
	rows := max(int(h/cellHeight), 3)
	right, bottom := left+cols-1, top+rows-1

	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			text := " "
			switch {
			case row == top && col == left:
				text = "┌"
			case row == top && col == right:
				text = "┐"
			case row == bottom && col == left:
				text = "└"
			case row == bottom && col == right:
				text = "┘"
			case row == top || row == bottom:
				text = "─"
			case col == left || col == right:
				text = "│"
			}
			g.put(col, row, text, kind)
		}
	}

	inner := cols - 2
	lines := []string{c.CardData.Title, c.CardData.Author}
	if flipped {
		lines = []string{c.CardData.Genre, c.CardData.Description}
		if comments > 0 {
			lines = append(lines, strings.Repeat("*", min(comments, inner)))
		}
	}
	for i, line := range lines {
		row := top + 1 + i
		if row >= bottom {
			break
		}
		g.putString(left+1, row, truncate(line, inner), kind)
	}
}

// commentRef is the key comments of a placed card are stored under.
func commentRef(c diary.PlacedCard) string {
	if c.CardID != "" {
		return c.CardID
	}
	return c.ID
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width-1 {
			break
		}
		b.WriteRune(r)
		used += w
	}
	b.WriteString("…")
	return b.String()
}

func (g grid) render(styles styles) string {
	var b strings.Builder
	for row, line := range g {
		if row > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for col := 1; col <= len(line); col++ {
			if col < len(line) && line[col].kind == line[start].kind {
				continue
			}
			var run strings.Builder
			for _, c := range line[start:col] {
				run.WriteString(c.text)
			}
			b.WriteString(styles.cell(line[start].kind).Render(run.String()))
			start = col
		}
	}
	return b.String()
}

// String returns the canvas without styling.
func (g grid) String() string {
	var b strings.Builder
	for row, line := range g {
		if row > 0 {
			b.WriteByte('\n')
		}
		for _, c := range line {
			b.WriteString(c.text)
		}
	}
	return b.String()
}
