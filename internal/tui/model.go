// Package tui is the terminal front-end of the diary editor.
// It draws the engine state and forwards keys and mouse gestures to the engine.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/at-ishikawa/stickerdiary/internal/card"
	"github.com/at-ishikawa/stickerdiary/internal/diary"
	"github.com/at-ishikawa/stickerdiary/internal/editor"
)

type mode int

const (
	modeCanvas mode = iota
	modeStickers
	modePalette
	modeInput
	modeHelp
)

type inputField int

const (
	inputTitle inputField = iota
	inputMemo
	inputDate
	inputText
	inputComment
)

var inputPrompts = map[inputField]string{
	inputTitle:   "Title",
	inputMemo:    "Memo",
	inputDate:    "Date (YYYY-MM-DD)",
	inputText:    "Text sticker",
	inputComment: "Comment",
}

const (
	rotationStep = 15
	scaleStep    = 0.1
	refreshEvery = time.Second
)

type savedMsg struct {
	err error
}

type paletteMsg struct {
	cards []card.Card
	err   error
}

type tickMsg time.Time

type Option func(*Model)

// WithShareBaseURL sets the base of the link copied with ctrl+l.
func WithShareBaseURL(baseURL string) Option {
	return func(m *Model) {
		m.shareBaseURL = baseURL
	}
}

// WithClipboard replaces the system clipboard.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		m.writeClipboard = write
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

type Model struct {
	ctx    context.Context
	engine *editor.Engine
	logger *slog.Logger

	shareBaseURL   string
	writeClipboard func(string) error

	mode     mode
	category int
	palette  []card.Card
	cursor   int
	field    inputField
	input    []rune
	message  string

	width  int
	height int
}

func New(ctx context.Context, engine *editor.Engine, opts ...Option) *Model {
	m := &Model{
		ctx:            ctx,
		engine:         engine,
		logger:         slog.Default(),
		writeClipboard: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run starts the full-screen editor and blocks until the user quits.
func Run(ctx context.Context, engine *editor.Engine, opts ...Option) error {
	program := tea.NewProgram(
		New(ctx, engine, opts...),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program.Run() > %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m, tick()
	case savedMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("failed to save the diary: %v", msg.err)
		} else {
			m.message = "saved"
		}
		return m, nil
	case paletteMsg:
		if msg.err != nil {
			m.logger.Error("failed to load the card palette", "error", msg.err)
			m.message = fmt.Sprintf("failed to load cards: %v", msg.err)
			m.mode = modeCanvas
			return m, nil
		}
		m.palette = msg.cards
		m.cursor = 0
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(tea.MouseEvent(msg))
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeInput:
			return m, m.updateInput(msg)
		case modeStickers:
			return m, m.updateStickers(msg)
		case modePalette:
			return m, m.updatePalette(msg)
		case modeHelp:
			m.mode = modeCanvas
			return m, nil
		}
		return m, m.updateCanvas(msg)
	}
	return m, nil
}

func (m *Model) save() tea.Cmd {
	m.message = ""
	return func() tea.Msg {
		return savedMsg{err: m.engine.Save(m.ctx, false)}
	}
}

func (m *Model) updateCanvas(msg tea.KeyMsg) tea.Cmd {
	m.message = ""
	key := editor.ParseKey(msg.String())
	if (key.Ctrl || key.Meta) && key.Code == "s" {
		return m.save()
	}

	state := m.engine.State()
	if state.SelectedCard != "" && m.updateSelectedCard(state.SelectedCard, key) {
		return nil
	}
	if m.engine.HandleKey(m.ctx, key, false) {
		return nil
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "?":
		m.mode = modeHelp
	case "e":
		m.mode = modeStickers
	case "t":
		m.startInput(inputText, "")
	case "c":
		m.mode = modePalette
		m.palette = nil
		return m.loadPalette()
	case "T":
		m.startInput(inputTitle, state.Title)
	case "M":
		m.startInput(inputMemo, state.Memo)
	case "D":
		m.startInput(inputDate, state.Date)
	case "m":
		if state.SelectedCard == "" {
			m.message = "select a card to comment on"
			return nil
		}
		m.startInput(inputComment, "")
	case "f":
		if state.SelectedCard != "" {
			m.engine.FlipCard(state.SelectedCard)
		}
	case "b":
		m.engine.SetBackground(state.Background.Next())
	case "g":
		m.engine.SetSnap(!state.Snap)
	case "G":
		m.engine.SetGuides(!state.GuidesEnabled)
	case "r":
		m.rotate(state, rotationStep)
	case "R":
		m.rotate(state, -rotationStep)
	case "+", "=":
		m.scale(state, scaleStep)
	case "-":
		m.scale(state, -scaleStep)
	case "}":
		m.engine.BringToFront()
	case "{":
		m.engine.SendToBack()
	case "tab":
		m.selectNext(state)
	case "X":
		if m.engine.ResetCanvas() {
			m.message = "cleared all stickers"
		}
	case "ctrl+l":
		m.copyShareLink(state.ID)
	}
	return nil
}

// updateSelectedCard moves or removes the selected card. Stickers are handled by the engine keymap.
func (m *Model) updateSelectedCard(id string, key editor.Key) bool {
	if key.Ctrl || key.Meta || key.Alt {
		return false
	}
	step := 1.0
	if key.Shift {
		step = 10
	}
	switch key.Code {
	case "up":
		m.engine.MoveCard(id, 0, -step)
	case "down":
		m.engine.MoveCard(id, 0, step)
	case "left":
		m.engine.MoveCard(id, -step, 0)
	case "right":
		m.engine.MoveCard(id, step, 0)
	case "delete", "backspace":
		m.engine.DeleteSelectedCard()
	default:
		return false
	}
	return true
}

func (m *Model) rotate(state editor.State, delta float64) {
	if s, ok := selectedSticker(state); ok {
		m.engine.UpdateStickerProperty(editor.PropertyRotation, s.Rotation+delta)
		return
	}
	if c, ok := selectedCard(state); ok {
		m.engine.UpdateCardProperty(editor.CardPropertyRotation, c.Rotation+delta)
	}
}

func (m *Model) scale(state editor.State, delta float64) {
	if s, ok := selectedSticker(state); ok {
		m.engine.UpdateStickerProperty(editor.PropertyScale, s.Scale+delta)
		return
	}
	if c, ok := selectedCard(state); ok {
		m.engine.UpdateCardProperty(editor.CardPropertyScale, c.Scale+delta)
	}
}

// selectNext selects the sticker above the current one, wrapping to the bottom.
func (m *Model) selectNext(state editor.State) {
	var stickers []diary.Sticker
	for _, l := range layers(state) {
		if l.sticker != nil {
			stickers = append(stickers, *l.sticker)
		}
	}
	if len(stickers) == 0 {
		return
	}
	next := 0
	if state.HasSelection {
		for i, s := range stickers {
			if s.ID == state.SelectedSticker {
				next = (i + 1) % len(stickers)
				break
			}
		}
	}
	m.engine.SelectSticker(stickers[next].ID)
}

func (m *Model) copyShareLink(id string) {
	if id == "" {
		m.message = "save the diary before sharing it"
		return
	}
	url := diary.ShareURL(m.shareBaseURL, id)
	if err := m.writeClipboard(url); err != nil {
		m.logger.Error("failed to copy the share link", "url", url, "error", err)
		m.message = fmt.Sprintf("failed to copy the share link: %v", err)
		return
	}
	m.message = "copied " + url
}

func (m *Model) loadPalette() tea.Cmd {
	return func() tea.Msg {
		cards, err := m.engine.Palette(m.ctx)
		return paletteMsg{cards: cards, err: err}
	}
}

func (m *Model) startInput(field inputField, initial string) {
	m.mode = modeInput
	m.field = field
	m.input = []rune(initial)
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeCanvas
		m.input = nil
		return nil
	case tea.KeyEnter:
		m.commitInput()
		m.mode = modeCanvas
		m.input = nil
		return nil
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return nil
	case tea.KeySpace:
		m.input = append(m.input, ' ')
		return nil
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
		return nil
	}

	key := editor.ParseKey(msg.String())
	if (key.Ctrl || key.Meta) && key.Code == "s" {
		return m.save()
	}
	m.engine.HandleKey(m.ctx, key, true)
	return nil
}

func (m *Model) commitInput() {
	value := string(m.input)
	switch m.field {
	case inputTitle:
		m.engine.SetTitle(value)
	case inputMemo:
		m.engine.SetMemo(value)
	case inputDate:
		if !m.engine.SetDate(value) {
			m.message = fmt.Sprintf("invalid date %q", value)
		}
	case inputText:
		m.engine.AddSticker(value, true)
	case inputComment:
		state := m.engine.State()
		if _, ok := m.engine.AddComment(state.SelectedCard, value); !ok {
			m.message = "comment not added"
		}
	}
}

func (m *Model) updateStickers(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeCanvas
	case "tab", "right", "l":
		m.category = (m.category + 1) % len(StickerCategories)
	case "shift+tab", "left", "h":
		m.category = (m.category + len(StickerCategories) - 1) % len(StickerCategories)
	default:
		if len(msg.Runes) != 1 {
			return nil
		}
		category := StickerCategories[m.category]
		index := int(msg.Runes[0] - '1')
		if index < 0 || index >= len(category.Stickers) {
			return nil
		}
		m.engine.AddSticker(category.Stickers[index], category.IsText)
		m.mode = modeCanvas
	}
	return nil
}

func (m *Model) updatePalette(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeCanvas
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.palette)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.palette) {
			m.engine.AddCard(m.palette[m.cursor])
			m.mode = modeCanvas
		}
	}
	return nil
}

func (m *Model) handleMouse(event tea.MouseEvent) {
	if m.mode != modeCanvas {
		return
	}
	switch event.Action {
	case tea.MouseActionPress:
		if event.Button != tea.MouseButtonLeft {
			return
		}
		p, ok := mouseToCanvas(event.X, event.Y)
		if !ok {
			return
		}
		hit, ok := hitTest(m.engine.State(), p)
		switch {
		case !ok:
			m.engine.ClearSelection()
		case hit.sticker != nil:
			m.engine.PressSticker(hit.sticker.ID, p)
		default:
			m.engine.PressCard(hit.card.ID, p)
		}
	case tea.MouseActionMotion:
		if !m.engine.Dragging() {
			return
		}
		if p, ok := mouseToCanvas(event.X, event.Y); ok {
			m.engine.DragTo(p)
		}
	case tea.MouseActionRelease:
		m.engine.Release()
	}
}

func selectedSticker(state editor.State) (diary.Sticker, bool) {
	if !state.HasSelection {
		return diary.Sticker{}, false
	}
	for _, s := range state.Stickers {
		if s.ID == state.SelectedSticker {
			return s, true
		}
	}
	return diary.Sticker{}, false
}

func selectedCard(state editor.State) (diary.PlacedCard, bool) {
	for _, c := range state.Cards {
		if c.ID == state.SelectedCard {
			return c, true
		}
	}
	return diary.PlacedCard{}, false
}
