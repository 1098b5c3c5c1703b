// Package editor is the canvas editing engine of one diary: sticker and card placement,
// drag with grid snapping and alignment guides, z-order, undo and redo, and the save lifecycle.
//
// An Engine is safe for use from multiple goroutines; the autosave timer fires on its own goroutine.
package editor

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/at-ishikawa/stickerdiary/internal/diary"
)

// ErrNotFound is returned by Open when the diary does not exist.
var ErrNotFound = fmt.Errorf("editor: %w", diary.ErrNotFound)

type SaveStatus int

const (
	StatusSaved SaveStatus = iota
	StatusSaving
	StatusUnsaved
	StatusError
)

func (s SaveStatus) String() string {
	switch s {
	case StatusSaved:
		return "saved"
	case StatusSaving:
		return "saving"
	case StatusUnsaved:
		return "unsaved"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("SaveStatus(%d)", int(s))
}

type StickerProperty string

const (
	PropertyRotation StickerProperty = "rotation"
	PropertyScale    StickerProperty = "scale"
)

type Engine struct {
	mu     sync.Mutex
	saveMu sync.Mutex

	repo DiaryRepository
	opts options

	id         string
	title      string
	date       string
	background diary.Background
	memo       string
	stickers   []diary.Sticker
	cards      []diary.PlacedCard
	comments   map[string][]diary.Comment
	flipped    map[string]bool

	nextStickerID   int64
	selectedSticker int64
	hasSelected     bool
	selectedCard    string

	history *history
	drag    *dragState
	guides  Guides

	status    SaveStatus
	lastSaved time.Time
	revision  uint64
	saveSeq   uint64

	autosaveTimer Timer
	autosaveGen   uint64
	closed        bool
}

// New starts a session for a diary that has not been saved yet.
func New(repo DiaryRepository, opts ...Option) *Engine {
	e := newEngine(repo, opts)
	e.date = e.opts.clock().Format(diary.DateLayout)
	return e
}

// Open starts a session for a stored diary.
func Open(ctx context.Context, repo DiaryRepository, id string, opts ...Option) (*Engine, error) {
	d, err := repo.GetByID(ctx, id)
	if errors.Is(err, diary.ErrNotFound) || (err == nil && d == nil) {
		return nil, fmt.Errorf("repo.GetByID(%s) > %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.GetByID(%s) > %w", id, err)
	}

	e := newEngine(repo, opts)
	e.id = d.ID
	e.title = d.Title
	e.date = d.Date
	if e.date == "" {
		e.date = e.opts.clock().Format(diary.DateLayout)
	}
	if d.Background.Valid() {
		e.background = d.Background
	}
	e.memo = d.Memo
	e.stickers = slices.Clone(d.Stickers)
	e.cards = slices.Clone(d.Cards)
	for cardID, comments := range d.Comments {
		e.comments[cardID] = slices.Clone(comments)
	}
	for _, s := range e.stickers {
		if s.ID >= e.nextStickerID {
			e.nextStickerID = s.ID + 1
		}
	}
	e.opts.logger.Debug("opened a diary", "diaryID", id, "stickers", len(e.stickers), "cards", len(e.cards))
	return e, nil
}

func newEngine(repo DiaryRepository, opts []Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.notifier == nil {
		o.notifier = logNotifier{logger: o.logger}
	}
	return &Engine{
		repo:          repo,
		opts:          o,
		background:    diary.BackgroundPlain,
		stickers:      []diary.Sticker{},
		cards:         []diary.PlacedCard{},
		comments:      map[string][]diary.Comment{},
		flipped:       map[string]bool{},
		nextStickerID: 1,
		history:       newHistory(),
		status:        StatusSaved,
	}
}

// Close stops the autosave timer. Later edits no longer schedule autosaves.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	e.stopAutosave()
}

// State is a copy of the engine state for rendering.
type State struct {
	ID         string
	Title      string
	Date       string
	Background diary.Background
	Memo       string
	Stickers   []diary.Sticker
	Cards      []diary.PlacedCard
	Comments   map[string][]diary.Comment
	Flipped    map[string]bool

	SelectedSticker int64
	HasSelection    bool
	SelectedCard    string

	Dragging bool
	Guides   Guides

	Snap          bool
	GuidesEnabled bool
	CanUndo       bool
	CanRedo       bool

	Status    SaveStatus
	LastSaved time.Time
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	comments := make(map[string][]diary.Comment, len(e.comments))
	for cardID, list := range e.comments {
		comments[cardID] = slices.Clone(list)
	}
	return State{
		ID:              e.id,
		Title:           e.title,
		Date:            e.date,
		Background:      e.background,
		Memo:            e.memo,
		Stickers:        slices.Clone(e.stickers),
		Cards:           slices.Clone(e.cards),
		Comments:        comments,
		Flipped:         maps.Clone(e.flipped),
		SelectedSticker: e.selectedSticker,
		HasSelection:    e.hasSelected,
		SelectedCard:    e.selectedCard,
		Dragging:        e.drag != nil,
		Guides:          e.guides,
		Snap:            e.opts.snap,
		GuidesEnabled:   e.opts.guides,
		CanUndo:         e.history.canUndo(),
		CanRedo:         e.history.canRedo(),
		Status:          e.status,
		LastSaved:       e.lastSaved,
	}
}

// Status returns the save status and the time of the last successful save.
func (e *Engine) Status() (SaveStatus, time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.status, e.lastSaved
}

// ID returns the diary id, which is empty until the first save.
func (e *Engine) ID() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.id
}

// HistoryLen returns the number of stored sticker snapshots.
func (e *Engine) HistoryLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.history.len()
}

// Content returns the document as it would be saved.
func (e *Engine) Content() diary.Content {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.contentLocked()
}

func (e *Engine) contentLocked() diary.Content {
	title := e.title
	if strings.TrimSpace(title) == "" {
		title = diary.DefaultTitle
	}
	comments := make(map[string][]diary.Comment, len(e.comments))
	for cardID, list := range e.comments {
		comments[cardID] = slices.Clone(list)
	}
	return diary.Content{
		Title:      title,
		Date:       e.date,
		Background: e.background,
		Stickers:   slices.Clone(e.stickers),
		Cards:      slices.Clone(e.cards),
		Comments:   comments,
		Memo:       e.memo,
	}
}

// markUnsaved records a content change. Sticker, title and memo edits restart the autosave timer;
// other edits only start it when the document was not already unsaved.
func (e *Engine) markUnsaved(restartTimer bool) {
	e.revision++
	wasUnsaved := e.status == StatusUnsaved
	e.status = StatusUnsaved
	if !wasUnsaved || restartTimer || e.autosaveTimer == nil {
		e.armAutosave()
	}
}

func (e *Engine) setStatus(status SaveStatus) {
	e.status = status
	if status != StatusUnsaved {
		e.stopAutosave()
	}
}

func (e *Engine) SetTitle(title string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if title == e.title {
		return false
	}
	e.title = title
	e.markUnsaved(true)
	return true
}

func (e *Engine) SetMemo(memo string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if memo == e.memo {
		return false
	}
	e.memo = memo
	e.markUnsaved(true)
	return true
}

// SetDate accepts YYYY-MM-DD dates only.
func (e *Engine) SetDate(date string) bool {
	if _, err := time.Parse(diary.DateLayout, date); err != nil {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if date == e.date {
		return false
	}
	e.date = date
	e.markUnsaved(false)
	return true
}

func (e *Engine) SetBackground(background diary.Background) bool {
	if !background.Valid() {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if background == e.background {
		return false
	}
	e.background = background
	e.markUnsaved(false)
	return true
}

func (e *Engine) SetSnap(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.snap = enabled
}

func (e *Engine) SetGuides(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.guides = enabled
	if !enabled {
		e.guides = Guides{}
	}
}

func (e *Engine) snap(v float64) float64 {
	if !e.opts.snap {
		return v
	}
	return Snap(v)
}

func (e *Engine) stickerIndex(id int64) int {
	return slices.IndexFunc(e.stickers, func(s diary.Sticker) bool {
		return s.ID == id
	})
}

func (e *Engine) selectedStickerIndex() int {
	if !e.hasSelected {
		return -1
	}
	return e.stickerIndex(e.selectedSticker)
}

func (e *Engine) selectSticker(id int64) {
	e.selectedSticker = id
	e.hasSelected = true
	e.selectedCard = ""
}

func (e *Engine) clearStickerSelection() {
	e.selectedSticker = 0
	e.hasSelected = false
}

func (e *Engine) maxZIndex() (int, bool) {
	if len(e.stickers) == 0 {
		return 0, false
	}
	top := e.stickers[0].ZIndex
	for _, s := range e.stickers[1:] {
		top = max(top, s.ZIndex)
	}
	return top, true
}

func (e *Engine) minZIndex() int {
	bottom := e.stickers[0].ZIndex
	for _, s := range e.stickers[1:] {
		bottom = min(bottom, s.ZIndex)
	}
	return bottom
}

// AddSticker places a new sticker near the middle of the canvas and selects it.
func (e *Engine) AddSticker(glyph string, isText bool) (diary.Sticker, bool) {
	if strings.TrimSpace(glyph) == "" {
		return diary.Sticker{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.history.record(e.stickers)

	zIndex := 1
	if top, ok := e.maxZIndex(); ok {
		zIndex = top + 1
	}
	x := e.snap(150 + e.opts.rand.Float64()*100)
	y := e.snap(150 + e.opts.rand.Float64()*100)
	sticker := diary.Sticker{
		ID:       e.nextStickerID,
		Emoji:    glyph,
		X:        x,
		Y:        y,
		Rotation: 0,
		Scale:    1,
		IsText:   isText,
		ZIndex:   zIndex,
	}
	e.nextStickerID++
	e.stickers = append(e.stickers, sticker)
	e.selectSticker(sticker.ID)
	e.markUnsaved(true)
	return sticker, true
}

// UpdateStickerProperty changes the selected sticker. Values are clamped to their valid range.
func (e *Engine) UpdateStickerProperty(property StickerProperty, value float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	index := e.selectedStickerIndex()
	if index < 0 {
		return false
	}
	switch property {
	case PropertyRotation:
		value = clamp(value, MinRotation, MaxRotation)
	case PropertyScale:
		value = clamp(value, MinStickerScale, MaxStickerScale)
	default:
		return false
	}

	e.history.record(e.stickers)
	if property == PropertyRotation {
		e.stickers[index].Rotation = value
	} else {
		e.stickers[index].Scale = value
	}
	e.markUnsaved(true)
	return true
}

// MoveSticker moves a sticker by (dx, dy), keeping it inside the canvas.
func (e *Engine) MoveSticker(id int64, dx, dy float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.moveStickerAt(e.stickerIndex(id), dx, dy)
}

func (e *Engine) MoveSelectedSticker(dx, dy float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.moveStickerAt(e.selectedStickerIndex(), dx, dy)
}

func (e *Engine) moveStickerAt(index int, dx, dy float64) bool {
	if index < 0 {
		return false
	}
	e.history.record(e.stickers)
	s := &e.stickers[index]
	s.X, s.Y = clampStickerPosition(s.X+dx, s.Y+dy)
	e.markUnsaved(true)
	return true
}

func (e *Engine) DeleteSelectedSticker() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	index := e.selectedStickerIndex()
	if index < 0 {
		return false
	}
	e.history.record(e.stickers)
	e.stickers = slices.Delete(e.stickers, index, index+1)
	e.clearStickerSelection()
	e.markUnsaved(true)
	return true
}

// ChangeZIndex swaps the selected sticker with its neighbour in z order.
// A negative direction moves it down, a positive one up.
func (e *Engine) ChangeZIndex(direction int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	index := e.selectedStickerIndex()
	if index < 0 || direction == 0 {
		return false
	}

	order := make([]int, len(e.stickers))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return e.stickers[a].ZIndex - e.stickers[b].ZIndex
	})
	position := slices.Index(order, index)
	step := 1
	if direction < 0 {
		step = -1
	}
	target := position + step
	if target < 0 || target >= len(order) {
		return false
	}

	e.history.record(e.stickers)
	other := order[target]
	e.stickers[index].ZIndex, e.stickers[other].ZIndex = e.stickers[other].ZIndex, e.stickers[index].ZIndex
	e.markUnsaved(true)
	return true
}

func (e *Engine) BringToFront() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	index := e.selectedStickerIndex()
	if index < 0 {
		return false
	}
	top, _ := e.maxZIndex()
	e.history.record(e.stickers)
	e.stickers[index].ZIndex = top + 1
	e.markUnsaved(true)
	return true
}

func (e *Engine) SendToBack() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	index := e.selectedStickerIndex()
	if index < 0 {
		return false
	}
	bottom := e.minZIndex()
	e.history.record(e.stickers)
	e.stickers[index].ZIndex = bottom - 1
	e.markUnsaved(true)
	return true
}

func (e *Engine) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	stickers, ok := e.history.undo(e.stickers)
	if !ok {
		return false
	}
	e.restore(stickers)
	return true
}

func (e *Engine) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	stickers, ok := e.history.redo()
	if !ok {
		return false
	}
	e.restore(stickers)
	return true
}

func (e *Engine) restore(stickers []diary.Sticker) {
	e.stickers = stickers
	e.clearStickerSelection()
	if e.drag != nil && e.drag.kind == dragSticker {
		e.drag = nil
		e.guides = Guides{}
	}
	e.markUnsaved(true)
}

// ResetCanvas removes every sticker.
func (e *Engine) ResetCanvas() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clearStickerSelection()
	if len(e.stickers) == 0 {
		return false
	}
	e.history.record(e.stickers)
	e.stickers = []diary.Sticker{}
	e.markUnsaved(true)
	return true
}

func (e *Engine) SelectSticker(id int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stickerIndex(id) < 0 {
		return false
	}
	e.selectSticker(id)
	return true
}

// ClearSelection deselects the sticker. The card selection is kept.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clearStickerSelection()
}
