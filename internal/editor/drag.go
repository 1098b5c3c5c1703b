package editor

import (
	"slices"

	"github.com/at-ishikawa/stickerdiary/internal/diary"
)

type dragKind int

const (
	dragSticker dragKind = iota + 1
	dragCard
)

type dragState struct {
	kind      dragKind
	stickerID int64
	cardID    string
	offset    Point
	start     Point
	// before is the sticker set at press time, recorded in the history on release.
	before []diary.Sticker
}

// PressSticker starts dragging a sticker grabbed at p.
func (e *Engine) PressSticker(id int64, p Point) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	index := e.stickerIndex(id)
	if index < 0 {
		return false
	}
	s := e.stickers[index]
	e.selectSticker(id)
	e.drag = &dragState{
		kind:      dragSticker,
		stickerID: id,
		offset:    Point{X: p.X - s.X, Y: p.Y - s.Y},
		start:     Point{X: s.X, Y: s.Y},
		before:    slices.Clone(e.stickers),
	}
	return true
}

// PressCard starts dragging a placed card grabbed at p.
func (e *Engine) PressCard(id string, p Point) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	index := e.cardIndex(id)
	if index < 0 {
		return false
	}
	c := e.cards[index]
	e.selectedCard = id
	e.clearStickerSelection()
	e.drag = &dragState{
		kind:   dragCard,
		cardID: id,
		offset: Point{X: p.X - c.X, Y: p.Y - c.Y},
		start:  Point{X: c.X, Y: c.Y},
	}
	return true
}

// DragTo moves the dragged item so that its grab point follows p.
// It reports whether the item moved.
func (e *Engine) DragTo(p Point) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.drag == nil {
		return false
	}
	x, y := p.X-e.drag.offset.X, p.Y-e.drag.offset.Y

	switch e.drag.kind {
	case dragSticker:
		index := e.stickerIndex(e.drag.stickerID)
		if index < 0 {
			e.drag = nil
			return false
		}
		x, y = clampStickerPosition(x, y)
		// A snapped position can land one grid step past the bound.
		x, y = clampStickerPosition(e.snap(x), e.snap(y))
		if e.opts.guides {
			x, y, e.guides = alignToGuides(x, y, e.drag.stickerID, e.stickers)
		}
		s := &e.stickers[index]
		if s.X == x && s.Y == y {
			return false
		}
		s.X, s.Y = x, y
	case dragCard:
		index := e.cardIndex(e.drag.cardID)
		if index < 0 {
			e.drag = nil
			return false
		}
		x, y = clampCardPosition(x, y)
		x, y = clampCardPosition(e.snap(x), e.snap(y))
		c := &e.cards[index]
		if c.X == x && c.Y == y {
			return false
		}
		c.X, c.Y = x, y
	}
	e.markUnsaved(e.drag.kind == dragSticker)
	return true
}

// Release ends the drag. A sticker that moved adds one history entry.
// It reports whether the dragged item ended somewhere else than where it started.
func (e *Engine) Release() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	drag := e.drag
	e.drag = nil
	e.guides = Guides{}
	if drag == nil {
		return false
	}

	switch drag.kind {
	case dragSticker:
		index := e.stickerIndex(drag.stickerID)
		if index < 0 {
			return false
		}
		s := e.stickers[index]
		if s.X == drag.start.X && s.Y == drag.start.Y {
			return false
		}
		e.history.record(drag.before)
		return true
	case dragCard:
		index := e.cardIndex(drag.cardID)
		if index < 0 {
			return false
		}
		c := e.cards[index]
		return c.X != drag.start.X || c.Y != drag.start.Y
	}
	return false
}

// Dragging reports whether a press has not been released yet.
func (e *Engine) Dragging() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.drag != nil
}

// Guides returns the alignment lines shown during the current drag.
func (e *Engine) Guides() Guides {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.guides
}
