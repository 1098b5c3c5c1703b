package editor

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/at-ishikawa/stickerdiary/internal/card"
	"github.com/at-ishikawa/stickerdiary/internal/diary"
)

type CardProperty string

const (
	CardPropertyRotation CardProperty = "rotation"
	CardPropertyScale    CardProperty = "scale"
)

const placedCardZIndexBase = 100

// Palette lists the catalog cards that can be placed.
func (e *Engine) Palette(ctx context.Context) ([]card.Card, error) {
	if e.opts.catalog == nil {
		return []card.Card{}, nil
	}
	cards, err := e.opts.catalog.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.GetAll() > %w", err)
	}
	return cards, nil
}

// AddCard places a snapshot of a catalog card on the canvas and selects it.
// Card placements are not part of the undo history.
func (e *Engine) AddCard(c card.Card) diary.PlacedCard {
	e.mu.Lock()
	defer e.mu.Unlock()

	placed := diary.PlacedCard{
		ID:       "placed_" + uuid.NewString(),
		CardID:   c.ID,
		CardData: c.Snapshot(),
		X:        50 + e.opts.rand.Float64()*100,
		Y:        100 + e.opts.rand.Float64()*100,
		Rotation: e.opts.rand.Float64()*10 - 5,
		Scale:    diary.DefaultCardScale,
		ZIndex:   placedCardZIndexBase + len(e.cards),
	}
	e.cards = append(e.cards, placed)
	e.selectedCard = placed.ID
	e.clearStickerSelection()
	e.markUnsaved(false)
	return placed
}

func (e *Engine) cardIndex(id string) int {
	return slices.IndexFunc(e.cards, func(c diary.PlacedCard) bool {
		return c.ID == id
	})
}

func (e *Engine) MoveCard(id string, dx, dy float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	index := e.cardIndex(id)
	if index < 0 {
		return false
	}
	c := &e.cards[index]
	c.X, c.Y = clampCardPosition(c.X+dx, c.Y+dy)
	e.markUnsaved(false)
	return true
}

func (e *Engine) DeleteSelectedCard() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	index := e.cardIndex(e.selectedCard)
	if e.selectedCard == "" || index < 0 {
		return false
	}
	delete(e.flipped, e.selectedCard)
	e.cards = slices.Delete(e.cards, index, index+1)
	e.selectedCard = ""
	e.markUnsaved(false)
	return true
}

// UpdateCardProperty changes the selected card. Values are clamped to their valid range.
func (e *Engine) UpdateCardProperty(property CardProperty, value float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	index := e.cardIndex(e.selectedCard)
	if e.selectedCard == "" || index < 0 {
		return false
	}
	switch property {
	case CardPropertyRotation:
		e.cards[index].Rotation = clamp(value, MinRotation, MaxRotation)
	case CardPropertyScale:
		e.cards[index].Scale = clamp(value, MinCardScale, MaxCardScale)
	default:
		return false
	}
	e.markUnsaved(false)
	return true
}

// SelectCard selects a placed card. The sticker selection is cleared.
func (e *Engine) SelectCard(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cardIndex(id) < 0 {
		return false
	}
	e.selectedCard = id
	e.clearStickerSelection()
	return true
}

// FlipCard turns a placed card over. Flipping is view state of this session only.
func (e *Engine) FlipCard(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cardIndex(id) < 0 {
		return false
	}
	e.flipped[id] = !e.flipped[id]
	return true
}

// commentKey resolves a placement id to its catalog card id. Other references are used as they are.
func (e *Engine) commentKey(ref string) string {
	index := e.cardIndex(ref)
	if index < 0 || e.cards[index].CardID == "" {
		return ref
	}
	return e.cards[index].CardID
}

// AddComment attaches a comment to a card. ref is a placement id or a catalog card id.
func (e *Engine) AddComment(ref, text string) (diary.Comment, bool) {
	text = strings.TrimSpace(text)
	if ref == "" || text == "" {
		return diary.Comment{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	key := e.commentKey(ref)
	comment := diary.Comment{
		ID:        uuid.NewString(),
		Text:      text,
		Author:    e.opts.author,
		CreatedAt: e.opts.clock(),
	}
	e.comments[key] = append(e.comments[key], comment)
	e.markUnsaved(false)
	return comment, true
}

// Comments returns the comments of a card. ref is a placement id or a catalog card id.
func (e *Engine) Comments(ref string) []diary.Comment {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.comments[e.commentKey(ref)])
}
