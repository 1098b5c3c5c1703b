// Package diary provides the diary document model and its repository.
package diary

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format of Diary.Date.
const DateLayout = "2006-01-02"

// DefaultTitle is used when a diary is saved without a title.
const DefaultTitle = "New Diary"

type Background string

const (
	BackgroundPlain Background = "plain"
	BackgroundGrid  Background = "grid"
	BackgroundDots  Background = "dots"
	BackgroundLines Background = "lines"
	BackgroundMint  Background = "mint"
	BackgroundPeach Background = "peach"
)

// Backgrounds lists every background in display order.
var Backgrounds = []Background{
	BackgroundPlain,
	BackgroundGrid,
	BackgroundDots,
	BackgroundLines,
	BackgroundMint,
	BackgroundPeach,
}

func (b Background) Valid() bool {
	for _, background := range Backgrounds {
		if b == background {
			return true
		}
	}
	return false
}

// Next returns the background after b, wrapping around.
func (b Background) Next() Background {
	for i, background := range Backgrounds {
		if b == background {
			return Backgrounds[(i+1)%len(Backgrounds)]
		}
	}
	return BackgroundPlain
}

func ParseBackground(value string) (Background, error) {
	b := Background(strings.ToLower(strings.TrimSpace(value)))
	if !b.Valid() {
		return "", fmt.Errorf("unknown background %q", value)
	}
	return b, nil
}

// Sticker is a glyph or short text placed on the canvas.
type Sticker struct {
	ID       int64   `json:"id" yaml:"id"`
	Emoji    string  `json:"emoji" yaml:"emoji"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Rotation float64 `json:"rotation" yaml:"rotation"`
	Scale    float64 `json:"scale" yaml:"scale"`
	IsText   bool    `json:"isText" yaml:"is_text"`
	ZIndex   int     `json:"zIndex" yaml:"z_index"`
}

// CardSnapshot copies the display fields of a catalog card at placement time.
type CardSnapshot struct {
	Title       string `json:"title" yaml:"title"`
	Author      string `json:"author" yaml:"author"`
	CoverImage  string `json:"coverImage" yaml:"cover_image"`
	Genre       string `json:"genre" yaml:"genre"`
	Description string `json:"description" yaml:"description"`
}

// PlacedCard positions a catalog card on the canvas.
// CardID is a weak reference; the catalog card may have been deleted since.
type PlacedCard struct {
	ID       string       `json:"id" yaml:"id"`
	CardID   string       `json:"cardId" yaml:"card_id"`
	CardData CardSnapshot `json:"cardData" yaml:"card_data"`
	X        float64      `json:"x" yaml:"x"`
	Y        float64      `json:"y" yaml:"y"`
	Rotation float64      `json:"rotation" yaml:"rotation"`
	Scale    float64      `json:"scale" yaml:"scale"`
	ZIndex   int          `json:"zIndex" yaml:"z_index"`
}

type Comment struct {
	ID        string    `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Author    string    `json:"author" yaml:"author"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
}

// Content is the part of a diary the editor writes on every save.
type Content struct {
	Title      string               `json:"title" yaml:"title"`
	Date       string               `json:"date" yaml:"date"`
	Background Background           `json:"background" yaml:"background"`
	Stickers   []Sticker            `json:"stickers" yaml:"stickers"`
	Cards      []PlacedCard         `json:"cards" yaml:"cards"`
	Comments   map[string][]Comment `json:"comments" yaml:"comments"`
	Memo       string               `json:"memo" yaml:"memo"`
}

// Diary is one stored diary document.
type Diary struct {
	ID     string `json:"id" yaml:"id"`
	UserID string `json:"userId" yaml:"user_id"`
	Content `yaml:",inline"`

	Likes     int        `json:"likes" yaml:"likes"`
	IsPublic  bool       `json:"isPublic" yaml:"is_public"`
	CreatedAt time.Time  `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" yaml:"updated_at"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" yaml:"deleted_at,omitempty"`
}

// ShareURL returns the public link of the diary under baseURL.
func ShareURL(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + "/share/" + id
}
