package diary

import "time"

// Default values for fields that older or partial records omit.
const (
	DefaultStickerScale = 1.0
	DefaultCardScale    = 0.6
)

// Stored diaries are decoded into records first so that missing fields can be told apart from zero values.
// toDiary is the only place where defaults are applied.
type diaryRecord struct {
	ID         string               `json:"id"`
	UserID     string               `json:"userId"`
	Title      *string              `json:"title"`
	Date       *string              `json:"date"`
	Background *string              `json:"background"`
	Stickers   []stickerRecord      `json:"stickers"`
	Cards      []cardRecord         `json:"cards"`
	Comments   map[string][]Comment `json:"comments"`
	Memo       *string              `json:"memo"`
	Likes      *int                 `json:"likes"`
	IsPublic   *bool                `json:"isPublic"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
	DeletedAt  *time.Time           `json:"deletedAt"`
}

type stickerRecord struct {
	ID       int64    `json:"id"`
	Emoji    string   `json:"emoji"`
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Rotation *float64 `json:"rotation"`
	Scale    *float64 `json:"scale"`
	IsText   *bool    `json:"isText"`
	ZIndex   *int     `json:"zIndex"`
}

type cardRecord struct {
	ID       string       `json:"id"`
	CardID   string       `json:"cardId"`
	CardData CardSnapshot `json:"cardData"`
	X        *float64     `json:"x"`
	Y        *float64     `json:"y"`
	Rotation *float64     `json:"rotation"`
	Scale    *float64     `json:"scale"`
	ZIndex   *int         `json:"zIndex"`
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

func (r diaryRecord) toDiary() Diary {
	background := Background(valueOr(r.Background, string(BackgroundPlain)))
	if !background.Valid() {
		background = BackgroundPlain
	}

	stickers := make([]Sticker, 0, len(r.Stickers))
	for _, s := range r.Stickers {
		stickers = append(stickers, Sticker{
			ID:       s.ID,
			Emoji:    s.Emoji,
			X:        valueOr(s.X, 0),
			Y:        valueOr(s.Y, 0),
			Rotation: valueOr(s.Rotation, 0),
			Scale:    valueOr(s.Scale, DefaultStickerScale),
			IsText:   valueOr(s.IsText, false),
			ZIndex:   valueOr(s.ZIndex, 0),
		})
	}

	cards := make([]PlacedCard, 0, len(r.Cards))
	for _, c := range r.Cards {
		cards = append(cards, PlacedCard{
			ID:       c.ID,
			CardID:   c.CardID,
			CardData: c.CardData,
			X:        valueOr(c.X, 0),
			Y:        valueOr(c.Y, 0),
			Rotation: valueOr(c.Rotation, 0),
			Scale:    valueOr(c.Scale, DefaultCardScale),
			ZIndex:   valueOr(c.ZIndex, 0),
		})
	}

	comments := make(map[string][]Comment, len(r.Comments))
	for cardID, list := range r.Comments {
		comments[cardID] = append([]Comment(nil), list...)
	}

	return Diary{
		ID:     r.ID,
		UserID: r.UserID,
		Content: Content{
			Title:      valueOr(r.Title, ""),
			Date:       valueOr(r.Date, ""),
			Background: background,
			Stickers:   stickers,
			Cards:      cards,
			Comments:   comments,
			Memo:       valueOr(r.Memo, ""),
		},
		Likes:     valueOr(r.Likes, 0),
		IsPublic:  valueOr(r.IsPublic, false),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		DeletedAt: r.DeletedAt,
	}
}
