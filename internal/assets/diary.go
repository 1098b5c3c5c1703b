package assets

import (
	"fmt"
	"io"
	"time"

	"github.com/at-ishikawa/stickerdiary/internal/diary"
)

// DiaryTemplate is the data passed to diary templates.
type DiaryTemplate struct {
	Title      string
	Date       string
	Background string
	Memo       string
	Likes      int
	IsPublic   bool
	ShareURL   string
	// ImagePath is a rendered PNG of the page, if one was exported alongside.
	ImagePath string
	Stickers  []DiarySticker
	Cards     []DiaryCard
}

type DiarySticker struct {
	Emoji  string
	IsText bool
}

type DiaryCard struct {
	Title       string
	Author      string
	Genre       string
	Description string
	CoverImage  string
	Comments    []DiaryComment
}

type DiaryComment struct {
	Author    string
	Text      string
	CreatedAt time.Time
}

// NewDiaryTemplate converts a stored diary. Comments are attached to the card they were written on.
func NewDiaryTemplate(d diary.Diary, shareURL string, imagePath string) DiaryTemplate {
	data := DiaryTemplate{
		Title:      d.Title,
		Date:       d.Date,
		Background: string(d.Background),
		Memo:       d.Memo,
		Likes:      d.Likes,
		IsPublic:   d.IsPublic,
		ShareURL:   shareURL,
		ImagePath:  imagePath,
	}
	for _, s := range d.Stickers {
		data.Stickers = append(data.Stickers, DiarySticker{Emoji: s.Emoji, IsText: s.IsText})
	}
	for _, c := range d.Cards {
		key := c.CardID
		if key == "" {
			key = c.ID
		}
		card := DiaryCard{
			Title:       c.CardData.Title,
			Author:      c.CardData.Author,
			Genre:       c.CardData.Genre,
			Description: c.CardData.Description,
			CoverImage:  c.CardData.CoverImage,
		}
		for _, comment := range d.Comments[key] {
			card.Comments = append(card.Comments, DiaryComment{
				Author:    comment.Author,
				Text:      comment.Text,
				CreatedAt: comment.CreatedAt,
			})
		}
		data.Cards = append(data.Cards, card)
	}
	return data
}

func WriteDiary(output io.Writer, templatePath string, templateData DiaryTemplate) error {
	tmpl, err := ParseDiaryTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseDiaryTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
