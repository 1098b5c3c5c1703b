// Package card provides the catalog of webtoons and web novels that can be placed on a diary.
package card

import (
	"strings"
	"time"

	"github.com/at-ishikawa/stickerdiary/internal/diary"
)

type Status string

const (
	StatusWatching    Status = "watching"
	StatusPlanToWatch Status = "planToWatch"
	StatusCompleted   Status = "completed"
	StatusOnHold      Status = "onHold"
)

var Statuses = []Status{StatusWatching, StatusPlanToWatch, StatusCompleted, StatusOnHold}

func (s Status) Valid() bool {
	for _, status := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

type Platform string

const (
	PlatformNaver   Platform = "naver"
	PlatformKakao   Platform = "kakao"
	PlatformLezhin  Platform = "lezhin"
	PlatformToptoon Platform = "toptoon"
	PlatformRidi    Platform = "ridi"
	PlatformOther   Platform = "other"
)

const (
	DefaultTitle       = "New Title"
	DefaultType        = "webtoon"
	DefaultFolderColor = "#7BC4A8"
)

// Card is one catalog entry.
type Card struct {
	ID          string    `json:"id" yaml:"id,omitempty"`
	Title       string    `json:"title" yaml:"title" validate:"required"`
	CoverImage  string    `json:"coverImage" yaml:"cover_image,omitempty" validate:"omitempty,url"`
	Platform    Platform  `json:"platform" yaml:"platform,omitempty" validate:"omitempty,oneof=naver kakao lezhin toptoon ridi other"`
	Type        string    `json:"type" yaml:"type,omitempty" validate:"omitempty,oneof=webtoon webnovel"`
	Genre       []string  `json:"genre" yaml:"genre,omitempty"`
	Status      Status    `json:"status" yaml:"status,omitempty" validate:"omitempty,oneof=watching planToWatch completed onHold"`
	Author      string    `json:"author" yaml:"author,omitempty"`
	Description string    `json:"description" yaml:"description,omitempty"`
	Rating      int       `json:"rating" yaml:"rating,omitempty" validate:"gte=0,lte=5"`
	FolderID    string    `json:"folderId,omitempty" yaml:"folder_id,omitempty"`
	CreatedAt   time.Time `json:"createdAt" yaml:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updated_at,omitempty"`
}

// Snapshot copies the fields a diary needs to render the card without the catalog.
func (c Card) Snapshot() diary.CardSnapshot {
	return diary.CardSnapshot{
		Title:       c.Title,
		Author:      c.Author,
		CoverImage:  c.CoverImage,
		Genre:       strings.Join(c.Genre, ", "),
		Description: c.Description,
	}
}

// Update holds the fields to change; nil fields are left alone.
type Update struct {
	Title       *string
	CoverImage  *string
	Platform    *Platform
	Type        *string
	Genre       []string
	Status      *Status
	Author      *string
	Description *string
	Rating      *int
	FolderID    *string
}

func (u Update) apply(c *Card) {
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.CoverImage != nil {
		c.CoverImage = *u.CoverImage
	}
	if u.Platform != nil {
		c.Platform = *u.Platform
	}
	if u.Type != nil {
		c.Type = *u.Type
	}
	if u.Genre != nil {
		c.Genre = append([]string(nil), u.Genre...)
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	if u.Author != nil {
		c.Author = *u.Author
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Rating != nil {
		c.Rating = *u.Rating
	}
	if u.FolderID != nil {
		c.FolderID = *u.FolderID
	}
}

// Filter narrows GetAll. Empty fields match every card.
type Filter struct {
	Status   Status
	Platform Platform
	Genre    string
	FolderID string
}

func (f Filter) match(c Card) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Platform != "" && c.Platform != f.Platform {
		return false
	}
	if f.Genre != "" {
		found := false
		for _, genre := range c.Genre {
			if genre == f.Genre {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.FolderID != "" && c.FolderID != f.FolderID {
		return false
	}
	return true
}

type Folder struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Color     string    `json:"color" yaml:"color"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
}

// Stats counts cards per status.
type Stats struct {
	Total       int `json:"total"`
	Watching    int `json:"watching"`
	PlanToWatch int `json:"planToWatch"`
	Completed   int `json:"completed"`
	OnHold      int `json:"onHold"`
}
