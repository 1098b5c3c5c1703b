// Package render draws a diary page as a PNG image.
package render

import (
	"cmp"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"slices"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/at-ishikawa/stickerdiary/internal/diary"
)

const (
	Width  = 480
	Height = 640

	CardWidth  = 100
	CardHeight = 150

	stickerSize    = 50
	stickerPadding = 6
	coverHeight    = 100
)

const (
	colorPaper     = "#FDF8F3"
	colorRule      = "#E8E4DF"
	colorDot       = "#D4CFC8"
	colorMint      = "#E8F5F1"
	colorPeach     = "#FFF0E5"
	colorInk       = "#5D4E3C"
	colorCardFrame = "#E8E4DF"
	colorCardFace  = "#FFFFFF"
	colorCover     = "#F5EDE4"
	colorCardTitle = "#4A3D2E"
	colorCardMeta  = "#8B7D6B"
)

// CoverSource loads the cover image of a card.
type CoverSource interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

type Renderer struct {
	emojiFace font.Face
	textFace  font.Face
	titleFace font.Face
	metaFace  font.Face
	covers    CoverSource
	logger    *slog.Logger
}

type Option func(*Renderer)

// WithCovers draws card covers loaded from source. Without it cards get a plain cover area.
func WithCovers(source CoverSource) Option {
	return func(r *Renderer) {
		r.covers = source
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

func NewRenderer(opts ...Option) (*Renderer, error) {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("truetype.Parse() > %w", err)
	}
	newFace := func(size float64) font.Face {
		return truetype.NewFace(ttfFont, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	r := &Renderer{
		emojiFace: newFace(32),
		textFace:  newFace(16),
		titleFace: newFace(11),
		metaFace:  newFace(9),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Render draws the background, then stickers and cards in zIndex order.
func (r *Renderer) Render(ctx context.Context, content diary.Content) (image.Image, error) {
	dc := gg.NewContext(Width, Height)
	drawBackground(dc, content.Background)

	for _, item := range layers(content) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if item.sticker != nil {
			r.drawSticker(dc, *item.sticker)
		} else {
			r.drawCard(ctx, dc, *item.card)
		}
	}
	return dc.Image(), nil
}

func (r *Renderer) WritePNG(ctx context.Context, w io.Writer, content diary.Content) error {
	dc, err := r.context(ctx, content)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("dc.EncodePNG() > %w", err)
	}
	return nil
}

func (r *Renderer) SavePNG(ctx context.Context, path string, content diary.Content) error {
	dc, err := r.context(ctx, content)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("dc.SavePNG(%s) > %w", path, err)
	}
	return nil
}

func (r *Renderer) context(ctx context.Context, content diary.Content) (*gg.Context, error) {
	img, err := r.Render(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("r.Render() > %w", err)
	}
	return gg.NewContextForImage(img), nil
}

type layer struct {
	zIndex  int
	sticker *diary.Sticker
	card    *diary.PlacedCard
}

func layers(content diary.Content) []layer {
	result := make([]layer, 0, len(content.Stickers)+len(content.Cards))
	for i := range content.Stickers {
		result = append(result, layer{zIndex: content.Stickers[i].ZIndex, sticker: &content.Stickers[i]})
	}
	for i := range content.Cards {
		result = append(result, layer{zIndex: content.Cards[i].ZIndex, card: &content.Cards[i]})
	}
	slices.SortStableFunc(result, func(a, b layer) int {
		return cmp.Compare(a.zIndex, b.zIndex)
	})
	return result
}

func drawBackground(dc *gg.Context, background diary.Background) {
	switch background {
	case diary.BackgroundMint:
		dc.SetHexColor(colorMint)
		dc.Clear()
		return
	case diary.BackgroundPeach:
		dc.SetHexColor(colorPeach)
		dc.Clear()
		return
	}

	dc.SetHexColor(colorPaper)
	dc.Clear()
	switch background {
	case diary.BackgroundGrid:
		dc.SetHexColor(colorRule)
		for x := 0; x < Width; x += 20 {
			dc.DrawRectangle(float64(x), 0, 1, Height)
		}
		for y := 0; y < Height; y += 20 {
			dc.DrawRectangle(0, float64(y), Width, 1)
		}
		dc.Fill()
	case diary.BackgroundDots:
		dc.SetHexColor(colorDot)
		for x := 8; x < Width; x += 16 {
			for y := 8; y < Height; y += 16 {
				dc.DrawCircle(float64(x), float64(y), 1.5)
			}
		}
		dc.Fill()
	case diary.BackgroundLines:
		dc.SetHexColor(colorRule)
		for y := 23; y < Height; y += 24 {
			dc.DrawRectangle(0, float64(y), Width, 1)
		}
		dc.Fill()
	}
}

func (r *Renderer) drawSticker(dc *gg.Context, s diary.Sticker) {
	cx, cy := s.X+stickerSize/2, s.Y+stickerSize/2

	dc.Push()
	defer dc.Pop()
	dc.RotateAbout(gg.Radians(s.Rotation), cx, cy)
	dc.ScaleAbout(s.Scale, s.Scale, cx, cy)

	if s.IsText {
		dc.SetFontFace(r.textFace)
		dc.SetHexColor(colorInk)
	} else {
		dc.SetFontFace(r.emojiFace)
		dc.SetRGB(0, 0, 0)
	}
	dc.DrawStringAnchored(s.Emoji, s.X+stickerPadding, cy, 0, 0.5)
}

func (r *Renderer) drawCard(ctx context.Context, dc *gg.Context, c diary.PlacedCard) {
	cx, cy := c.X+CardWidth/2, c.Y+CardHeight/2

	dc.Push()
	defer dc.Pop()
	dc.RotateAbout(gg.Radians(c.Rotation), cx, cy)
	dc.ScaleAbout(c.Scale, c.Scale, cx, cy)

	dc.DrawRoundedRectangle(c.X, c.Y, CardWidth, CardHeight, 8)
	dc.SetHexColor(colorCardFace)
	dc.FillPreserve()
	dc.SetHexColor(colorCardFrame)
	dc.SetLineWidth(2)
	dc.Stroke()

	r.drawCover(ctx, dc, c)

	dc.SetFontFace(r.titleFace)
	dc.SetHexColor(colorCardTitle)
	dc.DrawStringWrapped(c.CardData.Title, cx, c.Y+coverHeight+12, 0.5, 0, CardWidth-12, 1.1, gg.AlignCenter)
	if c.CardData.Author != "" {
		dc.SetFontFace(r.metaFace)
		dc.SetHexColor(colorCardMeta)
		dc.DrawStringAnchored(c.CardData.Author, cx, c.Y+CardHeight-10, 0.5, 0)
	}
}

func (r *Renderer) drawCover(ctx context.Context, dc *gg.Context, c diary.PlacedCard) {
	x, y := c.X+6, c.Y+6
	w, h := float64(CardWidth-12), float64(coverHeight-6)

	cover := r.loadCover(ctx, c.CardData.CoverImage)
	if cover == nil {
		dc.DrawRectangle(x, y, w, h)
		dc.SetHexColor(colorCover)
		dc.Fill()
		return
	}

	bounds := cover.Bounds()
	dc.Push()
	dc.Translate(x, y)
	dc.Scale(w/float64(bounds.Dx()), h/float64(bounds.Dy()))
	dc.DrawImage(cover, -bounds.Min.X, -bounds.Min.Y)
	dc.Pop()
}

func (r *Renderer) loadCover(ctx context.Context, url string) image.Image {
	if r.covers == nil || url == "" {
		return nil
	}
	cover, err := r.covers.Fetch(ctx, url)
	if err != nil {
		r.logger.Warn("failed to load a card cover", "url", url, "error", err)
		return nil
	}
	if cover.Bounds().Empty() {
		return nil
	}
	return cover
}
