package editor

import (
	"math"

	"github.com/at-ishikawa/stickerdiary/internal/diary"
)

// Canvas geometry in logical pixels.
const (
	CanvasWidth  = 480
	CanvasHeight = 640
	GridSize     = 20

	// GuideThreshold is how close a dragged sticker must be to a line to snap onto it.
	GuideThreshold = 10

	StickerMaxX = CanvasWidth - 50
	StickerMaxY = CanvasHeight - 50
	CardMaxX    = CanvasWidth - 100
	CardMaxY    = CanvasHeight - 150
)

const (
	MinRotation     = -180
	MaxRotation     = 180
	MinStickerScale = 0.5
	MaxStickerScale = 2.5
	MinCardScale    = 0.3
	MaxCardScale    = 1.5
)

type Point struct {
	X float64
	Y float64
}

// Guide is an alignment line. On the X axis it is a vertical line at x = Position.
type Guide struct {
	Position float64
	Visible  bool
}

type Guides struct {
	X Guide
	Y Guide
}

// Snap rounds v to the nearest multiple of GridSize. Snap(Snap(v)) == Snap(v).
func Snap(v float64) float64 {
	return math.Round(v/GridSize) * GridSize
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func clampStickerPosition(x, y float64) (float64, float64) {
	return clamp(x, 0, StickerMaxX), clamp(y, 0, StickerMaxY)
}

func clampCardPosition(x, y float64) (float64, float64) {
	return clamp(x, 0, CardMaxX), clamp(y, 0, CardMaxY)
}

// nearestLine returns the line closest to v among candidates within GuideThreshold.
// Earlier candidates win ties.
func nearestLine(v float64, candidates []float64) (float64, bool) {
	best, found := 0.0, false
	bestDistance := math.Inf(1)
	for _, line := range candidates {
		distance := math.Abs(v - line)
		if distance < GuideThreshold && distance < bestDistance {
			best, bestDistance, found = line, distance, true
		}
	}
	return best, found
}

// alignToGuides snaps (x, y) onto the canvas centre lines or the position of another sticker.
func alignToGuides(x, y float64, stickerID int64, stickers []diary.Sticker) (float64, float64, Guides) {
	xs := []float64{CanvasWidth / 2}
	ys := []float64{CanvasHeight / 2}
	for _, s := range stickers {
		if s.ID == stickerID {
			continue
		}
		xs = append(xs, s.X)
		ys = append(ys, s.Y)
	}

	var guides Guides
	if line, ok := nearestLine(x, xs); ok {
		x = line
		guides.X = Guide{Position: line, Visible: true}
	}
	if line, ok := nearestLine(y, ys); ok {
		y = line
		guides.Y = Guide{Position: line, Visible: true}
	}
	return x, y, guides
}
