package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/stickerdiary/internal/diary"
)

func TestSnap(t *testing.T) {
	tests := []struct {
		value float64
		want  float64
	}{
		{value: 0, want: 0},
		{value: 9.9, want: 0},
		{value: 10, want: 20},
		{value: 183, want: 180},
		{value: 250, want: 260},
		{value: 430, want: 440},
		{value: -11, want: -20},
	}

	for _, tt := range tests {
		got := Snap(tt.value)
		assert.Equal(t, tt.want, got, "Snap(%v)", tt.value)
		assert.Equal(t, got, Snap(got), "Snap is idempotent for %v", tt.value)
	}
}

func TestClampPositions(t *testing.T) {
	x, y := clampStickerPosition(-5, 1000)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, float64(StickerMaxY), y)

	x, y = clampCardPosition(500, -1)
	assert.Equal(t, float64(CardMaxX), x)
	assert.Equal(t, 0.0, y)

	x, y = clampStickerPosition(120, 340)
	assert.Equal(t, 120.0, x)
	assert.Equal(t, 340.0, y)
}

func TestAlignToGuides(t *testing.T) {
	others := []diary.Sticker{
		{ID: 1, X: 100, Y: 400},
		{ID: 2, X: 236, Y: 500},
	}

	tests := []struct {
		name       string
		x, y       float64
		wantX      float64
		wantY      float64
		wantGuides Guides
	}{
		{
			name:  "far from every line",
			x:     50,
			y:     50,
			wantX: 50,
			wantY: 50,
		},
		{
			name:       "canvas centre",
			x:          245,
			y:          311,
			wantX:      240,
			wantY:      320,
			wantGuides: Guides{X: Guide{Position: 240, Visible: true}, Y: Guide{Position: 320, Visible: true}},
		},
		{
			name:       "nearest line wins",
			x:          234,
			y:          405,
			wantX:      236,
			wantY:      400,
			wantGuides: Guides{X: Guide{Position: 236, Visible: true}, Y: Guide{Position: 400, Visible: true}},
		},
		{
			name:  "threshold is exclusive",
			x:     110,
			y:     410,
			wantX: 110,
			wantY: 410,
		},
		{
			name:       "own position is ignored",
			x:          350,
			y:          495,
			wantX:      350,
			wantY:      500,
			wantGuides: Guides{Y: Guide{Position: 500, Visible: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stickers := append(others, diary.Sticker{ID: 3, X: 350, Y: 495})
			x, y, guides := alignToGuides(tt.x, tt.y, 3, stickers)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
			assert.Equal(t, tt.wantGuides, guides)
		})
	}
}
