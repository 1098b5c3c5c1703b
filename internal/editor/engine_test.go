package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/stickerdiary/internal/diary"
	mock_diary "github.com/at-ishikawa/stickerdiary/internal/mocks/diary"
)

func TestNew(t *testing.T) {
	e := newTestEngine(t)

	state := e.State()
	assert.Empty(t, state.ID)
	assert.Empty(t, state.Title)
	assert.Equal(t, "2024-03-15", state.Date)
	assert.Equal(t, diary.BackgroundPlain, state.Background)
	assert.Empty(t, state.Stickers)
	assert.Empty(t, state.Cards)
	assert.Equal(t, StatusSaved, state.Status)
	assert.True(t, state.Snap)
	assert.False(t, state.GuidesEnabled)
	assert.False(t, state.CanUndo)
}

func TestOpen(t *testing.T) {
	stored := &diary.Diary{
		ID:     "diary_1",
		UserID: "user_1",
		Content: diary.Content{
			Title:      "Sunday",
			Date:       "2024-03-10",
			Background: diary.BackgroundDots,
			Stickers: []diary.Sticker{
				{ID: 4, Emoji: "🌸", X: 100, Y: 120, Scale: 1, ZIndex: 1},
				{ID: 9, Emoji: "hi", X: 200, Y: 220, Scale: 1, IsText: true, ZIndex: 2},
			},
			Cards:    []diary.PlacedCard{{ID: "placed_1", CardID: "card_1", X: 60, Y: 100, Scale: 0.6, ZIndex: 100}},
			Comments: map[string][]diary.Comment{"card_1": {{ID: "c1", Text: "great", Author: "me"}}},
			Memo:     "a memo",
		},
	}

	tests := []struct {
		name       string
		setupMock  func(repo *mock_diary.MockRepository)
		wantErr    error
		wantErrAny bool
	}{
		{
			name: "stored diary",
			setupMock: func(repo *mock_diary.MockRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "diary_1").Return(stored, nil)
			},
		},
		{
			name: "missing diary",
			setupMock: func(repo *mock_diary.MockRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "diary_1").Return(nil, diary.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "repository failure",
			setupMock: func(repo *mock_diary.MockRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "diary_1").Return(nil, errors.New("disk full"))
			},
			wantErrAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_diary.NewMockRepository(ctrl)
			tt.setupMock(repo)

			e, err := Open(context.Background(), repo, "diary_1", WithClock(fixedClock), WithScheduler(&fakeScheduler{}))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, diary.ErrNotFound)
				return
			}
			if tt.wantErrAny {
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrNotFound)
				return
			}
			require.NoError(t, err)
			defer e.Close()

			state := e.State()
			assert.Equal(t, "diary_1", state.ID)
			assert.Equal(t, stored.Title, state.Title)
			assert.Equal(t, stored.Date, state.Date)
			assert.Equal(t, diary.BackgroundDots, state.Background)
			assert.Equal(t, stored.Stickers, state.Stickers)
			assert.Equal(t, stored.Cards, state.Cards)
			assert.Equal(t, stored.Comments, state.Comments)
			assert.Equal(t, "a memo", state.Memo)
			assert.Equal(t, StatusSaved, state.Status)

			sticker, ok := e.AddSticker("⭐", false)
			require.True(t, ok)
			assert.Equal(t, int64(10), sticker.ID)
			assert.Equal(t, 3, sticker.ZIndex)
		})
	}
}

func TestAddSticker(t *testing.T) {
	tests := []struct {
		name  string
		rand  []float64
		snap  bool
		wantX float64
		wantY float64
	}{
		{name: "snapped", rand: []float64{0.33, 0.71}, snap: true, wantX: 180, wantY: 220},
		{name: "without snapping", rand: []float64{0.33, 0.71}, snap: false, wantX: 183, wantY: 221},
		{name: "lowest position", rand: []float64{0, 0}, snap: true, wantX: 160, wantY: 160},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, WithRand(&sequenceRand{values: tt.rand}), WithSnap(tt.snap))

			got, ok := e.AddSticker("🌸", false)
			require.True(t, ok)
			assert.InDelta(t, tt.wantX, got.X, 1e-9)
			assert.InDelta(t, tt.wantY, got.Y, 1e-9)
			assert.Equal(t, diary.Sticker{ID: 1, Emoji: "🌸", X: got.X, Y: got.Y, Scale: 1, ZIndex: 1}, got)

			state := e.State()
			assert.Equal(t, []diary.Sticker{got}, state.Stickers)
			assert.True(t, state.HasSelection)
			assert.Equal(t, int64(1), state.SelectedSticker)
			assert.Equal(t, StatusUnsaved, state.Status)
			assert.True(t, state.CanUndo)
		})
	}
}

func TestAddSticker_IncrementsIDAndZIndex(t *testing.T) {
	e := newTestEngine(t)

	first, _ := e.AddSticker("🌸", false)
	second, _ := e.AddSticker("hello", true)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, first.ZIndex+1, second.ZIndex)
	assert.True(t, second.IsText)

	_, ok := e.AddSticker("  ", true)
	assert.False(t, ok)
	assert.Len(t, e.State().Stickers, 2)
}

func TestUpdateStickerProperty(t *testing.T) {
	tests := []struct {
		name     string
		property StickerProperty
		value    float64
		selected bool
		want     bool
		wantRot  float64
		wantSc   float64
	}{
		{name: "rotation", property: PropertyRotation, value: 45, selected: true, want: true, wantRot: 45, wantSc: 1},
		{name: "rotation above the range", property: PropertyRotation, value: 200, selected: true, want: true, wantRot: 180, wantSc: 1},
		{name: "rotation below the range", property: PropertyRotation, value: -500, selected: true, want: true, wantRot: -180, wantSc: 1},
		{name: "scale", property: PropertyScale, value: 1.5, selected: true, want: true, wantSc: 1.5},
		{name: "scale above the range", property: PropertyScale, value: 3, selected: true, want: true, wantSc: 2.5},
		{name: "scale below the range", property: PropertyScale, value: 0.1, selected: true, want: true, wantSc: 0.5},
		{name: "unknown property", property: "opacity", value: 1, selected: true, want: false, wantSc: 1},
		{name: "no selection", property: PropertyRotation, value: 45, selected: false, want: false, wantSc: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			_, _ = e.AddSticker("🌸", false)
			if !tt.selected {
				e.ClearSelection()
			}
			historyLen := e.HistoryLen()

			got := e.UpdateStickerProperty(tt.property, tt.value)
			assert.Equal(t, tt.want, got)

			sticker := e.State().Stickers[0]
			assert.Equal(t, tt.wantRot, sticker.Rotation)
			assert.Equal(t, tt.wantSc, sticker.Scale)
			if tt.want {
				assert.Equal(t, historyLen+1, e.HistoryLen())
			} else {
				assert.Equal(t, historyLen, e.HistoryLen())
			}
		})
	}
}

func TestMoveSticker_ClampsToCanvas(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		wantX  float64
		wantY  float64
	}{
		{name: "inside", dx: 15, dy: -30, wantX: 215, wantY: 170},
		{name: "past the right bottom", dx: 1000, dy: 1000, wantX: StickerMaxX, wantY: StickerMaxY},
		{name: "past the left top", dx: -1000, dy: -1000, wantX: 0, wantY: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			sticker, _ := e.AddSticker("🌸", false)

			assert.True(t, e.MoveSticker(sticker.ID, tt.dx, tt.dy))
			got := e.State().Stickers[0]
			assert.Equal(t, tt.wantX, got.X)
			assert.Equal(t, tt.wantY, got.Y)
		})
	}
}

func TestMoveSelectedSticker_WithoutSelection(t *testing.T) {
	e := newTestEngine(t)
	sticker, _ := e.AddSticker("🌸", false)
	e.ClearSelection()
	historyLen := e.HistoryLen()

	assert.False(t, e.MoveSelectedSticker(10, 10))
	assert.False(t, e.MoveSticker(sticker.ID+100, 10, 10))
	assert.Equal(t, historyLen, e.HistoryLen())
	assert.Equal(t, sticker, e.State().Stickers[0])
}

func TestDeleteSelectedSticker(t *testing.T) {
	e := newTestEngine(t)
	first, _ := e.AddSticker("🌸", false)
	_, _ = e.AddSticker("⭐", false)

	require.True(t, e.SelectSticker(first.ID))
	assert.True(t, e.DeleteSelectedSticker())

	state := e.State()
	assert.Len(t, state.Stickers, 1)
	assert.Equal(t, "⭐", state.Stickers[0].Emoji)
	assert.False(t, state.HasSelection)

	assert.False(t, e.DeleteSelectedSticker())
	assert.False(t, e.SelectSticker(first.ID))
}

func zIndexes(stickers []diary.Sticker) map[int64]int {
	result := map[int64]int{}
	for _, s := range stickers {
		result[s.ID] = s.ZIndex
	}
	return result
}

func TestChangeZIndex(t *testing.T) {
	e := newTestEngine(t)
	first, _ := e.AddSticker("1", true)
	second, _ := e.AddSticker("2", true)
	_, _ = e.AddSticker("3", true)

	before := zIndexes(e.State().Stickers)

	require.True(t, e.SelectSticker(second.ID))
	assert.True(t, e.ChangeZIndex(-1))
	swapped := zIndexes(e.State().Stickers)
	assert.Equal(t, before[first.ID], swapped[second.ID])
	assert.Equal(t, before[second.ID], swapped[first.ID])

	assert.True(t, e.ChangeZIndex(1))
	assert.Equal(t, before, zIndexes(e.State().Stickers))

	t.Run("no-op at the ends", func(t *testing.T) {
		require.True(t, e.SelectSticker(first.ID))
		historyLen := e.HistoryLen()
		assert.False(t, e.ChangeZIndex(-1))
		assert.Equal(t, historyLen, e.HistoryLen())
		assert.Equal(t, before, zIndexes(e.State().Stickers))
	})
}

func TestBringToFrontAndSendToBack(t *testing.T) {
	e := newTestEngine(t)
	first, _ := e.AddSticker("1", true)
	top, _ := e.AddSticker("2", true)

	t.Run("bring the topmost sticker to front", func(t *testing.T) {
		require.True(t, e.SelectSticker(top.ID))
		assert.True(t, e.BringToFront())
		got := zIndexes(e.State().Stickers)
		assert.Greater(t, got[top.ID], top.ZIndex)
		assert.Equal(t, top.ZIndex+1, got[top.ID])
	})

	t.Run("send to back", func(t *testing.T) {
		require.True(t, e.SelectSticker(top.ID))
		assert.True(t, e.SendToBack())
		got := zIndexes(e.State().Stickers)
		assert.Equal(t, first.ZIndex-1, got[top.ID])
	})

	t.Run("without selection", func(t *testing.T) {
		e.ClearSelection()
		assert.False(t, e.BringToFront())
		assert.False(t, e.SendToBack())
	})
}

func TestUndoRedo_Scenario(t *testing.T) {
	e := newTestEngine(t, WithRand(&sequenceRand{values: []float64{0, 0, 1, 1}}))
	a, _ := e.AddSticker("A", true)
	b, _ := e.AddSticker("B", true)

	require.True(t, e.Undo())
	assert.Equal(t, []diary.Sticker{a}, e.State().Stickers)
	assert.False(t, e.State().HasSelection)

	require.True(t, e.Undo())
	assert.Empty(t, e.State().Stickers)

	require.True(t, e.Redo())
	assert.Equal(t, []diary.Sticker{a}, e.State().Stickers)

	require.True(t, e.Redo())
	assert.Equal(t, []diary.Sticker{a, b}, e.State().Stickers)

	assert.False(t, e.Redo())
	assert.Equal(t, StatusUnsaved, e.State().Status)
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	e := newTestEngine(t)
	sticker, _ := e.AddSticker("🌸", false)
	_ = e.MoveSticker(sticker.ID, 20, 40)
	_ = e.UpdateStickerProperty(PropertyRotation, 30)
	_, _ = e.AddSticker("⭐", false)
	_ = e.ChangeZIndex(-1)

	edited := e.State().Stickers
	const edits = 5
	for range edits {
		require.True(t, e.Undo())
	}
	assert.Empty(t, e.State().Stickers)
	for range edits {
		require.True(t, e.Redo())
	}
	assert.Equal(t, edited, e.State().Stickers)
}

func TestUndo_NewEditDropsRedo(t *testing.T) {
	e := newTestEngine(t)
	a, _ := e.AddSticker("A", true)
	_, _ = e.AddSticker("B", true)
	require.True(t, e.Undo())

	c, _ := e.AddSticker("C", true)
	assert.False(t, e.State().CanRedo)
	assert.Equal(t, []diary.Sticker{a, c}, e.State().Stickers)

	require.True(t, e.Undo())
	assert.Equal(t, []diary.Sticker{a}, e.State().Stickers)
	require.True(t, e.Redo())
	assert.Equal(t, []diary.Sticker{a, c}, e.State().Stickers)
}

func TestResetCanvas(t *testing.T) {
	e := newTestEngine(t)
	assert.False(t, e.ResetCanvas())

	_, _ = e.AddSticker("A", true)
	_, _ = e.AddSticker("B", true)
	assert.True(t, e.ResetCanvas())
	assert.Empty(t, e.State().Stickers)
	assert.False(t, e.State().HasSelection)

	require.True(t, e.Undo())
	assert.Len(t, e.State().Stickers, 2)
}

func TestMetadata(t *testing.T) {
	e := newTestEngine(t)

	assert.True(t, e.SetTitle("Rainy day"))
	assert.False(t, e.SetTitle("Rainy day"))
	assert.True(t, e.SetMemo("stayed in"))
	assert.False(t, e.SetDate("2024/03/01"))
	assert.True(t, e.SetDate("2024-03-01"))
	assert.False(t, e.SetBackground("stripes"))
	assert.True(t, e.SetBackground(diary.BackgroundMint))

	content := e.Content()
	assert.Equal(t, "Rainy day", content.Title)
	assert.Equal(t, "stayed in", content.Memo)
	assert.Equal(t, "2024-03-01", content.Date)
	assert.Equal(t, diary.BackgroundMint, content.Background)
	assert.Equal(t, StatusUnsaved, e.State().Status)

	// metadata edits are not part of the sticker history
	assert.Equal(t, 0, e.HistoryLen())
}

func TestContent_BlankTitle(t *testing.T) {
	e := newTestEngine(t)
	_ = e.SetTitle("   ")
	assert.Equal(t, diary.DefaultTitle, e.Content().Title)
}

func TestSetGuides_ClearsLines(t *testing.T) {
	e := newTestEngine(t, WithGuides(true), WithSnap(false))
	_, _ = e.AddSticker("A", true)
	sticker, _ := e.AddSticker("B", true)

	require.True(t, e.PressSticker(sticker.ID, Point{X: sticker.X, Y: sticker.Y}))
	require.True(t, e.DragTo(Point{X: 236, Y: 316}))
	assert.True(t, e.Guides().X.Visible)

	e.SetGuides(false)
	assert.Equal(t, Guides{}, e.Guides())
	assert.False(t, e.State().GuidesEnabled)
}
