package diary

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_storage "github.com/at-ishikawa/stickerdiary/internal/mocks/storage"
	"github.com/at-ishikawa/stickerdiary/internal/storage"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestRepository(t *testing.T) (*StoreRepository, storage.Store) {
	t.Helper()

	store := storage.NewMemoryStore()
	repo := NewStoreRepository(store)
	repo.now = func() time.Time { return testNow }
	seq := 0
	repo.newID = func() string {
		seq++
		return fmt.Sprintf("diary_%d", seq)
	}
	return repo, store
}

func TestStoreRepository_Create(t *testing.T) {
	tests := []struct {
		name    string
		content Content
		want    Content
	}{
		{
			name:    "empty content gets defaults",
			content: Content{},
			want: Content{
				Title:      DefaultTitle,
				Date:       "2025-03-14",
				Background: BackgroundPlain,
				Stickers:   []Sticker{},
				Cards:      []PlacedCard{},
				Comments:   map[string][]Comment{},
			},
		},
		{
			name: "given content is kept",
			content: Content{
				Title:      "Rainy day",
				Date:       "2025-03-01",
				Background: BackgroundDots,
				Stickers:   []Sticker{{ID: 1, Emoji: "⭐", X: 160, Y: 200, Scale: 1, ZIndex: 1}},
				Memo:       "read two chapters",
			},
			want: Content{
				Title:      "Rainy day",
				Date:       "2025-03-01",
				Background: BackgroundDots,
				Stickers:   []Sticker{{ID: 1, Emoji: "⭐", X: 160, Y: 200, Scale: 1, ZIndex: 1}},
				Cards:      []PlacedCard{},
				Comments:   map[string][]Comment{},
				Memo:       "read two chapters",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _ := newTestRepository(t)
			ctx := context.Background()

			created, err := repo.Create(ctx, "user_1", tt.content)
			require.NoError(t, err)
			assert.Equal(t, "diary_1", created.ID)
			assert.Equal(t, "user_1", created.UserID)
			assert.Equal(t, tt.want, created.Content)
			assert.Equal(t, testNow, created.CreatedAt)

			got, err := repo.GetByID(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, created, got)
		})
	}
}

func TestStoreRepository_Update(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "user_1", Content{Title: "first", Date: "2025-03-01", Background: BackgroundMint})
	require.NoError(t, err)

	later := testNow.Add(time.Hour)
	repo.now = func() time.Time { return later }

	updated, err := repo.Update(ctx, created.ID, Content{Title: "second", Memo: "memo"})
	require.NoError(t, err)
	assert.Equal(t, "second", updated.Title)
	assert.Equal(t, "memo", updated.Memo)
	assert.Equal(t, "2025-03-01", updated.Date)
	assert.Equal(t, BackgroundMint, updated.Background)
	assert.Equal(t, testNow, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)

	_, err = repo.Update(ctx, "diary_missing", Content{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreRepository_GetByID_NotFound(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.GetByID(context.Background(), "diary_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreRepository_GetAll(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	for _, c := range []struct {
		user string
		date string
	}{
		{"user_1", "2025-01-02"},
		{"user_2", "2025-01-03"},
		{"user_1", "2025-02-01"},
	} {
		_, err := repo.Create(ctx, c.user, Content{Date: c.date})
		require.NoError(t, err)
	}

	got, err := repo.GetAll(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-02-01", got[0].Date)
	assert.Equal(t, "2025-01-02", got[1].Date)
}

func TestStoreRepository_TrashLifecycle(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, "user_1", Content{Title: "first"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, "user_1", Content{Title: "second"})
	require.NoError(t, err)
	other, err := repo.Create(ctx, "user_2", Content{Title: "other"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, first.ID))
	require.NoError(t, repo.Delete(ctx, second.ID))
	require.NoError(t, repo.Delete(ctx, other.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), ErrNotFound)

	_, err = repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	trash, err := repo.GetTrash(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, trash, 2)
	require.NotNil(t, trash[0].DeletedAt)
	assert.Equal(t, testNow, *trash[0].DeletedAt)

	restored, err := repo.Restore(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)
	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	require.NoError(t, repo.PermanentDelete(ctx, second.ID))
	assert.ErrorIs(t, repo.PermanentDelete(ctx, second.ID), ErrNotFound)
	_, err = repo.Restore(ctx, second.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.EmptyTrash(ctx, "user_1"))
	trash, err = repo.GetTrash(ctx, "user_2")
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, other.ID, trash[0].ID)
}

func TestStoreRepository_LikesAndSharing(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "user_1", Content{})
	require.NoError(t, err)

	_, err = repo.GetPublicByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.SetPublic(ctx, created.ID, true)
	require.NoError(t, err)
	public, err := repo.GetPublicByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, public.IsPublic)

	for i := 1; i <= 2; i++ {
		liked, err := repo.ToggleLike(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, i, liked.Likes)
	}

	assert.Equal(t, "http://localhost:3000/share/"+created.ID, ShareURL("http://localhost:3000/", created.ID))
}

func TestStoreRepository_Search(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	for _, c := range []Content{
		{Title: "Morning Walk", Date: "2025-01-10"},
		{Title: "Reading", Date: "2025-02-10", Memo: "finished the WALKING dead"},
		{Title: "Movie night", Date: "2025-03-10"},
	} {
		_, err := repo.Create(ctx, "user_1", c)
		require.NoError(t, err)
	}

	tests := []struct {
		name       string
		search     func() ([]Diary, error)
		wantTitles []string
		wantErr    bool
	}{
		{
			name: "keyword matches title and memo ignoring case",
			search: func() ([]Diary, error) {
				return repo.Search(ctx, "user_1", "walk")
			},
			wantTitles: []string{"Reading", "Morning Walk"},
		},
		{
			name: "blank keyword returns everything",
			search: func() ([]Diary, error) {
				return repo.Search(ctx, "user_1", "  ")
			},
			wantTitles: []string{"Movie night", "Reading", "Morning Walk"},
		},
		{
			name: "date range is inclusive",
			search: func() ([]Diary, error) {
				return repo.SearchByDateRange(ctx, "user_1", "2025-02-10", "2025-03-10")
			},
			wantTitles: []string{"Movie night", "Reading"},
		},
		{
			name: "open ended date range",
			search: func() ([]Diary, error) {
				return repo.SearchByDateRange(ctx, "user_1", "", "2025-01-31")
			},
			wantTitles: []string{"Morning Walk"},
		},
		{
			name: "invalid date",
			search: func() ([]Diary, error) {
				return repo.SearchByDateRange(ctx, "user_1", "yesterday", "")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.search()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			var titles []string
			for _, d := range got {
				titles = append(titles, d.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestStoreRepository_LoadAppliesDefaults(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()

	raw := `[{
		"id": "diary_old",
		"userId": "user_1",
		"title": "legacy",
		"background": "neon",
		"stickers": [{"id": 3, "emoji": "🌸", "x": 40, "y": 60}],
		"cards": [{"id": "placed_1", "cardId": "card_1", "cardData": {"title": "Tower"}}]
	}]`
	require.NoError(t, store.Set(ctx, diariesKey, []byte(raw)))

	got, err := repo.GetByID(ctx, "diary_old")
	require.NoError(t, err)
	assert.Equal(t, BackgroundPlain, got.Background)
	assert.Equal(t, []Sticker{{ID: 3, Emoji: "🌸", X: 40, Y: 60, Scale: 1}}, got.Stickers)
	require.Len(t, got.Cards, 1)
	assert.Equal(t, 0.6, got.Cards[0].Scale)
	assert.Equal(t, "Tower", got.Cards[0].CardData.Title)
	assert.NotNil(t, got.Comments)
	assert.Equal(t, "", got.Memo)
}

func TestStoreRepository_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_storage.NewMockStore(ctrl)
	storeErr := errors.New("disk full")

	store.EXPECT().Get(gomock.Any(), diariesKey).Return([]byte(`[]`), nil)
	store.EXPECT().Set(gomock.Any(), diariesKey, gomock.Any()).Return(storeErr)

	repo := NewStoreRepository(store)
	_, err := repo.Create(context.Background(), "user_1", Content{})
	assert.ErrorIs(t, err, storeErr)
}

func TestParseBackground(t *testing.T) {
	tests := []struct {
		input   string
		want    Background
		wantErr bool
	}{
		{input: "grid", want: BackgroundGrid},
		{input: " Peach ", want: BackgroundPeach},
		{input: "neon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBackground(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, BackgroundPlain, BackgroundPeach.Next())
}
