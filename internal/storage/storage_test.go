package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	return map[string]Store{
		"memory":   NewMemoryStore(),
		"file":     fileStore,
		"prefixed": WithPrefix(NewMemoryStore(), DefaultPrefix),
	}
}

func TestStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "diaries")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Set(ctx, "diaries", []byte(`[1,2]`)))
			got, err := store.Get(ctx, "diaries")
			require.NoError(t, err)
			assert.Equal(t, `[1,2]`, string(got))

			require.NoError(t, store.Set(ctx, "diaries", []byte(`[3]`)))
			got, err = store.Get(ctx, "diaries")
			require.NoError(t, err)
			assert.Equal(t, `[3]`, string(got))

			require.NoError(t, store.Set(ctx, "cards/odd key", []byte(`{}`)))
			keys, err := store.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"cards/odd key", "diaries"}, keys)

			require.NoError(t, store.Remove(ctx, "diaries"))
			require.NoError(t, store.Remove(ctx, "diaries"))
			_, err = store.Get(ctx, "diaries")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestWithPrefix(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	require.NoError(t, inner.Set(ctx, "other_key", []byte("1")))

	store := WithPrefix(inner, "app_")
	require.NoError(t, store.Set(ctx, "cards", []byte("2")))

	raw, err := inner.Get(ctx, "app_cards")
	require.NoError(t, err)
	assert.Equal(t, "2", string(raw))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cards"}, keys)
}

func TestJSONHelpers(t *testing.T) {
	type record struct {
		Title string `json:"title"`
	}

	tests := []struct {
		name      string
		setup     func(t *testing.T, store Store)
		wantFound bool
		want      record
		wantErr   bool
	}{
		{
			name:      "missing key",
			setup:     func(t *testing.T, store Store) {},
			wantFound: false,
		},
		{
			name: "stored value",
			setup: func(t *testing.T, store Store) {
				require.NoError(t, SetJSON(context.Background(), store, "k", record{Title: "hello"}))
			},
			wantFound: true,
			want:      record{Title: "hello"},
		},
		{
			name: "broken json",
			setup: func(t *testing.T, store Store) {
				require.NoError(t, store.Set(context.Background(), "k", []byte("{")))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			tt.setup(t, store)

			var got record
			found, err := GetJSON(context.Background(), store, "k", &got)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "a", []byte("1")))
	require.NoError(t, store.Set(ctx, "b", []byte("2")))

	require.NoError(t, Clear(ctx, store))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}
