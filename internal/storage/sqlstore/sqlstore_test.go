package sqlstore

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/stickerdiary/internal/storage"
)

func newTestStore(t *testing.T, driver string) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_entries").WillReturnResult(sqlmock.NewResult(0, 0))

	store, err := New(context.Background(), sqlx.NewDb(db, driver))
	require.NoError(t, err)
	return store, mock
}

func TestStore_Get(t *testing.T) {
	tests := []struct {
		name      string
		driver    string
		query     string
		setupMock func(mock sqlmock.Sqlmock, query string)
		want      []byte
		wantErr   error
	}{
		{
			name:   "found on sqlite",
			driver: "sqlite3",
			query:  "SELECT v FROM kv_entries WHERE k = ?",
			setupMock: func(mock sqlmock.Sqlmock, query string) {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs("diaries").
					WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow([]byte(`[]`)))
			},
			want: []byte(`[]`),
		},
		{
			name:   "found on postgres uses numbered placeholders",
			driver: "postgres",
			query:  "SELECT v FROM kv_entries WHERE k = $1",
			setupMock: func(mock sqlmock.Sqlmock, query string) {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs("diaries").
					WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow([]byte(`[1]`)))
			},
			want: []byte(`[1]`),
		},
		{
			name:   "missing key",
			driver: "mysql",
			query:  "SELECT v FROM kv_entries WHERE k = ?",
			setupMock: func(mock sqlmock.Sqlmock, query string) {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs("diaries").
					WillReturnRows(sqlmock.NewRows([]string{"v"}))
			},
			wantErr: storage.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newTestStore(t, tt.driver)
			tt.setupMock(mock, tt.query)

			got, err := store.Get(context.Background(), "diaries")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_Set(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		query  string
	}{
		{
			name:   "mysql upsert",
			driver: "mysql",
			query:  "INSERT INTO kv_entries (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE",
		},
		{
			name:   "sqlite upsert",
			driver: "sqlite3",
			query:  "INSERT INTO kv_entries (k, v) VALUES (?, ?) ON CONFLICT (k) DO UPDATE",
		},
		{
			name:   "postgres upsert",
			driver: "postgres",
			query:  "INSERT INTO kv_entries (k, v) VALUES ($1, $2) ON CONFLICT (k) DO UPDATE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newTestStore(t, tt.driver)
			mock.ExpectExec(regexp.QuoteMeta(tt.query)).
				WithArgs("cards", []byte(`{}`)).
				WillReturnResult(sqlmock.NewResult(1, 1))

			require.NoError(t, store.Set(context.Background(), "cards", []byte(`{}`)))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_RemoveAndKeys(t *testing.T) {
	store, mock := newTestStore(t, "sqlite3")

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_entries WHERE k = ?")).
		WithArgs("cards").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT k FROM kv_entries ORDER BY k")).
		WillReturnRows(sqlmock.NewRows([]string{"k"}).AddRow("diaries").AddRow("folders"))

	require.NoError(t, store.Remove(context.Background(), "cards"))
	keys, err := store.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"diaries", "folders"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_SchemaError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_entries").WillReturnError(errors.New("permission denied"))

	_, err = New(context.Background(), sqlx.NewDb(db, "postgres"))
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ImplementsStore(t *testing.T) {
	var _ storage.Store = (*Store)(nil)
}
