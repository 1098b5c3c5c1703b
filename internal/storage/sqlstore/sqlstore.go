// Package sqlstore implements storage.Store on a single key-value table.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/stickerdiary/internal/database"
	"github.com/at-ishikawa/stickerdiary/internal/storage"
	"github.com/at-ishikawa/stickerdiary/schemas"
)

const tableName = "kv_entries"

type Store struct {
	db *sqlx.DB
}

// New returns a store on db and creates the table when it does not exist.
func New(ctx context.Context, db *sqlx.DB) (*Store, error) {
	store := &Store{db: db}
	if err := store.initSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	query, err := schemas.KVEntries(s.db.DriverName())
	if err != nil {
		return fmt.Errorf("schemas.KVEntries() > %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("db.ExecContext(create %s) > %w", tableName, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := s.db.Rebind("SELECT v FROM kv_entries WHERE k = ?")
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("db.GetContext(%s) > %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	var query string
	if s.db.DriverName() == database.DriverMySQL {
		query = "INSERT INTO kv_entries (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v), updated_at = CURRENT_TIMESTAMP"
	} else {
		query = "INSERT INTO kv_entries (k, v) VALUES (?, ?) ON CONFLICT (k) DO UPDATE SET v = excluded.v, updated_at = CURRENT_TIMESTAMP"
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), key, value); err != nil {
		return fmt.Errorf("db.ExecContext(upsert %s) > %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM kv_entries WHERE k = ?"), key); err != nil {
		return fmt.Errorf("db.ExecContext(delete %s) > %w", key, err)
	}
	return nil
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.SelectContext(ctx, &keys, "SELECT k FROM kv_entries ORDER BY k"); err != nil {
		return nil, fmt.Errorf("db.SelectContext() > %w", err)
	}
	return keys, nil
}
