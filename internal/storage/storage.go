// Package storage provides the key-value persistence layer the repositories are built on.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

//go:generate mockgen -source=storage.go -destination=../mocks/storage/mock_store.go -package=mock_storage

// ErrNotFound is returned by Store.Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// DefaultPrefix namespaces every key the application writes.
const DefaultPrefix = "stickerdiary_"

// Store is a synchronous key-value store without transactions.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// GetJSON decodes the value stored under key into v.
// It reports false without an error when the key does not exist.
func GetJSON[T any](ctx context.Context, store Store, key string, v *T) (bool, error) {
	data, err := store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store.Get(%s) > %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("json.Unmarshal(%s) > %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, store Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json.Marshal(%s) > %w", key, err)
	}
	if err := store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("store.Set(%s) > %w", key, err)
	}
	return nil
}

// Clear removes every key of the store.
func Clear(ctx context.Context, store Store) error {
	keys, err := store.Keys(ctx)
	if err != nil {
		return fmt.Errorf("store.Keys() > %w", err)
	}
	for _, key := range keys {
		if err := store.Remove(ctx, key); err != nil {
			return fmt.Errorf("store.Remove(%s) > %w", key, err)
		}
	}
	return nil
}

type prefixedStore struct {
	store  Store
	prefix string
}

// WithPrefix returns a Store that transparently prefixes every key.
// Keys reports only the keys under the prefix, with the prefix stripped.
func WithPrefix(store Store, prefix string) Store {
	return &prefixedStore{store: store, prefix: prefix}
}

func (s *prefixedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.store.Get(ctx, s.prefix+key)
}

func (s *prefixedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.store.Set(ctx, s.prefix+key, value)
}

func (s *prefixedStore) Remove(ctx context.Context, key string) error {
	return s.store.Remove(ctx, s.prefix+key)
}

func (s *prefixedStore) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.HasPrefix(key, s.prefix) {
			result = append(result, strings.TrimPrefix(key, s.prefix))
		}
	}
	sort.Strings(result)
	return result, nil
}
