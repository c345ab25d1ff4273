// Package store keeps the application state as whole JSON collections under
// fixed keys of a key-value backend.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

// Well-known keys of the persisted collections.
const (
	UsersKey         = "eventflow_users"
	CurrentUserKey   = "eventflow_current_user"
	EventsKey        = "eventflow_events"
	RegistrationsKey = "eventflow_registrations"
)

// KV is a durable map from string keys to JSON documents.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store serializes read-modify-write cycles over a KV within one process.
// Writers from other processes sharing the backend are last-write-wins.
type Store struct {
	kv KV
	mu sync.RWMutex
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) KV() KV {
	return s.kv
}

// View runs fn under the shared lock.
func (s *Store) View(fn func(kv KV) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.kv)
}

// Update runs fn under the exclusive lock. fn must not call View or Update.
func (s *Store) Update(fn func(kv KV) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.kv)
}

// LoadList decodes the collection under key. A missing key is an empty list.
func LoadList[T any](ctx context.Context, kv KV, key string) ([]T, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", key)
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", key)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveList rewrites the whole collection under key.
func SaveList[T any](ctx context.Context, kv KV, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", key)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return errors.Wrapf(err, "failed to write %s", key)
	}
	return nil
}

// LoadObject decodes the single object under key, nil when absent.
func LoadObject[T any](ctx context.Context, kv KV, key string) (*T, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", key)
	}
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", key)
	}
	return &v, nil
}

func SaveObject[T any](ctx context.Context, kv KV, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", key)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return errors.Wrapf(err, "failed to write %s", key)
	}
	return nil
}
