package storage

import (
	"context"
	"encoding/json"

	microerrors "github.com/vango-dev/micro/internal/errors"
)

// Storage is a typed JSON value under one registered key.
type Storage[T any] struct {
	reg *Registry
	key string
}

// New registers key and returns its typed accessor.
func New[T any](reg *Registry, key string) (*Storage[T], error) {
	if err := reg.Register(key); err != nil {
		return nil, err
	}
	return &Storage[T]{reg: reg, key: key}, nil
}

// Key returns the storage key.
func (s *Storage[T]) Key() string { return s.key }

// Get decodes the stored value. ok is false when nothing, or JSON null, is
// stored.
func (s *Storage[T]) Get(ctx context.Context) (T, bool, error) {
	var zero T

	raw, ok, err := s.reg.GetItem(ctx, s.key)
	if err != nil || !ok || raw == "null" {
		return zero, false, err
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return zero, false, microerrors.New("M006").
			WithDetailf("decode %s: %v", s.key, err).
			Wrap(err)
	}
	return v, true, nil
}

// Set encodes and stores v.
func (s *Storage[T]) Set(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return microerrors.New("M006").
			WithDetailf("encode %s: %v", s.key, err).
			Wrap(err)
	}
	return s.reg.SetItem(ctx, s.key, string(data))
}

// Remove deletes the stored value.
func (s *Storage[T]) Remove(ctx context.Context) error {
	return s.reg.RemoveItem(ctx, s.key)
}

// Getter reads a stored value.
type Getter[T any] func() (T, bool, error)

// Setter stores a value.
type Setter[T any] func(T) error

// Resetter removes a stored value.
type Resetter func() error

// Use registers key and returns getter, setter and resetter closures bound
// to ctx.
func Use[T any](ctx context.Context, reg *Registry, key string) (Getter[T], Setter[T], Resetter, error) {
	s, err := New[T](reg, key)
	if err != nil {
		return nil, nil, nil, err
	}
	get := func() (T, bool, error) { return s.Get(ctx) }
	set := func(v T) error { return s.Set(ctx, v) }
	reset := func() error { return s.Remove(ctx) }
	return get, set, reset, nil
}
