package storage

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	microerrors "github.com/vango-dev/micro/internal/errors"
)

// Registry is a table of storage keys bound to a backend.
type Registry struct {
	backend   Backend
	namespace string
	logger    *slog.Logger

	mu   sync.RWMutex
	keys map[string]struct{}
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithNamespace prefixes every backend key with ns and a slash.
func WithNamespace(ns string) RegistryOption {
	return func(r *Registry) {
		r.namespace = ns
	}
}

// WithLogger sets the registry logger.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates an empty registry over backend.
func NewRegistry(backend Backend, opts ...RegistryOption) *Registry {
	r := &Registry{
		backend: backend,
		logger:  slog.Default().With("component", "storage"),
		keys:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds key to the table. A key can be registered once per
// registry; registries with the same namespace share backend keys.
func (r *Registry) Register(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keys[key]; ok {
		return microerrors.New("M001").
			WithDetailf("%s is already used, choose another key name", key).
			Wrap(ErrDuplicateKey)
	}
	r.keys[key] = struct{}{}
	return nil
}

// Registered reports whether key is in the table.
func (r *Registry) Registered(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.keys[key]
	return ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.keys))
	for k := range r.keys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Namespace returns the key prefix, or "".
func (r *Registry) Namespace() string { return r.namespace }

// Backend returns the underlying backend.
func (r *Registry) Backend() Backend { return r.backend }

// GetItem reads the raw value of a registered key.
func (r *Registry) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := r.check(key); err != nil {
		return "", false, err
	}
	v, ok, err := r.backend.GetItem(ctx, r.backendKey(key))
	if err != nil {
		return "", false, r.backendErr("get", key, err)
	}
	return v, ok, nil
}

// SetItem writes the raw value of a registered key.
func (r *Registry) SetItem(ctx context.Context, key, value string) error {
	if err := r.check(key); err != nil {
		return err
	}
	if err := r.backend.SetItem(ctx, r.backendKey(key), value); err != nil {
		return r.backendErr("set", key, err)
	}
	return nil
}

// RemoveItem deletes the value of a registered key.
func (r *Registry) RemoveItem(ctx context.Context, key string) error {
	if err := r.check(key); err != nil {
		return err
	}
	if err := r.backend.RemoveItem(ctx, r.backendKey(key)); err != nil {
		return r.backendErr("remove", key, err)
	}
	return nil
}

func (r *Registry) check(key string) error {
	if r.Registered(key) {
		return nil
	}
	return microerrors.New("M002").
		WithDetailf("%s is not initialized, cannot access %s storage", key, key).
		Wrap(ErrNotRegistered)
}

func (r *Registry) backendKey(key string) string {
	if r.namespace == "" {
		return key
	}
	return r.namespace + "/" + key
}

func (r *Registry) backendErr(op, key string, err error) error {
	r.logger.Warn("storage backend failed", "op", op, "key", key, "namespace", r.namespace, "error", err)
	return microerrors.New("M006").
		WithDetailf("%s %s: %v", op, key, err).
		Wrap(&backendError{err: err})
}

// backendError matches ErrBackend while keeping the backend error in the
// chain.
type backendError struct {
	err error
}

func (e *backendError) Error() string        { return e.err.Error() }
func (e *backendError) Unwrap() error        { return e.err }
func (e *backendError) Is(target error) bool { return target == ErrBackend }
