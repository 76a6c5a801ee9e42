package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	microerrors "github.com/vango-dev/micro/internal/errors"
)

type todo struct {
	ID          int64  `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

// backends returns one fresh instance of every backend.
func backends(t *testing.T) map[string]Backend {
	t.Helper()

	sqlite, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Backend{
		"memory": NewMemoryBackend(),
		"sqlite": sqlite,
		"s3":     NewS3Backend(newFakeS3(), "bucket", "micro/"),
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			reg := NewRegistry(backend)
			s, err := New[[]todo](reg, "todo")
			require.NoError(t, err)

			_, ok, err := s.Get(ctx)
			require.NoError(t, err)
			require.False(t, ok, "empty storage reported a value")

			want := []todo{
				{ID: 1, Text: "Buy milk"},
				{ID: 2, Text: `quote " and <tag>`, IsCompleted: true},
			}
			require.NoError(t, s.Set(ctx, want))

			got, ok, err := s.Get(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Get() mismatch (-want +got):\n%s", diff)
			}

			// Overwrite.
			require.NoError(t, s.Set(ctx, want[:1]))
			got, _, err = s.Get(ctx)
			require.NoError(t, err)
			require.Len(t, got, 1)

			require.NoError(t, s.Remove(ctx))
			_, ok, err = s.Get(ctx)
			require.NoError(t, err)
			require.False(t, ok, "removed value still present")

			// Removing twice is fine.
			require.NoError(t, s.Remove(ctx))
		})
	}
}

func TestStoredNullReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(NewMemoryBackend())
	s, err := New[*todo](reg, "maybe")
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, nil))
	v, ok, err := s.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, v)
}

func TestDuplicateKey(t *testing.T) {
	reg := NewRegistry(NewMemoryBackend())
	_, err := New[string](reg, "todo")
	require.NoError(t, err)

	_, err = New[int](reg, "todo")
	require.ErrorIs(t, err, ErrDuplicateKey)

	var coded *microerrors.Error
	require.True(t, errors.As(err, &coded))
	require.Equal(t, "M001", coded.Code)
	require.Contains(t, err.Error(), "todo")

	// Another registry has its own table.
	_, err = New[int](NewRegistry(NewMemoryBackend()), "todo")
	require.NoError(t, err)
}

func TestUnregisteredKey(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(NewMemoryBackend())

	_, _, err := reg.GetItem(ctx, "nope")
	require.ErrorIs(t, err, ErrNotRegistered)
	require.ErrorIs(t, reg.SetItem(ctx, "nope", "1"), ErrNotRegistered)
	require.ErrorIs(t, reg.RemoveItem(ctx, "nope"), ErrNotRegistered)

	var coded *microerrors.Error
	require.True(t, errors.As(err, &coded))
	require.Equal(t, "M002", coded.Code)
}

func TestNamespace(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	alice, err := New[string](NewRegistry(backend, WithNamespace("alice")), "todo")
	require.NoError(t, err)
	bob, err := New[string](NewRegistry(backend, WithNamespace("bob")), "todo")
	require.NoError(t, err)

	require.NoError(t, alice.Set(ctx, "a"))
	require.NoError(t, bob.Set(ctx, "b"))

	got, _, err := alice.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "a", got)

	raw, ok, err := backend.GetItem(ctx, "bob/todo")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `"b"`, raw)
	require.Equal(t, 2, backend.Len())
}

func TestKeysAreUniquePerRegistry(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	// Two sessions of one browser share a namespace.
	first, err := New[string](NewRegistry(backend, WithNamespace("client")), "todo")
	require.NoError(t, err)
	second, err := New[string](NewRegistry(backend, WithNamespace("client")), "todo")
	require.NoError(t, err)

	require.NoError(t, first.Set(ctx, "from first"))
	require.NoError(t, second.Set(ctx, "from second"))

	got, ok, err := first.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "from second", got, "last write wins")
	require.Equal(t, 1, backend.Len())
}

func TestBackendFailure(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	reg := NewRegistry(backend)
	s, err := New[int](reg, "n")
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	err = s.Set(ctx, 1)
	require.ErrorIs(t, err, ErrBackend)
	require.ErrorIs(t, err, ErrClosed)

	var coded *microerrors.Error
	require.True(t, errors.As(err, &coded))
	require.Equal(t, "M006", coded.Code)
}

func TestDecodeFailure(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(NewMemoryBackend())
	s, err := New[[]todo](reg, "todo")
	require.NoError(t, err)

	require.NoError(t, reg.SetItem(ctx, "todo", "{not json"))
	_, ok, err := s.Get(ctx)
	require.Error(t, err)
	require.False(t, ok)
}

func TestUse(t *testing.T) {
	reg := NewRegistry(NewMemoryBackend())
	get, set, reset, err := Use[[]string](context.Background(), reg, "list")
	require.NoError(t, err)

	require.NoError(t, set([]string{"x"}))
	v, ok, err := get()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"x"}, v)

	require.NoError(t, reset())
	_, ok, err = get()
	require.NoError(t, err)
	require.False(t, ok)

	_, _, _, err = Use[int](context.Background(), reg, "list")
	require.ErrorIs(t, err, ErrDuplicateKey)
	require.Equal(t, []string{"list"}, reg.Keys())
}
