package todo

import (
	"context"
	"log/slog"

	"github.com/vango-dev/micro/pkg/reactive"
	"github.com/vango-dev/micro/pkg/storage"
)

// state holds the app signals. Writes to todos go through setTodos so the
// stored copy always matches the signal.
type state struct {
	todos   *reactive.Signal[[]Todo]
	display *reactive.Signal[Display]
	focused *reactive.Signal[int64]
	input   *reactive.Signal[string]

	ctx    context.Context
	store  *storage.Storage[[]Todo]
	logger *slog.Logger
}

func newState(ctx context.Context, reg *storage.Registry, logger *slog.Logger) (*state, error) {
	store, err := storage.New[[]Todo](reg, StorageKey)
	if err != nil {
		return nil, err
	}
	saved, _, err := store.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &state{
		todos:   reactive.NewSignal(saved),
		display: reactive.NewSignal(DisplayAll),
		focused: reactive.NewSignal(NotFocused),
		input:   reactive.NewSignal(""),
		ctx:     ctx,
		store:   store,
		logger:  logger,
	}, nil
}

// setTodos writes the list and persists it before returning.
func (s *state) setTodos(fn func([]Todo) []Todo) {
	s.todos.Update(fn)
	if err := s.store.Set(s.ctx, s.todos.Peek()); err != nil {
		s.logger.Error("persist todos failed", "error", err)
	}
}
