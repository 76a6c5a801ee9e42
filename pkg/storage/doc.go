// Package storage persists JSON values under registered keys.
//
// A Registry binds a key table to a Backend. Keys must be registered once,
// through New or Register, before they are read or written; registering a
// key twice fails so two values can never share storage by accident.
//
//	reg := storage.NewRegistry(storage.NewMemoryBackend())
//	todos, err := storage.New[[]Todo](reg, "todo")
//	if err != nil {
//	    return err
//	}
//	err = todos.Set(ctx, list)
//	list, ok, err := todos.Get(ctx) // ok is false when nothing is stored
//
// Three backends are provided: MemoryBackend for tests and single-process
// use, SQLBackend for database/sql (SQLite through modernc.org/sqlite), and
// S3Backend which keeps one object per key.
//
// A Registry created WithNamespace prefixes every backend key, which lets
// several browser clients share one backend without seeing each other's
// values.
package storage
