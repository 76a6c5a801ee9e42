// Package errors provides coded, actionable error messages for micro.
//
// Every failure the framework reports to a caller (duplicate storage keys,
// unknown event bindings, unmatched mount targets, update cycles) is built
// from a registered code. The code maps to:
//   - A category (runtime, storage, config, protocol, cli)
//   - A short message describing the error
//   - A longer explanation
//
// Package-level sentinels are attached with Wrap so callers can keep using
// the standard errors.Is:
//
//	err := errors.New("M001").
//	    WithDetail(`storage key "todo" is already registered`).
//	    Wrap(storage.ErrDuplicateKey)
//
//	errors.Is(err, storage.ErrDuplicateKey) // true
//
// Format renders the error for a terminal:
//
//	ERROR M001: Storage key already registered
//
//	  storage key "todo" is already registered
//
//	  Hint: Pick a unique key per persisted value
package errors
