package component

import "errors"

var (
	// ErrUnknownBinding is matched by errors from RemoveEvent for a name no
	// binding carries.
	ErrUnknownBinding = errors.New("component: event binding not found")

	// ErrMountTarget is matched by mount errors under MountError.
	ErrMountTarget = errors.New("component: mount target not found")

	// ErrRender is matched by errors assigning rendered markup.
	ErrRender = errors.New("component: render failed")
)
