package engine

import "errors"

var (
	// ErrNoCanvas is returned by New when no drawing surface is supplied.
	ErrNoCanvas = errors.New("engine: drawing surface not found")

	// ErrNoScheduler is returned by Start when the host has no frame scheduler.
	ErrNoScheduler = errors.New("engine: frame scheduler unavailable")
)
