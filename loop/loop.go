// Package loop provides host-side implementations of the engine's
// scheduling and event ports for hosts that drive frames themselves.
package loop

import (
	"errors"

	"github.com/olivierh59500/neuralgraph/engine"
)

// ErrClosed is returned by RequestFrame after Close.
var ErrClosed = errors.New("loop: scheduler closed")

type request struct {
	id engine.FrameID
	fn func()
}

// Manual is a frame scheduler stepped explicitly by its owner, once per
// repaint.
type Manual struct {
	next   engine.FrameID
	queue  []request
	closed bool
}

// NewManual returns an open scheduler.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) RequestFrame(fn func()) (engine.FrameID, error) {
	if m.closed {
		return 0, ErrClosed
	}
	m.next++
	m.queue = append(m.queue, request{id: m.next, fn: fn})
	return m.next, nil
}

func (m *Manual) CancelFrame(id engine.FrameID) {
	for i, r := range m.queue {
		if r.id == id {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return
		}
	}
}

// Step runs the callbacks queued before the call and returns how many ran.
// Callbacks requested while stepping wait for the next Step.
func (m *Manual) Step() int {
	batch := m.queue
	m.queue = nil
	for _, r := range batch {
		r.fn()
	}
	return len(batch)
}

// Pending returns the number of queued callbacks.
func (m *Manual) Pending() int {
	return len(m.queue)
}

// Close drops queued callbacks and rejects new ones.
func (m *Manual) Close() {
	m.closed = true
	m.queue = nil
}
