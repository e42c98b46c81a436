package engine

import (
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"time"
)

// FrameID identifies a scheduled frame callback.
type FrameID uint64

// Scheduler runs a callback before the host's next repaint.
type Scheduler interface {
	RequestFrame(fn func()) (FrameID, error)
	CancelFrame(id FrameID)
}

// EventSource delivers host events. Each On method returns a function that
// removes the listener.
type EventSource interface {
	OnResize(fn func(w, h float64)) (cancel func())
	OnPointerMove(fn func(x, y float64)) (cancel func())
	OnPointerLeave(fn func()) (cancel func())
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithScheduler sets the frame scheduler Start needs.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithEvents sets the source of resize and pointer events.
func WithEvents(src EventSource) Option {
	return func(e *Engine) { e.events = src }
}

// WithRand replaces the random source, for reproducible output.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithSeed is WithRand over a fresh source seeded with seed.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// Engine owns one animated particle graph: its points, pointer, config and
// frame loop. It is not safe for concurrent use; every method must run on
// the goroutine that drives the scheduler.
type Engine struct {
	canvas Canvas
	cfg    Config
	rng    *rand.Rand
	sched  Scheduler
	events EventSource

	bounds   Bounds
	pointer  Pointer
	points   []Point
	edges    []Edge
	codes    *Codes
	renderer *Renderer
	scale    float64
	time     float64

	running    bool
	pending    FrameID
	hasPending bool
	cancels    []func()
}

// New creates an engine drawing on canvas. Bounds start at the canvas size
// and points are generated immediately.
func New(canvas Canvas, cfg Config, opts ...Option) (*Engine, error) {
	if canvas == nil || isNilPointer(canvas) {
		return nil, ErrNoCanvas
	}

	e := &Engine{
		canvas:  canvas,
		cfg:     cfg,
		pointer: Sentinel,
		scale:   1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.cfg.Interaction == nil {
		e.cfg.Interaction = Inert{}
	}
	if e.cfg.View == nil {
		e.cfg.View = Static{}
	}

	e.renderer = NewRenderer(e.rng)
	e.codes = &Codes{rng: e.rng}

	w, h := canvas.Size()
	e.bounds = Bounds{W: w, H: h}
	e.Regenerate()

	return e, nil
}

// Start begins the frame loop and subscribes to host events. Starting a
// running engine does nothing. If the first frame cannot be scheduled every
// subscription is released again.
func (e *Engine) Start() (err error) {
	if e.running {
		return nil
	}
	if e.sched == nil {
		return ErrNoScheduler
	}

	defer func() {
		if err != nil {
			e.release()
		}
	}()

	e.subscribe()
	if err = e.schedule(); err != nil {
		return fmt.Errorf("engine: schedule first frame: %w", err)
	}
	e.running = true

	Logger().Info("engine started",
		"layout", e.cfg.Layout.String(),
		"points", len(e.points),
		"width", e.bounds.W,
		"height", e.bounds.H)
	return nil
}

// Stop cancels the pending frame and removes every event listener. It is
// safe to call any number of times.
func (e *Engine) Stop() {
	wasRunning := e.running
	e.running = false
	e.release()
	if wasRunning {
		Logger().Info("engine stopped", "frames", int64(e.time))
	}
}

// Running reports whether the frame loop is active.
func (e *Engine) Running() bool {
	return e.running
}

func (e *Engine) subscribe() {
	if e.events == nil {
		return
	}
	e.cancels = append(e.cancels,
		e.events.OnResize(e.Resize),
		e.events.OnPointerMove(e.PointerMove),
		e.events.OnPointerLeave(e.PointerLeave),
	)
}

func (e *Engine) release() {
	if e.hasPending {
		e.sched.CancelFrame(e.pending)
		e.hasPending = false
	}
	for _, cancel := range e.cancels {
		if cancel != nil {
			cancel()
		}
	}
	e.cancels = nil
}

func (e *Engine) schedule() error {
	id, err := e.sched.RequestFrame(e.tick)
	if err != nil {
		return err
	}
	e.pending = id
	e.hasPending = true
	return nil
}

func (e *Engine) tick() {
	e.hasPending = false
	if !e.running {
		return
	}

	e.Step()

	if err := e.schedule(); err != nil {
		Logger().Error("engine: schedule frame", "err", err)
		e.Stop()
	}
}

// Step runs one frame synchronously: simulate, build edges, render.
func (e *Engine) Step() {
	Advance(e.points, e.pointer, e.bounds, e.cfg, e.cfg.Interaction)
	e.codes.Advance(e.bounds)
	e.cfg.View.Advance()

	e.edges = e.edges[:0]
	if e.cfg.GridThreshold > 0 && len(e.points) > e.cfg.GridThreshold {
		e.edges = AppendEdgesGrid(e.edges, e.points, e.cfg.MaxDistance)
	} else {
		e.edges = AppendEdges(e.edges, e.points, e.cfg.MaxDistance)
	}

	e.renderer.Render(e.canvas, Frame{
		Points: e.points,
		Edges:  e.edges,
		Time:   e.time,
		View:   e.cfg.View.View(e.bounds, e.pointer, e.scale),
		Bounds: e.bounds,
	}, e.cfg)
	if w, h := e.canvas.Size(); w > 0 && h > 0 {
		e.codes.Draw(e.canvas, e.cfg.Palette.Codes)
	}

	e.time++
}

// Resize adopts new bounds and regenerates every point: positions are only
// meaningful relative to the old bounds.
func (e *Engine) Resize(w, h float64) {
	e.bounds = Bounds{W: w, H: h}
	e.Regenerate()
}

// PointerMove records the pointer position in canvas coordinates.
func (e *Engine) PointerMove(x, y float64) {
	e.pointer = Pointer{X: x, Y: y}
}

// PointerLeave parks the pointer at the off-canvas sentinel.
func (e *Engine) PointerLeave() {
	e.pointer = Sentinel
}

// Regenerate replaces the point set and the code labels.
func (e *Engine) Regenerate() {
	e.points = Generate(e.cfg.ParticleCount, e.bounds, e.cfg, e.rng)
	e.codes.Reset(e.cfg.CodeCount, e.bounds, e.cfg.CodeSpeed)
	e.renderer.Reset()
	Logger().Debug("engine regenerated points",
		"points", len(e.points),
		"codes", len(e.codes.Items),
		"width", e.bounds.W,
		"height", e.bounds.H)
}

// SetConfig merges p into the current config, regenerating points when a
// field that shapes them changed.
func (e *Engine) SetConfig(p Patch) {
	cfg, regen := e.cfg.Merge(p)
	relabel := cfg.CodeCount != e.cfg.CodeCount || cfg.CodeSpeed != e.cfg.CodeSpeed
	e.cfg = cfg
	Logger().Debug("engine config merged", "regenerate", regen, "relabel", relabel)
	switch {
	case regen:
		e.Regenerate()
	case relabel:
		e.codes.Reset(e.cfg.CodeCount, e.bounds, e.cfg.CodeSpeed)
	}
}

// isNilPointer catches a typed nil such as (*ggcanvas.Canvas)(nil).
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// Config returns a copy of the current config.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetScale sets the view scale used by transforming views, floored at
// MinScale.
func (e *Engine) SetScale(s float64) {
	if math.IsNaN(s) || s < MinScale {
		s = MinScale
	}
	e.scale = s
}

// Scale returns the current view scale.
func (e *Engine) Scale() float64 {
	return e.scale
}

// Points returns the live point slice. Callers must not keep it across a
// regeneration.
func (e *Engine) Points() []Point {
	return e.points
}

// Edges returns the edges built by the last Step.
func (e *Engine) Edges() []Edge {
	return e.edges
}

// Codes returns the floating label overlay.
func (e *Engine) Codes() *Codes {
	return e.codes
}

// Pointer returns the current pointer state.
func (e *Engine) Pointer() Pointer {
	return e.pointer
}

// Bounds returns the simulated area.
func (e *Engine) Bounds() Bounds {
	return e.bounds
}

// Frame returns the number of frames stepped so far.
func (e *Engine) Frame() int64 {
	return int64(e.time)
}
