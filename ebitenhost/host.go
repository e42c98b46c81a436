// Package ebitenhost runs an engine in a desktop window on Ebitengine.
//
// Frames are stepped from Update at the window's tick rate, cursor
// movement and window resizes are forwarded to the engine, and a few keys
// control the running animation:
//
//	Space  pause / resume
//	R      regenerate points
//	H      toggle high contrast
//	F      toggle iceberg faces
//	S      save settings
//	L      load settings
//	wheel  scale
package ebitenhost

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/olivierh59500/neuralgraph/engine"
	"github.com/olivierh59500/neuralgraph/loop"
	"github.com/olivierh59500/neuralgraph/settings"
)

const scaleStep = 0.1

// Options configures a Host.
type Options struct {
	Width, Height int
	Title         string
	// Preset is written to the settings file on save.
	Preset       string
	SettingsPath string
	// Seed makes the animation reproducible; 0 seeds from the clock.
	Seed int64
}

// Host implements ebiten.Game around one engine.
type Host struct {
	eng   *engine.Engine
	sched *loop.Manual
	bus   *loop.Bus
	cv    *Canvas
	opts  Options

	paused bool
	inside bool
	w, h   int
}

// New creates the canvas and engine and starts the engine's frame loop.
// Frames run once Update is called.
func New(cfg engine.Config, opts Options) (*Host, error) {
	cv, err := NewCanvas(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	h, err := newHost(cv, cfg, opts)
	if err != nil {
		return nil, err
	}
	h.cv = cv
	return h, nil
}

func newHost(surface engine.Canvas, cfg engine.Config, opts Options) (*Host, error) {
	sched := loop.NewManual()
	bus := loop.NewBus()

	engOpts := []engine.Option{engine.WithScheduler(sched), engine.WithEvents(bus)}
	if opts.Seed != 0 {
		engOpts = append(engOpts, engine.WithSeed(opts.Seed))
	}
	eng, err := engine.New(surface, cfg, engOpts...)
	if err != nil {
		return nil, err
	}
	if err := eng.Start(); err != nil {
		return nil, err
	}

	w, h := surface.Size()
	return &Host{
		eng:   eng,
		sched: sched,
		bus:   bus,
		opts:  opts,
		w:     int(w),
		h:     int(h),
	}, nil
}

// Engine returns the hosted engine.
func (h *Host) Engine() *engine.Engine {
	return h.eng
}

// Paused reports whether frames are held.
func (h *Host) Paused() bool {
	return h.paused
}

// Update is called each tick by Ebitengine
func (h *Host) Update() error {
	h.handleInput()
	h.cursor(ebiten.CursorPosition())

	if h.paused {
		return nil
	}
	h.sched.Step()
	return nil
}

// Draw is called each frame by Ebitengine
func (h *Host) Draw(screen *ebiten.Image) {
	screen.DrawImage(h.cv.Image(), nil)
}

// Layout follows the window size so resizes reach the engine.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Close stops the engine and drops any pending frame.
func (h *Host) Close() {
	h.eng.Stop()
	h.sched.Close()
}

func (h *Host) resize(w, ht int) {
	if w == h.w && ht == h.h {
		return
	}
	h.w, h.h = w, ht
	if h.cv != nil {
		h.cv.Resize(w, ht)
	}
	h.bus.EmitResize(float64(w), float64(ht))
}

func (h *Host) cursor(x, y int) {
	inside := x >= 0 && y >= 0 && x < h.w && y < h.h
	switch {
	case inside:
		h.bus.EmitPointerMove(float64(x), float64(y))
	case h.inside:
		h.bus.EmitPointerLeave()
	}
	h.inside = inside
}

// handleInput processes keyboard and wheel input
func (h *Host) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		h.paused = !h.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		h.eng.Regenerate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		h.toggleHighContrast()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		h.toggleFaces()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		h.logErr("save settings", h.save())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		h.logErr("load settings", h.load())
	}

	_, wheelY := ebiten.Wheel()
	h.zoom(wheelY)
}

func (h *Host) zoom(wheelY float64) {
	if wheelY == 0 {
		return
	}
	h.eng.SetScale(h.eng.Scale() + wheelY*scaleStep)
}

func (h *Host) toggleHighContrast() {
	on := !h.eng.Config().HighContrast
	h.eng.SetConfig(engine.Patch{HighContrast: &on})
}

func (h *Host) toggleFaces() {
	on := !h.eng.Config().Faces
	h.eng.SetConfig(engine.Patch{Faces: &on})
}

// save writes the running config over the settings file, keeping its
// window and render sections.
func (h *Host) save() error {
	s, err := settings.Load(h.opts.SettingsPath)
	if err != nil {
		return err
	}
	if h.opts.Preset != "" {
		s.Preset = h.opts.Preset
	}
	s.Capture(h.eng.Config())
	if err := settings.Save(h.opts.SettingsPath, s); err != nil {
		return err
	}
	engine.Logger().Info("settings saved", slog.String("path", h.opts.SettingsPath))
	return nil
}

// load applies the settings file's overrides to the running engine. The
// preset itself is not switched.
func (h *Host) load() error {
	s, err := settings.Load(h.opts.SettingsPath)
	if err != nil {
		return err
	}
	p, err := s.Patch(h.eng.Config().Palette)
	if err != nil {
		return err
	}
	h.eng.SetConfig(p)
	engine.Logger().Info("settings loaded", slog.String("path", h.opts.SettingsPath))
	return nil
}

func (h *Host) logErr(what string, err error) {
	if err != nil {
		engine.Logger().Error(what, slog.Any("error", err))
	}
}

// Run opens the window and blocks until it is closed.
func Run(h *Host) error {
	defer h.Close()

	title := h.opts.Title
	if title == "" {
		title = "neuralgraph"
	}
	ebiten.SetWindowSize(h.w, h.h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60) // Target 60 ticks per second

	return ebiten.RunGame(h)
}
