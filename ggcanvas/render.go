package ggcanvas

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/olivierh59500/neuralgraph/engine"
	"github.com/olivierh59500/neuralgraph/loop"
)

// ErrNoFrames is returned when a render asks for no frames.
var ErrNoFrames = errors.New("ggcanvas: nothing to render")

// pointerStep is the angle the scripted pointer moves per frame.
const pointerStep = 0.02

// Options controls a headless render.
type Options struct {
	Width, Height int
	// Frames is the number of engine frames to run.
	Frames int
	// Every saves one PNG per Every frames; values below 1 save every frame.
	Every int
	// Dir receives frame-0000.png, frame-0001.png, ...
	Dir  string
	Seed int64
	// Pointer moves a pointer in a circle around the center. Without it
	// the pointer stays outside the canvas.
	Pointer bool
}

// Render runs an engine against a gg canvas and saves frames to opts.Dir.
// It returns the written paths. Cancelling ctx stops between frames.
func Render(ctx context.Context, cfg engine.Config, opts Options) ([]string, error) {
	if opts.Frames <= 0 {
		return nil, ErrNoFrames
	}
	every := max(opts.Every, 1)

	cv, err := New(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	defer cv.Close()

	sched := loop.NewManual()
	defer sched.Close()
	bus := loop.NewBus()

	eng, err := engine.New(cv, cfg,
		engine.WithScheduler(sched),
		engine.WithEvents(bus),
		engine.WithSeed(opts.Seed))
	if err != nil {
		return nil, err
	}
	if err := eng.Start(); err != nil {
		return nil, err
	}
	defer eng.Stop()

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, err
	}

	w, h := cv.Size()
	var written []string
	for i := 0; i < opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if opts.Pointer {
			x, y := CirclePath(i, w, h)
			bus.EmitPointerMove(x, y)
		}
		if sched.Step() == 0 {
			return written, fmt.Errorf("ggcanvas: engine stopped at frame %d", i)
		}
		if err := cv.Err(); err != nil {
			return written, fmt.Errorf("ggcanvas: frame %d: %w", i, err)
		}

		if (i+1)%every != 0 {
			continue
		}
		path := filepath.Join(opts.Dir, fmt.Sprintf("frame-%04d.png", len(written)))
		if err := cv.SavePNG(path); err != nil {
			return written, err
		}
		written = append(written, path)
		engine.Logger().Debug("frame saved", slog.String("path", path), slog.Int("frame", i))
	}
	return written, nil
}

// CirclePath is the scripted pointer position for frame i: a circle of a
// third of the short side around the center.
func CirclePath(i int, w, h float64) (x, y float64) {
	r := math.Min(w, h) / 3
	a := float64(i) * pointerStep
	return w/2 + r*math.Cos(a), h/2 + r*math.Sin(a)
}
