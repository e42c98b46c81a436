// Package termhost runs an engine inside a terminal with tcell. Each cell
// is a CellW by CellH block of engine pixels; mouse motion drives the
// pointer.
//
// Keys: Esc, Ctrl-C or q quit; space pauses; r regenerates; h toggles
// high contrast; f toggles iceberg faces.
package termhost

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/neuralgraph/engine"
	"github.com/olivierh59500/neuralgraph/loop"
)

// DefaultFPS is the tick rate when Options.FPS is unset.
const DefaultFPS = 30

// Options configures a Term.
type Options struct {
	FPS int
	// Seed makes the animation reproducible; 0 seeds from the clock.
	Seed int64
}

// Term drives one engine on a tcell screen. Every method except Run must
// be called from the goroutine running Run.
type Term struct {
	screen tcell.Screen
	buf    *Buffer
	eng    *engine.Engine
	sched  *loop.Manual
	bus    *loop.Bus
	opts   Options
	paused bool
}

// New wraps an initialised screen and starts the engine on it.
func New(screen tcell.Screen, cfg engine.Config, opts Options) (*Term, error) {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	cols, rows := screen.Size()
	buf := NewBuffer(cols, rows)
	sched := loop.NewManual()
	bus := loop.NewBus()

	engOpts := []engine.Option{engine.WithScheduler(sched), engine.WithEvents(bus)}
	if opts.Seed != 0 {
		engOpts = append(engOpts, engine.WithSeed(opts.Seed))
	}
	eng, err := engine.New(buf, cfg, engOpts...)
	if err != nil {
		return nil, err
	}
	if err := eng.Start(); err != nil {
		return nil, err
	}

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()

	return &Term{
		screen: screen,
		buf:    buf,
		eng:    eng,
		sched:  sched,
		bus:    bus,
		opts:   opts,
	}, nil
}

// Engine returns the hosted engine.
func (t *Term) Engine() *engine.Engine {
	return t.eng
}

// Buffer returns the cell canvas.
func (t *Term) Buffer() *Buffer {
	return t.buf
}

// Paused reports whether frames are held.
func (t *Term) Paused() bool {
	return t.paused
}

// Frame runs one engine frame and shows it.
func (t *Term) Frame() {
	if t.paused {
		return
	}
	t.sched.Step()
	t.buf.Flush(t.screen)
	t.screen.Show()
}

// HandleEvent applies one tcell event. It returns false when the user
// asked to quit.
func (t *Term) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev.Key(), ev.Rune())

	case *tcell.EventMouse:
		cx, cy := ev.Position()
		// center of the cell
		t.bus.EmitPointerMove(float64(cx*CellW+CellW/2), float64(cy*CellH+CellH/2))

	case *tcell.EventFocus:
		if !ev.Focused {
			t.bus.EmitPointerLeave()
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.buf.Resize(cols, rows)
		w, h := t.buf.Size()
		t.bus.EmitResize(w, h)
		t.screen.Sync()
	}
	return true
}

func (t *Term) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch r {
	case 'q':
		return false
	case ' ':
		t.paused = !t.paused
	case 'r':
		t.eng.Regenerate()
	case 'h':
		on := !t.eng.Config().HighContrast
		t.eng.SetConfig(engine.Patch{HighContrast: &on})
	case 'f':
		on := !t.eng.Config().Faces
		t.eng.SetConfig(engine.Patch{Faces: &on})
	}
	return true
}

// Run polls events and draws frames until ctx is done or the user quits.
// The caller still owns the screen and must Fini it.
func (t *Term) Run(ctx context.Context) error {
	defer t.Close()

	ticker := time.NewTicker(time.Second / time.Duration(t.opts.FPS))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				// screen finalised
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	engine.Logger().Info("terminal host running", slog.Int("fps", t.opts.FPS))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			if !t.HandleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			t.Frame()
		}
	}
}

// Close stops the engine.
func (t *Term) Close() {
	t.eng.Stop()
	t.sched.Close()
}
