package engine_test

import (
	"errors"
	"math"
	"testing"

	"github.com/olivierh59500/neuralgraph/engine"
	"github.com/olivierh59500/neuralgraph/loop"
)

type failingScheduler struct {
	cancels int
}

var errNoFrames = errors.New("no frames today")

func (f *failingScheduler) RequestFrame(func()) (engine.FrameID, error) { return 0, errNoFrames }
func (f *failingScheduler) CancelFrame(engine.FrameID)                  { f.cancels++ }

func newEngine(t *testing.T, cfg engine.Config) (*engine.Engine, *engine.RecordingCanvas, *loop.Manual, *loop.Bus) {
	t.Helper()
	cv := &engine.RecordingCanvas{W: 640, H: 480}
	sched := loop.NewManual()
	bus := loop.NewBus()
	e, err := engine.New(cv, cfg,
		engine.WithScheduler(sched),
		engine.WithEvents(bus),
		engine.WithSeed(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, cv, sched, bus
}

func TestNewRequiresCanvas(t *testing.T) {
	_, err := engine.New(nil, engine.NeuralPreset())
	if !errors.Is(err, engine.ErrNoCanvas) {
		t.Errorf("expected ErrNoCanvas, got %v", err)
	}

	var cv *engine.RecordingCanvas
	if _, err := engine.New(cv, engine.NeuralPreset()); !errors.Is(err, engine.ErrNoCanvas) {
		t.Errorf("typed nil canvas: expected ErrNoCanvas, got %v", err)
	}
}

func TestStartRequiresScheduler(t *testing.T) {
	bus := loop.NewBus()
	e, err := engine.New(&engine.RecordingCanvas{W: 10, H: 10}, engine.NeuralPreset(), engine.WithEvents(bus))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Start(); !errors.Is(err, engine.ErrNoScheduler) {
		t.Errorf("expected ErrNoScheduler, got %v", err)
	}
	if bus.Listeners() != 0 {
		t.Errorf("failed start left %d listeners", bus.Listeners())
	}
}

func TestStartFailureReleasesListeners(t *testing.T) {
	bus := loop.NewBus()
	sched := &failingScheduler{}
	e, err := engine.New(&engine.RecordingCanvas{W: 10, H: 10}, engine.NeuralPreset(),
		engine.WithScheduler(sched), engine.WithEvents(bus))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = e.Start()
	if !errors.Is(err, errNoFrames) {
		t.Fatalf("expected wrapped scheduler error, got %v", err)
	}
	if e.Running() {
		t.Error("engine should not be running after a failed start")
	}
	if bus.Listeners() != 0 {
		t.Errorf("failed start left %d listeners", bus.Listeners())
	}
}

func TestStartStopIdempotent(t *testing.T) {
	e, _, sched, bus := newEngine(t, engine.NeuralPreset())

	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if sched.Pending() != 1 {
		t.Errorf("expected 1 pending frame, got %d", sched.Pending())
	}
	if bus.Listeners() != 3 {
		t.Errorf("expected 3 listeners, got %d", bus.Listeners())
	}

	e.Stop()
	e.Stop()

	if sched.Pending() != 0 {
		t.Errorf("stop left %d pending frames", sched.Pending())
	}
	if bus.Listeners() != 0 {
		t.Errorf("stop left %d listeners", bus.Listeners())
	}
	if e.Running() {
		t.Error("engine still running after Stop")
	}
}

func TestFrameLoop(t *testing.T) {
	e, cv, sched, _ := newEngine(t, engine.NeuralPreset())
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer e.Stop()

	for i := 0; i < 10; i++ {
		if n := sched.Step(); n != 1 {
			t.Fatalf("step %d ran %d callbacks", i, n)
		}
	}
	if e.Frame() != 10 {
		t.Errorf("frame = %d, want 10", e.Frame())
	}
	if n := cv.Count("clear"); n != 10 {
		t.Errorf("expected a clear per frame, got %d", n)
	}
	if cv.Count("text") == 0 {
		t.Error("expected code labels to be drawn")
	}
	if len(e.Points()) != 80 {
		t.Errorf("point count = %d, want 80", len(e.Points()))
	}
}

func TestStopDuringLoop(t *testing.T) {
	e, _, sched, _ := newEngine(t, engine.NeuralPreset())
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	sched.Step()
	e.Stop()

	if n := sched.Step(); n != 0 {
		t.Errorf("stopped engine ran %d callbacks", n)
	}
	if e.Frame() != 1 {
		t.Errorf("frame = %d, want 1", e.Frame())
	}
}

// onceScheduler grants one frame and refuses every later request.
type onceScheduler struct {
	fn      func()
	granted bool
}

func (o *onceScheduler) RequestFrame(fn func()) (engine.FrameID, error) {
	if o.granted {
		return 0, errNoFrames
	}
	o.granted = true
	o.fn = fn
	return 1, nil
}

func (o *onceScheduler) CancelFrame(engine.FrameID) {}

func TestRescheduleFailureStopsEngine(t *testing.T) {
	bus := loop.NewBus()
	sched := &onceScheduler{}
	e, err := engine.New(&engine.RecordingCanvas{W: 100, H: 100}, engine.NeuralPreset(),
		engine.WithScheduler(sched), engine.WithEvents(bus), engine.WithSeed(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	sched.fn()

	if e.Running() {
		t.Error("engine should stop when the next frame cannot be scheduled")
	}
	if e.Frame() != 1 {
		t.Errorf("frame = %d, want 1", e.Frame())
	}
	if bus.Listeners() != 0 {
		t.Errorf("listeners left after a failed reschedule: %d", bus.Listeners())
	}
}

func TestEventsDriveEngine(t *testing.T) {
	e, _, _, bus := newEngine(t, engine.NeuralPreset())
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer e.Stop()

	bus.EmitPointerMove(12, 34)
	if p := e.Pointer(); p.X != 12 || p.Y != 34 {
		t.Errorf("pointer = %+v", p)
	}
	bus.EmitPointerLeave()
	if p := e.Pointer(); p != engine.Sentinel {
		t.Errorf("pointer after leave = %+v, want sentinel", p)
	}

	bus.EmitResize(300, 200)
	if b := e.Bounds(); b.W != 300 || b.H != 200 {
		t.Errorf("bounds = %+v", b)
	}
	for i, p := range e.Points() {
		if p.X < 0 || p.X > 300 || p.Y < 0 || p.Y > 200 {
			t.Fatalf("point %d outside the new bounds: (%v, %v)", i, p.X, p.Y)
		}
	}
	if len(e.Points()) != 80 {
		t.Errorf("resize changed the point count to %d", len(e.Points()))
	}

	bus.EmitResize(0, 0)
	if len(e.Points()) != 0 {
		t.Errorf("zero-size resize should leave no points, got %d", len(e.Points()))
	}
}

func TestEventsIgnoredAfterStop(t *testing.T) {
	e, _, _, bus := newEngine(t, engine.NeuralPreset())
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	e.Stop()

	bus.EmitPointerMove(5, 5)
	if e.Pointer() != engine.Sentinel {
		t.Errorf("stopped engine still tracks the pointer: %+v", e.Pointer())
	}
}

func TestSetConfig(t *testing.T) {
	e, _, _, _ := newEngine(t, engine.NeuralPreset())

	count := 25
	e.SetConfig(engine.Patch{ParticleCount: &count})
	if len(e.Points()) != 25 {
		t.Errorf("point count = %d, want 25 after patch", len(e.Points()))
	}

	before := e.Points()[0]
	dist := 60.0
	e.SetConfig(engine.Patch{MaxDistance: &dist})
	if e.Points()[0] != before {
		t.Error("changing the distance should not regenerate points")
	}
	if e.Config().MaxDistance != 60 {
		t.Errorf("distance = %v", e.Config().MaxDistance)
	}
}

func TestSetConfigCodesOnly(t *testing.T) {
	e, _, _, _ := newEngine(t, engine.NeuralPreset())
	before := e.Points()[0]

	speed, labels := 0.2, 4
	e.SetConfig(engine.Patch{CodeSpeed: &speed, CodeCount: &labels})
	if e.Points()[0] != before {
		t.Error("changing the labels should not regenerate points")
	}
	items := e.Codes().Items
	if len(items) != 4 {
		t.Fatalf("codes = %d, want 4", len(items))
	}
	for i, c := range items {
		if math.Abs(c.VX) > speed/2 || math.Abs(c.VY) > speed/2 {
			t.Errorf("code %d velocity (%v, %v) exceeds speed %v", i, c.VX, c.VY, speed)
		}
	}
}

func TestSetScale(t *testing.T) {
	e, _, _, _ := newEngine(t, engine.IcebergPreset())
	e.SetScale(2)
	if e.Scale() != 2 {
		t.Errorf("scale = %v", e.Scale())
	}
	e.SetScale(-1)
	if e.Scale() != engine.MinScale {
		t.Errorf("scale = %v, want floor %v", e.Scale(), engine.MinScale)
	}
}

func TestIcebergFrame(t *testing.T) {
	e, cv, sched, _ := newEngine(t, engine.IcebergPreset())
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer e.Stop()

	sched.Step()
	if len(e.Edges()) == 0 {
		t.Fatal("expected iceberg edges")
	}
	// every edge plus its reflection, no nodes
	if got, want := cv.Count("line"), 2*len(e.Edges()); got != want {
		t.Errorf("lines = %d, want %d", got, want)
	}
	if cv.Count("circle") != 0 {
		t.Error("iceberg should not draw nodes")
	}
}

func TestZeroSizeCanvas(t *testing.T) {
	cv := &engine.RecordingCanvas{}
	sched := loop.NewManual()
	e, err := engine.New(cv, engine.NeuralPreset(), engine.WithScheduler(sched), engine.WithSeed(3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer e.Stop()

	for i := 0; i < 5; i++ {
		sched.Step()
	}
	if len(cv.Ops) != 0 {
		t.Errorf("zero-size canvas received %d ops", len(cv.Ops))
	}
	if e.Frame() != 5 {
		t.Errorf("frames = %d, want 5", e.Frame())
	}
}
