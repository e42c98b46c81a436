package ebitenhost

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/olivierh59500/neuralgraph/engine"
	"github.com/olivierh59500/neuralgraph/settings"
)

// countingCanvas stands in for the ebiten image in tests.
type countingCanvas struct {
	w, h   float64
	clears int
	lines  int
}

func (c *countingCanvas) Size() (float64, float64)                            { return c.w, c.h }
func (c *countingCanvas) Clear(color.Color)                                   { c.clears++ }
func (c *countingCanvas) Line(_, _, _, _, _ float64, _ color.Color)           { c.lines++ }
func (c *countingCanvas) Circle(_, _, _ float64, _ color.Color)               {}
func (c *countingCanvas) Triangle(_, _, _, _, _, _ float64, _ color.Color)    {}
func (c *countingCanvas) Text(string, float64, float64, float64, color.Color) {}

func testHost(t *testing.T, cfg engine.Config) (*Host, *countingCanvas) {
	t.Helper()
	cv := &countingCanvas{w: 320, h: 240}
	h, err := newHost(cv, cfg, Options{
		Preset:       "neural",
		SettingsPath: filepath.Join(t.TempDir(), "config.toml"),
		Seed:         9,
	})
	if err != nil {
		t.Fatalf("newHost: %v", err)
	}
	t.Cleanup(h.Close)
	return h, cv
}

func TestHostSteps(t *testing.T) {
	h, cv := testHost(t, engine.NeuralPreset())

	for i := 0; i < 3; i++ {
		h.sched.Step()
	}
	if cv.clears != 3 {
		t.Errorf("expected 3 frames drawn, got %d", cv.clears)
	}
	if !h.Engine().Running() {
		t.Error("engine should be running")
	}
}

func TestHostCursor(t *testing.T) {
	h, _ := testHost(t, engine.NeuralPreset())

	h.cursor(10, 20)
	if p := h.Engine().Pointer(); p.X != 10 || p.Y != 20 {
		t.Errorf("pointer = %+v", p)
	}
	h.cursor(-1, 20)
	if h.Engine().Pointer() != engine.Sentinel {
		t.Errorf("leaving the window should reset the pointer, got %+v", h.Engine().Pointer())
	}
}

func TestHostLayoutResizes(t *testing.T) {
	h, _ := testHost(t, engine.NeuralPreset())

	w, ht := h.Layout(500, 400)
	if w != 500 || ht != 400 {
		t.Errorf("layout = %dx%d", w, ht)
	}
	if b := h.Engine().Bounds(); b.W != 500 || b.H != 400 {
		t.Errorf("engine bounds = %+v", b)
	}
}

func TestHostToggles(t *testing.T) {
	h, _ := testHost(t, engine.IcebergPreset())

	h.toggleHighContrast()
	h.toggleFaces()
	cfg := h.Engine().Config()
	if !cfg.HighContrast || !cfg.Faces {
		t.Errorf("toggles not applied: contrast %v faces %v", cfg.HighContrast, cfg.Faces)
	}

	h.zoom(5)
	if s := h.Engine().Scale(); s != 1.5 {
		t.Errorf("scale = %v, want 1.5", s)
	}
	h.zoom(-100)
	if s := h.Engine().Scale(); s != engine.MinScale {
		t.Errorf("scale = %v, want %v", s, engine.MinScale)
	}
}

func TestHostSaveLoad(t *testing.T) {
	h, _ := testHost(t, engine.NeuralPreset())

	count := 12
	h.Engine().SetConfig(engine.Patch{ParticleCount: &count})
	if err := h.save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	s, err := settings.Load(h.opts.SettingsPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Engine.ParticleCount == nil || *s.Engine.ParticleCount != 12 {
		t.Errorf("saved particle count = %v", s.Engine.ParticleCount)
	}

	other := 30
	h.Engine().SetConfig(engine.Patch{ParticleCount: &other})
	if err := h.load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if n := len(h.Engine().Points()); n != 12 {
		t.Errorf("points after load = %d, want 12", n)
	}
}
