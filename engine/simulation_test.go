package engine

import (
	"math"
	"math/rand"
	"testing"
)

const eps = 1e-9

func TestAdvanceInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	b := Bounds{W: 400, H: 300}
	cfg := NeuralPreset()
	cfg.ParticleSpeed = 8 // start well above MaxSpeed
	points := Generate(120, b, cfg, rng)
	interact := NewAttract()

	ptr := Sentinel
	for frame := 0; frame < 2000; frame++ {
		// wander in and out of the canvas
		switch {
		case frame%97 == 0:
			ptr = Sentinel
		case frame%5 == 0:
			ptr = Pointer{X: rng.Float64()*b.W*1.4 - b.W*0.2, Y: rng.Float64()*b.H*1.4 - b.H*0.2}
		}

		Advance(points, ptr, b, cfg, interact)

		for i := range points {
			p := &points[i]
			if s := p.Speed(); s > cfg.MaxSpeed+eps {
				t.Fatalf("frame %d point %d speed %v > %v", frame, i, s, cfg.MaxSpeed)
			}
			if p.X < 0 || p.X > b.W || p.Y < 0 || p.Y > b.H {
				t.Fatalf("frame %d point %d escaped: (%v, %v)", frame, i, p.X, p.Y)
			}
			if p.Activity < 0 || p.Activity > 1 {
				t.Fatalf("frame %d point %d activity %v", frame, i, p.Activity)
			}
		}
	}
}

func TestAdvancePointerFarAway(t *testing.T) {
	b := Bounds{W: 800, H: 600}
	cfg := NeuralPreset()
	points := Generate(40, b, cfg, rand.New(rand.NewSource(5)))
	// decay is 0.005 per frame, so 100 frames clear at most 0.5. Generated
	// points start with activity up to 1 and need 200.
	for i := range points {
		points[i].Activity = 0.5
	}

	for i := 0; i < 100; i++ {
		Advance(points, Sentinel, b, cfg, NewAttract())
	}
	for i, p := range points {
		if p.Activity > eps {
			t.Errorf("point %d activity = %v after 100 ticks, want 0", i, p.Activity)
		}
	}

	points[0].Activity = 1
	for i := 0; i < 200; i++ {
		Advance(points, Sentinel, b, cfg, NewAttract())
	}
	if points[0].Activity > eps {
		t.Errorf("activity = %v after 200 ticks from 1, want 0", points[0].Activity)
	}
}

func TestAdvancePointerAdjacent(t *testing.T) {
	b := Bounds{W: 1000, H: 1000}
	cfg := NeuralPreset()
	points := []Point{
		{X: 500, Y: 500},
		{X: 100, Y: 100},
		{X: 900, Y: 100},
		{X: 100, Y: 900},
		{X: 900, Y: 900},
	}
	ptr := Pointer{X: 520, Y: 500}

	for i := 0; i < 50; i++ {
		Advance(points, ptr, b, cfg, NewAttract())
	}

	for i := 1; i < len(points); i++ {
		if !(points[0].Activity > points[i].Activity) {
			t.Errorf("P.activity %v not greater than point %d activity %v", points[0].Activity, i, points[i].Activity)
		}
	}
	if math.Abs(points[0].Activity-1) > eps {
		t.Errorf("P.activity = %v, want 1 after 50 rises of 0.02", points[0].Activity)
	}
}

func TestAdvanceWallBounce(t *testing.T) {
	b := Bounds{W: 200, H: 200}
	cfg := NeuralPreset()
	points := []Point{{X: b.W - 1, Y: 100, VX: 5}}

	Advance(points, Sentinel, b, cfg, NewAttract())

	p := points[0]
	if p.VX >= 0 {
		t.Errorf("vx = %v, want negative after hitting the wall", p.VX)
	}
	if p.X > b.W {
		t.Errorf("x = %v, want <= %v", p.X, b.W)
	}
}

func TestAdvanceSpeedClampKeepsDirection(t *testing.T) {
	b := Bounds{W: 1000, H: 1000}
	cfg := NeuralPreset()
	points := []Point{{X: 500, Y: 500, VX: 3, VY: 4}}

	Advance(points, Sentinel, b, cfg, nil)

	p := points[0]
	if math.Abs(p.Speed()-cfg.MaxSpeed) > eps {
		t.Errorf("speed = %v, want %v", p.Speed(), cfg.MaxSpeed)
	}
	if math.Abs(p.VX/p.VY-0.75) > eps {
		t.Errorf("direction changed: (%v, %v)", p.VX, p.VY)
	}
}

func TestAdvancePhase(t *testing.T) {
	b := Bounds{W: 100, H: 100}
	cfg := NeuralPreset()
	points := []Point{{X: 50, Y: 50, Phase: 1}}

	for i := 0; i < 10; i++ {
		Advance(points, Sentinel, b, cfg, Inert{})
	}
	if want := 1 + 10*cfg.PulseSpeed; math.Abs(points[0].Phase-want) > eps {
		t.Errorf("phase = %v, want %v", points[0].Phase, want)
	}
}

func TestAdvanceDegenerateBounds(t *testing.T) {
	points := []Point{{X: 10, Y: 10, VX: 1, VY: 1}}
	Advance(points, Sentinel, Bounds{}, NeuralPreset(), NewAttract())
	if points[0].X != 10 || points[0].Y != 10 {
		t.Errorf("point moved inside degenerate bounds: %+v", points[0])
	}
}

func TestInertDecays(t *testing.T) {
	p := Point{Activity: 0.01}
	Inert{Decay: 0.005}.Interact(&p, Pointer{})
	Inert{Decay: 0.005}.Interact(&p, Pointer{})
	Inert{Decay: 0.005}.Interact(&p, Pointer{})
	if p.Activity != 0 {
		t.Errorf("activity = %v, want 0", p.Activity)
	}
}
