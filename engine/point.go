package engine

import (
	"image/color"
	"math"
	"math/rand"
)

// Point is a single simulated node.
type Point struct {
	X, Y     float64 // Position
	VX, VY   float64 // Velocity, per frame
	Size     float64 // Base render radius
	Phase    float64 // Pulse phase, consumed via sin
	Activity float64 // Recent pointer proximity in [0,1]
	Color    color.NRGBA
}

// Speed returns the velocity magnitude.
func (p *Point) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}

// Bounds is the simulated area, [0,W] x [0,H].
type Bounds struct {
	W, H float64
}

// Empty reports whether the bounds are degenerate.
func (b Bounds) Empty() bool {
	return !(b.W > 0 && b.H > 0)
}

// Center returns the middle of the bounds.
func (b Bounds) Center() (float64, float64) {
	return b.W / 2, b.H / 2
}

// Pointer is the last known pointer position in canvas coordinates.
type Pointer struct {
	X, Y float64
}

// Sentinel is the pointer position used when no pointer is over the canvas.
var Sentinel = Pointer{X: SentinelX, Y: SentinelY}

// Inside reports whether the pointer lies within b.
func (p Pointer) Inside(b Bounds) bool {
	return p.X >= 0 && p.X <= b.W && p.Y >= 0 && p.Y <= b.H
}

// Generate creates count points inside b using cfg.Layout. The result is
// deterministic for a given rng state. A non-positive count or degenerate
// bounds yield an empty slice.
func Generate(count int, b Bounds, cfg Config, rng *rand.Rand) []Point {
	if count <= 0 || b.Empty() {
		return []Point{}
	}

	points := make([]Point, count)
	cx, cy := b.Center()
	radius := math.Min(b.W, b.H) / 4

	for i := range points {
		p := &points[i]
		switch cfg.Layout {
		case Ring:
			angle := math.Pi * 2 * float64(i) / float64(count)
			p.X = cx + math.Cos(angle)*radius*(0.5+rng.Float64())
			p.Y = cy + math.Sin(angle)*radius*(0.5+rng.Float64())
		default:
			p.X = rng.Float64() * b.W
			p.Y = rng.Float64() * b.H
		}
		p.VX = (rng.Float64() - 0.5) * cfg.ParticleSpeed
		p.VY = (rng.Float64() - 0.5) * cfg.ParticleSpeed
		p.Size = rng.Float64()*cfg.ParticleSize + 1
		if n := len(cfg.Palette.Particles); n > 0 {
			p.Color = cfg.Palette.Particles[rng.Intn(n)]
		} else {
			p.Color = cfg.Palette.Connections
		}
		p.Phase = rng.Float64() * math.Pi * 2
		if cfg.Layout == Scatter {
			p.Activity = rng.Float64()
		}
	}

	return points
}
