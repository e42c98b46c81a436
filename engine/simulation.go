package engine

import "math"

// Advance moves every point one frame forward in place: integrate, pointer
// interaction, speed clamp, wall reflection, phase. Degenerate bounds leave
// the points untouched.
func Advance(points []Point, ptr Pointer, b Bounds, cfg Config, interact Interaction) {
	if b.Empty() {
		return
	}

	for i := range points {
		p := &points[i]

		p.X += p.VX
		p.Y += p.VY

		if interact != nil {
			interact.Interact(p, ptr)
		}

		if speed := math.Sqrt(p.VX*p.VX + p.VY*p.VY); speed > cfg.MaxSpeed && speed > 0 {
			p.VX = p.VX / speed * cfg.MaxSpeed
			p.VY = p.VY / speed * cfg.MaxSpeed
		}

		// Hard reflect, not toroidal wrap
		if p.X < 0 || p.X > b.W {
			p.VX *= -1
			p.X = math.Max(0, math.Min(b.W, p.X))
		}
		if p.Y < 0 || p.Y > b.H {
			p.VY *= -1
			p.Y = math.Max(0, math.Min(b.H, p.Y))
		}

		p.Phase += cfg.PulseSpeed
	}
}
