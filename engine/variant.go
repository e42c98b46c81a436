package engine

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Interaction applies the pointer's influence to one point per frame.
type Interaction interface {
	Interact(p *Point, ptr Pointer)
}

// Attract pulls points toward the pointer inside Radius and raises their
// activity; outside it activity decays.
type Attract struct {
	Radius   float64
	Strength float64
	Rise     float64
	Decay    float64
}

// NewAttract returns the neural network's tuned attraction.
func NewAttract() Attract {
	return Attract{Radius: 100, Strength: 0.001, Rise: 0.02, Decay: 0.005}
}

func (a Attract) Interact(p *Point, ptr Pointer) {
	dx := ptr.X - p.X
	dy := ptr.Y - p.Y
	distance := math.Sqrt(dx*dx + dy*dy)

	if distance < a.Radius {
		force := (a.Radius - distance) / a.Radius
		p.VX += dx * force * a.Strength
		p.VY += dy * force * a.Strength
		p.Activity = math.Min(1, p.Activity+a.Rise)
	} else {
		p.Activity = math.Max(0, p.Activity-a.Decay)
	}
	p.Activity = clamp01(p.Activity)
}

// Inert ignores the pointer; activity only decays.
type Inert struct {
	Decay float64
}

func (n Inert) Interact(p *Point, _ Pointer) {
	p.Activity = clamp01(p.Activity - n.Decay)
}

// View is an affine view of canvas space: scale and optional y mirror about
// (CX,CY), then rotation, then translation by (OX,OY).
type View struct {
	CX, CY   float64
	OX, OY   float64
	Rotation float64
	Scale    float64
	MirrorY  bool
}

// Identity returns a view that leaves coordinates untouched.
func Identity() View {
	return View{Scale: 1}
}

// Apply maps a canvas-space point through the view.
func (v View) Apply(x, y float64) (float64, float64) {
	mx := (x - v.CX) * v.Scale
	my := (y - v.CY) * v.Scale
	if v.MirrorY {
		my = -my
	}
	sin, cos := math.Sincos(v.Rotation)
	return v.CX + v.OX + mx*cos - my*sin, v.CY + v.OY + mx*sin + my*cos
}

// Mirrored returns the reflection of v across its horizontal axis.
func (v View) Mirrored() View {
	v.MirrorY = !v.MirrorY
	v.Rotation = -v.Rotation
	return v
}

// ViewTransform is a render-time transform. It never mutates point state.
type ViewTransform interface {
	// Advance moves the transform one frame forward.
	Advance()
	View(b Bounds, ptr Pointer, scale float64) View
}

// Static draws points where they are.
type Static struct{}

func (Static) Advance() {}

func (Static) View(Bounds, Pointer, float64) View { return Identity() }

// Orbit sways the scene around the bounds center and leans toward the
// pointer.
type Orbit struct {
	Speed  float64 // angle step per frame
	Drift  float64 // idle offset amplitude
	Follow float64 // offset per unit of normalised pointer
	Tilt   float64 // rotation amplitude, radians

	angle float64
}

// NewOrbit returns the iceberg's tuned orbit.
func NewOrbit() *Orbit {
	return &Orbit{Speed: 0.005, Drift: 20, Follow: 30, Tilt: 0.01}
}

func (o *Orbit) Advance() { o.angle += o.Speed }

// Angle returns the accumulated orbit angle.
func (o *Orbit) Angle() float64 { return o.angle }

func (o *Orbit) View(b Bounds, ptr Pointer, scale float64) View {
	nx, ny := normalizedPointer(ptr, b)
	cx, cy := b.Center()
	return View{
		CX:       cx,
		CY:       cy,
		OX:       math.Sin(o.angle)*o.Drift + nx*o.Follow,
		OY:       math.Cos(o.angle)*o.Drift + ny*o.Follow,
		Rotation: math.Sin(o.angle) * o.Tilt,
		Scale:    scale,
	}
}

// NoiseDrift is an Orbit variant whose idle sway follows Perlin noise
// instead of a circle.
type NoiseDrift struct {
	Speed  float64
	Drift  float64
	Follow float64
	Tilt   float64

	t     float64
	noise *perlin.Perlin
}

// NewNoiseDrift seeds the noise field.
func NewNoiseDrift(seed int64) *NoiseDrift {
	return &NoiseDrift{
		Speed:  0.005,
		Drift:  20,
		Follow: 30,
		Tilt:   0.01,
		noise:  perlin.NewPerlin(2, 2, 3, seed),
	}
}

func (n *NoiseDrift) Advance() { n.t += n.Speed }

func (n *NoiseDrift) View(b Bounds, ptr Pointer, scale float64) View {
	nx, ny := normalizedPointer(ptr, b)
	cx, cy := b.Center()
	// noise amplitude is roughly half of sin's, hence the doubling
	return View{
		CX:       cx,
		CY:       cy,
		OX:       n.noise.Noise2D(n.t, 0.5)*2*n.Drift + nx*n.Follow,
		OY:       n.noise.Noise2D(0.5, n.t)*2*n.Drift + ny*n.Follow,
		Rotation: n.noise.Noise2D(n.t, n.t+0.5) * 2 * n.Tilt,
		Scale:    scale,
	}
}

// normalizedPointer maps the pointer to [-1,1] on both axes, or (0,0) when
// it is outside the bounds.
func normalizedPointer(ptr Pointer, b Bounds) (float64, float64) {
	if b.Empty() || !ptr.Inside(b) {
		return 0, 0
	}
	return (ptr.X/b.W - 0.5) * 2, (ptr.Y/b.H - 0.5) * 2
}
