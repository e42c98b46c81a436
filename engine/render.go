package engine

import (
	"image/color"
	"math"
	"math/rand"
)

// Canvas is the drawing surface a host provides. Colors carry their own
// alpha; a nil background clears to transparent.
type Canvas interface {
	Size() (w, h float64)
	Clear(bg color.Color)
	Line(x1, y1, x2, y2, width float64, c color.Color)
	Circle(x, y, r float64, c color.Color)
	Triangle(x1, y1, x2, y2, x3, y3 float64, c color.Color)
	Text(s string, x, y, size float64, c color.Color)
}

// Frame is everything one render pass reads.
type Frame struct {
	Points []Point
	Edges  []Edge
	Time   float64
	View   View
	Bounds Bounds
}

var (
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black = color.NRGBA{A: 0xff}

	iceOffsets = []float64{0, 0.3, 0.7, 1}
)

const (
	gradientSpan = 200.0
	faceSpeed    = 0.003
	faceAlpha    = 0.4
	faceOutline  = 0.8
	glowRings    = 3
	glowAlpha    = 0.12
)

// Renderer paints a Frame. It owns the randomness for signals and the
// faces cache, nothing else.
type Renderer struct {
	rng      *rand.Rand
	faces    Faces
	faceTime float64
}

// NewRenderer returns a renderer drawing signals from rng.
func NewRenderer(rng *rand.Rand) *Renderer {
	return &Renderer{rng: rng}
}

// Reset forgets cached faces; call it after regenerating points.
func (r *Renderer) Reset() {
	r.faces.Invalidate()
}

// EdgeOpacity is the falloff opacity of an edge of length distance whose
// endpoints have the given mean activity.
func EdgeOpacity(distance, activity, time float64, cfg Config) float64 {
	if cfg.MaxDistance <= 0 {
		return 0
	}
	opacity := (1 - distance/cfg.MaxDistance) * cfg.ConnectionOpacity
	pulse := math.Sin(time*0.01+distance*0.01)*0.3 + 0.7
	final := opacity * pulse * (0.5 + activity*0.5)
	return math.Max(0, math.Min(final, cfg.OpacityCeiling))
}

// Render clears c and draws faces, edges, the reflection and nodes, in that
// order. A zero-size canvas is left untouched.
func (r *Renderer) Render(c Canvas, f Frame, cfg Config) {
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		return
	}

	if cfg.HighContrast {
		c.Clear(black)
	} else {
		c.Clear(nil)
	}

	if cfg.Faces && !cfg.HighContrast {
		r.drawFaces(c, f, f.View)
	}
	r.drawEdges(c, f, cfg, f.View, false)
	if cfg.Reflection && !cfg.Faces {
		r.drawEdges(c, f, cfg, f.View.Mirrored(), true)
	}
	if cfg.DrawNodes {
		r.drawNodes(c, f, cfg, f.View)
	}
}

func (r *Renderer) drawEdges(c Canvas, f Frame, cfg Config, v View, reflected bool) {
	width, alphaScale, stops := cfg.LineWidth, 1.0, cfg.Palette.Ice
	if reflected {
		width, alphaScale, stops = reflectionWidth, reflectionAlpha, cfg.Palette.Reflection
	}
	_, cy := f.Bounds.Center()

	for _, e := range f.Edges {
		if e.Distance >= cfg.MaxDistance {
			continue
		}
		a, b := f.Points[e.A], f.Points[e.B]
		activity := (a.Activity + b.Activity) / 2

		alpha := cfg.ConnectionOpacity
		if cfg.Falloff {
			alpha = EdgeOpacity(e.Distance, activity, f.Time, cfg)
		}

		col := cfg.Palette.Connections
		switch {
		case cfg.HighContrast:
			col = white
		case cfg.Gradient && len(stops) > 0:
			mid := (a.Y+b.Y)/2 - cy
			col = gradientAt(stops, iceOffsets[:min(len(stops), len(iceOffsets))], (mid+gradientSpan)/(2*gradientSpan))
		}

		x1, y1 := v.Apply(a.X, a.Y)
		x2, y2 := v.Apply(b.X, b.Y)
		c.Line(x1, y1, x2, y2, width, fade(col, alpha*alphaScale))

		if cfg.Signals && !reflected && r.rng.Float64() < signalBase+activity*signalByActivity {
			r.drawSignal(c, x1, y1, x2, y2, f.Time, cfg.Palette.Signal)
		}
	}
}

// drawSignal paints a dot travelling from the first endpoint to the second
// once per 50 frames.
func (r *Renderer) drawSignal(c Canvas, x1, y1, x2, y2, time float64, col color.NRGBA) {
	progress := math.Mod(time*0.02, 1)
	x := x1 + (x2-x1)*progress
	y := y1 + (y2-y1)*progress
	alpha := math.Sin(progress*math.Pi) * 0.9

	glow(c, x, y, signalRadius, signalBlur, col, alpha)
	c.Circle(x, y, signalRadius, fade(col, alpha))
}

func (r *Renderer) drawNodes(c Canvas, f Frame, cfg Config, v View) {
	for _, p := range f.Points {
		pulseScale := 1 + math.Sin(p.Phase)*0.3*p.Activity
		size := p.Size * pulseScale * v.Scale
		x, y := v.Apply(p.X, p.Y)

		col := p.Color
		if cfg.HighContrast {
			col = white
		}
		alpha := 0.7 + p.Activity*0.3

		glow(c, x, y, size, 10+p.Activity*15, col, alpha)
		c.Circle(x, y, size, fade(col, alpha))
		c.Circle(x, y, size*0.3, fade(cfg.Palette.Core, 0.9))
	}
}

func (r *Renderer) drawFaces(c Canvas, f Frame, v View) {
	r.faceTime += faceSpeed * 0.5

	cx, cy := f.Bounds.Center()
	for i, face := range r.faces.Of(f.Points) {
		area, mx, my := face.geometry(f.Points, cx, cy)

		hue := 180 + float64(int(math.Floor((mx+my)/100))%40)
		lightness := 65 + float64(int(math.Floor(area/1000))%3)*8
		shift := math.Sin(r.faceTime+float64(i)*0.3) * 5

		var xs, ys [3]float64
		for k, idx := range face {
			xs[k], ys[k] = v.Apply(corner(f.Points, idx))
		}
		c.Triangle(xs[0], ys[0], xs[1], ys[1], xs[2], ys[2], hsla(hue+shift, 50, lightness, faceAlpha))

		edge := hsla(hue+15, 30, 85, 0.3)
		for k := 0; k < 3; k++ {
			n := (k + 1) % 3
			c.Line(xs[k], ys[k], xs[n], ys[n], faceOutline, edge)
		}
	}
}

// glow approximates a canvas shadow blur with concentric translucent
// circles.
func glow(c Canvas, x, y, r, blur float64, col color.NRGBA, alpha float64) {
	if blur <= 0 || alpha <= 0 {
		return
	}
	for k := glowRings; k >= 1; k-- {
		c.Circle(x, y, r+blur*float64(k)/glowRings, fade(col, alpha*glowAlpha))
	}
}
