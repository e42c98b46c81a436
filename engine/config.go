package engine

import (
	"image/color"
)

// Layout selects how the point generator places points.
type Layout int

const (
	// Scatter spreads points uniformly over the bounds.
	Scatter Layout = iota
	// Ring places points around the bounds center with per-point jitter.
	Ring
)

func (l Layout) String() string {
	switch l {
	case Scatter:
		return "scatter"
	case Ring:
		return "ring"
	}
	return "unknown"
}

// Rendering and motion constants shared by both presets.
const (
	SentinelX = -1000.0
	SentinelY = -1000.0

	DefaultGridThreshold = 400

	signalRadius     = 2.5
	signalBlur       = 8.0
	signalBase       = 0.001
	signalByActivity = 0.01
	reflectionAlpha  = 0.3
	reflectionWidth  = 0.5
	codeFontSize     = 12.0
	codeBlur         = 5.0
	MinScale         = 0.1
)

// Palette holds every color the renderer uses.
type Palette struct {
	Particles   []color.NRGBA
	Connections color.NRGBA
	Codes       color.NRGBA
	Core        color.NRGBA
	Signal      color.NRGBA
	// Ice and Reflection are gradient stops along model-space y in [-200,200].
	Ice        []color.NRGBA
	Reflection []color.NRGBA
}

// Config is the per-instance configuration. Interaction and View carry
// behavior and may hold per-instance state, so presets build fresh values.
type Config struct {
	Layout            Layout
	ParticleCount     int
	MaxDistance       float64
	ParticleSize      float64
	ParticleSpeed     float64
	MaxSpeed          float64
	ConnectionOpacity float64
	OpacityCeiling    float64
	LineWidth         float64
	PulseSpeed        float64

	Falloff      bool
	DrawNodes    bool
	Signals      bool
	Reflection   bool
	Gradient     bool
	Faces        bool
	HighContrast bool

	CodeCount int
	CodeSpeed float64

	// GridThreshold is the point count above which edges come from the
	// uniform grid instead of the all-pairs scan. Zero disables the grid.
	GridThreshold int

	Palette     Palette
	Interaction Interaction
	View        ViewTransform
}

// NeuralPreset is the full-viewport particle network with pointer attraction
// and floating code labels.
func NeuralPreset() Config {
	return Config{
		Layout:            Scatter,
		ParticleCount:     80,
		MaxDistance:       120,
		ParticleSize:      3,
		ParticleSpeed:     0.5,
		MaxSpeed:          2,
		ConnectionOpacity: 0.8,
		OpacityCeiling:    0.8,
		LineWidth:         1.2,
		PulseSpeed:        0.02,
		Falloff:           true,
		DrawNodes:         true,
		Signals:           true,
		CodeCount:         15,
		CodeSpeed:         0.3,
		GridThreshold:     DefaultGridThreshold,
		Palette: Palette{
			Particles: []color.NRGBA{
				mustHex("#888888"), mustHex("#999999"), mustHex("#777777"),
				mustHex("#666666"), mustHex("#aaaaaa"), mustHex("#fff"),
			},
			Connections: mustHex("#cccccc"),
			Codes:       mustHex("#888888"),
			Core:        mustHex("#bbbbbb"),
			Signal:      mustHex("#ffffff"),
		},
		Interaction: NewAttract(),
		View:        Static{},
	}
}

// IcebergPreset is the slowly orbiting wireframe with its mirrored
// reflection.
func IcebergPreset() Config {
	return Config{
		Layout:            Ring,
		ParticleCount:     10,
		MaxDistance:       500,
		ParticleSize:      0,
		ParticleSpeed:     0,
		MaxSpeed:          2,
		ConnectionOpacity: 1,
		OpacityCeiling:    1,
		LineWidth:         1,
		PulseSpeed:        0,
		Reflection:        true,
		Gradient:          true,
		GridThreshold:     DefaultGridThreshold,
		Palette: Palette{
			Connections: mustHex("#ffffff"),
			Core:        mustHex("#ffffff"),
			Signal:      mustHex("#ffffff"),
			Codes:       mustHex("#ffffff"),
			Ice: []color.NRGBA{
				mustHex("#E6F3FF"), mustHex("#B3E5FC"), mustHex("#4DD0E1"), mustHex("#00BCD4"),
			},
			Reflection: []color.NRGBA{
				mustHex("#C7E8FF"), mustHex("#9DDCF9"), mustHex("#39C5DA"), mustHex("#00A8C4"),
			},
		},
		Interaction: Inert{Decay: 0.005},
		View:        NewOrbit(),
	}
}

// Preset returns a preset by name.
func Preset(name string) (Config, bool) {
	switch name {
	case "neural", "neural-network", "":
		return NeuralPreset(), true
	case "iceberg":
		return IcebergPreset(), true
	}
	return Config{}, false
}

// Patch is a partial Config; nil fields are left unchanged.
type Patch struct {
	ParticleCount     *int
	MaxDistance       *float64
	ParticleSize      *float64
	ParticleSpeed     *float64
	MaxSpeed          *float64
	ConnectionOpacity *float64
	OpacityCeiling    *float64
	LineWidth         *float64
	PulseSpeed        *float64
	Falloff           *bool
	DrawNodes         *bool
	Signals           *bool
	Reflection        *bool
	Gradient          *bool
	Faces             *bool
	HighContrast      *bool
	CodeCount         *int
	CodeSpeed         *float64
	GridThreshold     *int
	Palette           *Palette
}

// Merge applies p to c. regen reports whether a field that shapes the
// generated point set changed.
func (c Config) Merge(p Patch) (out Config, regen bool) {
	out = c
	setInt := func(dst *int, v *int, shapes bool) {
		if v != nil && *dst != *v {
			*dst = *v
			regen = regen || shapes
		}
	}
	setFloat := func(dst *float64, v *float64, shapes bool) {
		if v != nil && *dst != *v {
			*dst = *v
			regen = regen || shapes
		}
	}
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}

	setInt(&out.ParticleCount, p.ParticleCount, true)
	setFloat(&out.ParticleSize, p.ParticleSize, true)
	setFloat(&out.ParticleSpeed, p.ParticleSpeed, true)

	// the label overlay is reset on its own by Engine.SetConfig
	setInt(&out.CodeCount, p.CodeCount, false)
	setFloat(&out.CodeSpeed, p.CodeSpeed, false)

	setFloat(&out.MaxDistance, p.MaxDistance, false)
	setFloat(&out.MaxSpeed, p.MaxSpeed, false)
	setFloat(&out.ConnectionOpacity, p.ConnectionOpacity, false)
	setFloat(&out.OpacityCeiling, p.OpacityCeiling, false)
	setFloat(&out.LineWidth, p.LineWidth, false)
	setFloat(&out.PulseSpeed, p.PulseSpeed, false)
	setInt(&out.GridThreshold, p.GridThreshold, false)

	setBool(&out.Falloff, p.Falloff)
	setBool(&out.DrawNodes, p.DrawNodes)
	setBool(&out.Signals, p.Signals)
	setBool(&out.Reflection, p.Reflection)
	setBool(&out.Gradient, p.Gradient)
	setBool(&out.Faces, p.Faces)
	setBool(&out.HighContrast, p.HighContrast)

	if p.Palette != nil {
		out.Palette = *p.Palette
		// point colors are drawn at generation time
		regen = true
	}
	if out.ParticleCount < 0 {
		out.ParticleCount = 0
	}
	if out.CodeCount < 0 {
		out.CodeCount = 0
	}
	return out, regen
}
