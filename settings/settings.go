package settings

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/olivierh59500/neuralgraph/engine"
)

var (
	// ErrUnknownPreset is returned when the preset name matches no engine preset.
	ErrUnknownPreset = errors.New("settings: unknown preset")
	// ErrUnknownView is returned for a view other than static, orbit or noise.
	ErrUnknownView = errors.New("settings: unknown view")
)

// Settings is the on-disk configuration of every host.
type Settings struct {
	Preset  string          `toml:"preset"`
	Seed    int64           `toml:"seed"`
	Window  WindowSettings  `toml:"window"`
	Render  RenderSettings  `toml:"render"`
	Engine  EngineSettings  `toml:"engine"`
	Palette PaletteSettings `toml:"palette"`
}

// WindowSettings controls the window host.
type WindowSettings struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// RenderSettings controls headless PNG export.
type RenderSettings struct {
	Frames int    `toml:"frames"`
	Every  int    `toml:"every"`
	Out    string `toml:"out"`
}

// EngineSettings overrides preset fields. Unset keys keep the preset value.
type EngineSettings struct {
	ParticleCount     *int     `toml:"particle_count,omitempty"`
	MaxDistance       *float64 `toml:"max_distance,omitempty"`
	ParticleSize      *float64 `toml:"particle_size,omitempty"`
	ParticleSpeed     *float64 `toml:"particle_speed,omitempty"`
	MaxSpeed          *float64 `toml:"max_speed,omitempty"`
	ConnectionOpacity *float64 `toml:"connection_opacity,omitempty"`
	OpacityCeiling    *float64 `toml:"opacity_ceiling,omitempty"`
	LineWidth         *float64 `toml:"line_width,omitempty"`
	PulseSpeed        *float64 `toml:"pulse_speed,omitempty"`
	Falloff           *bool    `toml:"falloff,omitempty"`
	DrawNodes         *bool    `toml:"draw_nodes,omitempty"`
	Signals           *bool    `toml:"signals,omitempty"`
	Reflection        *bool    `toml:"reflection,omitempty"`
	Gradient          *bool    `toml:"gradient,omitempty"`
	Faces             *bool    `toml:"faces,omitempty"`
	HighContrast      *bool    `toml:"high_contrast,omitempty"`
	CodeCount         *int     `toml:"code_count,omitempty"`
	CodeSpeed         *float64 `toml:"code_speed,omitempty"`
	GridThreshold     *int     `toml:"grid_threshold,omitempty"`
	// View replaces the preset's view motion: "static", "orbit" or "noise".
	View string `toml:"view,omitempty"`
}

// PaletteSettings holds hex colors (#rgb, #rrggbb or #rrggbbaa). Empty
// entries keep the preset colors.
type PaletteSettings struct {
	Particles   []string `toml:"particles,omitempty"`
	Connections string   `toml:"connections,omitempty"`
	Codes       string   `toml:"codes,omitempty"`
	Core        string   `toml:"core,omitempty"`
	Signal      string   `toml:"signal,omitempty"`
	Ice         []string `toml:"ice,omitempty"`
	Reflection  []string `toml:"reflection,omitempty"`
}

// Default returns the settings used when no file exists.
func Default() *Settings {
	return &Settings{
		Preset: "neural",
		Window: WindowSettings{Width: 800, Height: 600, Title: "neuralgraph"},
		Render: RenderSettings{Frames: 120, Every: 10, Out: "frames"},
	}
}

// Dir returns the neuralgraph config directory.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "neuralgraph")
}

// Path returns the default settings file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path, creating the directory.
func Save(path string, s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(s)
}

// Config resolves the preset and applies every override on top of it.
func (s *Settings) Config() (engine.Config, error) {
	cfg, ok := engine.Preset(s.Preset)
	if !ok {
		return engine.Config{}, fmt.Errorf("%w: %q", ErrUnknownPreset, s.Preset)
	}
	p, err := s.Patch(cfg.Palette)
	if err != nil {
		return engine.Config{}, err
	}
	cfg, _ = cfg.Merge(p)

	switch s.Engine.View {
	case "":
	case "static":
		cfg.View = engine.Static{}
	case "orbit":
		cfg.View = engine.NewOrbit()
	case "noise":
		cfg.View = engine.NewNoiseDrift(s.Seed)
	default:
		return engine.Config{}, fmt.Errorf("%w: %q", ErrUnknownView, s.Engine.View)
	}
	return cfg, nil
}

// Patch converts the overrides into an engine patch. Palette entries are
// laid over base; Patch.Palette stays nil when no color is set.
func (s *Settings) Patch(base engine.Palette) (engine.Patch, error) {
	e := s.Engine
	p := engine.Patch{
		ParticleCount:     e.ParticleCount,
		MaxDistance:       e.MaxDistance,
		ParticleSize:      e.ParticleSize,
		ParticleSpeed:     e.ParticleSpeed,
		MaxSpeed:          e.MaxSpeed,
		ConnectionOpacity: e.ConnectionOpacity,
		OpacityCeiling:    e.OpacityCeiling,
		LineWidth:         e.LineWidth,
		PulseSpeed:        e.PulseSpeed,
		Falloff:           e.Falloff,
		DrawNodes:         e.DrawNodes,
		Signals:           e.Signals,
		Reflection:        e.Reflection,
		Gradient:          e.Gradient,
		Faces:             e.Faces,
		HighContrast:      e.HighContrast,
		CodeCount:         e.CodeCount,
		CodeSpeed:         e.CodeSpeed,
		GridThreshold:     e.GridThreshold,
	}

	pal, changed, err := s.Palette.apply(base)
	if err != nil {
		return engine.Patch{}, err
	}
	if changed {
		p.Palette = &pal
	}
	return p, nil
}

func (ps PaletteSettings) apply(base engine.Palette) (engine.Palette, bool, error) {
	out := base
	changed := false

	one := func(dst *color.NRGBA, hex, key string) error {
		if hex == "" {
			return nil
		}
		c, err := engine.ParseHex(hex)
		if err != nil {
			return fmt.Errorf("settings: palette.%s: %w", key, err)
		}
		*dst = c
		changed = true
		return nil
	}
	list := func(dst *[]color.NRGBA, hexes []string, key string) error {
		if len(hexes) == 0 {
			return nil
		}
		cs := make([]color.NRGBA, len(hexes))
		for i, h := range hexes {
			c, err := engine.ParseHex(h)
			if err != nil {
				return fmt.Errorf("settings: palette.%s[%d]: %w", key, i, err)
			}
			cs[i] = c
		}
		*dst = cs
		changed = true
		return nil
	}

	for _, err := range []error{
		list(&out.Particles, ps.Particles, "particles"),
		one(&out.Connections, ps.Connections, "connections"),
		one(&out.Codes, ps.Codes, "codes"),
		one(&out.Core, ps.Core, "core"),
		one(&out.Signal, ps.Signal, "signal"),
		list(&out.Ice, ps.Ice, "ice"),
		list(&out.Reflection, ps.Reflection, "reflection"),
	} {
		if err != nil {
			return engine.Palette{}, false, err
		}
	}
	return out, changed, nil
}

// Capture records cfg as explicit overrides, so the file reproduces it
// exactly even if the preset defaults change.
func (s *Settings) Capture(cfg engine.Config) {
	view := s.Engine.View
	s.Engine = EngineSettings{
		ParticleCount:     ptr(cfg.ParticleCount),
		MaxDistance:       ptr(cfg.MaxDistance),
		ParticleSize:      ptr(cfg.ParticleSize),
		ParticleSpeed:     ptr(cfg.ParticleSpeed),
		MaxSpeed:          ptr(cfg.MaxSpeed),
		ConnectionOpacity: ptr(cfg.ConnectionOpacity),
		OpacityCeiling:    ptr(cfg.OpacityCeiling),
		LineWidth:         ptr(cfg.LineWidth),
		PulseSpeed:        ptr(cfg.PulseSpeed),
		Falloff:           ptr(cfg.Falloff),
		DrawNodes:         ptr(cfg.DrawNodes),
		Signals:           ptr(cfg.Signals),
		Reflection:        ptr(cfg.Reflection),
		Gradient:          ptr(cfg.Gradient),
		Faces:             ptr(cfg.Faces),
		HighContrast:      ptr(cfg.HighContrast),
		CodeCount:         ptr(cfg.CodeCount),
		CodeSpeed:         ptr(cfg.CodeSpeed),
		GridThreshold:     ptr(cfg.GridThreshold),
		View:              view,
	}

	pal := cfg.Palette
	s.Palette = PaletteSettings{
		Particles:   hexes(pal.Particles),
		Connections: engine.Hex(pal.Connections),
		Codes:       engine.Hex(pal.Codes),
		Core:        engine.Hex(pal.Core),
		Signal:      engine.Hex(pal.Signal),
		Ice:         hexes(pal.Ice),
		Reflection:  hexes(pal.Reflection),
	}
}

func hexes(cs []color.NRGBA) []string {
	if len(cs) == 0 {
		return nil
	}
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = engine.Hex(c)
	}
	return out
}

func ptr[T any](v T) *T { return &v }
