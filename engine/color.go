package engine

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa". The leading '#' is
// optional.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimSpace(s)
	if !strings.HasPrefix(h, "#") {
		h = "#" + h
	}

	alpha := uint64(0xff)
	if len(h) == 9 {
		a, err := strconv.ParseUint(h[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("engine: invalid hex color %q: %w", s, err)
		}
		alpha, h = a, h[:7]
	}

	c, err := colorful.Hex(h)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("engine: invalid hex color %q: %w", s, err)
	}
	return toNRGBA(c, uint8(alpha)), nil
}

// mustHex is for palette literals only.
func mustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" when c is translucent.
func Hex(c color.NRGBA) string {
	h := fromNRGBA(c).Hex()
	if c.A != 0xff {
		h += fmt.Sprintf("%02x", c.A)
	}
	return h
}

// fade scales the alpha of c by a in [0,1].
func fade(c color.NRGBA, a float64) color.NRGBA {
	c.A = alpha8(float64(c.A) / 255 * clamp01(a))
	return c
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	t = clamp01(t)
	mixed := fromNRGBA(a).BlendRgb(fromNRGBA(b), t)
	return toNRGBA(mixed, alpha8((float64(a.A)+(float64(b.A)-float64(a.A))*t)/255))
}

// gradientAt samples stops placed at offsets, which must ascend.
func gradientAt(stops []color.NRGBA, offsets []float64, t float64) color.NRGBA {
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	t = clamp01(t)
	if t <= offsets[0] {
		return stops[0]
	}
	for i := 1; i < len(stops); i++ {
		if t <= offsets[i] {
			span := offsets[i] - offsets[i-1]
			if span <= 0 {
				return stops[i]
			}
			return lerpColor(stops[i-1], stops[i], (t-offsets[i-1])/span)
		}
	}
	return stops[len(stops)-1]
}

// hsla builds a color from CSS-style hsl components: h in degrees, s and l in
// percent, a in [0,1].
func hsla(h, s, l, a float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return toNRGBA(colorful.Hsl(h, clamp01(s/100), clamp01(l/100)), alpha8(a))
}

func fromNRGBA(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func toNRGBA(c colorful.Color, a uint8) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func alpha8(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
