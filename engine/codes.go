package engine

import (
	"image/color"
	"math/rand"
	"strings"
)

const (
	hexChars   = "0123456789ABCDEF"
	alphaChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	codeMarginX = 50.0
	codeMarginY = 20.0
	codeRefresh = 0.001
)

// Code is one floating label.
type Code struct {
	X, Y    float64
	VX, VY  float64
	Text    string
	Opacity float64
	Life    float64
	MaxLife float64
	Size    float64
}

// Codes is the floating label overlay. It ticks independently of the graph.
type Codes struct {
	Items []Code
	rng   *rand.Rand
}

// NewCodes creates count labels scattered over b.
func NewCodes(count int, b Bounds, speed float64, rng *rand.Rand) *Codes {
	c := &Codes{rng: rng}
	c.Reset(count, b, speed)
	return c
}

// Reset replaces every label.
func (c *Codes) Reset(count int, b Bounds, speed float64) {
	c.Items = c.Items[:0]
	if count <= 0 || b.Empty() {
		return
	}
	for i := 0; i < count; i++ {
		c.Items = append(c.Items, Code{
			X:       c.rng.Float64() * b.W,
			Y:       c.rng.Float64() * b.H,
			VX:      (c.rng.Float64() - 0.5) * speed,
			VY:      (c.rng.Float64() - 0.5) * speed,
			Text:    RandomCode(c.rng),
			Opacity: 0.3 + c.rng.Float64()*0.4,
			Life:    300 + c.rng.Float64()*200,
			MaxLife: 300 + c.rng.Float64()*200,
			Size:    10 + c.rng.Float64()*4,
		})
	}
}

// Advance moves, ages and respawns the labels.
func (c *Codes) Advance(b Bounds) {
	for i := range c.Items {
		code := &c.Items[i]
		code.X += code.VX
		code.Y += code.VY

		code.Life--
		code.Opacity = code.Life / code.MaxLife * 0.7

		if code.X < -codeMarginX || code.X > b.W+codeMarginX {
			code.VX *= -1
		}
		if code.Y < -codeMarginY || code.Y > b.H+codeMarginY {
			code.VY *= -1
		}

		if code.Life <= 0 {
			code.X = c.rng.Float64() * b.W
			code.Y = c.rng.Float64() * b.H
			code.Text = RandomCode(c.rng)
			code.Life = code.MaxLife
			code.Opacity = 0.3 + c.rng.Float64()*0.4
		}

		if c.rng.Float64() < codeRefresh {
			code.Text = RandomCode(c.rng)
		}
	}
}

// Draw paints the labels with a soft glow.
func (c *Codes) Draw(cv Canvas, col color.NRGBA) {
	for _, code := range c.Items {
		if code.Opacity <= 0 {
			continue
		}
		cv.Text(code.Text, code.X, code.Y, codeFontSize+codeBlur/2, fade(col, code.Opacity*0.25))
		cv.Text(code.Text, code.X, code.Y, codeFontSize, fade(col, code.Opacity))
	}
}

// RandomCode returns a binary, hex or alphanumeric string.
func RandomCode(rng *rand.Rand) string {
	var b strings.Builder
	switch rng.Intn(3) {
	case 0:
		n := 6 + rng.Intn(6)
		for i := 0; i < n; i++ {
			if rng.Float64() < 0.5 {
				b.WriteByte('0')
			} else {
				b.WriteByte('1')
			}
		}
	case 1:
		n := 4 + rng.Intn(4)
		for i := 0; i < n; i++ {
			b.WriteByte(hexChars[rng.Intn(len(hexChars))])
		}
	default:
		n := 3 + rng.Intn(4)
		for i := 0; i < n; i++ {
			b.WriteByte(alphaChars[rng.Intn(len(alphaChars))])
		}
	}
	return b.String()
}
