// Package ggcanvas renders engine frames off screen with gogpu/gg and
// writes them as PNG files.
package ggcanvas

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomono"
)

// Canvas implements engine.Canvas over a gg context. Drawing errors do not
// stop a frame; the first one is kept and reported by Err.
type Canvas struct {
	dc    *gg.Context
	w, h  int
	src   *text.FontSource
	faces map[float64]text.Face
	err   error
}

// New allocates a w by h canvas.
func New(w, h int) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("ggcanvas: invalid size %dx%d", w, h)
	}
	src, err := text.NewFontSource(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("ggcanvas: load font: %w", err)
	}
	return &Canvas{
		dc:    gg.NewContext(w, h),
		w:     w,
		h:     h,
		src:   src,
		faces: make(map[float64]text.Face),
	}, nil
}

func (c *Canvas) Size() (float64, float64) {
	return float64(c.w), float64(c.h)
}

func (c *Canvas) Clear(bg color.Color) {
	if bg == nil {
		c.dc.Clear()
		return
	}
	c.dc.ClearWithColor(gg.FromColor(bg))
}

func (c *Canvas) Line(x1, y1, x2, y2, width float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(x1, y1, x2, y2)
	c.keep(c.dc.Stroke())
}

func (c *Canvas) Circle(x, y, r float64, col color.Color) {
	if r <= 0 {
		return
	}
	c.dc.SetColor(col)
	c.dc.DrawCircle(x, y, r)
	c.keep(c.dc.Fill())
}

func (c *Canvas) Triangle(x1, y1, x2, y2, x3, y3 float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.MoveTo(x1, y1)
	c.dc.LineTo(x2, y2)
	c.dc.LineTo(x3, y3)
	c.dc.ClosePath()
	c.keep(c.dc.Fill())
}

// Text draws s centered on (x, y).
func (c *Canvas) Text(s string, x, y, size float64, col color.Color) {
	face, ok := c.faces[size]
	if !ok {
		face = c.src.Face(size)
		c.faces[size] = face
	}
	c.dc.SetFont(face)
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
}

func (c *Canvas) keep(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

// Err returns the first drawing error since the canvas was created.
func (c *Canvas) Err() error {
	return c.err
}

// Image returns the current pixels.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the current pixels to path.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// Close releases the context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}
