package ebitenhost

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Canvas draws engine frames into an offscreen image that the host blits
// to the screen.
type Canvas struct {
	img    *ebiten.Image
	w, h   int
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
	verts  []ebiten.Vertex
}

// NewCanvas allocates a w by h canvas.
func NewCanvas(w, h int) (*Canvas, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("ebitenhost: load font: %w", err)
	}
	c := &Canvas{
		source: src,
		faces:  make(map[float64]*text.GoTextFace),
		verts:  make([]ebiten.Vertex, 3),
	}
	c.Resize(w, h)
	return c, nil
}

// Resize reallocates the backing image. Its content is lost.
func (c *Canvas) Resize(w, h int) {
	if w == c.w && h == c.h && c.img != nil {
		return
	}
	if c.img != nil {
		c.img.Deallocate()
	}
	c.w, c.h = w, h
	c.img = ebiten.NewImage(max(w, 1), max(h, 1))
}

// Image returns the backing image.
func (c *Canvas) Image() *ebiten.Image {
	return c.img
}

func (c *Canvas) Size() (float64, float64) {
	return float64(c.w), float64(c.h)
}

func (c *Canvas) Clear(bg color.Color) {
	if bg == nil {
		c.img.Clear()
		return
	}
	c.img.Fill(bg)
}

func (c *Canvas) Line(x1, y1, x2, y2, width float64, col color.Color) {
	vector.StrokeLine(c.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), col, true)
}

func (c *Canvas) Circle(x, y, r float64, col color.Color) {
	if r <= 0 {
		return
	}
	vector.DrawFilledCircle(c.img, float32(x), float32(y), float32(r), col, true)
}

func (c *Canvas) Triangle(x1, y1, x2, y2, x3, y3 float64, col color.Color) {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	r, g, b, a := float32(n.R)/0xff, float32(n.G)/0xff, float32(n.B)/0xff, float32(n.A)/0xff

	pts := [3][2]float64{{x1, y1}, {x2, y2}, {x3, y3}}
	for i, p := range pts {
		c.verts[i] = ebiten.Vertex{
			DstX: float32(p[0]), DstY: float32(p[1]),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		}
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	c.img.DrawTriangles(c.verts, []uint16{0, 1, 2}, whiteSubImage, op)
}

// Text draws s centered on (x, y).
func (c *Canvas) Text(s string, x, y, size float64, col color.Color) {
	face, ok := c.faces[size]
	if !ok {
		face = &text.GoTextFace{Source: c.source, Size: size}
		c.faces[size] = face
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(c.img, s, face, op)
}
