package termhost

import (
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Each terminal cell stands for a CellW by CellH pixel block, so the
// engine sees a canvas with roughly square pixels.
const (
	CellW = 8
	CellH = 16
)

// ramp maps cell coverage to a glyph, light to dense.
var ramp = []rune(" .:-=+*#%@")

type cell struct {
	r, g, b float64
	cover   float64
	ch      rune
	fg      color.NRGBA
}

// Buffer is an engine.Canvas rasterised onto terminal cells. Shapes blend
// into per-cell color and coverage; text replaces cell glyphs.
type Buffer struct {
	cols, rows int
	cells      []cell
	bg         color.NRGBA
}

// NewBuffer returns a buffer of cols by rows cells.
func NewBuffer(cols, rows int) *Buffer {
	b := &Buffer{}
	b.Resize(cols, rows)
	return b
}

// Resize changes the cell grid and clears it.
func (b *Buffer) Resize(cols, rows int) {
	b.cols, b.rows = max(cols, 0), max(rows, 0)
	b.cells = make([]cell, b.cols*b.rows)
}

// Cells returns the grid size.
func (b *Buffer) Cells() (cols, rows int) {
	return b.cols, b.rows
}

func (b *Buffer) Size() (float64, float64) {
	return float64(b.cols * CellW), float64(b.rows * CellH)
}

func (b *Buffer) Clear(bg color.Color) {
	b.bg = color.NRGBA{}
	if bg != nil {
		b.bg = color.NRGBAModel.Convert(bg).(color.NRGBA)
	}
	clear(b.cells)
}

func (b *Buffer) at(cx, cy int) *cell {
	if cx < 0 || cy < 0 || cx >= b.cols || cy >= b.rows {
		return nil
	}
	return &b.cells[cy*b.cols+cx]
}

func (b *Buffer) blend(cx, cy int, c color.NRGBA) {
	p := b.at(cx, cy)
	if p == nil || c.A == 0 {
		return
	}
	a := float64(c.A) / 0xff
	p.r = p.r*(1-a) + float64(c.R)*a
	p.g = p.g*(1-a) + float64(c.G)*a
	p.b = p.b*(1-a) + float64(c.B)*a
	p.cover += a * (1 - p.cover)
}

func cellOf(x, y float64) (int, int) {
	return int(math.Floor(x / CellW)), int(math.Floor(y / CellH))
}

// Line walks the cells between both ends with a DDA. Width is ignored;
// one cell is already wider than any stroke.
func (b *Buffer) Line(x1, y1, x2, y2, _ float64, col color.Color) {
	c := color.NRGBAModel.Convert(col).(color.NRGBA)
	fx1, fy1 := x1/CellW, y1/CellH
	fx2, fy2 := x2/CellW, y2/CellH

	steps := int(math.Ceil(math.Max(math.Abs(fx2-fx1), math.Abs(fy2-fy1))))
	if steps == 0 {
		b.blend(int(math.Floor(fx1)), int(math.Floor(fy1)), c)
		return
	}
	dx, dy := (fx2-fx1)/float64(steps), (fy2-fy1)/float64(steps)
	for i := 0; i <= steps; i++ {
		b.blend(int(math.Floor(fx1+dx*float64(i))), int(math.Floor(fy1+dy*float64(i))), c)
	}
}

// Circle fills every cell whose center lies inside the circle, or the one
// cell holding the center when the circle is smaller than a cell.
func (b *Buffer) Circle(x, y, r float64, col color.Color) {
	if r <= 0 {
		return
	}
	c := color.NRGBAModel.Convert(col).(color.NRGBA)
	x0, y0 := cellOf(x-r, y-r)
	x1, y1 := cellOf(x+r, y+r)
	hit := false
	for cy := max(y0, 0); cy <= min(y1, b.rows-1); cy++ {
		for cx := max(x0, 0); cx <= min(x1, b.cols-1); cx++ {
			px, py := (float64(cx)+0.5)*CellW, (float64(cy)+0.5)*CellH
			if math.Hypot(px-x, py-y) <= r {
				b.blend(cx, cy, c)
				hit = true
			}
		}
	}
	if !hit {
		cx, cy := cellOf(x, y)
		b.blend(cx, cy, c)
	}
}

func (b *Buffer) Triangle(x1, y1, x2, y2, x3, y3 float64, col color.Color) {
	c := color.NRGBAModel.Convert(col).(color.NRGBA)
	minX, minY := cellOf(math.Min(x1, math.Min(x2, x3)), math.Min(y1, math.Min(y2, y3)))
	maxX, maxY := cellOf(math.Max(x1, math.Max(x2, x3)), math.Max(y1, math.Max(y2, y3)))

	edge := func(ax, ay, bx, by, px, py float64) float64 {
		return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
	}
	for cy := max(minY, 0); cy <= min(maxY, b.rows-1); cy++ {
		for cx := max(minX, 0); cx <= min(maxX, b.cols-1); cx++ {
			px, py := (float64(cx)+0.5)*CellW, (float64(cy)+0.5)*CellH
			e1 := edge(x1, y1, x2, y2, px, py)
			e2 := edge(x2, y2, x3, y3, px, py)
			e3 := edge(x3, y3, x1, y1, px, py)
			if (e1 >= 0 && e2 >= 0 && e3 >= 0) || (e1 <= 0 && e2 <= 0 && e3 <= 0) {
				b.blend(cx, cy, c)
			}
		}
	}
}

// Text writes s centered on (x, y). Size is ignored.
func (b *Buffer) Text(s string, x, y, _ float64, col color.Color) {
	c := color.NRGBAModel.Convert(col).(color.NRGBA)
	if c.A == 0 {
		return
	}
	n := utf8.RuneCountInString(s)
	cx, cy := cellOf(x-float64(n*CellW)/2, y)
	for _, r := range s {
		if p := b.at(cx, cy); p != nil {
			p.ch = r
			p.fg = c
		}
		cx++
	}
}

// Glyph returns what Flush would print at a cell: the rune and its color.
func (b *Buffer) Glyph(cx, cy int) (rune, color.NRGBA) {
	p := b.at(cx, cy)
	if p == nil {
		return ' ', b.bg
	}
	if p.ch != 0 {
		return p.ch, p.fg
	}
	if p.cover < 1.0/float64(len(ramp)) {
		return ' ', b.bg
	}
	i := min(int(p.cover*float64(len(ramp))), len(ramp)-1)
	// undo the fade toward black so thin cells keep their hue
	k := 1 / p.cover
	fg := color.NRGBA{
		R: uint8(math.Min(math.Round(p.r*k), 0xff)),
		G: uint8(math.Min(math.Round(p.g*k), 0xff)),
		B: uint8(math.Min(math.Round(p.b*k), 0xff)),
		A: 0xff,
	}
	return ramp[i], fg
}

// Flush copies the buffer to screen. The caller shows it.
func (b *Buffer) Flush(screen tcell.Screen) {
	base := tcell.StyleDefault
	if b.bg.A > 0 {
		base = base.Background(tcell.NewRGBColor(int32(b.bg.R), int32(b.bg.G), int32(b.bg.B)))
	}
	for cy := 0; cy < b.rows; cy++ {
		for cx := 0; cx < b.cols; cx++ {
			r, fg := b.Glyph(cx, cy)
			style := base
			if r != ' ' {
				style = style.Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B)))
			}
			screen.SetContent(cx, cy, r, nil, style)
		}
	}
}
