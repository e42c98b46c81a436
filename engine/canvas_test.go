package engine

import (
	"image/color"
)

// Op is one recorded drawing call.
type Op struct {
	Kind  string
	Args  []float64
	Color color.NRGBA
	Text  string
	Bg    bool
}

// RecordingCanvas records every drawing call for inspection.
type RecordingCanvas struct {
	W, H float64
	Ops  []Op
}

func nrgba(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (r *RecordingCanvas) Size() (float64, float64) { return r.W, r.H }

func (r *RecordingCanvas) Clear(bg color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "clear", Color: nrgba(bg), Bg: bg != nil})
}

func (r *RecordingCanvas) Line(x1, y1, x2, y2, width float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "line", Args: []float64{x1, y1, x2, y2, width}, Color: nrgba(c)})
}

func (r *RecordingCanvas) Circle(x, y, rad float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "circle", Args: []float64{x, y, rad}, Color: nrgba(c)})
}

func (r *RecordingCanvas) Triangle(x1, y1, x2, y2, x3, y3 float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "triangle", Args: []float64{x1, y1, x2, y2, x3, y3}, Color: nrgba(c)})
}

func (r *RecordingCanvas) Text(s string, x, y, size float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "text", Args: []float64{x, y, size}, Color: nrgba(c), Text: s})
}

// Count returns the number of recorded ops of kind.
func (r *RecordingCanvas) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset forgets recorded ops.
func (r *RecordingCanvas) Reset() {
	r.Ops = r.Ops[:0]
}
