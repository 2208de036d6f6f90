package layout

import "math"

// Point is a position in surface pixels.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in surface pixels.
type Rect struct {
	X, Y, W, H float64
}

// RectAround returns the rect of size (w,h) centered on c.
func RectAround(c Point, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Normalize makes W and H non-negative, keeping the covered area.
func (r Rect) Normalize() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Inset shrinks r by pad on all sides; negative pad grows it.
func (r Rect) Inset(pad float64) Rect {
	out := Rect{X: r.X + pad, Y: r.Y + pad, W: r.W - 2*pad, H: r.H - 2*pad}
	if out.W < 0 {
		out.X, out.W = r.X+r.W/2, 0
	}
	if out.H < 0 {
		out.Y, out.H = r.Y+r.H/2, 0
	}
	return out
}

// SplitVertical splits r into left and right parts. leftW is clamped to
// [0, r.W].
func (r Rect) SplitVertical(leftW float64) (left, right Rect) {
	r = r.Normalize()
	leftW = clamp(leftW, 0, r.W)
	left = Rect{X: r.X, Y: r.Y, W: leftW, H: r.H}
	right = Rect{X: r.X + leftW, Y: r.Y, W: r.W - leftW, H: r.H}
	return left, right
}

// SplitHorizontal splits r into top and bottom parts. topH is clamped to
// [0, r.H].
func (r Rect) SplitHorizontal(topH float64) (top, bottom Rect) {
	r = r.Normalize()
	topH = clamp(topH, 0, r.H)
	top = Rect{X: r.X, Y: r.Y, W: r.W, H: topH}
	bottom = Rect{X: r.X, Y: r.Y + topH, W: r.W, H: r.H - topH}
	return top, bottom
}

// Columns splits r into n equal columns separated by gap.
func (r Rect) Columns(n int, gap float64) []Rect {
	if n <= 0 {
		return nil
	}
	r = r.Normalize()
	w := (r.W - gap*float64(n-1)) / float64(n)
	if w < 0 {
		w = 0
	}
	out := make([]Rect, n)
	for i := range out {
		out[i] = Rect{X: r.X + float64(i)*(w+gap), Y: r.Y, W: w, H: r.H}
	}
	return out
}

// FitSquare returns the largest square that fits into r, centered.
func (r Rect) FitSquare() Rect {
	r = r.Normalize()
	size := math.Min(r.W, r.H)
	return RectAround(r.Center(), size, size)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
