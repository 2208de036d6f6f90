package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/rook-computer/feltview/internal/render/layout"
	"github.com/rook-computer/feltview/internal/theme"
)

// Kind is the shape of a primitive.
type Kind int

const (
	KindRect Kind = iota
	KindEllipse
	KindLine
	KindText
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindEllipse:
		return "ellipse"
	case KindLine:
		return "line"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	}
	return "unknown"
}

// NoSeat is the Seat value of primitives not bound to a seat.
const NoSeat = -1

// Primitive is one retained draw command. Geometry is in surface pixels:
// rects and images use Bounds, ellipses are inscribed in Bounds, lines run
// from Bounds.X,Y by W,H, text is placed at the anchor point.
type Primitive struct {
	ID     uint64
	Kind   Kind
	Layer  Layer
	Seat   int
	Bounds layout.Rect
	Radius float64

	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
	Opacity     float64

	Text    string
	Font    theme.FontSpec
	AnchorX float64
	AnchorY float64

	Image image.Image
}

// RectPrim starts a rectangle primitive on layer.
func RectPrim(layer Layer, r layout.Rect) Primitive {
	return Primitive{Kind: KindRect, Layer: layer, Seat: NoSeat, Bounds: r, Opacity: 1}
}

// EllipsePrim starts an ellipse inscribed in r.
func EllipsePrim(layer Layer, r layout.Rect) Primitive {
	return Primitive{Kind: KindEllipse, Layer: layer, Seat: NoSeat, Bounds: r, Opacity: 1}
}

// CirclePrim starts a circle of radius rad around c.
func CirclePrim(layer Layer, c layout.Point, rad float64) Primitive {
	return EllipsePrim(layer, layout.RectAround(c, 2*rad, 2*rad))
}

func LinePrim(layer Layer, from, to layout.Point, stroke color.NRGBA, width float64) Primitive {
	return Primitive{
		Kind:        KindLine,
		Layer:       layer,
		Seat:        NoSeat,
		Bounds:      layout.Rect{X: from.X, Y: from.Y, W: to.X - from.X, H: to.Y - from.Y},
		Stroke:      stroke,
		StrokeWidth: width,
		Opacity:     1,
	}
}

// TextPrim centers text on at.
func TextPrim(layer Layer, text string, at layout.Point, font theme.FontSpec, c color.NRGBA) Primitive {
	return Primitive{
		Kind:    KindText,
		Layer:   layer,
		Seat:    NoSeat,
		Bounds:  layout.Rect{X: at.X, Y: at.Y},
		Fill:    c,
		Opacity: 1,
		Text:    text,
		Font:    font,
		AnchorX: 0.5,
		AnchorY: 0.5,
	}
}

func ImagePrim(layer Layer, img image.Image, r layout.Rect) Primitive {
	return Primitive{Kind: KindImage, Layer: layer, Seat: NoSeat, Bounds: r, Image: img, Opacity: 1}
}

func (p Primitive) Filled(c color.NRGBA) Primitive {
	p.Fill = c
	return p
}

func (p Primitive) Stroked(c color.NRGBA, width float64) Primitive {
	p.Stroke = c
	p.StrokeWidth = width
	return p
}

func (p Primitive) Rounded(r float64) Primitive {
	p.Radius = r
	return p
}

func (p Primitive) ForSeat(seat int) Primitive {
	p.Seat = seat
	return p
}

func (p Primitive) WithOpacity(a float64) Primitive {
	p.Opacity = a
	return p
}

// Anchored sets the text anchor: (0,0) top-left, (1,1) bottom-right.
func (p Primitive) Anchored(ax, ay float64) Primitive {
	p.AnchorX, p.AnchorY = ax, ay
	return p
}

// Surface is the retained display list of one frame.
type Surface struct {
	width, height int
	prims         []Primitive
	nextID        uint64
}

func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	return &Surface{width: width, height: height}, nil
}

func (s *Surface) Size() (width, height int) { return s.width, s.height }

// Add appends p to the draw order and returns its id.
func (s *Surface) Add(p Primitive) uint64 {
	s.nextID++
	p.ID = s.nextID
	s.prims = append(s.prims, p)
	return p.ID
}

// Clear removes every primitive.
func (s *Surface) Clear() {
	s.prims = nil
}

func (s *Surface) Len() int { return len(s.prims) }

// Primitives returns a copy of the draw order, back to front.
func (s *Surface) Primitives() []Primitive {
	return append([]Primitive(nil), s.prims...)
}

// Each calls fn for every primitive back to front.
func (s *Surface) Each(fn func(p *Primitive)) {
	for i := range s.prims {
		fn(&s.prims[i])
	}
}

// Filter returns the primitives on layer, in draw order.
func (s *Surface) Filter(layer Layer) []Primitive {
	var out []Primitive
	for _, p := range s.prims {
		if p.Layer == layer {
			out = append(out, p)
		}
	}
	return out
}
