package layout

import "math"

// CardTier is the card size class chosen from the seat count.
type CardTier int

const (
	TierLarge CardTier = iota
	TierMedium
	TierSmall
)

func (t CardTier) String() string {
	switch t {
	case TierLarge:
		return "large"
	case TierMedium:
		return "medium"
	case TierSmall:
		return "small"
	}
	return "unknown"
}

// TierFor returns the card tier for a seat count: up to 4 seats large,
// 5 to 7 medium, 8 and more small.
func TierFor(seats int) CardTier {
	switch {
	case seats >= 8:
		return TierSmall
	case seats >= 5:
		return TierMedium
	}
	return TierLarge
}

// card width as a fraction of the shorter surface side, per tier
var tierWidth = [...]float64{
	TierLarge:  0.11,
	TierMedium: 0.09,
	TierSmall:  0.075,
}

const (
	CardAspect     = 1.4
	CardTextFactor = 0.6
	BoardSlots     = 5

	centerYFactor = 0.46
	radiusXFactor = 0.40
	radiusYFactor = 0.34
)

// SeatGeometry holds every anchor a component needs for one seat.
type SeatGeometry struct {
	Index int
	Angle float64
	// Anchor is the seat position on the table ellipse.
	Anchor Point
	// Toward is the unit vector from Anchor to the table center.
	Toward Point
	Pod    Rect
	Name   Rect
	Stack  Rect
	Badge  Rect
	Cards  [2]Rect
	Bet    Point
	Dealer Point
}

// Geometry is the single layout shared by all components for one frame.
type Geometry struct {
	Width, Height float64
	// Unit is the shorter surface side; sizes scale with it.
	Unit    float64
	Center  Point
	RadiusX float64
	RadiusY float64

	Tier         CardTier
	CardW        float64
	CardH        float64
	CardTextSize float64

	ChipRadius   float64
	DealerRadius float64

	Seats    []SeatGeometry
	Board    [BoardSlots]Rect
	Pot      Point
	Status   Rect
	Progress Rect
}

// Compute derives the table geometry for a surface of w x h pixels and the
// given seat count. It is deterministic: equal inputs give equal output.
func Compute(w, h float64, seatCount int) Geometry {
	if seatCount < 0 {
		seatCount = 0
	}
	g := Geometry{
		Width:   w,
		Height:  h,
		Unit:    math.Min(w, h),
		Center:  Point{X: w / 2, Y: h * centerYFactor},
		RadiusX: w * radiusXFactor,
		RadiusY: h * radiusYFactor,
		Tier:    TierFor(seatCount),
	}
	g.CardW = g.Unit * tierWidth[g.Tier]
	g.CardH = g.CardW * CardAspect
	g.CardTextSize = CardTextFactor * math.Min(g.CardW, g.CardH)
	g.ChipRadius = g.Unit * 0.018
	g.DealerRadius = g.Unit * 0.022

	gap := g.CardW * 0.12
	boardW := BoardSlots*g.CardW + (BoardSlots-1)*gap
	boardTop := g.Center.Y - g.CardH*0.65
	for i := range g.Board {
		g.Board[i] = Rect{
			X: g.Center.X - boardW/2 + float64(i)*(g.CardW+gap),
			Y: boardTop,
			W: g.CardW,
			H: g.CardH,
		}
	}
	g.Pot = Point{X: g.Center.X, Y: boardTop + g.CardH + g.ChipRadius*3.2}

	statusH := g.Unit * 0.06
	g.Status = Rect{X: 0, Y: 0, W: w, H: statusH}
	progressW, progressH := w*0.28, g.Unit*0.022
	g.Progress = Rect{X: (w - progressW) / 2, Y: h - progressH*2.2, W: progressW, H: progressH}

	g.Seats = make([]SeatGeometry, seatCount)
	for i := range g.Seats {
		g.Seats[i] = g.seat(i, seatCount)
	}
	return g
}

// seat places seat i of n evenly around the ellipse starting at the
// bottom center and going clockwise.
func (g Geometry) seat(i, n int) SeatGeometry {
	angle := math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
	anchor := Point{
		X: g.Center.X + g.RadiusX*math.Cos(angle),
		Y: g.Center.Y + g.RadiusY*math.Sin(angle),
	}
	toward := unit(Point{X: g.Center.X - anchor.X, Y: g.Center.Y - anchor.Y})
	side := Point{X: -toward.Y, Y: toward.X}

	podW, podH := g.Unit*0.2, g.Unit*0.09
	pod := RectAround(anchor, podW, podH)
	name, stack := pod.Inset(podH * 0.08).SplitHorizontal(podH * 0.46)

	badgeW, badgeH := podW*0.42, podH*0.34
	badge := RectAround(Point{X: pod.X + pod.W - badgeW*0.45, Y: pod.Y - badgeH*0.2}, badgeW, badgeH)

	cardDist := podH/2 + g.CardH/2 + g.Unit*0.01
	cardsAt := along(anchor, toward, cardDist)
	offset := g.CardW * 0.54
	cards := [2]Rect{
		RectAround(Point{X: cardsAt.X - offset, Y: cardsAt.Y}, g.CardW, g.CardH),
		RectAround(Point{X: cardsAt.X + offset, Y: cardsAt.Y}, g.CardW, g.CardH),
	}

	bet := along(anchor, toward, cardDist+g.CardH/2+g.ChipRadius*2.4)
	dealer := along(along(anchor, toward, podH/2+g.DealerRadius*1.4), side, podW*0.42)

	return SeatGeometry{
		Index:  i,
		Angle:  angle,
		Anchor: anchor,
		Toward: toward,
		Pod:    pod,
		Name:   name,
		Stack:  stack,
		Badge:  badge,
		Cards:  cards,
		Bet:    bet,
		Dealer: dealer,
	}
}

// Seat returns the geometry for seat i, if it exists.
func (g Geometry) Seat(i int) (SeatGeometry, bool) {
	if i < 0 || i >= len(g.Seats) {
		return SeatGeometry{}, false
	}
	return g.Seats[i], true
}

// ReferenceUnit is the shorter surface side at which theme font sizes are
// used unscaled.
const ReferenceUnit = 720

// Scale is the factor applied to theme font sizes for this surface.
func (g Geometry) Scale() float64 {
	if g.Unit <= 0 {
		return 1
	}
	return g.Unit / ReferenceUnit
}

func unit(p Point) Point {
	l := math.Hypot(p.X, p.Y)
	if l == 0 {
		return Point{Y: -1}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

func along(p, dir Point, d float64) Point {
	return Point{X: p.X + dir.X*d, Y: p.Y + dir.Y*d}
}
