package components

import (
	"image/color"
	"math"

	"github.com/rook-computer/feltview/internal/render"
	"github.com/rook-computer/feltview/internal/render/layout"
	"github.com/rook-computer/feltview/internal/state"
	"github.com/rook-computer/feltview/internal/theme"
)

// drawCard draws one card slot. Codes that fail to parse render as a
// face-down card so a bad feed never exposes garbage.
func drawCard(f *render.Frame, layer render.Layer, seat int, r layout.Rect, code string, dimmed bool) {
	t := f.Tokens
	radius := r.W * 0.1
	border := math.Max(1, r.W*0.025)

	shadow := r
	shadow.X += r.W * 0.04
	shadow.Y += r.W * 0.05
	f.Draw(render.RectPrim(layer, shadow).Rounded(radius).Filled(t.Color(theme.KeyCardShadow)).WithOpacity(0.6).ForSeat(seat))

	card, err := state.ParseCard(code)
	if err != nil || card.FaceDown() {
		f.Draw(render.RectPrim(layer, r).Rounded(radius).
			Filled(t.Color(theme.KeyCardBack)).
			Stroked(t.Color(theme.KeyCardBackBorder), border).ForSeat(seat))
		inner := r.Inset(r.W * 0.12)
		f.Draw(render.RectPrim(layer, inner).Rounded(radius*0.6).
			Stroked(t.Color(theme.KeyCardBackPattern), border).ForSeat(seat))
		for i, col := range inner.Inset(r.W * 0.08).Columns(3, r.W*0.06) {
			if i%2 == 1 {
				continue
			}
			f.Draw(render.RectPrim(layer, col).Rounded(col.W*0.3).
				Filled(t.Color(theme.KeyCardBackPattern)).WithOpacity(0.5).ForSeat(seat))
		}
	} else {
		f.Draw(render.RectPrim(layer, r).Rounded(radius).
			Filled(t.Color(theme.KeyCardFace)).
			Stroked(t.Color(theme.KeyCardFaceBorder), border).ForSeat(seat))
		ink := t.Color(theme.KeyCardSuitBlack)
		if card.Suit.Red() {
			ink = t.Color(theme.KeyCardSuitRed)
		}
		font := t.Font(theme.KeyFontCard).WithSize(f.Geometry.CardTextSize)
		label := card.RankLabel()
		rankFont := fitFont(f.Text, label, font, r.W*0.9, font.Size*0.5)
		f.Draw(render.TextPrim(layer, label, layout.Point{X: r.X + r.W/2, Y: r.Y + r.H*0.36}, rankFont, ink).ForSeat(seat))
		f.Draw(render.TextPrim(layer, card.Suit.Symbol(), layout.Point{X: r.X + r.W/2, Y: r.Y + r.H*0.72}, font.Scaled(0.8), ink).ForSeat(seat))
	}
	if dimmed {
		f.Draw(render.RectPrim(layer, r).Rounded(radius).
			Filled(t.Color(theme.KeyCardFoldedScrim)).WithOpacity(0.55).ForSeat(seat))
	}
}

// drawPlaceholder draws an empty board slot.
func drawPlaceholder(f *render.Frame, layer render.Layer, r layout.Rect) {
	t := f.Tokens
	f.Draw(render.RectPrim(layer, r).Rounded(r.W*0.1).
		Filled(t.Color(theme.KeyCardPlaceholder)).
		Stroked(t.Color(theme.KeyCardPlaceholderBorder), math.Max(1, r.W*0.02)))
}

// drawChipStack draws a vertical stack of chips colored by denomination,
// bottom chip centered on at.
func drawChipStack(f *render.Frame, layer render.Layer, seat int, at layout.Point, radius float64, denoms []int64) {
	t := f.Tokens
	striped := t.Value(theme.KeyChipsStyle) == "striped"
	stripes := int(t.Float(theme.KeyChipsStripeCount, 6))
	step := radius * 0.28
	for i, d := range denoms {
		c := layout.Point{X: at.X, Y: at.Y - float64(i)*step}
		face := t.Color(theme.DenominationKey(d, "face"))
		edge := t.Color(theme.DenominationKey(d, "edge"))
		f.Draw(render.CirclePrim(layer, c, radius).Filled(face).Stroked(edge, math.Max(1, radius*0.14)).ForSeat(seat))
		if striped && i == len(denoms)-1 {
			drawStripes(f, layer, seat, c, radius, stripes, t.Color(theme.DenominationKey(d, "stripe")))
		}
	}
}

func drawStripes(f *render.Frame, layer render.Layer, seat int, c layout.Point, radius float64, n int, col color.NRGBA) {
	if n <= 0 {
		return
	}
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		from := layout.Point{X: c.X + math.Cos(a)*radius*0.62, Y: c.Y + math.Sin(a)*radius*0.62}
		to := layout.Point{X: c.X + math.Cos(a)*radius*0.92, Y: c.Y + math.Sin(a)*radius*0.92}
		f.Draw(render.LinePrim(layer, from, to, col, math.Max(1, radius*0.18)).ForSeat(seat))
	}
}

// drawBadge draws a rounded label box with centered text.
func drawBadge(f *render.Frame, layer render.Layer, seat int, r layout.Rect, text string, font theme.FontSpec, bg, fg, border color.NRGBA) {
	f.Draw(render.RectPrim(layer, r).Rounded(r.H/2).Filled(bg).Stroked(border, math.Max(1, r.H*0.06)).ForSeat(seat))
	font = fitFont(f.Text, text, font, r.W*0.88, font.Size*0.5)
	f.Draw(render.TextPrim(layer, text, r.Center(), font, fg).ForSeat(seat))
}
