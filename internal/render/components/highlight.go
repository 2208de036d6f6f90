package components

import (
	"math"

	"github.com/rook-computer/feltview/internal/render"
	"github.com/rook-computer/feltview/internal/render/layout"
	"github.com/rook-computer/feltview/internal/theme"
)

// ActingHighlight rings the pod of the seat to act. Every primitive it
// draws is tagged with that seat.
type ActingHighlight struct{}

func (ActingHighlight) Name() string { return "acting_highlight" }

func (ActingHighlight) Render(f *render.Frame) error {
	idx := f.State.ActingSeat()
	sg, ok := f.Geometry.Seat(idx)
	if !ok {
		return nil
	}
	t := f.Tokens
	l := render.LayerActingHighlight
	pad := sg.Pod.H * 0.12
	glow := sg.Pod.Inset(-pad * 1.8)
	ring := sg.Pod.Inset(-pad)

	f.Draw(render.RectPrim(l, glow).Rounded(glow.H*0.35).Filled(t.Color(theme.KeyStateActiveGlow)).WithOpacity(0.35).ForSeat(idx))
	f.Draw(render.RectPrim(l, ring).Rounded(ring.H*0.32).Stroked(t.Color(theme.KeyStateActiveBorder), math.Max(2, pad*0.45)).ForSeat(idx))

	barH := t.Float(theme.KeyEmphasisBarHeight, 4) * f.Geometry.Scale()
	track := layout.Rect{X: sg.Pod.X + pad, Y: ring.Y + ring.H + pad*0.6, W: sg.Pod.W - 2*pad, H: barH}
	f.Draw(render.RectPrim(l, track).Rounded(barH/2).Filled(t.Color(theme.KeyEmphasisBarTrack)).ForSeat(idx))
	fill := track
	if amt := f.State.Action.Amount; amt > 0 && f.State.Pot.Total() > 0 {
		fill.W = track.W * math.Min(1, float64(amt)/float64(f.State.Pot.Total()))
	}
	f.Draw(render.RectPrim(l, fill).Rounded(barH/2).Filled(t.Color(theme.KeyEmphasisBarFill)).ForSeat(idx))
	return nil
}
