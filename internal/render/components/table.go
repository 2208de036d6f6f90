package components

import (
	"github.com/rook-computer/feltview/internal/render"
	"github.com/rook-computer/feltview/internal/render/layout"
	"github.com/rook-computer/feltview/internal/theme"
)

// TableBackground paints the room, the rail and the felt.
type TableBackground struct{}

func (TableBackground) Name() string { return "table" }

func (TableBackground) Render(f *render.Frame) error {
	t, g := f.Tokens, f.Geometry
	l := render.LayerBackground

	f.Draw(render.RectPrim(l, layout.Rect{W: g.Width, H: g.Height}).Filled(t.Color(theme.KeyBackground)))

	rail := g.Unit * 0.045
	outer := layout.RectAround(g.Center, 2*g.RadiusX+2*rail, 2*g.RadiusY+2*rail)
	shadow := outer
	shadow.Y += rail * 0.35
	f.Draw(render.EllipsePrim(l, shadow).Filled(t.Color(theme.KeyRailShadow)))
	f.Draw(render.EllipsePrim(l, outer).Filled(t.Color(theme.KeyRail)).Stroked(t.Color(theme.KeyRailHighlight), rail*0.12))
	f.Draw(render.EllipsePrim(l, outer.Inset(rail*0.7)).Stroked(t.Color(theme.KeyRailInner), rail*0.18))

	felt := layout.RectAround(g.Center, 2*g.RadiusX, 2*g.RadiusY)
	f.Draw(render.EllipsePrim(l, felt).Filled(t.Color(theme.KeyFeltEdge)))
	f.Draw(render.EllipsePrim(l, felt.Inset(rail*0.25)).Filled(t.Color(theme.KeyFelt)))
	inner := layout.RectAround(g.Center, 1.3*g.RadiusX, 1.1*g.RadiusY)
	f.Draw(render.EllipsePrim(l, inner).Filled(t.Color(theme.KeyFeltInner)).WithOpacity(0.6))
	f.Draw(render.EllipsePrim(l, felt.Inset(g.Unit*0.05)).Stroked(t.Color(theme.KeyFeltLine), g.Unit*0.003))
	return nil
}
