package components

import (
	"image"

	"github.com/rook-computer/feltview/internal/render"
	"github.com/rook-computer/feltview/internal/render/layout"
	"github.com/rook-computer/feltview/internal/theme"
)

// Overlay covers an empty table with a waiting notice and shows the
// spectator share code as a QR code.
type Overlay struct {
	// last generated QR, reused while code, size and colors are unchanged
	qrKey string
	qrImg image.Image
}

func (*Overlay) Name() string { return "overlay" }

func (o *Overlay) Render(f *render.Frame) error {
	t := f.Tokens
	g := f.Geometry
	l := render.LayerOverlay

	if len(f.State.Seats) == 0 {
		f.Draw(render.RectPrim(l, layout.Rect{W: g.Width, H: g.Height}).Filled(t.Color(theme.KeyOverlayScrim)).WithOpacity(0.75))
		panel := layout.RectAround(g.Center, g.Width*0.42, g.Unit*0.16)
		f.Draw(render.RectPrim(l, panel).Rounded(panel.H*0.18).Filled(t.Color(theme.KeyOverlayPanel)).Stroked(t.Color(theme.KeyOverlayPanelBorder), g.Unit*0.003))
		font := fitFont(f.Text, "Waiting for players", f.Font(theme.KeyFontOverlay).Scaled(1.6), panel.W*0.9, 8)
		f.Draw(render.TextPrim(l, "Waiting for players", panel.Center(), font, t.Color(theme.KeyOverlayText)))
	}

	code := f.State.ShareCode
	if code == "" {
		return nil
	}
	size := g.Unit * 0.16
	margin := g.Unit * 0.02
	panel := layout.Rect{X: g.Width - size - 3*margin, Y: g.Height - size - 5*margin, W: size + 2*margin, H: size + 4*margin}
	qrArea, caption := panel.Inset(margin).SplitHorizontal(size)

	img, err := o.qr(code, int(size), t)
	if err != nil {
		return err
	}
	f.Draw(render.RectPrim(l, panel).Rounded(margin).Filled(t.Color(theme.KeyOverlayQRLight)).Stroked(t.Color(theme.KeyOverlayPanelBorder), 1))
	f.Draw(render.ImagePrim(l, img, qrArea.FitSquare()))
	font := fitFont(f.Text, code, f.Font(theme.KeyFontBadge), caption.W, 6)
	f.Draw(render.TextPrim(l, code, caption.Center(), font, t.Color(theme.KeyOverlayQRDark)))
	return nil
}

func (o *Overlay) qr(code string, size int, t *theme.TokenSet) (image.Image, error) {
	key := code + "|" + itoa(size) + "|" + t.Hex(theme.KeyOverlayQRDark) + t.Hex(theme.KeyOverlayQRLight)
	if o.qrImg != nil && o.qrKey == key {
		return o.qrImg, nil
	}
	img, err := render.GenerateQRCodeImage(code, size, t.Color(theme.KeyOverlayQRDark), t.Color(theme.KeyOverlayQRLight))
	if err != nil {
		return nil, err
	}
	o.qrKey, o.qrImg = key, img
	return img, nil
}
