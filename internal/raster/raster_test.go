package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/rook-computer/feltview/internal/render"
	"github.com/rook-computer/feltview/internal/render/layout"
	"github.com/rook-computer/feltview/internal/theme"
)

func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	return d <= tol && d >= -tol
}

func newSurface(t *testing.T, w, h int) *render.Surface {
	t.Helper()
	s, err := render.NewSurface(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRasterizeShapesInOrder(t *testing.T) {
	s := newSurface(t, 64, 64)
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	s.Add(render.RectPrim(render.LayerBackground, layout.Rect{W: 40, H: 40}).Filled(red))
	s.Add(render.RectPrim(render.LayerSeatPods, layout.Rect{X: 20, Y: 20, W: 40, H: 40}).Filled(blue))

	img, err := New(nil).Rasterize(s)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 64, 64) {
		t.Fatalf("bounds = %v", got)
	}
	if c := img.RGBAAt(10, 10); !near(c.R, 255, 2) || c.B != 0 || c.A != 255 {
		t.Fatalf("red area = %+v", c)
	}
	if c := img.RGBAAt(30, 30); !near(c.B, 255, 2) || c.R != 0 {
		t.Fatalf("later primitive should cover earlier one, got %+v", c)
	}
	if c := img.RGBAAt(5, 60); c.A != 0 {
		t.Fatalf("uncovered pixel should be transparent, got %+v", c)
	}
}

func TestRasterizeOpacity(t *testing.T) {
	s := newSurface(t, 32, 32)
	s.Add(render.RectPrim(render.LayerBackground, layout.Rect{W: 32, H: 32}).
		Filled(color.NRGBA{G: 255, A: 255}).WithOpacity(0.5))
	img, err := New(nil).Rasterize(s)
	if err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(16, 16); !near(c.A, 128, 3) {
		t.Fatalf("alpha = %d, want ~128", c.A)
	}
}

func TestRasterizeEllipseAndLine(t *testing.T) {
	s := newSurface(t, 100, 100)
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	s.Add(render.EllipsePrim(render.LayerBackground, layout.Rect{X: 10, Y: 10, W: 80, H: 80}).Filled(white))
	s.Add(render.LinePrim(render.LayerOverlay, layout.Point{X: 0, Y: 95}, layout.Point{X: 100, Y: 95}, white, 4))
	img, err := New(nil).Rasterize(s)
	if err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(50, 50); c.A != 255 {
		t.Fatalf("ellipse center not painted: %+v", c)
	}
	if c := img.RGBAAt(12, 12); c.A != 0 {
		t.Fatalf("corner outside the ellipse painted: %+v", c)
	}
	if c := img.RGBAAt(50, 95); c.A == 0 {
		t.Fatal("line not painted")
	}
}

func TestRasterizeTextAndImage(t *testing.T) {
	s := newSurface(t, 120, 60)
	font := theme.FontSpec{Family: "sans", Bold: true, Size: 24}
	s.Add(render.TextPrim(render.LayerStatusBadges, "Pot", layout.Point{X: 40, Y: 30}, font, color.NRGBA{A: 255}))

	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	s.Add(render.ImagePrim(render.LayerOverlay, src, layout.Rect{X: 90, Y: 10, W: 20, H: 20}))

	img, err := New(nil).Rasterize(s)
	if err != nil {
		t.Fatal(err)
	}
	var inked int
	for y := 15; y < 45; y++ {
		for x := 10; x < 75; x++ {
			if img.RGBAAt(x, y).A > 0 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Fatal("text left no ink")
	}
	if c := img.RGBAAt(100, 20); c.A != 255 || !near(c.R, 255, 2) {
		t.Fatalf("image not drawn: %+v", c)
	}
}

type captureWriter struct{ frames []*image.RGBA }

func (c *captureWriter) WriteFrame(f *image.RGBA) error {
	c.frames = append(c.frames, f)
	return nil
}

func TestPresenterWritesFrame(t *testing.T) {
	out := &captureWriter{}
	p := NewPresenter(New(nil), out)
	s := newSurface(t, 16, 8)
	if err := p.Present(s); err != nil {
		t.Fatal(err)
	}
	if len(out.frames) != 1 || out.frames[0].Bounds().Dx() != 16 {
		t.Fatalf("frames = %d", len(out.frames))
	}
}
