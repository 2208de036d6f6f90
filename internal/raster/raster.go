// Package raster turns a finished render.Surface into pixels with gg.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rook-computer/feltview/internal/assets"
	"github.com/rook-computer/feltview/internal/render"
	"github.com/rook-computer/feltview/internal/theme"
)

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(component, format string, args ...interface{})  {}
func (noopLogger) Errorf(component, format string, args ...interface{}) {}

const faceCacheSize = 64

type sourceKey struct {
	family string
	bold   bool
}

type faceKey struct {
	sourceKey
	size float64
}

// Rasterizer paints primitives in surface order onto a fresh RGBA canvas.
// It is safe for concurrent use; faces are shared between calls.
type Rasterizer struct {
	mu      sync.Mutex
	sources map[sourceKey]*text.FontSource
	faces   *lru.Cache[faceKey, text.Face]
	log     logger
}

// New loads the embedded font sources. A family whose font fails to load
// is logged and its text primitives are skipped.
func New(log logger) *Rasterizer {
	if log == nil {
		log = noopLogger{}
	}
	faces, err := lru.New[faceKey, text.Face](faceCacheSize)
	if err != nil {
		panic(fmt.Sprintf("raster: face cache: %v", err))
	}
	r := &Rasterizer{sources: make(map[sourceKey]*text.FontSource), faces: faces, log: log}
	for _, k := range []sourceKey{{"sans", false}, {"sans", true}, {"mono", false}} {
		src, serr := text.NewFontSource(assets.FontTTF(k.family, k.bold))
		if serr != nil {
			log.Errorf("raster", "font source %s bold=%t: %v", k.family, k.bold, serr)
			continue
		}
		r.sources[k] = src
	}
	return r
}

// Rasterize paints s. Pixels not covered by any primitive stay transparent.
func (r *Rasterizer) Rasterize(s *render.Surface) (*image.RGBA, error) {
	if s == nil {
		return nil, fmt.Errorf("rasterize: nil surface")
	}
	w, h := s.Size()
	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.Transparent)

	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	s.Each(func(p *render.Primitive) {
		if err := r.draw(dc, *p); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("primitive %d (%s on %s): %w", p.ID, p.Kind, p.Layer, err)
		}
	})
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return toRGBA(dc.Image()), firstErr
}

func (r *Rasterizer) draw(dc *gg.Context, p render.Primitive) error {
	b := p.Bounds
	switch p.Kind {
	case render.KindRect:
		if b.Empty() {
			return nil
		}
		path := func() {
			if p.Radius > 0 {
				dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, math.Min(p.Radius, math.Min(b.W, b.H)/2))
			} else {
				dc.DrawRectangle(b.X, b.Y, b.W, b.H)
			}
		}
		return paint(dc, p, path)
	case render.KindEllipse:
		if b.Empty() {
			return nil
		}
		c := b.Center()
		return paint(dc, p, func() { dc.DrawEllipse(c.X, c.Y, b.W/2, b.H/2) })
	case render.KindLine:
		if p.StrokeWidth <= 0 || p.Stroke.A == 0 {
			return nil
		}
		setColor(dc, p.Stroke, p.Opacity)
		dc.SetLineWidth(p.StrokeWidth)
		dc.DrawLine(b.X, b.Y, b.X+b.W, b.Y+b.H)
		return dc.Stroke()
	case render.KindText:
		if p.Text == "" || p.Fill.A == 0 {
			return nil
		}
		face, ok := r.face(p.Font)
		if !ok {
			return nil
		}
		dc.SetFont(face)
		setColor(dc, p.Fill, p.Opacity)
		dc.DrawStringAnchored(p.Text, b.X, b.Y, p.AnchorX, p.AnchorY)
		return nil
	case render.KindImage:
		if p.Image == nil || b.Empty() {
			return nil
		}
		dc.DrawImageEx(gg.ImageBufFromImage(p.Image), gg.DrawImageOptions{
			X:             b.X,
			Y:             b.Y,
			DstWidth:      b.W,
			DstHeight:     b.H,
			Interpolation: gg.InterpNearest,
			Opacity:       clampOpacity(p.Opacity),
			BlendMode:     gg.BlendNormal,
		})
		return nil
	}
	return fmt.Errorf("unknown kind %d", p.Kind)
}

// paint fills then strokes the path built by path.
func paint(dc *gg.Context, p render.Primitive, path func()) error {
	fill := p.Fill.A > 0
	stroke := p.StrokeWidth > 0 && p.Stroke.A > 0
	if !fill && !stroke {
		return nil
	}
	path()
	if fill {
		setColor(dc, p.Fill, p.Opacity)
		if !stroke {
			return dc.Fill()
		}
		if err := dc.FillPreserve(); err != nil {
			return err
		}
	}
	setColor(dc, p.Stroke, p.Opacity)
	dc.SetLineWidth(p.StrokeWidth)
	return dc.Stroke()
}

func setColor(dc *gg.Context, c color.NRGBA, opacity float64) {
	dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255*clampOpacity(opacity))
}

func clampOpacity(a float64) float64 {
	if a <= 0 || a > 1 {
		return 1
	}
	return a
}

func (r *Rasterizer) face(spec theme.FontSpec) (text.Face, bool) {
	k := sourceKey{family: "sans", bold: spec.Bold}
	if spec.Family == "mono" {
		k = sourceKey{family: "mono"}
	}
	src, ok := r.sources[k]
	if !ok {
		return nil, false
	}
	size := spec.Size
	if size <= 0 {
		size = theme.DefaultFont.Size
	}
	key := faceKey{sourceKey: k, size: math.Round(size*2) / 2}
	if face, ok := r.faces.Get(key); ok {
		return face, true
	}
	face := src.Face(key.size)
	r.faces.Add(key, face)
	return face, true
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}
