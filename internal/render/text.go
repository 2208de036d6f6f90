package render

import (
	"fmt"
	"math"

	"github.com/golang/freetype/truetype"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/feltview/internal/assets"
	"github.com/rook-computer/feltview/internal/theme"
)

// TextMeasurer reports the extent of a string in a font, in pixels.
type TextMeasurer interface {
	Measure(text string, spec theme.FontSpec) (width, height float64)
}

type faceKey struct {
	family string
	bold   bool
	size   float64
}

// FontMeasurer measures text with the embedded TrueType fonts. Fonts that
// fail to parse fall back to scaled basicfont metrics.
type FontMeasurer struct {
	fonts map[faceKey]*truetype.Font
	faces *lru.Cache[faceKey, font.Face]
	log   Logger
}

func NewFontMeasurer(log Logger) *FontMeasurer {
	if log == nil {
		log = noopLogger{}
	}
	faces, err := lru.New[faceKey, font.Face](64)
	if err != nil {
		panic(fmt.Sprintf("render: face cache: %v", err))
	}
	m := &FontMeasurer{fonts: make(map[faceKey]*truetype.Font), faces: faces, log: log}
	for _, k := range []faceKey{{"sans", false, 0}, {"sans", true, 0}, {"mono", false, 0}} {
		f, perr := truetype.Parse(assets.FontTTF(k.family, k.bold))
		if perr != nil {
			log.Errorf("text", "truetype parse %s bold=%t failed, using basicfont: %v", k.family, k.bold, perr)
			continue
		}
		m.fonts[k] = f
	}
	return m
}

func (m *FontMeasurer) face(spec theme.FontSpec) (font.Face, bool) {
	family := spec.Family
	if family != "mono" {
		family = "sans"
	}
	bold := spec.Bold && family == "sans"
	f, ok := m.fonts[faceKey{family: family, bold: bold}]
	if !ok {
		return nil, false
	}
	// half-pixel buckets keep the cache small while surfaces resize
	key := faceKey{family: family, bold: bold, size: math.Round(spec.Size*2) / 2}
	if face, ok := m.faces.Get(key); ok {
		return face, true
	}
	face := truetype.NewFace(f, &truetype.Options{Size: key.size, DPI: 72, Hinting: font.HintingNone})
	m.faces.Add(key, face)
	return face, true
}

func (m *FontMeasurer) Measure(text string, spec theme.FontSpec) (float64, float64) {
	if spec.Size <= 0 {
		spec.Size = theme.DefaultFont.Size
	}
	face, ok := m.face(spec)
	if !ok {
		// basicfont is a fixed 7x13 face; scale it to the requested size
		k := spec.Size / 13
		adv := font.MeasureString(basicfont.Face7x13, text)
		return fixedToFloat(adv) * k, spec.Size
	}
	metrics := face.Metrics()
	return fixedToFloat(font.MeasureString(face, text)), fixedToFloat(metrics.Ascent + metrics.Descent)
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
