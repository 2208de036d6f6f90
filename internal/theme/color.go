package theme

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 8-bit color. Token math works on straight (non
// premultiplied) channels and truncates toward zero.
type RGB struct {
	R, G, B uint8
}

var (
	White = RGB{R: 0xFF, G: 0xFF, B: 0xFF}
	Black = RGB{}

	// Placeholder is what an unresolvable color token renders as.
	Placeholder = RGB{R: 0xFF, G: 0x00, B: 0xFF}
)

// ParseHex accepts "#RGB", "#RRGGBB" and "#RRGGBBAA" (alpha is ignored).
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	var v [8]uint8
	for i := 0; i < len(s); i++ {
		n, ok := hexNibble(s[i])
		if !ok {
			return RGB{}, fmt.Errorf("invalid hex color %q", hex)
		}
		if i < len(v) {
			v[i] = n
		}
	}
	switch len(s) {
	case 3:
		return RGB{R: v[0] * 17, G: v[1] * 17, B: v[2] * 17}, nil
	case 6, 8:
		return RGB{R: v[0]<<4 | v[1], G: v[2]<<4 | v[3], B: v[4]<<4 | v[5]}, nil
	}
	return RGB{}, fmt.Errorf("invalid hex color %q", hex)
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// MustHex parses a literal known to be valid; invalid input yields Placeholder.
func MustHex(hex string) RGB {
	c, err := ParseHex(hex)
	if err != nil {
		return Placeholder
	}
	return c
}

// Hex formats the color as upper case "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// Luminance is the relative luminance in [0,1] used for contrast picks.
func (c RGB) Luminance() float64 {
	lin := func(v uint8) float64 {
		f := float64(v) / 255
		if f <= 0.03928 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

func clampUnit(t float64) float64 {
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*t
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Mix interpolates linearly in RGB; t is clamped to [0,1].
func Mix(a, b RGB, t float64) RGB {
	t = clampUnit(t)
	return RGB{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
	}
}

func Lighten(c RGB, t float64) RGB { return Mix(c, White, t) }

func Darken(c RGB, t float64) RGB { return Mix(c, Black, t) }

// AlphaOver composites src with opacity a over an opaque dst.
func AlphaOver(src, dst RGB, a float64) RGB {
	return Mix(dst, src, a)
}

// AdjustHSL shifts hue by dh degrees and saturation/lightness by ds/dl,
// clamping the result into the RGB gamut.
func AdjustHSL(c RGB, dh, ds, dl float64) RGB {
	h, s, l := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hsl()
	h = math.Mod(h+dh, 360)
	if h < 0 {
		h += 360
	}
	out := colorful.Hsl(h, clampUnit(s+ds), clampUnit(l+dl)).Clamped()
	r, g, b := out.RGB255()
	return RGB{R: r, G: g, B: b}
}

// Contrast returns whichever of a or b differs most in luminance from bg.
func Contrast(bg, a, b RGB) RGB {
	lb := bg.Luminance()
	if math.Abs(a.Luminance()-lb) >= math.Abs(b.Luminance()-lb) {
		return a
	}
	return b
}

// MixHex is Mix over hex strings; unparsable inputs count as Placeholder.
func MixHex(a, b string, t float64) string {
	return Mix(MustHex(a), MustHex(b), t).Hex()
}

func LightenHex(hex string, t float64) string { return Lighten(MustHex(hex), t).Hex() }

func DarkenHex(hex string, t float64) string { return Darken(MustHex(hex), t).Hex() }

func AlphaOverHex(src, dst string, a float64) string {
	return AlphaOver(MustHex(src), MustHex(dst), a).Hex()
}
