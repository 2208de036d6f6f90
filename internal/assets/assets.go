package assets

import (
	_ "embed"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultThemePack is the minimal single-theme pack used when no pack file
// is configured or the configured one cannot be read.
//
//go:embed default_theme.json
var DefaultThemePack []byte

// Font files for the "sans" and "mono" families. The Go fonts ship with
// x/image so nothing has to be installed on the device.
var (
	SansRegularTTF = goregular.TTF
	SansBoldTTF    = gobold.TTF
	MonoTTF        = gomono.TTF
)

// FontTTF returns the font file for a family and weight. Unknown families
// use the sans faces.
func FontTTF(family string, bold bool) []byte {
	switch family {
	case "mono":
		return MonoTTF
	}
	if bold {
		return SansBoldTTF
	}
	return SansRegularTTF
}
