package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// FontSpec describes a font token. Size is in pixels at the reference
// canvas height; renderers scale it with the surface.
type FontSpec struct {
	Family string
	Bold   bool
	Size   float64
}

var DefaultFont = FontSpec{Family: "sans", Size: 14}

// ParseFont parses descriptors such as "sans bold 14" or "mono 11".
func ParseFont(desc string) (FontSpec, error) {
	fields := strings.Fields(desc)
	if len(fields) == 0 {
		return FontSpec{}, fmt.Errorf("empty font descriptor")
	}
	spec := FontSpec{Family: fields[0]}
	for _, f := range fields[1:] {
		switch strings.ToLower(f) {
		case "bold":
			spec.Bold = true
		case "regular", "normal":
			spec.Bold = false
		default:
			size, err := strconv.ParseFloat(f, 64)
			if err != nil || size <= 0 {
				return FontSpec{}, fmt.Errorf("invalid font descriptor %q", desc)
			}
			spec.Size = size
		}
	}
	if spec.Size == 0 {
		spec.Size = DefaultFont.Size
	}
	return spec, nil
}

func (f FontSpec) String() string {
	weight := "regular"
	if f.Bold {
		weight = "bold"
	}
	return f.Family + " " + weight + " " + strconv.FormatFloat(f.Size, 'f', -1, 64)
}

// Scaled returns the spec with its size multiplied by k.
func (f FontSpec) Scaled(k float64) FontSpec {
	f.Size *= k
	return f
}

// WithSize returns the spec with an absolute size.
func (f FontSpec) WithSize(size float64) FontSpec {
	f.Size = size
	return f
}
