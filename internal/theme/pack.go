package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rook-computer/feltview/internal/assets"
)

// ThemeDef is one entry of a pack's themes list.
type ThemeDef struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Palette Palette `json:"palette"`
}

// Pack is a parsed theme pack file.
type Pack struct {
	Defaults map[string]any `json:"defaults"`
	Themes   []ThemeDef     `json:"themes"`

	// Source records where the pack came from: a file path, "embedded" or "builtin".
	Source string `json:"-"`
}

const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

var ErrNoThemes = errors.New("theme pack has no themes")

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(component, format string, args ...interface{})  {}
func (noopLogger) Errorf(component, format string, args ...interface{}) {}

// ParsePack decodes a theme pack. Themes without an id are rejected and
// palette gaps are filled from DefaultPalette.
func ParsePack(data []byte) (*Pack, error) {
	var pack Pack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("decode theme pack: %w", err)
	}
	if len(pack.Themes) == 0 {
		return nil, ErrNoThemes
	}
	seen := make(map[string]bool, len(pack.Themes))
	for i := range pack.Themes {
		def := &pack.Themes[i]
		def.ID = strings.TrimSpace(def.ID)
		if def.ID == "" {
			return nil, fmt.Errorf("theme %d: missing id", i)
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("theme %q: duplicate id", def.ID)
		}
		seen[def.ID] = true
		if def.Name == "" {
			def.Name = def.ID
		}
		def.Palette, _ = def.Palette.WithDefaults()
	}
	return &pack, nil
}

// LoadPack walks the fallback chain: the pack at path, then the embedded
// pack, then a single built-in theme on DefaultPalette. It never fails.
func LoadPack(path string, log logger) *Pack {
	if log == nil {
		log = noopLogger{}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Errorf("theme", "read pack %s: %v, using embedded pack", path, err)
		} else if pack, perr := ParsePack(data); perr != nil {
			log.Errorf("theme", "parse pack %s: %v, using embedded pack", path, perr)
		} else {
			pack.Source = path
			log.Infof("theme", "loaded pack %s with %d themes", path, len(pack.Themes))
			return pack
		}
	}
	pack, err := ParsePack(assets.DefaultThemePack)
	if err == nil {
		pack.Source = SourceEmbedded
		return pack
	}
	log.Errorf("theme", "embedded pack unusable: %v, using builtin palette", err)
	return BuiltinPack()
}

// BuiltinPack is the last link of the fallback chain.
func BuiltinPack() *Pack {
	return &Pack{
		Themes: []ThemeDef{{ID: "default", Name: "Default", Palette: DefaultPalette}},
		Source: SourceBuiltin,
	}
}

// Theme returns the theme with id.
func (p *Pack) Theme(id string) (ThemeDef, bool) {
	if p == nil {
		return ThemeDef{}, false
	}
	for _, def := range p.Themes {
		if def.ID == id {
			return def, true
		}
	}
	return ThemeDef{}, false
}

// IDs lists theme ids in pack order.
func (p *Pack) IDs() []string {
	if p == nil {
		return nil
	}
	ids := make([]string, 0, len(p.Themes))
	for _, def := range p.Themes {
		ids = append(ids, def.ID)
	}
	return ids
}

// ResolveDefaults flattens a defaults block into dotted keys and substitutes
// "$name" references with palette colors. References that do not name a
// palette entry are kept as their literal string.
func ResolveDefaults(defaults map[string]any, p Palette) map[Key]string {
	out := make(map[Key]string)
	flatten("", defaults, func(key, value string) {
		out[Key(key)] = resolveRef(value, p)
	})
	return out
}

func resolveRef(value string, p Palette) string {
	if !strings.HasPrefix(value, "$") {
		return value
	}
	if v, ok := p.Lookup(strings.TrimPrefix(value, "$")); ok {
		return v
	}
	return value
}

func flatten(prefix string, node map[string]any, emit func(key, value string)) {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := node[k].(type) {
		case map[string]any:
			flatten(key, v, emit)
		case string:
			emit(key, v)
		case float64:
			emit(key, strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			emit(key, strconv.FormatBool(v))
		case nil:
		default:
			emit(key, fmt.Sprint(v))
		}
	}
}
