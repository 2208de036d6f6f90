package theme

import (
	"fmt"
	"sort"
)

// Palette is the small set of base colors every token derives from.
// Values are hex strings as they appear in the theme pack.
type Palette struct {
	Felt       string `json:"felt"`
	Rail       string `json:"rail"`
	Metal      string `json:"metal"`
	Accent     string `json:"accent"`
	Raise      string `json:"raise"`
	Call       string `json:"call"`
	Fold       string `json:"fold"`
	Neutral    string `json:"neutral"`
	Text       string `json:"text"`
	Highlight  string `json:"highlight"`
	Background string `json:"background"`
	CardFace   string `json:"card_face"`
	CardBack   string `json:"card_back"`
	SuitRed    string `json:"suit_red"`
	SuitBlack  string `json:"suit_black"`
}

// DefaultPalette is the built-in last resort when neither the requested
// pack nor the embedded pack can be used.
var DefaultPalette = Palette{
	Felt:       "#1E6B3A",
	Rail:       "#3B2314",
	Metal:      "#C9A86A",
	Accent:     "#2F80ED",
	Raise:      "#E0A100",
	Call:       "#27AE60",
	Fold:       "#C0392B",
	Neutral:    "#7F8C8D",
	Text:       "#F5F5F0",
	Highlight:  "#F2C94C",
	Background: "#101418",
	CardFace:   "#FAFAF7",
	CardBack:   "#8E1B1B",
	SuitRed:    "#C62828",
	SuitBlack:  "#1A1A1A",
}

// Entries returns the palette keyed by its pack names.
func (p Palette) Entries() map[string]string {
	return map[string]string{
		"felt":       p.Felt,
		"rail":       p.Rail,
		"metal":      p.Metal,
		"accent":     p.Accent,
		"raise":      p.Raise,
		"call":       p.Call,
		"fold":       p.Fold,
		"neutral":    p.Neutral,
		"text":       p.Text,
		"highlight":  p.Highlight,
		"background": p.Background,
		"card_face":  p.CardFace,
		"card_back":  p.CardBack,
		"suit_red":   p.SuitRed,
		"suit_black": p.SuitBlack,
	}
}

// Lookup returns the palette value for a pack name such as "card_face".
func (p Palette) Lookup(name string) (string, bool) {
	v, ok := p.Entries()[name]
	return v, ok && v != ""
}

// WithDefaults fills empty or unparsable entries from DefaultPalette and
// returns the names that were replaced.
func (p Palette) WithDefaults() (Palette, []string) {
	var replaced []string
	fill := func(name string, dst *string, def string) {
		if _, err := ParseHex(*dst); err != nil {
			*dst = def
			replaced = append(replaced, name)
		}
	}
	out := p
	fill("felt", &out.Felt, DefaultPalette.Felt)
	fill("rail", &out.Rail, DefaultPalette.Rail)
	fill("metal", &out.Metal, DefaultPalette.Metal)
	fill("accent", &out.Accent, DefaultPalette.Accent)
	fill("raise", &out.Raise, DefaultPalette.Raise)
	fill("call", &out.Call, DefaultPalette.Call)
	fill("fold", &out.Fold, DefaultPalette.Fold)
	fill("neutral", &out.Neutral, DefaultPalette.Neutral)
	fill("text", &out.Text, DefaultPalette.Text)
	fill("highlight", &out.Highlight, DefaultPalette.Highlight)
	fill("background", &out.Background, DefaultPalette.Background)
	fill("card_face", &out.CardFace, DefaultPalette.CardFace)
	fill("card_back", &out.CardBack, DefaultPalette.CardBack)
	fill("suit_red", &out.SuitRed, DefaultPalette.SuitRed)
	fill("suit_black", &out.SuitBlack, DefaultPalette.SuitBlack)
	sort.Strings(replaced)
	return out, replaced
}

// colors is the parsed form used by the derivation code.
type colors struct {
	felt, rail, metal, accent, raise RGB
	call, fold, neutral, text        RGB
	highlight, background            RGB
	cardFace, cardBack               RGB
	suitRed, suitBlack               RGB
}

func (p Palette) parse() colors {
	full, _ := p.WithDefaults()
	return colors{
		felt:       MustHex(full.Felt),
		rail:       MustHex(full.Rail),
		metal:      MustHex(full.Metal),
		accent:     MustHex(full.Accent),
		raise:      MustHex(full.Raise),
		call:       MustHex(full.Call),
		fold:       MustHex(full.Fold),
		neutral:    MustHex(full.Neutral),
		text:       MustHex(full.Text),
		highlight:  MustHex(full.Highlight),
		background: MustHex(full.Background),
		cardFace:   MustHex(full.CardFace),
		cardBack:   MustHex(full.CardBack),
		suitRed:    MustHex(full.SuitRed),
		suitBlack:  MustHex(full.SuitBlack),
	}
}

func (p Palette) String() string {
	return fmt.Sprintf("palette(felt=%s accent=%s)", p.Felt, p.Accent)
}
