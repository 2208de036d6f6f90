package theme

import (
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// Key names a style token with a dotted path such as "pot.badgeRing".
type Key string

// Surface and table.
const (
	KeyBackground    Key = "surface.background"
	KeyFelt          Key = "surface.felt"
	KeyFeltInner     Key = "surface.feltInner"
	KeyFeltEdge      Key = "surface.feltEdge"
	KeyFeltLine      Key = "surface.feltLine"
	KeyRail          Key = "surface.rail"
	KeyRailHighlight Key = "surface.railHighlight"
	KeyRailShadow    Key = "surface.railShadow"
	KeyRailInner     Key = "surface.railInner"
)

// Cards.
const (
	KeyCardFace              Key = "card.face"
	KeyCardFaceBorder        Key = "card.faceBorder"
	KeyCardShadow            Key = "card.shadow"
	KeyCardBack              Key = "card.back"
	KeyCardBackPattern       Key = "card.backPattern"
	KeyCardBackBorder        Key = "card.backBorder"
	KeyCardSuitRed           Key = "card.suitRed"
	KeyCardSuitBlack         Key = "card.suitBlack"
	KeyCardPlaceholder       Key = "card.placeholder"
	KeyCardPlaceholderBorder Key = "card.placeholderBorder"
	KeyCardFoldedScrim       Key = "card.foldedScrim"
)

// Seats.
const (
	KeySeatPod             Key = "seat.pod"
	KeySeatPodBorder       Key = "seat.podBorder"
	KeySeatPodFolded       Key = "seat.podFolded"
	KeySeatPodFoldedBorder Key = "seat.podFoldedBorder"
	KeySeatPodWinner       Key = "seat.podWinner"
	KeySeatPodWinnerBorder Key = "seat.podWinnerBorder"
	KeySeatPodAllIn        Key = "seat.podAllIn"
	KeySeatPodAllInBorder  Key = "seat.podAllInBorder"
	KeySeatPodEmpty        Key = "seat.podEmpty"
	KeySeatName            Key = "seat.name"
	KeySeatNameFolded      Key = "seat.nameFolded"
	KeySeatStack           Key = "seat.stack"
	KeySeatStackBg         Key = "seat.stackBg"
	KeySeatStackBorder     Key = "seat.stackBorder"
	KeySeatPosition        Key = "seat.position"
)

// Bets, pot and dealer button.
const (
	KeyBetChipFace   Key = "bet.chipFace"
	KeyBetChipEdge   Key = "bet.chipEdge"
	KeyBetChipStripe Key = "bet.chipStripe"
	KeyBetLabel      Key = "bet.label"
	KeyBetLabelBg    Key = "bet.labelBg"

	KeyPotChipFace   Key = "pot.chipFace"
	KeyPotChipEdge   Key = "pot.chipEdge"
	KeyPotChipStripe Key = "pot.chipStripe"
	KeyPotBadge      Key = "pot.badge"
	KeyPotBadgeRing  Key = "pot.badgeRing"
	KeyPotText       Key = "pot.text"
	KeyPotSideBadge  Key = "pot.sideBadge"
	KeyPotSideText   Key = "pot.sideText"

	KeyDealerFace   Key = "dealer.face"
	KeyDealerBorder Key = "dealer.border"
	KeyDealerText   Key = "dealer.text"
)

// Highlight, status, progress and overlay.
const (
	KeyHighlightRing       Key = "highlight.ring"
	KeyHighlightGlow       Key = "highlight.glow"
	KeyHighlightWinnerRing Key = "highlight.winnerRing"

	KeyStatusBg        Key = "status.bg"
	KeyStatusBorder    Key = "status.border"
	KeyStatusText      Key = "status.text"
	KeyStatusTextMuted Key = "status.textMuted"
	KeyStatusStreet    Key = "status.street"

	KeyProgressDone    Key = "progress.done"
	KeyProgressCurrent Key = "progress.current"
	KeyProgressPending Key = "progress.pending"
	KeyProgressTrack   Key = "progress.track"
	KeyProgressLabel   Key = "progress.label"

	KeyOverlayScrim       Key = "overlay.scrim"
	KeyOverlayPanel       Key = "overlay.panel"
	KeyOverlayPanelBorder Key = "overlay.panelBorder"
	KeyOverlayText        Key = "overlay.text"
	KeyOverlayQRDark      Key = "overlay.qrDark"
	KeyOverlayQRLight     Key = "overlay.qrLight"

	KeyFocusRing      Key = "focus.ring"
	KeyFocusRingInner Key = "focus.ringInner"
	KeyFocusRingOuter Key = "focus.ringOuter"
)

// Fonts.
const (
	KeyFontSeatName Key = "font.seatName"
	KeyFontStack    Key = "font.stack"
	KeyFontCard     Key = "font.card"
	KeyFontPot      Key = "font.pot"
	KeyFontStatus   Key = "font.status"
	KeyFontBadge    Key = "font.badge"
	KeyFontDealer   Key = "font.dealer"
	KeyFontProgress Key = "font.progress"
	KeyFontOverlay  Key = "font.overlay"
)

// Optional keys supplied by the theme pack defaults block. Each falls back
// to a derived key when the pack does not define it.
const (
	KeyStateActiveBorder Key = "state.active.border"
	KeyStateActiveGlow   Key = "state.active.glow"
	KeyStateFoldedFill   Key = "state.folded.fill"
	KeyStateWinnerBorder Key = "state.winner.border"
	KeySelectionRing     Key = "selection.ring"
	KeySelectionFill     Key = "selection.fill"
	KeyEmphasisBarFill   Key = "emphasis_bar.fill"
	KeyEmphasisBarTrack  Key = "emphasis_bar.track"
	KeyEmphasisBarHeight Key = "emphasis_bar.height"
	KeyChipsStyle        Key = "chips.style"
	KeyChipsStripe       Key = "chips.stripe"
	KeyChipsEdge         Key = "chips.edge"
	KeyChipsStripeCount  Key = "chips.stripes"
)

// ActionKey returns the status badge token for an action, e.g. "status.action.raise.bg".
func ActionKey(action, part string) Key {
	return Key("status.action." + action + "." + part)
}

// DenominationKey returns a chip denomination token, e.g. "chip.denom.25.face".
func DenominationKey(denom int64, part string) Key {
	return Key("chip.denom." + strconv.FormatInt(denom, 10) + "." + part)
}

// ButtonKey returns a button state token, e.g. "button.primary.hover.bg".
func ButtonKey(variant, state, part string) Key {
	return Key("button." + variant + "." + state + "." + part)
}

// AlphaKey returns an alpha ramp token, e.g. "alpha.felt.30".
func AlphaKey(base string, percent int) Key {
	return Key("alpha." + base + "." + strconv.Itoa(percent))
}

// optionalFallbacks is the single place where a missing optional token is
// mapped onto a derived one.
var optionalFallbacks = map[Key]Key{
	KeyStateActiveBorder: KeyHighlightRing,
	KeyStateActiveGlow:   KeyHighlightGlow,
	KeyStateFoldedFill:   KeySeatPodFolded,
	KeyStateWinnerBorder: KeyHighlightWinnerRing,
	KeySelectionRing:     KeyFocusRing,
	KeySelectionFill:     KeyFocusRingInner,
	KeyEmphasisBarFill:   KeyProgressCurrent,
	KeyEmphasisBarTrack:  KeyProgressTrack,
	KeyChipsStripe:       KeyBetChipStripe,
	KeyChipsEdge:         KeyBetChipEdge,
}

// optionalLiterals are defaults for optional non-color tokens.
var optionalLiterals = map[Key]string{
	KeyChipsStyle:        "striped",
	KeyChipsStripeCount:  "6",
	KeyEmphasisBarHeight: "4",
}

// TokenSet is an immutable flat mapping from token keys to resolved values.
// Renderers read it, they never mutate it.
type TokenSet struct {
	themeID string
	values  map[Key]string
}

func newTokenSet(themeID string, values map[Key]string) *TokenSet {
	return &TokenSet{themeID: themeID, values: values}
}

// ThemeID is the id of the theme the set was derived for.
func (t *TokenSet) ThemeID() string {
	if t == nil {
		return ""
	}
	return t.themeID
}

// resolve is the one default-resolution path: explicit value, then the
// optional fallback chain, then the optional literal default.
func (t *TokenSet) resolve(key Key) (string, bool) {
	if t == nil {
		return "", false
	}
	seen := 0
	for k := key; seen < 8; seen++ {
		if v, ok := t.values[k]; ok && v != "" {
			return v, true
		}
		next, ok := optionalFallbacks[k]
		if !ok {
			break
		}
		k = next
	}
	if v, ok := optionalLiterals[key]; ok {
		return v, true
	}
	return "", false
}

// Value returns the raw token value; missing keys yield the key itself so a
// missing style is visible rather than silent.
func (t *TokenSet) Value(key Key) string {
	if v, ok := t.resolve(key); ok {
		return v
	}
	return string(key)
}

// Has reports whether the key resolves, directly or through a fallback.
func (t *TokenSet) Has(key Key) bool {
	_, ok := t.resolve(key)
	return ok
}

// RGB returns the token as a color, or Placeholder when it does not resolve
// to a parsable color.
func (t *TokenSet) RGB(key Key) RGB {
	v, ok := t.resolve(key)
	if !ok {
		return Placeholder
	}
	c, err := ParseHex(v)
	if err != nil {
		return Placeholder
	}
	return c
}

func (t *TokenSet) Color(key Key) color.NRGBA {
	return t.RGB(key).NRGBA()
}

// Hex returns the token color as "#RRGGBB".
func (t *TokenSet) Hex(key Key) string {
	return t.RGB(key).Hex()
}

// Float returns a numeric token or def when it is missing or not numeric.
func (t *TokenSet) Float(key Key, def float64) float64 {
	v, ok := t.resolve(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// Font returns a font descriptor token, falling back to DefaultFont.
func (t *TokenSet) Font(key Key) FontSpec {
	v, ok := t.resolve(key)
	if !ok {
		return DefaultFont
	}
	spec, err := ParseFont(v)
	if err != nil {
		return DefaultFont
	}
	return spec
}

// Len is the number of explicitly stored tokens.
func (t *TokenSet) Len() int {
	if t == nil {
		return 0
	}
	return len(t.values)
}

// Keys returns the stored keys in sorted order.
func (t *TokenSet) Keys() []Key {
	if t == nil {
		return nil
	}
	keys := make([]Key, 0, len(t.values))
	for k := range t.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Map returns a copy of the stored values.
func (t *TokenSet) Map() map[Key]string {
	if t == nil {
		return nil
	}
	out := make(map[Key]string, len(t.values))
	for k, v := range t.values {
		out[k] = v
	}
	return out
}
