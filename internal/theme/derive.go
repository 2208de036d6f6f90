package theme

// Denominations are the chip values that get their own color family.
var Denominations = []int64{1, 5, 25, 100, 500, 1000, 5000}

// ButtonVariants and ButtonStates span the button token grid.
var (
	ButtonVariants = []string{"primary", "secondary", "danger", "raise", "call", "fold"}
	ButtonStates   = []string{"normal", "hover", "pressed", "disabled"}
)

// Actions with a status badge color pair.
var Actions = []string{"fold", "check", "call", "bet", "raise", "allin"}

var alphaBases = []string{"felt", "text", "highlight", "accent", "background"}

// DeriveTokens expands a palette into the full token set. It is a pure
// function of the palette.
func DeriveTokens(p Palette) *TokenSet {
	return newTokenSet("", deriveValues(p))
}

// DeriveTheme derives the tokens for a theme and overlays the resolved
// defaults block of its pack.
func DeriveTheme(def ThemeDef, defaults map[string]any) *TokenSet {
	values := deriveValues(def.Palette)
	for k, v := range ResolveDefaults(defaults, def.Palette) {
		values[k] = v
	}
	return newTokenSet(def.ID, values)
}

func deriveValues(p Palette) map[Key]string {
	c := p.parse()
	out := make(map[Key]string, 320)
	set := func(k Key, v RGB) { out[k] = v.Hex() }

	// surface
	set(KeyBackground, c.background)
	set(KeyFelt, c.felt)
	set(KeyFeltInner, Lighten(c.felt, 0.08))
	set(KeyFeltEdge, Darken(c.felt, 0.25))
	set(KeyFeltLine, AlphaOver(Lighten(c.felt, 0.3), c.felt, 0.35))
	set(KeyRail, c.rail)
	set(KeyRailHighlight, Lighten(c.rail, 0.2))
	set(KeyRailShadow, Darken(c.rail, 0.35))
	set(KeyRailInner, Mix(c.rail, c.metal, 0.35))

	// cards
	set(KeyCardFace, c.cardFace)
	set(KeyCardFaceBorder, Darken(c.cardFace, 0.3))
	set(KeyCardShadow, AlphaOver(Black, c.felt, 0.45))
	set(KeyCardBack, c.cardBack)
	set(KeyCardBackPattern, Lighten(c.cardBack, 0.25))
	set(KeyCardBackBorder, Mix(c.cardBack, c.metal, 0.5))
	set(KeyCardSuitRed, c.suitRed)
	set(KeyCardSuitBlack, c.suitBlack)
	set(KeyCardPlaceholder, AlphaOver(Darken(c.felt, 0.2), c.felt, 0.6))
	set(KeyCardPlaceholderBorder, AlphaOver(c.text, c.felt, 0.2))
	set(KeyCardFoldedScrim, AlphaOver(c.background, c.cardFace, 0.55))

	// seats
	pod := Mix(c.background, c.rail, 0.35)
	set(KeySeatPod, pod)
	set(KeySeatPodBorder, Mix(c.metal, pod, 0.4))
	set(KeySeatPodFolded, AlphaOver(c.neutral, pod, 0.3))
	set(KeySeatPodFoldedBorder, Darken(c.neutral, 0.2))
	set(KeySeatPodWinner, AlphaOver(c.highlight, pod, 0.25))
	set(KeySeatPodWinnerBorder, c.highlight)
	set(KeySeatPodAllIn, AlphaOver(c.raise, pod, 0.25))
	set(KeySeatPodAllInBorder, c.raise)
	set(KeySeatPodEmpty, AlphaOver(pod, c.felt, 0.4))
	set(KeySeatName, c.text)
	set(KeySeatNameFolded, Mix(c.text, c.neutral, 0.6))
	set(KeySeatStack, Lighten(c.metal, 0.3))
	set(KeySeatStackBg, Darken(pod, 0.35))
	set(KeySeatStackBorder, Darken(c.metal, 0.2))
	set(KeySeatPosition, Mix(c.text, c.accent, 0.5))

	// bets
	chipFace := AlphaOver(Lighten(c.felt, 0.18), c.neutral, 0.25)
	set(KeyBetChipFace, chipFace)
	set(KeyBetChipEdge, Darken(chipFace, 0.35))
	set(KeyBetChipStripe, Lighten(c.metal, 0.4))
	set(KeyBetLabel, c.text)
	set(KeyBetLabelBg, AlphaOver(c.background, c.felt, 0.6))

	// pot
	potChip := Mix(c.metal, c.highlight, 0.3)
	set(KeyPotChipFace, potChip)
	set(KeyPotChipEdge, Darken(potChip, 0.35))
	set(KeyPotChipStripe, Lighten(potChip, 0.5))
	set(KeyPotBadge, AlphaOver(c.background, c.felt, 0.7))
	set(KeyPotBadgeRing, Mix(c.metal, c.highlight, 0.4))
	set(KeyPotText, Lighten(c.text, 0.1))
	set(KeyPotSideBadge, AlphaOver(c.background, c.felt, 0.5))
	set(KeyPotSideText, Mix(c.text, c.metal, 0.35))

	// dealer
	set(KeyDealerFace, Lighten(c.cardFace, 0.1))
	set(KeyDealerBorder, Darken(c.metal, 0.15))
	set(KeyDealerText, c.suitBlack)

	// highlight
	set(KeyHighlightRing, c.highlight)
	set(KeyHighlightGlow, AlphaOver(c.highlight, c.felt, 0.35))
	set(KeyHighlightWinnerRing, Lighten(c.highlight, 0.3))

	// status
	set(KeyStatusBg, AlphaOver(c.background, c.rail, 0.8))
	set(KeyStatusBorder, Mix(c.rail, c.metal, 0.5))
	set(KeyStatusText, c.text)
	set(KeyStatusTextMuted, Mix(c.text, c.background, 0.45))
	set(KeyStatusStreet, c.accent)
	actionBase := map[string]RGB{
		"fold":  c.fold,
		"check": c.neutral,
		"call":  c.call,
		"bet":   Mix(c.raise, c.call, 0.5),
		"raise": c.raise,
		"allin": Mix(c.raise, c.fold, 0.5),
	}
	for _, action := range Actions {
		bg := actionBase[action]
		set(ActionKey(action, "bg"), bg)
		set(ActionKey(action, "fg"), Contrast(bg, c.text, c.background))
		set(ActionKey(action, "border"), Darken(bg, 0.3))
	}

	// progress
	set(KeyProgressDone, Mix(c.accent, c.neutral, 0.4))
	set(KeyProgressCurrent, c.accent)
	set(KeyProgressPending, AlphaOver(c.neutral, c.background, 0.35))
	set(KeyProgressTrack, AlphaOver(c.neutral, c.background, 0.15))
	set(KeyProgressLabel, Mix(c.text, c.background, 0.3))

	// overlay
	set(KeyOverlayScrim, AlphaOver(c.background, c.felt, 0.7))
	set(KeyOverlayPanel, Mix(c.background, c.rail, 0.2))
	set(KeyOverlayPanelBorder, c.metal)
	set(KeyOverlayText, c.text)
	set(KeyOverlayQRDark, c.suitBlack)
	set(KeyOverlayQRLight, c.cardFace)

	// focus
	set(KeyFocusRing, c.accent)
	set(KeyFocusRingInner, AlphaOver(c.accent, c.background, 0.4))
	set(KeyFocusRingOuter, Lighten(c.accent, 0.35))

	// chip denominations: hue ramp around the accent color
	for i, denom := range Denominations {
		face := AdjustHSL(c.accent, float64(i)*360/float64(len(Denominations)), 0, 0)
		set(DenominationKey(denom, "face"), face)
		set(DenominationKey(denom, "edge"), Darken(face, 0.3))
		set(DenominationKey(denom, "stripe"), Lighten(face, 0.6))
		set(DenominationKey(denom, "text"), Contrast(face, c.text, c.suitBlack))
	}

	// buttons
	buttonBase := map[string]RGB{
		"primary":   c.accent,
		"secondary": c.neutral,
		"danger":    c.fold,
		"raise":     c.raise,
		"call":      c.call,
		"fold":      Mix(c.fold, c.neutral, 0.4),
	}
	for _, variant := range ButtonVariants {
		base := buttonBase[variant]
		states := map[string]RGB{
			"normal":   base,
			"hover":    Lighten(base, 0.12),
			"pressed":  Darken(base, 0.18),
			"disabled": AlphaOver(base, c.background, 0.35),
		}
		for _, state := range ButtonStates {
			bg := states[state]
			fg := Contrast(bg, c.text, c.background)
			if state == "disabled" {
				fg = Mix(fg, bg, 0.5)
			}
			set(ButtonKey(variant, state, "bg"), bg)
			set(ButtonKey(variant, state, "fg"), fg)
			set(ButtonKey(variant, state, "border"), Darken(bg, 0.3))
		}
	}

	// alpha ramps
	bases := map[string]RGB{
		"felt":       c.felt,
		"text":       c.text,
		"highlight":  c.highlight,
		"accent":     c.accent,
		"background": c.background,
	}
	for _, name := range alphaBases {
		for pct := 10; pct <= 90; pct += 10 {
			set(AlphaKey(name, pct), AlphaOver(bases[name], c.felt, float64(pct)/100))
		}
	}

	// fonts
	out[KeyFontSeatName] = "sans bold 15"
	out[KeyFontStack] = "sans regular 13"
	out[KeyFontCard] = "sans bold 24"
	out[KeyFontPot] = "sans bold 16"
	out[KeyFontStatus] = "sans bold 14"
	out[KeyFontBadge] = "sans bold 11"
	out[KeyFontDealer] = "sans bold 12"
	out[KeyFontProgress] = "sans regular 11"
	out[KeyFontOverlay] = "sans regular 16"

	return out
}
