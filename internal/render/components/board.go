package components

import (
	"math"

	"github.com/rook-computer/feltview/internal/render"
	"github.com/rook-computer/feltview/internal/render/layout"
	"github.com/rook-computer/feltview/internal/theme"
)

// Board draws the five community card slots.
type Board struct{}

func (Board) Name() string { return "board" }

func (Board) Render(f *render.Frame) error {
	for i, slot := range f.Geometry.Board {
		if i < len(f.State.Board) {
			drawCard(f, render.LayerCommunityCards, render.NoSeat, slot, f.State.Board[i], false)
			continue
		}
		drawPlaceholder(f, render.LayerCommunityCards, slot)
	}
	return nil
}

// BetChips draws the chips each seat has committed this street.
type BetChips struct{}

func (BetChips) Name() string { return "bets" }

func (BetChips) Render(f *render.Frame) error {
	t := f.Tokens
	g := f.Geometry
	l := render.LayerBetChips
	for i, seat := range f.State.Seats {
		sg, ok := g.Seat(i)
		if !ok || seat.CurrentBet <= 0 {
			continue
		}
		drawChipStack(f, l, i, sg.Bet, g.ChipRadius, chipBreakdown(seat.CurrentBet, 6))

		text := formatChips(seat.CurrentBet)
		font := f.Font(theme.KeyFontBadge)
		w, h := f.Text.Measure(text, font)
		box := layout.RectAround(layout.Point{X: sg.Bet.X, Y: sg.Bet.Y + g.ChipRadius*1.9}, w+h, h*1.3)
		f.Draw(render.RectPrim(l, box).Rounded(box.H/2).Filled(t.Color(theme.KeyBetLabelBg)).WithOpacity(0.85).ForSeat(i))
		f.Draw(render.TextPrim(l, text, box.Center(), font, t.Color(theme.KeyBetLabel)).ForSeat(i))
	}
	return nil
}

// Pot draws the pot chips and its total, with side pots listed below.
type Pot struct{}

func (Pot) Name() string { return "pot" }

func (Pot) Render(f *render.Frame) error {
	t := f.Tokens
	g := f.Geometry
	l := render.LayerPot
	pot := f.State.Pot
	if pot.Total() <= 0 {
		return nil
	}
	r := g.ChipRadius * 1.1
	left := layout.Point{X: g.Pot.X - r*2.6, Y: g.Pot.Y}
	f.Draw(render.CirclePrim(l, left, r).Filled(t.Color(theme.KeyPotChipFace)).Stroked(t.Color(theme.KeyPotChipEdge), math.Max(1, r*0.14)))
	drawStripes(f, l, render.NoSeat, left, r, int(t.Float(theme.KeyChipsStripeCount, 6)), t.Color(theme.KeyPotChipStripe))

	text := "Pot " + formatChips(pot.Total())
	font := f.Font(theme.KeyFontPot)
	w, h := f.Text.Measure(text, font)
	badge := layout.RectAround(layout.Point{X: g.Pot.X + r*0.8, Y: g.Pot.Y}, w+h*1.2, h*1.5)
	f.Draw(render.RectPrim(l, badge).Rounded(badge.H/2).Filled(t.Color(theme.KeyPotBadge)).Stroked(t.Color(theme.KeyPotBadgeRing), math.Max(1, badge.H*0.07)))
	f.Draw(render.TextPrim(l, text, badge.Center(), font, t.Color(theme.KeyPotText)))

	if len(pot.SidePots) == 0 {
		return nil
	}
	small := f.Font(theme.KeyFontBadge)
	y := badge.Y + badge.H*1.45
	for i, side := range pot.SidePots {
		label := "Side " + itoa(i+1) + ": " + formatChips(side)
		sw, sh := f.Text.Measure(label, small)
		box := layout.RectAround(layout.Point{X: g.Pot.X, Y: y}, sw+sh, sh*1.3)
		f.Draw(render.RectPrim(l, box).Rounded(box.H/2).Filled(t.Color(theme.KeyPotSideBadge)))
		f.Draw(render.TextPrim(l, label, box.Center(), small, t.Color(theme.KeyPotSideText)))
		y += box.H * 1.2
	}
	return nil
}

// Dealer draws the dealer button next to the dealer's pod.
type Dealer struct{}

func (Dealer) Name() string { return "dealer" }

func (Dealer) Render(f *render.Frame) error {
	t := f.Tokens
	idx := f.State.Dealer.SeatIndex
	sg, ok := f.Geometry.Seat(idx)
	if !ok {
		return nil
	}
	r := f.Geometry.DealerRadius
	l := render.LayerBetChips
	f.Draw(render.CirclePrim(l, sg.Dealer, r).Filled(t.Color(theme.KeyDealerFace)).Stroked(t.Color(theme.KeyDealerBorder), math.Max(1, r*0.15)).ForSeat(idx))
	font := f.Font(theme.KeyFontDealer).WithSize(r * 1.1)
	f.Draw(render.TextPrim(l, "D", sg.Dealer, font, t.Color(theme.KeyDealerText)).ForSeat(idx))
	return nil
}
