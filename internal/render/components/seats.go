package components

import (
	"image/color"
	"math"

	"github.com/rook-computer/feltview/internal/render"
	"github.com/rook-computer/feltview/internal/state"
	"github.com/rook-computer/feltview/internal/theme"
)

// Seats draws a pod for every seat with the player name and position.
type Seats struct{}

func (Seats) Name() string { return "seats" }

func (Seats) Render(f *render.Frame) error {
	t := f.Tokens
	l := render.LayerSeatPods
	for i, seat := range f.State.Seats {
		sg, ok := f.Geometry.Seat(i)
		if !ok {
			continue
		}
		fill, border, nameInk := podColors(t, seat)
		bw := math.Max(1, sg.Pod.H*0.05)
		f.Draw(render.RectPrim(l, sg.Pod).Rounded(sg.Pod.H*0.28).Filled(fill).Stroked(border, bw).ForSeat(i))
		if seat.Empty() {
			font := f.Font(theme.KeyFontStack)
			f.Draw(render.TextPrim(l, "Open seat", sg.Pod.Center(), font, t.Color(theme.KeySeatNameFolded)).ForSeat(i))
			continue
		}
		name := seat.DisplayName
		if name == "" {
			name = seat.PlayerID
		}
		name = displayName(name, 14)
		font := fitFont(f.Text, name, f.Font(theme.KeyFontSeatName), sg.Name.W, 6)
		f.Draw(render.TextPrim(l, name, sg.Name.Center(), font, nameInk).ForSeat(i))

		if seat.PositionLabel != "" {
			pos := upperLabel(seat.PositionLabel)
			pf := f.Font(theme.KeyFontBadge)
			at := sg.Pod
			at.Y -= sg.Pod.H * 0.2
			at.H = sg.Pod.H * 0.2
			f.Draw(render.TextPrim(l, pos, at.Center(), pf, t.Color(theme.KeySeatPosition)).Anchored(0.5, 1).ForSeat(i))
		}
	}
	return nil
}

func podColors(t *theme.TokenSet, seat state.SeatView) (fill, border, name color.NRGBA) {
	switch {
	case seat.Empty():
		return t.Color(theme.KeySeatPodEmpty), t.Color(theme.KeySeatPodBorder), t.Color(theme.KeySeatNameFolded)
	case seat.Winner:
		return t.Color(theme.KeySeatPodWinner), t.Color(theme.KeyStateWinnerBorder), t.Color(theme.KeySeatName)
	case seat.Folded:
		return t.Color(theme.KeyStateFoldedFill), t.Color(theme.KeySeatPodFoldedBorder), t.Color(theme.KeySeatNameFolded)
	case seat.AllIn:
		return t.Color(theme.KeySeatPodAllIn), t.Color(theme.KeySeatPodAllInBorder), t.Color(theme.KeySeatName)
	}
	return t.Color(theme.KeySeatPod), t.Color(theme.KeySeatPodBorder), t.Color(theme.KeySeatName)
}

// StackLabels prints each player's current stack under the name.
type StackLabels struct{}

func (StackLabels) Name() string { return "stacks" }

func (StackLabels) Render(f *render.Frame) error {
	t := f.Tokens
	l := render.LayerStackLabels
	for i, seat := range f.State.Seats {
		sg, ok := f.Geometry.Seat(i)
		if !ok || seat.Empty() {
			continue
		}
		text := formatChips(seat.CurrentStack)
		if seat.AllIn && seat.CurrentStack == 0 {
			text = "ALL IN"
		}
		box := sg.Stack.Inset(sg.Stack.H * 0.08)
		drawBadge(f, l, i, box, text, f.Font(theme.KeyFontStack),
			t.Color(theme.KeySeatStackBg), t.Color(theme.KeySeatStack), t.Color(theme.KeySeatStackBorder))
	}
	return nil
}

// HoleCards draws each seat's two private cards.
type HoleCards struct{}

func (HoleCards) Name() string { return "hole_cards" }

func (HoleCards) Render(f *render.Frame) error {
	for i, seat := range f.State.Seats {
		sg, ok := f.Geometry.Seat(i)
		if !ok || seat.Empty() || len(seat.HoleCards) == 0 {
			continue
		}
		for j, code := range seat.HoleCards {
			if j >= len(sg.Cards) {
				break
			}
			if seat.Folded && !seat.Showdown {
				code = ""
			}
			drawCard(f, render.LayerHoleCards, i, sg.Cards[j], code, seat.Folded)
		}
	}
	return nil
}
