package components

import (
	"strings"

	"github.com/rook-computer/feltview/internal/render"
	"github.com/rook-computer/feltview/internal/render/layout"
	"github.com/rook-computer/feltview/internal/state"
	"github.com/rook-computer/feltview/internal/theme"
)

// StatusLabels draws the top status bar and the last-action badge of each
// seat.
type StatusLabels struct{}

func (StatusLabels) Name() string { return "status" }

func (StatusLabels) Render(f *render.Frame) error {
	t := f.Tokens
	g := f.Geometry
	st := f.State
	l := render.LayerStatusBadges

	bar := g.Status
	f.Draw(render.RectPrim(l, bar).Filled(t.Color(theme.KeyStatusBg)).WithOpacity(0.9))
	f.Draw(render.LinePrim(l, layout.Point{X: bar.X, Y: bar.Y + bar.H}, layout.Point{X: bar.X + bar.W, Y: bar.Y + bar.H},
		t.Color(theme.KeyStatusBorder), g.Unit*0.002))

	font := f.Font(theme.KeyFontStatus)
	pad := bar.H * 0.5
	left, rest := bar.SplitVertical(bar.W / 3)
	middle, right := rest.SplitVertical(bar.W / 3)

	f.Draw(render.TextPrim(l, upperLabel(st.Street.String()), layout.Point{X: left.X + pad, Y: left.Center().Y}, font,
		t.Color(theme.KeyStatusStreet)).Anchored(0, 0.5))

	if st.Blinds.Big > 0 {
		blinds := "Blinds " + formatChips(st.Blinds.Small) + " / " + formatChips(st.Blinds.Big)
		f.Draw(render.TextPrim(l, blinds, middle.Center(), font, t.Color(theme.KeyStatusText)))
	}

	var info []string
	if st.HandID != "" {
		info = append(info, "Hand #"+st.HandID)
	}
	if seat, ok := st.Seat(st.Action.CurrentSeatIndex); ok && st.Action.ActionType != state.ActionNone && !seat.Empty() {
		desc := displayName(seat.DisplayName, 12) + " " + strings.ToLower(actionLabel(string(st.Action.ActionType)))
		if st.Action.Amount > 0 {
			desc += " " + formatChips(st.Action.Amount)
		}
		info = append(info, desc)
	}
	if len(info) > 0 {
		text := strings.Join(info, "  ·  ")
		ft := fitFont(f.Text, text, f.Font(theme.KeyFontStatus), right.W-pad, 6)
		f.Draw(render.TextPrim(l, text, layout.Point{X: right.X + right.W - pad, Y: right.Center().Y}, ft,
			t.Color(theme.KeyStatusTextMuted)).Anchored(1, 0.5))
	}

	badgeFont := f.Font(theme.KeyFontBadge)
	for i, seat := range st.Seats {
		sg, ok := g.Seat(i)
		if !ok || seat.Empty() || seat.LastAction == state.ActionNone {
			continue
		}
		action := string(seat.LastAction)
		drawBadge(f, l, i, sg.Badge, actionLabel(action), badgeFont,
			t.Color(theme.ActionKey(action, "bg")), t.Color(theme.ActionKey(action, "fg")), t.Color(theme.ActionKey(action, "border")))
	}
	return nil
}

// Progress shows which street the hand has reached.
type Progress struct{}

func (Progress) Name() string { return "progress" }

var streets = []state.Street{state.PREFLOP, state.FLOP, state.TURN, state.RIVER}

func (Progress) Render(f *render.Frame) error {
	t := f.Tokens
	g := f.Geometry
	l := render.LayerStatusBadges
	if len(f.State.Seats) == 0 {
		return nil
	}
	f.Draw(render.RectPrim(l, g.Progress.Inset(-g.Progress.H*0.25)).Rounded(g.Progress.H).Filled(t.Color(theme.KeyProgressTrack)))
	segments := g.Progress.Columns(len(streets), g.Progress.H*0.4)
	font := f.Font(theme.KeyFontProgress)
	for i, seg := range segments {
		key := theme.KeyProgressPending
		switch {
		case streets[i] < f.State.Street:
			key = theme.KeyProgressDone
		case streets[i] == f.State.Street:
			key = theme.KeyProgressCurrent
		}
		f.Draw(render.RectPrim(l, seg).Rounded(seg.H/2).Filled(t.Color(key)))
		label := layout.Point{X: seg.Center().X, Y: seg.Y - seg.H*0.4}
		f.Draw(render.TextPrim(l, titleLabel(streets[i].String()), label, font, t.Color(theme.KeyProgressLabel)).Anchored(0.5, 1))
	}
	return nil
}
