package components

import (
	"strings"
	"testing"

	"github.com/rook-computer/feltview/internal/render"
	"github.com/rook-computer/feltview/internal/render/layout"
	"github.com/rook-computer/feltview/internal/state"
	"github.com/rook-computer/feltview/internal/theme"
)

type approxText struct{}

func (approxText) Measure(text string, spec theme.FontSpec) (float64, float64) {
	return float64(len([]rune(text))) * spec.Size * 0.55, spec.Size * 1.2
}

func newFrame(t *testing.T, st state.TableState, ts *theme.TokenSet) *render.Frame {
	t.Helper()
	s, err := render.NewSurface(1280, 720)
	if err != nil {
		t.Fatal(err)
	}
	return &render.Frame{
		State:    st,
		Surface:  s,
		Tokens:   ts,
		Geometry: layout.Compute(1280, 720, len(st.Seats)),
		Text:     approxText{},
	}
}

func sixMax() state.TableState {
	seats := make([]state.SeatView, 6)
	for i := range seats {
		seats[i] = state.SeatView{
			PlayerID:     "p" + itoa(i),
			DisplayName:  "Player " + itoa(i),
			CurrentStack: 1000,
			HoleCards:    []string{"??", "??"},
		}
	}
	seats[0].HoleCards = []string{"Ah", "Ks"}
	seats[2].Acting = true
	seats[3].Folded = true
	seats[4].CurrentBet = 125
	seats[4].LastAction = state.ActionRaise
	return state.TableState{
		HandID: "42",
		Seats:  seats,
		Board:  []string{"2c", "7d", "Td"},
		Street: state.FLOP,
		Pot:    state.Pot{Amount: 300, SidePots: []int64{80}},
		Dealer: state.Dealer{SeatIndex: 1},
		Action: state.Action{CurrentSeatIndex: 4, ActionType: state.ActionRaise, Amount: 125},
		Blinds: state.Blinds{Small: 5, Big: 10},
	}
}

func TestComponentsTolerateEmptyState(t *testing.T) {
	ts := theme.DeriveTokens(theme.DefaultPalette)
	for _, c := range Default() {
		f := newFrame(t, state.TableState{}, ts)
		if err := c.Render(f); err != nil {
			t.Fatalf("%s: %v", c.Name(), err)
		}
		for _, p := range f.Surface.Primitives() {
			if !p.Layer.Valid() {
				t.Fatalf("%s drew an untagged primitive: %+v", c.Name(), p)
			}
		}
	}
}

func TestActingHighlightTargetsOneSeat(t *testing.T) {
	ts := theme.DeriveTokens(theme.DefaultPalette)
	f := newFrame(t, sixMax(), ts)
	if err := (ActingHighlight{}).Render(f); err != nil {
		t.Fatal(err)
	}
	prims := f.Surface.Filter(render.LayerActingHighlight)
	if len(prims) == 0 {
		t.Fatal("acting seat should be highlighted")
	}
	for _, p := range prims {
		if p.Seat != 2 {
			t.Fatalf("highlight primitive tagged for seat %d, want 2", p.Seat)
		}
	}

	quiet := sixMax()
	quiet.Seats[2].Acting = false
	f = newFrame(t, quiet, ts)
	if err := (ActingHighlight{}).Render(f); err != nil {
		t.Fatal(err)
	}
	if f.Surface.Len() != 0 {
		t.Fatalf("no acting seat should draw nothing, got %d primitives", f.Surface.Len())
	}
}

func TestComponentsDrawOnTheirLayers(t *testing.T) {
	ts := theme.DeriveTokens(theme.DefaultPalette)
	want := map[string][]render.Layer{
		"table":            {render.LayerBackground},
		"seats":            {render.LayerSeatPods},
		"hole_cards":       {render.LayerHoleCards},
		"stacks":           {render.LayerStackLabels},
		"board":            {render.LayerCommunityCards},
		"bets":             {render.LayerBetChips},
		"pot":              {render.LayerPot},
		"dealer":           {render.LayerBetChips},
		"acting_highlight": {render.LayerActingHighlight},
		"status":           {render.LayerStatusBadges},
		"progress":         {render.LayerStatusBadges},
	}
	for _, c := range Default() {
		layers, ok := want[c.Name()]
		if !ok {
			continue
		}
		f := newFrame(t, sixMax(), ts)
		if err := c.Render(f); err != nil {
			t.Fatalf("%s: %v", c.Name(), err)
		}
		if f.Surface.Len() == 0 {
			t.Fatalf("%s drew nothing", c.Name())
		}
		for _, p := range f.Surface.Primitives() {
			found := false
			for _, l := range layers {
				found = found || p.Layer == l
			}
			if !found {
				t.Fatalf("%s drew on layer %v", c.Name(), p.Layer)
			}
		}
	}
}

func TestThemeSwitchReskins(t *testing.T) {
	other := theme.DefaultPalette
	other.Background = "#203040"
	other.Felt = "#553311"
	a := newFrame(t, sixMax(), theme.DeriveTokens(theme.DefaultPalette))
	b := newFrame(t, sixMax(), theme.DeriveTokens(other))
	_ = (TableBackground{}).Render(a)
	_ = (TableBackground{}).Render(b)

	pa, pb := a.Surface.Primitives(), b.Surface.Primitives()
	if len(pa) != len(pb) {
		t.Fatalf("same state drew %d vs %d primitives", len(pa), len(pb))
	}
	if pa[0].Fill == pb[0].Fill {
		t.Fatal("background fill did not follow the theme")
	}
	if got := pb[0].Fill; got != theme.MustHex("#203040").NRGBA() {
		t.Fatalf("background = %+v", got)
	}
}

func TestCardsFollowSuitInk(t *testing.T) {
	ts := theme.DeriveTokens(theme.DefaultPalette)
	f := newFrame(t, sixMax(), ts)
	_ = (Board{}).Render(f)

	red := ts.Color(theme.KeyCardSuitRed)
	black := ts.Color(theme.KeyCardSuitBlack)
	var texts []render.Primitive
	for _, p := range f.Surface.Primitives() {
		if p.Kind == render.KindText {
			texts = append(texts, p)
		}
	}
	// three face-up cards, rank and suit each
	if len(texts) != 6 {
		t.Fatalf("board drew %d text primitives, want 6", len(texts))
	}
	if texts[0].Fill != black || texts[2].Fill != red {
		t.Fatalf("suit ink wrong: clubs %+v diamonds %+v", texts[0].Fill, texts[2].Fill)
	}
	if texts[4].Text != "10" {
		t.Fatalf("ten should print as 10, got %q", texts[4].Text)
	}
	wantSize := f.Geometry.CardTextSize
	if texts[1].Font.Size > wantSize+1e-9 {
		t.Fatalf("card text larger than %v: %v", wantSize, texts[1].Font.Size)
	}
}

func TestFoldedCardsHideFaces(t *testing.T) {
	st := sixMax()
	st.Seats[0].Folded = true
	f := newFrame(t, st, theme.DeriveTokens(theme.DefaultPalette))
	_ = (HoleCards{}).Render(f)
	for _, p := range f.Surface.Primitives() {
		if p.Seat == 0 && p.Kind == render.KindText {
			t.Fatalf("folded seat shows card text %q", p.Text)
		}
	}
}

func TestOverlay(t *testing.T) {
	ts := theme.DeriveTokens(theme.DefaultPalette)
	o := &Overlay{}

	f := newFrame(t, state.TableState{}, ts)
	_ = o.Render(f)
	if !hasText(f.Surface, "Waiting for players") {
		t.Fatal("empty table should show the waiting notice")
	}

	st := sixMax()
	st.ShareCode = "FELT-42"
	f = newFrame(t, st, ts)
	if err := o.Render(f); err != nil {
		t.Fatal(err)
	}
	var images int
	for _, p := range f.Surface.Primitives() {
		if p.Kind == render.KindImage && p.Image != nil {
			images++
		}
	}
	if images != 1 || !hasText(f.Surface, "FELT-42") {
		t.Fatalf("share code overlay missing (images=%d)", images)
	}
	first := o.qrImg
	_ = o.Render(newFrame(t, st, ts))
	if o.qrImg != first {
		t.Fatal("QR image should be reused while the code is unchanged")
	}
}

func TestStatusShowsStreetAndBlinds(t *testing.T) {
	f := newFrame(t, sixMax(), theme.DeriveTokens(theme.DefaultPalette))
	_ = (StatusLabels{}).Render(f)
	for _, want := range []string{"FLOP", "Blinds 5 / 10", "Raise"} {
		if !hasText(f.Surface, want) {
			t.Fatalf("status missing %q", want)
		}
	}
}

func hasText(s *render.Surface, sub string) bool {
	for _, p := range s.Primitives() {
		if p.Kind == render.KindText && strings.Contains(p.Text, sub) {
			return true
		}
	}
	return false
}

func TestFormatting(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0"},
		{950, "950"},
		{1250, "1,250"},
		{2500000, "2,500,000"},
	}
	for _, tt := range tests {
		if got := formatChips(tt.amount); got != tt.want {
			t.Fatalf("formatChips(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
	if got := displayName("Bartholomew Fitzgerald", 10); got != "Bartholom…" {
		t.Fatalf("displayName = %q", got)
	}
	if got := actionLabel("allin"); got != "All-in" {
		t.Fatalf("actionLabel = %q", got)
	}
}

func TestChipBreakdown(t *testing.T) {
	got := chipBreakdown(1630, 8)
	want := []int64{1000, 500, 100, 25, 5}
	if len(got) != len(want) {
		t.Fatalf("chipBreakdown = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chipBreakdown = %v, want %v", got, want)
		}
	}
	if got := chipBreakdown(1000000, 4); len(got) != 4 {
		t.Fatalf("chip count not bounded: %v", got)
	}
}
