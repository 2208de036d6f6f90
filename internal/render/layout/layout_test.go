package layout

import (
	"math"
	"testing"
)

func TestCardTiers(t *testing.T) {
	tests := []struct {
		seats int
		want  CardTier
	}{
		{0, TierLarge},
		{2, TierLarge},
		{4, TierLarge},
		{5, TierMedium},
		{7, TierMedium},
		{8, TierSmall},
		{9, TierSmall},
		{10, TierSmall},
	}
	for _, tt := range tests {
		if got := TierFor(tt.seats); got != tt.want {
			t.Fatalf("TierFor(%d) = %v, want %v", tt.seats, got, tt.want)
		}
	}
}

func TestCardSizingScenario(t *testing.T) {
	headsUp := Compute(1280, 720, 2)
	fullRing := Compute(1280, 720, 9)
	sixMax := Compute(1280, 720, 6)

	if headsUp.Tier != TierLarge {
		t.Fatalf("2 seats tier = %v", headsUp.Tier)
	}
	if fullRing.Tier != TierSmall {
		t.Fatalf("9 seats tier = %v", fullRing.Tier)
	}
	if !(headsUp.CardW > sixMax.CardW && sixMax.CardW > fullRing.CardW) {
		t.Fatalf("card widths not decreasing: %v %v %v", headsUp.CardW, sixMax.CardW, fullRing.CardW)
	}
	for _, g := range []Geometry{headsUp, sixMax, fullRing} {
		for _, seat := range g.Seats {
			for _, card := range seat.Cards {
				if card.W != g.Board[0].W {
					t.Fatalf("hole card width %v != board width %v", card.W, g.Board[0].W)
				}
			}
		}
		if want := CardTextFactor * g.CardW; math.Abs(g.CardTextSize-want) > 1e-9 {
			t.Fatalf("card text size = %v, want %v", g.CardTextSize, want)
		}
	}
}

func TestSeatsOnEllipse(t *testing.T) {
	g := Compute(1000, 800, 6)
	if len(g.Seats) != 6 {
		t.Fatalf("seats = %d", len(g.Seats))
	}
	first := g.Seats[0].Anchor
	if math.Abs(first.X-g.Center.X) > 1e-6 || first.Y <= g.Center.Y {
		t.Fatalf("seat 0 should sit at bottom center, got %+v (center %+v)", first, g.Center)
	}
	for _, seat := range g.Seats {
		dx := (seat.Anchor.X - g.Center.X) / g.RadiusX
		dy := (seat.Anchor.Y - g.Center.Y) / g.RadiusY
		if math.Abs(dx*dx+dy*dy-1) > 1e-9 {
			t.Fatalf("seat %d off the ellipse: %+v", seat.Index, seat.Anchor)
		}
	}
}

func TestComputeDeterministicAndEmpty(t *testing.T) {
	a := Compute(640, 480, 5)
	b := Compute(640, 480, 5)
	for i := range a.Seats {
		if a.Seats[i] != b.Seats[i] {
			t.Fatalf("seat %d differs between runs", i)
		}
	}
	empty := Compute(640, 480, 0)
	if len(empty.Seats) != 0 {
		t.Fatalf("expected no seats")
	}
	if _, ok := empty.Seat(0); ok {
		t.Fatal("Seat(0) on empty geometry should not exist")
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 100, H: 40}
	if got := r.Inset(5); got != (Rect{X: 15, Y: 15, W: 90, H: 30}) {
		t.Fatalf("Inset = %+v", got)
	}
	if got := r.Inset(30); got.H != 0 || got.W != 40 {
		t.Fatalf("over-inset = %+v", got)
	}
	left, right := r.SplitVertical(150)
	if left.W != 100 || right.W != 0 {
		t.Fatalf("SplitVertical clamp: %+v %+v", left, right)
	}
	top, bottom := r.SplitHorizontal(10)
	if top.H != 10 || bottom.Y != 20 || bottom.H != 30 {
		t.Fatalf("SplitHorizontal: %+v %+v", top, bottom)
	}
	if sq := r.FitSquare(); sq.W != 40 || sq.H != 40 || sq.Center() != r.Center() {
		t.Fatalf("FitSquare = %+v", sq)
	}
	cols := r.Columns(4, 4)
	if len(cols) != 4 || cols[3].X+cols[3].W != 110 {
		t.Fatalf("Columns = %+v", cols)
	}
	if got := (Rect{X: 10, Y: 10, W: -5, H: -5}).Normalize(); got != (Rect{X: 5, Y: 5, W: 5, H: 5}) {
		t.Fatalf("Normalize = %+v", got)
	}
}
