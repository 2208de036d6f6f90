package intent

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rook-computer/feltview/internal/state"
)

func TestChipToPotForwardedOnce(t *testing.T) {
	from := &state.Point{X: 120, Y: 400}
	to := &state.Point{X: 640, Y: 330}
	effect := state.Effect{
		Type:     state.EffectChipToPot,
		FromSeat: 3,
		Amount:   250,
		Geometry: state.Geometry{From: from, To: to},
	}

	var got []Intent
	b := NewBridge(func(in Intent) { got = append(got, in) }, nil)
	b.Forward([]state.Effect{effect})

	if len(got) != 1 {
		t.Fatalf("handler called %d times, want 1", len(got))
	}
	if got[0].Type != RequestAnimation {
		t.Fatalf("type = %s", got[0].Type)
	}
	if diff := cmp.Diff(effect.Geometry, got[0].Payload.Geometry); diff != "" {
		t.Fatalf("payload geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		effect state.EffectType
		want   Type
		ok     bool
	}{
		{state.EffectChipToPot, RequestAnimation, true},
		{state.EffectPotToWinner, RequestAnimation, true},
		{state.EffectHighlightPlayer, RequestAnimation, true},
		{state.EffectDealCards, RequestAnimation, true},
		{state.EffectPlaySound, RequestSound, true},
		{"CONFETTI", RequestAnimation, true},
		{"", "", false},
	}
	for _, tt := range tests {
		in, ok := Translate(state.Effect{Type: tt.effect})
		if ok != tt.ok || in.Type != tt.want {
			t.Fatalf("Translate(%q) = %v,%v want %v,%v", tt.effect, in.Type, ok, tt.want, tt.ok)
		}
	}
}

func TestHandlerPanicIsSwallowed(t *testing.T) {
	calls := 0
	b := NewBridge(func(in Intent) {
		calls++
		if in.Payload.FromSeat == 0 {
			panic("consumer crashed")
		}
	}, nil)
	b.Forward([]state.Effect{
		{Type: state.EffectChipToPot, FromSeat: 0},
		{Type: state.EffectChipToPot, FromSeat: 1},
		{Type: ""},
	})
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2", calls)
	}
	forwarded, failed := b.Stats()
	if forwarded != 1 || failed != 1 {
		t.Fatalf("stats = %d forwarded, %d failed", forwarded, failed)
	}
}

func TestFanout(t *testing.T) {
	var a, c int
	h := Fanout(
		func(Intent) { a++ },
		func(Intent) { panic("middle") },
		nil,
		func(Intent) { c++ },
	)
	b := NewBridge(h, nil)
	b.Forward([]state.Effect{{Type: state.EffectPotToWinner}})
	if a != 1 || c != 1 {
		t.Fatalf("fanout reached a=%d c=%d", a, c)
	}
	if _, failed := b.Stats(); failed != 1 {
		t.Fatalf("failed = %d, want 1", failed)
	}
}
