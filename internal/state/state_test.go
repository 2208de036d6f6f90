package state

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		code     string
		rank     byte
		suit     Suit
		faceDown bool
		wantErr  bool
	}{
		{code: "As", rank: 14, suit: Spades},
		{code: "Td", rank: 10, suit: Diamonds},
		{code: "10h", rank: 10, suit: Hearts},
		{code: "7c", rank: 7, suit: Clubs},
		{code: "2S", rank: 2, suit: Spades},
		{code: "", faceDown: true},
		{code: "??", faceDown: true},
		{code: "xx", faceDown: true},
		{code: "Zs", wantErr: true},
		{code: "Ax", wantErr: true},
		{code: "A", wantErr: true},
	}
	for _, tc := range tests {
		card, err := ParseCard(tc.code)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseCard(%q): expected error", tc.code)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseCard(%q) err: %v", tc.code, err)
		}
		if card.FaceDown() != tc.faceDown {
			t.Fatalf("ParseCard(%q): faceDown=%v, want %v", tc.code, card.FaceDown(), tc.faceDown)
		}
		if !tc.faceDown && (card.Rank != tc.rank || card.Suit != tc.suit) {
			t.Fatalf("ParseCard(%q) = %+v", tc.code, card)
		}
	}
}

func TestCardLabels(t *testing.T) {
	card, _ := ParseCard("Th")
	if card.String() != "10♥" {
		t.Fatalf("expected 10♥, got %s", card.String())
	}
	if !card.Suit.Red() {
		t.Fatalf("hearts should be red")
	}
	spade, _ := ParseCard("Ks")
	if spade.Suit.Red() {
		t.Fatalf("spades should be black")
	}
}

func TestValidate(t *testing.T) {
	valid := TableState{
		Seats: []SeatView{
			{PlayerID: "a", HoleCards: []string{"As", "Kd"}, Acting: true},
			{PlayerID: "b"},
		},
		Board: []string{"2c", "3c", "4c"},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid state, got %v", err)
	}

	invalid := TableState{
		Seats: []SeatView{
			{PlayerID: "a", Acting: true, CurrentBet: -5},
			{PlayerID: "b", Acting: true, HoleCards: []string{"As"}},
		},
		Board: []string{"2c", "3c"},
	}
	err := invalid.Validate()
	for _, want := range []error{ErrMultipleActing, ErrNegativeBet, ErrHoleCardCount, ErrBoardLength} {
		if !errors.Is(err, want) {
			t.Fatalf("expected %v in %v", want, err)
		}
	}
}

func TestStoreApplyDetectsChangesAndTransitions(t *testing.T) {
	store := NewStore()
	if store.Applied() {
		t.Fatal("new store reports an applied state")
	}
	first := TableState{HandID: "h1", Seats: make([]SeatView, 2), Board: []string{"2c", "3c", "4c"}}

	changed, err := store.Apply(first)
	if !changed || err != nil {
		t.Fatalf("first apply: changed=%v err=%v", changed, err)
	}
	if !store.Applied() {
		t.Fatal("Applied false after first apply")
	}
	changed, err = store.Apply(first.Clone())
	if changed || err != nil {
		t.Fatalf("identical apply: changed=%v err=%v", changed, err)
	}

	shrunk := first.Clone()
	shrunk.Board = nil
	shrunk.Seats = make([]SeatView, 3)
	changed, err = store.Apply(shrunk)
	if !changed {
		t.Fatalf("expected change")
	}
	if !errors.Is(err, ErrBoardShrank) || !errors.Is(err, ErrSeatCountChange) {
		t.Fatalf("expected transition errors, got %v", err)
	}

	nextHand := shrunk.Clone()
	nextHand.HandID = "h2"
	nextHand.Seats = make([]SeatView, 2)
	if _, err := store.Apply(nextHand); err != nil {
		t.Fatalf("new hand should reset transition checks, got %v", err)
	}

	store.Reset()
	if store.Applied() {
		t.Fatal("Applied true after Reset")
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := TableState{
		Seats:   []SeatView{{HoleCards: []string{"As", "Ad"}}},
		Board:   []string{"2c", "3c", "4c"},
		Effects: []Effect{{Type: EffectChipToPot, Geometry: Geometry{From: &Point{X: 1, Y: 2}}}},
	}
	clone := orig.Clone()
	clone.Seats[0].HoleCards[0] = "Ks"
	clone.Board[0] = "9d"
	clone.Effects[0].Geometry.From.X = 99
	if orig.Seats[0].HoleCards[0] != "As" || orig.Board[0] != "2c" || orig.Effects[0].Geometry.From.X != 1 {
		t.Fatalf("clone shares memory with original")
	}
}

func TestStreetJSON(t *testing.T) {
	var st TableState
	if err := json.Unmarshal([]byte(`{"street":"TURN","seats":[],"board":[]}`), &st); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if st.Street != TURN {
		t.Fatalf("expected TURN, got %v", st.Street)
	}
	data, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back TableState
	if err := json.Unmarshal(data, &back); err != nil || back.Street != TURN {
		t.Fatalf("round trip failed: %v %v", err, back.Street)
	}
	if err := json.Unmarshal([]byte(`{"street":"showdown"}`), &st); err == nil {
		t.Fatalf("expected error for unknown street")
	}
}
