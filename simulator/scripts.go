package main

import (
	"fmt"
	"sort"

	"github.com/rook-computer/feltview/internal/state"
)

// A script is the sequence of snapshots one hand goes through.
type script func() []state.TableState

var scripts = map[string]script{
	"heads-up":  headsUp,
	"six-max":   sixMax,
	"full-ring": fullRing,
}

func scriptNames() []string {
	names := make([]string, 0, len(scripts))
	for name := range scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func loadScript(name string) ([]state.TableState, error) {
	s, ok := scripts[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q", name)
	}
	return s(), nil
}

// hand records snapshots while a scripted hand is played out.
type hand struct {
	st     state.TableState
	states []state.TableState
}

func newHand(id string, names []string, stack, sb, bb int64, dealer int) *hand {
	h := &hand{st: state.TableState{
		HandID: id,
		Board:  []string{},
		Street: state.PREFLOP,
		Dealer: state.Dealer{SeatIndex: dealer},
		Blinds: state.Blinds{Small: sb, Big: bb},
	}}
	for i, name := range names {
		h.st.Seats = append(h.st.Seats, state.SeatView{
			PlayerID:      fmt.Sprintf("p%d", i+1),
			DisplayName:   name,
			StartingStack: stack,
			CurrentStack:  stack,
		})
	}
	n := len(names)
	if n == 2 {
		h.post(dealer, sb)
		h.post((dealer+1)%n, bb)
	} else {
		h.post((dealer+1)%n, sb)
		h.post((dealer+2)%n, bb)
	}
	return h
}

func (h *hand) post(seat int, amount int64) {
	s := &h.st.Seats[seat]
	s.CurrentStack -= amount
	s.CurrentBet += amount
}

func (h *hand) snap(effects ...state.Effect) {
	s := h.st.Clone()
	s.Effects = effects
	h.states = append(h.states, s)
}

func (h *hand) deal(holes map[int][2]string) {
	var effects []state.Effect
	for seat, cards := range holes {
		h.st.Seats[seat].HoleCards = []string{cards[0], cards[1]}
	}
	for seat := range h.st.Seats {
		if _, ok := holes[seat]; !ok {
			h.st.Seats[seat].HoleCards = []string{"??", "??"}
		}
		effects = append(effects, state.Effect{Type: state.EffectDealCards, FromSeat: -1, ToSeat: seat, DurationMs: 250})
	}
	h.snap(effects...)
}

func (h *hand) setActing(seat int) {
	for i := range h.st.Seats {
		h.st.Seats[i].Acting = i == seat
	}
	h.st.Action.CurrentSeatIndex = seat
}

// act applies one action. amount is what the seat adds to its bet.
func (h *hand) act(seat int, action state.ActionType, amount int64) {
	h.setActing(seat)
	h.snap(state.Effect{Type: state.EffectHighlightPlayer, FromSeat: seat, ToSeat: seat})

	s := &h.st.Seats[seat]
	s.LastAction = action
	h.st.Action.ActionType = action
	h.st.Action.Amount = amount
	var effects []state.Effect
	switch action {
	case state.ActionFold:
		s.Folded = true
		s.HoleCards = nil
	case state.ActionCheck:
		effects = append(effects, sound("check"))
	default:
		if amount >= s.CurrentStack {
			amount = s.CurrentStack
			s.AllIn = true
			s.LastAction = state.ActionAllIn
		}
		s.CurrentStack -= amount
		s.CurrentBet += amount
		effects = append(effects,
			state.Effect{Type: state.EffectChipToPot, FromSeat: seat, ToSeat: -1, Amount: amount, DurationMs: 400},
			sound("chips"))
	}
	h.snap(effects...)
}

// collect gathers bets into the pot and ends the betting round.
func (h *hand) collect() {
	var collected int64
	for i := range h.st.Seats {
		s := &h.st.Seats[i]
		collected += s.CurrentBet
		s.CurrentBet = 0
		s.LastAction = state.ActionNone
	}
	h.st.Pot.Amount += collected
	h.setActing(-1)
	h.st.Action = state.Action{CurrentSeatIndex: -1}
}

// street deals board cards for the next betting round.
func (h *hand) street(next state.Street, cards ...string) {
	h.collect()
	h.st.Street = next
	h.st.Board = append(h.st.Board, cards...)
	h.snap(state.Effect{Type: state.EffectDealCards, FromSeat: -1, ToSeat: -1, DurationMs: 300, Meta: map[string]string{"street": next.String()}})
}

// showdown reveals the live hands and ships the pot to winner.
func (h *hand) showdown(winner int, reveal map[int][2]string) {
	h.collect()
	var effects []state.Effect
	for seat, cards := range reveal {
		s := &h.st.Seats[seat]
		s.HoleCards = []string{cards[0], cards[1]}
		s.Showdown = true
		effects = append(effects, state.Effect{Type: state.EffectRevealCards, FromSeat: seat, ToSeat: seat})
	}
	sort.Slice(effects, func(i, j int) bool { return effects[i].FromSeat < effects[j].FromSeat })
	h.snap(effects...)

	h.award(winner)
}

func (h *hand) award(winner int) {
	pot := h.st.Pot.Total()
	h.st.Seats[winner].Winner = true
	h.st.Seats[winner].CurrentStack += pot
	h.st.Pot = state.Pot{}
	h.snap(
		state.Effect{Type: state.EffectPotToWinner, FromSeat: -1, ToSeat: winner, Amount: pot, DurationMs: 600},
		sound("win"),
	)
}

func sound(name string) state.Effect {
	return state.Effect{Type: state.EffectPlaySound, FromSeat: -1, ToSeat: -1, Meta: map[string]string{"sound": name}}
}

func headsUp() []state.TableState {
	h := newHand("hu-1", []string{"Ann", "Bo"}, 1000, 5, 10, 0)
	h.deal(map[int][2]string{0: {"Ah", "Kd"}})
	h.act(0, state.ActionRaise, 25)
	h.act(1, state.ActionCall, 20)
	h.street(state.FLOP, "Ac", "7d", "2s")
	h.act(1, state.ActionCheck, 0)
	h.act(0, state.ActionBet, 40)
	h.act(1, state.ActionCall, 40)
	h.street(state.TURN, "9h")
	h.act(1, state.ActionCheck, 0)
	h.act(0, state.ActionCheck, 0)
	h.street(state.RIVER, "Kc")
	h.act(1, state.ActionBet, 120)
	h.act(0, state.ActionCall, 120)
	h.showdown(0, map[int][2]string{0: {"Ah", "Kd"}, 1: {"7h", "7c"}})
	return h.states
}

func sixMax() []state.TableState {
	names := []string{"Ann", "Bartholomew Fitzgerald", "Cy", "Dana", "Eve", "Finn"}
	h := newHand("6m-1", names, 2000, 10, 20, 5)
	h.deal(map[int][2]string{0: {"Qs", "Qd"}})
	h.act(2, state.ActionFold, 0)
	h.act(3, state.ActionRaise, 60)
	h.act(4, state.ActionFold, 0)
	h.act(5, state.ActionCall, 60)
	h.act(0, state.ActionRaise, 170)
	h.act(1, state.ActionFold, 0)
	h.act(3, state.ActionCall, 120)
	h.act(5, state.ActionFold, 0)
	h.street(state.FLOP, "Qh", "8c", "3d")
	h.act(0, state.ActionBet, 250)
	h.act(3, state.ActionAllIn, 1820)
	h.act(0, state.ActionCall, 1570)
	h.street(state.TURN, "Jc")
	h.street(state.RIVER, "2h")
	h.showdown(0, map[int][2]string{0: {"Qs", "Qd"}, 3: {"Ac", "Ad"}})
	return h.states
}

func fullRing() []state.TableState {
	names := []string{"Ann", "Bo", "Cy", "Dana", "Eve", "Finn", "Gus", "Hana", "Ivo"}
	h := newHand("fr-1", names, 1500, 25, 50, 8)
	h.deal(map[int][2]string{4: {"Ts", "9s"}})
	for _, seat := range []int{2, 3} {
		h.act(seat, state.ActionFold, 0)
	}
	h.act(4, state.ActionCall, 50)
	for _, seat := range []int{5, 6, 7, 8} {
		h.act(seat, state.ActionFold, 0)
	}
	h.act(0, state.ActionCall, 25)
	h.act(1, state.ActionCheck, 0)
	h.street(state.FLOP, "8s", "7s", "2d")
	h.act(0, state.ActionCheck, 0)
	h.act(1, state.ActionBet, 100)
	h.act(4, state.ActionRaise, 300)
	h.act(0, state.ActionFold, 0)
	h.act(1, state.ActionCall, 200)
	h.street(state.TURN, "Js")
	h.act(1, state.ActionCheck, 0)
	h.act(4, state.ActionBet, 450)
	h.act(1, state.ActionFold, 0)
	h.collect()
	h.award(4)
	return h.states
}
