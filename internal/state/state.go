package state

import "strings"

type Street int

const (
	PREFLOP Street = iota
	FLOP
	TURN
	RIVER
)

func (s Street) String() string {
	switch s {
	case PREFLOP:
		return "preflop"
	case FLOP:
		return "flop"
	case TURN:
		return "turn"
	case RIVER:
		return "river"
	}
	return "unknown"
}

// ParseStreet accepts the lower or upper case street name.
func ParseStreet(name string) (Street, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "preflop", "":
		return PREFLOP, true
	case "flop":
		return FLOP, true
	case "turn":
		return TURN, true
	case "river":
		return RIVER, true
	}
	return PREFLOP, false
}

// MarshalText encodes the street as its upper case name.
func (s Street) MarshalText() ([]byte, error) {
	return []byte(strings.ToUpper(s.String())), nil
}

func (s *Street) UnmarshalText(text []byte) error {
	parsed, ok := ParseStreet(string(text))
	if !ok {
		return &UnknownValueError{Kind: "street", Value: string(text)}
	}
	*s = parsed
	return nil
}

type ActionType string

const (
	ActionNone  ActionType = ""
	ActionFold  ActionType = "fold"
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionBet   ActionType = "bet"
	ActionRaise ActionType = "raise"
	ActionAllIn ActionType = "allin"
)

type TableSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type SeatView struct {
	PlayerID      string     `json:"player_id"`
	DisplayName   string     `json:"display_name"`
	StartingStack int64      `json:"starting_stack"`
	CurrentStack  int64      `json:"current_stack"`
	CurrentBet    int64      `json:"current_bet"`
	HoleCards     []string   `json:"hole_cards,omitempty"`
	Folded        bool       `json:"folded,omitempty"`
	AllIn         bool       `json:"all_in,omitempty"`
	Acting        bool       `json:"acting,omitempty"`
	Winner        bool       `json:"winner,omitempty"`
	Showdown      bool       `json:"showdown,omitempty"`
	PositionLabel string     `json:"position_label,omitempty"`
	LastAction    ActionType `json:"last_action,omitempty"`
}

// Empty reports whether the seat has no player sitting in it.
func (s SeatView) Empty() bool {
	return s.PlayerID == "" && s.DisplayName == ""
}

type Pot struct {
	Amount   int64   `json:"amount"`
	SidePots []int64 `json:"side_pots,omitempty"`
}

// Total is the main pot plus every side pot.
func (p Pot) Total() int64 {
	total := p.Amount
	for _, side := range p.SidePots {
		total += side
	}
	return total
}

type Dealer struct {
	SeatIndex int `json:"seat_index"`
}

type Action struct {
	CurrentSeatIndex int        `json:"current_seat_index"`
	ActionType       ActionType `json:"action_type,omitempty"`
	Amount           int64      `json:"amount,omitempty"`
}

type Blinds struct {
	Small int64 `json:"small"`
	Big   int64 `json:"big"`
}

// TableState is the immutable snapshot rendered by one frame.
type TableState struct {
	HandID    string     `json:"hand_id,omitempty"`
	Table     TableSize  `json:"table"`
	Seats     []SeatView `json:"seats"`
	Board     []string   `json:"board"`
	Street    Street     `json:"street"`
	Pot       Pot        `json:"pot"`
	Dealer    Dealer     `json:"dealer"`
	Action    Action     `json:"action"`
	Blinds    Blinds     `json:"blinds"`
	Effects   []Effect   `json:"effects,omitempty"`
	ShareCode string     `json:"share_code,omitempty"`
}

// ActingSeat returns the index of the seat marked acting, or -1.
func (t TableState) ActingSeat() int {
	for i, seat := range t.Seats {
		if seat.Acting {
			return i
		}
	}
	return -1
}

// Seat returns the seat at index and whether the index is valid.
func (t TableState) Seat(index int) (SeatView, bool) {
	if index < 0 || index >= len(t.Seats) {
		return SeatView{}, false
	}
	return t.Seats[index], true
}

// Clone returns a deep copy so callers can keep a snapshot across frames.
func (t TableState) Clone() TableState {
	out := t
	if t.Seats != nil {
		out.Seats = make([]SeatView, len(t.Seats))
		for i, seat := range t.Seats {
			seat.HoleCards = cloneStrings(seat.HoleCards)
			out.Seats[i] = seat
		}
	}
	out.Board = cloneStrings(t.Board)
	if t.Pot.SidePots != nil {
		out.Pot.SidePots = append([]int64(nil), t.Pot.SidePots...)
	}
	if t.Effects != nil {
		out.Effects = make([]Effect, len(t.Effects))
		for i, effect := range t.Effects {
			out.Effects[i] = effect.Clone()
		}
	}
	return out
}

func cloneStrings(input []string) []string {
	if input == nil {
		return nil
	}
	out := make([]string, len(input))
	copy(out, input)
	return out
}

type UnknownValueError struct {
	Kind  string
	Value string
}

func (e *UnknownValueError) Error() string {
	return "unknown " + e.Kind + " " + `"` + e.Value + `"`
}
