package state

import (
	"fmt"
	"strings"
)

type Suit byte

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
)

func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	}
	return "?"
}

// Red reports whether the suit prints in the red ink.
func (s Suit) Red() bool {
	return s == Hearts || s == Diamonds
}

// Card is a parsed card code. A zero Rank means the card is face down.
type Card struct {
	Rank byte // 2..14, ace high
	Suit Suit
}

func (c Card) FaceDown() bool {
	return c.Rank == 0
}

// RankLabel returns the printed rank, "10" rather than "T".
func (c Card) RankLabel() string {
	switch c.Rank {
	case 0:
		return ""
	case 14:
		return "A"
	case 13:
		return "K"
	case 12:
		return "Q"
	case 11:
		return "J"
	case 10:
		return "10"
	}
	return fmt.Sprintf("%d", c.Rank)
}

func (c Card) String() string {
	if c.FaceDown() {
		return "??"
	}
	return c.RankLabel() + c.Suit.Symbol()
}

// ParseCard converts codes such as "As", "Td", "10h" into a Card.
// "", "??" and "XX" denote a face-down card.
func ParseCard(code string) (Card, error) {
	code = strings.TrimSpace(code)
	switch strings.ToUpper(code) {
	case "", "??", "XX":
		return Card{}, nil
	}
	if len(code) < 2 {
		return Card{}, fmt.Errorf("invalid card code %q", code)
	}

	var suit Suit
	switch code[len(code)-1] {
	case 's', 'S':
		suit = Spades
	case 'h', 'H':
		suit = Hearts
	case 'c', 'C':
		suit = Clubs
	case 'd', 'D':
		suit = Diamonds
	default:
		return Card{}, fmt.Errorf("invalid suit in card code %q", code)
	}

	var rank byte
	switch strings.ToUpper(code[:len(code)-1]) {
	case "A":
		rank = 14
	case "K":
		rank = 13
	case "Q":
		rank = 12
	case "J":
		rank = 11
	case "T", "10":
		rank = 10
	case "9", "8", "7", "6", "5", "4", "3", "2":
		rank = code[0] - '0'
	default:
		return Card{}, fmt.Errorf("invalid rank in card code %q", code)
	}
	return Card{Rank: rank, Suit: suit}, nil
}
