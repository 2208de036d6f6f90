package state

import (
	"errors"
	"fmt"
)

var (
	ErrMultipleActing  = errors.New("more than one seat is acting")
	ErrNegativeBet     = errors.New("negative bet")
	ErrBoardLength     = errors.New("board must hold 0, 3, 4 or 5 cards")
	ErrHoleCardCount   = errors.New("hole cards must be 0 or 2")
	ErrBoardShrank     = errors.New("board shrank within a hand")
	ErrSeatCountChange = errors.New("seat count changed within a hand")
)

// Validate reports every single-snapshot invariant the state violates.
// Rendering tolerates invalid states; callers log the result.
func (t TableState) Validate() error {
	var errs []error
	acting := 0
	for i, seat := range t.Seats {
		if seat.Acting {
			acting++
		}
		if seat.CurrentBet < 0 {
			errs = append(errs, fmt.Errorf("seat %d: %w", i, ErrNegativeBet))
		}
		if n := len(seat.HoleCards); n != 0 && n != 2 {
			errs = append(errs, fmt.Errorf("seat %d has %d: %w", i, n, ErrHoleCardCount))
		}
		for _, code := range seat.HoleCards {
			if _, err := ParseCard(code); err != nil {
				errs = append(errs, fmt.Errorf("seat %d: %w", i, err))
			}
		}
	}
	if acting > 1 {
		errs = append(errs, fmt.Errorf("%d seats: %w", acting, ErrMultipleActing))
	}
	switch len(t.Board) {
	case 0, 3, 4, 5:
	default:
		errs = append(errs, fmt.Errorf("board has %d cards: %w", len(t.Board), ErrBoardLength))
	}
	for _, code := range t.Board {
		if _, err := ParseCard(code); err != nil {
			errs = append(errs, fmt.Errorf("board: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ValidateTransition checks the invariants that span two consecutive
// snapshots of the same hand.
func ValidateTransition(prev, next TableState) error {
	if prev.HandID != next.HandID {
		return nil
	}
	var errs []error
	if len(next.Board) < len(prev.Board) {
		errs = append(errs, fmt.Errorf("%d -> %d cards: %w", len(prev.Board), len(next.Board), ErrBoardShrank))
	}
	if len(next.Seats) != len(prev.Seats) {
		errs = append(errs, fmt.Errorf("%d -> %d seats: %w", len(prev.Seats), len(next.Seats), ErrSeatCountChange))
	}
	return errors.Join(errs...)
}
