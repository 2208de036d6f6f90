// Package components holds the table renderers. Each one reads the frame's
// state, geometry and tokens and draws only its own layer(s).
package components

import "github.com/rook-computer/feltview/internal/render"

// Default returns the full table in registration order.
func Default() []render.Component {
	return []render.Component{
		TableBackground{},
		Seats{},
		HoleCards{},
		StackLabels{},
		Board{},
		BetChips{},
		Pot{},
		Dealer{},
		ActingHighlight{},
		StatusLabels{},
		Progress{},
		&Overlay{},
	}
}
