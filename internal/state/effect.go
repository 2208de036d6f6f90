package state

type EffectType string

const (
	EffectChipToPot       EffectType = "CHIP_TO_POT"
	EffectPotToWinner     EffectType = "POT_TO_WINNER"
	EffectHighlightPlayer EffectType = "HIGHLIGHT_PLAYER"
	EffectDealCards       EffectType = "DEAL_CARDS"
	EffectRevealCards     EffectType = "REVEAL_CARDS"
	EffectPlaySound       EffectType = "PLAY_SOUND"
)

// Point is a position in surface coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Geometry locates an effect on the surface. From/To are optional;
// consumers fall back to the seat and pot anchors when they are nil.
type Geometry struct {
	From *Point `json:"from,omitempty"`
	To   *Point `json:"to,omitempty"`
}

// Effect is a declarative request for an animation or other visual event.
// The renderer forwards effects, it never animates them.
type Effect struct {
	Type       EffectType        `json:"type"`
	FromSeat   int               `json:"from_seat"`
	ToSeat     int               `json:"to_seat"`
	Amount     int64             `json:"amount,omitempty"`
	DurationMs int               `json:"duration_ms,omitempty"`
	Geometry   Geometry          `json:"geometry"`
	Meta       map[string]string `json:"meta,omitempty"`
}

func (e Effect) Clone() Effect {
	out := e
	if e.Geometry.From != nil {
		from := *e.Geometry.From
		out.Geometry.From = &from
	}
	if e.Geometry.To != nil {
		to := *e.Geometry.To
		out.Geometry.To = &to
	}
	if e.Meta != nil {
		out.Meta = make(map[string]string, len(e.Meta))
		for k, v := range e.Meta {
			out.Meta[k] = v
		}
	}
	return out
}
