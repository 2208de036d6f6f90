package render

// Layer is a z-order bucket. Every primitive is tagged with one when it is
// created; LayerManager stacks the buckets in declaration order.
type Layer int

const (
	// LayerNone marks an untagged primitive. Untagged primitives stay below
	// every layer, in draw order.
	LayerNone Layer = iota
	LayerBackground
	LayerSeatPods
	LayerHoleCards
	LayerStackLabels
	LayerCommunityCards
	LayerBetChips
	LayerPot
	LayerActingHighlight
	LayerStatusBadges
	LayerOverlay
	LayerAnimation

	layerCount
)

var layerNames = [...]string{
	LayerNone:            "none",
	LayerBackground:      "background",
	LayerSeatPods:        "seat_pods",
	LayerHoleCards:       "hole_cards",
	LayerStackLabels:     "stack_labels",
	LayerCommunityCards:  "community_cards",
	LayerBetChips:        "bet_chips",
	LayerPot:             "pot",
	LayerActingHighlight: "acting_highlight",
	LayerStatusBadges:    "status_badges",
	LayerOverlay:         "overlay",
	LayerAnimation:       "animation",
}

func (l Layer) String() string {
	if l < 0 || l >= layerCount {
		return "unknown"
	}
	return layerNames[l]
}

// Valid reports whether l is one of the ordered layers.
func (l Layer) Valid() bool { return l > LayerNone && l < layerCount }

// Layers returns the fixed back-to-front layer order.
func Layers() []Layer {
	out := make([]Layer, 0, layerCount-1)
	for l := LayerBackground; l < layerCount; l++ {
		out = append(out, l)
	}
	return out
}

// LayerManager enforces the layer order on the current surface.
type LayerManager struct {
	surfaces *SurfaceManager
}

func NewLayerManager(surfaces *SurfaceManager) *LayerManager {
	return &LayerManager{surfaces: surfaces}
}

// EnforceOrder restacks the surface so primitives appear layer by layer.
// Within a layer the draw order is kept, which makes the operation
// idempotent.
func (m *LayerManager) EnforceOrder() {
	if m == nil || m.surfaces == nil {
		return
	}
	s := m.surfaces.Surface()
	if s == nil {
		return
	}
	s.prims = Stack(s.prims)
}

// Stack returns prims partitioned by layer: untagged first, then each
// layer in order, preserving relative order inside every bucket.
func Stack(prims []Primitive) []Primitive {
	var buckets [layerCount][]Primitive
	for _, p := range prims {
		l := p.Layer
		if !l.Valid() {
			l = LayerNone
		}
		buckets[l] = append(buckets[l], p)
	}
	out := make([]Primitive, 0, len(prims))
	for _, bucket := range buckets {
		out = append(out, bucket...)
	}
	return out
}
