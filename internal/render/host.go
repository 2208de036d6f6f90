package render

import "sync"

// Host reports the extent of the container the surface lives in. It may
// report zero before the container is laid out.
type Host interface {
	Size() (width, height int)
}

// StaticHost always reports the same extent.
type StaticHost struct {
	Width, Height int
}

func (h StaticHost) Size() (int, int) { return h.Width, h.Height }

// ViewportHost is a host whose extent is set from outside, for example by
// an HTTP client announcing its viewport. It starts at 0x0.
type ViewportHost struct {
	mu            sync.RWMutex
	width, height int
}

func NewViewportHost() *ViewportHost { return &ViewportHost{} }

func (h *ViewportHost) Size() (int, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.width, h.height
}

// Resize stores a new extent and reports whether it changed.
func (h *ViewportHost) Resize(width, height int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.width == width && h.height == height {
		return false
	}
	h.width, h.height = width, height
	return true
}
