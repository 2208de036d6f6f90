package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Snapshot is the most recent frame held by a Memory sink.
type Snapshot struct {
	ID    uuid.UUID
	Seq   uint64
	At    time.Time
	Frame *image.RGBA
}

// Memory keeps a copy of the latest frame for readers on other goroutines,
// such as the HTTP frame endpoint.
type Memory struct {
	mu     sync.RWMutex
	latest Snapshot
	png    []byte
	now    func() time.Time
}

func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) WriteFrame(frame *image.RGBA) error {
	cp := &image.RGBA{
		Pix:    append([]uint8(nil), frame.Pix...),
		Stride: frame.Stride,
		Rect:   frame.Rect,
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest = Snapshot{ID: uuid.New(), Seq: m.latest.Seq + 1, At: m.now(), Frame: cp}
	m.png = nil
	return nil
}

// Latest returns the last frame. ok is false before the first frame.
func (m *Memory) Latest() (Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest, m.latest.Frame != nil
}

// PNG returns the last frame encoded as PNG. The encoding is cached until
// the next frame arrives.
func (m *Memory) PNG() ([]byte, Snapshot, error) {
	m.mu.RLock()
	snap, data := m.latest, m.png
	m.mu.RUnlock()
	if snap.Frame == nil {
		return nil, snap, ErrNoFrame
	}
	if data != nil {
		return data, snap, nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, snap.Frame); err != nil {
		return nil, snap, fmt.Errorf("encode png: %w", err)
	}
	data = buf.Bytes()
	m.mu.Lock()
	if m.latest.ID == snap.ID {
		m.png = data
	}
	m.mu.Unlock()
	return data, snap, nil
}

func (m *Memory) Close() error { return nil }
