package render

import (
	"fmt"
	"time"

	"github.com/rook-computer/feltview/internal/loop"
)

// SurfaceManager owns the lazy creation and resizing of the surface.
// All methods must be called from the scheduler's goroutine.
type SurfaceManager struct {
	host  Host
	sched loop.Scheduler
	cfg   SurfaceConfig
	log   Logger

	// NewSurface constructs the surface; replaceable in tests.
	NewSurface func(width, height int) (*Surface, error)
	// OnReady, when set, is called after every successful construction.
	OnReady func(width, height int)

	surface   *Surface
	ready     bool
	deferred  func()
	pending   loop.Handle
	attempts  int
	exhausted bool
}

func NewSurfaceManager(host Host, sched loop.Scheduler, cfg SurfaceConfig, log Logger) *SurfaceManager {
	if log == nil {
		log = noopLogger{}
	}
	return &SurfaceManager{host: host, sched: sched, cfg: cfg, log: log, NewSurface: NewSurface}
}

// Start schedules the first measurement.
func (m *SurfaceManager) Start() {
	m.schedule(0)
}

// NotifyLayout tells the manager the host extent may have changed. It
// re-arms polling that stopped after MaxAttempts.
func (m *SurfaceManager) NotifyLayout() {
	m.attempts = 0
	m.exhausted = false
	if m.pending != nil {
		m.pending.Cancel()
		m.pending = nil
	}
	m.schedule(0)
}

func (m *SurfaceManager) IsReady() bool { return m.ready }

// Surface returns the current surface, or nil when not ready.
func (m *SurfaceManager) Surface() *Surface {
	if !m.ready {
		return nil
	}
	return m.surface
}

// Attempts is the number of measurements since the last success or re-arm.
func (m *SurfaceManager) Attempts() int { return m.attempts }

// Exhausted reports whether polling stopped after MaxAttempts.
func (m *SurfaceManager) Exhausted() bool { return m.exhausted }

// HasDeferred reports whether a render is waiting for the surface.
func (m *SurfaceManager) HasDeferred() bool { return m.deferred != nil }

// DeferRender runs fn now when the surface is ready; otherwise it replaces
// the single deferred slot and fn runs once the surface is created.
func (m *SurfaceManager) DeferRender(fn func()) {
	if m.ready {
		fn()
		return
	}
	m.deferred = fn
}

func (m *SurfaceManager) schedule(d time.Duration) {
	if m.pending != nil {
		return
	}
	m.pending = m.sched.ScheduleAfter(d, m.measure)
}

func (m *SurfaceManager) measure() {
	m.pending = nil
	m.attempts++
	w, h := m.host.Size()
	if w <= m.cfg.MinWidth || h <= m.cfg.MinHeight {
		if m.ready {
			m.log.Infof("surface", "host shrank to %dx%d, surface released", w, h)
			m.ready = false
			m.surface = nil
		}
		m.retry(fmt.Sprintf("host size %dx%d below %dx%d", w, h, m.cfg.MinWidth, m.cfg.MinHeight))
		return
	}
	if m.ready {
		if sw, sh := m.surface.Size(); sw == w && sh == h {
			m.attempts = 0
			return
		}
	}
	s, err := m.construct(w, h)
	if err != nil {
		m.ready = false
		m.surface = nil
		m.log.Errorf("surface", "create %dx%d: %v", w, h, err)
		m.retry("construction failed")
		return
	}
	resized := m.ready
	m.surface = s
	m.ready = true
	m.log.Infof("surface", "ready at %dx%d after %d attempts (resize=%t)", w, h, m.attempts, resized)
	m.attempts = 0
	if m.OnReady != nil {
		m.OnReady(w, h)
	}
	if fn := m.deferred; fn != nil {
		m.deferred = nil
		fn()
	}
}

// construct calls NewSurface and turns a panic into an error.
func (m *SurfaceManager) construct(w, h int) (s *Surface, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	s, err = m.NewSurface(w, h)
	if err == nil && s == nil {
		err = fmt.Errorf("nil surface")
	}
	return s, err
}

func (m *SurfaceManager) retry(reason string) {
	if m.cfg.MaxAttempts > 0 && m.attempts >= m.cfg.MaxAttempts {
		if !m.exhausted {
			m.log.Errorf("surface", "giving up after %d attempts: %s; waiting for layout signal", m.attempts, reason)
		}
		m.exhausted = true
		return
	}
	m.schedule(m.cfg.RetryInterval)
}
