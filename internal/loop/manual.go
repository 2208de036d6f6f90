package loop

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by hand, for tests and offline rendering.
// Nothing runs until Advance or RunNext is called.
type Manual struct {
	now     time.Duration
	seq     int
	pending []*manualTask
}

type manualTask struct {
	at       time.Duration
	seq      int
	fn       func()
	canceled bool
}

func (t *manualTask) Cancel() bool {
	if t.canceled {
		return false
	}
	t.canceled = true
	return true
}

func NewManual() *Manual { return &Manual{} }

func (m *Manual) ScheduleAfter(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	m.seq++
	task := &manualTask{at: m.now + d, seq: m.seq, fn: fn}
	m.pending = append(m.pending, task)
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].at != m.pending[j].at {
			return m.pending[i].at < m.pending[j].at
		}
		return m.pending[i].seq < m.pending[j].seq
	})
	return task
}

// Now is the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration { return m.now }

// Pending counts callbacks that are scheduled and not cancelled.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.pending {
		if !t.canceled {
			n++
		}
	}
	return n
}

// RunNext advances to the earliest pending callback and runs it.
func (m *Manual) RunNext() bool {
	for len(m.pending) > 0 {
		task := m.pending[0]
		m.pending = m.pending[1:]
		if task.canceled {
			continue
		}
		task.canceled = true
		if task.at > m.now {
			m.now = task.at
		}
		task.fn()
		return true
	}
	return false
}

// Advance moves virtual time forward by d, running every callback that
// falls due, including ones scheduled by callbacks along the way.
func (m *Manual) Advance(d time.Duration) int {
	deadline := m.now + d
	ran := 0
	for {
		for len(m.pending) > 0 && m.pending[0].canceled {
			m.pending = m.pending[1:]
		}
		if len(m.pending) == 0 || m.pending[0].at > deadline {
			break
		}
		m.RunNext()
		ran++
	}
	m.now = deadline
	return ran
}
