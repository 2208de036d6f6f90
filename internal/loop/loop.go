// Package loop runs every piece of rendering work on one goroutine.
// Other goroutines hand work over with Post or Do; delayed work goes
// through ScheduleAfter and is also executed on the loop goroutine.
package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

var ErrStopped = errors.New("loop stopped")

// Scheduler is the delayed-callback primitive. Callbacks run on the
// scheduler's own goroutine, never concurrently with each other.
type Scheduler interface {
	ScheduleAfter(d time.Duration, fn func()) Handle
}

// Handle cancels a scheduled callback. Cancel reports whether the callback
// was still pending.
type Handle interface {
	Cancel() bool
}

type Loop struct {
	tasks   chan func()
	done    chan struct{}
	running atomic.Bool
	stopped atomic.Bool
}

func New(queue int) *Loop {
	if queue <= 0 {
		queue = 64
	}
	return &Loop{tasks: make(chan func(), queue), done: make(chan struct{})}
}

// Run executes posted work until ctx is cancelled. It must be called once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("loop already running")
	}
	defer func() {
		l.stopped.Store(true)
		close(l.done)
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Post queues fn. It blocks while the queue is full and returns false once
// the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	if l.stopped.Load() {
		return false
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to finish. A ctx that is
// already done fails without queueing fn.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	finished := make(chan struct{})
	if !l.Post(func() { defer close(finished); fn() }) {
		return ErrStopped
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

func (l *Loop) ScheduleAfter(d time.Duration, fn func()) Handle {
	h := &timerHandle{}
	h.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if h.fired.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	return h
}

type timerHandle struct {
	timer *time.Timer
	fired atomic.Bool
}

func (h *timerHandle) Cancel() bool {
	h.timer.Stop()
	return h.fired.CompareAndSwap(false, true)
}
