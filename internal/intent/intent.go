// Package intent turns effect descriptors into outbound requests for an
// external animation or sound consumer. It never draws and never waits.
package intent

import (
	"sync/atomic"

	"github.com/rook-computer/feltview/internal/state"
)

type Type string

const (
	RequestAnimation Type = "REQUEST_ANIMATION"
	RequestSound     Type = "REQUEST_SOUND"
)

// Intent is what a handler receives: a request type and the original
// effect as payload.
type Intent struct {
	Type    Type         `json:"type"`
	Payload state.Effect `json:"payload"`
}

// Handler consumes intents. It is called synchronously on the render
// goroutine after a frame is drawn.
type Handler func(Intent)

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(component, format string, args ...interface{})  {}
func (noopLogger) Errorf(component, format string, args ...interface{}) {}

// Translate maps an effect to its intent. Effects without a type are not
// forwarded.
func Translate(e state.Effect) (Intent, bool) {
	switch e.Type {
	case "":
		return Intent{}, false
	case state.EffectPlaySound:
		return Intent{Type: RequestSound, Payload: e}, true
	}
	return Intent{Type: RequestAnimation, Payload: e}, true
}

// Bridge forwards effect batches to a handler. Handler panics are
// recovered and counted so a broken consumer cannot break rendering.
type Bridge struct {
	handler Handler
	log     logger

	forwarded atomic.Uint64
	failed    atomic.Uint64
}

func NewBridge(handler Handler, log logger) *Bridge {
	if log == nil {
		log = noopLogger{}
	}
	return &Bridge{handler: handler, log: log}
}

// Forward translates and delivers effects in order.
func (b *Bridge) Forward(effects []state.Effect) {
	if b == nil || b.handler == nil {
		return
	}
	for _, e := range effects {
		in, ok := Translate(e)
		if !ok {
			b.log.Errorf("intent", "dropping effect without type: %+v", e)
			continue
		}
		b.deliver(in)
	}
}

func (b *Bridge) deliver(in Intent) {
	defer func() {
		if r := recover(); r != nil {
			b.failed.Add(1)
			b.log.Errorf("intent", "handler failed on %s %s: %v", in.Type, in.Payload.Type, r)
		}
	}()
	b.handler(in)
	b.forwarded.Add(1)
}

// Stats returns how many intents were delivered and how many handler calls
// failed.
func (b *Bridge) Stats() (forwarded, failed uint64) {
	return b.forwarded.Load(), b.failed.Load()
}

// Fanout delivers every intent to each handler in turn. A panicking
// handler does not stop the ones after it.
func Fanout(handlers ...Handler) Handler {
	return func(in Intent) {
		var first any
		for _, h := range handlers {
			if h == nil {
				continue
			}
			func() {
				defer func() {
					if r := recover(); r != nil && first == nil {
						first = r
					}
				}()
				h(in)
			}()
		}
		if first != nil {
			panic(first)
		}
	}
}
