// Package sink delivers rasterized frames to their destinations.
package sink

import (
	"errors"
	"fmt"
	"image"
)

var ErrNoFrame = errors.New("no frame rendered yet")

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(component, format string, args ...interface{})  {}
func (noopLogger) Errorf(component, format string, args ...interface{}) {}

// Sink receives finished frames. WriteFrame must not keep frame after it
// returns unless it copies it; the same frame is handed to every sink.
type Sink interface {
	Name() string
	WriteFrame(frame *image.RGBA) error
	Close() error
}

// Fanout writes each frame to every sink, continuing past failures.
type Fanout struct {
	sinks []Sink
}

func NewFanout(sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) Add(s Sink) { f.sinks = append(f.sinks, s) }

func (f *Fanout) Len() int { return len(f.sinks) }

func (f *Fanout) WriteFrame(frame *image.RGBA) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.WriteFrame(frame); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) Close() error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
