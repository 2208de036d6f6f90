package render

import (
	"github.com/rook-computer/feltview/internal/render/layout"
	"github.com/rook-computer/feltview/internal/state"
	"github.com/rook-computer/feltview/internal/theme"
)

// Logger is the logging surface the render core needs.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(component, format string, args ...interface{})  {}
func (noopLogger) Errorf(component, format string, args ...interface{}) {}

// Frame is everything a component may read while drawing one frame. It is
// valid only for the duration of the Render call.
type Frame struct {
	State    state.TableState
	Surface  *Surface
	Layers   *LayerManager
	Tokens   *theme.TokenSet
	Geometry layout.Geometry
	Text     TextMeasurer
}

// Font resolves a font token scaled for the current surface.
func (f *Frame) Font(key theme.Key) theme.FontSpec {
	return f.Tokens.Font(key).Scaled(f.Geometry.Scale())
}

// Draw adds p to the surface.
func (f *Frame) Draw(p Primitive) uint64 {
	return f.Surface.Add(p)
}

// Component draws one independent part of the table. Components must not
// depend on each other's output and must tolerate an empty state.
type Component interface {
	Name() string
	Render(f *Frame) error
}

type funcComponent struct {
	name string
	fn   func(f *Frame) error
}

func (c funcComponent) Name() string          { return c.name }
func (c funcComponent) Render(f *Frame) error { return c.fn(f) }

// ComponentFunc adapts a function to the Component interface.
func ComponentFunc(name string, fn func(f *Frame) error) Component {
	return funcComponent{name: name, fn: fn}
}

// Presenter receives the ordered surface after each frame, for example to
// rasterize it.
type Presenter interface {
	Present(s *Surface) error
}

// EffectSink receives the effects of a frame once drawing is complete.
type EffectSink interface {
	Forward(effects []state.Effect)
}

// TokenSource yields the active token set.
type TokenSource interface {
	Tokens() *theme.TokenSet
}

type staticTokens struct{ ts *theme.TokenSet }

func (s staticTokens) Tokens() *theme.TokenSet { return s.ts }

// StaticTokens wraps a fixed token set.
func StaticTokens(ts *theme.TokenSet) TokenSource { return staticTokens{ts: ts} }
