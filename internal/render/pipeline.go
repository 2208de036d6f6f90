package render

import (
	"fmt"
	"runtime/debug"

	"github.com/rook-computer/feltview/internal/render/layout"
	"github.com/rook-computer/feltview/internal/state"
)

// Pipeline is the single render entry point. RenderOnce must be called from
// the goroutine that owns the surface.
type Pipeline struct {
	surfaces   *SurfaceManager
	layers     *LayerManager
	tokens     TokenSource
	text       TextMeasurer
	effects    EffectSink
	log        Logger
	components []Component
	presenters []Presenter

	frames uint64
}

type PipelineOptions struct {
	Tokens  TokenSource
	Text    TextMeasurer
	Effects EffectSink
	Logger  Logger
}

func NewPipeline(surfaces *SurfaceManager, layers *LayerManager, opts PipelineOptions) *Pipeline {
	p := &Pipeline{
		surfaces: surfaces,
		layers:   layers,
		tokens:   opts.Tokens,
		text:     opts.Text,
		effects:  opts.Effects,
		log:      opts.Logger,
	}
	if p.log == nil {
		p.log = noopLogger{}
	}
	if p.tokens == nil {
		p.tokens = StaticTokens(nil)
	}
	if p.text == nil {
		p.text = NewFontMeasurer(p.log)
	}
	return p
}

// Register appends components; they run in registration order.
func (p *Pipeline) Register(components ...Component) {
	p.components = append(p.components, components...)
}

// AddPresenter appends a presenter that sees every finished frame.
func (p *Pipeline) AddPresenter(presenters ...Presenter) {
	p.presenters = append(p.presenters, presenters...)
}

// Frames is the number of frames drawn so far.
func (p *Pipeline) Frames() uint64 { return p.frames }

// RenderOnce draws st. When the surface is not ready the call is deferred
// and nothing is drawn; a later deferral replaces an earlier one.
func (p *Pipeline) RenderOnce(st state.TableState) {
	if !p.surfaces.IsReady() {
		p.surfaces.DeferRender(func() { p.RenderOnce(st) })
		return
	}
	surface := p.surfaces.Surface()
	surface.Clear()

	w, h := surface.Size()
	gw, gh := float64(w), float64(h)
	if st.Table.Width > 0 && st.Table.Height > 0 {
		gw, gh = float64(st.Table.Width), float64(st.Table.Height)
	}
	frame := &Frame{
		State:    st,
		Surface:  surface,
		Layers:   p.layers,
		Tokens:   p.tokens.Tokens(),
		Geometry: layout.Compute(gw, gh, len(st.Seats)),
		Text:     p.text,
	}
	for _, c := range p.components {
		if err := p.runComponent(c, frame); err != nil {
			p.log.Errorf("render", "component %s: %v", c.Name(), err)
		}
	}
	p.layers.EnforceOrder()
	p.frames++

	for _, pr := range p.presenters {
		if err := pr.Present(surface); err != nil {
			p.log.Errorf("render", "present frame %d: %v", p.frames, err)
		}
	}
	if p.effects != nil && len(st.Effects) > 0 {
		batch := make([]state.Effect, len(st.Effects))
		for i, e := range st.Effects {
			batch[i] = e.Clone()
		}
		p.effects.Forward(batch)
	}
}

// runComponent isolates a component: a panic becomes an error so the rest
// of the frame still draws.
func (p *Pipeline) runComponent(c Component, f *Frame) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return c.Render(f)
}
