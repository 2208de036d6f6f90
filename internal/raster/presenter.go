package raster

import (
	"fmt"
	"image"

	"github.com/rook-computer/feltview/internal/render"
)

// FrameWriter receives every rasterized frame.
type FrameWriter interface {
	WriteFrame(frame *image.RGBA) error
}

// Presenter rasterizes each finished surface once and hands the pixels to
// out. It plugs into the render pipeline as a render.Presenter.
type Presenter struct {
	r   *Rasterizer
	out FrameWriter
}

func NewPresenter(r *Rasterizer, out FrameWriter) *Presenter {
	return &Presenter{r: r, out: out}
}

func (p *Presenter) Present(s *render.Surface) error {
	frame, err := p.r.Rasterize(s)
	if frame == nil {
		return err
	}
	if err != nil {
		// a bad primitive still leaves a usable frame
		err = fmt.Errorf("rasterize: %w", err)
	}
	if p.out == nil {
		return err
	}
	if werr := p.out.WriteFrame(frame); werr != nil {
		return fmt.Errorf("write frame: %w", werr)
	}
	return err
}
