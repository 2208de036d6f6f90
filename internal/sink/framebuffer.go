package sink

import (
	"image"
	"image/draw"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/feltview/internal/system"
)

// Framebuffer scales frames onto a Linux framebuffer device.
type Framebuffer struct {
	dev     *fb.Device
	dst     draw.Image
	scaled  *image.RGBA
	console bool
	log     logger
}

// OpenFramebuffer opens path (usually /dev/fb0). With takeConsole the
// active VT is switched to graphics mode and its cursor hidden until Close.
func OpenFramebuffer(path string, takeConsole bool, log logger) (*Framebuffer, error) {
	if log == nil {
		log = noopLogger{}
	}
	dev, err := fb.Open(path)
	if err != nil {
		return nil, err
	}
	b := dev.Bounds()
	log.Infof("fb", "framebuffer %s open, bounds=%dx%d", path, b.Dx(), b.Dy())
	f := newFramebuffer(dev, log)
	f.dev = dev
	if takeConsole {
		f.console = true
		_ = system.SetGraphicsModeWithLog(log)
		_ = system.HideCursorWithLog(log)
	}
	return f, nil
}

func newFramebuffer(dst draw.Image, log logger) *Framebuffer {
	if log == nil {
		log = noopLogger{}
	}
	return &Framebuffer{dst: dst, log: log}
}

func (f *Framebuffer) Name() string { return "framebuffer" }

// WriteFrame stretches frame to the device size. Scaling happens offscreen
// so the device sees one sequential copy per frame.
func (f *Framebuffer) WriteFrame(frame *image.RGBA) error {
	if f.dst == nil {
		return nil
	}
	b := f.dst.Bounds()
	if f.scaled == nil || f.scaled.Rect != b {
		f.scaled = image.NewRGBA(b)
	}
	draw.Draw(f.scaled, b, &image.Uniform{C: image.Black}, image.Point{}, draw.Src)
	if frame.Rect.Size() == b.Size() {
		draw.Draw(f.scaled, b, frame, frame.Rect.Min, draw.Over)
	} else {
		xdraw.ApproxBiLinear.Scale(f.scaled, b, frame, frame.Rect, xdraw.Over, nil)
	}
	draw.Draw(f.dst, b, f.scaled, b.Min, draw.Src)
	return nil
}

func (f *Framebuffer) Close() error {
	if f.console {
		_ = system.ShowCursorWithLog(f.log)
		_ = system.RestoreTextModeWithLog(f.log)
		f.console = false
	}
	if f.dev != nil {
		f.dev.Close()
		f.dev = nil
		f.dst = nil
	}
	return nil
}
