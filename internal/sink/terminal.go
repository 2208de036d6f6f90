package sink

import (
	"errors"
	"image"
	"image/color"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/term"
)

var ErrNotTerminal = errors.New("stdout is not a terminal")

// upper half block: foreground paints the top pixel, background the bottom
const halfBlock = '▀'

// Terminal previews frames in the terminal at two pixels per cell.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	buf    *image.RGBA
}

// OpenTerminal takes over the controlling terminal. It fails when stdout
// is redirected.
func OpenTerminal(log logger) (*Terminal, error) {
	if log == nil {
		log = noopLogger{}
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, ErrNotTerminal
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	t, err := newTerminal(screen)
	if err != nil {
		return nil, err
	}
	w, h := screen.Size()
	log.Infof("term", "terminal preview %dx%d cells", w, h)
	return t, nil
}

func newTerminal(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	t := &Terminal{screen: screen}
	go t.events(screen)
	return t, nil
}

// events keeps the screen size current; PollEvent returns nil after Fini.
func (t *Terminal) events(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			t.mu.Lock()
			if t.screen != nil {
				t.screen.Sync()
			}
			t.mu.Unlock()
		}
	}
}

func (t *Terminal) Name() string { return "terminal" }

func (t *Terminal) WriteFrame(frame *image.RGBA) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.screen == nil {
		return nil
	}
	cols, rows := t.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	r := image.Rect(0, 0, cols, rows*2)
	if t.buf == nil || t.buf.Rect != r {
		t.buf = image.NewRGBA(r)
	}
	xdraw.ApproxBiLinear.Scale(t.buf, r, frame, frame.Rect, xdraw.Src, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := t.buf.RGBAAt(x, 2*y)
			bottom := t.buf.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			t.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// cellColor flattens a premultiplied pixel onto black.
func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (t *Terminal) Close() error {
	t.mu.Lock()
	screen := t.screen
	t.screen = nil
	t.mu.Unlock()
	if screen != nil {
		screen.Fini()
	}
	return nil
}
