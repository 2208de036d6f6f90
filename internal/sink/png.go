package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// PNGFile writes every frame to Path. With Sequence set, frames go to
// numbered files instead ("table.png" becomes "table-0001.png", ...).
type PNGFile struct {
	Path     string
	Sequence bool

	n   int
	enc png.Encoder
}

func NewPNGFile(path string, sequence bool) *PNGFile {
	return &PNGFile{Path: path, Sequence: sequence, enc: png.Encoder{CompressionLevel: png.BestSpeed}}
}

func (p *PNGFile) Name() string { return "png" }

func (p *PNGFile) WriteFrame(frame *image.RGBA) error {
	p.n++
	path := p.Path
	if p.Sequence {
		path = numbered(p.Path, p.n)
	}
	var buf bytes.Buffer
	if err := p.enc.Encode(&buf, frame); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	// write then rename so readers never see a half-written file
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Frames reports how many frames have been written.
func (p *PNGFile) Frames() int { return p.n }

func (p *PNGFile) Close() error { return nil }

func numbered(path string, n int) string {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".png"
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return fmt.Sprintf("%s-%04d%s", base, n, ext)
}
