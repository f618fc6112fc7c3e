package display

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/bassaaaa/home-clock/internal/framebuffer"
)

// ErrNoFrame is returned by Preview before the first frame arrives.
var ErrNoFrame = errors.New("no frame rendered yet")

// MaxPreviewScale bounds the preview upscale factor.
const MaxPreviewScale = 4

// FileSink writes every frame as a PNG, replacing the file atomically.
type FileSink struct {
	Path string
}

func (f FileSink) Present(s *framebuffer.Surface) error {
	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, ".frame-*.png")
	if err != nil {
		return fmt.Errorf("png sink: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, s); err != nil {
		tmp.Close()
		return fmt.Errorf("png sink: encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("png sink: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("png sink: %w", err)
	}
	return nil
}

// Preview keeps a copy of the most recent frame for on-demand encoding.
type Preview struct {
	mu    sync.RWMutex
	frame *framebuffer.Surface
}

func NewPreview() *Preview {
	return &Preview{}
}

// Present implements Sink by copying the surface.
func (p *Preview) Present(s *framebuffer.Surface) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.frame == nil || p.frame.Width() != s.Width() || p.frame.Height() != s.Height() {
		p.frame = s.Clone()
		return nil
	}
	copy(p.frame.Pix(), s.Pix())
	return nil
}

// PNG encodes the last frame, nearest-neighbor upscaled by scale.
func (p *Preview) PNG(scale int) ([]byte, error) {
	if scale < 1 || scale > MaxPreviewScale {
		return nil, fmt.Errorf("preview scale %d out of range 1..%d", scale, MaxPreviewScale)
	}

	p.mu.RLock()
	if p.frame == nil {
		p.mu.RUnlock()
		return nil, ErrNoFrame
	}
	frame := p.frame.Clone()
	p.mu.RUnlock()

	var img image.Image = frame
	if scale > 1 {
		b := frame.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), frame, b, xdraw.Src, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
