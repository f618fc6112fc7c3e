package display

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bassaaaa/home-clock/internal/framebuffer"
)

type chunkRecorder struct {
	bytes.Buffer
	chunks []int
}

func (c *chunkRecorder) Write(p []byte) (int, error) {
	c.chunks = append(c.chunks, len(p))
	return c.Buffer.Write(p)
}

func TestRGB565(t *testing.T) {
	tests := map[framebuffer.Color]uint16{
		0x000000: 0x0000,
		0xffffff: 0xffff,
		0xff0000: 0xf800,
		0x00ff00: 0x07e0,
		0x0000ff: 0x001f,
	}
	for c, want := range tests {
		if got := RGB565(c); got != want {
			t.Errorf("RGB565(%06x) = %04x, want %04x", c, got, want)
		}
	}
}

func TestStreamSinkProtocol(t *testing.T) {
	s := framebuffer.New(40, 2)
	s.SetPixel(0, 0, 0xff0000)
	s.SetPixel(39, 1, 0x0000ff)

	rec := &chunkRecorder{}
	sink := NewStreamSink(rec)
	if err := sink.Present(s); err != nil {
		t.Fatalf("Present: %v", err)
	}

	out := rec.Bytes()
	if !bytes.Equal(out[:4], []byte{0x1b, 0x40, 0x1b, 0x47}) {
		t.Fatalf("unexpected header % x", out[:4])
	}
	body := out[4:]
	if w := binary.BigEndian.Uint16(body[0:]); w != 40 {
		t.Fatalf("width = %d", w)
	}
	if h := binary.BigEndian.Uint16(body[2:]); h != 2 {
		t.Fatalf("height = %d", h)
	}
	pixels := body[4:]
	if len(pixels) != 40*2*2 {
		t.Fatalf("pixel payload = %d bytes", len(pixels))
	}
	if binary.BigEndian.Uint16(pixels[0:]) != 0xf800 {
		t.Fatalf("first pixel not red")
	}
	if binary.BigEndian.Uint16(pixels[len(pixels)-2:]) != 0x001f {
		t.Fatalf("last pixel not blue")
	}
	for _, n := range rec.chunks {
		if n > BlockSize {
			t.Fatalf("write of %d bytes exceeds block size", n)
		}
	}

	// The init sequence is sent once.
	rec.Reset()
	if err := sink.Present(s); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if !bytes.Equal(rec.Bytes()[:2], []byte{0x1b, 0x47}) {
		t.Fatalf("second frame should start with the frame command")
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("unplugged") }

func TestMultiJoinsErrors(t *testing.T) {
	p := NewPreview()
	m := Multi{NewStreamSink(failingWriter{}), p}
	s := framebuffer.New(2, 2)

	if err := m.Present(s); err == nil {
		t.Fatalf("expected error from failing sink")
	}
	if _, err := p.PNG(1); err != nil {
		t.Fatalf("healthy sink should still receive the frame: %v", err)
	}
}

func TestPreviewPNG(t *testing.T) {
	p := NewPreview()
	if _, err := p.PNG(1); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("expected ErrNoFrame, got %v", err)
	}

	s := framebuffer.New(3, 2)
	s.SetPixel(2, 1, framebuffer.RGB(10, 20, 30))
	if err := p.Present(s); err != nil {
		t.Fatalf("Present: %v", err)
	}
	// Later writes to the source must not leak into the preview.
	s.Clear(0xffffff)

	data, err := p.PNG(2)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
		t.Fatalf("scaled size = %v", b)
	}
	r, g, b, _ := img.At(5, 3).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Fatalf("scaled pixel = %v", img.At(5, 3))
	}
	if got := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA); got.R != 0 {
		t.Fatalf("preview picked up later writes: %v", got)
	}

	if _, err := p.PNG(MaxPreviewScale + 1); err == nil {
		t.Fatalf("expected error for oversized scale")
	}
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	s := framebuffer.New(4, 4)
	s.Clear(0x001020)

	if err := (FileSink{Path: path}).Present(s); err != nil {
		t.Fatalf("Present: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %d entries", len(entries))
	}
}

// gatedSink records frames; when release is set each delivery waits on it.
type gatedSink struct {
	mu      sync.Mutex
	frames  []*framebuffer.Surface
	entered chan struct{}
	release chan struct{}
	err     error
	closed  bool
}

func newGatedSink(release chan struct{}) *gatedSink {
	return &gatedSink{entered: make(chan struct{}, 16), release: release}
}

func (g *gatedSink) Present(s *framebuffer.Surface) error {
	g.mu.Lock()
	g.frames = append(g.frames, s.Clone())
	g.mu.Unlock()
	g.entered <- struct{}{}
	if g.release != nil {
		<-g.release
	}
	return g.err
}

func (g *gatedSink) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	return nil
}

func (g *gatedSink) delivered() []*framebuffer.Surface {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*framebuffer.Surface(nil), g.frames...)
}

func waitEntered(t *testing.T, g *gatedSink) {
	t.Helper()
	select {
	case <-g.entered:
	case <-time.After(2 * time.Second):
		t.Fatalf("frame was not delivered")
	}
}

func solid(c framebuffer.Color) *framebuffer.Surface {
	s := framebuffer.New(4, 4)
	s.Clear(c)
	return s
}

func TestAsyncLatestFrameWins(t *testing.T) {
	release := make(chan struct{})
	g := newGatedSink(release)
	a := NewAsync(g)

	if err := a.Present(solid(0x111111)); err != nil {
		t.Fatalf("Present: %v", err)
	}
	waitEntered(t, g)

	// The sink is busy; these replace each other in the pending slot.
	a.Present(solid(0x222222))
	a.Present(solid(0x333333))
	close(release)
	waitEntered(t, g)

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	frames := g.delivered()
	if len(frames) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(frames))
	}
	if got := frames[1].PixelAt(0, 0); got != 0x333333 {
		t.Fatalf("second delivery = %06x, want the newest frame", got)
	}
	if !g.closed {
		t.Fatalf("Close should close the wrapped sink")
	}
}

func TestAsyncSkipsUnchangedFrames(t *testing.T) {
	g := newGatedSink(nil)
	a := NewAsync(g)

	a.Present(solid(0x111111))
	waitEntered(t, g)
	a.Present(solid(0x111111))
	a.Present(solid(0x444444))
	waitEntered(t, g)

	a.Close()
	frames := g.delivered()
	if len(frames) != 2 {
		t.Fatalf("unchanged frame was resent: %d deliveries", len(frames))
	}
	if got := frames[1].PixelAt(0, 0); got != 0x444444 {
		t.Fatalf("second delivery = %06x", got)
	}
}

func TestAsyncReportsDeliveryErrors(t *testing.T) {
	g := newGatedSink(nil)
	g.err = errors.New("unplugged")
	a := NewAsync(g)
	defer a.Close()

	frame := solid(0x111111)
	a.Present(frame)
	waitEntered(t, g)

	deadline := time.Now().Add(2 * time.Second)
	for {
		err := a.Present(frame)
		if err != nil {
			if err.Error() != "unplugged" {
				t.Fatalf("unexpected error %v", err)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("delivery error never surfaced")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestAsyncDoesNotBlockOnSlowWriter(t *testing.T) {
	release := make(chan struct{})
	w := &blockingWriter{entered: make(chan struct{}, 1), release: release}
	a := NewAsync(NewStreamSink(w))

	s := framebuffer.New(800, 480)
	start := time.Now()
	for i := 0; i < 5; i++ {
		s.Clear(framebuffer.Color(i))
		if err := a.Present(s); err != nil {
			t.Fatalf("Present: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Present waited on the writer: %v", elapsed)
	}
	select {
	case <-w.entered:
	case <-time.After(2 * time.Second):
		t.Fatalf("writer never started")
	}

	close(release)
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

type blockingWriter struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingWriter) Write(p []byte) (int, error) {
	select {
	case b.entered <- struct{}{}:
	default:
	}
	<-b.release
	return len(p), nil
}
