package render

import (
	"context"
	"log"
	"time"

	"github.com/bassaaaa/home-clock/internal/display"
	"github.com/bassaaaa/home-clock/internal/framebuffer"
	"github.com/bassaaaa/home-clock/internal/weather"
)

// Source yields the most recently published snapshot without blocking.
type Source interface {
	Latest() (weather.Snapshot, bool)
}

// Loop owns the surface and renders frames at a fixed rate.
type Loop struct {
	scene     *Scene
	surface   *framebuffer.Surface
	source    Source
	sink      display.Sink
	frameRate int
	now       func() time.Time

	lastErr string
}

// NewLoop creates a loop drawing onto a Width x Height surface.
func NewLoop(scene *Scene, source Source, sink display.Sink, frameRate int) *Loop {
	if frameRate <= 0 {
		frameRate = 30
	}
	if sink == nil {
		sink = display.Discard{}
	}
	return &Loop{
		scene:     scene,
		surface:   framebuffer.New(Width, Height),
		source:    source,
		sink:      sink,
		frameRate: frameRate,
		now:       time.Now,
	}
}

// Surface exposes the frame buffer; only valid between frames.
func (l *Loop) Surface() *framebuffer.Surface {
	return l.surface
}

// RenderFrame clears the surface, draws the scene for now and hands the
// result to the sink.
func (l *Loop) RenderFrame(now time.Time) error {
	l.surface.Clear(l.scene.Palette.Background)

	var snap *weather.Snapshot
	if l.source != nil {
		if s, ok := l.source.Latest(); ok {
			snap = &s
		}
	}
	l.scene.Draw(l.surface, now, snap)
	return l.sink.Present(l.surface)
}

// Run renders until ctx is done. Sink errors are logged and the loop keeps
// going; repeated identical errors are logged once.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(l.frameRate))
	defer ticker.Stop()

	log.Printf("render: running at %d fps", l.frameRate)
	for {
		if err := l.RenderFrame(l.now()); err != nil {
			if msg := err.Error(); msg != l.lastErr {
				log.Printf("render: present failed: %v", err)
				l.lastErr = msg
			}
		} else if l.lastErr != "" {
			log.Println("render: sink recovered")
			l.lastErr = ""
		}

		if ctx.Err() != nil {
			log.Println("render: stopped")
			return nil
		}
		select {
		case <-ctx.Done():
			log.Println("render: stopped")
			return nil
		case <-ticker.C:
		}
	}
}
