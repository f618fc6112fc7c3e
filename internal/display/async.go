package display

import (
	"io"
	"slices"
	"sync"

	"github.com/bassaaaa/home-clock/internal/framebuffer"
)

// Async decouples a slow sink from the render loop. Present copies the frame
// into a single pending slot and returns; a writer goroutine hands the newest
// pending frame to the wrapped sink. Frames that arrive while the sink is busy
// replace each other, and a frame identical to the last one delivered is not
// sent again.
type Async struct {
	inner Sink

	mu      sync.Mutex
	pending *framebuffer.Surface
	spare   *framebuffer.Surface
	err     error

	// writer-owned
	last *framebuffer.Surface

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewAsync starts the writer goroutine for inner.
func NewAsync(inner Sink) *Async {
	a := &Async{
		inner: inner,
		wake:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go a.run()
	return a
}

// Present queues a copy of s. It returns the error of the most recent
// delivery attempt, nil once a delivery succeeds again.
func (a *Async) Present(s *framebuffer.Surface) error {
	a.mu.Lock()
	if a.pending == nil {
		a.pending = a.takeSpare(s)
	}
	copy(a.pending.Pix(), s.Pix())
	err := a.err
	a.mu.Unlock()

	select {
	case a.wake <- struct{}{}:
	default:
	}
	return err
}

// takeSpare returns a recycled buffer of the right size. Called with mu held.
func (a *Async) takeSpare(s *framebuffer.Surface) *framebuffer.Surface {
	buf := a.spare
	a.spare = nil
	if buf == nil || buf.Width() != s.Width() || buf.Height() != s.Height() {
		return framebuffer.New(s.Width(), s.Height())
	}
	return buf
}

func (a *Async) recycle(s *framebuffer.Surface) {
	if s == nil {
		return
	}
	a.mu.Lock()
	a.spare = s
	a.mu.Unlock()
}

func (a *Async) run() {
	defer close(a.done)
	for {
		select {
		case <-a.stop:
			return
		case <-a.wake:
		}

		a.mu.Lock()
		frame := a.pending
		a.pending = nil
		a.mu.Unlock()
		if frame == nil {
			continue
		}

		if a.last != nil && a.last.Width() == frame.Width() && a.last.Height() == frame.Height() &&
			slices.Equal(a.last.Pix(), frame.Pix()) {
			a.recycle(frame)
			continue
		}

		err := a.inner.Present(frame)

		a.mu.Lock()
		a.err = err
		a.mu.Unlock()

		if err != nil {
			// Not delivered; the next frame is sent even if unchanged.
			a.recycle(frame)
			a.recycle(a.last)
			a.last = nil
			continue
		}
		a.recycle(a.last)
		a.last = frame
	}
}

// Close stops the writer and closes the wrapped sink when it is an
// io.Closer. The sink is closed before waiting so a delivery blocked on the
// device fails instead of holding up shutdown. Pending frames are dropped.
func (a *Async) Close() error {
	var err error
	a.once.Do(func() {
		close(a.stop)
		if c, ok := a.inner.(io.Closer); ok {
			err = c.Close()
		}
		<-a.done
	})
	return err
}
