// Package display holds the sinks a rendered surface is handed to.
package display

import (
	"errors"

	"github.com/bassaaaa/home-clock/internal/framebuffer"
)

// Sink presents a finished frame. Present must not retain the surface.
type Sink interface {
	Present(s *framebuffer.Surface) error
}

// Multi fans a frame out to several sinks. All sinks are called even when
// some fail; their errors are joined.
type Multi []Sink

func (m Multi) Present(s *framebuffer.Surface) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Present(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every frame.
type Discard struct{}

func (Discard) Present(*framebuffer.Surface) error { return nil }
