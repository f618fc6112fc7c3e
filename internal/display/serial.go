package display

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"time"

	"go.bug.st/serial"

	"github.com/bassaaaa/home-clock/internal/framebuffer"
)

// Panel protocol bytes.
var (
	cmdInit  = []byte{0x1b, 0x40}
	cmdFrame = []byte{0x1b, 0x47}
)

// BlockSize is the largest single write to the panel.
const BlockSize = 64

// RGB565 converts a packed color to the panel's 16-bit format.
func RGB565(c framebuffer.Color) uint16 {
	r, g, b := c.Channels()
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// SerialSink streams frames to a serial-attached panel. Each frame is
// 1B 47, width and height as big-endian uint16, then RGB565 pixels
// (big-endian), written in BlockSize chunks.
type SerialSink struct {
	w           io.Writer
	closer      io.Closer
	initialized bool
	settle      time.Duration
	buf         []byte
}

// OpenSerial opens device at baud (8N1).
func OpenSerial(device string, baud int) (*SerialSink, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", device, err)
	}
	log.Printf("INFO: display: serial panel on %s at %d baud", device, baud)
	s := NewStreamSink(port)
	s.closer = port
	s.settle = 5 * time.Millisecond
	return s, nil
}

// NewStreamSink writes the panel protocol to any writer.
func NewStreamSink(w io.Writer) *SerialSink {
	return &SerialSink{w: w}
}

func (s *SerialSink) write(data []byte) error {
	for len(data) > 0 {
		n := min(BlockSize, len(data))
		written, err := s.w.Write(data[:n])
		if err != nil {
			return fmt.Errorf("serial write: %w", err)
		}
		if written < n {
			return fmt.Errorf("serial write: wrote only %d of %d bytes", written, n)
		}
		data = data[n:]
	}
	return nil
}

// Present implements Sink.
func (s *SerialSink) Present(surface *framebuffer.Surface) error {
	if !s.initialized {
		if err := s.write(cmdInit); err != nil {
			return err
		}
		if s.settle > 0 {
			time.Sleep(s.settle)
		}
		s.initialized = true
	}

	size := 4 + 2*len(surface.Pix())
	if cap(s.buf) < size {
		s.buf = make([]byte, size)
	}
	buf := s.buf[:size]
	binary.BigEndian.PutUint16(buf[0:], uint16(surface.Width()))
	binary.BigEndian.PutUint16(buf[2:], uint16(surface.Height()))
	for i, p := range surface.Pix() {
		binary.BigEndian.PutUint16(buf[4+2*i:], RGB565(p))
	}

	if err := s.write(cmdFrame); err != nil {
		return err
	}
	return s.write(buf)
}

// Close releases the port when the sink owns one.
func (s *SerialSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
