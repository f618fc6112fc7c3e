package framebuffer

import (
	"image"
	"image/color"
)

// Color is a packed 0xRRGGBB value.
type Color uint32

// RGB packs 8-bit channels into a Color.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Channels returns the 8-bit red, green and blue components.
func (c Color) Channels() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGBA implements color.Color. Surfaces are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	cr, cg, cb := c.Channels()
	return color.RGBA{R: cr, G: cg, B: cb, A: 0xff}.RGBA()
}

// Surface is a fixed-size pixel buffer. Writes outside the bounds are
// dropped, so callers may draw partially off-screen without checks.
type Surface struct {
	width  int
	height int
	pixels []Color
}

// New allocates a zeroed surface.
func New(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Surface{
		width:  width,
		height: height,
		pixels: make([]Color, width*height),
	}
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Pix returns the backing buffer in row-major order. Callers must not retain
// it across frames.
func (s *Surface) Pix() []Color {
	return s.pixels
}

// Clear overwrites every pixel with c.
func (s *Surface) Clear(c Color) {
	for i := range s.pixels {
		s.pixels[i] = c
	}
}

// SetPixel writes one pixel; out-of-range coordinates are a no-op.
func (s *Surface) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	s.pixels[y*s.width+x] = c
}

// PixelAt returns the pixel at (x, y), or 0 when out of range.
func (s *Surface) PixelAt(x, y int) Color {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return 0
	}
	return s.pixels[y*s.width+x]
}

// FillRect fills a w x h rectangle with its top-left corner at (x, y).
func (s *Surface) FillRect(x, y, w, h int, c Color) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			s.SetPixel(x+dx, y+dy, c)
		}
	}
}

// Clone returns a deep copy.
func (s *Surface) Clone() *Surface {
	out := &Surface{
		width:  s.width,
		height: s.height,
		pixels: make([]Color, len(s.pixels)),
	}
	copy(out.pixels, s.pixels)
	return out
}

// ColorModel implements image.Image.
func (s *Surface) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// At implements image.Image.
func (s *Surface) At(x, y int) color.Color {
	r, g, b := s.PixelAt(x, y).Channels()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Set implements draw.Image. Alpha is discarded.
func (s *Surface) Set(x, y int, c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	s.SetPixel(x, y, RGB(rgba.R, rgba.G, rgba.B))
}
