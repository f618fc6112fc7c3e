package glyph

import "github.com/bassaaaa/home-clock/internal/framebuffer"

// Draw renders g with its top-left corner at (x, y); each lit cell becomes
// a scale x scale block.
func Draw(s *framebuffer.Surface, g Glyph, x, y, scale int, c framebuffer.Color) {
	if scale <= 0 {
		return
	}
	for row := 0; row < Height; row++ {
		for col := 0; col < g.Width; col++ {
			if g.On(col, row) {
				s.FillRect(x+col*scale, y+row*scale, scale, scale, c)
			}
		}
	}
}

// DrawDigit draws v (0-9). Other values draw nothing.
func DrawDigit(s *framebuffer.Surface, v, x, y, scale int, c framebuffer.Color) {
	g, ok := Digit(v)
	if !ok {
		return
	}
	Draw(s, g, x, y, scale, c)
}

// DrawColon draws the time separator. blink=false is the "off" half of the
// flash and draws nothing.
func DrawColon(s *framebuffer.Surface, x, y, scale int, c framebuffer.Color, blink bool) {
	if !blink {
		return
	}
	Draw(s, colon, x, y, scale, c)
}

func DrawHyphen(s *framebuffer.Surface, x, y, scale int, c framebuffer.Color) {
	Draw(s, hyphen, x, y, scale, c)
}

func DrawPercent(s *framebuffer.Surface, x, y, scale int, c framebuffer.Color) {
	Draw(s, percent, x, y, scale, c)
}

// Advance is the horizontal step between consecutive text glyphs.
func Advance(scale int) int {
	return (DigitWidth + 1) * scale
}

// DrawText draws text left to right. Unsupported runes leave their cell
// blank but still advance, so TextWidth stays exact.
func DrawText(s *framebuffer.Surface, text string, x, y, scale int, c framebuffer.Color) {
	for _, r := range text {
		if g, ok := Lookup(r); ok {
			Draw(s, g, x, y, scale, c)
		}
		x += Advance(scale)
	}
}

// TextWidth is the pixel width of text without trailing spacing.
func TextWidth(text string, scale int) int {
	n := 0
	for range text {
		n++
	}
	if n == 0 {
		return 0
	}
	return n*Advance(scale) - scale
}
