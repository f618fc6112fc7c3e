// Package glyph rasterizes a 5x7 monospace bitmap font onto a framebuffer
// surface at integer scales.
package glyph

// Font cell constants.
const (
	DigitWidth = 5
	ColonWidth = 2
	Height     = 7
)

// Glyph is a bitmap of Height rows. Bit Width-1 of each row is the
// leftmost cell.
type Glyph struct {
	Width int
	Rows  [Height]uint8
}

// On reports whether the cell at (col, row) is lit.
func (g Glyph) On(col, row int) bool {
	if col < 0 || col >= g.Width || row < 0 || row >= Height {
		return false
	}
	return g.Rows[row]>>(g.Width-1-col)&1 == 1
}

var digits = [10]Glyph{
	{DigitWidth, [Height]uint8{0b01110, 0b10001, 0b10011, 0b10101, 0b11001, 0b10001, 0b01110}},
	{DigitWidth, [Height]uint8{0b00100, 0b01100, 0b00100, 0b00100, 0b00100, 0b00100, 0b01110}},
	{DigitWidth, [Height]uint8{0b01110, 0b10001, 0b00001, 0b00010, 0b00100, 0b01000, 0b11111}},
	{DigitWidth, [Height]uint8{0b11111, 0b00010, 0b00100, 0b00010, 0b00001, 0b10001, 0b01110}},
	{DigitWidth, [Height]uint8{0b00010, 0b00110, 0b01010, 0b10010, 0b11111, 0b00010, 0b00010}},
	{DigitWidth, [Height]uint8{0b11111, 0b10000, 0b11110, 0b00001, 0b00001, 0b10001, 0b01110}},
	{DigitWidth, [Height]uint8{0b00110, 0b01000, 0b10000, 0b11110, 0b10001, 0b10001, 0b01110}},
	{DigitWidth, [Height]uint8{0b11111, 0b00001, 0b00010, 0b00100, 0b01000, 0b01000, 0b01000}},
	{DigitWidth, [Height]uint8{0b01110, 0b10001, 0b10001, 0b01110, 0b10001, 0b10001, 0b01110}},
	{DigitWidth, [Height]uint8{0b01110, 0b10001, 0b10001, 0b01111, 0b00001, 0b00010, 0b01100}},
}

var (
	colon   = Glyph{ColonWidth, [Height]uint8{0b00, 0b11, 0b11, 0b00, 0b11, 0b11, 0b00}}
	hyphen  = Glyph{DigitWidth, [Height]uint8{0, 0, 0, 0b11111, 0, 0, 0}}
	percent = Glyph{DigitWidth, [Height]uint8{0b11001, 0b11010, 0b00010, 0b00100, 0b01000, 0b01011, 0b10011}}
	space   = Glyph{DigitWidth, [Height]uint8{}}
)

// letters covers the weekday abbreviations.
var letters = map[rune]Glyph{
	'A': {DigitWidth, [Height]uint8{0b01110, 0b10001, 0b10001, 0b11111, 0b10001, 0b10001, 0b10001}},
	'D': {DigitWidth, [Height]uint8{0b11110, 0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b11110}},
	'E': {DigitWidth, [Height]uint8{0b11111, 0b10000, 0b10000, 0b11110, 0b10000, 0b10000, 0b11111}},
	'F': {DigitWidth, [Height]uint8{0b11111, 0b10000, 0b10000, 0b11110, 0b10000, 0b10000, 0b10000}},
	'H': {DigitWidth, [Height]uint8{0b10001, 0b10001, 0b10001, 0b11111, 0b10001, 0b10001, 0b10001}},
	'I': {DigitWidth, [Height]uint8{0b01110, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100, 0b01110}},
	'M': {DigitWidth, [Height]uint8{0b10001, 0b11011, 0b10101, 0b10101, 0b10001, 0b10001, 0b10001}},
	'N': {DigitWidth, [Height]uint8{0b10001, 0b11001, 0b10101, 0b10011, 0b10001, 0b10001, 0b10001}},
	'O': {DigitWidth, [Height]uint8{0b01110, 0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b01110}},
	'R': {DigitWidth, [Height]uint8{0b11110, 0b10001, 0b10001, 0b11110, 0b10100, 0b10010, 0b10001}},
	'S': {DigitWidth, [Height]uint8{0b01111, 0b10000, 0b10000, 0b01110, 0b00001, 0b00001, 0b11110}},
	'T': {DigitWidth, [Height]uint8{0b11111, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100}},
	'U': {DigitWidth, [Height]uint8{0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b01110}},
	'W': {DigitWidth, [Height]uint8{0b10001, 0b10001, 0b10001, 0b10101, 0b10101, 0b10101, 0b01010}},
}

// Lookup returns the glyph for r. Digits, ':', '-', '%', ' ' and the
// weekday letters are supported.
func Lookup(r rune) (Glyph, bool) {
	switch {
	case r >= '0' && r <= '9':
		return digits[r-'0'], true
	case r == ':':
		return colon, true
	case r == '-':
		return hyphen, true
	case r == '%':
		return percent, true
	case r == ' ':
		return space, true
	}
	g, ok := letters[r]
	return g, ok
}

// Digit returns the glyph for a value in 0-9.
func Digit(v int) (Glyph, bool) {
	if v < 0 || v > 9 {
		return Glyph{}, false
	}
	return digits[v], true
}
