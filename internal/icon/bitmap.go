package icon

import "github.com/bassaaaa/home-clock/internal/framebuffer"

// Size is the logical icon edge in pixels before scaling.
const Size = 16

// Painter draws a category icon with its top-left corner at (x, y).
type Painter interface {
	Draw(s *framebuffer.Surface, c Category, x, y, scale int)
}

// Bitmap is one icon: 16 rows, bit 15 is the leftmost column.
type Bitmap struct {
	Rows  [Size]uint16
	Color framebuffer.Color
}

// On reports whether (col, row) is set.
func (b Bitmap) On(col, row int) bool {
	if col < 0 || col >= Size || row < 0 || row >= Size {
		return false
	}
	return b.Rows[row]>>(Size-1-col)&1 == 1
}

// Bitmaps is the built-in icon set.
type Bitmaps map[Category]Bitmap

// Draw implements Painter. Unknown categories fall back to Cloud.
func (bs Bitmaps) Draw(s *framebuffer.Surface, c Category, x, y, scale int) {
	if scale <= 0 {
		return
	}
	b, ok := bs[c]
	if !ok {
		b, ok = bs[Cloud]
		if !ok {
			return
		}
	}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.On(col, row) {
				s.FillRect(x+col*scale, y+row*scale, scale, scale, b.Color)
			}
		}
	}
}

const (
	cloudTop0 = 0b0000001111000000
	cloudTop1 = 0b0000011111100000
	cloudMid0 = 0b0011111111110000
	cloudMid1 = 0b0111111111111100
	cloudMid2 = 0b0111111111111110
	cloudBody = 0b1111111111111111
	cloudBase = 0b0111111111111110
)

// DefaultBitmaps returns the built-in icons.
func DefaultBitmaps() Bitmaps {
	return Bitmaps{
		Sun: {Color: framebuffer.RGB(255, 200, 40), Rows: [Size]uint16{
			0b0000000110000000,
			0b0000000110000000,
			0b0010000000000100,
			0b0001000000001000,
			0b0000011111100000,
			0b0000111111110000,
			0b0001111111111000,
			0b1101111111111011,
			0b1101111111111011,
			0b0001111111111000,
			0b0000111111110000,
			0b0000011111100000,
			0b0001000000001000,
			0b0010000000000100,
			0b0000000110000000,
			0b0000000110000000,
		}},
		Moon: {Color: framebuffer.RGB(240, 230, 160), Rows: [Size]uint16{
			0b0000011111000000,
			0b0001111100000000,
			0b0011111000000000,
			0b0111110000000000,
			0b0111100000000000,
			0b1111100000000000,
			0b1111000000000000,
			0b1111000000000000,
			0b1111000000000000,
			0b1111100000000000,
			0b0111100000000000,
			0b0111110000000001,
			0b0011111100000110,
			0b0001111111111100,
			0b0000011111110000,
			0,
		}},
		Cloud: {Color: framebuffer.RGB(200, 205, 215), Rows: [Size]uint16{
			0, 0, 0, 0,
			cloudTop0, cloudTop1, cloudMid0, cloudMid1,
			cloudMid2, cloudBody, cloudBody, cloudBase,
			0, 0, 0, 0,
		}},
		Rain: {Color: framebuffer.RGB(100, 150, 255), Rows: [Size]uint16{
			cloudTop0, cloudTop1, cloudMid0, cloudMid1,
			cloudMid2, cloudBody, cloudBody, cloudBase,
			0,
			0b0001000100010000,
			0b0001000100010000,
			0b0010001000100000,
			0,
			0b0000100010001000,
			0b0000100010001000,
			0b0001000100010000,
		}},
		HeavyRain: {Color: framebuffer.RGB(60, 100, 230), Rows: [Size]uint16{
			cloudTop0, cloudTop1, cloudMid0, cloudMid1,
			cloudMid2, cloudBody, cloudBody, cloudBase,
			0,
			0b0100100100100100,
			0b0100100100100100,
			0b1001001001001000,
			0b1001001001001000,
			0b0010010010010010,
			0b0010010010010010,
			0b0100100100100100,
		}},
		Snow: {Color: framebuffer.RGB(235, 240, 255), Rows: [Size]uint16{
			cloudTop0, cloudTop1, cloudMid0, cloudMid1,
			cloudMid2, cloudBody, cloudBody, cloudBase,
			0,
			0b0100000100000100,
			0b1110001110001110,
			0b0100000100000100,
			0,
			0b0001000001000000,
			0b0011100011100000,
			0b0001000001000000,
		}},
		Thunder: {Color: framebuffer.RGB(255, 220, 60), Rows: [Size]uint16{
			cloudTop0, cloudTop1, cloudMid0, cloudMid1,
			cloudMid2, cloudBody, cloudBody, cloudBase,
			0b0000001111000000,
			0b0000011110000000,
			0b0000111100000000,
			0b0001111111100000,
			0b0000000111000000,
			0b0000001110000000,
			0b0000001100000000,
			0b0000010000000000,
		}},
	}
}
