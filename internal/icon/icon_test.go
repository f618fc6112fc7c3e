package icon

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"golang.org/x/image/bmp"

	"github.com/bassaaaa/home-clock/internal/framebuffer"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		code  uint16
		isDay bool
		want  Category
	}{
		{1000, true, Sun},
		{1000, false, Moon},
		{1003, true, Cloud},
		{1135, false, Cloud},
		{1063, true, Rain},
		{1240, false, Rain},
		{1171, true, HeavyRain},
		{1246, true, HeavyRain},
		{1066, true, Snow},
		{1264, false, Snow},
		{1087, true, Thunder},
		{1087, false, Thunder},
		{1282, true, Thunder},
		{9999, true, Cloud},
		{9999, false, Cloud},
		{0, true, Cloud},
	}
	for _, tt := range tests {
		if got := Classify(tt.code, tt.isDay); got != tt.want {
			t.Errorf("Classify(%d, %v) = %s, want %s", tt.code, tt.isDay, got, tt.want)
		}
	}
}

func TestClassifyIsTotal(t *testing.T) {
	valid := map[Category]bool{}
	for _, c := range Categories {
		valid[c] = true
	}
	for code := 0; code <= 0xffff; code++ {
		for _, day := range []bool{true, false} {
			if c := Classify(uint16(code), day); !valid[c] {
				t.Fatalf("Classify(%d, %v) returned invalid category %d", code, day, c)
			}
		}
	}
}

func TestDefaultBitmapsCoverAllCategories(t *testing.T) {
	bs := DefaultBitmaps()
	for _, c := range Categories {
		b, ok := bs[c]
		if !ok {
			t.Fatalf("missing bitmap for %s", c)
		}
		lit := 0
		for row := 0; row < Size; row++ {
			for col := 0; col < Size; col++ {
				if b.On(col, row) {
					lit++
				}
			}
		}
		if lit == 0 {
			t.Errorf("%s bitmap is empty", c)
		}
	}
}

func TestBitmapDrawScalesBlocks(t *testing.T) {
	bs := DefaultBitmaps()
	s := framebuffer.New(Size*3+10, Size*3+10)
	bs.Draw(s, Sun, 5, 5, 3)

	sun := bs[Sun]
	for py := 0; py < s.Height(); py++ {
		for px := 0; px < s.Width(); px++ {
			want := false
			if px >= 5 && py >= 5 && px < 5+Size*3 && py < 5+Size*3 {
				want = sun.On((px-5)/3, (py-5)/3)
			}
			got := s.PixelAt(px, py) == sun.Color
			if got != want {
				t.Fatalf("pixel (%d,%d): got %v want %v", px, py, got, want)
			}
		}
	}
}

func TestImageSetMatchesBitmaps(t *testing.T) {
	bs := DefaultBitmaps()
	set := RasterizeBitmaps(bs)
	for _, c := range Categories {
		for scale := 1; scale <= 3; scale++ {
			a := framebuffer.New(60, 60)
			b := framebuffer.New(60, 60)
			bs.Draw(a, c, 2, 3, scale)
			set.Draw(b, c, 2, 3, scale)
			for i := range a.Pix() {
				if a.Pix()[i] != b.Pix()[i] {
					t.Fatalf("%s scale %d: encodings differ at pixel %d", c, scale, i)
				}
			}
		}
	}
}

func TestImageSetAlphaThreshold(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: AlphaThreshold})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: AlphaThreshold + 1})
	img.SetNRGBA(2, 0, color.NRGBA{B: 255, A: 0})

	s := framebuffer.New(3, 1)
	s.Clear(0x010101)
	ImageSet{Cloud: img}.Draw(s, Cloud, 0, 0, 1)

	if s.PixelAt(0, 0) != 0x010101 {
		t.Errorf("pixel at threshold should be skipped, got %06x", s.PixelAt(0, 0))
	}
	if s.PixelAt(1, 0) != framebuffer.RGB(0, 255, 0) {
		t.Errorf("pixel above threshold should be drawn opaque, got %06x", s.PixelAt(1, 0))
	}
	if s.PixelAt(2, 0) != 0x010101 {
		t.Errorf("transparent pixel should be skipped")
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestLoadImageSet(t *testing.T) {
	bs := DefaultBitmaps()
	fsys := fstest.MapFS{}
	for _, c := range Categories {
		fsys["icons/"+c.String()+".png"] = &fstest.MapFile{Data: encodePNG(t, Rasterize(bs[c]))}
	}

	set, err := LoadImageSet(fsys, "icons")
	if err != nil {
		t.Fatalf("LoadImageSet: %v", err)
	}

	a := framebuffer.New(40, 40)
	b := framebuffer.New(40, 40)
	bs.Draw(a, Thunder, 0, 0, 2)
	set.Draw(b, Thunder, 0, 0, 2)
	for i := range a.Pix() {
		if a.Pix()[i] != b.Pix()[i] {
			t.Fatalf("loaded PNG icon differs from bitmap at %d", i)
		}
	}
}

func TestLoadImageSetReadsBMP(t *testing.T) {
	bs := DefaultBitmaps()
	fsys := fstest.MapFS{}
	for _, c := range Categories {
		fsys[c.String()+".png"] = &fstest.MapFile{Data: encodePNG(t, Rasterize(bs[c]))}
	}

	// BMP has no alpha, so the sun is an opaque two-tone square.
	sun := image.NewRGBA(image.Rect(0, 0, Size, Size))
	for py := 0; py < Size; py++ {
		for px := 0; px < Size; px++ {
			c := color.RGBA{R: 0xff, G: 0xc8, B: 0x00, A: 0xff}
			if (px+py)%2 == 0 {
				c = color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}
			}
			sun.SetRGBA(px, py, c)
		}
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, sun); err != nil {
		t.Fatalf("bmp encode: %v", err)
	}
	delete(fsys, "sun.png")
	fsys["sun.bmp"] = &fstest.MapFile{Data: buf.Bytes()}

	set, err := LoadImageSet(fsys, ".")
	if err != nil {
		t.Fatalf("LoadImageSet: %v", err)
	}

	s := framebuffer.New(Size, Size)
	set.Draw(s, Sun, 0, 0, 1)
	for py := 0; py < Size; py++ {
		for px := 0; px < Size; px++ {
			c := sun.RGBAAt(px, py)
			if got, want := s.PixelAt(px, py), framebuffer.RGB(c.R, c.G, c.B); got != want {
				t.Fatalf("pixel (%d,%d) = %06x, want %06x", px, py, got, want)
			}
		}
	}
}

func TestLoadImageSetErrors(t *testing.T) {
	bs := DefaultBitmaps()
	full := func() fstest.MapFS {
		fsys := fstest.MapFS{}
		for _, c := range Categories {
			fsys[c.String()+".png"] = &fstest.MapFile{Data: encodePNG(t, Rasterize(bs[c]))}
		}
		return fsys
	}

	missing := full()
	delete(missing, "snow.png")
	if _, err := LoadImageSet(missing, "."); !errors.Is(err, ErrMissingIcon) {
		t.Errorf("expected ErrMissingIcon, got %v", err)
	}

	corrupt := full()
	corrupt["rain.png"] = &fstest.MapFile{Data: []byte("not a png")}
	if _, err := LoadImageSet(corrupt, "."); err == nil {
		t.Errorf("expected decode error for corrupt asset")
	}

	wrongSize := full()
	wrongSize["sun.png"] = &fstest.MapFile{Data: encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 8, 8)))}
	if _, err := LoadImageSet(wrongSize, "."); !errors.Is(err, ErrIconSize) {
		t.Errorf("expected ErrIconSize, got %v", err)
	}
}
