package icon

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"
	"path"

	_ "golang.org/x/image/bmp"

	"github.com/bassaaaa/home-clock/internal/framebuffer"
)

// AlphaThreshold is the cut-off for image icons: pixels with alpha at or
// below it are skipped, the rest are drawn opaque.
const AlphaThreshold = 128

var (
	ErrMissingIcon = errors.New("icon asset missing")
	ErrIconSize    = errors.New("icon asset has wrong dimensions")
)

// ImageSet draws icons from decoded images.
type ImageSet map[Category]image.Image

// Draw implements Painter. Unknown categories fall back to Cloud.
func (set ImageSet) Draw(s *framebuffer.Surface, c Category, x, y, scale int) {
	if scale <= 0 {
		return
	}
	img, ok := set[c]
	if !ok {
		img, ok = set[Cloud]
		if !ok {
			return
		}
	}
	b := img.Bounds()
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			n := color.NRGBAModel.Convert(img.At(px, py)).(color.NRGBA)
			if n.A <= AlphaThreshold {
				continue
			}
			dx := (px - b.Min.X) * scale
			dy := (py - b.Min.Y) * scale
			s.FillRect(x+dx, y+dy, scale, scale, framebuffer.RGB(n.R, n.G, n.B))
		}
	}
}

// Rasterize renders a bitmap into a 16x16 NRGBA image: set bits become
// opaque pixels of the bitmap color, the rest fully transparent.
func Rasterize(b Bitmap) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, Size, Size))
	r, g, bl := b.Color.Channels()
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.On(col, row) {
				img.SetNRGBA(col, row, color.NRGBA{R: r, G: g, B: bl, A: 0xff})
			}
		}
	}
	return img
}

// RasterizeBitmaps converts a bitmap set into an equivalent ImageSet.
func RasterizeBitmaps(bs Bitmaps) ImageSet {
	set := make(ImageSet, len(bs))
	for c, b := range bs {
		set[c] = Rasterize(b)
	}
	return set
}

// LoadImageSet decodes "<name>.png" or "<name>.bmp" from dir for every
// category. Any missing, undecodable or non-16x16 asset is an error.
func LoadImageSet(fsys fs.FS, dir string) (ImageSet, error) {
	set := make(ImageSet, len(Categories))
	for _, c := range Categories {
		img, err := loadOne(fsys, dir, c.String())
		if err != nil {
			return nil, fmt.Errorf("icon %s: %w", c, err)
		}
		b := img.Bounds()
		if b.Dx() != Size || b.Dy() != Size {
			return nil, fmt.Errorf("icon %s: %w: %dx%d", c, ErrIconSize, b.Dx(), b.Dy())
		}
		set[c] = img
	}
	return set, nil
}

func loadOne(fsys fs.FS, dir, name string) (image.Image, error) {
	for _, ext := range []string{".png", ".bmp"} {
		f, err := fsys.Open(path.Join(dir, name+ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s%s: %w", name, ext, err)
		}
		return img, nil
	}
	return nil, ErrMissingIcon
}
