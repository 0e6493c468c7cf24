package pixel

import (
	"fmt"
	"image"
)

// Bitmap is an exclusive, transient view over a Buffer. It is the only type a
// plugin touches. A Bitmap carries no state of its own beyond the borrowed
// buffer and the bounds-checking mode.
type Bitmap struct {
	buf    *Buffer
	strict bool
}

// Width returns the width of the viewed buffer, or 0 once released.
func (bm *Bitmap) Width() int {
	if bm.buf == nil {
		return 0
	}
	return bm.buf.width
}

// Height returns the height of the viewed buffer, or 0 once released.
func (bm *Bitmap) Height() int {
	if bm.buf == nil {
		return 0
	}
	return bm.buf.height
}

// Len returns the number of pixels in the viewed buffer.
func (bm *Bitmap) Len() int {
	if bm.buf == nil {
		return 0
	}
	return len(bm.buf.pix)
}

// Pix returns the viewed pixel slice for plugins that iterate directly.
// Writes through the slice are visible in the buffer.
func (bm *Bitmap) Pix() []RGBA {
	if bm.buf == nil {
		return nil
	}
	return bm.buf.pix
}

// Index returns the row-major index of (x, y) without any range check.
func (bm *Bitmap) Index(x, y int) int {
	return bm.Width()*y + x
}

// At returns the pixel stored at idx.
func (bm *Bitmap) At(idx int) (RGBA, bool) {
	if bm.buf == nil {
		return RGBA{}, false
	}
	return bm.buf.At(idx)
}

// SetPixelByIndex overwrites the pixel at idx with the canonical form of c.
// It returns false, leaving the buffer untouched, when idx is out of range.
func (bm *Bitmap) SetPixelByIndex(idx int, c Color) bool {
	if bm.buf == nil || idx < 0 || idx >= len(bm.buf.pix) {
		return false
	}
	bm.buf.pix[idx] = c.Canonical()
	return true
}

// SetPixel writes c at (x, y).
//
// In the default mode only the computed index width*y+x is range checked, so
// an x beyond the width lands on a following row. A strict Bitmap rejects
// coordinates outside the dimensions first.
func (bm *Bitmap) SetPixel(x, y int, c Color) bool {
	if bm.strict && (x < 0 || y < 0 || x >= bm.Width() || y >= bm.Height()) {
		return false
	}
	return bm.SetPixelByIndex(bm.Index(x, y), c)
}

// Strict reports whether SetPixel validates coordinates.
func (bm *Bitmap) Strict() bool { return bm.strict }

// Swap replaces the pixel storage with pix, which must hold exactly Len()
// pixels. The old storage is discarded.
func (bm *Bitmap) Swap(pix []RGBA) bool {
	if bm.buf == nil || len(pix) != len(bm.buf.pix) {
		return false
	}
	bm.buf.pix = pix
	return true
}

// Replace swaps in new storage with new dimensions. Plugins that resize or
// rotate the image use it.
func (bm *Bitmap) Replace(width, height int, pix []RGBA) error {
	if bm.buf == nil {
		return fmt.Errorf("bitmap released")
	}
	if width < 0 || height < 0 || len(pix) != width*height {
		return fmt.Errorf("buffer length %d does not match %dx%d", len(pix), width, height)
	}
	bm.buf.pix = pix
	bm.buf.width = width
	bm.buf.height = height
	return nil
}

// Image returns a copy of the viewed pixels as an *image.NRGBA anchored at
// (0,0), for handing to image libraries.
func (bm *Bitmap) Image() *image.NRGBA {
	if bm.buf == nil {
		return image.NewNRGBA(image.Rectangle{})
	}
	return bm.buf.Image()
}

// ReplaceImage replaces the viewed buffer with the contents of img, adopting
// its dimensions. Premultiplied sources are converted back to straight alpha.
func (bm *Bitmap) ReplaceImage(img image.Image) error {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]RGBA, w*h)

	if n, ok := img.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			row := n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < w; x++ {
				o := x * 4
				pix[w*y+x] = RGBA{R: row[o], G: row[o+1], B: row[o+2], A: row[o+3]}
			}
		}
		return bm.Replace(w, h, pix)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix[w*y+x] = FromColor(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return bm.Replace(w, h, pix)
}
