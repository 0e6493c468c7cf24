package pixel

import (
	"fmt"
	"image"
)

// Buffer is the canonical pixel buffer: width*height RGBA values in
// row-major order. The length of the pixel slice always equals
// width*height.
type Buffer struct {
	pix    []RGBA
	width  int
	height int
}

// NewBuffer allocates a width x height buffer filled with transparent black.
func NewBuffer(width, height int) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid buffer dimensions %dx%d", width, height)
	}
	return &Buffer{
		pix:    make([]RGBA, width*height),
		width:  width,
		height: height,
	}, nil
}

// BufferFrom wraps pix as a width x height buffer. The buffer takes ownership
// of pix; the caller must not retain it.
func BufferFrom(width, height int, pix []RGBA) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid buffer dimensions %dx%d", width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("buffer length %d does not match %dx%d", len(pix), width, height)
	}
	return &Buffer{pix: pix, width: width, height: height}, nil
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Len returns the number of pixels, width*height.
func (b *Buffer) Len() int { return len(b.pix) }

// At returns the pixel stored at idx.
func (b *Buffer) At(idx int) (RGBA, bool) {
	if idx < 0 || idx >= len(b.pix) {
		return RGBA{}, false
	}
	return b.pix[idx], true
}

// Pix returns the underlying pixel slice. It is meant for read-only access
// such as encoding; mutation goes through a Bitmap.
func (b *Buffer) Pix() []RGBA { return b.pix }

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]RGBA, len(b.pix))
	copy(pix, b.pix)
	return &Buffer{pix: pix, width: b.width, height: b.height}
}

// Image returns a copy of the buffer as an *image.NRGBA anchored at (0,0).
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for i, p := range b.pix {
		o := i * 4
		img.Pix[o+0] = p.R
		img.Pix[o+1] = p.G
		img.Pix[o+2] = p.B
		img.Pix[o+3] = p.A
	}
	return img
}

// View checks out a Bitmap over the buffer. The returned release function
// detaches the view; after release the Bitmap behaves as an empty image.
// When strict is true, SetPixel validates x and y against the dimensions.
//
// View does not track outstanding views itself; the owner of the buffer is
// responsible for handing out at most one at a time.
func (b *Buffer) View(strict bool) (*Bitmap, func()) {
	bm := &Bitmap{buf: b, strict: strict}
	return bm, func() { bm.buf = nil }
}
