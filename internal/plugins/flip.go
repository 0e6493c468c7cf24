package plugins

import "github.com/ironsheep/pixel-tools/internal/pixel"

// FlipOptions selects the mirroring axes.
type FlipOptions struct {
	Horizontal bool `json:"horizontal"`
	Vertical   bool `json:"vertical"`
}

// Default flips horizontally only.
func (FlipOptions) Default() FlipOptions {
	return FlipOptions{Horizontal: true}
}

// Flip mirrors the image. Every destination index is computed from an
// untouched source pixel, so the result is built in a new buffer and swapped
// in once complete.
func Flip(opts FlipOptions, bm *pixel.Bitmap) {
	w, h := bm.Width(), bm.Height()
	src := bm.Pix()
	out := make([]pixel.RGBA, len(src))

	s := bm.Scan(0, 0)
	for s.Next() {
		x, y, idx := s.Point()
		if opts.Horizontal {
			x = w - 1 - x
		}
		if opts.Vertical {
			y = h - 1 - y
		}
		out[w*y+x] = src[idx]
	}
	bm.Swap(out)
}
