package plugins

import (
	"math"

	"github.com/ironsheep/pixel-tools/internal/pixel"
)

// CircleOptions configures the circular alpha mask. Nil fields take their
// defaults: radius min(width, height)/2, centered on (width/2, height/2).
type CircleOptions struct {
	Radius *int `json:"radius,omitempty"`
	X      *int `json:"x,omitempty"`
	Y      *int `json:"y,omitempty"`
}

// Circle clears the alpha of every pixel outside the circle and anti-aliases
// a one pixel wide rim. Color channels are left alone.
//
// With diff = radius - distance from center:
//
//	diff <= 0     alpha = 0
//	0 < diff < 1  alpha = round(255 * diff)
//	otherwise     unchanged
func Circle(opts CircleOptions, bm *pixel.Bitmap) {
	w, h := bm.Width(), bm.Height()

	radius := min(w, h) / 2
	cx, cy := w/2, h/2
	if opts.Radius != nil {
		radius = *opts.Radius
	}
	if opts.X != nil {
		cx = *opts.X
	}
	if opts.Y != nil {
		cy = *opts.Y
	}
	if radius < 0 {
		return
	}

	r := float64(radius)
	pix := bm.Pix()
	s := bm.Scan(0, 0)
	for s.Next() {
		x, y, idx := s.Point()
		dx := float64(x - cx)
		dy := float64(y - cy)
		diff := r - math.Sqrt(dx*dx+dy*dy)

		switch {
		case diff <= 0:
			pix[idx].A = 0
		case diff < 1:
			pix[idx].A = uint8(math.Round(255 * diff))
		}
	}
}
