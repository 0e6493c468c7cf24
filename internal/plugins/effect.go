package plugins

import (
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pixel-tools/internal/pixel"
)

// GrayscaleOptions is empty; grayscale has no parameters.
type GrayscaleOptions struct{}

// Grayscale replaces color with luminance, keeping alpha.
func Grayscale(_ GrayscaleOptions, bm *pixel.Bitmap) {
	if bm.Len() == 0 {
		return
	}
	// Luminance of the straight color: bild works premultiplied.
	img := bm.Image()
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}
	gray := effect.Grayscale(img)
	pix := bm.Pix()
	w := bm.Width()
	for i := range pix {
		g := gray.Pix[gray.PixOffset(i%w, i/w)]
		pix[i].R, pix[i].G, pix[i].B = g, g, g
	}
}

// BlurOptions is the gaussian blur radius in pixels.
type BlurOptions struct {
	Radius float64 `json:"radius"`
}

// Default blurs with a radius of one pixel.
func (BlurOptions) Default() BlurOptions {
	return BlurOptions{Radius: 1}
}

// Blur applies a gaussian blur. A radius of zero or less does nothing.
func Blur(opts BlurOptions, bm *pixel.Bitmap) {
	if opts.Radius <= 0 || bm.Len() == 0 {
		return
	}
	// Len 0 covers released views, the only ReplaceImage failure.
	_ = bm.ReplaceImage(blur.Gaussian(bm.Image(), opts.Radius))
}

// HSLOptions shifts every pixel in HSL space. Hue is in degrees and wraps;
// saturation and lightness are offsets in [-1, 1] and clamp.
type HSLOptions struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
}

// HSL adjusts hue, saturation and lightness, keeping alpha.
func HSL(opts HSLOptions, bm *pixel.Bitmap) {
	if opts.Hue == 0 && opts.Saturation == 0 && opts.Lightness == 0 {
		return
	}
	pix := bm.Pix()
	for i, p := range pix {
		c := colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
		h, s, l := c.Hsl()

		h = math.Mod(h+opts.Hue, 360)
		if h < 0 {
			h += 360
		}
		s = clamp01(s + opts.Saturation)
		l = clamp01(l + opts.Lightness)

		r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
		pix[i] = pixel.RGBA{R: r, G: g, B: b, A: p.A}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
