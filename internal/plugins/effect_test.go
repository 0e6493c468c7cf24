package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/pixel-tools/internal/pixel"
)

func TestGrayscale(t *testing.T) {
	bm := newBitmap(t, 2, 1, func(x, y int) pixel.RGBA {
		if x == 0 {
			return pixel.RGBA{R: 100, G: 100, B: 100, A: 255}
		}
		return pixel.RGBA{R: 255, G: 0, B: 0, A: 60}
	})
	Grayscale(GrayscaleOptions{}, bm)

	gray := at(t, bm, 0, 0)
	assert.InDelta(t, 100, int(gray.R), 1)
	assert.Equal(t, gray.R, gray.G)
	assert.Equal(t, gray.G, gray.B)

	red := at(t, bm, 1, 0)
	assert.Equal(t, red.R, red.G)
	assert.Equal(t, red.G, red.B)
	assert.Equal(t, uint8(60), red.A)
	assert.Greater(t, red.R, uint8(20), "luminance of the straight color")
}

func TestBlur(t *testing.T) {
	bm := newBitmap(t, 9, 9, func(x, y int) pixel.RGBA {
		if x == 4 && y == 4 {
			return pixel.White()
		}
		return pixel.Black()
	})
	Blur(BlurOptions{Radius: 2}, bm)

	assert.Equal(t, 9, bm.Width())
	assert.Equal(t, 9, bm.Height())
	center := at(t, bm, 4, 4)
	near := at(t, bm, 5, 4)
	assert.Less(t, center.R, uint8(255))
	assert.Greater(t, near.R, uint8(0))
}

func TestBlurNoOp(t *testing.T) {
	bm := newBitmap(t, 3, 3, coords)
	want := append([]pixel.RGBA(nil), bm.Pix()...)
	Blur(BlurOptions{Radius: -1}, bm)
	Blur(BlurOptions{}, bm)
	assert.Equal(t, want, bm.Pix())
}

func TestHSL(t *testing.T) {
	tests := []struct {
		name string
		opts HSLOptions
		in   pixel.RGBA
		want pixel.RGBA
	}{
		{"hue +120", HSLOptions{Hue: 120}, pixel.RGBA{R: 255, A: 77}, pixel.RGBA{G: 255, A: 77}},
		{"hue wraps", HSLOptions{Hue: -120}, pixel.RGBA{R: 255, A: 255}, pixel.RGBA{B: 255, A: 255}},
		{"desaturate", HSLOptions{Saturation: -1}, pixel.RGBA{R: 255, A: 255}, pixel.RGBA{R: 128, G: 128, B: 128, A: 255}},
		{"lighten clamps", HSLOptions{Lightness: 2}, pixel.RGBA{R: 10, G: 20, B: 30, A: 5}, pixel.RGBA{R: 255, G: 255, B: 255, A: 5}},
		{"zero is no-op", HSLOptions{}, pixel.RGBA{R: 1, G: 2, B: 3, A: 4}, pixel.RGBA{R: 1, G: 2, B: 3, A: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bm := newBitmap(t, 1, 1, func(int, int) pixel.RGBA { return tt.in })
			HSL(tt.opts, bm)
			got := at(t, bm, 0, 0)
			assert.InDelta(t, int(tt.want.R), int(got.R), 1)
			assert.InDelta(t, int(tt.want.G), int(got.G), 1)
			assert.InDelta(t, int(tt.want.B), int(got.B), 1)
			assert.Equal(t, tt.want.A, got.A)
		})
	}
}
