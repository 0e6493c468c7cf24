package codec

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/pixel-tools/internal/pixel"
)

func firstPixel(t *testing.T, f Frame) pixel.RGBA {
	t.Helper()
	buf, err := Normalize(f)
	require.NoError(t, err)
	c, ok := buf.At(0)
	require.True(t, ok)
	return c
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  pixel.RGBA
	}{
		{"gray8", Frame{Width: 1, Height: 1, Encoding: Gray8, Pix: []byte{77}}, pixel.RGBA{R: 77, G: 77, B: 77, A: 255}},
		{"gray16 max", Frame{Width: 1, Height: 1, Encoding: Gray16, Pix: []byte{0xFF, 0xFF}}, pixel.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"gray16 truncates", Frame{Width: 1, Height: 1, Encoding: Gray16, Pix: []byte{0x80, 0x00}}, pixel.RGBA{R: 127, G: 127, B: 127, A: 255}},
		{"indexed", Frame{Width: 1, Height: 1, Encoding: Indexed, Pix: []byte{1}, Palette: []byte{10, 20, 30}}, pixel.RGBA{R: 20, G: 20, B: 20, A: 255}},
		{"rgb8", Frame{Width: 1, Height: 1, Encoding: RGB8, Pix: []byte{1, 2, 3}}, pixel.RGBA{R: 1, G: 2, B: 3, A: 255}},
		{"gray alpha", Frame{Width: 1, Height: 1, Encoding: GrayAlpha8, Pix: []byte{9, 100}}, pixel.RGBA{R: 9, G: 9, B: 9, A: 100}},
		{"rgba8", Frame{Width: 1, Height: 1, Encoding: RGBA8, Pix: []byte{1, 2, 3, 4}}, pixel.RGBA{R: 1, G: 2, B: 3, A: 4}},
		{"cmyk no ink", Frame{Width: 1, Height: 1, Encoding: CMYK8, Pix: []byte{0, 0, 0, 0}}, pixel.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"cmyk full cyan", Frame{Width: 1, Height: 1, Encoding: CMYK8, Pix: []byte{255, 0, 0, 0}}, pixel.RGBA{R: 0, G: 255, B: 255, A: 255}},
		{"cmyk full black", Frame{Width: 1, Height: 1, Encoding: CMYK8, Pix: []byte{0, 0, 0, 255}}, pixel.RGBA{R: 0, G: 0, B: 0, A: 255}},
		{"rgb16", Frame{Width: 1, Height: 1, Encoding: RGB16, Pix: []byte{0xFF, 0xFF, 0, 0, 0x80, 0}}, pixel.RGBA{R: 255, G: 0, B: 127, A: 255}},
		{"rgba16", Frame{Width: 1, Height: 1, Encoding: RGBA16, Pix: []byte{0, 0, 0xFF, 0xFF, 0, 0, 0, 0}}, pixel.RGBA{R: 0, G: 255, B: 0, A: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstPixel(t, tt.frame))
		})
	}
}

func TestNormalizeLayout(t *testing.T) {
	f := Frame{Width: 2, Height: 2, Encoding: RGB8, Pix: []byte{
		1, 1, 1, 2, 2, 2,
		3, 3, 3, 4, 4, 4,
	}}
	buf, err := Normalize(f)
	require.NoError(t, err)
	require.Equal(t, 4, buf.Len())
	for i := 0; i < 4; i++ {
		c, _ := buf.At(i)
		assert.Equal(t, uint8(i+1), c.R)
	}
}

func TestNormalizeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
	}{
		{"palette index out of range", Frame{Width: 1, Height: 1, Encoding: Indexed, Pix: []byte{3}, Palette: []byte{10, 20, 30}}},
		{"missing palette", Frame{Width: 1, Height: 1, Encoding: Indexed, Pix: []byte{0}}},
		{"short data", Frame{Width: 2, Height: 2, Encoding: RGBA8, Pix: []byte{1, 2, 3, 4}}},
		{"unknown encoding", Frame{Width: 1, Height: 1, Pix: []byte{1}}},
		{"negative size", Frame{Width: -1, Height: 1, Encoding: Gray8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.frame)
			assert.True(t, errors.Is(err, ErrInvalidImage), "got %v", err)
		})
	}
}

func TestFrameFromImage(t *testing.T) {
	rect := image.Rect(0, 0, 2, 1)

	gray := image.NewGray(rect)
	gray.SetGray(1, 0, color.Gray{50})
	f := frameFromImage(gray)
	assert.Equal(t, Gray8, f.Encoding)
	assert.Equal(t, []byte{0, 50}, f.Pix)

	g16 := image.NewGray16(rect)
	g16.SetGray16(0, 0, color.Gray16{0xFFFF})
	f = frameFromImage(g16)
	assert.Equal(t, Gray16, f.Encoding)
	assert.Equal(t, []byte{0xFF, 0xFF, 0, 0}, f.Pix)

	cmyk := image.NewCMYK(rect)
	cmyk.SetCMYK(0, 0, color.CMYK{C: 255})
	f = frameFromImage(cmyk)
	assert.Equal(t, CMYK8, f.Encoding)
	assert.Equal(t, pixel.RGBA{R: 0, G: 255, B: 255, A: 255}, firstPixel(t, f))

	ycc := image.NewYCbCr(rect, image.YCbCrSubsampleRatio444)
	for i := range ycc.Y {
		ycc.Y[i] = 255
		ycc.Cb[i] = 128
		ycc.Cr[i] = 128
	}
	f = frameFromImage(ycc)
	assert.Equal(t, RGB8, f.Encoding)
	assert.Equal(t, pixel.RGBA{R: 255, G: 255, B: 255, A: 255}, firstPixel(t, f))

	opaque := image.NewRGBA(rect)
	opaque.Set(0, 0, color.RGBA{1, 2, 3, 255})
	opaque.Set(1, 0, color.RGBA{4, 5, 6, 255})
	f = frameFromImage(opaque)
	assert.Equal(t, RGB8, f.Encoding)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, f.Pix)

	translucent := image.NewRGBA(rect)
	translucent.Set(0, 0, color.RGBA{128, 0, 0, 128})
	f = frameFromImage(translucent)
	assert.Equal(t, RGBA8, f.Encoding)
	assert.Equal(t, pixel.RGBA{R: 255, G: 0, B: 0, A: 128}, firstPixel(t, f))

	pal := image.NewPaletted(rect, color.Palette{color.RGBA{9, 8, 7, 255}})
	f = frameFromImage(pal)
	assert.Equal(t, RGBA8, f.Encoding)
	assert.Equal(t, pixel.RGBA{R: 9, G: 8, B: 7, A: 255}, firstPixel(t, f))
}

func TestFrameFromSubImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(3, 3, color.NRGBA{1, 2, 3, 4})
	sub := img.SubImage(image.Rect(2, 2, 4, 4))

	f := frameFromImage(sub)
	assert.Equal(t, 2, f.Width)
	assert.Equal(t, 2, f.Height)
	assert.Len(t, f.Pix, 16)
	assert.Equal(t, []byte{1, 2, 3, 4}, f.Pix[12:16])
}

func TestEncodingString(t *testing.T) {
	assert.Equal(t, "indexed", Indexed.String())
	assert.Equal(t, "encoding(99)", Encoding(99).String())
	assert.True(t, RGBA8.HasAlpha())
	assert.False(t, CMYK8.HasAlpha())
}
