package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/pixel-tools/internal/pixel"
)

func TestResize(t *testing.T) {
	tests := []struct {
		name          string
		opts          ResizeOptions
		width, height int
	}{
		{"both", ResizeOptions{Width: 2, Height: 3}, 2, 3},
		{"keep aspect from width", ResizeOptions{Width: 4}, 4, 2},
		{"keep aspect from height", ResizeOptions{Height: 1}, 2, 1},
		{"nearest", ResizeOptions{Width: 16, Height: 8, Filter: "nearest"}, 16, 8},
		{"unknown filter", ResizeOptions{Width: 2, Filter: "bogus"}, 2, 1},
		{"no-op", ResizeOptions{}, 8, 4},
		{"negative", ResizeOptions{Width: -3, Height: 2}, 8, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bm := newBitmap(t, 8, 4, nil)
			Resize(tt.opts, bm)
			assert.Equal(t, tt.width, bm.Width())
			assert.Equal(t, tt.height, bm.Height())
			assert.Equal(t, tt.width*tt.height, bm.Len())
		})
	}
}

func TestResizeNearestKeepsColors(t *testing.T) {
	bm := newBitmap(t, 2, 1, func(x, y int) pixel.RGBA {
		if x == 0 {
			return pixel.Red()
		}
		return pixel.Blue()
	})
	Resize(ResizeOptions{Width: 4, Height: 1, Filter: "nearest"}, bm)

	assert.Equal(t, pixel.Red(), at(t, bm, 0, 0))
	assert.Equal(t, pixel.Red(), at(t, bm, 1, 0))
	assert.Equal(t, pixel.Blue(), at(t, bm, 2, 0))
	assert.Equal(t, pixel.Blue(), at(t, bm, 3, 0))
}

func TestCrop(t *testing.T) {
	bm := newBitmap(t, 4, 4, coords)
	Crop(CropOptions{X: 1, Y: 2, Width: 2, Height: 2}, bm)

	assert.Equal(t, 2, bm.Width())
	assert.Equal(t, 2, bm.Height())
	assert.Equal(t, coords(1, 2), at(t, bm, 0, 0))
	assert.Equal(t, coords(2, 3), at(t, bm, 1, 1))
}

func TestCropClipsToBounds(t *testing.T) {
	bm := newBitmap(t, 4, 4, coords)
	Crop(CropOptions{X: 2, Y: 2, Width: 10, Height: 10}, bm)

	assert.Equal(t, 2, bm.Width())
	assert.Equal(t, 2, bm.Height())
	assert.Equal(t, coords(3, 3), at(t, bm, 1, 1))
}

func TestCropOutside(t *testing.T) {
	for _, opts := range []CropOptions{
		{X: 10, Y: 10, Width: 2, Height: 2},
		{X: 0, Y: 0, Width: 0, Height: 2},
		{X: -5, Y: -5, Width: 3, Height: 3},
	} {
		bm := newBitmap(t, 4, 4, coords)
		Crop(opts, bm)
		assert.Equal(t, 4, bm.Width(), "%+v", opts)
		assert.Equal(t, 4, bm.Height(), "%+v", opts)
	}
}

func TestRotateRightAngles(t *testing.T) {
	// 3x2, counter-clockwise: top-right corner becomes top-left
	bm := newBitmap(t, 3, 2, coords)
	Rotate(RotateOptions{Degrees: 90}, bm)
	assert.Equal(t, 2, bm.Width())
	assert.Equal(t, 3, bm.Height())
	assert.Equal(t, coords(2, 0), at(t, bm, 0, 0))
	assert.Equal(t, coords(0, 1), at(t, bm, 1, 2))

	bm = newBitmap(t, 3, 2, coords)
	Rotate(RotateOptions{Degrees: 180}, bm)
	assert.Equal(t, 3, bm.Width())
	assert.Equal(t, coords(2, 1), at(t, bm, 0, 0))

	bm = newBitmap(t, 3, 2, coords)
	Rotate(RotateOptions{Degrees: -90}, bm)
	assert.Equal(t, 2, bm.Width())
	assert.Equal(t, coords(0, 1), at(t, bm, 0, 0))
}

func TestRotateFullTurn(t *testing.T) {
	bm := newBitmap(t, 3, 2, coords)
	want := append([]pixel.RGBA(nil), bm.Pix()...)
	Rotate(RotateOptions{Degrees: 720}, bm)
	assert.Equal(t, want, bm.Pix())
}

func TestRotateArbitrary(t *testing.T) {
	bm := newBitmap(t, 10, 10, nil)
	Rotate(RotateOptions{Degrees: 45}, bm)

	assert.Greater(t, bm.Width(), 10)
	assert.Greater(t, bm.Height(), 10)
	assert.Equal(t, uint8(0), at(t, bm, 0, 0).A, "corner filled transparent")
}

func TestReplacingPluginsOnReleasedView(t *testing.T) {
	buf, err := pixel.NewBuffer(4, 4)
	require.NoError(t, err)
	bm, release := buf.View(false)
	release()

	Resize(ResizeOptions{Width: 2}, bm)
	Crop(CropOptions{Width: 2, Height: 2}, bm)
	Rotate(RotateOptions{Degrees: 90}, bm)
	Blur(BlurOptions{Radius: 2}, bm)

	assert.Equal(t, 0, bm.Len())
	assert.Equal(t, 4, buf.Width())
	assert.Equal(t, 4, buf.Height())
}
