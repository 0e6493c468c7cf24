package pixel

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBitmap(t *testing.T, w, h int, strict bool) (*Buffer, *Bitmap, func()) {
	t.Helper()
	buf, err := NewBuffer(w, h)
	require.NoError(t, err)
	bm, release := buf.View(strict)
	return buf, bm, release
}

func TestBufferFrom(t *testing.T) {
	_, err := BufferFrom(2, 2, make([]RGBA, 3))
	assert.Error(t, err)

	_, err = BufferFrom(-1, 2, nil)
	assert.Error(t, err)

	buf, err := BufferFrom(2, 3, make([]RGBA, 6))
	require.NoError(t, err)
	assert.Equal(t, 2, buf.Width())
	assert.Equal(t, 3, buf.Height())
	assert.Equal(t, 6, buf.Len())
}

func TestBufferClone(t *testing.T) {
	buf, bm, release := newTestBitmap(t, 2, 2, false)
	defer release()
	bm.SetPixelByIndex(0, Red())

	clone := buf.Clone()
	bm.SetPixelByIndex(0, Blue())

	c, _ := clone.At(0)
	assert.Equal(t, Red(), c)
}

func TestSetPixelByIndex(t *testing.T) {
	buf, bm, release := newTestBitmap(t, 3, 2, false)
	defer release()

	assert.True(t, bm.SetPixelByIndex(5, Green()))
	c, ok := buf.At(5)
	assert.True(t, ok)
	assert.Equal(t, Green(), c)

	before := buf.Clone().Pix()
	assert.False(t, bm.SetPixelByIndex(6, Red()))
	assert.False(t, bm.SetPixelByIndex(-1, Red()))
	assert.Equal(t, before, buf.Pix())
}

func TestSetPixel(t *testing.T) {
	t.Run("index only", func(t *testing.T) {
		buf, bm, release := newTestBitmap(t, 3, 2, false)
		defer release()

		assert.True(t, bm.SetPixel(1, 1, RGB{1, 2, 3}))
		c, _ := buf.At(4)
		assert.Equal(t, RGBA{1, 2, 3, 255}, c)

		// x beyond the width wraps onto the next row
		assert.True(t, bm.SetPixel(3, 0, Red()))
		c, _ = buf.At(3)
		assert.Equal(t, Red(), c)

		assert.False(t, bm.SetPixel(0, 2, Red()))
	})

	t.Run("strict", func(t *testing.T) {
		buf, bm, release := newTestBitmap(t, 3, 2, true)
		defer release()

		assert.False(t, bm.SetPixel(3, 0, Red()))
		c, _ := buf.At(3)
		assert.Equal(t, Transparent(), c)
		assert.True(t, bm.SetPixel(2, 1, Red()))
	})
}

func TestReleasedBitmap(t *testing.T) {
	buf, bm, release := newTestBitmap(t, 2, 2, false)
	release()

	assert.Equal(t, 0, bm.Width())
	assert.Equal(t, 0, bm.Len())
	assert.False(t, bm.SetPixelByIndex(0, Red()))
	assert.False(t, bm.Scan(0, 0).Next())
	assert.Error(t, bm.Replace(1, 1, make([]RGBA, 1)))

	c, _ := buf.At(0)
	assert.Equal(t, Transparent(), c)
}

func TestSwapAndReplace(t *testing.T) {
	buf, bm, release := newTestBitmap(t, 2, 2, false)
	defer release()

	assert.False(t, bm.Swap(make([]RGBA, 3)))
	assert.True(t, bm.Swap([]RGBA{Red(), Red(), Red(), Red()}))
	c, _ := buf.At(3)
	assert.Equal(t, Red(), c)

	assert.Error(t, bm.Replace(3, 3, make([]RGBA, 4)))
	require.NoError(t, bm.Replace(1, 3, make([]RGBA, 3)))
	assert.Equal(t, 1, buf.Width())
	assert.Equal(t, 3, buf.Height())
}

func TestImageBridge(t *testing.T) {
	buf, bm, release := newTestBitmap(t, 2, 1, false)
	defer release()
	bm.SetPixel(0, 0, RGBA{10, 20, 30, 40})
	bm.SetPixel(1, 0, Blue())

	img := bm.Image()
	assert.Equal(t, image.Rect(0, 0, 2, 1), img.Bounds())
	assert.Equal(t, color.NRGBA{10, 20, 30, 40}, img.NRGBAAt(0, 0))

	// Sub-images keep their own origin
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(2, 3, color.NRGBA{1, 2, 3, 4})
	sub := src.SubImage(image.Rect(2, 2, 4, 4))
	require.NoError(t, bm.ReplaceImage(sub))
	assert.Equal(t, 2, buf.Width())
	assert.Equal(t, 2, buf.Height())
	c, _ := buf.At(2)
	assert.Equal(t, RGBA{1, 2, 3, 4}, c)

	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.SetGray(0, 0, color.Gray{77})
	require.NoError(t, bm.ReplaceImage(gray))
	c, _ = buf.At(0)
	assert.Equal(t, RGBA{77, 77, 77, 255}, c)
}
