package codec

import (
	"encoding/binary"
	"image"
	"image/color"
)

// frameFromImage reduces a decoded image to a Frame in the encoding closest
// to what the codec produced. Paletted images are expanded through their
// palette here; handlers that report Indexed frames build them themselves.
func frameFromImage(img image.Image) Frame {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	f := Frame{Width: w, Height: h}

	switch m := img.(type) {
	case *image.Gray:
		f.Encoding = Gray8
		f.Pix = packRows(m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y), w, h, 1)
	case *image.Gray16:
		f.Encoding = Gray16
		f.Pix = packRows(m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y), w, h, 2)
	case *image.CMYK:
		f.Encoding = CMYK8
		f.Pix = packRows(m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y), w, h, 4)
	case *image.NRGBA:
		f.Encoding = RGBA8
		f.Pix = packRows(m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y), w, h, 4)
	case *image.NRGBA64:
		f.Encoding = RGBA16
		f.Pix = packRows(m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y), w, h, 8)
	case *image.YCbCr:
		f.Encoding = RGB8
		f.Pix = make([]byte, 0, w*h*3)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := m.YCbCrAt(x, y)
				r, g, bl := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
				f.Pix = append(f.Pix, r, g, bl)
			}
		}
	case *image.RGBA:
		if m.Opaque() {
			f.Encoding = RGB8
			f.Pix = make([]byte, 0, w*h*3)
			for y := 0; y < h; y++ {
				row := m.Pix[m.PixOffset(b.Min.X, b.Min.Y+y):]
				for x := 0; x < w; x++ {
					f.Pix = append(f.Pix, row[x*4], row[x*4+1], row[x*4+2])
				}
			}
			return f
		}
		f = straightRGBA8(img)
	case *image.RGBA64:
		if m.Opaque() {
			f.Encoding = RGB16
			f.Pix = make([]byte, 0, w*h*6)
			for y := 0; y < h; y++ {
				row := m.Pix[m.PixOffset(b.Min.X, b.Min.Y+y):]
				for x := 0; x < w; x++ {
					f.Pix = append(f.Pix, row[x*8:x*8+6]...)
				}
			}
			return f
		}
		f.Encoding = RGBA16
		f.Pix = make([]byte, w*h*8)
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBA64Model.Convert(m.RGBA64At(x, y)).(color.NRGBA64)
				binary.BigEndian.PutUint16(f.Pix[i:], c.R)
				binary.BigEndian.PutUint16(f.Pix[i+2:], c.G)
				binary.BigEndian.PutUint16(f.Pix[i+4:], c.B)
				binary.BigEndian.PutUint16(f.Pix[i+6:], c.A)
				i += 8
			}
		}
	default:
		// Paletted and anything exotic
		f = straightRGBA8(img)
	}
	return f
}

// straightRGBA8 converts any image to a non-premultiplied RGBA8 frame.
func straightRGBA8(img image.Image) Frame {
	b := img.Bounds()
	f := Frame{Width: b.Dx(), Height: b.Dy(), Encoding: RGBA8}
	f.Pix = make([]byte, 0, f.Width*f.Height*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			f.Pix = append(f.Pix, c.R, c.G, c.B, c.A)
		}
	}
	return f
}

// packRows copies h rows of w*bpp bytes out of a strided pixel slice.
func packRows(pix []byte, stride, offset, w, h, bpp int) []byte {
	rowLen := w * bpp
	if stride == rowLen && offset == 0 && len(pix) == rowLen*h {
		out := make([]byte, len(pix))
		copy(out, pix)
		return out
	}
	out := make([]byte, 0, rowLen*h)
	for y := 0; y < h; y++ {
		start := offset + y*stride
		out = append(out, pix[start:start+rowLen]...)
	}
	return out
}
