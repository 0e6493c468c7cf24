package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/ironsheep/pixel-tools/internal/pixel"
)

// Encoding identifies the pixel layout a codec produced before
// normalization.
type Encoding int

// Source encodings understood by Normalize.
const (
	Gray8      Encoding = iota + 1 // 1 byte per pixel
	Gray16                         // 2 bytes per pixel, big-endian
	Indexed                        // 1 palette index per pixel
	RGB8                           // 3 bytes per pixel
	GrayAlpha8                     // 2 bytes per pixel: gray, alpha
	RGBA8                          // 4 bytes per pixel, straight alpha
	CMYK8                          // 4 bytes per pixel, 0 = no ink
	RGB16                          // 6 bytes per pixel, big-endian
	RGBA16                         // 8 bytes per pixel, big-endian, straight alpha
)

var encodingNames = map[Encoding]string{
	Gray8:      "gray8",
	Gray16:     "gray16",
	Indexed:    "indexed",
	RGB8:       "rgb8",
	GrayAlpha8: "gray-alpha8",
	RGBA8:      "rgba8",
	CMYK8:      "cmyk8",
	RGB16:      "rgb16",
	RGBA16:     "rgba16",
}

func (e Encoding) String() string {
	if s, ok := encodingNames[e]; ok {
		return s
	}
	return fmt.Sprintf("encoding(%d)", int(e))
}

// BytesPerPixel returns the stride of one pixel in Frame.Pix.
func (e Encoding) BytesPerPixel() int {
	switch e {
	case Gray8, Indexed:
		return 1
	case Gray16, GrayAlpha8:
		return 2
	case RGB8:
		return 3
	case RGBA8, CMYK8:
		return 4
	case RGB16:
		return 6
	case RGBA16:
		return 8
	}
	return 0
}

// HasAlpha reports whether the encoding carries an alpha channel.
func (e Encoding) HasAlpha() bool {
	return e == GrayAlpha8 || e == RGBA8 || e == RGBA16
}

// Frame is one decoded image in its source encoding: tightly packed rows of
// Width*BytesPerPixel bytes each.
type Frame struct {
	Width    int
	Height   int
	Encoding Encoding
	Pix      []byte

	// Palette holds one byte per palette entry for Indexed frames. Each
	// looked-up byte is treated as a gray level.
	Palette []byte
}

// Normalize converts a frame into the canonical RGBA buffer.
//
//	gray8       gray replicated into R,G,B; alpha 255
//	gray16      value*255/65535 (truncated), replicated; alpha 255
//	indexed     palette byte per index, then as gray8
//	rgb8        channels copied; alpha 255
//	gray-alpha8 gray replicated; second channel is alpha
//	rgba8       copied as-is
//	cmyk8       R = 255*(1-C)*(1-K) and so on; alpha 255
//	rgb16       each channel scaled like gray16; alpha 255
//	rgba16      each channel scaled like gray16
//
// An index with no palette entry yields ErrInvalidImage.
func Normalize(f Frame) (*pixel.Buffer, error) {
	if f.Width < 0 || f.Height < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidImage, f.Width, f.Height)
	}
	bpp := f.Encoding.BytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("%w: unsupported source encoding %v", ErrInvalidImage, f.Encoding)
	}
	n := f.Width * f.Height
	if len(f.Pix) < n*bpp {
		return nil, fmt.Errorf("%w: %d bytes of pixel data for %dx%d %v", ErrInvalidImage, len(f.Pix), f.Width, f.Height, f.Encoding)
	}

	out := make([]pixel.RGBA, n)
	p := f.Pix

	switch f.Encoding {
	case Gray8:
		for i := range out {
			g := p[i]
			out[i] = pixel.RGBA{R: g, G: g, B: g, A: 0xFF}
		}
	case Gray16:
		for i := range out {
			g := scale16(binary.BigEndian.Uint16(p[i*2:]))
			out[i] = pixel.RGBA{R: g, G: g, B: g, A: 0xFF}
		}
	case Indexed:
		for i := range out {
			idx := int(p[i])
			if idx >= len(f.Palette) {
				return nil, fmt.Errorf("%w: palette index %d out of range (%d entries)", ErrInvalidImage, idx, len(f.Palette))
			}
			g := f.Palette[idx]
			out[i] = pixel.RGBA{R: g, G: g, B: g, A: 0xFF}
		}
	case RGB8:
		for i := range out {
			o := i * 3
			out[i] = pixel.RGBA{R: p[o], G: p[o+1], B: p[o+2], A: 0xFF}
		}
	case GrayAlpha8:
		for i := range out {
			o := i * 2
			out[i] = pixel.RGBA{R: p[o], G: p[o], B: p[o], A: p[o+1]}
		}
	case RGBA8:
		for i := range out {
			o := i * 4
			out[i] = pixel.RGBA{R: p[o], G: p[o+1], B: p[o+2], A: p[o+3]}
		}
	case CMYK8:
		for i := range out {
			o := i * 4
			out[i] = cmykToRGBA(p[o], p[o+1], p[o+2], p[o+3])
		}
	case RGB16:
		for i := range out {
			o := i * 6
			out[i] = pixel.RGBA{
				R: scale16(binary.BigEndian.Uint16(p[o:])),
				G: scale16(binary.BigEndian.Uint16(p[o+2:])),
				B: scale16(binary.BigEndian.Uint16(p[o+4:])),
				A: 0xFF,
			}
		}
	case RGBA16:
		for i := range out {
			o := i * 8
			out[i] = pixel.RGBA{
				R: scale16(binary.BigEndian.Uint16(p[o:])),
				G: scale16(binary.BigEndian.Uint16(p[o+2:])),
				B: scale16(binary.BigEndian.Uint16(p[o+4:])),
				A: scale16(binary.BigEndian.Uint16(p[o+6:])),
			}
		}
	}

	return pixel.BufferFrom(f.Width, f.Height, out)
}

// scale16 maps a 16-bit sample to 8 bits, rounding toward zero.
func scale16(v uint16) uint8 {
	return uint8(uint32(v) * 255 / 65535)
}

// cmykToRGBA applies R = 255*(1-C)*(1-K) per channel with C, M, Y and K
// normalized to [0,1], truncating the result.
func cmykToRGBA(c, m, y, k uint8) pixel.RGBA {
	cf := float64(c) / 255
	mf := float64(m) / 255
	yf := float64(y) / 255
	kf := float64(k) / 255

	return pixel.RGBA{
		R: uint8(255 * (1 - cf) * (1 - kf)),
		G: uint8(255 * (1 - mf) * (1 - kf)),
		B: uint8(255 * (1 - yf) * (1 - kf)),
		A: 0xFF,
	}
}
