package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-tools/internal/pixel"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// IHDR color type of 8 or 16-bit grayscale with alpha.
const pngColorGrayAlpha = 4

// PNG handles the PNG container. The zero value uses the default
// compression level.
type PNG struct {
	Compression png.CompressionLevel
}

// Name implements Handler.
func (*PNG) Name() string { return "png" }

// MimeType implements Handler.
func (*PNG) MimeType() string { return "image/png" }

// Extensions implements Handler.
func (*PNG) Extensions() []string { return []string{".png"} }

// Decode implements Handler.
//
// Animated PNGs (an acTL chunk ahead of the image data) are rejected with
// ErrInvalidImage before any pixel data is decoded. Indexed images are
// resolved against the raw PLTE bytes.
func (p *PNG) Decode(data []byte) (*pixel.Buffer, Encoding, error) {
	meta := readPNGMeta(data)
	if meta.animated {
		return nil, 0, fmt.Errorf("%w: animated PNG", ErrInvalidImage)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, decodeError(p.Name(), err)
	}

	var f Frame
	switch m := img.(type) {
	case *image.Paletted:
		b := m.Bounds()
		f = Frame{
			Width:    b.Dx(),
			Height:   b.Dy(),
			Encoding: Indexed,
			Pix:      packRows(m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y), b.Dx(), b.Dy(), 1),
			Palette:  meta.palette,
		}
	case *image.NRGBA:
		if meta.colorType == pngColorGrayAlpha {
			f = grayAlphaFrame(m)
		} else {
			f = frameFromImage(m)
		}
	default:
		f = frameFromImage(img)
	}

	buf, err := Normalize(f)
	if err != nil {
		return nil, 0, err
	}
	return buf, f.Encoding, nil
}

// Encode implements Handler.
func (p *PNG) Encode(w io.Writer, buf *pixel.Buffer) error {
	if err := imaging.Encode(w, buf.Image(), imaging.PNG, imaging.PNGCompressionLevel(p.Compression)); err != nil {
		return encodeError(p.Name(), err)
	}
	return nil
}

// grayAlphaFrame recovers the two source channels the png package expanded
// into NRGBA.
func grayAlphaFrame(m *image.NRGBA) Frame {
	b := m.Bounds()
	f := Frame{Width: b.Dx(), Height: b.Dy(), Encoding: GrayAlpha8}
	f.Pix = make([]byte, 0, f.Width*f.Height*2)
	for y := 0; y < f.Height; y++ {
		row := m.Pix[m.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < f.Width; x++ {
			f.Pix = append(f.Pix, row[x*4], row[x*4+3])
		}
	}
	return f
}

type pngMeta struct {
	colorType byte
	palette   []byte
	animated  bool
}

// readPNGMeta walks the chunks ahead of the first IDAT. It never fails: a
// malformed stream yields whatever was gathered so far and the codec reports
// the actual error.
func readPNGMeta(data []byte) pngMeta {
	var meta pngMeta
	if !bytes.HasPrefix(data, pngSignature) {
		return meta
	}

	rest := data[len(pngSignature):]
	for len(rest) >= 12 {
		length := binary.BigEndian.Uint32(rest[:4])
		kind := string(rest[4:8])
		if uint64(length)+12 > uint64(len(rest)) {
			return meta
		}
		body := rest[8 : 8+length]

		switch kind {
		case "IHDR":
			if len(body) == 13 {
				meta.colorType = body[9]
			}
		case "PLTE":
			meta.palette = append([]byte(nil), body...)
		case "acTL":
			meta.animated = true
		case "IDAT", "IEND":
			return meta
		}
		rest = rest[12+length:]
	}
	return meta
}
