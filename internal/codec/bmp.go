package codec

import (
	"bytes"
	"io"

	"golang.org/x/image/bmp"

	"github.com/ironsheep/pixel-tools/internal/pixel"
)

// BMP handles Windows bitmaps. Paletted bitmaps are expanded through their
// color table by the codec and reported as RGBA8.
type BMP struct{}

// Name implements Handler.
func (*BMP) Name() string { return "bmp" }

// MimeType implements Handler.
func (*BMP) MimeType() string { return "image/bmp" }

// Extensions implements Handler.
func (*BMP) Extensions() []string { return []string{".bmp"} }

// Decode implements Handler.
func (b *BMP) Decode(data []byte) (*pixel.Buffer, Encoding, error) {
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, decodeError(b.Name(), err)
	}

	f := frameFromImage(img)
	buf, err := Normalize(f)
	if err != nil {
		return nil, 0, err
	}
	return buf, f.Encoding, nil
}

// Encode implements Handler.
func (b *BMP) Encode(w io.Writer, buf *pixel.Buffer) error {
	if err := bmp.Encode(w, buf.Image()); err != nil {
		return encodeError(b.Name(), err)
	}
	return nil
}
