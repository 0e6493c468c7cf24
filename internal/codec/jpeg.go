package codec

import (
	"bytes"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-tools/internal/pixel"
)

// DefaultJPEGQuality is used when JPEG.Quality is zero.
const DefaultJPEGQuality = 100

// JPEG handles baseline and progressive JPEG files. Grayscale, YCbCr and
// Adobe CMYK sources are supported.
//
// JPEG has no alpha channel: the alpha of the canonical buffer is dropped on
// encode.
type JPEG struct {
	// Quality ranges from 1 to 100. Zero means DefaultJPEGQuality.
	Quality int
}

// Name implements Handler.
func (*JPEG) Name() string { return "jpeg" }

// MimeType implements Handler.
func (*JPEG) MimeType() string { return "image/jpeg" }

// Extensions implements Handler.
func (*JPEG) Extensions() []string { return []string{".jpg", ".jpeg"} }

// Decode implements Handler.
func (j *JPEG) Decode(data []byte) (*pixel.Buffer, Encoding, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, decodeError(j.Name(), err)
	}

	f := frameFromImage(img)
	buf, err := Normalize(f)
	if err != nil {
		return nil, 0, err
	}
	return buf, f.Encoding, nil
}

// Encode implements Handler.
func (j *JPEG) Encode(w io.Writer, buf *pixel.Buffer) error {
	q := j.Quality
	if q <= 0 {
		q = DefaultJPEGQuality
	}
	if err := imaging.Encode(w, buf.Image(), imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
		return encodeError(j.Name(), err)
	}
	return nil
}
