package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/image/tiff"

	"github.com/ironsheep/pixel-tools/internal/pixel"
)

// TIFF handles single-page TIFF files. Multi-page files are rejected with
// ErrInvalidImage.
type TIFF struct {
	// Uncompressed disables deflate compression on encode.
	Uncompressed bool
}

// Name implements Handler.
func (*TIFF) Name() string { return "tiff" }

// MimeType implements Handler.
func (*TIFF) MimeType() string { return "image/tiff" }

// Extensions implements Handler.
func (*TIFF) Extensions() []string { return []string{".tif", ".tiff"} }

// Decode implements Handler.
func (t *TIFF) Decode(data []byte) (*pixel.Buffer, Encoding, error) {
	if tiffPageCount(data) > 1 {
		return nil, 0, fmt.Errorf("%w: multi-page TIFF", ErrInvalidImage)
	}

	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, decodeError(t.Name(), err)
	}

	f := frameFromImage(img)
	buf, err := Normalize(f)
	if err != nil {
		return nil, 0, err
	}
	return buf, f.Encoding, nil
}

// Encode implements Handler.
func (t *TIFF) Encode(w io.Writer, buf *pixel.Buffer) error {
	opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
	if t.Uncompressed {
		opts = &tiff.Options{Compression: tiff.Uncompressed}
	}
	if err := tiff.Encode(w, buf.Image(), opts); err != nil {
		return encodeError(t.Name(), err)
	}
	return nil
}

// tiffPageCount follows the IFD chain far enough to tell one page from many.
// It returns 0 when the header cannot be read; the codec reports why.
func tiffPageCount(data []byte) int {
	if len(data) < 8 {
		return 0
	}

	var order binary.ByteOrder
	switch string(data[:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return 0
	}

	offset := order.Uint32(data[4:8])
	pages := 0
	for offset != 0 && pages < 2 {
		if uint64(offset)+2 > uint64(len(data)) {
			return pages
		}
		entries := uint64(order.Uint16(data[offset:]))
		next := uint64(offset) + 2 + entries*12
		if next+4 > uint64(len(data)) {
			return pages
		}
		pages++
		offset = order.Uint32(data[next:])
	}
	return pages
}
