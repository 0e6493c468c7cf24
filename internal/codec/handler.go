package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ironsheep/pixel-tools/internal/pixel"
)

// Handler decodes one container format into the canonical buffer and encodes
// it back. Handlers are stateless; the image that uses a handler owns the
// buffer it produced.
type Handler interface {
	// Name is the short format name, e.g. "png".
	Name() string
	// MimeType is the MIME type used in data URIs.
	MimeType() string
	// Extensions lists lower-case file extensions including the dot.
	Extensions() []string
	// Decode parses raw container bytes into a canonical buffer and reports
	// the source encoding it normalized from.
	Decode(data []byte) (*pixel.Buffer, Encoding, error)
	// Encode writes buf as full RGBA in this format.
	Encode(w io.Writer, buf *pixel.Buffer) error
}

// ErrInvalidImage is returned when the bytes decode but describe something
// this toolkit does not support, such as an animation or a palette index with
// no palette entry. It is never wrapped in a HandlerError.
var ErrInvalidImage = errors.New("invalid image")

// ErrUnknownFormat is returned when no handler matches a path, MIME type or
// byte signature.
var ErrUnknownFormat = errors.New("unknown image format")

// Op names the direction of a failed handler operation.
type Op string

// Handler operations.
const (
	OpDecode Op = "decode"
	OpEncode Op = "encode"
)

// HandlerError is a format-specific decoding or encoding failure reported by
// the underlying codec.
type HandlerError struct {
	Format string
	Op     Op
	Err    error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Format, e.Op, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

func decodeError(format string, err error) error {
	return &HandlerError{Format: format, Op: OpDecode, Err: err}
}

func encodeError(format string, err error) error {
	return &HandlerError{Format: format, Op: OpEncode, Err: err}
}

// Handlers returns the built-in handlers with default options.
func Handlers() []Handler {
	return []Handler{&PNG{}, &JPEG{}, &BMP{}, &TIFF{}}
}

// ForPath picks a handler from the file extension of path.
func ForPath(path string, handlers ...Handler) (Handler, error) {
	if len(handlers) == 0 {
		handlers = Handlers()
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, h := range handlers {
		for _, e := range h.Extensions() {
			if e == ext {
				return h, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
}

// ForMime picks a handler by MIME type.
func ForMime(mime string, handlers ...Handler) (Handler, error) {
	if len(handlers) == 0 {
		handlers = Handlers()
	}
	for _, h := range handlers {
		if h.MimeType() == mime {
			return h, nil
		}
	}
	return nil, fmt.Errorf("%w: mime type %q", ErrUnknownFormat, mime)
}

var signatures = []struct {
	name  string
	magic []byte
}{
	{"png", pngSignature},
	{"jpeg", []byte{0xFF, 0xD8, 0xFF}},
	{"bmp", []byte("BM")},
	{"tiff", []byte("II*\x00")},
	{"tiff", []byte("MM\x00*")},
}

// Sniff picks a handler from the leading bytes of data.
func Sniff(data []byte, handlers ...Handler) (Handler, error) {
	if len(handlers) == 0 {
		handlers = Handlers()
	}
	for _, sig := range signatures {
		if !bytes.HasPrefix(data, sig.magic) {
			continue
		}
		for _, h := range handlers {
			if h.Name() == sig.name {
				return h, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: unrecognized signature", ErrUnknownFormat)
}
