package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"os"
	"sync"

	"github.com/ironsheep/pixel-tools/internal/codec"
	"github.com/ironsheep/pixel-tools/internal/pixel"
	"github.com/ironsheep/pixel-tools/internal/plugins"
)

// Image pairs a canonical pixel buffer with the format handler that decoded
// it and will encode it again.
//
// An Image is meant for use by one goroutine at a time. The only runtime
// check is on Borrow: at most one Bitmap view may be checked out.
type Image struct {
	handler codec.Handler
	buf     *pixel.Buffer
	source  codec.Encoding
	strict  bool

	mu       sync.Mutex
	borrowed bool
}

// Option configures an Image at construction.
type Option func(*Image)

// WithStrictBounds makes coordinate accessors and Bitmap.SetPixel reject any
// x >= width or y >= height. Without it the lenient check applies:
// a coordinate is refused only when both are out of range.
func WithStrictBounds(strict bool) Option {
	return func(im *Image) { im.strict = strict }
}

// New wraps an existing buffer. The image takes ownership of buf.
func New(buf *pixel.Buffer, h codec.Handler, opts ...Option) *Image {
	im := &Image{handler: h, buf: buf, source: codec.RGBA8}
	for _, o := range opts {
		o(im)
	}
	return im
}

// Blank returns a transparent width x height image that encodes with h.
func Blank(width, height int, h codec.Handler, opts ...Option) (*Image, error) {
	buf, err := pixel.NewBuffer(width, height)
	if err != nil {
		return nil, err
	}
	return New(buf, h, opts...), nil
}

// LoadBytes decodes data with h. A nil handler is picked from the leading
// bytes.
func LoadBytes(data []byte, h codec.Handler, opts ...Option) (*Image, error) {
	if h == nil {
		var err error
		if h, err = codec.Sniff(data); err != nil {
			return nil, err
		}
	}

	buf, enc, err := h.Decode(data)
	if err != nil {
		return nil, err
	}
	im := New(buf, h, opts...)
	im.source = enc
	return im, nil
}

// Load reads path and decodes it with h. The read runs on its own goroutine
// and is abandoned when ctx is done.
func Load(ctx context.Context, path string, h codec.Handler, opts ...Option) (*Image, error) {
	data, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(data, h, opts...)
}

// Open is Load with the handler picked from the file extension, or from the
// leading bytes when the extension is not recognized.
func Open(ctx context.Context, path string, opts ...Option) (*Image, error) {
	return OpenWith(ctx, path, codec.Handlers(), opts...)
}

// OpenWith is Open restricted to the given handlers, typically configured
// ones.
func OpenWith(ctx context.Context, path string, handlers []codec.Handler, opts ...Option) (*Image, error) {
	data, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	h, err := codec.ForPath(path, handlers...)
	if err != nil {
		if h, err = codec.Sniff(data, handlers...); err != nil {
			return nil, err
		}
	}
	return LoadBytes(data, h, opts...)
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := os.ReadFile(path)
		done <- result{data, err}
	}()

	select {
	case <-ctx.Done():
		return nil, &IOError{Op: "read", Path: path, Err: ctx.Err()}
	case r := <-done:
		if r.err != nil {
			return nil, &IOError{Op: "read", Path: path, Err: r.err}
		}
		return r.data, nil
	}
}

// Handler returns the format handler used for encoding.
func (im *Image) Handler() codec.Handler { return im.handler }

// Format is the handler's short name.
func (im *Image) Format() string { return im.handler.Name() }

// MimeType is the handler's MIME type.
func (im *Image) MimeType() string { return im.handler.MimeType() }

// SourceEncoding is the encoding the buffer was normalized from.
func (im *Image) SourceEncoding() codec.Encoding { return im.source }

// Strict reports whether strict bounds checking is on.
func (im *Image) Strict() bool { return im.strict }

// Width returns the image width in pixels.
func (im *Image) Width() int { return im.buf.Width() }

// Height returns the image height in pixels.
func (im *Image) Height() int { return im.buf.Height() }

// Borrow checks out the only mutable view of the buffer. The returned
// release function ends the borrow and may be called more than once; after
// it the Bitmap behaves as an empty image.
func (im *Image) Borrow() (*pixel.Bitmap, func(), error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.borrowed {
		return nil, nil, ErrBorrowed
	}
	im.borrowed = true

	bm, detach := im.buf.View(im.strict)
	var once sync.Once
	release := func() {
		once.Do(func() {
			detach()
			im.mu.Lock()
			im.borrowed = false
			im.mu.Unlock()
		})
	}
	return bm, release, nil
}

// Apply runs plugin once over a fresh view of the image's buffer.
func Apply[O any](im *Image, plugin func(O, *pixel.Bitmap), opts O) error {
	bm, release, err := im.Borrow()
	if err != nil {
		return err
	}
	defer release()

	plugin(opts, bm)
	return nil
}

// ApplyDefault runs plugin with its default options.
func ApplyDefault[O any](im *Image, plugin func(O, *pixel.Bitmap)) error {
	return Apply(im, plugin, plugins.DefaultOf[O]())
}

// WriteTo encodes the image to w. It implements io.WriterTo.
func (im *Image) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := im.handler.Encode(cw, im.buf)
	return cw.n, err
}

// Encode returns the encoded image bytes.
func (im *Image) Encode() ([]byte, error) {
	var b bytes.Buffer
	if _, err := im.WriteTo(&b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Write encodes the image and stores it at path. The image is not changed.
func (im *Image) Write(path string) error {
	data, err := im.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// ExportBase64 encodes the image as a data URI:
// data:<mime>;base64,<payload>.
func (im *Image) ExportBase64() (string, error) {
	data, err := im.Encode()
	if err != nil {
		return "", err
	}
	return "data:" + im.handler.MimeType() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Clone returns an independent copy sharing only the handler.
func (im *Image) Clone() *Image {
	return &Image{
		handler: im.handler,
		buf:     im.buf.Clone(),
		source:  im.source,
		strict:  im.strict,
	}
}

func (im *Image) inRange(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	w, h := im.buf.Width(), im.buf.Height()
	if im.strict {
		return x < w && y < h
	}
	return !(x >= w && y >= h)
}

// PixelIndex returns the row-major index width*y + x.
//
// Unless the image is strict, (x, y) is rejected only when x >= width and
// y >= height both hold. A coordinate past the right edge on a valid row maps
// onto a following row, and the index may lie beyond the buffer.
func (im *Image) PixelIndex(x, y int) (int, bool) {
	if !im.inRange(x, y) {
		return 0, false
	}
	return im.buf.Width()*y + x, true
}

// PixelColorByIndex returns the packed RGBA value at idx.
func (im *Image) PixelColorByIndex(idx int) (uint32, bool) {
	c, ok := im.buf.At(idx)
	if !ok {
		return 0, false
	}
	return c.Packed(), true
}

// PixelColor returns the packed RGBA value at (x, y).
func (im *Image) PixelColor(x, y int) (uint32, bool) {
	idx, ok := im.PixelIndex(x, y)
	if !ok {
		return 0, false
	}
	return im.PixelColorByIndex(idx)
}

// PixelHexColorByIndex returns the color at idx as #RRGGBBAA.
func (im *Image) PixelHexColorByIndex(idx int) (string, bool) {
	c, ok := im.buf.At(idx)
	if !ok {
		return "", false
	}
	return c.Hex(), true
}

// PixelHexColor returns the color at (x, y) as #RRGGBBAA.
func (im *Image) PixelHexColor(x, y int) (string, bool) {
	idx, ok := im.PixelIndex(x, y)
	if !ok {
		return "", false
	}
	return im.PixelHexColorByIndex(idx)
}

// PixelRGBA returns the color at (x, y).
func (im *Image) PixelRGBA(x, y int) (pixel.RGBA, bool) {
	idx, ok := im.PixelIndex(x, y)
	if !ok {
		return pixel.RGBA{}, false
	}
	return im.buf.At(idx)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
