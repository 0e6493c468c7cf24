package imaging

import (
	"errors"
	"fmt"

	"github.com/ironsheep/pixel-tools/internal/codec"
)

// ErrBorrowed is returned when a bitmap is requested while another view of
// the same image is still checked out.
var ErrBorrowed = errors.New("bitmap already borrowed")

// IOError is a failure reading or writing image bytes, as opposed to
// decoding them.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Kind classifies an error returned by this package.
type Kind int

// Error kinds.
const (
	KindOther Kind = iota
	KindIO
	KindHandler
	KindInvalidImage
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindHandler:
		return "handler"
	case KindInvalidImage:
		return "invalid_image"
	}
	return "other"
}

// KindOf reports which class of failure err belongs to. Structural validity
// wins over the other kinds; an unknown format counts as a handler failure.
func KindOf(err error) Kind {
	var (
		herr  *codec.HandlerError
		ioerr *IOError
	)
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, codec.ErrInvalidImage):
		return KindInvalidImage
	case errors.As(err, &herr), errors.Is(err, codec.ErrUnknownFormat):
		return KindHandler
	case errors.As(err, &ioerr):
		return KindIO
	}
	return KindOther
}
