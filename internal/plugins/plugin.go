package plugins

import "github.com/ironsheep/pixel-tools/internal/pixel"

// Plugin is the calling convention shared by every transformation.
type Plugin[O any] func(opts O, bm *pixel.Bitmap)

// Defaulter is implemented by options types with non-zero defaults.
type Defaulter[O any] interface {
	Default() O
}

// DefaultOf returns the default options for O: its Default method when it
// has one, the zero value otherwise.
func DefaultOf[O any]() O {
	var zero O
	if d, ok := any(zero).(Defaulter[O]); ok {
		return d.Default()
	}
	return zero
}
