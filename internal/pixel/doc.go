// Package pixel provides the canonical in-memory pixel representation shared by
// every format handler and plugin.
//
// All pixels are stored as non-premultiplied 8-bit RGBA values in a single
// contiguous, row-major slice. The index of a pixel at (x, y) is
//
//	index = width*y + x
//
// where (0,0) is the top-left corner, X increases rightward and Y increases
// downward.
//
// # Views
//
// A Buffer is owned by exactly one image. Plugins never see the Buffer
// directly; they receive a Bitmap, a transient view over the buffer's storage
// and dimensions. A Bitmap is only valid until its owner releases it, after
// which it behaves like an empty image.
//
// # Failure Semantics
//
// Nothing in this package panics on out-of-range input. Writes report success
// with a boolean, reads return an ok flag.
package pixel
