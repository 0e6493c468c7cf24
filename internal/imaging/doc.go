// Package imaging is the image handle: it ties a decoded pixel buffer to its
// format handler and exposes loading, plugin application, pixel access and
// encoding.
//
//	img, err := imaging.Open(ctx, "in.png")
//	if err != nil {
//	    return err
//	}
//	if err := imaging.Apply(img, plugins.Flip, plugins.FlipOptions{Vertical: true}); err != nil {
//	    return err
//	}
//	uri, err := img.ExportBase64() // data:image/png;base64,...
//
// # Coordinates
//
// Pixels are addressed with 0-based coordinates from the top-left corner,
// and by row-major index width*y + x. Accessors return ok=false instead of
// failing when a position is out of range. By default a coordinate is out of
// range only when both x >= width and y >= height; WithStrictBounds switches
// to the usual per-axis check.
//
// # Borrowing
//
// Mutation goes through a pixel.Bitmap obtained from Borrow or, more
// commonly, through Apply. Only one view may be live at a time; a second
// Borrow fails with ErrBorrowed until the first is released.
//
// # Errors
//
// KindOf sorts errors into I/O failures (*IOError), handler failures
// (*codec.HandlerError, codec.ErrUnknownFormat) and structurally invalid
// images (codec.ErrInvalidImage).
//
// # Caching
//
// Cache keeps decoded images by path and returns clones, which the MCP
// server relies on to serve repeated requests for the same file.
package imaging
