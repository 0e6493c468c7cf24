package plugins

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-tools/internal/pixel"
)

// ResizeOptions sets the target size. A zero width or height preserves the
// aspect ratio; both zero leaves the image as is.
type ResizeOptions struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Filter string `json:"filter,omitempty"` // lanczos, catmullrom, linear, box, nearest
}

// Default resamples with Lanczos.
func (ResizeOptions) Default() ResizeOptions {
	return ResizeOptions{Filter: "lanczos"}
}

var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

// Resize scales the image, replacing the buffer and its dimensions.
func Resize(opts ResizeOptions, bm *pixel.Bitmap) {
	if opts.Width < 0 || opts.Height < 0 || (opts.Width == 0 && opts.Height == 0) || bm.Len() == 0 {
		return
	}
	filter, ok := filters[strings.ToLower(opts.Filter)]
	if !ok {
		filter = imaging.Lanczos
	}
	// ReplaceImage only fails on a released view, which has Len 0.
	_ = bm.ReplaceImage(imaging.Resize(bm.Image(), opts.Width, opts.Height, filter))
}

// CropOptions is the region to keep, in pixels from the top-left corner.
type CropOptions struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Crop keeps the part of the region that overlaps the image. A region that
// misses the image entirely is ignored.
func Crop(opts CropOptions, bm *pixel.Bitmap) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return
	}
	rect := image.Rect(opts.X, opts.Y, opts.X+opts.Width, opts.Y+opts.Height)
	bounds := image.Rect(0, 0, bm.Width(), bm.Height())
	if rect.Intersect(bounds).Empty() {
		return
	}
	// A released view has empty bounds and returned above.
	_ = bm.ReplaceImage(imaging.Crop(bm.Image(), rect))
}

// RotateOptions is the counter-clockwise rotation in degrees.
type RotateOptions struct {
	Degrees float64 `json:"degrees"`
}

// Rotate turns the image counter-clockwise. Right angles are exact; other
// angles grow the canvas to fit and fill the corners with transparency.
func Rotate(opts RotateOptions, bm *pixel.Bitmap) {
	if bm.Len() == 0 || math.IsNaN(opts.Degrees) || math.IsInf(opts.Degrees, 0) {
		return
	}
	deg := math.Mod(opts.Degrees, 360)
	if deg < 0 {
		deg += 360
	}

	var out *image.NRGBA
	switch deg {
	case 0:
		return
	case 90:
		out = imaging.Rotate90(bm.Image())
	case 180:
		out = imaging.Rotate180(bm.Image())
	case 270:
		out = imaging.Rotate270(bm.Image())
	default:
		out = imaging.Rotate(bm.Image(), deg, color.Transparent)
	}
	// Len 0 covers released views, the only ReplaceImage failure.
	_ = bm.ReplaceImage(out)
}
