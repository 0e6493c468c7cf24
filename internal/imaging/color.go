package imaging

import (
	"fmt"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pixel-tools/internal/pixel"
)

// HSLColor is a color in HSL space, rounded for display.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-359 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult is one color in the representations the tools report.
type ColorResult struct {
	Hex    string     `json:"hex"`    // "#RRGGBBAA"
	Packed uint32     `json:"packed"` // big-endian R,G,B,A
	RGB    pixel.RGB  `json:"rgb"`
	RGBA   pixel.RGBA `json:"rgba"`
	HSL    HSLColor   `json:"hsl"`
}

// Describe expands c into a ColorResult.
func Describe(c pixel.RGBA) ColorResult {
	return ColorResult{
		Hex:    c.Hex(),
		Packed: c.Packed(),
		RGB:    pixel.RGB{R: c.R, G: c.G, B: c.B},
		RGBA:   c,
		HSL:    toHSL(c),
	}
}

// SampleColor returns the color at (x, y). Unlike the pixel accessors, the
// coordinate must lie inside the image on both axes.
func SampleColor(im *Image, x, y int) (*ColorResult, error) {
	if x < 0 || y < 0 || x >= im.Width() || y >= im.Height() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, im.Width(), im.Height())
	}
	c, _ := im.buf.At(im.Width()*y + x)
	r := Describe(c)
	return &r, nil
}

// LabeledPoint is a coordinate to sample, with an optional label echoed in
// the result.
type LabeledPoint struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label,omitempty"`
}

// LabeledColorResult is the color found at a LabeledPoint.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// SampleColors samples every point in order. Any point outside the image
// fails the whole call.
func SampleColors(im *Image, points []LabeledPoint) ([]LabeledColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))
	for _, p := range points {
		c, err := SampleColor(im, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{Label: p.Label, X: p.X, Y: p.Y, Color: *c})
	}
	return results, nil
}

// ColorFrequency is one entry of a dominant color palette.
type ColorFrequency struct {
	Hex        string    `json:"hex"`        // quantized "#RRGGBBAA", alpha always FF
	Percentage float64   `json:"percentage"` // share of scanned pixels, 0-100
	RGB        pixel.RGB `json:"rgb"`
}

// DominantColors returns up to n of the most frequent colors, most frequent
// first. Each channel is quantized to a multiple of 16 so near shades group
// together; alpha is ignored. Fully transparent pixels are skipped.
func DominantColors(im *Image, n int) ([]ColorFrequency, error) {
	bm, release, err := im.Borrow()
	if err != nil {
		return nil, err
	}
	defer release()

	counts := make(map[pixel.RGB]int)
	total := 0
	s := bm.Scan(0, 0)
	for s.Next() {
		_, _, idx := s.Point()
		c, _ := bm.At(idx)
		if c.A == 0 {
			continue
		}
		counts[pixel.RGB{R: c.R / 16 * 16, G: c.G / 16 * 16, B: c.B / 16 * 16}]++
		total++
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for rgb, cnt := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        rgb.Canonical().Hex(),
			Percentage: float64(cnt) / float64(total) * 100,
			RGB:        rgb,
		})
	}
	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if n >= 0 && len(colors) > n {
		colors = colors[:n]
	}
	return colors, nil
}

func toHSL(c pixel.RGBA) HSLColor {
	h, s, l := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}
