package plugins

import (
	"strconv"

	"github.com/ironsheep/pixel-tools/internal/pixel"
)

// GridOptions configures the coordinate grid overlay.
type GridOptions struct {
	Spacing int `json:"spacing"`
	// Color is #RGB, #RRGGBB or #RRGGBBAA.
	Color string `json:"color"`
	// Labels prints "x,y" at every intersection.
	Labels bool `json:"labels"`
}

// Default draws semi-transparent red lines every 50 pixels with labels.
func (GridOptions) Default() GridOptions {
	return GridOptions{Spacing: 50, Color: "#FF000080", Labels: true}
}

var (
	gridFallback = pixel.RGBA{R: 0xFF, A: 0x80}
	labelFG      = pixel.White()
	labelBG      = pixel.RGBA{A: 180}
)

// Grid draws lines every Spacing pixels, blended over the image. An
// unparsable color falls back to semi-transparent red; a spacing below one
// does nothing.
func Grid(opts GridOptions, bm *pixel.Bitmap) {
	if opts.Spacing < 1 {
		return
	}
	c, err := pixel.ParseHex(opts.Color)
	if err != nil {
		c = gridFallback
	}

	w, h := bm.Width(), bm.Height()
	pix := bm.Pix()

	for x := opts.Spacing; x < w; x += opts.Spacing {
		for y := 0; y < h; y++ {
			pix[w*y+x] = blend(pix[w*y+x], c)
		}
	}
	for y := opts.Spacing; y < h; y += opts.Spacing {
		for x := 0; x < w; x++ {
			// crossings were already painted by the vertical pass
			if x%opts.Spacing == 0 && x > 0 {
				continue
			}
			pix[w*y+x] = blend(pix[w*y+x], c)
		}
	}

	if !opts.Labels {
		return
	}
	for y := opts.Spacing; y < h; y += opts.Spacing {
		for x := opts.Spacing; x < w; x += opts.Spacing {
			drawLabel(bm, x+2, y+2, strconv.Itoa(x)+","+strconv.Itoa(y))
		}
	}
}

// blend composites src over dst with straight alpha.
func blend(dst, src pixel.RGBA) pixel.RGBA {
	if src.A == 0xFF {
		return src
	}
	if src.A == 0 {
		return dst
	}
	sa := float64(src.A) / 255
	da := float64(dst.A) / 255
	oa := sa + da*(1-sa)

	ch := func(s, d uint8) uint8 {
		v := (float64(s)*sa + float64(d)*da*(1-sa)) / oa
		return uint8(v + 0.5)
	}
	return pixel.RGBA{
		R: ch(src.R, dst.R),
		G: ch(src.G, dst.G),
		B: ch(src.B, dst.B),
		A: uint8(oa*255 + 0.5),
	}
}

// 3x5 glyphs for digits and the comma.
var glyphs = map[rune][5]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	',': {"000", "000", "000", "010", "010"},
}

const (
	glyphAdvance = 4
	labelHeight  = 7
)

// drawLabel paints text on a dark box with its top-left glyph corner at
// (x, y). Anything outside the image is clipped.
func drawLabel(bm *pixel.Bitmap, x, y int, text string) {
	w, h := bm.Width(), bm.Height()
	pix := bm.Pix()
	put := func(px, py int, c pixel.RGBA) {
		if px >= 0 && px < w && py >= 0 && py < h {
			pix[w*py+px] = blend(pix[w*py+px], c)
		}
	}

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < len(text)*glyphAdvance; dx++ {
			put(x+dx, y+dy, labelBG)
		}
	}

	cx := x
	for _, r := range text {
		if g, ok := glyphs[r]; ok {
			for row, line := range g {
				for col, bit := range line {
					if bit == '1' {
						put(cx+col, y+row, labelFG)
					}
				}
			}
		}
		cx += glyphAdvance
	}
}
