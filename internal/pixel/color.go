package pixel

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"strconv"
)

// Color is a color value that can be widened to the canonical RGBA form.
//
// RGB and RGBA are the two implementations: an RGB value is opaque and
// canonicalizes with alpha set to 255.
type Color interface {
	Canonical() RGBA
}

// RGB represents an opaque color with 8-bit components.
type RGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Canonical returns c with alpha = 255.
func (c RGB) Canonical() RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// RGBA implements color.Color as an opaque color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return c.Canonical().RGBA()
}

// RGBA is the canonical 4-channel color. Components are not premultiplied:
// an RGBA with A = 0 still carries its red, green and blue values.
type RGBA struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// Canonical returns c unchanged.
func (c RGBA) Canonical() RGBA {
	return c
}

// Packed returns the big-endian 32-bit interpretation of the canonical bytes,
// in R, G, B, A order. Opaque red is 0xFF0000FF.
func (c RGBA) Packed() uint32 {
	return binary.BigEndian.Uint32([]byte{c.R, c.G, c.B, c.A})
}

// Hex returns the color as "#RRGGBBAA".
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%08X", c.Packed())
}

// RGBA implements color.Color. The returned values are alpha-premultiplied
// 16-bit components, matching color.NRGBA.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Unpack is the inverse of Packed.
func Unpack(v uint32) RGBA {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return RGBA{R: b[0], G: b[1], B: b[2], A: b[3]}
}

// FromColor converts any color.Color into the canonical form.
func FromColor(c color.Color) RGBA {
	switch v := c.(type) {
	case RGBA:
		return v
	case RGB:
		return v.Canonical()
	case color.NRGBA:
		return RGBA{R: v.R, G: v.G, B: v.B, A: v.A}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Red returns opaque red.
func Red() RGBA { return RGBA{0xFF, 0x00, 0x00, 0xFF} }

// Green returns opaque green.
func Green() RGBA { return RGBA{0x00, 0xFF, 0x00, 0xFF} }

// Blue returns opaque blue.
func Blue() RGBA { return RGBA{0x00, 0x00, 0xFF, 0xFF} }

// Black returns opaque black.
func Black() RGBA { return RGBA{0x00, 0x00, 0x00, 0xFF} }

// White returns opaque white.
func White() RGBA { return RGBA{0xFF, 0xFF, 0xFF, 0xFF} }

// Transparent returns fully transparent black.
func Transparent() RGBA { return RGBA{} }

// ParseHex parses a hex color string like "#F00", "#FF0000" or "#FF000080".
// The leading '#' is optional. Colors without an alpha component are opaque.
func ParseHex(hex string) (RGBA, error) {
	if len(hex) == 0 {
		return RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}

	switch len(hex) {
	case 3:
		r := uint8(val>>8) & 0xF
		g := uint8(val>>4) & 0xF
		b := uint8(val) & 0xF
		return RGBA{R: r<<4 | r, G: g<<4 | g, B: b<<4 | b, A: 0xFF}, nil
	case 6:
		return RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 0xFF}, nil
	case 8:
		return Unpack(uint32(val)), nil
	default:
		return RGBA{}, fmt.Errorf("invalid hex color length")
	}
}
