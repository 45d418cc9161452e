/*
Package palette implements a Quarantine palette decoder and encoder.

Palettes are found in the .img files shipped with the game. The file starts
with a 13 byte header which carries nothing of use, followed by 256 colors
each stored as three bytes in red, green, blue order. Anything after the last
color is ignored, so the file must be at least 781 bytes in size.
*/
package palette

import "image/color"

const (
	headerSize   = 13
	numColors    = 256
	colorBytes   = 3
	paletteBytes = numColors * colorBytes

	// Size is the minimum number of bytes needed to decode a palette
	Size = headerSize + paletteBytes
)

// RGB is a single palette entry. It implements the color.Color interface and
// is always fully opaque.
type RGB struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = 0xffff
	return
}

// Palette holds the 256 colors addressed by each pixel byte of a sprite.
type Palette [numColors]RGB

// Colors returns p as a color.Palette suitable for use with image.Paletted.
func (p *Palette) Colors() color.Palette {
	cp := make(color.Palette, numColors)
	for i, c := range p {
		cp[i] = c
	}
	return cp
}
