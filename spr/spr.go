/*
Package spr implements a decoder and encoder for Quarantine .spr sprite
containers.

A container holds up to 255 indexed color sprites. The first byte is the
number of sprites, followed by a width and height byte for every sprite in
turn. The remainder of the file is the pixel data for each sprite, one byte
per pixel in row-major order, with no padding between sprites. Each pixel
byte is an index into a 256 color palette held in a separate .img file, see
package palette. There is no compression.
*/
package spr

import "image"

const (
	// MaxSprites is the most sprites a single container can hold
	MaxSprites = 255

	// MaxDimension is the largest width or height a sprite can have
	MaxDimension = 255
)

// Header holds the dimensions of a sprite as declared in the container.
type Header struct {
	Width, Height int
}

// Area returns the number of pixel bytes the sprite occupies.
func (h Header) Area() int {
	return h.Width * h.Height
}

// Sprite is a single decoded sprite. Pix holds Width*Height palette indices.
type Sprite struct {
	Header
	Pix []byte
}

// Bounds returns the domain for which ColorIndexAt is valid.
func (s *Sprite) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

// ColorIndexAt returns the palette index of the pixel at (x, y).
func (s *Sprite) ColorIndexAt(x, y int) uint8 {
	if !(image.Point{x, y}.In(s.Bounds())) {
		return 0
	}
	return s.Pix[y*s.Width+x]
}
