package quarantine

import (
	"image"

	"github.com/bodgit/quarantine/palette"
	"github.com/bodgit/quarantine/spr"
)

// Background is the palette color made transparent when transparency is
// enabled.
var Background = palette.RGB{R: 0, G: 0, B: 0}

// Rasterize returns s as a true color image by looking up each pixel in p.
//
// If key is not nil, every pixel whose color equals *key has its alpha
// cleared but its color is kept. This is done by color rather than by
// palette index so any other index holding the same color becomes
// transparent too.
func Rasterize(s *spr.Sprite, p *palette.Palette, key *palette.RGB) *image.NRGBA {
	m := image.NewNRGBA(s.Bounds())

	for i, index := range s.Pix {
		c := p[index]

		o := i << 2
		m.Pix[o+0] = c.R
		m.Pix[o+1] = c.G
		m.Pix[o+2] = c.B
		m.Pix[o+3] = 0xff

		if key != nil && c == *key {
			m.Pix[o+3] = 0x00
		}
	}

	return m
}
