package quarantine

import (
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/quarantine/palette"
	"github.com/bodgit/quarantine/spr"
	"github.com/stretchr/testify/assert"
)

func testPalette() *palette.Palette {
	p := new(palette.Palette)
	for i := range p {
		p[i] = palette.RGB{R: byte(i), G: byte(i), B: byte(i)}
	}
	p[1] = palette.RGB{R: 10, G: 20, B: 30}
	p[2] = palette.RGB{R: 40, G: 50, B: 60}
	return p
}

func TestRasterize(t *testing.T) {
	s := &spr.Sprite{Header: spr.Header{Width: 2, Height: 1}, Pix: []byte{1, 2}}

	m := Rasterize(s, testPalette(), nil)
	assert.Equal(t, image.Rect(0, 0, 2, 1), m.Bounds())
	assert.Equal(t, color.NRGBA{10, 20, 30, 0xff}, m.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{40, 50, 60, 0xff}, m.NRGBAAt(1, 0))
}

func TestRasterizeRowMajor(t *testing.T) {
	s := &spr.Sprite{Header: spr.Header{Width: 3, Height: 2}, Pix: []byte{3, 4, 5, 6, 7, 8}}

	m := Rasterize(s, testPalette(), nil)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			v := byte(3 + y*3 + x)
			assert.Equal(t, color.NRGBA{v, v, v, 0xff}, m.NRGBAAt(x, y))
		}
	}
}

func TestRasterizeTransparent(t *testing.T) {
	p := testPalette()
	// A second palette entry that is also black
	p[9] = palette.RGB{}

	s := &spr.Sprite{Header: spr.Header{Width: 4, Height: 1}, Pix: []byte{0, 1, 9, 2}}

	m := Rasterize(s, p, &Background)
	assert.Equal(t, color.NRGBA{0, 0, 0, 0}, m.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{10, 20, 30, 0xff}, m.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{0, 0, 0, 0}, m.NRGBAAt(2, 0))
	assert.Equal(t, color.NRGBA{40, 50, 60, 0xff}, m.NRGBAAt(3, 0))

	// Any color can be the key and its RGB is kept
	m = Rasterize(s, p, &palette.RGB{R: 10, G: 20, B: 30})
	assert.Equal(t, color.NRGBA{0, 0, 0, 0xff}, m.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{10, 20, 30, 0}, m.NRGBAAt(1, 0))
}

func TestRasterizeEmpty(t *testing.T) {
	for _, h := range []spr.Header{{Width: 0, Height: 0}, {Width: 0, Height: 5}, {Width: 5, Height: 0}} {
		m := Rasterize(&spr.Sprite{Header: h, Pix: []byte{}}, testPalette(), &Background)
		assert.True(t, m.Bounds().Empty())
		assert.Empty(t, m.Pix)
	}
}
