package ppm

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	m.SetNRGBA(0, 0, color.NRGBA{10, 20, 30, 0xff})
	m.SetNRGBA(1, 0, color.NRGBA{40, 50, 60, 0x00})

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))
	assert.Equal(t, "P3\n2 1\n255\n10 20 30\n40 50 60\n", b.String())
}

func TestEncodeOffsetBounds(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	m.SetNRGBA(2, 2, color.NRGBA{1, 2, 3, 0xff})

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m.SubImage(image.Rect(2, 2, 3, 3))))
	assert.Equal(t, "P3\n1 1\n255\n1 2 3\n", b.String())
}

func TestRoundTrip(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	for i := 0; i < len(m.Pix); i += 4 {
		m.Pix[i+0] = uint8(i)
		m.Pix[i+1] = uint8(255 - i)
		m.Pix[i+2] = uint8(i * 3)
		m.Pix[i+3] = 0xff
	}

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))

	got, format, err := image.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, "ppm", format)
	assert.Equal(t, m, got)
}

func TestDecode(t *testing.T) {
	input := "P3 # plain\n# a comment\n2 1\n15\n15 0 0   0 15 0#trailing\n"

	m, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 1), m.Bounds())
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, m.At(0, 0))
	assert.Equal(t, color.NRGBA{0, 255, 0, 255}, m.At(1, 0))
}

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader("P3\n7 9\n255\n"))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Width)
	assert.Equal(t, 9, cfg.Height)
	assert.Equal(t, color.NRGBAModel, cfg.ColorModel)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"binary variant", "P6\n1 1\n255\n", errBadMagic},
		{"empty", "", errBadHeader},
		{"missing maximum", "P3\n1 1\n", errBadHeader},
		{"zero maximum", "P3\n1 1\n0\n", errBadHeader},
		{"negative width", "P3\n-1 1\n255\n", errBadHeader},
		{"short pixel data", "P3\n2 1\n255\n1 2 3\n4 5\n", errNotEnough},
		{"value above maximum", "P3\n1 1\n255\n1 2 256\n", errBadValue},
		{"not a number", "P3\n1 1\n255\n1 x 3\n", errBadValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			assert.Equal(t, tt.err, err)
		})
	}
}
