package palette

import (
	"bytes"
	"errors"
	"image/color"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawPalette(extra int) []byte {
	b := make([]byte, Size+extra)
	for i := range b[:headerSize] {
		b[i] = 0xaa
	}
	for i := headerSize; i < len(b); i++ {
		b[i] = byte(i * 7)
	}
	return b
}

func TestDecode(t *testing.T) {
	b := rawPalette(0)

	p, err := Decode(bytes.NewReader(b))
	require.NoError(t, err)

	for i, c := range p {
		o := headerSize + 3*i
		assert.Equal(t, RGB{b[o], b[o+1], b[o+2]}, c, "entry %d", i)
	}
}

func TestDecodeIgnoresTrailingData(t *testing.T) {
	b := rawPalette(100)

	want, err := Decode(bytes.NewReader(b[:Size]))
	require.NoError(t, err)

	got, err := Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeTruncated(t *testing.T) {
	b := rawPalette(0)

	tests := []int{0, 1, headerSize, headerSize + 1, Size - 1}
	for _, n := range tests {
		p, err := Decode(bytes.NewReader(b[:n]))
		assert.Nil(t, p, "length %d", n)
		assert.True(t, errors.Is(err, ErrTruncated), "length %d", n)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestDecodeReadError(t *testing.T) {
	_, err := Decode(failingReader{})
	assert.Equal(t, io.ErrClosedPipe, err)
}

func TestEncode(t *testing.T) {
	var p Palette
	for i := range p {
		p[i] = RGB{byte(i), byte(255 - i), byte(i / 2)}
	}

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, &p))
	assert.Equal(t, Size, b.Len())

	got, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, &p, got)
}

func TestColors(t *testing.T) {
	var p Palette
	p[1] = RGB{10, 20, 30}

	cp := p.Colors()
	require.Len(t, cp, 256)
	assert.Equal(t, color.NRGBA{10, 20, 30, 0xff}, color.NRGBAModel.Convert(cp[1]))
	assert.Equal(t, 1, cp.Index(RGB{10, 20, 30}))
}
