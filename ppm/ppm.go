/*
Package ppm implements a decoder and encoder for the ASCII "plain" variant of
the portable pixmap format.

The format starts with the magic "P3", the width and height, then the maximum
channel value, followed by a red, green and blue value for each pixel in
row-major order. The encoder always writes a maximum of 255 and one pixel per
line. Alpha is discarded.
*/
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

const (
	magic  = "P3"
	maxVal = 255

	// Large enough for anything this package is used for
	maxDimension = 1 << 14
)

var (
	errBadMagic  = errors.New("ppm: invalid format")
	errBadHeader = errors.New("ppm: invalid header")
	errBadValue  = errors.New("ppm: invalid channel value")
	errNotEnough = errors.New("ppm: not enough image data")
)

func init() {
	image.RegisterFormat("ppm", magic, Decode, DecodeConfig)
}

// Encode writes the Image m to w in plain PPM format.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", magic, b.Dx(), b.Dy(), maxVal); err != nil {
		return err
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

type decoder struct {
	r *bufio.Reader

	width, height, max int
	image              *image.NRGBA
}

// Tokens are separated by whitespace and a '#' starts a comment that runs to
// the end of the line
func (d *decoder) token() (string, error) {
	var tok []byte
	for {
		c, err := d.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case c == '#':
			if len(tok) > 0 {
				return string(tok), d.r.UnreadByte()
			}
			if _, err := d.r.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case c == ' ', c == '\t', c == '\n', c == '\r', c == '\v', c == '\f':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}

func (d *decoder) number(limit int) (int, error) {
	tok, err := d.token()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 || n > limit {
		return 0, errBadValue
	}
	return n, nil
}

func (d *decoder) readHeader() error {
	tok, err := d.token()
	if err != nil {
		return err
	}
	if tok != magic {
		return errBadMagic
	}

	if d.width, err = d.number(maxDimension); err != nil {
		return err
	}
	if d.height, err = d.number(maxDimension); err != nil {
		return err
	}
	if d.max, err = d.number(maxVal); err != nil {
		return err
	}
	if d.max == 0 {
		return errBadHeader
	}
	return nil
}

func (d *decoder) readPixels() error {
	d.image = image.NewNRGBA(image.Rect(0, 0, d.width, d.height))
	for i := 0; i < len(d.image.Pix); i += 4 {
		for j := 0; j < 3; j++ {
			n, err := d.number(d.max)
			if err != nil {
				return err
			}
			d.image.Pix[i+j] = uint8(n * maxVal / d.max)
		}
		d.image.Pix[i+3] = 0xff
	}
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = bufio.NewReader(r)

	if err := d.readHeader(); err != nil {
		if err == io.EOF || err == errBadValue {
			return errBadHeader
		}
		return err
	}

	if configOnly {
		return nil
	}

	if err := d.readPixels(); err != nil {
		if err == io.EOF {
			return errNotEnough
		}
		return err
	}

	return nil
}

// Decode reads a plain PPM image from r and returns it as an *image.NRGBA.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a plain PPM image
// without decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      d.width,
		Height:     d.height,
	}, nil
}
