package spr

import (
	"errors"
	"io"
)

// ErrTruncated is returned when the container ends before the count, the
// dimension table or any sprite's pixel data has been fully read.
var ErrTruncated = errors.New("spr: not enough data")

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	headers []Header
	sprites []Sprite
}

// The whole dimension table precedes any pixel data
func (d *decoder) readHeaders() error {
	var count [1]byte
	if err := readFull(d.r, count[:]); err != nil {
		return err
	}

	tmp := make([]byte, int(count[0])<<1)
	if err := readFull(d.r, tmp); err != nil {
		return err
	}

	d.headers = make([]Header, count[0])
	for i := range d.headers {
		d.headers[i] = Header{
			Width:  int(tmp[i<<1]),
			Height: int(tmp[i<<1+1]),
		}
	}
	return nil
}

func (d *decoder) readPixels() error {
	sprites := make([]Sprite, len(d.headers))
	for i, h := range d.headers {
		pix := make([]byte, h.Area())
		if err := readFull(d.r, pix); err != nil {
			return err
		}
		sprites[i] = Sprite{
			Header: h,
			Pix:    pix,
		}
	}
	d.sprites = sprites
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeaders(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return ErrTruncated
	}

	if configOnly {
		return nil
	}

	if err := d.readPixels(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return ErrTruncated
	}

	return nil
}

// Decode reads every sprite in a container from r, in the order they are
// declared. Either all sprites are returned or none are. Any data following
// the last sprite is ignored.
func Decode(r io.Reader) ([]Sprite, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.sprites, nil
}

// DecodeConfig returns the dimensions of each sprite in a container without
// reading any pixel data.
func DecodeConfig(r io.Reader) ([]Header, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return nil, err
	}
	return d.headers, nil
}
