package spr

import (
	"errors"
	"io"
)

var (
	errTooMany     = errors.New("spr: too many sprites")
	errTooLarge    = errors.New("spr: sprite is too large")
	errPixelLength = errors.New("spr: pixel data does not match dimensions")
)

// Encode writes sprites to w in Quarantine container format.
func Encode(w io.Writer, sprites []Sprite) error {
	if len(sprites) > MaxSprites {
		return errTooMany
	}

	tmp := make([]byte, 1, 1+len(sprites)<<1)
	tmp[0] = byte(len(sprites))
	for _, s := range sprites {
		if s.Width < 0 || s.Width > MaxDimension || s.Height < 0 || s.Height > MaxDimension {
			return errTooLarge
		}
		if len(s.Pix) != s.Area() {
			return errPixelLength
		}
		tmp = append(tmp, byte(s.Width), byte(s.Height))
	}

	if _, err := w.Write(tmp); err != nil {
		return err
	}

	for _, s := range sprites {
		if _, err := w.Write(s.Pix); err != nil {
			return err
		}
	}

	return nil
}
