package palette

import (
	"errors"
	"io"
)

// ErrTruncated is returned when the input ends before all 256 colors have
// been read.
var ErrTruncated = errors.New("palette: not enough data")

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Decode reads a Quarantine palette from r. No partial palette is ever
// returned; if r runs out early the error is ErrTruncated.
func Decode(r io.Reader) (*Palette, error) {
	var tmp [Size]byte
	if err := readFull(r, tmp[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return nil, ErrTruncated
	}

	p := new(Palette)
	for i := range p {
		o := headerSize + i*colorBytes
		p[i] = RGB{tmp[o], tmp[o+1], tmp[o+2]}
	}

	return p, nil
}
