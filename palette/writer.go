package palette

import "io"

// Encode writes p to w in Quarantine palette format. The header is written
// as zeroes.
func Encode(w io.Writer, p *Palette) error {
	var tmp [Size]byte
	for i, c := range p {
		o := headerSize + i*colorBytes
		tmp[o], tmp[o+1], tmp[o+2] = c.R, c.G, c.B
	}
	_, err := w.Write(tmp[:])
	return err
}
