package quarantine

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"strings"

	"github.com/bodgit/quarantine/ppm"
	"github.com/ericpauley/go-quantize/quantize"
)

// An Emitter encodes rasterized sprites in a particular file format.
type Emitter interface {
	// Extension returns the file extension used for output files
	Extension() string
	Encode(io.Writer, image.Image) error
}

// NewEmitter returns the Emitter for the output file type t, one of "ppm",
// "png" or "gif".
func NewEmitter(t string) (Emitter, error) {
	switch strings.ToLower(t) {
	case "ppm":
		return ppmEmitter{}, nil
	case "png":
		return pngEmitter{}, nil
	case "gif":
		return gifEmitter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOutputFormat, t)
	}
}

// Emitters that can write an image with no pixels implement this
type emptyEncoder interface {
	encodesEmpty()
}

func encodesEmpty(e Emitter) bool {
	_, ok := e.(emptyEncoder)
	return ok
}

type ppmEmitter struct{}

func (ppmEmitter) encodesEmpty() {}

func (ppmEmitter) Extension() string {
	return "ppm"
}

func (ppmEmitter) Encode(w io.Writer, m image.Image) error {
	return ppm.Encode(w, m)
}

type pngEmitter struct{}

func (pngEmitter) Extension() string {
	return "png"
}

func (pngEmitter) Encode(w io.Writer, m image.Image) error {
	e := png.Encoder{
		CompressionLevel: png.BestCompression,
	}
	return e.Encode(w, m)
}

const maxGIFColors = 256

type gifEmitter struct{}

func (gifEmitter) Extension() string {
	return "gif"
}

// Returns the distinct colors of m in the order they are first seen, giving
// up once there are more than limit
func uniqueColors(m image.Image, limit int) color.Palette {
	b := m.Bounds()
	seen := make(map[color.Color]struct{})
	p := make(color.Palette, 0, limit)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := m.At(x, y)
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			p = append(p, c)
			if len(p) > limit {
				return p
			}
		}
	}
	return p
}

func (gifEmitter) Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()

	// A palette plus a transparent color can exceed what GIF can hold
	p := uniqueColors(m, maxGIFColors)
	if len(p) > maxGIFColors {
		q := quantize.MedianCutQuantizer{}
		p = q.Quantize(make(color.Palette, 0, maxGIFColors), m)
	}
	if len(p) == 0 {
		p = append(p, color.Black)
	}

	pm := image.NewPaletted(b, p)
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return gif.Encode(w, pm, nil)
}
