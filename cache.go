package quarantine

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/bodgit/quarantine/palette"
	"golang.org/x/sync/singleflight"
)

// PaletteCache holds every palette decoded during a run, keyed by the path
// of the palette file. It is safe for concurrent use and decodes each file
// at most once; failed decodes are not remembered.
type PaletteCache struct {
	mu       sync.RWMutex
	palettes map[string]*palette.Palette
	group    singleflight.Group

	open func(string) (io.ReadCloser, error)
}

// NewPaletteCache returns an empty cache reading palettes from the
// filesystem.
func NewPaletteCache() *PaletteCache {
	return &PaletteCache{
		palettes: make(map[string]*palette.Palette),
		open: func(file string) (io.ReadCloser, error) {
			return os.Open(file)
		},
	}
}

func (c *PaletteCache) get(key string) (*palette.Palette, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.palettes[key]
	return p, ok
}

func (c *PaletteCache) decode(file string) (*palette.Palette, error) {
	f, err := c.open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return palette.Decode(f)
}

// Load returns the palette stored in file, decoding it if this is the first
// time it has been asked for.
func (c *PaletteCache) Load(file string) (*palette.Palette, error) {
	key := filepath.Clean(file)

	if p, ok := c.get(key); ok {
		return p, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Another caller may have finished loading it since the check above
		if p, ok := c.get(key); ok {
			return p, nil
		}

		p, err := c.decode(file)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.palettes[key] = p
		c.mu.Unlock()

		return p, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*palette.Palette), nil
}

// Len returns the number of palettes in the cache.
func (c *PaletteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.palettes)
}
